// Package cmd provides the root command and CLI setup for dupes.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dupes.dev/pkg/dupes/internal/adapter"
	"dupes.dev/pkg/dupes/internal/controller"
	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

// workflow is built on first use from the resolved configuration. Tests
// replace it with a mock before executing a command.
var workflow domain.Workflow

var (
	algorithmFlag string
	threadsFlag   int
	workersFlag   int
	verboseFlag   bool
	logFileFlag   string
	noTUIFlag     bool
)

const rootLongDescription = `Dupes finds files with identical content below a folder and, on request,
removes every copy but one.

Files are grouped by a content digest. Within each group the file whose path
sorts first is kept; the others are reported as wasted space or deleted.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func init() {
	setupRootCmd(rootCmd)
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "dupes",
		Short:        "Duplicate file finder and remover",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	setupRootCmd(cmd)

	return cmd
}

func setupRootCmd(cmd *cobra.Command) {
	configureRootFlags(cmd)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if workflow != nil {
			return nil
		}

		return setupDependencies(cmd)
	}
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&algorithmFlag, algorithmFlagName, "a", viper.GetString(algorithmConfigKey),
		fmt.Sprintf("content digest used to compare files %v", adapter.Algorithms()))
	bindFlagToConfig(flags.Lookup(algorithmFlagName), algorithmConfigKey)

	flags.IntVarP(&threadsFlag, threadsFlagName, "t", viper.GetInt(threadsConfigKey), "number of files hashed in parallel")
	bindFlagToConfig(flags.Lookup(threadsFlagName), threadsConfigKey)

	flags.IntVar(&workersFlag, workersFlagName, viper.GetInt(workersConfigKey), "number of duplicate groups removed in parallel")
	bindFlagToConfig(flags.Lookup(workersFlagName), workersConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVar(&noTUIFlag, noTUIFlagName, viper.GetBool(noTUIConfigKey), "print plain text even on a terminal")
	bindFlagToConfig(flags.Lookup(noTUIFlagName), noTUIConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// setupDependencies configures logging and builds the workflow for cmd.
func setupDependencies(cmd *cobra.Command) error {
	configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

	hasher, err := adapter.NewHasher(viper.GetString(algorithmConfigKey))
	if err != nil {
		return err
	}

	fsAdapter := adapter.NewLocalFileSystemAdapter()
	interactive := !viper.GetBool(noTUIConfigKey) && controller.IsTTY(cmd.OutOrStdout())

	workflow = domain.NewWorkflow(
		fsAdapter,
		adapter.NewReportStore(),
		controller.NewUI(cmd, interactive),
		domain.NewScanner(fsAdapter, hasher, viper.GetInt(threadsConfigKey)),
		domain.NewDeduplicator(fsAdapter, viper.GetInt(workersConfigKey)),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveRoot returns the folder argument, defaulting to the working directory.
func resolveRoot(args []string) m.Path {
	if len(args) == 0 || args[0] == "" {
		return "."
	}

	return m.Path(args[0])
}
