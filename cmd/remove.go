package cmd

import (
	"github.com/spf13/cobra"

	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

var removeDryRunFlag bool

// removeCmd represents the remove command.
var removeCmd = newRemoveCmd()

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [folder]",
		Short: "Remove duplicate files",
		Long: `Scan a folder (default: current directory) and delete every duplicate.
In each group the file whose path sorts first is kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Root:      resolveRoot(args),
				Operation: m.OperationScanAndRemove,
				DryRun:    removeDryRunFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&removeDryRunFlag, "dry-run", false, "only show what would be deleted")

	return cmd
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
