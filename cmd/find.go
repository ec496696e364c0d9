package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

var (
	findRemoveFlag bool
	findDryRunFlag bool
	findReportFlag string
)

var errDryRunWithoutRemove = errors.New("--dry-run requires --remove")

// findCmd represents the find command.
var findCmd = newFindCmd()

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [folder]",
		Short: "List duplicate files",
		Long: `Scan a folder (default: current directory) and list every group of files
with identical content together with the space the extra copies waste.

With --remove the duplicates are deleted instead, exactly like "dupes remove".
--dry-run is only accepted together with --remove.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if findDryRunFlag && !findRemoveFlag {
				return errDryRunWithoutRemove
			}

			operation := m.OperationScanAndDisplay
			if findRemoveFlag {
				operation = m.OperationScanAndRemove
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Root:       resolveRoot(args),
				Operation:  operation,
				ReportPath: m.Path(findReportFlag),
				DryRun:     findDryRunFlag,
			})
		},
	}

	cmd.Flags().BoolVarP(&findRemoveFlag, "remove", "r", false, "remove the duplicates that were found")
	cmd.Flags().BoolVar(&findDryRunFlag, "dry-run", false, "with --remove, only show what would be deleted")
	cmd.Flags().StringVar(&findReportFlag, "report", "", "write the duplicate groups to a YAML report file")

	return cmd
}

func init() {
	rootCmd.AddCommand(findCmd)
}
