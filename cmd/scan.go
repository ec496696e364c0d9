package cmd

import (
	"github.com/spf13/cobra"

	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder]",
		Short: "Report duplicate totals only",
		Long:  "Scan a folder (default: current directory) and print how many duplicates it holds and how much space they waste.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Root:      resolveRoot(args),
				Operation: m.OperationScan,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
