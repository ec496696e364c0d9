package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "dupes.dev/pkg/dupes/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	groups int
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.groups = 0

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {
	// SimpleUI doesn't block - it just prints and continues
}

// Progress prints a scan milestone.
func (s *SimpleUI) Progress(_ context.Context, progress m.Progress) {
	s.printf("%s\n", formatProgress(progress))
}

// Failure prints a per-file error to stderr.
func (s *SimpleUI) Failure(_ context.Context, failure m.Failure) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "%s\n", formatFailure(failure))
}

// Group prints one duplicate group with its members.
func (s *SimpleUI) Group(_ context.Context, group m.DuplicateGroup) {
	s.groups++
	s.printf("\n%s\n%s", formatGroupHeader(s.groups, group), renderMembersTable(group))
}

// Removal prints one deleted (or selected) file.
func (s *SimpleUI) Removal(_ context.Context, removal m.Removal) {
	s.printf("%s\n", formatRemoval(removal))
}

// Summary prints the closing totals of the operation.
func (s *SimpleUI) Summary(_ context.Context, summary m.Summary) {
	s.printf("\n")

	for _, line := range summaryLines(summary) {
		s.printf("%s\n", line)
	}
}

func renderMembersTable(group m.DuplicateGroup) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for i, member := range group.Members {
		table.Append([]string{strconv.Itoa(i + 1), string(member)})
	}

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
