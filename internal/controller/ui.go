// Package controller provides the user interfaces that render scan progress,
// duplicate groups and removal results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "dupes.dev/pkg/dupes/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	operation m.OperationKind
}

// WithOperation tells the UI which operation it is about to render.
func WithOperation(kind m.OperationKind) StartOption {
	return func(c *StartConfig) {
		c.operation = kind
	}
}

// UI renders the events of a run. Every UI is also a reporter for the scanner
// and the deduplicator.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	Progress(ctx context.Context, progress m.Progress)
	Failure(ctx context.Context, failure m.Failure)
	Group(ctx context.Context, group m.DuplicateGroup)
	Removal(ctx context.Context, removal m.Removal)
	Summary(ctx context.Context, summary m.Summary)
}

// NewUI picks the interactive UI for terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func buildStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{operation: m.OperationScanAndDisplay}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}
