package domain

import (
	"context"

	m "dupes.dev/pkg/dupes/internal/model"
)

// Reporter receives the events of a scan or removal pass. The core never
// calls a Reporter from more than one goroutine at a time.
type Reporter interface {
	Progress(ctx context.Context, progress m.Progress)
	Failure(ctx context.Context, failure m.Failure)
	Group(ctx context.Context, group m.DuplicateGroup)
	Removal(ctx context.Context, removal m.Removal)
	Summary(ctx context.Context, summary m.Summary)
}

// NopReporter discards every event.
type NopReporter struct{}

// Progress implements Reporter.
func (NopReporter) Progress(context.Context, m.Progress) {}

// Failure implements Reporter.
func (NopReporter) Failure(context.Context, m.Failure) {}

// Group implements Reporter.
func (NopReporter) Group(context.Context, m.DuplicateGroup) {}

// Removal implements Reporter.
func (NopReporter) Removal(context.Context, m.Removal) {}

// Summary implements Reporter.
func (NopReporter) Summary(context.Context, m.Summary) {}

// countingReporter forwards to the wrapped Reporter and keeps the scan totals
// the summary needs.
type countingReporter struct {
	Reporter
	processed int
	failed    int
}

func (c *countingReporter) Progress(ctx context.Context, progress m.Progress) {
	c.processed = progress.Processed
	c.Reporter.Progress(ctx, progress)
}

func (c *countingReporter) Failure(ctx context.Context, failure m.Failure) {
	c.failed++
	c.Reporter.Failure(ctx, failure)
}
