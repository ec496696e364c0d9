package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"dupes.dev/pkg/dupes/internal/adapter"
	"dupes.dev/pkg/dupes/internal/controller"
	m "dupes.dev/pkg/dupes/internal/model"
)

var (
	// ErrDirectoryNotFound is returned when the root to scan does not exist.
	ErrDirectoryNotFound = errors.New("directory does not exist")
	// ErrNotADirectory is returned when the root to scan is not a directory.
	ErrNotADirectory = errors.New("not a directory")
)

// RunArgs contains the arguments for one scan run.
type RunArgs struct {
	Root       m.Path
	Operation  m.OperationKind
	ReportPath m.Path
	DryRun     bool
}

// ViewArgs contains the arguments for rendering a saved report.
type ViewArgs struct {
	Report m.Path
}

// Workflow drives a complete run: validate the root, scan, then display,
// remove or summarize depending on the requested operation.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.FileSystemAdapter
	adapter.ReportStore
	controller.UI
	Scanner
	Deduplicator

	newScanID func() string
	now       func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.FileSystemAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	scanner Scanner,
	deduplicator Deduplicator,
) Workflow {
	return &workflow{
		FileSystemAdapter: fsAdapter,
		ReportStore:       reportStore,
		UI:                ui,
		Scanner:           scanner,
		Deduplicator:      deduplicator,
		newScanID:         uuid.NewString,
		now:               time.Now,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	root, err := w.validateRoot(ctx, args.Root)
	if err != nil {
		slog.Error("Invalid root directory", "root", args.Root, "error", err)
		return err
	}

	scanID := w.newScanID()
	logger := slog.With("scan_id", scanID, "root", root, "operation", args.Operation.String())

	if err := w.Start(ctx, controller.WithOperation(args.Operation)); err != nil {
		logger.Error("Failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	logger.Info("Scanning folder", "algorithm", w.Algorithm())

	counter := &countingReporter{Reporter: w.UI}

	result, err := w.Scan(ctx, root, counter)
	if err != nil {
		logger.Error("Scan failed", "error", err)
		return fmt.Errorf("scan %s: %w", root, err)
	}

	logger.Info("Found duplicate groups", "groups", len(result), "wasted_bytes", result.WastedBytes())

	if args.Operation == m.OperationScanAndDisplay || args.ReportPath != "" {
		w.annotateKinds(ctx, result)
	}

	summary := m.Summary{
		Operation:      args.Operation,
		Root:           root,
		Processed:      counter.processed,
		Failed:         counter.failed,
		Groups:         len(result),
		RedundantFiles: result.RedundantFiles(),
		WastedBytes:    result.WastedBytes(),
	}

	switch args.Operation {
	case m.OperationScan:
	case m.OperationScanAndDisplay:
		for _, group := range orderedGroups(result) {
			w.Group(ctx, group)
		}
	case m.OperationScanAndRemove:
		stats := w.RemoveDuplicates(ctx, result, w.UI, WithDryRun(args.DryRun))
		summary.Removal = &stats
	default:
		return fmt.Errorf("unsupported operation %q", args.Operation)
	}

	if args.ReportPath != "" {
		report := m.NewReport(scanID, root, w.Algorithm(), result, w.now().UTC())
		if err := w.SaveReport(ctx, args.ReportPath, report); err != nil {
			logger.Error("Failed to save report", "path", args.ReportPath, "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	w.Summary(ctx, summary)
	w.Wait(ctx)

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		slog.Error("Failed to load report", "path", args.Report, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithOperation(m.OperationScanAndDisplay)); err != nil {
		return err
	}

	defer w.Close(ctx)

	result := report.Result()
	for _, group := range orderedGroups(result) {
		w.Group(ctx, group)
	}

	w.Summary(ctx, m.Summary{
		Operation:      m.OperationScanAndDisplay,
		Root:           report.Root,
		Groups:         len(result),
		RedundantFiles: result.RedundantFiles(),
		WastedBytes:    result.WastedBytes(),
	})
	w.Wait(ctx)

	return nil
}

// validateRoot resolves root to an absolute directory path with symbolic
// links evaluated, since the walk does not descend through a linked root.
func (w *workflow) validateRoot(ctx context.Context, root m.Path) (m.Path, error) {
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(string(root))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := w.FileInfo(ctx, m.Path(abs))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
		}

		return "", fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	resolved, err := w.Resolve(ctx, m.Path(abs))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}

	return resolved, nil
}

// annotateKinds fills in the content kind of each group from its first member.
func (w *workflow) annotateKinds(ctx context.Context, result m.ScanResult) {
	for fingerprint, group := range result {
		kind, err := w.DetectKind(ctx, group.Members[0])
		if err != nil {
			slog.Debug("Failed to detect content kind", "path", group.Members[0], "error", err)
			continue
		}

		group.Kind = kind
		result[fingerprint] = group
	}
}

// orderedGroups sorts groups by their ordinal-minimum member so output is
// stable across runs. Members keep their discovery order.
func orderedGroups(result m.ScanResult) []m.DuplicateGroup {
	groups := make([]m.DuplicateGroup, 0, len(result))
	for _, group := range result {
		if len(group.Members) == 0 {
			continue
		}

		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := slices.Min(groups[i].Members), slices.Min(groups[j].Members)
		if a != b {
			return a < b
		}

		return groups[i].Fingerprint < groups[j].Fingerprint
	})

	return groups
}
