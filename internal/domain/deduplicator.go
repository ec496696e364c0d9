package domain

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"dupes.dev/pkg/dupes/internal/adapter"
	m "dupes.dev/pkg/dupes/internal/model"
)

// Deduplicator removes every member of a duplicate group except one.
type Deduplicator interface {
	// RemoveDuplicates keeps the ordinal-minimum path of each group and
	// deletes the others. A failed deletion is reported and skipped; it never
	// stops the pass.
	RemoveDuplicates(ctx context.Context, result m.ScanResult, reporter Reporter, options ...RemoveOption) m.RemovalStats
}

// RemoveOption is a functional option for RemoveDuplicates.
type RemoveOption func(*removeConfig)

type removeConfig struct {
	dryRun bool
}

// WithDryRun selects the files to delete without deleting them.
func WithDryRun(dryRun bool) RemoveOption {
	return func(c *removeConfig) {
		c.dryRun = dryRun
	}
}

type deduplicator struct {
	fs      adapter.FileSystemAdapter
	workers int
}

// NewDeduplicator constructs a Deduplicator that processes up to workers
// groups concurrently.
func NewDeduplicator(fs adapter.FileSystemAdapter, workers int) Deduplicator {
	return &deduplicator{
		fs:      fs,
		workers: normalizeThreads(workers),
	}
}

func (d *deduplicator) RemoveDuplicates(ctx context.Context, result m.ScanResult, reporter Reporter, options ...RemoveOption) m.RemovalStats {
	var cfg removeConfig
	for _, option := range options {
		option(&cfg)
	}

	pass := &removalPass{
		fs:       d.fs,
		reporter: reporter,
		dryRun:   cfg.dryRun,
		stats:    m.RemovalStats{DryRun: cfg.dryRun},
	}

	slog.Info("Removing duplicates", "groups", len(result), "workers", d.workers, "dry_run", cfg.dryRun)

	pool, err := ants.NewPool(d.workers)
	if err != nil {
		slog.Warn("Failed to create removal pool, removing sequentially", "error", err)

		for _, fingerprint := range result.Fingerprints() {
			pass.removeGroup(ctx, result[fingerprint])
		}

		return pass.stats
	}

	defer pool.Release()

	var wg sync.WaitGroup

	for _, fingerprint := range result.Fingerprints() {
		group := result[fingerprint]

		wg.Add(1)

		task := func() {
			defer wg.Done()
			pass.removeGroup(ctx, group)
		}

		if err := pool.Submit(task); err != nil {
			slog.Warn("Failed to submit removal task, running inline", "fingerprint", fingerprint, "error", err)
			task()
		}
	}

	wg.Wait()

	slog.Info("Removed duplicate files", "count", pass.stats.FilesRemoved, "bytes", pass.stats.BytesFreed, "failed", pass.stats.Failed)

	return pass.stats
}

// removalPass owns the counters of one RemoveDuplicates call. mu also
// serializes reporter calls.
type removalPass struct {
	fs       adapter.FileSystemAdapter
	reporter Reporter
	dryRun   bool

	mu    sync.Mutex
	stats m.RemovalStats
}

func (p *removalPass) removeGroup(ctx context.Context, group m.DuplicateGroup) {
	if len(group.Members) < 2 {
		return
	}

	sorted := slices.Clone(group.Members)
	slices.Sort(sorted)

	survivor := sorted[0]

	for _, path := range sorted[1:] {
		if path == survivor {
			continue
		}

		removal := m.Removal{Path: path, Survivor: survivor, Size: group.FileSize, DryRun: p.dryRun}

		if p.dryRun {
			slog.Info("Would remove", "path", path, "keep", survivor)
			p.removed(ctx, removal)

			continue
		}

		slog.Info("Removing", "path", path, "keep", survivor)

		if err := p.fs.Remove(ctx, path); err != nil {
			slog.Error("Error removing file", "path", path, "error", err)
			p.failed(ctx, m.Failure{Path: path, Op: m.OpRemove, Err: err})

			continue
		}

		p.removed(ctx, removal)
	}
}

func (p *removalPass) removed(ctx context.Context, removal m.Removal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.FilesRemoved++
	p.stats.BytesFreed += removal.Size
	p.reporter.Removal(ctx, removal)
}

func (p *removalPass) failed(ctx context.Context, failure m.Failure) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Failed++
	p.reporter.Failure(ctx, failure)
}
