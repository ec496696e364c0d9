package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"dupes.dev/pkg/dupes/internal/adapter"
	m "dupes.dev/pkg/dupes/internal/model"
)

// ErrSizeMismatch marks a file whose fingerprint collides with a group of a
// different size. Such a file is never added to the group.
var ErrSizeMismatch = errors.New("fingerprint collision with different file size")

// Scanner walks a directory tree and groups files by content fingerprint.
type Scanner interface {
	// Scan returns the duplicate groups found under root. root must be an
	// existing, readable directory. Per-file failures are reported and the
	// file is left out; only cancellation of ctx makes Scan fail.
	Scan(ctx context.Context, root m.Path, reporter Reporter) (m.ScanResult, error)
	// Algorithm names the digest used for fingerprints.
	Algorithm() string
}

type scanner struct {
	fs      adapter.FileSystemAdapter
	hasher  adapter.Hasher
	threads int
}

// NewScanner constructs a Scanner that hashes up to threads files at once.
func NewScanner(fs adapter.FileSystemAdapter, hasher adapter.Hasher, threads int) Scanner {
	return &scanner{
		fs:      fs,
		hasher:  hasher,
		threads: normalizeThreads(threads),
	}
}

// hashedFile is the outcome of fingerprinting one file.
type hashedFile struct {
	path        m.Path
	fingerprint string
	size        int64
	err         error
}

func (s *scanner) Algorithm() string {
	return s.hasher.Algorithm()
}

func (s *scanner) Scan(ctx context.Context, root m.Path, reporter Reporter) (m.ScanResult, error) {
	files, err := s.enumerate(ctx, root, reporter)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}

	if len(files) == 0 {
		slog.Info("Processed: 0 files total", "root", root)
		reporter.Progress(ctx, m.Progress{})

		return m.ScanResult{}, nil
	}

	slog.Debug("Enumerated files", "root", root, "count", len(files), "threads", s.threads)

	groups, err := s.group(ctx, files, reporter)
	if err != nil {
		return nil, err
	}

	return onlyDuplicates(groups), nil
}

// enumerate lists the regular, non-hidden files under root in walk order.
func (s *scanner) enumerate(ctx context.Context, root m.Path, reporter Reporter) ([]m.Path, error) {
	var files []m.Path

	err := s.fs.Walk(ctx, root, func(path m.Path, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			s.fail(ctx, reporter, m.Failure{Path: path, Op: m.OpWalk, Err: err})

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if s.fs.IsHidden(path, info) {
			slog.Debug("Skipping hidden or system file", "path", path)
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// group hashes files on up to s.threads workers and merges the results on the
// calling goroutine, so the map and the milestones have a single writer.
func (s *scanner) group(ctx context.Context, files []m.Path, reporter Reporter) (map[string]*m.DuplicateGroup, error) {
	results := make(chan hashedFile, s.threads)

	var workers errgroup.Group
	workers.SetLimit(s.threads)

	go func() {
		defer close(results)

		for _, path := range files {
			if ctx.Err() != nil {
				break
			}

			workers.Go(func() error {
				results <- s.hashFile(ctx, path)
				return nil
			})
		}

		_ = workers.Wait()
	}()

	groups := make(map[string]*m.DuplicateGroup)
	tracker := newProgressTracker(len(files))

	for res := range results {
		switch {
		case res.err != nil:
			if ctx.Err() == nil {
				s.fail(ctx, reporter, m.Failure{Path: res.path, Op: m.OpHash, Err: res.err})
			}
		default:
			s.add(ctx, groups, res, reporter)
		}

		for _, milestone := range tracker.advance() {
			slog.Info("Progress", "percent", milestone.Percent, "processed", milestone.Processed, "total", milestone.Total)
			reporter.Progress(ctx, milestone)
		}
	}

	if err := ctx.Err(); err != nil {
		slog.Warn("Scan cancelled", "processed", tracker.processed, "total", tracker.total)
		return nil, err
	}

	slog.Info("Processed files", "total", tracker.processed)

	return groups, nil
}

func (s *scanner) hashFile(ctx context.Context, path m.Path) hashedFile {
	f, err := s.fs.Open(ctx, path)
	if err != nil {
		return hashedFile{path: path, err: err}
	}

	defer func() {
		_ = f.Close()
	}()

	fingerprint, size, err := s.hasher.Hash(ctx, f)
	if err != nil {
		return hashedFile{path: path, err: err}
	}

	return hashedFile{path: path, fingerprint: fingerprint, size: size}
}

// add appends res to its group, seeding the group on first sight.
func (s *scanner) add(ctx context.Context, groups map[string]*m.DuplicateGroup, res hashedFile, reporter Reporter) {
	existing, ok := groups[res.fingerprint]
	if !ok {
		groups[res.fingerprint] = &m.DuplicateGroup{
			Fingerprint: res.fingerprint,
			FileSize:    res.size,
			Members:     []m.Path{res.path},
		}

		return
	}

	if existing.FileSize != res.size {
		err := fmt.Errorf("%w: %s has %d bytes, group has %d", ErrSizeMismatch, res.fingerprint, res.size, existing.FileSize)
		s.fail(ctx, reporter, m.Failure{Path: res.path, Op: m.OpHash, Err: err})

		return
	}

	existing.Members = append(existing.Members, res.path)
}

func (s *scanner) fail(ctx context.Context, reporter Reporter, failure m.Failure) {
	slog.Warn("Error processing file", "path", failure.Path, "op", failure.Op, "error", failure.Err)
	reporter.Failure(ctx, failure)
}

// onlyDuplicates drops every group with fewer than two members.
func onlyDuplicates(groups map[string]*m.DuplicateGroup) m.ScanResult {
	result := make(m.ScanResult)

	for fingerprint, g := range groups {
		if len(g.Members) < 2 {
			continue
		}

		result[fingerprint] = *g
	}

	return result
}

// normalizeThreads ensures at least one worker.
func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}
