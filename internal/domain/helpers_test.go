package domain

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"dupes.dev/pkg/dupes/internal/adapter"
	m "dupes.dev/pkg/dupes/internal/model"
)

var errUnreadable = errors.New("permission denied")

// recordingReporter keeps every event in memory.
type recordingReporter struct {
	mu        sync.Mutex
	progress  []m.Progress
	failures  []m.Failure
	groups    []m.DuplicateGroup
	removals  []m.Removal
	summaries []m.Summary
}

func (r *recordingReporter) Progress(_ context.Context, progress m.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, progress)
}

func (r *recordingReporter) Failure(_ context.Context, failure m.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, failure)
}

func (r *recordingReporter) Group(_ context.Context, group m.DuplicateGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, group)
}

func (r *recordingReporter) Removal(_ context.Context, removal m.Removal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removals = append(r.removals, removal)
}

func (r *recordingReporter) Summary(_ context.Context, summary m.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

// faultyFS fails Open or Remove for chosen paths, refuses to list brokenDirs,
// and delegates the rest.
type faultyFS struct {
	adapter.FileSystemAdapter
	unreadable  map[m.Path]bool
	undeletable map[m.Path]bool
	brokenDirs  map[m.Path]bool
}

func (f *faultyFS) Walk(ctx context.Context, root m.Path, fn adapter.WalkFunc) error {
	return f.FileSystemAdapter.Walk(ctx, root, func(path m.Path, info os.FileInfo, err error) error {
		if err == nil && info.IsDir() && f.brokenDirs[path] {
			if cbErr := fn(path, info, errUnreadable); cbErr != nil {
				return cbErr
			}

			return filepath.SkipDir
		}

		return fn(path, info, err)
	})
}

func (f *faultyFS) Open(ctx context.Context, path m.Path) (io.ReadCloser, error) {
	if f.unreadable[path] {
		return nil, errUnreadable
	}

	return f.FileSystemAdapter.Open(ctx, path)
}

func (f *faultyFS) Remove(ctx context.Context, path m.Path) error {
	if f.undeletable[path] {
		return errUnreadable
	}

	return f.FileSystemAdapter.Remove(ctx, path)
}

// newMemTree writes files (relative path -> content) below /root in memory.
func newMemTree(t *testing.T, files map[string]string) (afero.Fs, *adapter.LocalFileSystemAdapter) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root", 0o755))

	for name, content := range files {
		path := filepath.Join("/root", name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	return fs, adapter.NewFileSystemAdapter(fs)
}

func newTestScanner(t *testing.T, fs adapter.FileSystemAdapter, threads int) Scanner {
	t.Helper()

	hasher, err := adapter.NewHasher(adapter.AlgorithmMD5)
	require.NoError(t, err)

	return NewScanner(fs, hasher, threads)
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()

	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)

	return ok
}
