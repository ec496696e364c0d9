// Package adapter contains the infrastructure adapters (filesystem, hashing,
// report storage) the domain layer is built on.
package adapter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	m "dupes.dev/pkg/dupes/internal/model"
)

// kindHeaderSize is the number of leading bytes filetype needs to match.
const kindHeaderSize = 262

// FileSystemAdapter abstracts the filesystem operations the scanner and the
// deduplicator rely on. It hides direct `os` access so domain logic can be
// tested against an in-memory filesystem.
//
//nolint:interfacebloat // A richer interface keeps the domain decoupled from os/fs.
type FileSystemAdapter interface {
	// Walk visits root and everything below it. Symbolic links are reported
	// with their own (link) metadata and never followed.
	Walk(ctx context.Context, root m.Path, fn WalkFunc) error

	// Open opens a file for streaming reads.
	Open(ctx context.Context, path m.Path) (io.ReadCloser, error)

	// Remove deletes a single file.
	Remove(ctx context.Context, path m.Path) error

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish between files and directories.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// Resolve evaluates symbolic links in path. Filesystems without links
	// return path unchanged.
	Resolve(ctx context.Context, path m.Path) (m.Path, error)

	// IsHidden reports whether the host marks the entry hidden or system.
	IsHidden(path m.Path, info os.FileInfo) bool

	// DetectKind sniffs the MIME type from the file header. Unknown content
	// yields an empty string.
	DetectKind(ctx context.Context, path m.Path) (string, error)
}

// WalkFunc mirrors the callback shape used by filepath.Walk. Returning
// filepath.SkipDir skips a directory. info may be nil when err is not.
type WalkFunc func(path m.Path, info os.FileInfo, err error) error

// LocalFileSystemAdapter is the afero-backed FileSystemAdapter.
type LocalFileSystemAdapter struct {
	fs     afero.Fs
	hidden func(path string, info os.FileInfo) bool
}

// NewLocalFileSystemAdapter constructs an adapter over the host filesystem.
func NewLocalFileSystemAdapter() *LocalFileSystemAdapter {
	return NewFileSystemAdapter(afero.NewOsFs())
}

// NewFileSystemAdapter constructs an adapter over any afero filesystem.
func NewFileSystemAdapter(fs afero.Fs) *LocalFileSystemAdapter {
	return &LocalFileSystemAdapter{
		fs:     fs,
		hidden: isHiddenOrSystem,
	}
}

// Walk iterates over root recursively.
func (a *LocalFileSystemAdapter) Walk(ctx context.Context, root m.Path, fn WalkFunc) error {
	return afero.Walk(a.fs, string(root), func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return fn(m.Path(path), info, err)
	})
}

// Open opens path for reading.
func (a *LocalFileSystemAdapter) Open(ctx context.Context, path m.Path) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.fs.Open(string(path))
}

// Remove deletes path. Directories are refused.
func (a *LocalFileSystemAdapter) Remove(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := a.lstat(string(path))
	if err != nil {
		return err
	}

	if info.IsDir() {
		return &os.PathError{Op: "remove", Path: string(path), Err: errors.New("is a directory")}
	}

	return a.fs.Remove(string(path))
}

// FileInfo returns metadata for the given path.
func (a *LocalFileSystemAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.fs.Stat(string(path))
}

// Resolve evaluates symbolic links in path on the host filesystem.
func (a *LocalFileSystemAdapter) Resolve(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, ok := a.fs.(*afero.OsFs); !ok {
		return path, nil
	}

	resolved, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// IsHidden reports whether the entry carries hidden/system attributes.
func (a *LocalFileSystemAdapter) IsHidden(path m.Path, info os.FileInfo) bool {
	if info == nil {
		return false
	}

	return a.hidden(string(path), info)
}

// DetectKind returns the MIME type of the file content, or "" when unknown.
func (a *LocalFileSystemAdapter) DetectKind(ctx context.Context, path m.Path) (string, error) {
	f, err := a.Open(ctx, path)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, kindHeaderSize)

	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "", nil //nolint:nilerr // unmatched content is not an error
	}

	return kind.MIME.Value, nil
}

func (a *LocalFileSystemAdapter) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}

	return a.fs.Stat(path)
}
