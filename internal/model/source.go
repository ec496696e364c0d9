// Package model defines the data structures shared by the scanner, the
// deduplicator and the presentation layer.
package model

// Path represents a file system path.
type Path string

// FileOp names the filesystem operation a Failure happened in.
type FileOp string

const (
	// OpWalk is a failure while listing a directory.
	OpWalk FileOp = "walk"
	// OpHash is a failure while reading a file for its fingerprint.
	OpHash FileOp = "hash"
	// OpRemove is a failure while deleting a redundant copy.
	OpRemove FileOp = "remove"
)

// Failure is a per-item error. It never aborts the operation that produced it.
type Failure struct {
	Path Path
	Op   FileOp
	Err  error
}

func (f Failure) Error() string {
	return string(f.Op) + " " + string(f.Path) + ": " + f.Err.Error()
}

// Unwrap returns the underlying cause.
func (f Failure) Unwrap() error {
	return f.Err
}
