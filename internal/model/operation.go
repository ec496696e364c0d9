package model

// OperationKind selects what a run does after scanning.
type OperationKind int

// Available operations.
const (
	OperationScan OperationKind = iota
	OperationScanAndDisplay
	OperationScanAndRemove
)

func (k OperationKind) String() string {
	switch k {
	case OperationScan:
		return "scan"
	case OperationScanAndDisplay:
		return "find"
	case OperationScanAndRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Progress is a scan milestone. Total == 0 is the zero-files notice.
type Progress struct {
	Percent   int
	Processed int
	Total     int
}

// Removal records one deleted (or, in a dry run, selected) redundant copy.
type Removal struct {
	Path     Path
	Survivor Path
	Size     int64
	DryRun   bool
}

// RemovalStats are the totals of a removal pass.
type RemovalStats struct {
	FilesRemoved int
	BytesFreed   int64
	Failed       int
	DryRun       bool
}

// Summary is handed to the reporter once an operation completes.
type Summary struct {
	Operation      OperationKind
	Root           Path
	Processed      int
	Failed         int
	Groups         int
	RedundantFiles int
	WastedBytes    int64
	Removal        *RemovalStats
}
