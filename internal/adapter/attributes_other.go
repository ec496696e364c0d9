//go:build !windows

package adapter

import "os"

// isHiddenOrSystem is a no-op where the filesystem has no attribute bits.
// Dot-files are regular files here and take part in the scan.
func isHiddenOrSystem(_ string, _ os.FileInfo) bool {
	return false
}
