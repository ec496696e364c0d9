//go:build windows

package adapter

import (
	"os"
	"syscall"
)

const hiddenOrSystem = syscall.FILE_ATTRIBUTE_HIDDEN | syscall.FILE_ATTRIBUTE_SYSTEM

// isHiddenOrSystem checks the NTFS attribute bits carried by os.Lstat.
func isHiddenOrSystem(_ string, info os.FileInfo) bool {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || data == nil {
		return false
	}

	return data.FileAttributes&hiddenOrSystem != 0
}
