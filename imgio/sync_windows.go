//go:build windows

package imgio

import (
	"os"

	"golang.org/x/sys/windows"
)

// syncFile forces written data to disk.
//
// On Windows, FlushFileBuffers ensures all file data and metadata is
// written to disk.
func syncFile(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
