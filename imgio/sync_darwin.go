//go:build darwin

package imgio

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile forces written data to disk.
//
// macOS fsync() only guarantees the data reached the drive cache;
// F_FULLFSYNC ensures it is written to the physical disk.
func syncFile(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
