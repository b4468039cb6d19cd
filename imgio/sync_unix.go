//go:build linux || freebsd

package imgio

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile forces written data to disk.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees: file data
// reaches the device without waiting on unrelated metadata updates.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
