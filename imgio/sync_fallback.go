//go:build !linux && !freebsd && !darwin && !windows

package imgio

import "os"

// syncFile forces written data to disk via plain fsync.
func syncFile(f *os.File) error {
	return f.Sync()
}
