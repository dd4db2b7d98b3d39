//go:build linux

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncData - Flushes file data but not necessarily metadata such as modification time
func syncData(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
