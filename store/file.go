package store

import (
	"fmt"
	"os"
)

// File - Store backed by a regular file
type File struct {
	*os.File
	name string
}

// CreateFile - Creates a new file store, it fails if the file already exists
func CreateFile(name string) (file *File, err error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		err = fmt.Errorf("unable to create store file: %w", err)
		return
	}

	file = &File{File: f, name: name}

	return
}

// OpenFile - Opens an existing file store
func OpenFile(name string) (file *File, err error) {
	if _, err = os.Stat(name); err != nil {
		err = fmt.Errorf("store file not found: %w", err)
		return
	}

	f, err := os.OpenFile(name, os.O_RDWR, 0644)
	if err != nil {
		err = fmt.Errorf("unable to open existing store file: %w", err)
		return
	}

	file = &File{File: f, name: name}

	return
}

// Size - Returns the file size
func (F *File) Size() (size int64, err error) {
	stat, err := F.Stat()
	if err != nil {
		return
	}
	size = stat.Size()

	return
}

// Sync - Flushes file data to disk
func (F *File) Sync() error {
	return syncData(F.File)
}

// Remove - Closes and removes the file
func (F *File) Remove() (err error) {
	_ = F.Close()
	err = os.Remove(F.name)
	if err != nil {
		err = fmt.Errorf("unable to remove store file: %w", err)
	}

	return
}
