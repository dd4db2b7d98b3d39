package store

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// minMapLength - Smallest mapping made when the store first grows
const minMapLength int64 = 64 * 1024

// Mmap - Store backed by a memory mapped file.
// The file is grown geometrically ahead of the logical size so that most writes land in mapped memory,
// it is truncated back to the logical size on Close.
type Mmap struct {
	mu   sync.RWMutex
	f    *os.File
	data mmap.MMap
	size int64
}

// OpenMmap - Opens a memory mapped store, the file is created if it doesn't exist
func OpenMmap(name string) (m *Mmap, err error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		err = fmt.Errorf("unable to open mmap store file: %w", err)
		return
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return
	}

	m = &Mmap{f: f, size: stat.Size()}
	if m.size > 0 {
		m.data, err = mmap.Map(f, mmap.RDWR, 0)
		if err != nil {
			_ = f.Close()
			m = nil
			err = fmt.Errorf("mmap failed: %w", err)
			return
		}
	}

	return
}

// ReadAt - Reads len(p) bytes from offset off
func (M *Mmap) ReadAt(p []byte, off int64) (n int, err error) {
	M.mu.RLock()
	defer M.mu.RUnlock()

	if off < 0 {
		err = fmt.Errorf("negative offset %d", off)
		return
	}
	if off >= M.size {
		err = io.EOF
		return
	}

	n = copy(p, M.data[off:M.size])
	if n < len(p) {
		err = io.EOF
	}

	return
}

// WriteAt - Writes p at offset off, remapping a larger file if the write ends beyond the mapping
func (M *Mmap) WriteAt(p []byte, off int64) (n int, err error) {
	M.mu.Lock()
	defer M.mu.Unlock()

	if off < 0 {
		err = fmt.Errorf("negative offset %d", off)
		return
	}

	end := off + int64(len(p))
	if end > int64(len(M.data)) {
		err = M.grow(end)
		if err != nil {
			return
		}
	}

	n = copy(M.data[off:], p)
	if end > M.size {
		M.size = end
	}

	return
}

// grow - Extends the file to at least length bytes and maps it again
func (M *Mmap) grow(length int64) (err error) {
	capacity := int64(len(M.data)) * 2
	if capacity < minMapLength {
		capacity = minMapLength
	}
	for capacity < length {
		capacity *= 2
	}

	if M.data != nil {
		err = M.data.Unmap()
		if err != nil {
			return fmt.Errorf("unable to unmap store: %w", err)
		}
		M.data = nil
	}

	err = M.f.Truncate(capacity)
	if err != nil {
		return fmt.Errorf("unable to grow store file: %w", err)
	}

	M.data, err = mmap.Map(M.f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mmap failed: %w", err)
	}

	return
}

// Size - Returns the logical size of the store, not the size of the mapping
func (M *Mmap) Size() (int64, error) {
	M.mu.RLock()
	defer M.mu.RUnlock()

	return M.size, nil
}

// Sync - Flushes the mapped memory to the file
func (M *Mmap) Sync() error {
	M.mu.RLock()
	defer M.mu.RUnlock()

	if M.data == nil {
		return nil
	}
	return M.data.Flush()
}

// Close - Unmaps the file, truncates it to its logical size and closes it
func (M *Mmap) Close() (err error) {
	M.mu.Lock()
	defer M.mu.Unlock()

	if M.data != nil {
		err = M.data.Unmap()
		if err != nil {
			return fmt.Errorf("unable to unmap store: %w", err)
		}
		M.data = nil
	}

	err = M.f.Truncate(M.size)
	if err != nil {
		_ = M.f.Close()
		return fmt.Errorf("unable to truncate store file: %w", err)
	}

	return M.f.Close()
}
