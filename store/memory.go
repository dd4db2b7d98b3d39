package store

import (
	"fmt"
	"io"
	"sync"
)

// Memory - Store kept in a byte slice, mostly useful for tests and ephemeral collections
type Memory struct {
	mu     sync.RWMutex
	data   []byte
	closed bool
}

// NewMemory - Returns a pointer to a new empty Memory store
func NewMemory() *Memory {
	return &Memory{}
}

// ReadAt - Reads len(p) bytes from offset off
func (M *Memory) ReadAt(p []byte, off int64) (n int, err error) {
	M.mu.RLock()
	defer M.mu.RUnlock()

	if M.closed {
		err = fmt.Errorf("memory store is closed")
		return
	}
	if off < 0 {
		err = fmt.Errorf("negative offset %d", off)
		return
	}
	if off >= int64(len(M.data)) {
		err = io.EOF
		return
	}

	n = copy(p, M.data[off:])
	if n < len(p) {
		err = io.EOF
	}

	return
}

// WriteAt - Writes p at offset off, growing the store if needed. A gap between the current end and off is zero filled.
func (M *Memory) WriteAt(p []byte, off int64) (n int, err error) {
	M.mu.Lock()
	defer M.mu.Unlock()

	if M.closed {
		err = fmt.Errorf("memory store is closed")
		return
	}
	if off < 0 {
		err = fmt.Errorf("negative offset %d", off)
		return
	}

	end := off + int64(len(p))
	if end > int64(len(M.data)) {
		if end <= int64(cap(M.data)) {
			M.data = M.data[:end]
		} else {
			grown := make([]byte, end, end+end/2)
			copy(grown, M.data)
			M.data = grown
		}
	}
	n = copy(M.data[off:], p)

	return
}

// Size - Returns the number of bytes in the store
func (M *Memory) Size() (int64, error) {
	M.mu.RLock()
	defer M.mu.RUnlock()

	return int64(len(M.data)), nil
}

// Sync - Nothing to flush for a memory store
func (M *Memory) Sync() error {
	return nil
}

// Close - Releases the memory
func (M *Memory) Close() error {
	M.mu.Lock()
	defer M.mu.Unlock()

	M.data = nil
	M.closed = true

	return nil
}

// Bytes - Returns a copy of the store contents
func (M *Memory) Bytes() []byte {
	M.mu.RLock()
	defer M.mu.RUnlock()

	b := make([]byte, len(M.data))
	copy(b, M.data)
	return b
}
