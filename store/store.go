// Package store holds the backing stores collections are kept in. A store is a flat, byte addressable region
// accessed with positioned reads and writes, it knows nothing about records or blocks.
package store

import (
	"io"
)

// Store - A byte addressable backing store.
// Reads and writes are positioned, every call is one complete step relative to other calls on the same store.
// Reads past the end of the store fail with io.EOF, writes past the end extend the store.
type Store interface {
	io.ReaderAt
	io.WriterAt

	// Size - Returns the current length of the store in bytes
	Size() (int64, error)

	// Sync - Flushes written data to durable storage, collections never call it on their own
	Sync() error

	// Close - Releases the store, it can't be used afterwards
	Close() error
}
