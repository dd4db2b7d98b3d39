package hash

import (
	"hash/crc32"
)

// Crc32HashAlgorithm - The internally used slot selection algorithm, implemented using crc32.ChecksumIEEE over
// the encoded key bytes. It is stable across restarts and platforms.
type Crc32HashAlgorithm struct{}

// NewCrc32HashAlgorithm - Returns a pointer to a new Crc32HashAlgorithm instance
func NewCrc32HashAlgorithm() *Crc32HashAlgorithm {
	return &Crc32HashAlgorithm{}
}

// HashFunc - Given key it returns the crc32 checksum as hash value
func (B *Crc32HashAlgorithm) HashFunc(key []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(key))
}

// Slot - Reduces a hash value to a slot in the range 0 to slotRange - 1
func Slot(hashValue uint64, slotRange int64) int64 {
	return int64(hashValue % uint64(slotRange))
}
