//go:build unit

package hash

import (
	"github.com/stretchr/testify/assert"
	"hash/crc32"
	"testing"
)

func TestCrc32HashAlgorithm_HashFunc(t *testing.T) {
	t.Run("hash value is the crc32 of the key", func(t *testing.T) {
		// Prepare
		a := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		h := NewCrc32HashAlgorithm()

		// Execute
		hashValue := h.HashFunc(a)

		// Check
		assert.Equal(t, uint64(crc32.ChecksumIEEE(a)), hashValue, "crc32 of key")
		assert.Equal(t, hashValue, NewCrc32HashAlgorithm().HashFunc(a), "stable between instances")
	})
}

func TestSlot(t *testing.T) {
	t.Run("slot is within range", func(t *testing.T) {
		// Prepare
		h := NewCrc32HashAlgorithm()

		// Execute and Check
		for i := 0; i < 1000; i++ {
			slot := Slot(h.HashFunc([]byte{byte(i), byte(i >> 8)}), 7)
			assert.GreaterOrEqual(t, slot, int64(0), "not below range")
			assert.Less(t, slot, int64(7), "not above range")
		}
	})

	t.Run("range of one always gives slot zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Slot(12345, 1), "single slot range")
	})
}
