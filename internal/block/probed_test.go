//go:build unit

package block

import (
	"encoding/binary"
	"errors"
	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/hash"
	"github.com/gostonefire/filecollections/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// constantHash - Sends every key to the same hash value
type constantHash struct {
	value uint64
}

func (C constantHash) HashFunc(_ []byte) uint64 {
	return C.value
}

// slotBytes - Returns an 8 byte slot with a 4 byte key followed by a 4 byte value
func slotBytes(key, value uint32) (k, raw []byte) {
	raw = make([]byte, 8)
	binary.LittleEndian.PutUint32(raw, key)
	binary.LittleEndian.PutUint32(raw[4:], value)
	k = raw[:4]
	return
}

func newProbed(t *testing.T, capacity, probeSize int64, alg constantHash) *Probed {
	fixed, err := Create(store.NewMemory(), 8, capacity)
	require.NoError(t, err, "creates block")
	return NewProbed(fixed, 4, probeSize, alg)
}

func TestNewProbed(t *testing.T) {
	t.Run("probe range leaves room for a full window", func(t *testing.T) {
		// Execute
		p := newProbed(t, 100, 75, constantHash{})

		// Check
		assert.Equal(t, int64(75), p.ProbeSize(), "probe size")
		assert.Equal(t, int64(26), p.ProbeRange(), "probe range")
	})

	t.Run("probe size is capped to capacity", func(t *testing.T) {
		// Execute
		p := newProbed(t, 2, 75, constantHash{})

		// Check
		assert.Equal(t, int64(2), p.ProbeSize(), "probe size capped")
		assert.Equal(t, int64(1), p.ProbeRange(), "single start slot")
	})
}

func TestProbed_AddressFor(t *testing.T) {
	t.Run("address is hash modulo range", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 100, 75, constantHash{value: 1000})

		// Execute
		slot := p.AddressFor([]byte{1})

		// Check
		assert.Equal(t, int64(1000%26), slot, "hash modulo range")
	})

	t.Run("default algorithm is stable", func(t *testing.T) {
		// Prepare
		fixed, _ := Create(store.NewMemory(), 8, 100)
		a := NewProbed(fixed, 4, 10, hash.NewCrc32HashAlgorithm())
		b := NewProbed(fixed, 4, 10, hash.NewCrc32HashAlgorithm())

		// Check
		assert.Equal(t, a.AddressFor([]byte("key")), b.AddressFor([]byte("key")), "same key same slot")
	})
}

func TestProbed_Set(t *testing.T) {
	t.Run("inserts colliding keys in consecutive slots and updates in place", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 10, 3, constantHash{value: 2})

		// Execute
		k1, r1 := slotBytes(1, 10)
		s1, err1 := p.Set(k1, r1)
		k2, r2 := slotBytes(2, 20)
		s2, err2 := p.Set(k2, r2)
		_, r1b := slotBytes(1, 11)
		s1b, err3 := p.Set(k1, r1b)

		// Check
		assert.NoError(t, err1, "inserts first")
		assert.NoError(t, err2, "inserts second")
		assert.NoError(t, err3, "updates first")
		assert.Equal(t, int64(2), s1, "first at start slot")
		assert.Equal(t, int64(3), s2, "second probes to next slot")
		assert.Equal(t, s1, s1b, "update in place")

		slot, raw, err := p.Find(k1)
		assert.NoError(t, err, "finds first")
		assert.Equal(t, int64(2), slot, "slot of first")
		assert.Equal(t, r1b, raw, "updated value")
	})

	t.Run("full window fails with ProbeExhausted", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 10, 3, constantHash{value: 0})
		for i := uint32(0); i < 3; i++ {
			k, r := slotBytes(i, i)
			_, err := p.Set(k, r)
			require.NoError(t, err, "fills window")
		}

		// Execute
		k, r := slotBytes(99, 99)
		_, err := p.Set(k, r)
		_, _, fErr := p.Find(k)

		// Check
		assert.True(t, errors.Is(err, errs.ProbeExhausted{}), "window exhausted")
		assert.True(t, errors.Is(fErr, errs.NoRecordFound{}), "not found")
	})
}

func TestProbed_Find(t *testing.T) {
	t.Run("missing key fails with NoRecordFound", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 10, 3, constantHash{value: 1})

		// Execute
		k, _ := slotBytes(5, 0)
		_, _, err := p.Find(k)

		// Check
		assert.True(t, errors.Is(err, errs.NoRecordFound{}), "not found")
	})

	t.Run("key bytes inside another record at a misaligned offset never match", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 10, 3, constantHash{value: 0})
		// Record of key 1 holds value 7, so the bytes of key 7 sit at slot offset 4
		k1, r1 := slotBytes(1, 7)
		_, err := p.Set(k1, r1)
		require.NoError(t, err, "sets record")

		// Execute
		k7, _ := slotBytes(7, 0)
		_, _, fErr := p.Find(k7)

		// Check
		assert.True(t, errors.Is(fErr, errs.NoRecordFound{}), "embedded bytes not matched")
	})

	t.Run("all 0xFF key is found once written", func(t *testing.T) {
		// Prepare
		p := newProbed(t, 10, 3, constantHash{value: 0})
		k, r := slotBytes(0xFFFFFFFF, 1)

		// Execute
		_, _, before := p.Find(k)
		_, err := p.Set(k, r)
		require.NoError(t, err, "sets record")
		_, raw, after := p.Find(k)

		// Check
		assert.True(t, errors.Is(before, errs.NoRecordFound{}), "empty slot is not a match")
		assert.NoError(t, after, "found")
		assert.Equal(t, r, raw, "record content")
	})
}
