package block

import (
	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/hashfunc"
	"github.com/gostonefire/filecollections/internal/hash"
	"github.com/gostonefire/filecollections/internal/utils"
)

// Probed - A fixed block where the slot of a record is selected by hashing its key bytes, collisions are resolved
// by a bounded linear probe. The probe window never wraps around, instead the hash is reduced to a range that
// leaves room for a full window at the end of the block.
type Probed struct {
	*Fixed
	keySize    int64
	probeSize  int64
	probeRange int64
	hashAlg    hashfunc.HashAlgorithm
}

// NewProbed - Returns a pointer to a new Probed block over fixed.
//   - keySize is the number of leading bytes of each slot compared against lookup keys
//   - probeSize is the wanted window length, it is capped to the block capacity
//   - hashAlg is the algorithm turning key bytes into a start slot
func NewProbed(fixed *Fixed, keySize, probeSize int64, hashAlg hashfunc.HashAlgorithm) *Probed {
	if probeSize > fixed.Capacity() {
		probeSize = fixed.Capacity()
	}
	if probeSize < 1 {
		probeSize = 1
	}

	return &Probed{
		Fixed:      fixed,
		keySize:    keySize,
		probeSize:  probeSize,
		probeRange: fixed.Capacity() - probeSize + 1,
		hashAlg:    hashAlg,
	}
}

// ProbeSize - Returns the effective probe window length
func (P *Probed) ProbeSize() int64 {
	return P.probeSize
}

// ProbeRange - Returns the number of possible window start slots
func (P *Probed) ProbeRange() int64 {
	return P.probeRange
}

// AddressFor - Returns the first slot of the probe window for key
func (P *Probed) AddressFor(key []byte) int64 {
	return hash.Slot(P.hashAlg.HashFunc(key), P.probeRange)
}

// Find - Scans the probe window of key for a slot holding the key.
// Only slot aligned bytes are compared, key bytes that happen to appear inside another record never match.
//
// It returns:
//   - slot is the slot holding the key
//   - raw is the raw slot content
//   - err is of type errs.NoRecordFound if the key isn't in the window
func (P *Probed) Find(key []byte) (slot int64, raw []byte, err error) {
	slot, raw, found, err := P.scan(key)
	if err != nil {
		return
	}
	if !found || utils.IsSentinel(raw) {
		err = errs.NoRecordFound{}
	}

	return
}

// Set - Writes raw to the slot already holding key, or else to the first empty slot in the window.
// It returns an error of type errs.ProbeExhausted if the window holds neither.
func (P *Probed) Set(key, raw []byte) (slot int64, err error) {
	slot, _, found, err := P.scan(key)
	if err != nil {
		return
	}
	if !found {
		err = errs.NewProbeExhausted("no matching or empty slot in window")
		return
	}

	err = P.Write(slot, raw)

	return
}

// scan - Walks the window of key slot by slot and stops at the first slot matching key or at the first empty slot.
// Records are never removed, so an empty slot ends the search for a key as well.
func (P *Probed) scan(key []byte) (slot int64, raw []byte, found bool, err error) {
	start := P.AddressFor(key)
	window, err := P.ReadRange(start, P.probeSize)
	if err != nil {
		return
	}

	for i := int64(0); i < P.probeSize; i++ {
		s := window[i*P.slotSize : (i+1)*P.slotSize]
		if utils.IsSentinel(s) || utils.IsEqual(s[:P.keySize], key) {
			slot = start + i
			raw = s
			found = true
			return
		}
	}

	return
}
