package block

import (
	"encoding/binary"
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/internal/utils"
	"github.com/gostonefire/filecollections/store"
)

// Fixed - A contiguous region of equally sized slots in a store, preceded by an 8 byte header holding the byte
// length of all slots. The block address is the offset of the header, slot 0 begins right after it.
// A slot that was never written holds only sentinel bytes.
type Fixed struct {
	st        store.Store
	address   int64
	slotSize  int64
	slotCount int64
}

// Create - Allocates a new block at the current end of the store and fills every slot with sentinel bytes.
// The sentinel fill is written in chunks so that large blocks don't need one large buffer.
func Create(st store.Store, slotSize, slotCount int64) (fixed *Fixed, err error) {
	if slotSize <= 0 || slotCount <= 0 {
		err = fmt.Errorf("slot size and slot count must be positive, got %d and %d", slotSize, slotCount)
		return
	}

	address, err := st.Size()
	if err != nil {
		err = fmt.Errorf("unable to get store size: %w", err)
		return
	}

	length := slotSize * slotCount
	header := make([]byte, conf.BlockHeaderLength)
	binary.LittleEndian.PutUint64(header, uint64(length))
	_, err = st.WriteAt(header, address)
	if err != nil {
		err = fmt.Errorf("unable to write block header: %w", err)
		return
	}

	chunkLength := conf.AllocationChunk
	if length < chunkLength {
		chunkLength = length
	}
	chunk := utils.FillSentinel(chunkLength)
	offset := address + conf.BlockHeaderLength
	for remaining := length; remaining > 0; {
		n := chunkLength
		if remaining < n {
			n = remaining
		}
		_, err = st.WriteAt(chunk[:n], offset)
		if err != nil {
			err = fmt.Errorf("unable to initiate block slots: %w", err)
			return
		}
		offset += n
		remaining -= n
	}

	fixed = &Fixed{st: st, address: address, slotSize: slotSize, slotCount: slotCount}

	return
}

// Open - Opens an existing block at address, the slot count is derived from the header.
// It returns an error of type errs.SchemaMismatch if the block length is no multiple of slotSize.
func Open(st store.Store, address, slotSize int64) (fixed *Fixed, err error) {
	if slotSize <= 0 {
		err = fmt.Errorf("slot size must be positive, got %d", slotSize)
		return
	}

	header := make([]byte, conf.BlockHeaderLength)
	_, err = st.ReadAt(header, address)
	if err != nil {
		err = fmt.Errorf("unable to read block header at %d: %w", address, err)
		return
	}

	length := int64(binary.LittleEndian.Uint64(header))
	if length <= 0 || length%slotSize != 0 {
		err = errs.NewSchemaMismatch(fmt.Sprintf("block length %d at %d is no multiple of slot size %d", length, address, slotSize))
		return
	}

	fixed = &Fixed{st: st, address: address, slotSize: slotSize, slotCount: length / slotSize}

	return
}

// Address - Returns the store offset of the block header
func (F *Fixed) Address() int64 {
	return F.address
}

// SlotSize - Returns the byte size of one slot
func (F *Fixed) SlotSize() int64 {
	return F.slotSize
}

// Capacity - Returns the number of slots in the block
func (F *Fixed) Capacity() int64 {
	return F.slotCount
}

// Length - Returns the total byte length of the block including its header
func (F *Fixed) Length() int64 {
	return conf.BlockHeaderLength + F.slotSize*F.slotCount
}

// slotOffset - Returns the store offset of slot
func (F *Fixed) slotOffset(slot int64) int64 {
	return F.address + conf.BlockHeaderLength + slot*F.slotSize
}

// Read - Returns the raw bytes of a slot.
// It returns an error of type errs.IndexOutOfRange if slot is outside the block.
func (F *Fixed) Read(slot int64) (raw []byte, err error) {
	return F.ReadRange(slot, 1)
}

// ReadRange - Returns the raw bytes of count consecutive slots starting at first
func (F *Fixed) ReadRange(first, count int64) (raw []byte, err error) {
	if first < 0 || count < 0 || first+count > F.slotCount {
		err = errs.NewIndexOutOfRange(fmt.Sprintf("slots %d to %d outside block of %d slots", first, first+count-1, F.slotCount))
		return
	}

	raw = make([]byte, count*F.slotSize)
	_, err = F.st.ReadAt(raw, F.slotOffset(first))
	if err != nil {
		raw = nil
		err = fmt.Errorf("unable to read slots from block at %d: %w", F.address, err)
	}

	return
}

// Write - Writes raw, which must be exactly one slot long, to a slot.
// It returns an error of type errs.IndexOutOfRange if slot is outside the block.
func (F *Fixed) Write(slot int64, raw []byte) (err error) {
	if slot < 0 || slot >= F.slotCount {
		err = errs.NewIndexOutOfRange(fmt.Sprintf("slot %d outside block of %d slots", slot, F.slotCount))
		return
	}
	if int64(len(raw)) != F.slotSize {
		err = errs.NewSchemaMismatch(fmt.Sprintf("record of %d bytes written to slot of %d bytes", len(raw), F.slotSize))
		return
	}

	_, err = F.st.WriteAt(raw, F.slotOffset(slot))
	if err != nil {
		err = fmt.Errorf("unable to write slot to block at %d: %w", F.address, err)
	}

	return
}
