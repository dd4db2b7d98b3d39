package filecollections

import (
	"errors"
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/internal/growth"
	"github.com/gostonefire/filecollections/internal/model"
	"github.com/gostonefire/filecollections/internal/utils"
	"github.com/gostonefire/filecollections/record"
	"go.uber.org/zap"
)

// scanSlots - Max number of slots read per store read when walking a generation
const scanSlots int64 = 4096

// generation - Slot access shared by index based and hashed generations
type generation interface {
	growth.Generation
	SlotSize() int64
	Read(slot int64) ([]byte, error)
	ReadRange(first, count int64) ([]byte, error)
	Write(slot int64, raw []byte) error
}

// probedGeneration - Extra information available from hashed generations
type probedGeneration interface {
	ProbeSize() int64
	ProbeRange() int64
}

// collection - The parts common to all collection flavors, a growth manager and the schema of stored records
type collection[G generation] struct {
	manager *growth.Manager[G]
	schema  *record.Schema
	kind    string
	sugar   *zap.SugaredLogger
}

// Address - Returns the root address of the collection, give it to the matching Open function to reopen the collection
func (C *collection[G]) Address() int64 {
	return C.manager.Address()
}

// Schema - Returns the schema of the records stored
func (C *collection[G]) Schema() *record.Schema {
	return C.schema
}

// Info - Returns information about the collection layout
func (C *collection[G]) Info() (info Info, err error) {
	storeSize, err := C.manager.Store().Size()
	if err != nil {
		err = fmt.Errorf("unable to get store size: %w", err)
		return
	}

	info = model.Info{
		Kind:           C.kind,
		Address:        C.manager.Address(),
		BaseCapacity:   C.manager.Base(),
		Capacity:       C.manager.Capacity(),
		DirectorySlots: conf.DirectorySlots,
		Schema:         C.schema.String(),
		StoreSize:      storeSize,
	}

	for i, g := range C.manager.Generations() {
		gi := model.GenerationInfo{
			Generation: i,
			Address:    g.Address(),
			Capacity:   g.Capacity(),
			SlotSize:   g.SlotSize(),
		}
		if p, ok := any(g).(probedGeneration); ok {
			gi.ProbeSize = p.ProbeSize()
			gi.ProbeRange = p.ProbeRange()
		}
		info.Generations = append(info.Generations, gi)
	}

	return
}

// Stat - Reads every slot of every generation and returns usage statistics.
// Corrupt records are counted rather than failing the walk.
func (C *collection[G]) Stat() (stat Stat, err error) {
	generations := C.manager.Generations()
	stat.GenerationRecords = make([]int64, len(generations))

	err = C.walk(func(loc record.Location, raw []byte) error {
		_, dErr := C.schema.Decode(raw)
		if dErr != nil {
			stat.CorruptRecords++
			return nil
		}
		stat.Records++
		stat.GenerationRecords[loc.Generation]++
		return nil
	})
	if err != nil {
		return
	}

	if capacity := C.manager.Capacity(); capacity > 0 {
		stat.FillFactor = float64(stat.Records) / float64(capacity)
	}

	return
}

// walk - Calls fn with the raw content of every occupied slot, oldest generation first and in slot order
func (C *collection[G]) walk(fn func(loc record.Location, raw []byte) error) error {
	for i, g := range C.manager.Generations() {
		slotSize := g.SlotSize()
		for first := int64(0); first < g.Capacity(); first += scanSlots {
			count := scanSlots
			if first+count > g.Capacity() {
				count = g.Capacity() - first
			}

			raw, err := g.ReadRange(first, count)
			if err != nil {
				return err
			}

			for s := int64(0); s < count; s++ {
				slot := raw[s*slotSize : (s+1)*slotSize]
				if utils.IsSentinel(slot) {
					continue
				}
				err = fn(record.Location{Generation: i, Slot: first + s}, slot)
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// rangeRecords - Calls fn with every valid record, bound to its slot. It stops at the first corrupt record.
func (C *collection[G]) rangeRecords(fn func(r *record.Record) error) error {
	return C.walk(func(loc record.Location, raw []byte) error {
		r, err := C.decode(loc, raw)
		if err != nil {
			return err
		}
		return fn(r)
	})
}

// decode - Decodes raw read from loc and binds the record to it
func (C *collection[G]) decode(loc record.Location, raw []byte) (r *record.Record, err error) {
	r, err = C.schema.Decode(raw)
	if err != nil {
		C.sugar.Warnw("corrupt record", "kind", C.kind, "generation", loc.Generation, "slot", loc.Slot, "error", err)
		err = fmt.Errorf("generation %d slot %d: %w", loc.Generation, loc.Slot, err)
		return
	}
	r.Bind(loc)

	return
}

// readBound - Reads the slot a record is bound to.
// It returns an error if the record isn't bound or the slot is outside the collection.
func (C *collection[G]) readBound(r *record.Record) (g G, loc record.Location, raw []byte, err error) {
	loc, ok := r.Location()
	if !ok {
		err = fmt.Errorf("record isn't bound to a slot, only records read from the collection can be committed")
		return
	}

	g, err = C.manager.Generation(loc.Generation)
	if err != nil {
		return
	}
	raw, err = g.Read(loc.Slot)

	return
}

// isNotFound - Returns true if err is errs.NoRecordFound
func isNotFound(err error) bool {
	return errors.Is(err, errs.NoRecordFound{})
}

// isExhausted - Returns true if err is errs.ProbeExhausted
func isExhausted(err error) bool {
	return errors.Is(err, errs.ProbeExhausted{})
}
