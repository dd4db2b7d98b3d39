package filecollections

import (
	"fmt"
	"math/bits"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/block"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/internal/growth"
	"github.com/gostonefire/filecollections/internal/model"
	"github.com/gostonefire/filecollections/internal/utils"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
)

// arrayFactory - Creates index based generations, slot i of a generation is found at a fixed offset
type arrayFactory struct {
	slotSize int64
}

func (A arrayFactory) CreateGeneration(st store.Store, capacity int64) (*block.Fixed, error) {
	return block.Create(st, A.slotSize, capacity)
}

func (A arrayFactory) OpenGeneration(st store.Store, address int64) (*block.Fixed, error) {
	return block.Open(st, address, A.slotSize)
}

func (A arrayFactory) IsIndexBased() bool {
	return true
}

// Array - A growing array of fixed size records addressed by index.
// Indexes are spread over generations back to back, generation g holds the indexes from base * (2^g - 1)
// and up to base * (2^(g+1) - 1), exclusive. Setting or getting an index beyond the capacity grows the array.
type Array struct {
	collection[*block.Fixed]
}

// NewArray - Creates a new array in st, the array root is allocated at the current end of the store.
//   - st is the store to keep the array in, it may hold other collections as well
//   - schema is the schema of the records to store
//   - cfg is the configuration, only BaseCapacity and Logger are used by arrays
func NewArray(st store.Store, schema *record.Schema, cfg Conf) (array *Array, err error) {
	cfg = cfg.withDefaults()

	manager, err := growth.New[*block.Fixed](st, arrayFactory{slotSize: int64(schema.RecordSize())}, cfg.BaseCapacity, cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to create array: %w", err)
		return
	}

	array = newArray(manager, schema)
	array.sugar.Debugw("array created", "address", manager.Address(), "schema", schema.String())

	return
}

// OpenArray - Opens an existing array with root at address, schema must be the schema the array was created with
func OpenArray(st store.Store, address int64, schema *record.Schema, cfg Conf) (array *Array, err error) {
	cfg = cfg.withDefaults()

	manager, err := growth.Open[*block.Fixed](st, address, arrayFactory{slotSize: int64(schema.RecordSize())}, cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to open array: %w", err)
		return
	}

	array = newArray(manager, schema)

	return
}

func newArray(manager *growth.Manager[*block.Fixed], schema *record.Schema) *Array {
	return &Array{collection[*block.Fixed]{
		manager: manager,
		schema:  schema,
		kind:    model.KindArray,
		sugar:   manager.Logger(),
	}}
}

// Locate - Returns the generation and the slot within it that hold index, given the base capacity.
// It's the inverse of the back to back layout: generation g starts at index base * (2^g - 1).
func Locate(index, base int64) (gen int, slot int64) {
	gen = bits.Len64(uint64((index+base)/base)) - 1
	slot = index - base*(utils.Pow2(gen)-1)
	return
}

// Get - Returns the record at index, bound to its slot so it can be changed and committed.
// It returns an error of type errs.NoRecordFound if nothing has been set at index,
// errs.IndexOutOfRange for a negative index and errs.CorruptRecord if the slot fails validation.
func (A *Array) Get(index int64) (r *record.Record, err error) {
	g, gen, slot, err := A.reach(index)
	if err != nil {
		return
	}

	raw, err := g.Read(slot)
	if err != nil {
		return
	}
	if utils.IsSentinel(raw) {
		err = errs.NoRecordFound{}
		return
	}

	r, err = A.decode(record.Location{Generation: gen, Slot: slot}, raw)

	return
}

// Set - Writes r at index and binds r to the slot.
// It returns an error of type errs.CollectionFull if index is beyond what a full growth directory can address.
func (A *Array) Set(index int64, r *record.Record) (err error) {
	raw, err := A.schema.Encode(r)
	if err != nil {
		return
	}

	g, gen, slot, err := A.reach(index)
	if err != nil {
		return
	}

	err = g.Write(slot, raw)
	if err != nil {
		return
	}
	r.Bind(record.Location{Generation: gen, Slot: slot})

	return
}

// Commit - Writes a record previously returned by Get or given to Set back to its slot
func (A *Array) Commit(r *record.Record) (err error) {
	raw, err := A.schema.Encode(r)
	if err != nil {
		return
	}

	g, loc, _, err := A.readBound(r)
	if err != nil {
		return
	}

	return g.Write(loc.Slot, raw)
}

// Range - Calls fn for every index that has been set, in index order. Iteration stops at the first error.
func (A *Array) Range(fn func(index int64, r *record.Record) error) error {
	return A.rangeRecords(func(r *record.Record) error {
		loc, _ := r.Location()
		return fn(A.manager.Base()*(utils.Pow2(loc.Generation)-1)+loc.Slot, r)
	})
}

// Len - Returns the number of indexes the array can hold without growing
func (A *Array) Len() int64 {
	return A.manager.Capacity()
}

// reach - Returns the generation and slot of index, growing the array until the generation exists
func (A *Array) reach(index int64) (g *block.Fixed, gen int, slot int64, err error) {
	if index < 0 {
		err = errs.NewIndexOutOfRange(fmt.Sprintf("negative index %d", index))
		return
	}

	gen, slot = Locate(index, A.manager.Base())
	if gen >= conf.DirectorySlots {
		err = errs.NewCollectionFull(fmt.Sprintf("index %d needs generation %d", index, gen))
		return
	}

	for A.manager.Count() <= gen {
		_, err = A.manager.EnsureCapacity()
		if err != nil {
			return
		}
	}

	g, err = A.manager.Generation(gen)

	return
}
