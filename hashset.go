package filecollections

import (
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/hashfunc"
	"github.com/gostonefire/filecollections/internal/block"
	"github.com/gostonefire/filecollections/internal/growth"
	"github.com/gostonefire/filecollections/internal/model"
	"github.com/gostonefire/filecollections/internal/utils"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
)

// probedFactory - Creates hashed generations where the slot of a record is selected from its lookup key
type probedFactory struct {
	slotSize  int64
	keySize   int64
	probeSize int64
	hashAlg   hashfunc.HashAlgorithm
}

func (P probedFactory) CreateGeneration(st store.Store, capacity int64) (*block.Probed, error) {
	fixed, err := block.Create(st, P.slotSize, capacity)
	if err != nil {
		return nil, err
	}
	return block.NewProbed(fixed, P.keySize, P.probeSize, P.hashAlg), nil
}

func (P probedFactory) OpenGeneration(st store.Store, address int64) (*block.Probed, error) {
	fixed, err := block.Open(st, address, P.slotSize)
	if err != nil {
		return nil, err
	}
	return block.NewProbed(fixed, P.keySize, P.probeSize, P.hashAlg), nil
}

func (P probedFactory) IsIndexBased() bool {
	return false
}

func newProbedFactory(schema *record.Schema, cfg Conf) probedFactory {
	return probedFactory{
		slotSize:  int64(schema.RecordSize()),
		keySize:   int64(schema.LookupSize()),
		probeSize: cfg.ProbeSize,
		hashAlg:   cfg.HashAlgorithm,
	}
}

// hashed - Lookup and insert policy shared by Hashset and Hashmap
type hashed struct {
	collection[*block.Probed]
}

// find - Searches generations newest first for the slot holding key.
// It returns an error of type errs.NoRecordFound if no generation holds key.
func (H *hashed) find(key []byte) (g *block.Probed, loc record.Location, raw []byte, err error) {
	generations := H.manager.Generations()
	for i := len(generations) - 1; i >= 0; i-- {
		var slot int64
		slot, raw, err = generations[i].Find(key)
		if err == nil {
			g = generations[i]
			loc = record.Location{Generation: i, Slot: slot}
			return
		}
		if !isNotFound(err) {
			return
		}
	}

	err = errs.NoRecordFound{}

	return
}

// put - Writes raw at the slot already holding key, or inserts it as a new record.
// New records go to the newest generation with room in the window of key, scanning back to the oldest unless
// newestOnly is set. A new generation is added when no tried generation has room.
func (H *hashed) put(key, raw []byte, newestOnly bool) (loc record.Location, err error) {
	g, loc, _, err := H.find(key)
	if err == nil {
		err = g.Write(loc.Slot, raw)
		return
	}
	if !isNotFound(err) {
		return
	}

	generations := H.manager.Generations()
	last := 0
	if newestOnly {
		last = len(generations) - 1
	}
	for i := len(generations) - 1; i >= last; i-- {
		var slot int64
		slot, err = generations[i].Set(key, raw)
		if err == nil {
			loc = record.Location{Generation: i, Slot: slot}
			return
		}
		if !isExhausted(err) {
			return
		}
	}

	g, err = H.manager.EnsureCapacity()
	if err != nil {
		return
	}
	slot, err := g.Set(key, raw)
	if err != nil {
		err = fmt.Errorf("unable to insert into new generation: %w", err)
		return
	}
	loc = record.Location{Generation: H.manager.Count() - 1, Slot: slot}

	return
}

// Hashset - A growing set of fixed size records.
// Records are identified by their key fields, or by all fields if the schema has no key fields.
// Adding a record whose key already exists replaces the stored record.
type Hashset struct {
	hashed
}

// NewHashset - Creates a new hash set in st, the set root is allocated at the current end of the store
func NewHashset(st store.Store, schema *record.Schema, cfg Conf) (hashset *Hashset, err error) {
	cfg = cfg.withDefaults()

	manager, err := growth.New[*block.Probed](st, newProbedFactory(schema, cfg), cfg.BaseCapacity, cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to create hash set: %w", err)
		return
	}

	hashset = newHashset(manager, schema)
	hashset.sugar.Debugw("hash set created", "address", manager.Address(), "schema", schema.String())

	return
}

// OpenHashset - Opens an existing hash set with root at address.
// Schema, ProbeSize and HashAlgorithm must be the same as when the set was created.
func OpenHashset(st store.Store, address int64, schema *record.Schema, cfg Conf) (hashset *Hashset, err error) {
	cfg = cfg.withDefaults()

	manager, err := growth.Open[*block.Probed](st, address, newProbedFactory(schema, cfg), cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to open hash set: %w", err)
		return
	}

	hashset = newHashset(manager, schema)

	return
}

func newHashset(manager *growth.Manager[*block.Probed], schema *record.Schema) *Hashset {
	return &Hashset{hashed{collection[*block.Probed]{
		manager: manager,
		schema:  schema,
		kind:    model.KindHashset,
		sugar:   manager.Logger(),
	}}}
}

// Add - Adds r to the set, replacing any stored record with the same key, and binds r to its slot.
// It returns an error of type errs.CollectionFull if a new generation is needed but the directory is full.
func (H *Hashset) Add(r *record.Record) (err error) {
	raw, err := H.schema.Encode(r)
	if err != nil {
		return
	}
	key, err := H.schema.LookupKey(r)
	if err != nil {
		return
	}

	loc, err := H.put(key, raw, false)
	if err != nil {
		return
	}
	r.Bind(loc)

	return
}

// Get - Returns the stored record with the same key as r, bound to its slot.
// It returns an error of type errs.NoRecordFound if there is no such record.
func (H *Hashset) Get(r *record.Record) (stored *record.Record, err error) {
	key, err := H.schema.LookupKey(r)
	if err != nil {
		return
	}

	_, loc, raw, err := H.find(key)
	if err != nil {
		return
	}

	return H.decode(loc, raw)
}

// Contains - Returns true if the set holds a record with the same key as r
func (H *Hashset) Contains(r *record.Record) (bool, error) {
	_, err := H.Get(r)
	if isNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// Commit - Writes a record previously returned by Get or given to Add back to its slot.
// Only data fields may have changed, a record with changed key fields must be added instead.
func (H *Hashset) Commit(r *record.Record) (err error) {
	raw, err := H.schema.Encode(r)
	if err != nil {
		return
	}
	key, err := H.schema.LookupKey(r)
	if err != nil {
		return
	}

	g, loc, stored, err := H.readBound(r)
	if err != nil {
		return
	}
	if !utils.IsEqual(stored[:len(key)], key) {
		err = fmt.Errorf("key of record bound to generation %d slot %d has changed", loc.Generation, loc.Slot)
		return
	}

	return g.Write(loc.Slot, raw)
}

// Range - Calls fn for every record in the set, oldest generation first. Iteration stops at the first error.
func (H *Hashset) Range(fn func(r *record.Record) error) error {
	return H.rangeRecords(fn)
}
