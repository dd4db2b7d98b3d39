package filecollections

import (
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/block"
	"github.com/gostonefire/filecollections/internal/growth"
	"github.com/gostonefire/filecollections/internal/model"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
)

// Hashmap - A growing map from key records to value records.
// Each slot stores the key fields followed by the value fields, the key fields alone select and identify the slot.
// A key is updated in whichever generation holds it, new keys are inserted into the newest generation.
type Hashmap struct {
	hashed
	keys   *record.Schema
	values *record.Schema
}

// NewHashmap - Creates a new hash map in st, the map root is allocated at the current end of the store.
//   - keys is the schema of key records, every field of it is part of the key
//   - values is the schema of value records, field names must differ from those of keys
func NewHashmap(st store.Store, keys, values *record.Schema, cfg Conf) (hashmap *Hashmap, err error) {
	cfg = cfg.withDefaults()

	joined, err := keys.Join(values)
	if err != nil {
		err = fmt.Errorf("unable to join key and value schemas: %w", err)
		return
	}

	manager, err := growth.New[*block.Probed](st, newProbedFactory(joined, cfg), cfg.BaseCapacity, cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to create hash map: %w", err)
		return
	}

	hashmap = newHashmap(manager, joined, keys, values)
	hashmap.sugar.Debugw("hash map created", "address", manager.Address(), "keys", keys.String(), "values", values.String())

	return
}

// OpenHashmap - Opens an existing hash map with root at address.
// Schemas, ProbeSize and HashAlgorithm must be the same as when the map was created.
func OpenHashmap(st store.Store, address int64, keys, values *record.Schema, cfg Conf) (hashmap *Hashmap, err error) {
	cfg = cfg.withDefaults()

	joined, err := keys.Join(values)
	if err != nil {
		err = fmt.Errorf("unable to join key and value schemas: %w", err)
		return
	}

	manager, err := growth.Open[*block.Probed](st, address, newProbedFactory(joined, cfg), cfg.Logger)
	if err != nil {
		err = fmt.Errorf("unable to open hash map: %w", err)
		return
	}

	hashmap = newHashmap(manager, joined, keys, values)

	return
}

func newHashmap(manager *growth.Manager[*block.Probed], joined, keys, values *record.Schema) *Hashmap {
	return &Hashmap{
		hashed: hashed{collection[*block.Probed]{
			manager: manager,
			schema:  joined,
			kind:    model.KindHashmap,
			sugar:   manager.Logger(),
		}},
		keys:   keys,
		values: values,
	}
}

// Keys - Returns the schema of key records
func (H *Hashmap) Keys() *record.Schema {
	return H.keys
}

// Values - Returns the schema of value records
func (H *Hashmap) Values() *record.Schema {
	return H.values
}

// join - Returns a stored record holding the fields of key and value, value may be nil
func (H *Hashmap) join(key, value *record.Record) (joined *record.Record, err error) {
	if key.Schema() != H.keys {
		err = errs.NewSchemaMismatch("key record belongs to another schema")
		return
	}
	if value != nil && value.Schema() != H.values {
		err = errs.NewSchemaMismatch("value record belongs to another schema")
		return
	}

	joined = H.schema.New()
	for name, v := range key.Values() {
		if err = joined.Set(name, v); err != nil {
			return
		}
	}
	if value == nil {
		return
	}
	for name, v := range value.Values() {
		if err = joined.Set(name, v); err != nil {
			return
		}
	}

	return
}

// Set - Maps key to value. The value record is bound to the slot so it can later be changed and committed.
// It returns an error of type errs.CollectionFull if a new generation is needed but the directory is full.
func (H *Hashmap) Set(key, value *record.Record) (err error) {
	if value == nil {
		err = fmt.Errorf("value record can not be nil")
		return
	}

	joined, err := H.join(key, value)
	if err != nil {
		return
	}
	raw, err := H.schema.Encode(joined)
	if err != nil {
		return
	}
	lookup, err := H.schema.EncodeKey(joined)
	if err != nil {
		return
	}

	loc, err := H.put(lookup, raw, true)
	if err != nil {
		return
	}
	value.Bind(loc)

	return
}

// Get - Returns the value mapped to key, bound to its slot.
// It returns an error of type errs.NoRecordFound if key isn't in the map.
func (H *Hashmap) Get(key *record.Record) (value *record.Record, err error) {
	joined, err := H.join(key, nil)
	if err != nil {
		return
	}
	lookup, err := H.schema.EncodeKey(joined)
	if err != nil {
		return
	}

	_, loc, raw, err := H.find(lookup)
	if err != nil {
		return
	}

	stored, err := H.decode(loc, raw)
	if err != nil {
		return
	}

	value, err = H.values.Project(stored)
	if err != nil {
		return
	}
	value.Bind(loc)

	return
}

// Contains - Returns true if key is in the map
func (H *Hashmap) Contains(key *record.Record) (bool, error) {
	_, err := H.Get(key)
	if isNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// Commit - Writes a value record previously returned by Get or given to Set back to its slot, keeping the key stored there
func (H *Hashmap) Commit(value *record.Record) (err error) {
	if value.Schema() != H.values {
		err = errs.NewSchemaMismatch("value record belongs to another schema")
		return
	}

	g, loc, raw, err := H.readBound(value)
	if err != nil {
		return
	}

	stored, err := H.decode(loc, raw)
	if err != nil {
		return
	}
	for name, v := range value.Values() {
		if err = stored.Set(name, v); err != nil {
			return
		}
	}

	raw, err = H.schema.Encode(stored)
	if err != nil {
		return
	}

	return g.Write(loc.Slot, raw)
}

// Range - Calls fn with every key and value in the map, oldest generation first. Iteration stops at the first error.
func (H *Hashmap) Range(fn func(key, value *record.Record) error) error {
	return H.rangeRecords(func(stored *record.Record) (err error) {
		key, err := H.keys.Project(stored)
		if err != nil {
			return
		}
		value, err := H.values.Project(stored)
		if err != nil {
			return
		}
		loc, _ := stored.Location()
		value.Bind(loc)

		return fn(key, value)
	})
}
