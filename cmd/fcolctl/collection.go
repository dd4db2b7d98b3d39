package main

import (
	"fmt"
	"strings"

	fc "github.com/gostonefire/filecollections"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
)

// opened - A collection opened from a file along with its store and schemas
type opened struct {
	hdr    header
	st     store.Store
	schema *record.Schema
	values *record.Schema
	array  *fc.Array
	set    *fc.Hashset
	m      *fc.Hashmap
}

// openStore - Opens name as a plain file store or, with --mmap, as a memory mapped store
func (o *options) openStore(name string, create bool) (store.Store, error) {
	if o.mmap {
		return store.OpenMmap(name)
	}
	if create {
		return store.CreateFile(name)
	}
	return store.OpenFile(name)
}

// openCollection - Opens the store and the collection described by its header
func openCollection(o *options, name string) (c *opened, err error) {
	st, err := o.openStore(name, false)
	if err != nil {
		return
	}

	c = &opened{st: st}
	defer func() {
		if err != nil {
			_ = st.Close()
			c = nil
		}
	}()

	c.hdr, err = readHeader(st)
	if err != nil {
		return
	}
	c.schema, err = record.ParseSchema(c.hdr.Schema)
	if err != nil {
		return
	}

	cfg := fc.Conf{ProbeSize: c.hdr.ProbeSize, Logger: o.logger()}
	switch c.hdr.Kind {
	case fc.KindArray:
		c.array, err = fc.OpenArray(st, c.hdr.Address, c.schema, cfg)
	case fc.KindHashset:
		c.set, err = fc.OpenHashset(st, c.hdr.Address, c.schema, cfg)
	case fc.KindHashmap:
		c.values, err = record.ParseSchema(c.hdr.Values)
		if err != nil {
			return
		}
		c.m, err = fc.OpenHashmap(st, c.hdr.Address, c.schema, c.values, cfg)
	default:
		err = fmt.Errorf("unknown collection kind %q", c.hdr.Kind)
	}

	return
}

// Close - Closes the store, which also truncates memory mapped stores to their logical size
func (C *opened) Close() error {
	return C.st.Close()
}

func (C *opened) Info() (fc.Info, error) {
	switch {
	case C.array != nil:
		return C.array.Info()
	case C.set != nil:
		return C.set.Info()
	default:
		return C.m.Info()
	}
}

func (C *opened) Stat() (fc.Stat, error) {
	switch {
	case C.array != nil:
		return C.array.Stat()
	case C.set != nil:
		return C.set.Stat()
	default:
		return C.m.Stat()
	}
}

// parseAssignments - Builds records from name=value arguments. Each name is looked up first in primary and then
// in secondary, a nil secondary means every name must belong to primary.
func parseAssignments(args []string, primary, secondary *record.Schema) (p, s *record.Record, err error) {
	p = primary.New()
	if secondary != nil {
		s = secondary.New()
	}

	for _, arg := range args {
		name, text, ok := strings.Cut(arg, "=")
		if !ok {
			err = fmt.Errorf("argument %q must be given as field=value", arg)
			return
		}

		target := p
		field, found := primary.Field(name)
		if !found && secondary != nil {
			target = s
			field, found = secondary.Field(name)
		}
		if !found {
			err = fmt.Errorf("no field named %s", name)
			return
		}

		var v any
		v, err = field.Layout.Parse(text)
		if err != nil {
			return
		}
		err = target.Set(name, v)
		if err != nil {
			return
		}
	}

	return
}
