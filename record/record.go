package record

import (
	"bytes"
	"fmt"
	"strings"
)

// Location - Identifies the slot a record was read from.
//   - Generation is the index of the generation (block) within its container
//   - Slot is the slot index within that generation
type Location struct {
	Generation int
	Slot       int64
}

// Record - An instantiated value of a schema
type Record struct {
	schema   *Schema
	values   []any
	set      []bool
	location *Location
}

// New - Returns an empty record where every field returns its default value
func (S *Schema) New() *Record {
	return &Record{
		schema: S,
		values: make([]any, len(S.fields)),
		set:    make([]bool, len(S.fields)),
	}
}

// NewWith - Returns a record with the given field values set
func (S *Schema) NewWith(values map[string]any) (r *Record, err error) {
	r = S.New()
	for name, v := range values {
		err = r.Set(name, v)
		if err != nil {
			r = nil
			return
		}
	}

	return
}

// Schema - Returns the schema of the record
func (R *Record) Schema() *Schema {
	return R.schema
}

// Set - Sets the value of a field, the value is converted to the canonical type of the field layout
func (R *Record) Set(name string, v any) error {
	i, ok := R.schema.index[name]
	if !ok {
		return fmt.Errorf("schema has no field %s", name)
	}

	n, err := R.schema.fields[i].Layout.Normalize(v)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	R.values[i] = n
	R.set[i] = true

	return nil
}

// Get - Returns the value of a field, or its default if never set. Unknown fields return nil.
func (R *Record) Get(name string) any {
	i, ok := R.schema.index[name]
	if !ok {
		return nil
	}
	return R.value(i)
}

// IsSet - Returns true if the field has been set or the record was decoded from bytes
func (R *Record) IsSet(name string) bool {
	i, ok := R.schema.index[name]
	return ok && R.set[i]
}

func (R *Record) value(i int) any {
	if R.set[i] {
		return R.values[i]
	}
	return R.schema.fields[i].Default
}

// Int64 - Returns a signed integer field, zero if the field is of another type
func (R *Record) Int64(name string) int64 {
	v, _ := R.Get(name).(int64)
	return v
}

// Uint64 - Returns an unsigned integer field, zero if the field is of another type
func (R *Record) Uint64(name string) uint64 {
	v, _ := R.Get(name).(uint64)
	return v
}

// Float64 - Returns a float field, zero if the field is of another type
func (R *Record) Float64(name string) float64 {
	v, _ := R.Get(name).(float64)
	return v
}

// Bool - Returns a boolean field, false if the field is of another type
func (R *Record) Bool(name string) bool {
	v, _ := R.Get(name).(bool)
	return v
}

// Str - Returns a string field, empty if the field is of another type
func (R *Record) Str(name string) string {
	v, _ := R.Get(name).(string)
	return v
}

// Bytes - Returns a bytes field, nil if the field is of another type
func (R *Record) Bytes(name string) []byte {
	v, _ := R.Get(name).([]byte)
	return v
}

// Location - Returns the slot the record is bound to, false if it isn't bound
func (R *Record) Location() (loc Location, ok bool) {
	if R.location == nil {
		return
	}
	return *R.location, true
}

// Bind - Binds the record to a slot so that it can later be committed in place
func (R *Record) Bind(loc Location) {
	R.location = &loc
}

// Unbind - Removes any slot binding
func (R *Record) Unbind() {
	R.location = nil
}

// Clone - Returns a copy of the record including its binding
func (R *Record) Clone() *Record {
	c := R.schema.New()
	copy(c.values, R.values)
	copy(c.set, R.set)
	if R.location != nil {
		loc := *R.location
		c.location = &loc
	}
	return c
}

// Equal - Returns true if o has the same schema and every field has an equal value
func (R *Record) Equal(o *Record) bool {
	if o == nil || R.schema != o.schema {
		return false
	}
	for i := range R.schema.fields {
		a, b := R.value(i), o.value(i)
		if ab, ok := a.([]byte); ok {
			if !bytes.Equal(ab, b.([]byte)) {
				return false
			}
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// Values - Returns all field values keyed by name
func (R *Record) Values() map[string]any {
	values := make(map[string]any, len(R.schema.fields))
	for i, f := range R.schema.fields {
		values[f.Name] = R.value(i)
	}
	return values
}

// String - Returns a readable representation, e.g. {id: 1, age: 10}
func (R *Record) String() string {
	parts := make([]string, len(R.schema.fields))
	for i, f := range R.schema.fields {
		v := R.value(i)
		if b, ok := v.([]byte); ok {
			parts[i] = fmt.Sprintf("%s: %x", f.Name, b)
			continue
		}
		parts[i] = fmt.Sprintf("%s: %v", f.Name, v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
