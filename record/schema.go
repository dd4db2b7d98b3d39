package record

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/gostonefire/filecollections/errs"
)

// ChecksumLength - Number of bytes of the CRC32 checksum appended to every encoded record
const ChecksumLength = 4

// Field - Describes one typed, fixed width field of a schema.
//   - Name is the field name, unique within a schema
//   - Layout is the binary layout of the field
//   - Key marks the field as part of the record key
//   - Default is the value returned for a field that was never set, nil means the layout default
type Field struct {
	Name    string
	Layout  Layout
	Key     bool
	Default any
}

// Schema - Ordered list of fields for one entity type. Key fields are laid out first, contiguously,
// so the key prefix of an encoded record can be compared without decoding the full record.
type Schema struct {
	fields      []Field
	offsets     []int
	index       map[string]int
	keyCount    int
	keySize     int
	payloadSize int
	padded      bool
}

// NewSchema - Returns a new Schema given fields in any order.
// Key fields are placed first and data fields after, each group in ascending field name order.
//
// It returns:
//   - schema is a pointer to the new Schema
//   - err is a standard error if a field is invalid or names are duplicated
func NewSchema(fields ...Field) (schema *Schema, err error) {
	if len(fields) == 0 {
		err = fmt.Errorf("a schema needs at least one field")
		return
	}

	var keys, data []Field
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			err = fmt.Errorf("field name can not be empty")
			return
		}
		if f.Layout == nil {
			err = fmt.Errorf("field %s has no layout", f.Name)
			return
		}
		if seen[f.Name] {
			err = fmt.Errorf("field %s is defined more than once", f.Name)
			return
		}
		seen[f.Name] = true

		if f.Default == nil {
			f.Default = f.Layout.Default()
		} else {
			f.Default, err = f.Layout.Normalize(f.Default)
			if err != nil {
				err = fmt.Errorf("invalid default for field %s: %w", f.Name, err)
				return
			}
		}

		if f.Key {
			keys = append(keys, f)
		} else {
			data = append(data, f)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	sort.Slice(data, func(i, j int) bool { return data[i].Name < data[j].Name })

	schema = &Schema{
		fields:   append(keys, data...),
		index:    make(map[string]int, len(fields)),
		keyCount: len(keys),
	}
	schema.offsets = make([]int, len(schema.fields))

	offset := 0
	for i, f := range schema.fields {
		schema.index[f.Name] = i
		schema.offsets[i] = offset
		offset += f.Layout.Size()
		if f.Key {
			schema.keySize = offset
		}
	}
	schema.payloadSize = offset

	// An all 0xFF payload whose checksum is also all 0xFF would be indistinguishable from an empty slot,
	// a zero pad byte makes every valid record differ from the sentinel.
	if sentinelCollides(schema.payloadSize) {
		schema.payloadSize++
		schema.padded = true
	}

	return
}

// sentinelCollides - Returns true if an all 0xFF payload of given size would checksum to all 0xFF
func sentinelCollides(payloadSize int) bool {
	payload := []byte(strings.Repeat("\xff", payloadSize))
	return crc32.ChecksumIEEE(payload) == 0xFFFFFFFF
}

// Fields - Returns the fields in their encoded order
func (S *Schema) Fields() []Field {
	fields := make([]Field, len(S.fields))
	copy(fields, S.fields)
	return fields
}

// Field - Returns the named field and true, or false if the schema has no such field
func (S *Schema) Field(name string) (field Field, ok bool) {
	i, ok := S.index[name]
	if !ok {
		return
	}
	field = S.fields[i]
	return
}

// HasKeys - Returns true if the schema has at least one key field
func (S *Schema) HasKeys() bool {
	return S.keyCount > 0
}

// KeySize - Returns the number of bytes occupied by the key fields
func (S *Schema) KeySize() int {
	return S.keySize
}

// PayloadSize - Returns the number of bytes covered by the checksum
func (S *Schema) PayloadSize() int {
	return S.payloadSize
}

// RecordSize - Returns the total encoded size of a record, payload plus checksum
func (S *Schema) RecordSize() int {
	return S.payloadSize + ChecksumLength
}

// LookupSize - Returns the size of the bytes used to find a record in a probed block,
// the key prefix if the schema has keys or else the full encoded record
func (S *Schema) LookupSize() int {
	if S.HasKeys() {
		return S.keySize
	}
	return S.RecordSize()
}

// String - Returns the schema in the textual form accepted by ParseSchema
func (S *Schema) String() string {
	parts := make([]string, len(S.fields))
	for i, f := range S.fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, f.Layout.Name())
		if f.Key {
			parts[i] += ":key"
		}
	}
	return strings.Join(parts, ", ")
}

// Encode - Packs key fields then data fields into a fixed size buffer and appends a CRC32 checksum
// over the payload. Unset fields are packed with their default value.
func (S *Schema) Encode(r *Record) (buf []byte, err error) {
	if r.schema != S {
		err = errs.NewSchemaMismatch("record belongs to another schema")
		return
	}

	buf = make([]byte, S.RecordSize())
	for i, f := range S.fields {
		f.Layout.Pack(buf[S.offsets[i]:], r.value(i))
	}
	binary.LittleEndian.PutUint32(buf[S.payloadSize:], crc32.ChecksumIEEE(buf[:S.payloadSize]))

	return
}

// EncodeKey - Packs only the key fields, in the same order and layout as the key prefix of Encode
func (S *Schema) EncodeKey(r *Record) (buf []byte, err error) {
	if r.schema != S {
		err = errs.NewSchemaMismatch("record belongs to another schema")
		return
	}

	buf = make([]byte, S.keySize)
	for i := 0; i < S.keyCount; i++ {
		S.fields[i].Layout.Pack(buf[S.offsets[i]:], r.value(i))
	}

	return
}

// LookupKey - Returns the bytes used to address and compare the record in a probed block
func (S *Schema) LookupKey(r *Record) ([]byte, error) {
	if S.HasKeys() {
		return S.EncodeKey(r)
	}
	return S.Encode(r)
}

// Decode - Validates the checksum and unpacks fields into a new record.
// It returns an error of type errs.CorruptRecord if the checksum doesn't match.
func (S *Schema) Decode(buf []byte) (r *Record, err error) {
	if len(buf) != S.RecordSize() {
		err = errs.NewCorruptRecord(fmt.Sprintf("record length %d, expected %d", len(buf), S.RecordSize()))
		return
	}

	stored := binary.LittleEndian.Uint32(buf[S.payloadSize:])
	computed := crc32.ChecksumIEEE(buf[:S.payloadSize])
	if stored != computed {
		err = errs.NewCorruptRecord(fmt.Sprintf("bad record checksum %x != %x", computed, stored))
		return
	}
	if S.padded && buf[S.payloadSize-1] != 0 {
		err = errs.NewCorruptRecord("non zero record pad byte")
		return
	}

	r = S.New()
	for i, f := range S.fields {
		r.values[i] = f.Layout.Unpack(buf[S.offsets[i]:])
		r.set[i] = true
	}

	return
}

// Join - Returns a schema where every field of S is a key field followed by every field of values as data fields.
// This is the key ++ value shape stored by a hash map.
func (S *Schema) Join(values *Schema) (*Schema, error) {
	fields := make([]Field, 0, len(S.fields)+len(values.fields))
	for _, f := range S.fields {
		f.Key = true
		fields = append(fields, f)
	}
	for _, f := range values.fields {
		f.Key = false
		fields = append(fields, f)
	}

	return NewSchema(fields...)
}

// Project - Returns a new record of schema S holding the values of the same named fields set in r
func (S *Schema) Project(r *Record) (p *Record, err error) {
	p = S.New()
	for i, f := range r.schema.fields {
		if !r.set[i] {
			continue
		}
		if _, ok := S.index[f.Name]; !ok {
			continue
		}
		err = p.Set(f.Name, r.values[i])
		if err != nil {
			return
		}
	}

	return
}
