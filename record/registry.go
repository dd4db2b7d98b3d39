package record

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// tagName - Struct tag holding field options, e.g. `rec:"id,key"` or `rec:"name,string(20),default=nobody"`
const tagName = "rec"

// structSchema - A schema derived from a struct type along with the struct field each schema field maps to
type structSchema struct {
	schema *Schema
	fields map[string]int
}

// Registry - Caches schemas derived from struct types, keyed by type identity
type Registry struct {
	mu      sync.Mutex
	schemas map[reflect.Type]structSchema
}

// NewRegistry - Returns a pointer to an empty Registry
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[reflect.Type]structSchema)}
}

var defaultRegistry = NewRegistry()

// SchemaOf - Returns the schema for struct type T from the default registry, deriving it on first use
func SchemaOf[T any]() (*Schema, error) {
	return defaultRegistry.SchemaFor(reflect.TypeOf((*T)(nil)).Elem())
}

// FromStruct - Returns a record with all fields set from the struct (or pointer to struct) v
func FromStruct(v any) (*Record, error) {
	return defaultRegistry.FromStruct(v)
}

// SchemaFor - Returns the schema derived from struct type t, it is derived once and then reused
func (R *Registry) SchemaFor(t reflect.Type) (*Schema, error) {
	ss, err := R.lookup(t)
	if err != nil {
		return nil, err
	}
	return ss.schema, nil
}

// FromStruct - Returns a record with all fields set from the struct (or pointer to struct) v
func (R *Registry) FromStruct(v any) (r *Record, err error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	ss, err := R.lookup(rv.Type())
	if err != nil {
		return
	}

	r = ss.schema.New()
	for name, i := range ss.fields {
		fv := rv.Field(i)
		var value any
		switch fv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value = fv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			value = fv.Uint()
		default:
			value = fv.Interface()
		}
		err = r.Set(name, value)
		if err != nil {
			r = nil
			return
		}
	}

	return
}

// ToStruct - Copies the record values into the struct pointed to by ptr, which must be of the type the
// record schema was derived from
func (R *Record) ToStruct(ptr any) error {
	return defaultRegistry.ToStruct(R, ptr)
}

// ToStruct - Copies the record values into the struct pointed to by ptr
func (R *Registry) ToStruct(r *Record, ptr any) error {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer || pv.IsNil() {
		return fmt.Errorf("expected a non nil pointer to a struct, got %T", ptr)
	}
	rv := pv.Elem()

	ss, err := R.lookup(rv.Type())
	if err != nil {
		return err
	}
	if ss.schema != r.schema {
		return fmt.Errorf("record schema doesn't belong to %s", rv.Type())
	}

	for name, i := range ss.fields {
		fv := rv.Field(i)
		switch v := r.Get(name).(type) {
		case int64:
			fv.SetInt(v)
		case uint64:
			fv.SetUint(v)
		case float64:
			fv.SetFloat(v)
		case bool:
			fv.SetBool(v)
		case string:
			fv.SetString(v)
		case []byte:
			fv.SetBytes(v)
		}
	}

	return nil
}

// lookup - Returns the cached struct schema for t, deriving it if needed
func (R *Registry) lookup(t reflect.Type) (ss structSchema, err error) {
	R.mu.Lock()
	defer R.mu.Unlock()

	ss, ok := R.schemas[t]
	if ok {
		return
	}

	ss, err = deriveSchema(t)
	if err != nil {
		return
	}
	R.schemas[t] = ss

	return
}

// deriveSchema - Builds a schema from exported struct fields and their rec tags
func deriveSchema(t reflect.Type) (ss structSchema, err error) {
	if t.Kind() != reflect.Struct {
		err = fmt.Errorf("can only derive schemas from structs, got %s", t)
		return
	}

	ss.fields = make(map[string]int)
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get(tagName)
		if tag == "-" {
			continue
		}

		var f Field
		f, err = tagField(sf, tag)
		if err != nil {
			return
		}
		fields = append(fields, f)
		ss.fields[f.Name] = i
	}

	ss.schema, err = NewSchema(fields...)
	if err != nil {
		err = fmt.Errorf("unable to derive schema for %s: %w", t, err)
	}

	return
}

// tagField - Builds a schema field from a struct field and its tag
func tagField(sf reflect.StructField, tag string) (f Field, err error) {
	opts := strings.Split(tag, ",")
	f.Name = strings.TrimSpace(opts[0])
	if f.Name == "" {
		f.Name = strings.ToLower(sf.Name)
	}

	var defaultText string
	var hasDefault bool
	for _, opt := range opts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "key":
			f.Key = true
		case strings.HasPrefix(opt, "default="):
			defaultText = strings.TrimPrefix(opt, "default=")
			hasDefault = true
		default:
			f.Layout, err = ParseLayout(opt)
			if err != nil {
				err = fmt.Errorf("field %s: %w", sf.Name, err)
				return
			}
		}
	}

	if f.Layout == nil {
		f.Layout, err = kindLayout(sf.Type)
		if err != nil {
			err = fmt.Errorf("field %s: %w", sf.Name, err)
			return
		}
	}
	if hasDefault {
		f.Default, err = f.Layout.Parse(defaultText)
	}

	return
}

// kindLayout - Returns the natural layout for fixed size Go kinds
func kindLayout(t reflect.Type) (Layout, error) {
	switch t.Kind() {
	case reflect.Int8:
		return Int8(), nil
	case reflect.Int16:
		return Int16(), nil
	case reflect.Int32:
		return Int32(), nil
	case reflect.Int, reflect.Int64:
		return Int64(), nil
	case reflect.Uint8:
		return Uint8(), nil
	case reflect.Uint16:
		return Uint16(), nil
	case reflect.Uint32:
		return Uint32(), nil
	case reflect.Uint, reflect.Uint64:
		return Uint64(), nil
	case reflect.Float32:
		return Float32(), nil
	case reflect.Float64:
		return Float64(), nil
	case reflect.Bool:
		return Bool(), nil
	}
	return nil, fmt.Errorf("type %s needs an explicit layout such as string(20) or bytes(16)", t)
}
