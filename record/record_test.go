//go:build unit

package record

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

func TestLayout_Normalize(t *testing.T) {
	t.Run("integers are range checked", func(t *testing.T) {
		_, err := Int8().Normalize(127)
		assert.NoError(t, err, "max int8")
		_, err = Int8().Normalize(128)
		assert.Error(t, err, "overflows int8")
		_, err = Int16().Normalize(-32769)
		assert.Error(t, err, "underflows int16")
		_, err = Uint16().Normalize(65536)
		assert.Error(t, err, "overflows uint16")
		_, err = Uint32().Normalize(-1)
		assert.Error(t, err, "negative uint")
		_, err = Int64().Normalize("1")
		assert.Error(t, err, "wrong type")
	})

	t.Run("float32 values are rounded to float32 precision", func(t *testing.T) {
		// Execute
		n, err := Float32().Normalize(0.1)

		// Check
		assert.NoError(t, err, "normalizes")
		assert.Equal(t, float64(float32(0.1)), n, "rounded")
	})

	t.Run("strings are truncated on a rune boundary", func(t *testing.T) {
		// Execute
		n, err := String(5).Normalize("abcåäö")

		// Check
		assert.NoError(t, err, "normalizes")
		assert.Equal(t, "abcå", n, "truncated before a split rune")
	})

	t.Run("strings are NFC normalized", func(t *testing.T) {
		// Prepare
		decomposed := "e\u0301"
		composed := "\u00e9"

		// Execute
		a, _ := String(8).Normalize(decomposed)
		b, _ := String(8).Normalize(composed)

		// Check
		assert.Equal(t, b, a, "canonically equal strings normalize equal")
	})

	t.Run("bytes are copied and truncated", func(t *testing.T) {
		// Prepare
		src := []byte{1, 2, 3, 4}

		// Execute
		n, err := Bytes(3).Normalize(src)
		src[0] = 9

		// Check
		assert.NoError(t, err, "normalizes")
		assert.Equal(t, []byte{1, 2, 3}, n, "copied and truncated")
	})
}

func TestLayout_PackUnpack(t *testing.T) {
	tests := []struct {
		layout Layout
		value  any
	}{
		{Int8(), int64(-128)},
		{Int16(), int64(-1234)},
		{Int32(), int64(-123456)},
		{Int64(), int64(-1234567890123)},
		{Uint8(), uint64(255)},
		{Uint16(), uint64(65535)},
		{Uint32(), uint64(4000000000)},
		{Uint64(), uint64(18000000000000000000)},
		{Float32(), float64(float32(3.25))},
		{Float64(), 2.718281828},
		{Bool(), true},
		{String(10), "hello"},
		{Bytes(6), []byte{0, 1, 2}},
	}

	for _, test := range tests {
		t.Run(test.layout.Name(), func(t *testing.T) {
			// Prepare
			buf := make([]byte, test.layout.Size())

			// Execute
			test.layout.Pack(buf, test.value)
			v := test.layout.Unpack(buf)

			// Check
			assert.Equal(t, test.value, v, "round trips")
		})
	}
}

func TestParseSchema(t *testing.T) {
	t.Run("parses fields with options", func(t *testing.T) {
		// Execute
		schema, err := ParseSchema("id:uint32:key, age:uint32:default=18, name:string(20), raw:bytes(4)")

		// Check
		require.NoError(t, err, "parses")
		assert.Equal(t, "id:uint32:key, age:uint32, name:string(20), raw:bytes(4)", schema.String(), "formats back")
		f, ok := schema.Field("age")
		assert.True(t, ok, "has age")
		assert.Equal(t, uint64(18), f.Default, "default parsed")
	})

	t.Run("string form parses back to an equivalent schema", func(t *testing.T) {
		// Prepare
		schema := userSchema(t)

		// Execute
		again, err := ParseSchema(schema.String())

		// Check
		assert.NoError(t, err, "parses")
		assert.Equal(t, schema.String(), again.String(), "same fields")
		assert.Equal(t, schema.RecordSize(), again.RecordSize(), "same size")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		tests := []string{
			"id",
			"id:uint31",
			"name:string(0)",
			"name:string(x)",
			"id:uint8:unique",
			"id:uint8:default=256",
		}
		for _, text := range tests {
			_, err := ParseSchema(text)
			assert.Errorf(t, err, "%q rejected", text)
		}
	})
}

func TestRecord(t *testing.T) {
	t.Run("get returns defaults and nil for unknown fields", func(t *testing.T) {
		// Prepare
		r := userSchema(t).New()

		// Check
		assert.Equal(t, uint64(18), r.Get("age"), "default age")
		assert.Nil(t, r.Get("nope"), "unknown field")
		assert.Error(t, r.Set("nope", 1), "set unknown field")
		assert.Error(t, r.Set("age", "old"), "set wrong type")
	})

	t.Run("binding survives clone", func(t *testing.T) {
		// Prepare
		r := userSchema(t).New()
		r.Bind(Location{Generation: 2, Slot: 17})

		// Execute
		c := r.Clone()
		r.Unbind()

		// Check
		_, ok := r.Location()
		assert.False(t, ok, "source record unbound")
		loc, ok := c.Location()
		assert.True(t, ok, "clone bound")
		assert.Equal(t, Location{Generation: 2, Slot: 17}, loc, "same location")
	})

	t.Run("formats as field list", func(t *testing.T) {
		// Prepare
		schema, _ := ParseSchema("id:uint32:key, age:uint32")
		r, _ := schema.NewWith(map[string]any{"id": 1, "age": 10})

		// Check
		assert.Equal(t, "{id: 1, age: 10}", r.String(), "formatted")
		assert.Equal(t, map[string]any{"id": uint64(1), "age": uint64(10)}, r.Values(), "values")
	})
}

type person struct {
	ID     uint32 `rec:"id,key"`
	Name   string `rec:"name,string(16),default=nobody"`
	Age    int16
	Score  float64 `rec:"score"`
	Ignore string  `rec:"-"`
	hidden int
}

func TestRegistry(t *testing.T) {
	t.Run("derives and caches a schema from struct tags", func(t *testing.T) {
		// Execute
		a, err := SchemaOf[person]()
		require.NoError(t, err, "derives")
		b, _ := SchemaOf[person]()

		// Check
		assert.Same(t, a, b, "cached")
		assert.Equal(t, "id:uint32:key, age:int16, name:string(16), score:float64", a.String(), "derived fields")
		f, _ := a.Field("name")
		assert.Equal(t, "nobody", f.Default, "tag default")
	})

	t.Run("copies struct values in and out", func(t *testing.T) {
		// Prepare
		in := person{ID: 5, Name: "Ada", Age: -3, Score: 9.5, Ignore: "x", hidden: 1}

		// Execute
		r, err := FromStruct(&in)
		require.NoError(t, err, "from struct")
		var out person
		err = r.ToStruct(&out)

		// Check
		assert.NoError(t, err, "to struct")
		assert.Equal(t, person{ID: 5, Name: "Ada", Age: -3, Score: 9.5}, out, "round trips tagged fields")
	})

	t.Run("string fields need an explicit layout", func(t *testing.T) {
		type bad struct {
			Name string
		}
		_, err := NewRegistry().SchemaFor(reflect.TypeOf(bad{}))
		assert.Error(t, err, "no layout for string")
	})

	t.Run("to struct rejects records of other schemas", func(t *testing.T) {
		var out person
		err := userSchema(t).New().ToStruct(&out)
		assert.Error(t, err, "foreign record")
		assert.Error(t, userSchema(t).New().ToStruct(out), "not a pointer")
	})
}
