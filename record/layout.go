package record

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// lengthPrefix - Number of bytes used by String and Bytes layouts to store the actual length
const lengthPrefix = 4

// Layout - Fixed width binary encoding of a single field.
// Every layout has a statically known size, Pack must write exactly Size bytes and Unpack must read exactly Size bytes.
type Layout interface {
	// Name - Returns the layout name as used in textual schemas, e.g. "uint32" or "string(20)"
	Name() string
	// Size - Returns the number of bytes the layout occupies in a record
	Size() int
	// Default - Returns the value used for a field that was never set
	Default() any
	// Normalize - Converts an accepted Go value into the canonical value type of the layout
	Normalize(v any) (any, error)
	// Pack - Writes the canonical value v into dst, dst is at least Size bytes long
	Pack(dst []byte, v any)
	// Unpack - Reads a canonical value from src, src is at least Size bytes long
	Unpack(src []byte) any
	// Parse - Converts a textual representation into the canonical value type of the layout
	Parse(s string) (any, error)
}

// intLayout - Signed integer layouts, canonical value type is int64
type intLayout struct {
	size int
}

// uintLayout - Unsigned integer layouts, canonical value type is uint64
type uintLayout struct {
	size int
}

// Int8 - Returns a layout for 1 byte signed integers
func Int8() Layout { return intLayout{size: 1} }

// Int16 - Returns a layout for 2 byte signed integers
func Int16() Layout { return intLayout{size: 2} }

// Int32 - Returns a layout for 4 byte signed integers
func Int32() Layout { return intLayout{size: 4} }

// Int64 - Returns a layout for 8 byte signed integers
func Int64() Layout { return intLayout{size: 8} }

// Uint8 - Returns a layout for 1 byte unsigned integers
func Uint8() Layout { return uintLayout{size: 1} }

// Uint16 - Returns a layout for 2 byte unsigned integers
func Uint16() Layout { return uintLayout{size: 2} }

// Uint32 - Returns a layout for 4 byte unsigned integers
func Uint32() Layout { return uintLayout{size: 4} }

// Uint64 - Returns a layout for 8 byte unsigned integers
func Uint64() Layout { return uintLayout{size: 8} }

func (L intLayout) Name() string  { return fmt.Sprintf("int%d", L.size*8) }
func (L intLayout) Size() int     { return L.size }
func (L intLayout) Default() any  { return int64(0) }
func (L uintLayout) Name() string { return fmt.Sprintf("uint%d", L.size*8) }
func (L uintLayout) Size() int    { return L.size }
func (L uintLayout) Default() any { return uint64(0) }

func (L intLayout) Normalize(v any) (n any, err error) {
	var i int64
	switch t := v.(type) {
	case int:
		i = int64(t)
	case int8:
		i = int64(t)
	case int16:
		i = int64(t)
	case int32:
		i = int64(t)
	case int64:
		i = t
	case uint8:
		i = int64(t)
	case uint16:
		i = int64(t)
	case uint32:
		i = int64(t)
	case uint:
		if uint64(t) > math.MaxInt64 {
			err = fmt.Errorf("value %d overflows %s", t, L.Name())
			return
		}
		i = int64(t)
	case uint64:
		if t > math.MaxInt64 {
			err = fmt.Errorf("value %d overflows %s", t, L.Name())
			return
		}
		i = int64(t)
	default:
		err = fmt.Errorf("value of type %T can't be stored as %s", v, L.Name())
		return
	}

	bits := uint(L.size * 8)
	if bits < 64 {
		minValue := -(int64(1) << (bits - 1))
		maxValue := int64(1)<<(bits-1) - 1
		if i < minValue || i > maxValue {
			err = fmt.Errorf("value %d overflows %s", i, L.Name())
			return
		}
	}

	n = i
	return
}

func (L uintLayout) Normalize(v any) (n any, err error) {
	var u uint64
	switch t := v.(type) {
	case uint:
		u = uint64(t)
	case uint8:
		u = uint64(t)
	case uint16:
		u = uint64(t)
	case uint32:
		u = uint64(t)
	case uint64:
		u = t
	case int, int8, int16, int32, int64:
		i, _ := Int64().Normalize(t)
		if i.(int64) < 0 {
			err = fmt.Errorf("negative value %d can't be stored as %s", i, L.Name())
			return
		}
		u = uint64(i.(int64))
	default:
		err = fmt.Errorf("value of type %T can't be stored as %s", v, L.Name())
		return
	}

	if L.size < 8 && u >= uint64(1)<<uint(L.size*8) {
		err = fmt.Errorf("value %d overflows %s", u, L.Name())
		return
	}

	n = u
	return
}

func (L intLayout) Pack(dst []byte, v any) {
	i := v.(int64)
	switch L.size {
	case 1:
		dst[0] = uint8(int8(i))
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(int16(i)))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(int32(i)))
	default:
		binary.LittleEndian.PutUint64(dst, uint64(i))
	}
}

func (L intLayout) Unpack(src []byte) any {
	switch L.size {
	case 1:
		return int64(int8(src[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(src)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(src)))
	default:
		return int64(binary.LittleEndian.Uint64(src))
	}
}

func (L uintLayout) Pack(dst []byte, v any) {
	u := v.(uint64)
	switch L.size {
	case 1:
		dst[0] = uint8(u)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(u))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(u))
	default:
		binary.LittleEndian.PutUint64(dst, u)
	}
}

func (L uintLayout) Unpack(src []byte) any {
	switch L.size {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src))
	default:
		return binary.LittleEndian.Uint64(src)
	}
}

func (L intLayout) Parse(s string) (any, error) {
	i, err := strconv.ParseInt(s, 10, L.size*8)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q as %s: %w", s, L.Name(), err)
	}
	return i, nil
}

func (L uintLayout) Parse(s string) (any, error) {
	u, err := strconv.ParseUint(s, 10, L.size*8)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q as %s: %w", s, L.Name(), err)
	}
	return u, nil
}

// floatLayout - IEEE 754 layouts, canonical value type is float64
type floatLayout struct {
	size int
}

// Float32 - Returns a layout for 4 byte floats
func Float32() Layout { return floatLayout{size: 4} }

// Float64 - Returns a layout for 8 byte floats
func Float64() Layout { return floatLayout{size: 8} }

func (L floatLayout) Name() string { return fmt.Sprintf("float%d", L.size*8) }
func (L floatLayout) Size() int    { return L.size }
func (L floatLayout) Default() any { return float64(0) }

func (L floatLayout) Normalize(v any) (n any, err error) {
	var f float64
	switch t := v.(type) {
	case float32:
		f = float64(t)
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	default:
		err = fmt.Errorf("value of type %T can't be stored as %s", v, L.Name())
		return
	}
	if L.size == 4 {
		f = float64(float32(f))
	}

	n = f
	return
}

func (L floatLayout) Pack(dst []byte, v any) {
	f := v.(float64)
	if L.size == 4 {
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(f)))
		return
	}
	binary.LittleEndian.PutUint64(dst, math.Float64bits(f))
}

func (L floatLayout) Unpack(src []byte) any {
	if L.size == 4 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(src)))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(src))
}

func (L floatLayout) Parse(s string) (any, error) {
	f, err := strconv.ParseFloat(s, L.size*8)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q as %s: %w", s, L.Name(), err)
	}
	return L.Normalize(f)
}

// boolLayout - One byte boolean, canonical value type is bool
type boolLayout struct{}

// Bool - Returns a layout for booleans stored as a single byte
func Bool() Layout { return boolLayout{} }

func (L boolLayout) Name() string { return "bool" }
func (L boolLayout) Size() int    { return 1 }
func (L boolLayout) Default() any { return false }

func (L boolLayout) Normalize(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("value of type %T can't be stored as bool", v)
	}
	return b, nil
}

func (L boolLayout) Pack(dst []byte, v any) {
	dst[0] = 0
	if v.(bool) {
		dst[0] = 1
	}
}

func (L boolLayout) Unpack(src []byte) any {
	return src[0] == 1
}

func (L boolLayout) Parse(s string) (any, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q as bool: %w", s, err)
	}
	return b, nil
}

// stringLayout - Length prefixed text of a fixed capacity, canonical value type is string.
// Text is normalized to NFC so that canonically equal strings always produce equal bytes.
type stringLayout struct {
	capacity int
}

// String - Returns a layout for strings of at most capacity bytes.
// Longer strings are truncated on a rune boundary, they never overflow the slot.
func String(capacity int) Layout { return stringLayout{capacity: capacity} }

func (L stringLayout) Name() string { return fmt.Sprintf("string(%d)", L.capacity) }
func (L stringLayout) Size() int    { return lengthPrefix + L.capacity }
func (L stringLayout) Default() any { return "" }

func (L stringLayout) Normalize(v any) (any, error) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return nil, fmt.Errorf("value of type %T can't be stored as %s", v, L.Name())
	}

	s = norm.NFC.String(s)
	if len(s) > L.capacity {
		cut := L.capacity
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}

	return s, nil
}

func (L stringLayout) Pack(dst []byte, v any) {
	s := v.(string)
	binary.LittleEndian.PutUint32(dst, uint32(len(s)))
	n := copy(dst[lengthPrefix:lengthPrefix+L.capacity], s)
	for i := lengthPrefix + n; i < lengthPrefix+L.capacity; i++ {
		dst[i] = 0
	}
}

func (L stringLayout) Unpack(src []byte) any {
	n := int(binary.LittleEndian.Uint32(src))
	if n > L.capacity {
		n = L.capacity
	}
	return string(src[lengthPrefix : lengthPrefix+n])
}

func (L stringLayout) Parse(s string) (any, error) {
	return L.Normalize(s)
}

// bytesLayout - Length prefixed raw bytes of a fixed capacity, canonical value type is []byte
type bytesLayout struct {
	capacity int
}

// Bytes - Returns a layout for byte slices of at most capacity bytes, longer slices are truncated
func Bytes(capacity int) Layout { return bytesLayout{capacity: capacity} }

func (L bytesLayout) Name() string { return fmt.Sprintf("bytes(%d)", L.capacity) }
func (L bytesLayout) Size() int    { return lengthPrefix + L.capacity }
func (L bytesLayout) Default() any { return []byte{} }

func (L bytesLayout) Normalize(v any) (any, error) {
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case string:
		b = []byte(t)
	default:
		return nil, fmt.Errorf("value of type %T can't be stored as %s", v, L.Name())
	}
	if len(b) > L.capacity {
		b = b[:L.capacity]
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c, nil
}

func (L bytesLayout) Pack(dst []byte, v any) {
	b := v.([]byte)
	binary.LittleEndian.PutUint32(dst, uint32(len(b)))
	n := copy(dst[lengthPrefix:lengthPrefix+L.capacity], b)
	for i := lengthPrefix + n; i < lengthPrefix+L.capacity; i++ {
		dst[i] = 0
	}
}

func (L bytesLayout) Unpack(src []byte) any {
	n := int(binary.LittleEndian.Uint32(src))
	if n > L.capacity {
		n = L.capacity
	}
	b := make([]byte, n)
	copy(b, src[lengthPrefix:lengthPrefix+n])
	return b
}

func (L bytesLayout) Parse(s string) (any, error) {
	return L.Normalize(s)
}
