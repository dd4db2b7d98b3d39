package record

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSchema - Returns a schema from its textual form, a comma separated list of fields where each field is
// name:layout with optional :key and :default=value parts, e.g. "id:uint32:key, age:uint32, name:string(20)"
func ParseSchema(text string) (schema *Schema, err error) {
	var fields []Field
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var f Field
		f, err = parseField(part)
		if err != nil {
			return
		}
		fields = append(fields, f)
	}

	return NewSchema(fields...)
}

// parseField - Parses one name:layout[:key][:default=value] entry
func parseField(text string) (field Field, err error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 {
		err = fmt.Errorf("field %q must be given as name:layout", text)
		return
	}

	field.Name = strings.TrimSpace(parts[0])
	field.Layout, err = ParseLayout(strings.TrimSpace(parts[1]))
	if err != nil {
		return
	}

	for _, opt := range parts[2:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "key":
			field.Key = true
		case strings.HasPrefix(opt, "default="):
			field.Default, err = field.Layout.Parse(strings.TrimPrefix(opt, "default="))
			if err != nil {
				return
			}
		default:
			err = fmt.Errorf("unknown option %q for field %s", opt, field.Name)
			return
		}
	}

	return
}

// ParseLayout - Returns the layout given its name as returned by Layout.Name
func ParseLayout(name string) (layout Layout, err error) {
	switch name {
	case "int8":
		return Int8(), nil
	case "int16":
		return Int16(), nil
	case "int32":
		return Int32(), nil
	case "int64":
		return Int64(), nil
	case "uint8":
		return Uint8(), nil
	case "uint16":
		return Uint16(), nil
	case "uint32":
		return Uint32(), nil
	case "uint64":
		return Uint64(), nil
	case "float32":
		return Float32(), nil
	case "float64":
		return Float64(), nil
	case "bool":
		return Bool(), nil
	}

	for prefix, build := range map[string]func(int) Layout{"string(": String, "bytes(": Bytes} {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ")") {
			continue
		}
		var capacity int
		capacity, err = strconv.Atoi(name[len(prefix) : len(name)-1])
		if err != nil || capacity <= 0 {
			err = fmt.Errorf("invalid capacity in layout %q", name)
			return
		}
		layout = build(capacity)
		return
	}

	err = fmt.Errorf("unknown layout %q", name)
	return
}
