//go:build unit || integration

package filecollections

import (
	"github.com/gostonefire/filecollections/record"
	"github.com/stretchr/testify/require"
	"testing"
)

func ageSchema(t *testing.T) *record.Schema {
	schema, err := record.ParseSchema("age:uint32")
	require.NoError(t, err, "parses schema")
	return schema
}

func ageRecord(t *testing.T, schema *record.Schema, age int) *record.Record {
	r, err := schema.NewWith(map[string]any{"age": age})
	require.NoError(t, err, "creates record")
	return r
}

func idSchema(t *testing.T) *record.Schema {
	schema, err := record.ParseSchema("id:uint32")
	require.NoError(t, err, "parses schema")
	return schema
}

func idRecord(t *testing.T, schema *record.Schema, id int) *record.Record {
	r, err := schema.NewWith(map[string]any{"id": id})
	require.NoError(t, err, "creates record")
	return r
}
