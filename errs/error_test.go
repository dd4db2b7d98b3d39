//go:build unit

package errs

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	t.Run("matches wrapped errors regardless of message", func(t *testing.T) {
		// Prepare
		tests := []struct {
			err    error
			target error
		}{
			{err: NewCorruptRecord("checksum 1 != 2"), target: CorruptRecord{}},
			{err: NewIndexOutOfRange("index 9 >= 8"), target: IndexOutOfRange{}},
			{err: NewProbeExhausted("window at slot 3"), target: ProbeExhausted{}},
			{err: NewCollectionFull("32 generations"), target: CollectionFull{}},
			{err: NoRecordFound{}, target: NoRecordFound{}},
			{err: NewSchemaMismatch("slot size 12"), target: SchemaMismatch{}},
		}

		for _, test := range tests {
			// Execute
			wrapped := fmt.Errorf("while testing: %w", test.err)

			// Check
			assert.Truef(t, errors.Is(wrapped, test.target), "%T matched", test.target)
			assert.Falsef(t, errors.Is(wrapped, errors.New("other")), "%T not matched by other", test.target)
		}
	})

	t.Run("default messages", func(t *testing.T) {
		assert.Equal(t, "corrupt record", CorruptRecord{}.Error())
		assert.Equal(t, "index out of range", IndexOutOfRange{}.Error())
		assert.Equal(t, "probe window exhausted", ProbeExhausted{}.Error())
		assert.Equal(t, "collection full", CollectionFull{}.Error())
		assert.Equal(t, "no record found", NoRecordFound{}.Error())
		assert.Equal(t, "schema mismatch", SchemaMismatch{}.Error())
		assert.Equal(t, "index 9 >= 8", NewIndexOutOfRange("index 9 >= 8").Error())
	})
}
