package filecollections

import (
	"github.com/gostonefire/filecollections/errs"
)

// Errors returned by collections, match them with errors.Is, e.g. errors.Is(err, filecollections.NoRecordFound{})
type (
	// NoRecordFound - Nothing is stored at the index or under the key looked up
	NoRecordFound = errs.NoRecordFound
	// CorruptRecord - A stored record failed checksum validation
	CorruptRecord = errs.CorruptRecord
	// IndexOutOfRange - A negative index or a slot outside a generation
	IndexOutOfRange = errs.IndexOutOfRange
	// ProbeExhausted - No free or matching slot in a probe window, collections handle it by growing
	ProbeExhausted = errs.ProbeExhausted
	// CollectionFull - The growth directory has no room for another generation
	CollectionFull = errs.CollectionFull
	// SchemaMismatch - A record or a stored block doesn't match the schema of the collection
	SchemaMismatch = errs.SchemaMismatch
)
