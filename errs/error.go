package errs

// CorruptRecord - Custom error to inform that a persisted record failed its checksum validation
type CorruptRecord struct {
	msg string
}

// NewCorruptRecord - Returns a CorruptRecord carrying a message
func NewCorruptRecord(msg string) CorruptRecord {
	return CorruptRecord{msg: msg}
}

// Error - Used to notify that a record is unreadable
func (E CorruptRecord) Error() string {
	if E.msg == "" {
		return "corrupt record"
	}
	return E.msg
}

// Is - Matches any CorruptRecord regardless of message
func (E CorruptRecord) Is(target error) bool {
	_, ok := target.(CorruptRecord)
	return ok
}

// IndexOutOfRange - Custom error to inform that a slot index is outside a block's capacity
type IndexOutOfRange struct {
	msg string
}

// NewIndexOutOfRange - Returns an IndexOutOfRange carrying a message
func NewIndexOutOfRange(msg string) IndexOutOfRange {
	return IndexOutOfRange{msg: msg}
}

// Error - Used to notify that an index is out of range
func (E IndexOutOfRange) Error() string {
	if E.msg == "" {
		return "index out of range"
	}
	return E.msg
}

// Is - Matches any IndexOutOfRange regardless of message
func (E IndexOutOfRange) Is(target error) bool {
	_, ok := target.(IndexOutOfRange)
	return ok
}

// ProbeExhausted - Custom error to inform that no free or matching slot was found within a probe window
type ProbeExhausted struct {
	msg string
}

// NewProbeExhausted - Returns a ProbeExhausted carrying a message
func NewProbeExhausted(msg string) ProbeExhausted {
	return ProbeExhausted{msg: msg}
}

// Error - Used to notify that the probe window is exhausted
func (P ProbeExhausted) Error() string {
	if P.msg == "" {
		return "probe window exhausted"
	}
	return P.msg
}

// Is - Matches any ProbeExhausted regardless of message
func (P ProbeExhausted) Is(target error) bool {
	_, ok := target.(ProbeExhausted)
	return ok
}

// CollectionFull - Custom error to inform that the growth directory has no free slot for another generation
type CollectionFull struct {
	msg string
}

// NewCollectionFull - Returns a CollectionFull carrying a message
func NewCollectionFull(msg string) CollectionFull {
	return CollectionFull{msg: msg}
}

// Error - Used to notify that the collection can't grow any further
func (E CollectionFull) Error() string {
	if E.msg == "" {
		return "collection full"
	}
	return E.msg
}

// Is - Matches any CollectionFull regardless of message
func (E CollectionFull) Is(target error) bool {
	_, ok := target.(CollectionFull)
	return ok
}

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound struct {
	msg string
}

// Error - Used to notify that no record was found
func (E NoRecordFound) Error() string {
	if E.msg == "" {
		return "no record found"
	}
	return E.msg
}

// Is - Matches any NoRecordFound regardless of message
func (E NoRecordFound) Is(target error) bool {
	_, ok := target.(NoRecordFound)
	return ok
}

// SchemaMismatch - Custom error to inform that persisted data doesn't fit the schema it is opened with
type SchemaMismatch struct {
	msg string
}

// NewSchemaMismatch - Returns a SchemaMismatch carrying a message
func NewSchemaMismatch(msg string) SchemaMismatch {
	return SchemaMismatch{msg: msg}
}

// Error - Used to notify a schema mismatch
func (E SchemaMismatch) Error() string {
	if E.msg == "" {
		return "schema mismatch"
	}
	return E.msg
}

// Is - Matches any SchemaMismatch regardless of message
func (E SchemaMismatch) Is(target error) bool {
	_, ok := target.(SchemaMismatch)
	return ok
}
