package hashfunc

// HashAlgorithm - Interface that permits an implementation using hashed collections to supply a custom slot
// selection algorithm suited for its particular distribution of keys.
// The hash value must be computed from the key bytes alone, the same key has to give the same value in every
// process that ever opens the collection, otherwise records written before a restart can't be found after it.
type HashAlgorithm interface {
	// HashFunc - Given the encoded key it returns a hash value, the caller reduces it to a slot within its probe range
	HashFunc(key []byte) uint64
}
