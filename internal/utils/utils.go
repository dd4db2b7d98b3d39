package utils

import (
	"github.com/gostonefire/filecollections/internal/conf"
)

// IsEqual - Returns true if a and b are equal both in size and contents
func IsEqual(a, b []byte) bool {
	lenA := len(a)
	if lenA != len(b) {
		return false
	}

	for i := 0; i < lenA; i++ {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// IsSentinel - Returns true if every byte in a is the empty slot sentinel byte.
// An empty slice is not regarded as a sentinel.
func IsSentinel(a []byte) bool {
	if len(a) == 0 {
		return false
	}

	for _, b := range a {
		if b != conf.SentinelByte {
			return false
		}
	}

	return true
}

// FillSentinel - Returns a new byte slice of given length where every byte is the sentinel byte
func FillSentinel(length int64) (b []byte) {
	b = make([]byte, length)
	for i := range b {
		b[i] = conf.SentinelByte
	}

	return
}

// Pow2 - Returns 2 to the power of exp
func Pow2(exp int) int64 {
	return int64(1) << uint(exp)
}
