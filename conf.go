package filecollections

import (
	"github.com/gostonefire/filecollections/hashfunc"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/internal/hash"
	"go.uber.org/zap"
)

// Conf - Is a struct to be passed when creating or opening a collection, zero values mean defaults.
//   - BaseCapacity is the capacity of the first generation, defaults to 1024. It is ignored when opening since it is recovered from the store.
//   - ProbeSize is the probe window length of hashed collections, defaults to 75. The same value must be given when opening.
//   - HashAlgorithm is an optional custom hash algorithm, defaults to crc32. The same algorithm must be given when opening.
//   - Logger is an optional zap logger, nil means no logging
type Conf struct {
	BaseCapacity  int64
	ProbeSize     int64
	HashAlgorithm hashfunc.HashAlgorithm
	Logger        *zap.Logger
}

// withDefaults - Returns a copy of the configuration with defaults filled in
func (C Conf) withDefaults() Conf {
	if C.BaseCapacity <= 0 {
		C.BaseCapacity = conf.DefaultBaseCapacity
	}
	if C.ProbeSize <= 0 {
		C.ProbeSize = conf.DefaultProbeSize
	}
	if C.HashAlgorithm == nil {
		C.HashAlgorithm = hash.NewCrc32HashAlgorithm()
	}
	if C.Logger == nil {
		C.Logger = zap.NewNop()
	}

	return C
}
