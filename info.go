package filecollections

import (
	"github.com/gostonefire/filecollections/internal/model"
)

// Info - Information about the layout of a collection, see model.Info for fields
type Info = model.Info

// GenerationInfo - Information about one generation of a collection
type GenerationInfo = model.GenerationInfo

// Stat - Statistics on the usage of a collection, see model.Stat for fields
type Stat = model.Stat

// Collection kinds as reported in Info.Kind
const (
	KindArray   = model.KindArray
	KindHashset = model.KindHashset
	KindHashmap = model.KindHashmap
)
