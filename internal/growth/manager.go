package growth

import (
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/store"
	"go.uber.org/zap"
)

// Generation - One fixed capacity block of a growing collection
type Generation interface {
	// Address - Returns the store offset of the generation block
	Address() int64
	// Capacity - Returns the number of slots in the generation
	Capacity() int64
}

// Factory - Creates and opens the generations of one collection flavor
type Factory[G Generation] interface {
	// CreateGeneration - Allocates a new generation with capacity slots at the end of the store
	CreateGeneration(st store.Store, capacity int64) (G, error)
	// OpenGeneration - Opens the existing generation at address
	OpenGeneration(st store.Store, address int64) (G, error)
	// IsIndexBased - Returns true if slots are addressed by index rather than by hashed content
	IsIndexBased() bool
}

// Manager - Grows a collection by appending generations of doubling capacity, generation i has base * 2^i slots.
// Existing generations are never moved or resized.
type Manager[G Generation] struct {
	st          store.Store
	directory   *Directory
	factory     Factory[G]
	base        int64
	generations []G
	sugar       *zap.SugaredLogger
}

// New - Creates a new directory and the first generation with base capacity.
// The directory is allocated first so that its address, the collection root, precedes all generations.
func New[G Generation](st store.Store, factory Factory[G], base int64, logger *zap.Logger) (manager *Manager[G], err error) {
	if base < 1 {
		err = fmt.Errorf("base capacity must be at least 1, got %d", base)
		return
	}

	dir, err := CreateDirectory(st)
	if err != nil {
		return
	}

	manager = &Manager[G]{
		st:        st,
		directory: dir,
		factory:   factory,
		base:      base,
		sugar:     sugar(logger),
	}

	_, err = manager.EnsureCapacity()
	if err != nil {
		manager = nil
		return
	}

	manager.sugar.Debugw("growth directory created", "address", dir.Address(), "base", base, "indexBased", factory.IsIndexBased())

	return
}

// Open - Opens the collection whose directory is at address, every generation listed is opened.
// The base capacity is recovered from the first generation.
func Open[G Generation](st store.Store, address int64, factory Factory[G], logger *zap.Logger) (manager *Manager[G], err error) {
	dir := OpenDirectory(st, address)
	addresses, err := dir.Entries()
	if err != nil {
		return
	}
	if len(addresses) == 0 {
		err = errs.NewCorruptRecord(fmt.Sprintf("growth directory at %d has no generations", address))
		return
	}

	manager = &Manager[G]{
		st:        st,
		directory: dir,
		factory:   factory,
		sugar:     sugar(logger),
	}

	for i, a := range addresses {
		var g G
		g, err = factory.OpenGeneration(st, a)
		if err != nil {
			manager = nil
			err = fmt.Errorf("unable to open generation %d: %w", i, err)
			return
		}
		if i == 0 {
			manager.base = g.Capacity()
		}
		if g.Capacity() != manager.base<<uint(i) {
			manager = nil
			err = errs.NewCorruptRecord(fmt.Sprintf("generation %d has capacity %d, expected %d", i, g.Capacity(), manager.base<<uint(i)))
			return
		}
		manager.generations = append(manager.generations, g)
	}

	manager.sugar.Debugw("growth directory opened", "address", address, "generations", len(addresses), "base", manager.base)

	return
}

// EnsureCapacity - Appends a new generation of twice the capacity of the newest one.
// It returns an error of type errs.CollectionFull if the directory has no free entry.
func (M *Manager[G]) EnsureCapacity() (g G, err error) {
	i := len(M.generations)
	if i >= conf.DirectorySlots {
		M.sugar.Warnw("growth directory full", "address", M.directory.Address(), "generations", i)
		err = errs.NewCollectionFull(fmt.Sprintf("all %d generations in use", conf.DirectorySlots))
		return
	}

	capacity := M.base << uint(i)
	g, err = M.factory.CreateGeneration(M.st, capacity)
	if err != nil {
		err = fmt.Errorf("unable to create generation %d: %w", i, err)
		return
	}

	err = M.directory.Set(i, g.Address())
	if err != nil {
		return
	}
	M.generations = append(M.generations, g)

	M.sugar.Infow("generation allocated", "generation", i, "capacity", capacity, "address", g.Address())

	return
}

// Generations - Returns all generations, oldest first
func (M *Manager[G]) Generations() []G {
	generations := make([]G, len(M.generations))
	copy(generations, M.generations)
	return generations
}

// Generation - Returns generation i
func (M *Manager[G]) Generation(i int) (g G, err error) {
	if i < 0 || i >= len(M.generations) {
		err = errs.NewIndexOutOfRange(fmt.Sprintf("no generation %d", i))
		return
	}
	g = M.generations[i]
	return
}

// Newest - Returns the most recently created generation
func (M *Manager[G]) Newest() G {
	return M.generations[len(M.generations)-1]
}

// Count - Returns the number of generations
func (M *Manager[G]) Count() int {
	return len(M.generations)
}

// Base - Returns the capacity of generation 0
func (M *Manager[G]) Base() int64 {
	return M.base
}

// Capacity - Returns the total number of slots over all generations
func (M *Manager[G]) Capacity() int64 {
	return M.base * (int64(1)<<uint(len(M.generations)) - 1)
}

// Address - Returns the collection root address, i.e. the directory address
func (M *Manager[G]) Address() int64 {
	return M.directory.Address()
}

// Store - Returns the store the collection lives in
func (M *Manager[G]) Store() store.Store {
	return M.st
}

// Logger - Returns the sugared logger of the manager, collections log through it as well
func (M *Manager[G]) Logger() *zap.SugaredLogger {
	return M.sugar
}

func sugar(logger *zap.Logger) *zap.SugaredLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
