//go:build unit

package growth

import (
	"encoding/binary"
	"errors"
	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/block"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

// fixedFactory - Generations are plain fixed blocks with 4 byte slots
type fixedFactory struct{}

func (F fixedFactory) CreateGeneration(st store.Store, capacity int64) (*block.Fixed, error) {
	return block.Create(st, 4, capacity)
}

func (F fixedFactory) OpenGeneration(st store.Store, address int64) (*block.Fixed, error) {
	return block.Open(st, address, 4)
}

func (F fixedFactory) IsIndexBased() bool {
	return true
}

func TestNew(t *testing.T) {
	t.Run("creates directory at root and first generation", func(t *testing.T) {
		// Prepare
		st := store.NewMemory()
		core, logs := observer.New(zapcore.DebugLevel)

		// Execute
		manager, err := New[*block.Fixed](st, fixedFactory{}, 4, zap.New(core))

		// Check
		require.NoError(t, err, "creates manager")
		assert.Equal(t, int64(0), manager.Address(), "directory at root")
		assert.Equal(t, 1, manager.Count(), "one generation")
		assert.Equal(t, int64(4), manager.Newest().Capacity(), "base capacity")
		assert.Equal(t, conf.DirectoryLength, manager.Newest().Address(), "generation after directory")

		raw := st.Bytes()
		assert.Equal(t, uint64(conf.DirectoryLength), binary.LittleEndian.Uint64(raw[0:8]), "first entry")
		assert.Equal(t, conf.NoGeneration, int64(binary.LittleEndian.Uint64(raw[8:16])), "second entry unused")

		assert.Equal(t, 1, logs.FilterMessage("generation allocated").Len(), "allocation logged")
		assert.Equal(t, 1, logs.FilterMessage("growth directory created").Len(), "creation logged")
	})

	t.Run("rejects zero base", func(t *testing.T) {
		_, err := New[*block.Fixed](store.NewMemory(), fixedFactory{}, 0, nil)
		assert.Error(t, err, "zero base")
	})
}

func TestManager_EnsureCapacity(t *testing.T) {
	t.Run("doubles capacity per generation", func(t *testing.T) {
		// Prepare
		manager, err := New[*block.Fixed](store.NewMemory(), fixedFactory{}, 2, nil)
		require.NoError(t, err, "creates manager")

		// Execute
		for i := 0; i < 4; i++ {
			_, err = manager.EnsureCapacity()
			require.NoError(t, err, "grows")
		}

		// Check
		for i, g := range manager.Generations() {
			assert.Equal(t, int64(2)<<uint(i), g.Capacity(), "capacity of generation %d", i)
		}
		assert.Equal(t, int64(2+4+8+16+32), manager.Capacity(), "total capacity")
	})

	t.Run("fails with CollectionFull when directory is full", func(t *testing.T) {
		// Prepare
		core, logs := observer.New(zapcore.WarnLevel)
		manager, err := New[*block.Fixed](store.NewMemory(), fixedFactory{}, 1, zap.New(core))
		require.NoError(t, err, "creates manager")
		// Generation 31 would have 2^31 slots, pretend the directory is full instead of allocating it
		for manager.Count() < conf.DirectorySlots {
			manager.generations = append(manager.generations, manager.Newest())
		}

		// Execute
		_, err = manager.EnsureCapacity()

		// Check
		assert.True(t, errors.Is(err, errs.CollectionFull{}), "collection full")
		assert.Equal(t, 1, logs.FilterMessage("growth directory full").Len(), "full logged")
	})
}

func TestOpen(t *testing.T) {
	t.Run("reopens every generation in order", func(t *testing.T) {
		// Prepare
		st := store.NewMemory()
		created, err := New[*block.Fixed](st, fixedFactory{}, 3, nil)
		require.NoError(t, err, "creates manager")
		_, err = created.EnsureCapacity()
		require.NoError(t, err, "grows")
		_, err = created.EnsureCapacity()
		require.NoError(t, err, "grows")

		// Execute
		opened, err := Open[*block.Fixed](st, created.Address(), fixedFactory{}, nil)

		// Check
		require.NoError(t, err, "opens manager")
		assert.Equal(t, int64(3), opened.Base(), "base recovered")
		assert.Equal(t, 3, opened.Count(), "generation count")
		for i, g := range opened.Generations() {
			assert.Equal(t, created.Generations()[i].Address(), g.Address(), "address of generation %d", i)
			assert.Equal(t, created.Generations()[i].Capacity(), g.Capacity(), "capacity of generation %d", i)
		}
	})

	t.Run("rejects a directory with a gap", func(t *testing.T) {
		// Prepare
		st := store.NewMemory()
		created, _ := New[*block.Fixed](st, fixedFactory{}, 3, nil)
		err := created.directory.Set(2, created.Newest().Address())
		require.NoError(t, err, "writes entry 2")

		// Execute
		_, err = Open[*block.Fixed](st, created.Address(), fixedFactory{}, nil)

		// Check
		assert.True(t, errors.Is(err, errs.CorruptRecord{}), "gap detected")
	})

	t.Run("rejects an empty directory", func(t *testing.T) {
		// Prepare
		st := store.NewMemory()
		dir, _ := CreateDirectory(st)

		// Execute
		_, err := Open[*block.Fixed](st, dir.Address(), fixedFactory{}, nil)

		// Check
		assert.True(t, errors.Is(err, errs.CorruptRecord{}), "no generations")
	})
}

func TestManager_Generation(t *testing.T) {
	t.Run("fails outside generations with IndexOutOfRange", func(t *testing.T) {
		manager, _ := New[*block.Fixed](store.NewMemory(), fixedFactory{}, 3, nil)
		_, err := manager.Generation(1)
		assert.True(t, errors.Is(err, errs.IndexOutOfRange{}), "no generation 1")
	})
}
