//go:build integration

package filecollections

import (
	"fmt"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"os"
	"testing"
)

const testCollections string = "integrationtest-collections.bin"

type user struct {
	ID   uint32 `rec:"id,key"`
	Age  uint32 `rec:"age"`
	Name string `rec:"name,string(16)"`
}

// openers - Store constructors for the file backed store kinds, each opening or creating testCollections
var openers = map[string]struct {
	create func() (store.Store, error)
	open   func() (store.Store, error)
}{
	"file": {
		create: func() (store.Store, error) { return store.CreateFile(testCollections) },
		open:   func() (store.Store, error) { return store.OpenFile(testCollections) },
	},
	"mmap": {
		create: func() (store.Store, error) { return store.OpenMmap(testCollections) },
		open:   func() (store.Store, error) { return store.OpenMmap(testCollections) },
	},
}

func TestCollections_Reopen(t *testing.T) {
	for name, opener := range openers {
		t.Run(fmt.Sprintf("every collection survives close and reopen for %s", name), func(t *testing.T) {
			// Prepare
			_ = os.Remove(testCollections)
			logger, _ := zap.NewDevelopment()
			cfg := Conf{BaseCapacity: 4, ProbeSize: 8, Logger: logger}

			users, err := record.SchemaOf[user]()
			require.NoError(t, err, "derives user schema")
			keys, values := idSchema(t), ageSchema(t)

			st, err := opener.create()
			require.NoError(t, err, "creates store")
			array, err := NewArray(st, users, cfg)
			require.NoError(t, err, "creates array")
			set, err := NewHashset(st, users, cfg)
			require.NoError(t, err, "creates hash set")
			m, err := NewHashmap(st, keys, values, cfg)
			require.NoError(t, err, "creates hash map")

			for i := 0; i < 200; i++ {
				u, fErr := record.FromStruct(user{ID: uint32(i), Age: uint32(i % 90), Name: fmt.Sprintf("user%d", i)})
				require.NoError(t, fErr, "record from struct")
				require.NoError(t, array.Set(int64(i), u), "sets in array")
				require.NoError(t, set.Add(u.Clone()), "adds to set")
				require.NoError(t, m.Set(idRecord(t, keys, i), ageRecord(t, values, i%90)), "sets in map")
			}
			arrayInfo, _ := array.Info()
			setInfo, _ := set.Info()
			mapInfo, _ := m.Info()
			require.NoError(t, st.Sync(), "syncs store")
			require.NoError(t, st.Close(), "closes store")

			// Execute
			st, err = opener.open()
			require.NoError(t, err, "opens store")
			array, err = OpenArray(st, arrayInfo.Address, users, cfg)
			require.NoError(t, err, "opens array")
			set, err = OpenHashset(st, setInfo.Address, users, cfg)
			require.NoError(t, err, "opens hash set")
			m, err = OpenHashmap(st, mapInfo.Address, keys, values, cfg)
			require.NoError(t, err, "opens hash map")

			// Check
			reopenedInfo, _ := m.Info()
			assert.Equal(t, mapInfo.Generations, reopenedInfo.Generations, "same map generations")
			for i := 0; i < 200; i++ {
				want := user{ID: uint32(i), Age: uint32(i % 90), Name: fmt.Sprintf("user%d", i)}

				r, gErr := array.Get(int64(i))
				require.NoError(t, gErr, "gets from array")
				var got user
				assert.NoError(t, r.ToStruct(&got), "to struct")
				assert.Equal(t, want, got, "array user %d", i)

				key, _ := record.FromStruct(user{ID: uint32(i)})
				r, gErr = set.Get(key)
				require.NoError(t, gErr, "gets from set")
				assert.NoError(t, r.ToStruct(&got), "to struct")
				assert.Equal(t, want, got, "set user %d", i)

				v, gErr := m.Get(idRecord(t, keys, i))
				require.NoError(t, gErr, "gets from map")
				assert.Equal(t, uint64(i%90), v.Uint64("age"), "map age %d", i)
			}

			// Clean up
			_ = st.Close()
			err = os.Remove(testCollections)
			assert.NoError(t, err, "removes store file")
		})
	}
}
