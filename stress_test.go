//go:build stress

package filecollections

import (
	"fmt"
	"github.com/gostonefire/filecollections/record"
	"github.com/gostonefire/filecollections/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"os"
	"testing"
)

const stressFile string = "stresstest-collections.bin"

func TestStress_Hashmap(t *testing.T) {
	t.Run("random keys with overwrites match an in memory map", func(t *testing.T) {
		// Prepare
		_ = os.Remove(stressFile)
		st, err := store.OpenMmap(stressFile)
		require.NoError(t, err, "opens store")

		keys, err := record.ParseSchema("key:bytes(16)")
		require.NoError(t, err, "parses key schema")
		values, err := record.ParseSchema("n:int64, tag:string(8)")
		require.NoError(t, err, "parses value schema")

		m, err := NewHashmap(st, keys, values, Conf{BaseCapacity: 64})
		require.NoError(t, err, "creates hash map")

		rnd := rand.New(rand.NewSource(1))
		want := make(map[string]int64)
		raw := make([]byte, 16)

		// Execute
		for i := 0; i < 200000; i++ {
			if len(want) > 0 && rnd.Intn(4) == 0 {
				// Overwrite a known key
				for k := range want {
					copy(raw, k)
					break
				}
			} else {
				rnd.Read(raw)
			}

			k, _ := keys.NewWith(map[string]any{"key": raw})
			v, _ := values.NewWith(map[string]any{"n": int64(i), "tag": fmt.Sprintf("t%d", i%1000)})
			require.NoError(t, m.Set(k, v), "sets %d", i)
			want[string(raw)] = int64(i)
		}

		// Check
		stat, err := m.Stat()
		assert.NoError(t, err, "stat")
		assert.Equal(t, int64(len(want)), stat.Records, "one record per key")
		assert.Equal(t, int64(0), stat.CorruptRecords, "no corruption")

		for key, n := range want {
			k, _ := keys.NewWith(map[string]any{"key": []byte(key)})
			v, gErr := m.Get(k)
			if !assert.NoError(t, gErr, "gets key") {
				break
			}
			assert.Equal(t, n, v.Int64("n"), "latest value")
		}

		// Clean up
		_ = st.Close()
		_ = os.Remove(stressFile)
	})
}
