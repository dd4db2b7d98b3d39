package growth

import (
	"encoding/binary"
	"fmt"

	"github.com/gostonefire/filecollections/errs"
	"github.com/gostonefire/filecollections/internal/conf"
	"github.com/gostonefire/filecollections/store"
)

// Directory - Fixed array of generation addresses kept in the store at the collection root address.
// Entries are filled from index 0 and upwards, an unused entry holds conf.NoGeneration.
// Only the entry of a new generation is ever written, existing entries are never rewritten.
type Directory struct {
	st      store.Store
	address int64
}

// CreateDirectory - Allocates a new empty directory at the current end of the store
func CreateDirectory(st store.Store) (dir *Directory, err error) {
	address, err := st.Size()
	if err != nil {
		err = fmt.Errorf("unable to get store size: %w", err)
		return
	}

	buf := make([]byte, conf.DirectoryLength)
	for i := 0; i < conf.DirectorySlots; i++ {
		putEntry(buf, i, conf.NoGeneration)
	}
	_, err = st.WriteAt(buf, address)
	if err != nil {
		err = fmt.Errorf("unable to write growth directory: %w", err)
		return
	}

	dir = &Directory{st: st, address: address}

	return
}

// OpenDirectory - Returns the directory at address, it is read on demand by Entries
func OpenDirectory(st store.Store, address int64) *Directory {
	return &Directory{st: st, address: address}
}

// Address - Returns the store offset of the directory, which is also the root address of its collection
func (D *Directory) Address() int64 {
	return D.address
}

// Entries - Returns the addresses of all generations in creation order.
// It returns an error of type errs.CorruptRecord if a used entry follows an unused one.
func (D *Directory) Entries() (addresses []int64, err error) {
	buf := make([]byte, conf.DirectoryLength)
	_, err = D.st.ReadAt(buf, D.address)
	if err != nil {
		err = fmt.Errorf("unable to read growth directory at %d: %w", D.address, err)
		return
	}

	ended := false
	for i := 0; i < conf.DirectorySlots; i++ {
		address := getEntry(buf, i)
		if address == conf.NoGeneration {
			ended = true
			continue
		}
		if ended || address < 0 {
			err = errs.NewCorruptRecord(fmt.Sprintf("invalid growth directory entry %d: %d", i, address))
			addresses = nil
			return
		}
		addresses = append(addresses, address)
	}

	return
}

// Set - Writes the address of generation i to its directory entry
func (D *Directory) Set(i int, address int64) (err error) {
	if i < 0 || i >= conf.DirectorySlots {
		err = errs.NewCollectionFull(fmt.Sprintf("directory has no entry %d", i))
		return
	}

	buf := make([]byte, conf.DirectoryEntryLength)
	binary.LittleEndian.PutUint64(buf, uint64(address))
	_, err = D.st.WriteAt(buf, D.address+int64(i)*conf.DirectoryEntryLength)
	if err != nil {
		err = fmt.Errorf("unable to write growth directory entry %d: %w", i, err)
	}

	return
}

func putEntry(buf []byte, i int, address int64) {
	binary.LittleEndian.PutUint64(buf[int64(i)*conf.DirectoryEntryLength:], uint64(address))
}

func getEntry(buf []byte, i int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[int64(i)*conf.DirectoryEntryLength:]))
}
