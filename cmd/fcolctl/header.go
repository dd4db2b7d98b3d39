package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/gostonefire/filecollections/store"
)

// headerLength - Bytes reserved at the start of a file for the collection header, the collection root follows
const headerLength int64 = 1024

// headerMagic - First bytes of every file created by fcolctl
const headerMagic = "FCOL"

// header - Describes the collection kept in a file
//   - Kind is one of array, hashset and hashmap
//   - Schema is the record schema, for hash maps the key schema
//   - Values is the value schema of hash maps
//   - ProbeSize is the probe window length given when the collection was created
//   - Address is the collection root address
type header struct {
	Kind      string `json:"kind"`
	Schema    string `json:"schema"`
	Values    string `json:"values,omitempty"`
	ProbeSize int64  `json:"probeSize,omitempty"`
	Address   int64  `json:"address"`
}

// writeHeader - Writes hdr to the start of st, the whole header area is always written
func writeHeader(st store.Store, hdr header) error {
	data, err := json.Marshal(hdr)
	if err != nil {
		return err
	}
	if int64(len(data)+8) > headerLength {
		return fmt.Errorf("collection header of %d bytes doesn't fit in %d bytes", len(data), headerLength-8)
	}

	buf := make([]byte, headerLength)
	copy(buf, headerMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(data)))
	copy(buf[8:], data)

	_, err = st.WriteAt(buf, 0)

	return err
}

// readHeader - Reads and validates the header at the start of st
func readHeader(st store.Store) (hdr header, err error) {
	buf := make([]byte, headerLength)
	_, err = st.ReadAt(buf, 0)
	if err != nil {
		err = fmt.Errorf("unable to read collection header: %w", err)
		return
	}
	if string(buf[:4]) != headerMagic {
		err = fmt.Errorf("not a collection file")
		return
	}

	length := int64(binary.LittleEndian.Uint32(buf[4:]))
	if length > headerLength-8 {
		err = fmt.Errorf("invalid collection header length %d", length)
		return
	}
	err = json.Unmarshal(buf[8:8+length], &hdr)

	return
}
