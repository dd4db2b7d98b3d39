package model

// Kind names of the collection flavors
const (
	KindArray   = "array"
	KindHashset = "hashset"
	KindHashmap = "hashmap"
)

// GenerationInfo - Information about one generation of a collection
//   - Generation is the index of the generation in the growth directory
//   - Address is the store offset of the generation block header
//   - Capacity is the number of slots in the generation
//   - SlotSize is the byte size of each slot, i.e. the encoded record size
//   - ProbeSize is the probe window length, zero for index based generations
//   - ProbeRange is the number of possible probe window starts, zero for index based generations
type GenerationInfo struct {
	Generation int
	Address    int64
	Capacity   int64
	SlotSize   int64
	ProbeSize  int64
	ProbeRange int64
}

// Info - Information about the layout of a collection
//   - Kind is one of KindArray, KindHashset and KindHashmap
//   - Address is the root address of the collection, i.e. the address of its growth directory
//   - BaseCapacity is the capacity of generation 0
//   - Capacity is the total number of slots over all generations
//   - DirectorySlots is the max number of generations
//   - Schema is the textual form of the stored record schema
//   - StoreSize is the size of the whole backing store, which may hold other collections as well
//   - Generations holds information per generation, oldest first
type Info struct {
	Kind           string
	Address        int64
	BaseCapacity   int64
	Capacity       int64
	DirectorySlots int
	Schema         string
	StoreSize      int64
	Generations    []GenerationInfo
}

// Stat - Statistics on the usage of a collection, collected by reading every slot
//   - Records is the number of valid records stored
//   - CorruptRecords is the number of occupied slots failing checksum validation
//   - GenerationRecords is the number of valid records stored in each generation
//   - FillFactor is Records divided by the total capacity
type Stat struct {
	Records           int64
	CorruptRecords    int64
	GenerationRecords []int64
	FillFactor        float64
}
