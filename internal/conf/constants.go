package conf

// DirectorySlots - Number of generation addresses a growth directory can hold
const DirectorySlots int = 32

// DirectoryEntryLength - Length of one growth directory entry, a little endian int64 address - 8 bytes
const DirectoryEntryLength int64 = 8

// DirectoryLength - Total length of a growth directory
const DirectoryLength = int64(DirectorySlots) * DirectoryEntryLength

// NoGeneration - Directory entry value marking a slot without a generation
const NoGeneration int64 = -1

// BlockHeaderLength - Length of fixed block header, the little endian byte length of all slots - 8 bytes
const BlockHeaderLength int64 = 8

// SentinelByte - Every byte of an empty slot holds this value
const SentinelByte byte = 0xFF

// AllocationChunk - Max number of bytes written per write when filling a new block with sentinel bytes
const AllocationChunk int64 = 512 * 1024

// DefaultBaseCapacity - Capacity of the first generation when nothing else is configured
const DefaultBaseCapacity int64 = 1024

// DefaultProbeSize - Length of the probe window in hashed blocks when nothing else is configured
const DefaultProbeSize int64 = 75
