package types

// TableDescriptor locates one of the four entity tables within the
// concatenated tables buffer.
type TableDescriptor struct {
	Offset     uint32
	NumEntries uint32
	EntrySize  uint32
}

// EncodedTableDescriptorSize is sizeof(TableDescriptor) packed.
const EncodedTableDescriptorSize = 4 + 4 + 4

// Header describes the metadata blob stored in each primary/backup slot:
// its own checksum, the checksum of the tables that follow it, and the
// four table descriptors (partitions, extents, groups, block_devices, in
// that fixed order).
type Header struct {
	Magic              uint32
	MajorVersion       uint16
	MinorVersion       uint16
	HeaderSize         uint32
	HeaderChecksum     Checksum32
	TablesSize         uint32
	TablesChecksum     Checksum32
	Partitions         TableDescriptor
	Extents            TableDescriptor
	Groups             TableDescriptor
	BlockDevices       TableDescriptor
	Flags              uint32
	Reserved           Reserved124
}

// HeaderChecksumOffset and HeaderChecksumEnd bound the header_checksum
// field within the encoded header span: zero this window before hashing.
const (
	HeaderChecksumOffset = 12
	HeaderChecksumEnd    = HeaderChecksumOffset + ChecksumSize
)

// EncodedHeaderSize is sizeof(Header) packed little-endian.
const EncodedHeaderSize = 4 + 2 + 2 + 4 + ChecksumSize + 4 + ChecksumSize +
	4*EncodedTableDescriptorSize + 4 + HeaderReservedSize
