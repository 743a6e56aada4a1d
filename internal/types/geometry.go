package types

// Geometry is the fixed-location, fixed-size descriptor that tells readers
// where to find metadata slots. It is always serialized padded out to
// GeometrySize bytes; StructSize records how many of those bytes are
// meaningful.
type Geometry struct {
	Magic              uint32
	StructSize         uint32
	Checksum           Checksum32
	MetadataMaxSize    uint32
	MetadataSlotCount  uint32
	LogicalBlockSize   uint32
}

// GeometryChecksumOffset and GeometryChecksumEnd bound the checksum field
// within the struct's encoded byte span: zero this window before hashing.
const (
	GeometryChecksumOffset = 8
	GeometryChecksumEnd    = GeometryChecksumOffset + ChecksumSize
)

// EncodedGeometrySize is sizeof(Geometry) once packed little-endian.
const EncodedGeometrySize = 4 + 4 + ChecksumSize + 4 + 4 + 4
