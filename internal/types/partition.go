package types

// Partition is one named logical partition: a slice of the extents table
// assigned to a group.
type Partition struct {
	Name             NameBuffer36
	Attributes       uint32
	FirstExtentIndex uint32
	NumExtents       uint32
	GroupIndex       uint32
}

// EncodedPartitionSize is sizeof(Partition) packed little-endian.
const EncodedPartitionSize = NameSize + 4 + 4 + 4 + 4
