package types

// DefaultGroupName is the always-present, never-removable group.
const DefaultGroupName = "default"

// Group is a named quota bucket enforcing a combined size ceiling over its
// member partitions' linear extents. MaximumSize == 0 means unbounded.
type Group struct {
	Name        NameBuffer36
	Flags       uint32
	MaximumSize uint64
}

// EncodedGroupSize is sizeof(Group) packed little-endian.
const EncodedGroupSize = NameSize + 4 + 8
