package types

// BlockDevice describes one physical device carved into logical
// partitions. Device index 0 carries the reserved regions (§3 of the
// specification this codec implements): partition header, geometry pair,
// and primary/backup metadata slots.
type BlockDevice struct {
	FirstLogicalSector uint64
	Alignment          uint32
	AlignmentOffset    uint32
	Size               uint64
	PartitionName      NameBuffer36
	Flags              uint32
}

// EncodedBlockDeviceSize is sizeof(BlockDevice) packed little-endian.
const EncodedBlockDeviceSize = 8 + 4 + 4 + 8 + NameSize + 4
