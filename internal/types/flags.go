package types

// Partition attribute flags.
const (
	AttrNone         uint32 = 0
	AttrReadonly     uint32 = 1
	AttrSlotSuffixed uint32 = 2
	AttrUpdated      uint32 = 4
	AttrDisabled     uint32 = 8
)

// Extent target types.
const (
	TargetTypeLinear uint32 = 0
	TargetTypeZero   uint32 = 1
)

// Group flags.
const (
	GroupFlagSlotSuffixed uint32 = 1
)

// Block-device flags.
const (
	BlockDeviceFlagSlotSuffixed uint32 = 1
)

// Header flags.
const (
	HeaderFlagVirtualABDevice uint32 = 1
)

// GeometryMagic identifies a geometry block.
const GeometryMagic uint32 = 0x616c4467

// HeaderMagic identifies a metadata header.
const HeaderMagic uint32 = 0x414C5030

// HeaderMajorVersion is the only major version this codec understands.
const HeaderMajorVersion uint16 = 10

// SectorSize is the fixed on-disk sector width in bytes.
const SectorSize uint64 = 512

// GeometrySize is the padded size of a geometry block.
const GeometrySize = 4096

// PartitionReservedBytes is the opaque reserved region at the head of the
// block device, ahead of the geometry pair.
const PartitionReservedBytes uint64 = 4096

// DefaultPartitionName is the backing partition name a freshly constructed
// block device carries.
const DefaultPartitionName = "super"

// SlotSuffix returns the Android A/B slot suffix convention: slot 0 -> "_a",
// any other slot -> "_b". This is a naming convention for consumers; it is
// never applied to records stored by this codec.
func SlotSuffix(slot uint32) string {
	if slot == 0 {
		return "_a"
	}
	return "_b"
}
