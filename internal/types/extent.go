package types

// Extent is a contiguous sector range assigned to a partition: linear
// (mapped to device sectors on TargetSource) or zero (reads as zeros).
type Extent struct {
	NumSectors   uint64
	TargetType   uint32
	TargetData   uint64
	TargetSource uint32
}

// EncodedExtentSize is sizeof(Extent) packed little-endian.
const EncodedExtentSize = 8 + 4 + 8 + 4

// IsLinear reports whether this extent maps to real device sectors.
func (e Extent) IsLinear() bool { return e.TargetType == TargetTypeLinear }

// EndSector is the first sector past this extent, valid only for linear
// extents.
func (e Extent) EndSector() uint64 { return e.TargetData + e.NumSectors }
