package types

// LpMetadata is the fully parsed logical model: a geometry, a header, and
// the four entity tables it describes. It is produced either by reading a
// stream or by fresh initialization, mutated only by the layout editor, and
// serialized back by the codec.
type LpMetadata struct {
	Geometry     Geometry
	Header       Header
	Partitions   []Partition
	Extents      []Extent
	Groups       []Group
	BlockDevices []BlockDevice
}

// PartitionExtents returns the slice of p's extents within m.
func (m *LpMetadata) PartitionExtents(p Partition) []Extent {
	start := p.FirstExtentIndex
	end := start + p.NumExtents
	if int(end) > len(m.Extents) || start > end {
		return nil
	}
	return m.Extents[start:end]
}
