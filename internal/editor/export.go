package editor

import "github.com/deploymenttheory/go-lpmetadata/internal/types"

// Build exports the current editor state as a *types.LpMetadata ready for
// internal/codec to serialize. Table descriptors within the header are
// left at their zero value; internal/codec.SerializeMetadata computes and
// stamps them (and the header/tables checksums) from the table contents.
func (e *Editor) Build() *types.LpMetadata {
	m := &types.LpMetadata{
		Geometry:     e.Geometry,
		BlockDevices: append([]types.BlockDevice(nil), e.BlockDevices...),
	}

	m.Header.Magic = types.HeaderMagic
	m.Header.MajorVersion = types.HeaderMajorVersion
	m.Header.MinorVersion = 0
	m.Header.HeaderSize = types.EncodedHeaderSize

	groupIndex := make(map[string]uint32, len(e.groups))
	for i, g := range e.groups {
		var tg types.Group
		tg.Name.SetName(g.Name)
		tg.Flags = g.Flags
		tg.MaximumSize = g.MaximumSize
		m.Groups = append(m.Groups, tg)
		groupIndex[g.Name] = uint32(i)
	}

	var runningExtent uint32
	for _, p := range e.partitions {
		var tp types.Partition
		tp.Name.SetName(p.Name)
		tp.Attributes = p.Attributes
		tp.FirstExtentIndex = runningExtent
		tp.NumExtents = uint32(len(p.Extents))
		tp.GroupIndex = groupIndex[p.GroupName]
		m.Partitions = append(m.Partitions, tp)

		m.Extents = append(m.Extents, p.Extents...)
		runningExtent += uint32(len(p.Extents))
	}

	return m
}
