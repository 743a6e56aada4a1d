// Package editor implements the in-memory layout builder: an ordered set
// of groups and partitions over one or more block devices, with a
// sector-level allocator enforcing alignment, group-capacity and
// device-capacity invariants (C5 of the design this module implements).
//
// The editor never touches a stream; internal/codec owns all I/O. Callers
// read an image into a *types.LpMetadata, hand it to FromMetadata, mutate
// it through the Editor, and Build() it back into a *types.LpMetadata for
// internal/codec to serialize.
package editor

import (
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// group is the editor's working representation of a types.Group: a plain
// string name instead of a fixed NameBuffer36, since the editor has no
// on-disk width constraint until Build() time.
type group struct {
	Name        string
	Flags       uint32
	MaximumSize uint64
}

// partition is the editor's working representation of a types.Partition:
// it owns its own extent slice directly rather than indexing into a shared
// table, so insert/remove/reorder never need to renumber other partitions.
type partition struct {
	Name       string
	Attributes uint32
	GroupName  string
	Extents    []types.Extent
}

// Editor is the logical model builder. The zero value is not usable; build
// one with New or FromMetadata.
type Editor struct {
	Geometry     types.Geometry
	BlockDevices []types.BlockDevice

	groups     []group
	partitions []partition
}

// New constructs a fresh editor: one block device of deviceSize bytes named
// "super", one group named "default" with no cap, and a geometry sized for
// metadataMaxSize bytes across slotCount slots.
func New(deviceSize uint64, metadataMaxSize uint32, slotCount uint32) *Editor {
	e := &Editor{
		Geometry: types.Geometry{
			Magic:             types.GeometryMagic,
			StructSize:        types.EncodedGeometrySize,
			MetadataMaxSize:   metadataMaxSize,
			MetadataSlotCount: slotCount,
			LogicalBlockSize:  4096,
		},
		groups: []group{{Name: types.DefaultGroupName, MaximumSize: 0}},
	}

	reservedBytes := (4096 + uint64(metadataMaxSize)*uint64(slotCount)) * 2
	firstLogicalByte := alignUp(4096+reservedBytes, 4096)

	var bd types.BlockDevice
	bd.FirstLogicalSector = firstLogicalByte / sectorSize
	bd.Alignment = 4096
	bd.AlignmentOffset = 0
	bd.Size = deviceSize
	bd.PartitionName.SetName(types.DefaultPartitionName)
	e.BlockDevices = []types.BlockDevice{bd}

	return e
}

// FromMetadata rebuilds an editor from a parsed model: geometry and block
// devices are copied as-is, groups are copied in table order, and each
// partition's extents are sliced out of the shared extents table by
// [first_extent_index, first_extent_index+num_extents).
func FromMetadata(m *types.LpMetadata) (*Editor, error) {
	e := &Editor{
		Geometry:     m.Geometry,
		BlockDevices: append([]types.BlockDevice(nil), m.BlockDevices...),
	}

	for _, g := range m.Groups {
		e.groups = append(e.groups, group{
			Name:        g.Name.GetName(),
			Flags:       g.Flags,
			MaximumSize: g.MaximumSize,
		})
	}

	for _, p := range m.Partitions {
		if int(p.GroupIndex) >= len(m.Groups) {
			return nil, lperr.New(lperr.InvalidData, "partition %q references out-of-range group %d", p.Name.GetName(), p.GroupIndex)
		}
		extents := m.PartitionExtents(p)
		ep := partition{
			Name:       p.Name.GetName(),
			Attributes: p.Attributes,
			GroupName:  m.Groups[p.GroupIndex].Name.GetName(),
			Extents:    append([]types.Extent(nil), extents...),
		}
		e.partitions = append(e.partitions, ep)
	}

	return e, nil
}

func (e *Editor) findGroup(name string) (*group, bool) {
	for i := range e.groups {
		if e.groups[i].Name == name {
			return &e.groups[i], true
		}
	}
	return nil, false
}

func (e *Editor) findPartition(name string) (*partition, int) {
	for i := range e.partitions {
		if e.partitions[i].Name == name {
			return &e.partitions[i], i
		}
	}
	return nil, -1
}

// AddGroup installs a new, empty group with the given size cap (0 =
// unbounded).
func (e *Editor) AddGroup(name string, maxSize uint64) error {
	if _, ok := e.findGroup(name); ok {
		return lperr.New(lperr.AlreadyExists, "group %q already exists", name)
	}
	e.groups = append(e.groups, group{Name: name, MaximumSize: maxSize})
	return nil
}

// RemoveGroup removes an empty, non-default group.
func (e *Editor) RemoveGroup(name string) error {
	if name == types.DefaultGroupName {
		return lperr.New(lperr.Invariant, "cannot remove the default group")
	}
	idx := -1
	for i := range e.groups {
		if e.groups[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return lperr.New(lperr.NotFound, "group %q not found", name)
	}
	for _, p := range e.partitions {
		if p.GroupName == name {
			return lperr.New(lperr.Invariant, "group %q is still in use by partition %q", name, p.Name)
		}
	}
	e.groups = append(e.groups[:idx], e.groups[idx+1:]...)
	return nil
}

// ResizeGroup changes a group's size cap. maxSize == 0 means unbounded. If
// bounded, the new cap must not be below the group's current usage.
func (e *Editor) ResizeGroup(name string, maxSize uint64) error {
	g, ok := e.findGroup(name)
	if !ok {
		return lperr.New(lperr.NotFound, "group %q not found", name)
	}
	if maxSize > 0 {
		usage := e.groupUsageBytes(name)
		if usage > maxSize {
			return lperr.New(lperr.Capacity, "group %q usage %d exceeds requested cap %d", name, usage, maxSize)
		}
	}
	g.MaximumSize = maxSize
	return nil
}

// groupUsageBytes sums the linear-extent byte size of every partition
// currently assigned to group name.
func (e *Editor) groupUsageBytes(name string) uint64 {
	var total uint64
	for _, p := range e.partitions {
		if p.GroupName != name {
			continue
		}
		for _, ext := range p.Extents {
			if ext.IsLinear() {
				total += ext.NumSectors * sectorSize
			}
		}
	}
	return total
}

// AddPartition adds an empty partition (no extents) to the named group.
func (e *Editor) AddPartition(name, groupName string, attributes uint32) error {
	if _, _, found := e.findPartitionIdx(name); found {
		return lperr.New(lperr.AlreadyExists, "partition %q already exists", name)
	}
	if _, ok := e.findGroup(groupName); !ok {
		return lperr.New(lperr.NotFound, "group %q not found", groupName)
	}
	e.partitions = append(e.partitions, partition{Name: name, GroupName: groupName, Attributes: attributes})
	return nil
}

func (e *Editor) findPartitionIdx(name string) (*partition, int, bool) {
	p, idx := e.findPartition(name)
	return p, idx, idx >= 0
}

// RemovePartition removes a partition by name. Absent is a no-op.
func (e *Editor) RemovePartition(name string) {
	_, idx := e.findPartition(name)
	if idx < 0 {
		return
	}
	e.partitions = append(e.partitions[:idx], e.partitions[idx+1:]...)
}

// ReorderPartitions moves the named partitions to the front, in the given
// order; names absent from the model are ignored. Partitions not named are
// preserved, appended after the named ones in their prior relative order
// (see DESIGN.md for why this module departs from the source's drop
// behavior — resolving spec.md §9 Open Question 1).
func (e *Editor) ReorderPartitions(names []string) {
	byName := make(map[string]*partition, len(e.partitions))
	placed := make(map[string]bool, len(names))
	for i := range e.partitions {
		byName[e.partitions[i].Name] = &e.partitions[i]
	}

	reordered := make([]partition, 0, len(e.partitions))
	for _, n := range names {
		if p, ok := byName[n]; ok && !placed[n] {
			reordered = append(reordered, *p)
			placed[n] = true
		}
	}
	for _, p := range e.partitions {
		if !placed[p.Name] {
			reordered = append(reordered, p)
		}
	}
	e.partitions = reordered
}

// PartitionSizeBytes returns the sum of a partition's linear extent sizes
// in bytes.
func (e *Editor) PartitionSizeBytes(name string) (uint64, error) {
	p, _ := e.findPartition(name)
	if p == nil {
		return 0, lperr.New(lperr.NotFound, "partition %q not found", name)
	}
	var total uint64
	for _, ext := range p.Extents {
		if ext.IsLinear() {
			total += ext.NumSectors * sectorSize
		}
	}
	return total, nil
}

// GroupUsageBytes is the exported form of groupUsageBytes, for callers
// (and tests) that want to observe capacity accounting directly.
func (e *Editor) GroupUsageBytes(name string) uint64 {
	return e.groupUsageBytes(name)
}

// PartitionNames returns the partitions in current editor order.
func (e *Editor) PartitionNames() []string {
	names := make([]string, len(e.partitions))
	for i, p := range e.partitions {
		names[i] = p.Name
	}
	return names
}

// GroupNames returns the groups in current editor (insertion) order.
func (e *Editor) GroupNames() []string {
	names := make([]string, len(e.groups))
	for i, g := range e.groups {
		names[i] = g.Name
	}
	return names
}

// GroupMaxSize returns a group's size cap (0 = unbounded) and whether the
// group exists.
func (e *Editor) GroupMaxSize(name string) (uint64, bool) {
	g, ok := e.findGroup(name)
	if !ok {
		return 0, false
	}
	return g.MaximumSize, true
}
