package editor

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// Region is a contiguous run of unallocated sectors on block device 0.
type Region struct {
	StartSector  uint64
	LengthSectors uint64
}

// device0 returns the first block device, which alone carries the
// reserved regions this codec understands.
func (e *Editor) device0() (types.BlockDevice, error) {
	if len(e.BlockDevices) == 0 {
		return types.BlockDevice{}, lperr.New(lperr.InvalidData, "no block devices defined")
	}
	return e.BlockDevices[0], nil
}

// usableEndSector is the sector past the last usable sector on device 0:
// the backup-metadata reservation at the tail. The head reservation is
// already absorbed into FirstLogicalSector.
func usableEndSector(bd types.BlockDevice, metadataMaxSize uint32, slotCount uint32) uint64 {
	reserved := uint64(metadataMaxSize) * uint64(slotCount)
	if reserved > bd.Size {
		return 0
	}
	return (bd.Size - reserved) / sectorSize
}

// FreeRegions returns the gaps between allocated linear extents on device
// 0, sorted ascending by start sector, pairwise disjoint, and disjoint from
// every linear extent's allocated range. Overlapping input extents are
// tolerated: the running cursor is clamped forward so it never produces a
// negative-length region.
func (e *Editor) FreeRegions() ([]Region, error) {
	bd, err := e.device0()
	if err != nil {
		return nil, err
	}

	last := usableEndSector(bd, e.Geometry.MetadataMaxSize, e.Geometry.MetadataSlotCount)
	cur := bd.FirstLogicalSector

	type span struct{ start, end uint64 }
	var spans []span
	for _, p := range e.partitions {
		for _, ext := range p.Extents {
			if !ext.IsLinear() {
				continue
			}
			spans = append(spans, span{ext.TargetData, ext.EndSector()})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var regions []Region
	for _, s := range spans {
		if s.start > cur {
			regions = append(regions, Region{StartSector: cur, LengthSectors: s.start - cur})
		}
		if s.end > cur {
			cur = s.end
		}
	}
	if cur < last {
		regions = append(regions, Region{StartSector: cur, LengthSectors: last - cur})
	}
	return regions, nil
}

// alignForward advances sector forward to the next sector satisfying
// (sector*512 - alignment_offset) mod alignment == 0, per the grow/compact
// alignment rule. It returns ok=false if alignment forces the cursor past
// limitSector (exclusive upper bound; pass ^uint64(0) for "no limit").
func alignForward(sector uint64, bd types.BlockDevice, limitSector uint64) (uint64, bool) {
	if bd.Alignment == 0 {
		return sector, sector < limitSector
	}
	alignmentSectors := uint64(bd.Alignment) / sectorSize
	if alignmentSectors == 0 {
		return sector, sector < limitSector
	}
	offsetSectors := uint64(bd.AlignmentOffset) / sectorSize

	for (sector-offsetSectors)%alignmentSectors != 0 {
		sector++
		if sector >= limitSector {
			return sector, false
		}
	}
	return sector, sector < limitSector
}

// grow appends new linear extents to extents until sectorsNeeded reaches
// zero or the free-region list is exhausted, walking regions in ascending
// start-sector order. It returns the updated extent slice and whether the
// full request was satisfied.
func grow(extents []types.Extent, sectorsNeeded uint64, regions []Region, bd types.BlockDevice) ([]types.Extent, bool) {
	out := append([]types.Extent(nil), extents...)
	for _, r := range regions {
		if sectorsNeeded == 0 {
			break
		}
		regionEnd := r.StartSector + r.LengthSectors
		s, ok := alignForward(r.StartSector, bd, regionEnd)
		if !ok {
			continue
		}
		avail := regionEnd - s
		take := avail
		if take > sectorsNeeded {
			take = sectorsNeeded
		}
		out = append(out, types.Extent{
			NumSectors:   take,
			TargetType:   types.TargetTypeLinear,
			TargetData:   s,
			TargetSource: 0,
		})
		sectorsNeeded -= take
	}
	return out, sectorsNeeded == 0
}

// shrink keeps extents fully within newSectors, splitting the first extent
// that would overflow into a partial copy and discarding everything after
// it.
func shrink(extents []types.Extent, newSectors uint64) []types.Extent {
	var out []types.Extent
	var used uint64
	for _, ext := range extents {
		if used >= newSectors {
			break
		}
		remaining := newSectors - used
		if ext.NumSectors <= remaining {
			out = append(out, ext)
			used += ext.NumSectors
			continue
		}
		partial := ext
		partial.NumSectors = remaining
		out = append(out, partial)
		break
	}
	return out
}

// ResizePartition grows or shrinks a partition to requestedSizeBytes,
// truncating to whole sectors. Growth validates group capacity before
// attempting allocation and leaves the model unchanged on any rejection.
func (e *Editor) ResizePartition(name string, requestedSizeBytes uint64) error {
	p, _ := e.findPartition(name)
	if p == nil {
		return lperr.New(lperr.NotFound, "partition %q not found", name)
	}

	currentSectors := sumLinearSectors(p.Extents)
	currentBytes := currentSectors * sectorSize
	requestedSectors := bytesToSectors(requestedSizeBytes)

	if requestedSizeBytes == currentBytes {
		return nil
	}

	if requestedSizeBytes < currentBytes {
		p.Extents = shrink(p.Extents, requestedSectors)
		return nil
	}

	if g, ok := e.findGroup(p.GroupName); ok && g.MaximumSize > 0 {
		usage := e.groupUsageBytes(p.GroupName)
		projected := usage - currentBytes + requestedSizeBytes
		if projected > g.MaximumSize {
			return lperr.New(lperr.Capacity, "group %q usage would reach %d, exceeding cap %d", p.GroupName, projected, g.MaximumSize)
		}
	}

	bd, err := e.device0()
	if err != nil {
		return err
	}
	regions, err := e.FreeRegions()
	if err != nil {
		return err
	}

	needed := requestedSectors - currentSectors
	grown, ok := grow(p.Extents, needed, regions, bd)
	if !ok {
		return lperr.New(lperr.Capacity, "not enough aligned free sectors to grow %q by %d sectors", name, needed)
	}
	p.Extents = grown
	return nil
}

// ResizeBlockDevice changes device 0's size, rejecting any size that would
// leave an existing linear extent beyond the new end.
func (e *Editor) ResizeBlockDevice(newSize uint64) error {
	if len(e.BlockDevices) == 0 {
		return lperr.New(lperr.InvalidData, "no block devices defined")
	}
	var maxEndSector uint64
	for _, p := range e.partitions {
		for _, ext := range p.Extents {
			if ext.IsLinear() && ext.EndSector() > maxEndSector {
				maxEndSector = ext.EndSector()
			}
		}
	}
	if newSize < maxEndSector*sectorSize {
		return lperr.New(lperr.Capacity, "new size %d is below the end of the last allocated extent (sector %d)", newSize, maxEndSector)
	}
	e.BlockDevices[0].Size = newSize
	return nil
}

// CompactPartitions replaces the extents of every partition with a non-zero
// linear size by a single linear extent, packed in current partition order
// from FirstLogicalSector with each start aligned forward; partitions with
// no linear sectors are left with no extents. It validates the whole plan before mutating
// anything: if the final cursor would exceed the usable range, it returns
// a CapacityError and leaves the model unchanged (spec.md §9 Open Question
// 2, resolved toward surfacing the error rather than silently overrunning
// the backup-metadata region).
func (e *Editor) CompactPartitions() error {
	bd, err := e.device0()
	if err != nil {
		return err
	}
	last := usableEndSector(bd, e.Geometry.MetadataMaxSize, e.Geometry.MetadataSlotCount)

	cur := bd.FirstLogicalSector
	plan := make([][]types.Extent, len(e.partitions))
	for i, p := range e.partitions {
		sizeBytes := sumLinearSectors(p.Extents) * sectorSize
		if sizeBytes == 0 {
			continue
		}
		aligned, ok := alignForward(cur, bd, ^uint64(0))
		if !ok {
			return lperr.New(lperr.Capacity, "alignment overflow compacting partition %q", p.Name)
		}
		cur = aligned
		sectors := sizeBytes / sectorSize
		plan[i] = []types.Extent{{NumSectors: sectors, TargetType: types.TargetTypeLinear, TargetData: cur, TargetSource: 0}}
		cur += sectors
	}

	if cur > last {
		return lperr.New(lperr.Capacity, "compaction needs sector %d, usable range ends at %d", cur, last)
	}

	for i := range e.partitions {
		if plan[i] != nil {
			e.partitions[i].Extents = plan[i]
		} else {
			e.partitions[i].Extents = nil
		}
	}
	return nil
}

func sumLinearSectors(extents []types.Extent) uint64 {
	var total uint64
	for _, ext := range extents {
		if ext.IsLinear() {
			total += ext.NumSectors
		}
	}
	return total
}

// VerifyNoOverlap is a diagnostic cross-check independent of FreeRegions:
// it marks every linear extent's sector range in a bitset and reports the
// first collision found. It never replaces FreeRegions as the allocator's
// authority; it exists for callers auditing an untrusted image.
func (e *Editor) VerifyNoOverlap() error {
	bd, err := e.device0()
	if err != nil {
		return err
	}
	total := bd.Size / sectorSize
	if total == 0 {
		return nil
	}
	seen := bitset.New(uint(total))

	for _, p := range e.partitions {
		for _, ext := range p.Extents {
			if !ext.IsLinear() {
				continue
			}
			for s := ext.TargetData; s < ext.EndSector(); s++ {
				if s >= total {
					break
				}
				if seen.Test(uint(s)) {
					return lperr.New(lperr.InvalidData, "partition %q: sector %d is claimed by more than one extent", p.Name, s)
				}
				seen.Set(uint(s))
			}
		}
	}
	return nil
}
