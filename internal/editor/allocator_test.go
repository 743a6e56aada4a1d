package editor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-lpmetadata/internal/editor"
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
)

func TestFreeRegionsSortedDisjointFromExtents(t *testing.T) {
	e := editor.New(64<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.AddPartition("b", "default", 0))
	require.NoError(t, e.ResizePartition("a", 1<<20))
	require.NoError(t, e.ResizePartition("b", 2<<20))

	regions, err := e.FreeRegions()
	require.NoError(t, err)
	require.NotEmpty(t, regions)

	for i := 1; i < len(regions); i++ {
		require.Less(t, regions[i-1].StartSector, regions[i].StartSector, "regions must be sorted ascending")
		prevEnd := regions[i-1].StartSector + regions[i-1].LengthSectors
		require.LessOrEqual(t, prevEnd, regions[i].StartSector, "regions must not overlap")
	}

	m := e.Build()
	for _, r := range regions {
		rEnd := r.StartSector + r.LengthSectors
		for _, ext := range m.Extents {
			if !ext.IsLinear() {
				continue
			}
			require.True(t, rEnd <= ext.TargetData || r.StartSector >= ext.EndSector(), "regions must not overlap allocated extents")
		}
	}

	require.NoError(t, e.VerifyNoOverlap())
}

func TestGrowHonorsAlignment(t *testing.T) {
	e := editor.New(64<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.ResizePartition("a", 4096))

	size, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)
	require.Equal(t, uint64(4096), size)

	m := e.Build()
	bd := m.BlockDevices[0]
	for _, ext := range m.PartitionExtents(m.Partitions[0]) {
		require.Zero(t, (ext.TargetData*512-uint64(bd.AlignmentOffset))%uint64(bd.Alignment), "grown extent must start on an aligned sector")
	}
}

func TestResizePartitionShrinkThenGrow(t *testing.T) {
	e := editor.New(64<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.ResizePartition("a", 4<<20))
	require.NoError(t, e.ResizePartition("a", 1<<20))

	size, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)
	require.Equal(t, uint64(1<<20), size)

	require.NoError(t, e.ResizePartition("a", 3<<20))
	size, err = e.PartitionSizeBytes("a")
	require.NoError(t, err)
	require.Equal(t, uint64(3<<20), size)
}

func TestResizeBlockDeviceRejectsShrinkPastLastExtent(t *testing.T) {
	e := editor.New(64<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.ResizePartition("a", 32<<20))

	err := e.ResizeBlockDevice(1 << 20)
	require.True(t, lperr.Is(err, lperr.Capacity))
}

func TestCompactPartitionsPacksSingleExtentEach(t *testing.T) {
	e := editor.New(64<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.AddPartition("b", "default", 0))
	require.NoError(t, e.ResizePartition("a", 2<<20))
	require.NoError(t, e.ResizePartition("b", 1<<20))
	require.NoError(t, e.ResizePartition("a", 3<<20)) // fragments "a" into two extents

	require.NoError(t, e.CompactPartitions())

	m := e.Build()
	var lastEnd uint64
	for _, p := range m.Partitions {
		exts := m.PartitionExtents(p)
		require.Len(t, exts, 1, "every partition must compact to exactly one extent")
		require.GreaterOrEqual(t, exts[0].TargetData, lastEnd)
		lastEnd = exts[0].EndSector()
	}

	require.NoError(t, e.VerifyNoOverlap())
}

func TestCompactPartitionsRejectsOverCapacityPlanWithoutMutating(t *testing.T) {
	// Usable range on this device is 820 KiB: sectors [280, 1920), between
	// the head reservation and the metadata_max_size reservation at the
	// tail. a and b fill sectors [280, 1880); shrinking the device to end
	// exactly at sector 1880 moves the tail reservation down to sector 1752,
	// so compaction's plan no longer fits and must be rejected wholesale.
	e := editor.New(1<<20, 65536, 1)
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.AddPartition("b", "default", 0))
	require.NoError(t, e.ResizePartition("a", 600<<10))
	require.NoError(t, e.ResizePartition("b", 200<<10))
	require.NoError(t, e.ResizeBlockDevice(1880*512))

	beforeA, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)
	beforeB, err := e.PartitionSizeBytes("b")
	require.NoError(t, err)

	err = e.CompactPartitions()
	require.True(t, lperr.Is(err, lperr.Capacity))

	afterA, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)
	afterB, err := e.PartitionSizeBytes("b")
	require.NoError(t, err)
	require.Equal(t, beforeA, afterA)
	require.Equal(t, beforeB, afterB)
}
