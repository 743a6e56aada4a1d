package lp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/memstream"
	"github.com/deploymenttheory/go-lpmetadata/pkg/lp"
)

const (
	s1DeviceSize = 16 << 30
	s1MaxSize    = 65536
	s1SlotCount  = 2
	s1GroupCap   = 8 << 30
)

// buildS1 reproduces spec.md §8 scenario S1: a 16 GiB device, 65536-byte
// metadata slots, two slots, one capped group "main", and two partitions.
func buildS1(t *testing.T) (*memstream.Device, *lp.Editor) {
	t.Helper()
	ed := lp.NewEditor(s1DeviceSize, s1MaxSize, s1SlotCount)
	require.NoError(t, ed.AddGroup("main", s1GroupCap))
	require.NoError(t, ed.AddPartition("system_a", "main", 0))
	require.NoError(t, ed.AddPartition("vendor_a", "main", 0))
	require.NoError(t, ed.ResizePartition("system_a", 2<<30))
	require.NoError(t, ed.ResizePartition("vendor_a", 512<<20))
	require.NoError(t, ed.CompactPartitions())

	dev := memstream.NewDevice(s1DeviceSize)
	require.NoError(t, lp.Write(dev, ed, nil))
	return dev, ed
}

// S1: write then open round-trips the whole layout.
func TestScenarioS1FreshImageRoundTrips(t *testing.T) {
	dev, _ := buildS1(t)

	m, err := lp.Open(dev, nil)
	require.NoError(t, err)
	require.Len(t, m.Partitions, 2)
	require.Len(t, m.Groups, 2) // default + main

	ed2, err := lp.EditExisting(m)
	require.NoError(t, err)
	size, err := ed2.PartitionSizeBytes("system_a")
	require.NoError(t, err)
	require.Equal(t, uint64(2<<30), size)
}

// S2: corrupting the primary geometry alone must not prevent a read, since
// the backup copy at offset 8192 recovers it.
func TestScenarioS2PrimaryGeometryCorruption(t *testing.T) {
	dev, _ := buildS1(t)
	dev.FlipBit(4096+41, 0)

	_, err := lp.Open(dev, nil)
	require.NoError(t, err)
}

// S3: corrupting the primary metadata slot's header surfaces a checksum
// error from lp.Open, which (per internal/codec.ReadImage) only ever reads
// primary slot 0 — full backup-metadata recovery across the whole image is
// exercised directly at the codec layer (see internal/codec's
// TestHeaderChecksumInvariance), not duplicated here.
func TestScenarioS3PrimaryHeaderCorruption(t *testing.T) {
	dev, _ := buildS1(t)

	primaryOff := int64(4096 + 2*4096) // slot 0, base 4096
	dev.FlipBit(primaryOff+100, 0)

	_, err := lp.Open(dev, nil)
	require.True(t, lperr.Is(err, lperr.Checksum))
}

// S4: growing a partition within its group's remaining capacity succeeds
// and is reflected after a write/read round trip.
func TestScenarioS4GrowWithinGroupCapacity(t *testing.T) {
	dev, ed := buildS1(t)
	require.NoError(t, ed.ResizePartition("vendor_a", 1<<30))
	require.NoError(t, ed.CompactPartitions())
	require.NoError(t, lp.Write(dev, ed, nil))

	m, err := lp.Open(dev, nil)
	require.NoError(t, err)
	ed2, err := lp.EditExisting(m)
	require.NoError(t, err)
	size, err := ed2.PartitionSizeBytes("vendor_a")
	require.NoError(t, err)
	require.Equal(t, uint64(1<<30), size)
}

// S5: growing a partition past its group's remaining capacity must be
// rejected with a Capacity error and must not mutate the image on disk.
func TestScenarioS5GrowPastGroupCapacityRejected(t *testing.T) {
	dev, ed := buildS1(t)

	before, err := ed.PartitionSizeBytes("vendor_a")
	require.NoError(t, err)

	// main's cap is 8 GiB; system_a already holds 2 GiB, so resizing
	// vendor_a to 7 GiB would bring the group to 9 GiB and overflow it.
	err = ed.ResizePartition("vendor_a", 7<<30)
	require.True(t, lperr.Is(err, lperr.Capacity))

	after, err := ed.PartitionSizeBytes("vendor_a")
	require.NoError(t, err)
	require.Equal(t, before, after)

	// The on-disk image, never rewritten, must still describe the
	// original sizes.
	m, err := lp.Open(dev, nil)
	require.NoError(t, err)
	ed2, err := lp.EditExisting(m)
	require.NoError(t, err)
	onDisk, err := ed2.PartitionSizeBytes("vendor_a")
	require.NoError(t, err)
	require.Equal(t, before, onDisk)
}

// S6: shrinking a partition and rewriting reduces its on-disk footprint.
func TestScenarioS6Shrink(t *testing.T) {
	dev, ed := buildS1(t)
	require.NoError(t, ed.ResizePartition("system_a", 1<<30))
	require.NoError(t, ed.CompactPartitions())
	require.NoError(t, lp.Write(dev, ed, nil))

	m, err := lp.Open(dev, nil)
	require.NoError(t, err)
	ed2, err := lp.EditExisting(m)
	require.NoError(t, err)
	size, err := ed2.PartitionSizeBytes("system_a")
	require.NoError(t, err)
	require.Equal(t, uint64(1<<30), size)
}
