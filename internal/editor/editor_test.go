package editor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-lpmetadata/internal/editor"
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
)

func newTestEditor() *editor.Editor {
	return editor.New(1<<30, 65536, 2)
}

func TestAddGroupRejectsDuplicate(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddGroup("main", 0))
	err := e.AddGroup("main", 0)
	require.True(t, lperr.Is(err, lperr.AlreadyExists))
}

func TestRemoveGroupRejectsDefaultAndInUse(t *testing.T) {
	e := newTestEditor()
	err := e.RemoveGroup("default")
	require.True(t, lperr.Is(err, lperr.Invariant))

	require.NoError(t, e.AddGroup("main", 0))
	require.NoError(t, e.AddPartition("system_a", "main", 0))
	err = e.RemoveGroup("main")
	require.True(t, lperr.Is(err, lperr.Invariant))
}

func TestGroupCapacityRejectionLeavesModelUnchanged(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddGroup("main", 1<<20)) // 1 MiB cap
	require.NoError(t, e.AddPartition("a", "main", 0))
	require.NoError(t, e.CompactPartitions())
	require.NoError(t, e.ResizePartition("a", 512<<10))

	before, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)

	// Requesting well past the group cap must fail...
	err = e.ResizePartition("a", 4<<20)
	require.True(t, lperr.Is(err, lperr.Capacity))

	// ...and leave the partition's size exactly as it was.
	after, err := e.PartitionSizeBytes("a")
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestResizeGroupRejectsCapBelowUsage(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddGroup("main", 0))
	require.NoError(t, e.AddPartition("a", "main", 0))
	require.NoError(t, e.CompactPartitions())
	require.NoError(t, e.ResizePartition("a", 2<<20))

	err := e.ResizeGroup("main", 1<<20)
	require.True(t, lperr.Is(err, lperr.Capacity))
}

func TestAddPartitionRejectsDuplicateAndUnknownGroup(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddPartition("a", "default", 0))

	err := e.AddPartition("a", "default", 0)
	require.True(t, lperr.Is(err, lperr.AlreadyExists))

	err = e.AddPartition("b", "nope", 0)
	require.True(t, lperr.Is(err, lperr.NotFound))
}

func TestRemovePartitionIsIdempotent(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddPartition("a", "default", 0))
	e.RemovePartition("a")
	e.RemovePartition("a") // second call on an absent name must not panic
	require.Empty(t, e.PartitionNames())
}

func TestReorderPartitionsPreservesUnnamedAtTail(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddPartition("a", "default", 0))
	require.NoError(t, e.AddPartition("b", "default", 0))
	require.NoError(t, e.AddPartition("c", "default", 0))
	require.NoError(t, e.AddPartition("d", "default", 0))

	e.ReorderPartitions([]string{"c", "a"})

	require.Equal(t, []string{"c", "a", "b", "d"}, e.PartitionNames())
}

func TestFromMetadataRoundTripsEditorState(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddGroup("main", 8<<20))
	require.NoError(t, e.AddPartition("system_a", "main", 0))
	require.NoError(t, e.ResizePartition("system_a", 2<<20))
	require.NoError(t, e.CompactPartitions())

	m := e.Build()
	e2, err := editor.FromMetadata(m)
	require.NoError(t, err)

	require.Equal(t, []string{"default", "main"}, e2.GroupNames())
	require.Equal(t, []string{"system_a"}, e2.PartitionNames())
	size, err := e2.PartitionSizeBytes("system_a")
	require.NoError(t, err)
	require.Equal(t, uint64(2<<20), size)
}
