package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesandybridge/blocktree/block"
)

func newDragInstance(opts Options) *Instance {
	if opts.ContainerTypes == nil {
		opts.ContainerTypes = []string{"section"}
	}
	if opts.PreviewDebounce == 0 {
		opts.PreviewDebounce = 5 * time.Millisecond
	}
	return New(sampleBlocks(), opts)
}

func waitPreview(inst *Instance) {
	time.Sleep(30 * time.Millisecond)
	_ = inst.EffectiveBlocks()
}

func TestStartDragGuards(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	assert.False(t, inst.StartDrag("ghost"))
	assert.True(t, inst.StartDrag("a"))
	assert.False(t, inst.StartDrag("b"), "a drag is already in progress")
	assert.Equal(t, "a", inst.ActiveID())
}

func TestCanDragFilter(t *testing.T) {
	inst := newDragInstance(Options{
		CanDrag: func(b *block.Block) bool { return b.Type != "section" },
	})
	defer inst.Destroy()

	assert.False(t, inst.StartDrag("s"))
	assert.True(t, inst.StartDrag("a"))
}

func TestCanDropFilter(t *testing.T) {
	inst := newDragInstance(Options{
		CanDrop: func(_ *block.Block, zone string) bool { return zone != "root-start" },
	})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("a"))
	assert.False(t, inst.UpdateDrag("root-start"))
	assert.True(t, inst.UpdateDrag(block.RootEndZone()))
}

func TestDragPreviewAndCommit(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	var gotStart, gotMove, gotEnd, gotChange bool
	inst.On(EventDragStart, func(Event) { gotStart = true })
	inst.On(EventDragMove, func(Event) { gotMove = true })
	inst.On(EventDragEnd, func(ev Event) { gotEnd = true; assert.False(t, ev.Cancelled) })
	inst.On(EventBlocksChange, func(Event) { gotChange = true })

	require.True(t, inst.StartDrag("a"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	assert.Equal(t, block.RootEndZone(), inst.HoverZone())

	// Authoritative state holds until EndDrag.
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.Blocks()))

	// The preview arrives after the debounce window.
	waitPreview(inst)
	assert.Equal(t, []string{"s", "b", "z", "a"}, ids(inst.EffectiveBlocks()))

	committed := inst.EndDrag()
	require.NotNil(t, committed)
	assert.Equal(t, []string{"s", "b", "z", "a"}, ids(committed))
	assert.Equal(t, []string{"s", "b", "z", "a"}, ids(inst.Blocks()))

	assert.True(t, gotStart)
	assert.True(t, gotMove)
	assert.True(t, gotEnd)
	assert.True(t, gotChange)
	assert.Equal(t, "", inst.ActiveID())
}

func TestDragCommitWithoutWaitingForPreview(t *testing.T) {
	inst := newDragInstance(Options{PreviewDebounce: time.Hour})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("z"))
	require.True(t, inst.UpdateDrag(block.IntoZone("s")))

	// The debounce only delays the preview; the reorder itself is cached
	// immediately and commits even if the timer never fires.
	committed := inst.EndDrag()
	require.NotNil(t, committed)
	assert.Equal(t, []string{"s", "z", "a", "b"}, ids(committed))
}

func TestDragReleasedAtOrigin(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("b"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	require.True(t, inst.UpdateDrag(block.AfterZone("a")), "dragging back to where b already sits")

	assert.Nil(t, inst.EndDrag())
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.Blocks()))
}

func TestRepeatedHoversResolveAgainstSnapshot(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("a"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	require.True(t, inst.UpdateDrag(block.AfterZone("b")))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))

	committed := inst.EndDrag()
	require.NotNil(t, committed)
	assert.Equal(t, []string{"s", "b", "z", "a"}, ids(committed))
}

func TestCancelDragDiscardsPreview(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	var end, cancel Event
	inst.On(EventDragEnd, func(ev Event) { end = ev })
	inst.On(EventDragCancel, func(ev Event) { cancel = ev })

	require.True(t, inst.StartDrag("a"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	waitPreview(inst)
	require.Equal(t, []string{"s", "b", "z", "a"}, ids(inst.EffectiveBlocks()))

	inst.CancelDrag()
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.Blocks()))
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.EffectiveBlocks()))
	assert.True(t, end.Cancelled)
	assert.Equal(t, "a", cancel.BlockID)

	// Cancelling with no drag in progress is a no-op.
	inst.CancelDrag()
}

func TestStalePreviewTimerDoesNotFire(t *testing.T) {
	inst := newDragInstance(Options{PreviewDebounce: 5 * time.Millisecond})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("a"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	inst.CancelDrag()

	// A timer armed before the cancel must not resurrect preview state.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.EffectiveBlocks()))
}

func TestMultiSelectDrag(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	var started Event
	inst.On(EventDragStart, func(ev Event) { started = ev })

	require.True(t, inst.StartDrag("a", "a", "b"))
	assert.Equal(t, []string{"a", "b"}, started.BlockIDs)

	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	committed := inst.EndDrag()
	require.NotNil(t, committed)
	assert.Equal(t, []string{"s", "z", "a", "b"}, ids(committed))
}

func TestUpdateDragRejectedZoneClearsCache(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()

	require.True(t, inst.StartDrag("z"))
	require.True(t, inst.UpdateDrag(block.IntoZone("s")))
	// A zone whose parent is not a container leaves the snapshot untouched,
	// which clears the cache rather than keeping a stale reorder.
	require.True(t, inst.UpdateDrag(block.IntoZone("a")))

	assert.Nil(t, inst.EndDrag())
	assert.Equal(t, []string{"s", "a", "b", "z"}, ids(inst.Blocks()))
}

func TestEndDragWithoutStart(t *testing.T) {
	inst := newDragInstance(Options{})
	defer inst.Destroy()
	assert.Nil(t, inst.EndDrag())
}

func TestDestroyDuringDrag(t *testing.T) {
	inst := newDragInstance(Options{})
	require.True(t, inst.StartDrag("a"))
	require.True(t, inst.UpdateDrag(block.RootEndZone()))
	inst.Destroy()

	assert.Equal(t, "", inst.ActiveID())
	assert.False(t, inst.StartDrag("a"))
}
