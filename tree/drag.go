package tree

import (
	"time"

	"github.com/thesandybridge/blocktree/block"
)

// dragState exists only between StartDrag and EndDrag/CancelDrag. Every
// prospective reorder is computed against the drag-start snapshot, never
// against intermediate preview state, so repeated hovers cannot drift.
type dragState struct {
	activeID   string
	draggedIDs []string
	snapshot   *block.Index
	hoverZone  string

	// cached is the last accepted reorder; it becomes authoritative on
	// EndDrag. virtual is the debounced copy exposed to preview reads.
	cached  *block.Index
	virtual *block.Index

	timer *time.Timer
	gen   int
}

// StartDrag enters the dragging state for a block, optionally with a
// multi-select set that includes it. It returns false, and no transition
// happens, when a drag is already active, the block is unknown, or the
// CanDrag filter refuses it.
func (t *Instance) StartDrag(id string, ids ...string) bool {
	t.mu.Lock()
	if t.destroyed || t.drag != nil {
		t.mu.Unlock()
		return false
	}
	b, ok := t.index.ByID[id]
	if !ok {
		t.mu.Unlock()
		return false
	}
	if t.opts.CanDrag != nil && !t.opts.CanDrag(b) {
		t.mu.Unlock()
		return false
	}

	dragged := []string{id}
	if len(ids) > 0 {
		dragged = append([]string(nil), ids...)
		if indexOf(dragged, id) < 0 {
			dragged = append([]string{id}, dragged...)
		}
	}

	t.drag = &dragState{
		activeID:   id,
		draggedIDs: dragged,
		snapshot:   t.index,
	}
	t.sticky.Reset()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventDragStart, BlockID: id, BlockIDs: dragged})
	return true
}

// UpdateDrag re-evaluates the drag against a freshly resolved drop zone.
// The prospective reorder is cached immediately; the preview state follows
// after the debounce window. It reports whether the zone was accepted.
func (t *Instance) UpdateDrag(zone string) bool {
	t.mu.Lock()
	if t.drag == nil {
		t.mu.Unlock()
		return false
	}
	dragged := t.index.ByID[t.drag.activeID]
	if t.opts.CanDrop != nil && dragged != nil && !t.opts.CanDrop(dragged, zone) {
		t.mu.Unlock()
		return false
	}

	var prospective *block.Index
	if len(t.drag.draggedIDs) > 1 {
		prospective = block.ReparentMany(t.drag.snapshot, t.drag.draggedIDs, zone, t.containers, t.opts.Strategy, t.opts.MaxDepth)
	} else {
		prospective = block.Reparent(t.drag.snapshot, t.drag.activeID, zone, t.containers, t.opts.Strategy, t.opts.MaxDepth)
	}
	if prospective != t.drag.snapshot {
		t.drag.cached = prospective
	} else {
		// Hovering the origin: nothing to commit, nothing to preview.
		t.drag.cached = nil
	}

	zoneChanged := t.drag.hoverZone != zone
	t.drag.hoverZone = zone

	t.drag.gen++
	gen := t.drag.gen
	if t.drag.timer != nil {
		t.drag.timer.Stop()
	}
	t.drag.timer = time.AfterFunc(t.opts.PreviewDebounce, func() {
		t.commitPreview(gen)
	})
	t.mu.Unlock()

	if zoneChanged {
		t.events.emit(Event{Type: EventHoverChange, Zone: zone})
	}
	t.events.emit(Event{Type: EventDragMove, BlockID: t.ActiveID(), Zone: zone})
	return true
}

// commitPreview publishes the cached reorder as the preview state, unless
// the drag has since moved on or resolved.
func (t *Instance) commitPreview(gen int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed || t.drag == nil || t.drag.gen != gen {
		return
	}
	t.drag.virtual = t.drag.cached
}

// EndDrag leaves the dragging state and commits the last cached reorder as
// the authoritative tree. It returns the new flat block array, or nil when
// nothing was cached (for example a drag released back at its origin).
func (t *Instance) EndDrag() []*block.Block {
	t.mu.Lock()
	if t.drag == nil {
		t.mu.Unlock()
		return nil
	}
	activeID := t.drag.activeID
	cached := t.drag.cached
	t.stopDragLocked()

	var blocks []*block.Block
	if cached != nil {
		t.index = cached
		blocks = t.orderedLocked()
	}
	t.mu.Unlock()

	t.events.emit(Event{Type: EventDragEnd, BlockID: activeID, Blocks: blocks, Cancelled: false})
	if blocks != nil {
		t.events.emit(Event{Type: EventBlocksChange, Blocks: blocks})
	}
	return blocks
}

// CancelDrag leaves the dragging state and discards any cached reorder;
// the authoritative tree is untouched. Calling it with no drag in progress
// is a no-op.
func (t *Instance) CancelDrag() {
	t.mu.Lock()
	if t.drag == nil {
		t.mu.Unlock()
		return
	}
	activeID := t.drag.activeID
	t.stopDragLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventDragEnd, BlockID: activeID, Cancelled: true})
	t.events.emit(Event{Type: EventDragCancel, BlockID: activeID})
}

// stopDragLocked tears down drag state, cancelling the debounce timer so a
// late fire cannot publish a stale preview.
func (t *Instance) stopDragLocked() {
	if t.drag == nil {
		return
	}
	if t.drag.timer != nil {
		t.drag.timer.Stop()
	}
	t.drag = nil
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
