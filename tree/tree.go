// Package tree is the stateful façade over the block engine: it owns the
// authoritative index, the expand/collapse map and the drag lifecycle, and
// publishes a typed event stream for rendering collaborators.
package tree

import (
	"fmt"
	"sync"

	"github.com/thesandybridge/blocktree/block"
	"github.com/thesandybridge/blocktree/collision"
)

// Instance sequences every mutation of one block tree. All state
// transitions go through its methods; no field is exposed for direct
// mutation, which keeps the unchanged-index identity optimization in the
// move algorithm sound.
type Instance struct {
	mu         sync.Mutex
	opts       Options
	containers block.ContainerSet
	index      *block.Index
	expanded   map[string]bool
	drag       *dragState
	sticky     *collision.Sticky
	events     *emitter
	destroyed  bool
}

// New creates an instance over a flat block array.
func New(blocks []*block.Block, opts Options) *Instance {
	opts = opts.withDefaults()
	t := &Instance{
		opts:       opts,
		containers: block.NewContainerSet(opts.ContainerTypes...),
		index:      block.ComputeIndex(blocks, opts.Strategy),
		events:     newEmitter(),
		sticky:     collision.NewSticky(opts.StickyThreshold, nil),
	}
	t.expanded = t.initialExpanded()
	return t
}

func (t *Instance) initialExpanded() map[string]bool {
	m := make(map[string]bool, len(t.index.ByID))
	for id := range t.index.ByID {
		switch t.opts.InitialExpanded {
		case ExpandNone, ExpandList:
			m[id] = false
		default:
			m[id] = true
		}
	}
	if t.opts.InitialExpanded == ExpandList {
		for _, id := range t.opts.ExpandedIDs {
			if _, ok := m[id]; ok {
				m[id] = true
			}
		}
	}
	return m
}

// On subscribes a handler to one event type and returns the unsubscribe
// func.
func (t *Instance) On(eventType EventType, h Handler) func() {
	return t.events.on(eventType, h)
}

// Collision returns the instance's sticky drop-target detector. It is
// reset automatically on StartDrag.
func (t *Instance) Collision() *collision.Sticky {
	return t.sticky
}

// AddBlock appends a new block at the end of the given parent ("" for
// root) and returns it. It fails when the parent does not exist or cannot
// own children.
func (t *Instance) AddBlock(blockType, parentID string, payload map[string]any) (*block.Block, error) {
	zone := block.RootEndZone()
	if parentID != "" {
		zone = block.EndZone(parentID)
	}
	return t.InsertBlock(blockType, payload, zone)
}

// InsertBlock creates a new block at the position named by a drop-zone id.
// It returns a not-found error when the zone's reference block does not
// exist.
func (t *Instance) InsertBlock(blockType string, payload map[string]any, zone string) (*block.Block, error) {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return nil, fmt.Errorf("instance destroyed")
	}

	b := &block.Block{
		ID:      t.opts.IDGenerator(),
		Type:    blockType,
		Payload: payload,
	}
	next, err := block.Insert(t.index, b, zone, t.containers, t.opts.Strategy)
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	t.index = next
	t.expanded[b.ID] = t.opts.InitialExpanded != ExpandNone
	placed := t.index.ByID[b.ID]
	blocks := t.orderedLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventBlockAdd, BlockID: placed.ID})
	t.events.emit(Event{Type: EventBlocksChange, Blocks: blocks})
	return placed, nil
}

// DeleteBlock removes a block and its whole subtree.
func (t *Instance) DeleteBlock(id string) error {
	t.mu.Lock()
	if _, ok := t.index.ByID[id]; !ok {
		t.mu.Unlock()
		return fmt.Errorf("delete %q: %w", id, block.ErrNotFound)
	}

	removed := block.DescendantIDs(t.index, id)
	removed = append(removed, id)
	t.index = block.DeleteSubtree(t.index, id)
	for _, dead := range removed {
		delete(t.expanded, dead)
	}
	blocks := t.orderedLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventBlockDelete, BlockID: id, BlockIDs: removed})
	t.events.emit(Event{Type: EventBlocksChange, Blocks: blocks})
	return nil
}

// MoveBlock applies a structural move immediately, outside any drag. It
// reports whether the tree changed; rejected and no-op moves leave the
// tree untouched.
func (t *Instance) MoveBlock(id, zone string) bool {
	t.mu.Lock()
	next := block.Reparent(t.index, id, zone, t.containers, t.opts.Strategy, t.opts.MaxDepth)
	if next == t.index {
		t.mu.Unlock()
		return false
	}
	t.index = next
	blocks := t.orderedLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventBlocksChange, Blocks: blocks})
	return true
}

// ToggleExpand flips the expand state of one block.
func (t *Instance) ToggleExpand(id string) {
	t.mu.Lock()
	if _, ok := t.index.ByID[id]; !ok {
		t.mu.Unlock()
		return
	}
	t.expanded[id] = !t.expandedLocked(id)
	snapshot := t.expandedCopyLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventExpandChange, BlockID: id, Expanded: snapshot})
}

// SetExpandAll expands or collapses every block.
func (t *Instance) SetExpandAll(expanded bool) {
	t.mu.Lock()
	for id := range t.index.ByID {
		t.expanded[id] = expanded
	}
	snapshot := t.expandedCopyLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventExpandChange, Expanded: snapshot})
}

// SetBlocks replaces the whole tree. Expand state carries over for ids
// that survive; new ids get the configured initial state.
func (t *Instance) SetBlocks(blocks []*block.Block) {
	t.mu.Lock()
	t.index = block.ComputeIndex(blocks, t.opts.Strategy)
	kept := make(map[string]bool, len(t.index.ByID))
	for id := range t.index.ByID {
		if state, ok := t.expanded[id]; ok {
			kept[id] = state
		} else {
			kept[id] = t.opts.InitialExpanded != ExpandNone
		}
	}
	t.expanded = kept
	flat := t.orderedLocked()
	t.mu.Unlock()

	t.events.emit(Event{Type: EventBlocksChange, Blocks: flat})
}

// Blocks returns the authoritative flat block array in canonical order.
func (t *Instance) Blocks() []*block.Block {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orderedLocked()
}

// EffectiveBlocks returns the preview blocks while a drag preview is
// active and the authoritative blocks otherwise.
func (t *Instance) EffectiveBlocks() []*block.Block {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.drag != nil && t.drag.virtual != nil {
		return block.OrderedBlocks(t.drag.virtual, t.containers, t.opts.Strategy)
	}
	return t.orderedLocked()
}

// Block looks up one block by id.
func (t *Instance) Block(id string) (*block.Block, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.index.ByID[id]
	return b, ok
}

// Children returns the ordered children of a block ("" for root).
func (t *Instance) Children(parentID string) []*block.Block {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := t.index.Children(parentID)
	out := make([]*block.Block, 0, len(ids))
	for _, id := range ids {
		if b, ok := t.index.ByID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Ancestors returns the parent chain of a block, nearest first.
func (t *Instance) Ancestors(id string) []*block.Block {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []*block.Block
	visited := map[string]struct{}{id: {}}
	cur, ok := t.index.ByID[id]
	for ok && cur.ParentID != "" {
		if _, seen := visited[cur.ParentID]; seen {
			break
		}
		visited[cur.ParentID] = struct{}{}
		parent, found := t.index.ByID[cur.ParentID]
		if !found {
			break
		}
		out = append(out, parent)
		cur, ok = parent, true
	}
	return out
}

// ExpandedMap returns a copy of the expand/collapse state.
func (t *Instance) ExpandedMap() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expandedCopyLocked()
}

// Expanded reports whether one block is expanded. Unknown ids report the
// default state.
func (t *Instance) Expanded(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expandedLocked(id)
}

// ActiveID returns the id of the block being dragged, or "".
func (t *Instance) ActiveID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.drag == nil {
		return ""
	}
	return t.drag.activeID
}

// HoverZone returns the current drop-zone id, or "".
func (t *Instance) HoverZone() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.drag == nil {
		return ""
	}
	return t.drag.hoverZone
}

// Validate scans the current index for structural corruption and returns
// the issues found.
func (t *Instance) Validate() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return block.Validate(t.index, t.containers)
}

// Destroy cancels any pending preview commit and drops all subscribers.
// It is safe to call more than once.
func (t *Instance) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.stopDragLocked()
	t.mu.Unlock()

	t.events.clear()
}

func (t *Instance) orderedLocked() []*block.Block {
	return block.OrderedBlocks(t.index, t.containers, t.opts.Strategy)
}

func (t *Instance) expandedLocked(id string) bool {
	if state, ok := t.expanded[id]; ok {
		return state
	}
	return t.opts.InitialExpanded != ExpandNone
}

func (t *Instance) expandedCopyLocked() map[string]bool {
	out := make(map[string]bool, len(t.expanded))
	for id, state := range t.expanded {
		out[id] = state
	}
	return out
}
