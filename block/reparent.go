package block

import (
	"errors"
	"fmt"

	"github.com/thesandybridge/blocktree/fracindex"
)

// ErrNotFound is returned when an operation names a block id that does not
// exist in the index.
var ErrNotFound = errors.New("block not found")

// Reparent moves a block to the position named by a drop-zone id and
// returns the resulting index. Rejected and no-op moves return the input
// index unchanged; callers may compare pointers to skip redundant work.
//
// A move is rejected when the block or anchor does not exist, when the
// resolved parent is a non-container block, when the parent sits inside the
// moved block's own subtree (which would create a cycle), or when maxDepth
// is positive and the move would nest the subtree deeper than maxDepth
// levels.
func Reparent(idx *Index, blockID, zone string, containers ContainerSet, strategy Strategy, maxDepth int) *Index {
	dragged, ok := idx.ByID[blockID]
	if !ok {
		return idx
	}
	z, err := ParseDropZone(zone)
	if err != nil {
		return idx
	}

	newParent, ok := resolveParent(idx, z)
	if !ok {
		return idx
	}

	// Dropping a container onto itself.
	if newParent == blockID {
		return idx
	}
	if newParent != "" {
		parent, ok := idx.ByID[newParent]
		if !ok {
			return idx
		}
		if !containers.Contains(parent.Type) {
			return idx
		}
		if isAncestor(idx, blockID, newParent) {
			return idx
		}
	}
	if maxDepth > 0 {
		parentDepth := 0
		if newParent != "" {
			parentDepth = Depth(idx, newParent) + 1
		}
		if parentDepth+SubtreeDepth(idx, blockID) > maxDepth {
			return idx
		}
	}

	target := insertionPos(idx, z)

	oldParent := dragged.ParentID
	oldPos := indexOf(idx.ByParent[oldParent], blockID)
	if oldPos < 0 {
		return idx
	}
	if oldParent == newParent {
		adjusted := target
		if oldPos < target {
			adjusted--
		}
		if adjusted == oldPos {
			return idx
		}
	}

	out := idx.clone()

	oldList := out.ByParent[oldParent]
	removed := make([]string, 0, len(oldList)-1)
	removed = append(removed, oldList[:oldPos]...)
	removed = append(removed, oldList[oldPos+1:]...)
	out.ByParent[oldParent] = removed

	pos := target
	if oldParent == newParent && oldPos < target {
		pos--
	}
	newList := out.ByParent[newParent]
	if pos > len(newList) {
		pos = len(newList)
	}
	inserted := make([]string, 0, len(newList)+1)
	inserted = append(inserted, newList[:pos]...)
	inserted = append(inserted, blockID)
	inserted = append(inserted, newList[pos:]...)
	out.ByParent[newParent] = inserted

	moved := dragged.Clone()
	moved.ParentID = newParent
	out.ByID[blockID] = moved

	if strategy == StrategyFractional {
		key, err := siblingKey(out, newParent, pos)
		if err != nil {
			return idx
		}
		moved.Order = KeyOrder(key)
	} else {
		renumber(out, oldParent)
		if newParent != oldParent {
			renumber(out, newParent)
		}
	}

	return out
}

// ReparentMany moves an ordered set of ids as one unit: the first id moves
// to the drop zone and each subsequent id lands immediately after the
// previous one, preserving relative order. The whole operation is aborted
// (input index returned) when the anchor move is rejected.
func ReparentMany(idx *Index, ids []string, zone string, containers ContainerSet, strategy Strategy, maxDepth int) *Index {
	if len(ids) == 0 {
		return idx
	}
	out := Reparent(idx, ids[0], zone, containers, strategy, maxDepth)
	if out == idx {
		return idx
	}
	prev := ids[0]
	for _, id := range ids[1:] {
		next := Reparent(out, id, AfterZone(prev), containers, strategy, maxDepth)
		if next != out {
			out = next
			prev = id
		}
	}
	return out
}

// DeleteSubtree removes a block together with every descendant from both
// maps. Deleting an unknown id returns the input index unchanged.
func DeleteSubtree(idx *Index, id string) *Index {
	b, ok := idx.ByID[id]
	if !ok {
		return idx
	}

	doomed := DescendantIDs(idx, id)
	doomed = append(doomed, id)

	out := idx.clone()
	parentList := out.ByParent[b.ParentID]
	if pos := indexOf(parentList, id); pos >= 0 {
		trimmed := make([]string, 0, len(parentList)-1)
		trimmed = append(trimmed, parentList[:pos]...)
		trimmed = append(trimmed, parentList[pos+1:]...)
		out.ByParent[b.ParentID] = trimmed
	}
	for _, dead := range doomed {
		delete(out.ByID, dead)
		delete(out.ByParent, dead)
	}
	return out
}

// Insert places a new block at the position named by a drop-zone id. Unlike
// Reparent it reports failures as errors, since inserting against a missing
// reference block is a caller mistake rather than a routine drag outcome.
func Insert(idx *Index, b *Block, zone string, containers ContainerSet, strategy Strategy) (*Index, error) {
	if _, exists := idx.ByID[b.ID]; exists {
		return nil, fmt.Errorf("block %q already exists", b.ID)
	}
	z, err := ParseDropZone(zone)
	if err != nil {
		return nil, err
	}
	parentID, ok := resolveParent(idx, z)
	if !ok {
		return nil, fmt.Errorf("insert %q at %q: %w", b.ID, zone, ErrNotFound)
	}
	if parentID != "" {
		parent := idx.ByID[parentID]
		if !containers.Contains(parent.Type) {
			return nil, fmt.Errorf("insert %q: parent %q (type %q) is not a container", b.ID, parentID, parent.Type)
		}
	}

	pos := insertionPos(idx, z)

	out := idx.clone()
	list := out.ByParent[parentID]
	if pos > len(list) {
		pos = len(list)
	}
	inserted := make([]string, 0, len(list)+1)
	inserted = append(inserted, list[:pos]...)
	inserted = append(inserted, b.ID)
	inserted = append(inserted, list[pos:]...)
	out.ByParent[parentID] = inserted

	placed := b.Clone()
	placed.ParentID = parentID
	out.ByID[b.ID] = placed

	if strategy == StrategyFractional {
		key, err := siblingKey(out, parentID, pos)
		if err != nil {
			return nil, fmt.Errorf("insert %q: %w", b.ID, err)
		}
		placed.Order = KeyOrder(key)
	} else {
		renumber(out, parentID)
	}

	return out, nil
}

// resolveParent maps a zone to the id of the parent the block would land
// under ("" for root). The boolean is false when the anchor does not exist.
func resolveParent(idx *Index, z DropZone) (string, bool) {
	switch z.Mode {
	case ZoneRootStart, ZoneRootEnd:
		return "", true
	case ZoneInto, ZoneEnd:
		if _, ok := idx.ByID[z.Anchor]; !ok {
			return "", false
		}
		return z.Anchor, true
	default: // ZoneBefore, ZoneAfter
		anchor, ok := idx.ByID[z.Anchor]
		if !ok {
			return "", false
		}
		return anchor.ParentID, true
	}
}

// insertionPos computes the target index within the resolved parent's child
// list, from the anchor's current position.
func insertionPos(idx *Index, z DropZone) int {
	switch z.Mode {
	case ZoneRootStart, ZoneInto:
		return 0
	case ZoneRootEnd:
		return len(idx.ByParent[""])
	case ZoneEnd:
		return len(idx.ByParent[z.Anchor])
	case ZoneBefore:
		anchor := idx.ByID[z.Anchor]
		return indexOf(idx.ByParent[anchor.ParentID], z.Anchor)
	default: // ZoneAfter
		anchor := idx.ByID[z.Anchor]
		return indexOf(idx.ByParent[anchor.ParentID], z.Anchor) + 1
	}
}

// siblingKey generates a fractional key for the block at pos in the
// parent's child list, between its immediate neighbors.
func siblingKey(idx *Index, parentID string, pos int) (string, error) {
	list := idx.ByParent[parentID]
	var lo, hi *string
	if pos > 0 {
		k := idx.ByID[list[pos-1]].Order.Key
		lo = &k
	}
	if pos+1 < len(list) {
		k := idx.ByID[list[pos+1]].Order.Key
		hi = &k
	}
	return fracindex.KeyBetween(lo, hi)
}

// renumber rewrites a child list's order values to the dense 0..n-1
// sequence, cloning only blocks whose value changes.
func renumber(idx *Index, parentID string) {
	for pos, id := range idx.ByParent[parentID] {
		b, ok := idx.ByID[id]
		if !ok {
			continue
		}
		if b.Order.Num != pos || b.Order.Key != "" {
			c := b.Clone()
			c.Order = IntOrder(pos)
			idx.ByID[id] = c
		}
	}
}

// isAncestor reports whether maybeAncestor appears in the parent chain of
// id (or equals it). The walk is cycle-safe.
func isAncestor(idx *Index, maybeAncestor, id string) bool {
	visited := make(map[string]struct{})
	cur := id
	for cur != "" {
		if cur == maybeAncestor {
			return true
		}
		if _, seen := visited[cur]; seen {
			return false
		}
		visited[cur] = struct{}{}
		b, ok := idx.ByID[cur]
		if !ok {
			return false
		}
		cur = b.ParentID
	}
	return false
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
