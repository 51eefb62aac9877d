package block

import "sort"

// Index is the normalized in-memory representation of the tree: a block
// lookup plus ordered child-id lists per parent. The empty string keys the
// root-level list.
type Index struct {
	ByID     map[string]*Block
	ByParent map[string][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		ByID:     make(map[string]*Block),
		ByParent: make(map[string][]string),
	}
}

// clone returns a shallow copy of the index: fresh maps, shared block
// pointers and child slices. Mutating operations copy the slices and blocks
// they touch so the original index is never modified.
func (idx *Index) clone() *Index {
	c := &Index{
		ByID:     make(map[string]*Block, len(idx.ByID)),
		ByParent: make(map[string][]string, len(idx.ByParent)),
	}
	for id, b := range idx.ByID {
		c.ByID[id] = b
	}
	for parent, children := range idx.ByParent {
		c.ByParent[parent] = children
	}
	return c
}

// Children returns the ordered child-id list for a parent ("" for root).
func (idx *Index) Children(parentID string) []string {
	return idx.ByParent[parentID]
}

// ComputeIndex builds the normalized index from a flat block array in one
// pass. Under the fractional strategy each child list is additionally sorted
// by key; under the integer strategy the input order is taken as canonical.
func ComputeIndex(blocks []*Block, strategy Strategy) *Index {
	idx := NewIndex()
	for _, b := range blocks {
		idx.ByID[b.ID] = b
		idx.ByParent[b.ParentID] = append(idx.ByParent[b.ParentID], b.ID)
	}
	if strategy == StrategyFractional {
		for parent, children := range idx.ByParent {
			sorted := make([]string, len(children))
			copy(sorted, children)
			sort.SliceStable(sorted, func(i, j int) bool {
				return idx.ByID[sorted[i]].Order.Less(idx.ByID[sorted[j]].Order, strategy)
			})
			idx.ByParent[parent] = sorted
		}
	}
	return idx
}

// OrderedBlocks flattens the index back into the canonical pre-order array,
// descending only into blocks whose type is a container. Under the integer
// strategy sibling order values are rewritten to the dense 0..n-1 sequence;
// the returned blocks are fresh copies either way.
func OrderedBlocks(idx *Index, containers ContainerSet, strategy Strategy) []*Block {
	var out []*Block
	visited := make(map[string]struct{}, len(idx.ByID))

	var walk func(parentID string)
	walk = func(parentID string) {
		for pos, id := range idx.ByParent[parentID] {
			b, ok := idx.ByID[id]
			if !ok {
				continue
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}

			c := b.Clone()
			if strategy == StrategyInteger {
				c.Order = IntOrder(pos)
			}
			out = append(out, c)

			if containers.Contains(b.Type) {
				walk(id)
			}
		}
	}
	walk("")
	return out
}

// DescendantIDs returns every id in the subtree below the given block, not
// including the block itself. The walk is iterative and skips already
// visited ids so a corrupted (cyclic) index cannot loop forever.
func DescendantIDs(idx *Index, id string) []string {
	var out []string
	visited := map[string]struct{}{id: {}}
	stack := append([]string(nil), idx.ByParent[id]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}
		out = append(out, cur)
		stack = append(stack, idx.ByParent[cur]...)
	}
	return out
}

// Depth returns the number of ancestors above the block: 0 for a root-level
// block. The parent walk stops on unknown ids and on revisits.
func Depth(idx *Index, id string) int {
	depth := 0
	visited := map[string]struct{}{id: {}}
	cur, ok := idx.ByID[id]
	for ok && cur.ParentID != "" {
		if _, seen := visited[cur.ParentID]; seen {
			break
		}
		visited[cur.ParentID] = struct{}{}
		depth++
		cur, ok = idx.ByID[cur.ParentID]
	}
	return depth
}

// SubtreeDepth returns the height of the subtree rooted at the block,
// counting the block itself: 1 for a leaf.
func SubtreeDepth(idx *Index, id string) int {
	type frame struct {
		id    string
		depth int
	}
	max := 0
	visited := make(map[string]struct{})
	stack := []frame{{id: id, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[f.id]; seen {
			continue
		}
		visited[f.id] = struct{}{}
		if f.depth > max {
			max = f.depth
		}
		for _, child := range idx.ByParent[f.id] {
			stack = append(stack, frame{id: child, depth: f.depth + 1})
		}
	}
	return max
}
