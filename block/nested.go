package block

// Node is a block together with its resolved children, for callers that
// want to walk the tree shape directly instead of through the index.
type Node struct {
	Block    *Block
	Children []*Node
}

// FlatToNested builds the nested tree from a flat block array. Children
// appear in canonical sibling order; blocks whose parent is missing or
// unreachable from the root are dropped, matching the pre-order flatten.
func FlatToNested(blocks []*Block, strategy Strategy) []*Node {
	idx := ComputeIndex(blocks, strategy)

	visited := make(map[string]struct{}, len(blocks))
	var build func(parentID string) []*Node
	build = func(parentID string) []*Node {
		ids := idx.ByParent[parentID]
		if len(ids) == 0 {
			return nil
		}
		nodes := make([]*Node, 0, len(ids))
		for _, id := range ids {
			b, ok := idx.ByID[id]
			if !ok {
				continue
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			nodes = append(nodes, &Node{Block: b, Children: build(id)})
		}
		return nodes
	}
	return build("")
}

// NestedToFlat flattens a nested tree back into the pre-order block array.
func NestedToFlat(nodes []*Node) []*Block {
	var out []*Block
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n.Block)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}
