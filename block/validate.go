package block

import "fmt"

// Validate scans the index for structural corruption: parent cycles,
// references to unknown parents, and child lists that disagree with block
// ParentID fields. It reports every issue it finds as a human-readable
// string and never modifies the index; callers decide how to react.
func Validate(idx *Index, containers ContainerSet) []string {
	var issues []string

	for id, b := range idx.ByID {
		if b.ParentID != "" {
			if _, ok := idx.ByID[b.ParentID]; !ok {
				issues = append(issues, fmt.Sprintf("block %q references missing parent %q", id, b.ParentID))
			}
		}

		// Walk the parent chain looking for a cycle.
		visited := map[string]struct{}{id: {}}
		cur := b
		for cur.ParentID != "" {
			if _, seen := visited[cur.ParentID]; seen {
				issues = append(issues, fmt.Sprintf("block %q is part of a parent cycle", id))
				break
			}
			visited[cur.ParentID] = struct{}{}
			next, ok := idx.ByID[cur.ParentID]
			if !ok {
				break
			}
			cur = next
		}
	}

	for parentID, children := range idx.ByParent {
		if parentID != "" {
			parent, ok := idx.ByID[parentID]
			if !ok {
				if len(children) > 0 {
					issues = append(issues, fmt.Sprintf("child list exists for unknown parent %q", parentID))
				}
			} else if len(children) > 0 && !containers.Contains(parent.Type) {
				issues = append(issues, fmt.Sprintf("non-container block %q (type %q) has children", parentID, parent.Type))
			}
		}
		for _, childID := range children {
			child, ok := idx.ByID[childID]
			if !ok {
				issues = append(issues, fmt.Sprintf("child list of %q contains unknown block %q", parentID, childID))
				continue
			}
			if child.ParentID != parentID {
				issues = append(issues, fmt.Sprintf("block %q is listed under parent %q but claims parent %q", childID, parentID, child.ParentID))
			}
		}
	}

	return issues
}
