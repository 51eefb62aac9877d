// Package merge reconciles two divergent snapshots of the same tree: one
// that owns content fields and one that owns structure. It is the
// transport-agnostic primitive for resolving concurrent edits where one
// collaborator reordered blocks while another edited their contents.
package merge

import "github.com/thesandybridge/blocktree/block"

// Structural field names recognized by Options.StructuralFields.
const (
	FieldParentID = "parentId"
	FieldOrder    = "order"
	FieldType     = "type"
)

// Options configures which fields the structure snapshot owns. The zero
// value (nil StructuralFields) means the default set: parentId and order.
type Options struct {
	StructuralFields []string
}

func (o *Options) structuralFields() []string {
	if o == nil || o.StructuralFields == nil {
		return []string{FieldParentID, FieldOrder}
	}
	return o.StructuralFields
}

// BlockVersions merges a content snapshot into a structure snapshot.
// Membership and array order always follow structure: blocks present only
// in structure pass through unchanged, blocks present only in content are
// dropped (structure recorded their deletion). For blocks present in both,
// every field comes from the content entry except the structural fields,
// which come from structure.
func BlockVersions(content, structure []*block.Block, opts *Options) []*block.Block {
	byID := make(map[string]*block.Block, len(content))
	for _, b := range content {
		byID[b.ID] = b
	}
	structural := opts.structuralFields()

	out := make([]*block.Block, 0, len(structure))
	for _, s := range structure {
		c, ok := byID[s.ID]
		if !ok {
			out = append(out, s.Clone())
			continue
		}
		merged := c.Clone()
		for _, field := range structural {
			switch field {
			case FieldParentID:
				merged.ParentID = s.ParentID
			case FieldOrder:
				merged.Order = s.Order
			case FieldType:
				merged.Type = s.Type
			}
		}
		out = append(out, merged)
	}
	return out
}
