package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesandybridge/blocktree/block"
)

func TestBlockVersionsContentFieldsWin(t *testing.T) {
	content := []*block.Block{{
		ID:      "1",
		Type:    "item",
		Order:   block.IntOrder(0),
		Payload: map[string]any{"title": "Edited"},
	}}
	structure := []*block.Block{{
		ID:      "1",
		Type:    "item",
		Order:   block.KeyOrder("k"),
		Payload: map[string]any{"title": "Orig"},
	}}

	out := BlockVersions(content, structure, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Edited", out[0].Payload["title"])
	assert.Equal(t, "k", out[0].Order.Key)
	assert.Equal(t, "", out[0].ParentID)
}

func TestBlockVersionsMembershipFollowsStructure(t *testing.T) {
	content := []*block.Block{
		{ID: "kept", Type: "item", Payload: map[string]any{"title": "new text"}},
		{ID: "deleted", Type: "item"},
	}
	structure := []*block.Block{
		{ID: "added", Type: "item", Order: block.IntOrder(0)},
		{ID: "kept", Type: "item", ParentID: "added", Order: block.IntOrder(1)},
	}

	out := BlockVersions(content, structure, nil)
	require.Len(t, out, 2)

	// Array order follows structure.
	assert.Equal(t, "added", out[0].ID)
	assert.Equal(t, "kept", out[1].ID)

	// Structure-only blocks pass through; content-only blocks drop.
	assert.Equal(t, "new text", out[1].Payload["title"])
	assert.Equal(t, "added", out[1].ParentID)
}

func TestBlockVersionsCustomStructuralFields(t *testing.T) {
	content := []*block.Block{{ID: "1", Type: "note", ParentID: "p-content", Order: block.IntOrder(3)}}
	structure := []*block.Block{{ID: "1", Type: "task", ParentID: "p-structure", Order: block.IntOrder(7)}}

	// Only order is structural here, so the parent comes from content.
	out := BlockVersions(content, structure, &Options{StructuralFields: []string{FieldOrder}})
	require.Len(t, out, 1)
	assert.Equal(t, "p-content", out[0].ParentID)
	assert.Equal(t, 7, out[0].Order.Num)
	assert.Equal(t, "note", out[0].Type)

	// Declaring type structural hands it to structure.
	out = BlockVersions(content, structure, &Options{StructuralFields: []string{FieldType}})
	assert.Equal(t, "task", out[0].Type)
	assert.Equal(t, 3, out[0].Order.Num)
}

func TestBlockVersionsDoesNotAliasInputs(t *testing.T) {
	content := []*block.Block{{ID: "1", Type: "item", Payload: map[string]any{"title": "x"}}}
	structure := []*block.Block{{ID: "1", Type: "item", Order: block.KeyOrder("k")}}

	out := BlockVersions(content, structure, nil)
	out[0].Payload["title"] = "mutated"
	assert.Equal(t, "x", content[0].Payload["title"])
}
