package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesandybridge/blocktree/block"
)

func textBlock(id, text string) *block.Block {
	return &block.Block{ID: id, Type: "item", Payload: map[string]any{"text": text}}
}

func TestMatch(t *testing.T) {
	b := textBlock("1", "Weekly planning notes")

	assert.True(t, Match(b, "plan"))
	assert.True(t, Match(b, "PLAN"), "matching is case-insensitive")
	assert.True(t, Match(b, "wkpl"), "subsequence matches count")
	assert.False(t, Match(b, "budget"))
	assert.True(t, Match(b, ""), "empty query matches everything")
}

func TestMatchCustomFields(t *testing.T) {
	b := &block.Block{ID: "1", Type: "item", Payload: map[string]any{
		"label": "errand",
		"text":  "pick up keys",
	}}

	assert.False(t, Match(b, "errand"), "label is not a default field")
	assert.True(t, Match(b, "errand", "label"))
}

func TestMatchNonStringAndMissingPayload(t *testing.T) {
	assert.False(t, Match(&block.Block{ID: "1", Type: "item"}, "x"))
	assert.False(t, Match(&block.Block{
		ID:      "2",
		Type:    "item",
		Payload: map[string]any{"text": 42},
	}, "4"))
}

func TestFilterPreservesOrder(t *testing.T) {
	blocks := []*block.Block{
		textBlock("1", "groceries"),
		textBlock("2", "call dentist"),
		textBlock("3", "grocery list for party"),
	}

	out := Filter(blocks, "grocer")
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)

	assert.Equal(t, blocks, Filter(blocks, ""))
}

func TestRankPrefersTighterMatches(t *testing.T) {
	blocks := []*block.Block{
		textBlock("loose", "the gXrXoXcXeXrXy run"),
		textBlock("tight", "grocery run"),
	}

	out := Rank(blocks, "grocery")
	require.Len(t, out, 2)
	assert.Equal(t, "tight", out[0].ID)

	assert.Empty(t, Rank(blocks, "nothing here"))
}
