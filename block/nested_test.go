package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestedRoundTrip(t *testing.T) {
	blocks := []*Block{
		b("s", "section", "", 0),
		b("a", "item", "s", 0),
		b("t", "section", "s", 1),
		b("x", "item", "t", 0),
		b("z", "item", "", 1),
	}

	nodes := FlatToNested(blocks, StrategyInteger)
	flat := NestedToFlat(nodes)

	require.Len(t, flat, len(blocks))

	byID := make(map[string]*Block)
	for _, blk := range flat {
		byID[blk.ID] = blk
	}
	for _, orig := range blocks {
		got, ok := byID[orig.ID]
		require.True(t, ok, "id %q lost in round trip", orig.ID)
		assert.Equal(t, orig.ParentID, got.ParentID)
		assert.Equal(t, orig.Order, got.Order)
	}

	// Pre-order shape.
	ids := make([]string, len(flat))
	for i, blk := range flat {
		ids[i] = blk.ID
	}
	assert.Equal(t, []string{"s", "a", "t", "x", "z"}, ids)
}

func TestFlatToNestedShape(t *testing.T) {
	blocks := []*Block{
		b("s", "section", "", 0),
		b("a", "item", "s", 0),
	}
	nodes := FlatToNested(blocks, StrategyInteger)

	require.Len(t, nodes, 1)
	assert.Equal(t, "s", nodes[0].Block.ID)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "a", nodes[0].Children[0].Block.ID)
}

func TestInitFractionalOrder(t *testing.T) {
	blocks := []*Block{
		b("c", "item", "", 2),
		b("a", "item", "", 0),
		b("b", "item", "", 1),
		b("x", "item", "a", 0),
		b("y", "item", "a", 1),
	}

	out, err := InitFractionalOrder(blocks)
	require.NoError(t, err)
	require.Len(t, out, len(blocks))

	keyOf := make(map[string]string)
	for _, blk := range out {
		require.NotEmpty(t, blk.Order.Key, "block %q missing key", blk.ID)
		keyOf[blk.ID] = blk.Order.Key
	}

	// Keys follow the previous integer order within each sibling group.
	assert.Less(t, keyOf["a"], keyOf["b"])
	assert.Less(t, keyOf["b"], keyOf["c"])
	assert.Less(t, keyOf["x"], keyOf["y"])

	// Input untouched.
	assert.Empty(t, blocks[0].Order.Key)
}
