package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesandybridge/blocktree/block"
)

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Blocks)
	assert.Equal(t, block.StrategyInteger, doc.Strategy)
	assert.False(t, store.FileExists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	store := NewJSONStore(path)

	doc := &Document{
		Title:    "Plan",
		Strategy: block.StrategyFractional,
		Blocks: []*block.Block{
			{ID: "s", Type: "section", Order: block.KeyOrder("i"), Payload: map[string]any{"text": "Section"}},
			{ID: "a", Type: "item", ParentID: "s", Order: block.KeyOrder("i"), Payload: map[string]any{"text": "Alpha"}},
		},
	}
	require.NoError(t, store.Save(doc))
	require.True(t, store.FileExists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Plan", loaded.Title)
	assert.Equal(t, block.StrategyFractional, loaded.Strategy)
	require.Len(t, loaded.Blocks, 2)
	assert.Equal(t, "a", loaded.Blocks[1].ID)
	assert.Equal(t, "s", loaded.Blocks[1].ParentID)
	assert.Equal(t, "i", loaded.Blocks[1].Order.Key)
	assert.Equal(t, "Alpha", loaded.Blocks[1].Payload["text"])
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}
