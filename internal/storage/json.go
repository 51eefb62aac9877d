package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thesandybridge/blocktree/block"
)

// Document is the on-disk shape of a block tree: a flat array plus the
// ordering strategy it was written under.
type Document struct {
	Title    string         `json:"title,omitempty"`
	Strategy block.Strategy `json:"strategy,omitempty"`
	Blocks   []*block.Block `json:"blocks"`

	// OriginalFilename records where a backup copy came from; the live
	// document leaves it empty.
	OriginalFilename string `json:"original_filename,omitempty"`
}

// JSONStore handles JSON file persistence for block documents.
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path.
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load reads a block document from disk. A missing file yields an empty
// document rather than an error, so a fresh path is usable immediately.
func (s *JSONStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Strategy: block.StrategyInteger}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if doc.Strategy == "" {
		doc.Strategy = block.StrategyInteger
	}

	return &doc, nil
}

// Save writes a block document to disk, creating the directory if needed.
func (s *JSONStore) Save(doc *Document) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists.
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
