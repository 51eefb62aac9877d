// blocktree-merge reconciles two divergent copies of a block document: one
// holding the content edits, one holding the structural changes. Structure
// decides which blocks exist and where they sit; content decides everything
// else.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thesandybridge/blocktree/internal/storage"
	"github.com/thesandybridge/blocktree/merge"
)

func main() {
	output := flag.String("o", "", "Output file (default: stdout path required)")
	structural := flag.String("structural", "", "Comma-separated structural field names (default: parentId,order)")
	flag.Parse()

	if flag.NArg() != 2 || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: blocktree-merge -o merged.json [-structural parentId,order,type] <content.json> <structure.json>")
		os.Exit(1)
	}

	content, err := storage.NewJSONStore(flag.Arg(0)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading content document: %v\n", err)
		os.Exit(1)
	}
	structure, err := storage.NewJSONStore(flag.Arg(1)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading structure document: %v\n", err)
		os.Exit(1)
	}

	var opts *merge.Options
	if *structural != "" {
		opts = &merge.Options{StructuralFields: strings.Split(*structural, ",")}
	}

	merged := merge.BlockVersions(content.Blocks, structure.Blocks, opts)

	out := &storage.Document{
		Title:    content.Title,
		Strategy: structure.Strategy,
		Blocks:   merged,
	}
	if err := storage.NewJSONStore(*output).Save(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Merged %d blocks: %s\n", len(merged), *output)
}
