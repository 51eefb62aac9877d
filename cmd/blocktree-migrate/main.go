// blocktree-migrate converts a block document from integer ordering to
// fractional ordering, assigning evenly spaced keys per sibling group.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thesandybridge/blocktree/block"
	"github.com/thesandybridge/blocktree/internal/storage"
)

func main() {
	output := flag.String("o", "", "Output file (default: overwrite input)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: blocktree-migrate [-o output.json] <document.json>")
		os.Exit(1)
	}
	inputPath := flag.Arg(0)
	outputPath := *output
	if outputPath == "" {
		outputPath = inputPath
	}

	store := storage.NewJSONStore(inputPath)
	if !store.FileExists() {
		fmt.Fprintf(os.Stderr, "Error: %s does not exist\n", inputPath)
		os.Exit(1)
	}

	doc, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if doc.Strategy == block.StrategyFractional {
		fmt.Println("Document already uses fractional ordering")
		return
	}

	migrated, err := block.InitFractionalOrder(doc.Blocks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	doc.Blocks = migrated
	doc.Strategy = block.StrategyFractional

	if err := storage.NewJSONStore(outputPath).Save(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Migrated %d blocks to fractional ordering: %s\n", len(migrated), outputPath)
}
