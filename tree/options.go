package tree

import (
	"time"

	"github.com/thesandybridge/blocktree/block"
)

// ExpandMode controls the initial expand/collapse state of the tree.
type ExpandMode string

const (
	// ExpandAll starts with every block expanded. This is the default.
	ExpandAll ExpandMode = "all"
	// ExpandNone starts with every block collapsed.
	ExpandNone ExpandMode = "none"
	// ExpandList expands only the ids named in Options.ExpandedIDs.
	ExpandList ExpandMode = "list"
)

// DefaultPreviewDebounce is the delay before a hovered reorder becomes the
// visible preview state.
const DefaultPreviewDebounce = 150 * time.Millisecond

// DefaultStickyThreshold is the hysteresis margin for the built-in
// collision detector.
const DefaultStickyThreshold = 5.0

// Options configures an Instance. The zero value is usable: integer
// ordering, no containers, unlimited depth, everything expanded.
type Options struct {
	// Strategy selects integer or fractional sibling ordering.
	Strategy block.Strategy

	// ContainerTypes lists the block types allowed to own children.
	ContainerTypes []string

	// MaxDepth caps nesting depth; zero means unlimited.
	MaxDepth int

	// InitialExpanded and ExpandedIDs set the starting expand state.
	InitialExpanded ExpandMode
	ExpandedIDs     []string

	// PreviewDebounce is the delay before UpdateDrag's cached reorder is
	// committed to the preview state.
	PreviewDebounce time.Duration

	// StickyThreshold is the hysteresis margin of the built-in collision
	// detector.
	StickyThreshold float64

	// IDGenerator produces ids for AddBlock/InsertBlock. Defaults to
	// block.GenerateID.
	IDGenerator func() string

	// CanDrag filters which blocks may start a drag. Nil allows all.
	CanDrag func(*block.Block) bool

	// CanDrop filters which zones a dragged block may be dropped on. Nil
	// allows all.
	CanDrop func(dragged *block.Block, zone string) bool
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = block.StrategyInteger
	}
	if o.InitialExpanded == "" {
		o.InitialExpanded = ExpandAll
	}
	if o.PreviewDebounce <= 0 {
		o.PreviewDebounce = DefaultPreviewDebounce
	}
	if o.StickyThreshold <= 0 {
		o.StickyThreshold = DefaultStickyThreshold
	}
	if o.IDGenerator == nil {
		o.IDGenerator = block.GenerateID
	}
	return o
}
