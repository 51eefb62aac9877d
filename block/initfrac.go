package block

import (
	"fmt"
	"sort"

	"github.com/thesandybridge/blocktree/fracindex"
)

// InitFractionalOrder migrates integer-ordered blocks into the fractional
// scheme: blocks are bucketed by parent, each bucket is sorted by its
// existing order, and fresh evenly spaced keys are assigned. The input
// blocks are not modified.
func InitFractionalOrder(blocks []*Block) ([]*Block, error) {
	buckets := make(map[string][]*Block)
	for _, b := range blocks {
		buckets[b.ParentID] = append(buckets[b.ParentID], b)
	}

	keyed := make(map[string]string, len(blocks))
	for parent, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			a, b := bucket[i].Order, bucket[j].Order
			if a.Key != "" || b.Key != "" {
				return a.Key < b.Key
			}
			return a.Num < b.Num
		})
		keys, err := fracindex.EvenKeys(len(bucket))
		if err != nil {
			return nil, fmt.Errorf("assign keys under parent %q: %w", parent, err)
		}
		for i, b := range bucket {
			keyed[b.ID] = keys[i]
		}
	}

	out := make([]*Block, len(blocks))
	for i, b := range blocks {
		c := b.Clone()
		c.Order = KeyOrder(keyed[b.ID])
		out[i] = c
	}
	return out, nil
}
