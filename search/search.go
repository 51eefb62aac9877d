// Package search filters blocks by fuzzy-matching their payload text
// fields. The engine treats payloads as opaque; this helper only looks at
// the string fields the caller names.
package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/thesandybridge/blocktree/block"
)

// DefaultFields are the payload fields consulted when the caller names
// none.
var DefaultFields = []string{"text", "title"}

// Match reports whether the query fuzzy-matches any of the named payload
// fields, case-insensitively.
func Match(b *block.Block, query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, field := range fieldList(fields) {
		if text, ok := fieldString(b, field); ok && fuzzy.MatchFold(query, text) {
			return true
		}
	}
	return false
}

// Filter returns the blocks matching the query, preserving input order.
func Filter(blocks []*block.Block, query string, fields ...string) []*block.Block {
	if query == "" {
		return blocks
	}
	var out []*block.Block
	for _, b := range blocks {
		if Match(b, query, fields...) {
			out = append(out, b)
		}
	}
	return out
}

// Rank returns the matching blocks ordered by match quality, best first.
func Rank(blocks []*block.Block, query string, fields ...string) []*block.Block {
	if query == "" {
		return blocks
	}
	type ranked struct {
		b    *block.Block
		rank int
	}
	var matches []ranked
	for _, b := range blocks {
		best := -1
		for _, field := range fieldList(fields) {
			text, ok := fieldString(b, field)
			if !ok {
				continue
			}
			if r := fuzzy.RankMatchFold(query, text); r >= 0 && (best < 0 || r < best) {
				best = r
			}
		}
		if best >= 0 {
			matches = append(matches, ranked{b: b, rank: best})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})
	out := make([]*block.Block, len(matches))
	for i, m := range matches {
		out[i] = m.b
	}
	return out
}

func fieldList(fields []string) []string {
	if len(fields) == 0 {
		return DefaultFields
	}
	return fields
}

func fieldString(b *block.Block, field string) (string, bool) {
	if b.Payload == nil {
		return "", false
	}
	text, ok := b.Payload[field].(string)
	return text, ok
}
