// Package block contains the normalized block tree model: the Block type,
// the byId/byParent index, and the structural operations (reparent, delete,
// validate) that every other component builds on.
package block

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// Strategy selects how sibling order is encoded.
type Strategy string

const (
	// StrategyInteger renumbers siblings 0..n-1 on every change.
	StrategyInteger Strategy = "integer"
	// StrategyFractional rewrites only the moved block's key.
	StrategyFractional Strategy = "fractional"
)

// Order is a sibling sort key. Under StrategyInteger only Num is meaningful;
// under StrategyFractional only Key is.
type Order struct {
	Num int
	Key string
}

// IntOrder returns an integer-strategy order value.
func IntOrder(n int) Order {
	return Order{Num: n}
}

// KeyOrder returns a fractional-strategy order value.
func KeyOrder(key string) Order {
	return Order{Key: key}
}

// Less reports whether o sorts before other under the given strategy.
func (o Order) Less(other Order, strategy Strategy) bool {
	if strategy == StrategyFractional {
		return o.Key < other.Key
	}
	return o.Num < other.Num
}

// MarshalJSON encodes the order as a bare number under the integer strategy
// and as a string key under the fractional strategy.
func (o Order) MarshalJSON() ([]byte, error) {
	if o.Key != "" {
		return json.Marshal(o.Key)
	}
	return json.Marshal(o.Num)
}

// UnmarshalJSON accepts either a number or a string key.
func (o *Order) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		o.Key = key
		o.Num = 0
		return nil
	}
	var num int
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("order must be a number or a string key: %w", err)
	}
	o.Num = num
	o.Key = ""
	return nil
}

// Block is a single node in the tree. ParentID is empty for root-level
// blocks. Payload carries arbitrary extra fields that the engine never
// interprets.
type Block struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	ParentID string         `json:"parentId,omitempty"`
	Order    Order          `json:"order"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// Clone returns a copy of the block with its own payload map.
func (b *Block) Clone() *Block {
	c := *b
	if b.Payload != nil {
		c.Payload = make(map[string]any, len(b.Payload))
		for k, v := range b.Payload {
			c.Payload[k] = v
		}
	}
	return &c
}

// ContainerSet is the set of block types permitted to own children.
type ContainerSet map[string]struct{}

// NewContainerSet builds a set from a list of type tags.
func NewContainerSet(types ...string) ContainerSet {
	set := make(ContainerSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether the given type may own children.
func (s ContainerSet) Contains(blockType string) bool {
	_, ok := s[blockType]
	return ok
}

const idChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a unique block id. Callers that need stable or
// externally assigned ids can supply their own generator instead.
func GenerateID() string {
	suffix := make([]byte, 8)
	for i := range suffix {
		suffix[i] = idChars[rand.Intn(len(idChars))]
	}
	return "block_" + time.Now().Format("20060102150405") + "_" + string(suffix)
}
