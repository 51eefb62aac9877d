package tree

import (
	"sync"

	"github.com/thesandybridge/blocktree/block"
)

// EventType names an event emitted by an Instance.
type EventType string

const (
	EventBlocksChange EventType = "blocks:change"
	EventDragStart    EventType = "drag:start"
	EventDragMove     EventType = "drag:move"
	EventDragEnd      EventType = "drag:end"
	EventDragCancel   EventType = "drag:cancel"
	EventExpandChange EventType = "expand:change"
	EventHoverChange  EventType = "hover:change"
	EventBlockAdd     EventType = "block:add"
	EventBlockDelete  EventType = "block:delete"
)

// Event carries the payload for one emitted event. Fields that do not
// apply to the event type are zero.
type Event struct {
	Type      EventType
	Blocks    []*block.Block  // blocks:change and committed drag:end
	BlockID   string          // block:add, block:delete, drag events
	BlockIDs  []string        // multi-select drag, deleted descendants
	Zone      string          // hover:change, drag:move
	Cancelled bool            // drag:end
	Expanded  map[string]bool // expand:change
}

// Handler receives events. Handlers run synchronously on the goroutine
// that performed the mutation; no ordering between separate handlers is
// guaranteed.
type Handler func(Event)

type emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[EventType]map[int]Handler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[EventType]map[int]Handler)}
}

// on registers a handler and returns its unsubscribe func. Unsubscribing
// twice is harmless.
func (e *emitter) on(t EventType, h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	if e.handlers[t] == nil {
		e.handlers[t] = make(map[int]Handler)
	}
	e.handlers[t][id] = h

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers[t], id)
	}
}

func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	hs := make([]Handler, 0, len(e.handlers[ev.Type]))
	for _, h := range e.handlers[ev.Type] {
		hs = append(hs, h)
	}
	e.mu.Unlock()

	for _, h := range hs {
		h(ev)
	}
}

func (e *emitter) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = make(map[EventType]map[int]Handler)
}
