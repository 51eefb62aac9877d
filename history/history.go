// Package history implements a bounded undo/redo reducer over whole
// snapshots. Snapshots are opaque to the reducer; the engine uses flat
// block arrays but any value works.
package history

// State holds the past/present/future stacks. Present is the authoritative
// snapshot whenever history is in use.
type State[S any] struct {
	Past    []S
	Present S
	Future  []S
}

// NewState wraps an initial snapshot in an empty history.
func NewState[S any](initial S) *State[S] {
	return &State[S]{Present: initial}
}

// Reducer applies history actions. MaxSteps bounds the past stack; zero or
// negative means unbounded.
type Reducer[S any] struct {
	MaxSteps int
}

// Set pushes the present onto the past (trimming to MaxSteps), adopts the
// snapshot as the new present and clears the future.
func (r Reducer[S]) Set(st *State[S], snapshot S) *State[S] {
	past := make([]S, 0, len(st.Past)+1)
	past = append(past, st.Past...)
	past = append(past, st.Present)
	if r.MaxSteps > 0 && len(past) > r.MaxSteps {
		past = past[len(past)-r.MaxSteps:]
	}
	return &State[S]{
		Past:    past,
		Present: snapshot,
	}
}

// Undo shifts one snapshot from past to future. When the past is empty it
// returns the input state unchanged, same pointer, so callers can use
// identity comparison to detect the no-op.
func (r Reducer[S]) Undo(st *State[S]) *State[S] {
	if len(st.Past) == 0 {
		return st
	}
	future := make([]S, 0, len(st.Future)+1)
	future = append(future, st.Present)
	future = append(future, st.Future...)
	return &State[S]{
		Past:    st.Past[:len(st.Past)-1],
		Present: st.Past[len(st.Past)-1],
		Future:  future,
	}
}

// Redo shifts one snapshot from future back to present. A no-op on an
// empty future, returning the same pointer.
func (r Reducer[S]) Redo(st *State[S]) *State[S] {
	if len(st.Future) == 0 {
		return st
	}
	past := make([]S, 0, len(st.Past)+1)
	past = append(past, st.Past...)
	past = append(past, st.Present)
	return &State[S]{
		Past:    past,
		Present: st.Future[0],
		Future:  st.Future[1:],
	}
}

// CanUndo reports whether an undo step is available.
func CanUndo[S any](st *State[S]) bool { return len(st.Past) > 0 }

// CanRedo reports whether a redo step is available.
func CanRedo[S any](st *State[S]) bool { return len(st.Future) > 0 }
