package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUndoRedo(t *testing.T) {
	r := Reducer[string]{MaxSteps: 10}
	s0 := NewState("initial")

	s1 := r.Set(s0, "a")
	s2 := r.Set(s1, "b")
	assert.Equal(t, "b", s2.Present)
	assert.Len(t, s2.Past, 2)

	u1 := r.Undo(s2)
	assert.Equal(t, "a", u1.Present)
	u2 := r.Undo(u1)
	assert.Equal(t, "initial", u2.Present)
	assert.Empty(t, u2.Past)
	assert.Len(t, u2.Future, 2)

	// Undo then redo is a round trip on present.
	back := r.Redo(r.Undo(s2))
	assert.Equal(t, s2.Present, back.Present)
}

func TestUndoRedoNoopsReturnSameState(t *testing.T) {
	r := Reducer[int]{MaxSteps: 5}
	st := NewState(1)

	assert.Same(t, st, r.Undo(st), "undo with empty past must be an identity no-op")
	assert.Same(t, st, r.Redo(st), "redo with empty future must be an identity no-op")
}

func TestSetClearsFuture(t *testing.T) {
	r := Reducer[int]{MaxSteps: 5}
	st := r.Set(r.Set(NewState(0), 1), 2)
	st = r.Undo(st)
	require.NotEmpty(t, st.Future)

	st = r.Set(st, 9)
	assert.Empty(t, st.Future)
	assert.Equal(t, 9, st.Present)
}

func TestMaxStepsBoundsPast(t *testing.T) {
	r := Reducer[int]{MaxSteps: 3}
	st := NewState(0)
	for i := 1; i <= 10; i++ {
		st = r.Set(st, i)
	}
	require.Len(t, st.Past, 3)
	assert.Equal(t, []int{7, 8, 9}, st.Past)

	// Three undos land on the oldest retained snapshot; a fourth is a no-op.
	for i := 0; i < 3; i++ {
		st = r.Undo(st)
	}
	assert.Equal(t, 7, st.Present)
	assert.Same(t, st, r.Undo(st))
}

func TestCanUndoCanRedo(t *testing.T) {
	r := Reducer[int]{}
	st := NewState(0)
	assert.False(t, CanUndo(st))
	assert.False(t, CanRedo(st))

	st = r.Set(st, 1)
	assert.True(t, CanUndo(st))

	st = r.Undo(st)
	assert.True(t, CanRedo(st))
}
