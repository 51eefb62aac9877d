package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointerAt(x, y float64) Rect {
	return Rect{X: x, Y: y, Width: 1, Height: 1}
}

func TestClosestPicksNearestVerticalEdge(t *testing.T) {
	zones := []Zone{
		{ID: "after-a", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
		{ID: "after-b", Rect: Rect{X: 0, Y: 30, Width: 100, Height: 10}},
	}

	id, _, ok := Closest(pointerAt(5, 2), zones)
	require.True(t, ok)
	assert.Equal(t, "after-a", id)

	id, _, ok = Closest(pointerAt(5, 33), zones)
	require.True(t, ok)
	assert.Equal(t, "after-b", id)
}

func TestClosestEmptyCandidates(t *testing.T) {
	_, _, ok := Closest(pointerAt(0, 0), nil)
	assert.False(t, ok)
}

func TestClosestBiasBreaksTiesTowardZoneBelow(t *testing.T) {
	// Pointer center sits exactly between the two zones.
	zones := []Zone{
		{ID: "above", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
		{ID: "below", Rect: Rect{X: 0, Y: 20, Width: 100, Height: 10}},
	}
	id, _, ok := Closest(pointerAt(0, 14.5), zones)
	require.True(t, ok)
	assert.Equal(t, "below", id)
}

func TestClosestHorizontalPositionSelectsNestingDepth(t *testing.T) {
	// Two zones share the same vertical band; the deeper one is indented.
	zones := []Zone{
		{ID: "shallow", Rect: Rect{X: 0, Y: 10, Width: 200, Height: 4}},
		{ID: "deep", Rect: Rect{X: 40, Y: 10, Width: 160, Height: 4}},
	}

	id, _, _ := Closest(pointerAt(2, 11), zones)
	assert.Equal(t, "shallow", id, "pointer at the left margin targets the shallow zone")

	id, _, _ = Closest(pointerAt(45, 11), zones)
	assert.Equal(t, "deep", id, "pointer past the indent targets the deep zone")
}

func TestScoreOutsideSpanPenalty(t *testing.T) {
	zone := Rect{X: 40, Y: 0, Width: 100, Height: 10}
	inside := Score(pointerAt(50, 2), zone)
	outside := Score(pointerAt(20, 2), zone)
	assert.Less(t, inside, outside)
}

func TestStickyHoldsCurrentZoneWithinThreshold(t *testing.T) {
	zones := []Zone{
		{ID: "a", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
		{ID: "b", Rect: Rect{X: 0, Y: 30, Width: 100, Height: 10}},
	}
	s := NewSticky(5, nil)

	id, ok := s.Select(pointerAt(5, 2), zones)
	require.True(t, ok)
	assert.Equal(t, "a", id)

	// Drifting toward b: b scores slightly better but not by more than
	// the threshold, so a is held.
	id, _ = s.Select(pointerAt(5, 20), zones)
	assert.Equal(t, "a", id)

	// Deep inside b's territory the margin clears the threshold.
	id, _ = s.Select(pointerAt(5, 29), zones)
	assert.Equal(t, "b", id)
}

func TestStickyReducedThresholdAcrossDepths(t *testing.T) {
	shallow := Zone{ID: "shallow", Rect: Rect{X: 0, Y: 10, Width: 200, Height: 4}}
	deep := Zone{ID: "deep", Rect: Rect{X: 40, Y: 10, Width: 160, Height: 4}}
	zones := []Zone{shallow, deep}

	// Pick a pointer where deep wins by a modest margin.
	p := pointerAt(60, 11)
	margin := Score(p, shallow.Rect) - Score(p, deep.Rect)
	require.Greater(t, margin, 0.0)

	// A threshold above the margin would normally hold the current zone,
	// but the zones differ in indentation by more than 20px, so only a
	// quarter of it applies.
	s := NewSticky(margin*2, nil)
	first, _ := s.Select(pointerAt(2, 11), zones)
	require.Equal(t, "shallow", first)

	id, _ := s.Select(p, zones)
	assert.Equal(t, "deep", id, "cross-depth takeover should use the reduced threshold")
}

func TestStickyReset(t *testing.T) {
	zones := []Zone{
		{ID: "a", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
		{ID: "b", Rect: Rect{X: 0, Y: 30, Width: 100, Height: 10}},
	}
	s := NewSticky(50, nil)

	id, _ := s.Select(pointerAt(5, 2), zones)
	require.Equal(t, "a", id)

	// With a huge threshold, a would be held forever without a reset.
	s.Reset()
	_, held := s.Current()
	assert.False(t, held)

	id, _ = s.Select(pointerAt(5, 33), zones)
	assert.Equal(t, "b", id)
}

func TestStickySnapshotRectsFreezeGeometry(t *testing.T) {
	frozen := map[string]Rect{
		"a": {X: 0, Y: 0, Width: 100, Height: 10},
		"b": {X: 0, Y: 30, Width: 100, Height: 10},
	}
	s := NewSticky(1, func() map[string]Rect { return frozen })

	// The live rects claim b is where a was; the frozen snapshot wins.
	live := []Zone{
		{ID: "a", Rect: Rect{X: 0, Y: 30, Width: 100, Height: 10}},
		{ID: "b", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
	}
	id, ok := s.Select(pointerAt(5, 2), live)
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestStickyCurrentZoneDisappears(t *testing.T) {
	zones := []Zone{
		{ID: "a", Rect: Rect{X: 0, Y: 0, Width: 100, Height: 10}},
		{ID: "b", Rect: Rect{X: 0, Y: 30, Width: 100, Height: 10}},
	}
	s := NewSticky(100, nil)
	id, _ := s.Select(pointerAt(5, 2), zones)
	require.Equal(t, "a", id)

	id, ok := s.Select(pointerAt(5, 2), zones[1:])
	require.True(t, ok)
	assert.Equal(t, "b", id, "a vanished so the best remaining zone is adopted")
}
