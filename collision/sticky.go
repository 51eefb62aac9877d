package collision

import "math"

// Horizontal distance between zone left edges beyond which two zones are
// treated as different nesting depths, which relaxes the takeover
// threshold.
const depthChangeX = 20.0

// Sticky wraps the scorer with hysteresis: once a zone is current, a
// competitor only takes over when its score beats the current zone's by
// more than the configured threshold. The threshold drops to a quarter
// when the competitor sits at a different indentation, so cross-depth
// moves stay responsive while same-depth flicker is suppressed.
type Sticky struct {
	threshold float64

	// Optional frozen geometry source. When set, zone rectangles are
	// looked up here instead of using the measured ones, so an in-flow
	// preview cannot shift the rectangles being scored mid-drag.
	snapshotRects func() map[string]Rect

	currentID   string
	currentRect Rect
	hasCurrent  bool
}

// NewSticky creates a sticky detector. snapshotRects may be nil.
func NewSticky(threshold float64, snapshotRects func() map[string]Rect) *Sticky {
	return &Sticky{
		threshold:     threshold,
		snapshotRects: snapshotRects,
	}
}

// Reset clears the sticky state. Call it at drag start.
func (s *Sticky) Reset() {
	s.currentID = ""
	s.currentRect = Rect{}
	s.hasCurrent = false
}

// Select picks the drop zone for the pointer. The boolean is false when no
// candidate zones are available.
func (s *Sticky) Select(pointer Rect, zones []Zone) (string, bool) {
	zones = s.applySnapshot(zones)

	bestID, bestScore, ok := Closest(pointer, zones)
	if !ok {
		return "", false
	}

	if !s.hasCurrent || bestID == s.currentID {
		s.adopt(bestID, zones)
		return s.currentID, true
	}

	// Rescore the current zone against fresh geometry; it may have left
	// the candidate set entirely.
	currentRect, present := findZone(zones, s.currentID)
	if !present {
		s.adopt(bestID, zones)
		return s.currentID, true
	}
	currentScore := Score(pointer, currentRect)

	threshold := s.threshold
	if math.Abs(currentRect.X-bestRectX(zones, bestID)) > depthChangeX {
		threshold *= 0.25
	}

	if bestScore < currentScore-threshold {
		s.adopt(bestID, zones)
	} else {
		s.currentRect = currentRect
	}
	return s.currentID, true
}

// Current returns the currently held zone id, if any.
func (s *Sticky) Current() (string, bool) {
	return s.currentID, s.hasCurrent
}

func (s *Sticky) adopt(id string, zones []Zone) {
	s.currentID = id
	s.hasCurrent = true
	if r, ok := findZone(zones, id); ok {
		s.currentRect = r
	}
}

func (s *Sticky) applySnapshot(zones []Zone) []Zone {
	if s.snapshotRects == nil {
		return zones
	}
	frozen := s.snapshotRects()
	if len(frozen) == 0 {
		return zones
	}
	out := make([]Zone, len(zones))
	for i, z := range zones {
		if r, ok := frozen[z.ID]; ok {
			z.Rect = r
		}
		out[i] = z
	}
	return out
}

func findZone(zones []Zone, id string) (Rect, bool) {
	for _, z := range zones {
		if z.ID == id {
			return z.Rect, true
		}
	}
	return Rect{}, false
}

func bestRectX(zones []Zone, id string) float64 {
	r, _ := findZone(zones, id)
	return r.X
}
