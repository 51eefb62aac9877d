// Package collision selects the best drop zone for a pointer position. It
// operates purely on geometry: the rendering layer measures zone rectangles
// and feeds them in, the winning zone id feeds the move algorithm.
package collision

import "math"

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the x coordinate of the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the y coordinate of the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Zone is a candidate drop target: a drop-zone id plus its measured
// rectangle.
type Zone struct {
	ID   string
	Rect Rect
}

// Scoring weights. Vertical edge distance dominates; the below bias breaks
// ties toward "insert after"; the horizontal terms let the pointer's x
// position pick between nesting depths that share a vertical position.
const (
	belowBias     = 2.0
	insideXWeight = 0.3
	outsideXWeight = 2.0
)

// Score rates how well a zone matches the pointer rectangle. Lower is
// better.
func Score(pointer Rect, zone Rect) float64 {
	px := pointer.CenterX()
	py := pointer.CenterY()

	topDist := math.Abs(py - zone.Y)
	bottomDist := math.Abs(py - zone.Bottom())
	score := math.Min(topDist, bottomDist)

	if zone.CenterY() > py {
		score -= belowBias
	}

	switch {
	case px < zone.X:
		score += outsideXWeight * (zone.X - px)
	case px > zone.Right():
		score += outsideXWeight * (px - zone.Right())
	default:
		score += insideXWeight * (px - zone.X)
	}

	return score
}

// Closest returns the zone id with the best score, along with that score.
// The boolean is false when no candidates were given.
func Closest(pointer Rect, zones []Zone) (string, float64, bool) {
	bestID := ""
	bestScore := math.Inf(1)
	found := false
	for _, z := range zones {
		s := Score(pointer, z.Rect)
		if !found || s < bestScore {
			bestID = z.ID
			bestScore = s
			found = true
		}
	}
	return bestID, bestScore, found
}
