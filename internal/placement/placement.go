// Package placement finds collision-free resting spots for elements.
//
// The search walks concentric rings around an anchor and tests eight
// evenly spaced angles per ring, so results stay clustered near the anchor
// and are fully deterministic for a given input.
package placement

import (
	"math"

	"github.com/vovakirdan/genesis/internal/core"
)

// ringAngles are tested in this order on every ring.
var ringAngles = [8]float64{0, 45, 90, 135, 180, 225, 270, 315}

// Params describes the canvas and the shape of the ring search.
type Params struct {
	Bounds      core.Rect // Full canvas
	Radius      float64   // Element radius; usable area is Bounds inset by it
	MinGap      float64   // Minimum center distance to any occupied point
	StartRadius float64   // First ring; 0 tests the anchor itself
	Step        float64   // Radial increment between rings
	MaxRadius   float64   // Last ring tested (inclusive)
}

// Usable returns the area element centers may occupy.
func (p Params) Usable() core.Rect {
	return p.Bounds.Inset(p.Radius)
}

// Fits reports whether an element centered at pt would be inside the usable
// area and clear of every occupied point.
func Fits(pt core.Point, occupied []core.Point, p Params) bool {
	if !p.Usable().ContainsStrict(pt) {
		return false
	}
	for _, o := range occupied {
		if o.Dist(pt) < p.MinGap {
			return false
		}
	}
	return true
}

// FindFreeSlot returns the first usable point in ring-then-angle order.
// The second return value is false when the search space is exhausted,
// which is the normal outcome on a crowded canvas.
func FindFreeSlot(anchor core.Point, occupied []core.Point, p Params) (core.Point, bool) {
	if p.Step <= 0 || p.MaxRadius < p.StartRadius || !anchor.IsFinite() {
		return core.Point{}, false
	}

	for d := p.StartRadius; d <= p.MaxRadius; d += p.Step {
		if d <= 0 {
			if Fits(anchor, occupied, p) {
				return anchor, true
			}
			continue
		}
		for _, deg := range ringAngles {
			a := deg * math.Pi / 180
			pt := core.Point{
				X: anchor.X + math.Cos(a)*d,
				Y: anchor.Y + math.Sin(a)*d,
			}
			if Fits(pt, occupied, p) {
				return pt, true
			}
		}
	}
	return core.Point{}, false
}
