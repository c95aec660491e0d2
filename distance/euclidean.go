package distance

import "math"

// Point is a 2D coordinate for a geometric instance.
type Point struct {
	X, Y float64
}

// Euclidean is a Provider computing straight-line distance scaled by a
// per-vehicle speed factor (< 1 makes the vehicle slower, so its effective
// distance is larger — the drone is typically given a factor reflecting its
// speed relative to the truck). Action tags are ignored, matching the
// spec's "truck distance ignores actions" plus the unrestricted drone case;
// a range-restricted drone wraps this in package restricted instead of
// subclassing it.
type Euclidean struct {
	Points []Point
	Speed  float64 // effective-distance scale; must be > 0
}

// NewEuclidean returns a Euclidean provider over points, scaled by speed.
func NewEuclidean(points []Point, speed float64) (*Euclidean, error) {
	if speed <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Euclidean{Points: points, Speed: speed}, nil
}

// Leg implements Provider.
func (e *Euclidean) Leg(from, to int, _, _ Action, _ float64) float64 {
	dx := e.Points[from].X - e.Points[to].X
	dy := e.Points[from].Y - e.Points[to].Y
	return math.Hypot(dx, dy) / e.Speed
}

var _ Provider = (*Euclidean)(nil)
