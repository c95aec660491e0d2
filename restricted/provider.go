package restricted

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
)

// provider decorates an inner drone distance.Provider, post-filtering its
// result per spec.md §3's drone restriction rules: a forbidden location
// blocks departure, visit, and arrival outright; a no-visit location only
// blocks landing-to-visit (it may still be overflown as an operation's
// truck-side departure/arrival point); and the cumulative leg length
// (prior + this leg) must not exceed maxFly.
type provider struct {
	inner     distance.Provider
	maxFly    float64 // <= 0 means unrestricted
	forbidden bitset.Set
	noVisit   bitset.Set
}

// Leg implements distance.Provider.
func (p *provider) Leg(from, to int, fromAction, toAction distance.Action, prior float64) float64 {
	if bitset.Contains(p.forbidden, from) && (fromAction == distance.Departure || fromAction == distance.Visit) {
		return math.Inf(1)
	}
	if bitset.Contains(p.forbidden, to) && (toAction == distance.Visit || toAction == distance.Arrival) {
		return math.Inf(1)
	}
	if bitset.Contains(p.noVisit, from) && fromAction == distance.Visit {
		return math.Inf(1)
	}
	if bitset.Contains(p.noVisit, to) && toAction == distance.Visit {
		return math.Inf(1)
	}
	leg := p.inner.Leg(from, to, fromAction, toAction, prior)
	if math.IsInf(leg, 1) {
		return leg
	}
	if p.maxFly > 0 && prior+leg > p.maxFly+tspd.Eps {
		return math.Inf(1)
	}
	return leg
}

var _ distance.Provider = (*provider)(nil)
