// Package restricted implements the RestrictedInstance decorator (C13):
// an InstanceView that wraps a base instance and layers on a maximum
// drone flight distance per operation, a forbidden set (the drone may
// neither depart from, arrive at, nor visit these locations), and a
// no-visit set (the drone may not land to visit these, but may still use
// them as an operation's truck-side start/end — "overfly" per spec.md §3).
//
// Grounded on lvlath matrix's overlay/decorator idiom (a wrapper type that
// holds an inner value and post-filters its results, the way
// RunMetricClosure wraps a matrix with a derived one) applied to
// distance.Provider instead of matrix.Matrix.
package restricted

import (
	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
)

// RestrictedInstance decorates a base InstanceView with drone-only
// restrictions. The truck is unaffected: TruckDistance delegates straight
// through to the base instance.
type RestrictedInstance struct {
	base      tspd.InstanceView
	maxFly    float64 // <= 0 means unrestricted
	forbidden bitset.Set
	noVisit   bitset.Set
}

// New builds a RestrictedInstance over base. maxFly <= 0 means no flight-
// range restriction. forbidden and noVisit name location indices (never
// the depot, never out of [0, base.N())); New returns ErrInvalidInput if
// either set names the depot or an out-of-range index.
func New(base tspd.InstanceView, maxFly float64, forbidden, noVisit []int) (*RestrictedInstance, error) {
	if base == nil {
		return nil, tspd.ErrInvalidInput
	}
	n := base.N()
	fSet, err := toBitset(n, forbidden, base)
	if err != nil {
		return nil, err
	}
	nvSet, err := toBitset(n, noVisit, base)
	if err != nil {
		return nil, err
	}
	return &RestrictedInstance{base: base, maxFly: maxFly, forbidden: fSet, noVisit: nvSet}, nil
}

func toBitset(n int, idxs []int, base tspd.InstanceView) (bitset.Set, error) {
	s := bitset.Empty
	for _, idx := range idxs {
		if idx < 0 || idx >= n || base.IsDepot(idx) {
			return bitset.Empty, tspd.ErrInvalidInput
		}
		s = bitset.Add(s, idx)
	}
	return s, nil
}

// Locations implements tspd.InstanceView.
func (r *RestrictedInstance) Locations() []tspd.Location { return r.base.Locations() }

// Depot implements tspd.InstanceView.
func (r *RestrictedInstance) Depot() tspd.Location { return r.base.Depot() }

// IsDepot implements tspd.InstanceView.
func (r *RestrictedInstance) IsDepot(idx int) bool { return r.base.IsDepot(idx) }

// N implements tspd.InstanceView.
func (r *RestrictedInstance) N() int { return r.base.N() }

// TruckDistance implements tspd.InstanceView: the truck is never
// restricted, so this delegates straight through.
func (r *RestrictedInstance) TruckDistance() distance.Provider { return r.base.TruckDistance() }

// DroneDistance implements tspd.InstanceView by wrapping the base
// instance's drone provider with the forbidden/no-visit/max-flight-range
// filter.
func (r *RestrictedInstance) DroneDistance() distance.Provider {
	return &provider{
		inner:     r.base.DroneDistance(),
		maxFly:    r.maxFly,
		forbidden: r.forbidden,
		noVisit:   r.noVisit,
	}
}

// SubInstance implements tspd.InstanceView by sub-instancing the base and
// remapping the forbidden/no-visit sets into the sub-instance's index
// space (index 0 stays the depot; every kept index i>0 is renumbered in
// increasing original-index order, matching *tspd.Instance.SubInstance).
func (r *RestrictedInstance) SubInstance(keep func(idx int) bool) tspd.InstanceView {
	n := r.base.N()
	return &RestrictedInstance{
		base:      r.base.SubInstance(keep),
		maxFly:    r.maxFly,
		forbidden: remapIndices(n, keep, r.forbidden),
		noVisit:   remapIndices(n, keep, r.noVisit),
	}
}

// remapIndices translates a bitset keyed by old indices into one keyed by
// new indices, under the same "keep in increasing order, depot first"
// renumbering *tspd.Instance.SubInstance itself performs.
func remapIndices(n int, keep func(idx int) bool, old bitset.Set) bitset.Set {
	result := bitset.Empty
	newIdx := 1
	for i := 1; i < n; i++ {
		if !keep(i) {
			continue
		}
		if bitset.Contains(old, i) {
			result = bitset.Add(result, newIdx)
		}
		newIdx++
	}
	return result
}

var _ tspd.InstanceView = (*RestrictedInstance)(nil)
