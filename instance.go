package tspd

import "github.com/katalvlaran/tspd/distance"

// InstanceView is the capability set every instance variant (geometric,
// graph, matrix, restricted) must satisfy: getLocations, getDepot,
// getDriveDistance, getFlyDistance, getSubInstance(predicate), isDepot, per
// spec.md §9's "tagged variant with a dispatch per call site". A plain
// *Instance implements it directly; package restricted's RestrictedInstance
// implements it by decorating one.
type InstanceView interface {
	// Locations returns every location in index order.
	Locations() []Location
	// Depot returns the location at index 0.
	Depot() Location
	// IsDepot reports whether idx is the depot index.
	IsDepot(idx int) bool
	// N returns the number of locations.
	N() int
	// TruckDistance returns the truck's distance provider (getDriveDistance).
	TruckDistance() distance.Provider
	// DroneDistance returns the drone's distance provider (getFlyDistance's
	// provider — the capability that answers fly-leg costs).
	DroneDistance() distance.Provider
	// SubInstance returns a view restricted to the locations for which keep
	// reports true; index 0 must remain the depot in the returned view.
	SubInstance(keep func(idx int) bool) InstanceView
}

// Instance is the base, unrestricted instance: an ordered sequence of
// locations plus two distance providers, immutable after construction.
// Grounded on tsp/types.go's Options-carrying-everything shape, adapted to
// an immutable value instead of solver configuration.
type Instance struct {
	locations []Location
	truck     distance.Provider
	drone     distance.Provider
}

// NewInstance builds an Instance over locations (which must already carry
// dense indices 0..n-1, index 0 being the depot) and the two distance
// providers. Returns ErrInvalidInput if locations is empty, indices are not
// a dense permutation of [0, n), or index 0 is missing.
func NewInstance(locations []Location, truck, drone distance.Provider) (*Instance, error) {
	n := len(locations)
	if n == 0 || truck == nil || drone == nil {
		return nil, ErrInvalidInput
	}
	seen := make([]bool, n)
	for _, loc := range locations {
		if loc.Index < 0 || loc.Index >= n || seen[loc.Index] {
			return nil, ErrInvalidInput
		}
		seen[loc.Index] = true
	}
	ordered := make([]Location, n)
	for _, loc := range locations {
		ordered[loc.Index] = loc
	}
	return &Instance{locations: ordered, truck: truck, drone: drone}, nil
}

// Locations implements InstanceView.
func (in *Instance) Locations() []Location { return in.locations }

// Depot implements InstanceView.
func (in *Instance) Depot() Location { return in.locations[0] }

// IsDepot implements InstanceView.
func (in *Instance) IsDepot(idx int) bool { return idx == 0 }

// N implements InstanceView.
func (in *Instance) N() int { return len(in.locations) }

// TruckDistance implements InstanceView.
func (in *Instance) TruckDistance() distance.Provider { return in.truck }

// DroneDistance implements InstanceView.
func (in *Instance) DroneDistance() distance.Provider { return in.drone }

// SubInstance implements InstanceView by re-indexing the kept locations,
// placing the depot (index 0 of the parent) first.
func (in *Instance) SubInstance(keep func(idx int) bool) InstanceView {
	kept := make([]Location, 0, len(in.locations))
	kept = append(kept, Location{ID: in.locations[0].ID, Index: 0})
	for i := 1; i < len(in.locations); i++ {
		if keep(i) {
			kept = append(kept, Location{ID: in.locations[i].ID, Index: len(kept)})
		}
	}
	return &subInstance{
		locations: kept,
		parent:    in,
		toParent:  subInstanceMapping(in, keep),
	}
}

func subInstanceMapping(in *Instance, keep func(idx int) bool) []int {
	mapping := []int{0}
	for i := 1; i < len(in.locations); i++ {
		if keep(i) {
			mapping = append(mapping, i)
		}
	}
	return mapping
}

// subInstance is an index-remapping view over a parent Instance, used by
// SubInstance. It does not copy distance data — every Leg call translates
// the sub-index back to the parent's index space first.
type subInstance struct {
	locations []Location
	parent    *Instance
	toParent  []int // sub-index -> parent index
}

func (s *subInstance) Locations() []Location { return s.locations }
func (s *subInstance) Depot() Location       { return s.locations[0] }
func (s *subInstance) IsDepot(idx int) bool  { return idx == 0 }
func (s *subInstance) N() int                { return len(s.locations) }

func (s *subInstance) TruckDistance() distance.Provider {
	return &remappedProvider{inner: s.parent.truck, toParent: s.toParent}
}

func (s *subInstance) DroneDistance() distance.Provider {
	return &remappedProvider{inner: s.parent.drone, toParent: s.toParent}
}

func (s *subInstance) SubInstance(keep func(idx int) bool) InstanceView {
	kept := make([]int, 0, len(s.toParent))
	kept = append(kept, s.toParent[0])
	for i := 1; i < len(s.toParent); i++ {
		if keep(i) {
			kept = append(kept, s.toParent[i])
		}
	}
	return s.parent.SubInstance(func(parentIdx int) bool {
		for _, k := range kept[1:] {
			if k == parentIdx {
				return true
			}
		}
		return false
	})
}

// remappedProvider translates sub-instance indices to the parent's index
// space before delegating a Leg call.
type remappedProvider struct {
	inner    distance.Provider
	toParent []int
}

func (r *remappedProvider) Leg(from, to int, fromAction, toAction distance.Action, prior float64) float64 {
	return r.inner.Leg(r.toParent[from], r.toParent[to], fromAction, toAction, prior)
}

var (
	_ InstanceView      = (*Instance)(nil)
	_ InstanceView      = (*subInstance)(nil)
	_ distance.Provider = (*remappedProvider)(nil)
)
