package tspd

// Location is an opaque identifier with order-insensitive equality (two
// Locations are the same place iff their IDs match — structural fields
// carry no identity). Every Location also has a stable integer Index in
// [0, n); Index 0 is always the depot.
type Location struct {
	ID    string
	Index int
}

// IsDepot reports whether this Location occupies index 0.
func (l Location) IsDepot() bool { return l.Index == 0 }
