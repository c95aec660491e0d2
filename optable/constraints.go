// Package optable builds the operation table (C6): for every triple
// (start, end, covered-set) it keeps at most one dominating entry, via a
// two-phase dynamic program — truck-only expansion, then fly-node
// augmentation — exactly as spec.md §4.5 describes.
//
// Grounded on tsp/exact.go's Held-Karp DP idiom: a flat dense state array
// instead of nested maps where possible, explicit predeclared loop
// variables, a sparse deadline-check counter, and dominance keyed by a
// small struct rather than a string.
package optable

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
)

// Constraints is the short list of insertion-time predicates from spec.md
// §4.5: a maximum drone flight distance per operation, and a maximum
// truck-only customer count per operation.
type Constraints struct {
	MaxFly         float64 // <= 0 means unrestricted
	MaxCardinality int     // < 0 means unrestricted
}

// BuildConstraints is buildConstraints(instance, maxRangeFactor,
// maxCardinality): it precomputes the maximum single-leg drone distance in
// the instance and sets MaxFly = factor * maxLeg. A factor >= 2 (or <= 0)
// imposes no restriction, matching spec.md's "a factor >= 2 imposes no
// restriction". A negative maxCardinality means unrestricted.
func BuildConstraints(inst tspd.InstanceView, maxRangeFactor float64, maxCardinality int) Constraints {
	if maxRangeFactor <= 0 || maxRangeFactor >= 2 {
		return Constraints{MaxFly: 0, MaxCardinality: maxCardinality}
	}
	drone := inst.DroneDistance()
	n := inst.N()
	var maxLeg float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			leg := distance.ContextFree(drone, i, j)
			if math.IsInf(leg, 1) {
				continue
			}
			if leg > maxLeg {
				maxLeg = leg
			}
		}
	}
	return Constraints{MaxFly: maxRangeFactor * maxLeg, MaxCardinality: maxCardinality}
}

// allowsFlyCost reports whether a fly-node entry's flyCost is within
// MaxFly (MaxFly <= 0 means unrestricted).
func (c Constraints) allowsFlyCost(flyCost float64) bool {
	if c.MaxFly <= 0 {
		return true
	}
	return flyCost <= c.MaxFly
}

// rejectsUnsalvageableDrive reports whether a truck-only expansion should
// be rejected outright because its drive cost already exceeds MaxFly and
// so did its predecessor's — meaning no later fly augmentation could ever
// bring this branch back under budget.
func (c Constraints) rejectsUnsalvageableDrive(newDrive, predDrive float64) bool {
	if c.MaxFly <= 0 {
		return false
	}
	return newDrive > c.MaxFly && predDrive > c.MaxFly
}

// truckOnlyCount computes |S| minus start, minus end (if distinct from
// start), minus fly (if present and distinct from both) — the cardinality
// constraint's count of customers the truck alone must serve in this
// operation.
func truckOnlyCount(size, start, end, fly int) int {
	count := size - 1
	if end != start {
		count--
	}
	if fly != tspd.NoFly && fly != start && fly != end {
		count--
	}
	return count
}

// allowsCardinality reports whether count is within MaxCardinality
// (negative MaxCardinality means unrestricted).
func (c Constraints) allowsCardinality(count int) bool {
	if c.MaxCardinality < 0 {
		return true
	}
	return count <= c.MaxCardinality
}
