package tspd

import (
	"math"

	"github.com/katalvlaran/tspd/bitset"
)

// Solution is an ordered list of operations that chain end-to-start, start
// and end at the depot, and whose covered-sets union to the full location
// set. Solutions are immutable value objects; any transformation (e.g.
// simplification, §4.12) yields a new Solution rather than mutating one.
type Solution struct {
	Operations []Operation
}

// Stats holds the derived scalars spec.md §3 attaches to a Solution: total
// cost (sum of per-operation max), the truck's own cost, the drone's own
// cost, each vehicle's cumulative waiting time, and the single largest
// per-operation cost (the bottleneck operation).
type Stats struct {
	TotalCost        float64
	TruckCost        float64
	DroneCost        float64
	TruckWaiting     float64
	DroneWaiting     float64
	MaxOperationCost float64
}

// Validate checks the chaining, depot, and coverage invariants: operation i
// ends where operation i+1 starts, the first operation starts at the depot,
// the last ends at the depot, and the union of every covered-set equals the
// full location set. It returns ErrInvalidInput (empty solution),
// ErrInfeasible (chaining/depot/coverage violated), or nil.
func (s Solution) Validate(inst InstanceView) error {
	if len(s.Operations) == 0 {
		return ErrInvalidInput
	}
	for _, op := range s.Operations {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	if s.Operations[0].Start != 0 {
		return ErrInfeasible
	}
	if s.Operations[len(s.Operations)-1].End != 0 {
		return ErrInfeasible
	}
	for i := 0; i+1 < len(s.Operations); i++ {
		if s.Operations[i].End != s.Operations[i+1].Start {
			return ErrInfeasible
		}
	}
	covered := bitset.Empty
	for _, op := range s.Operations {
		covered = bitset.Union(covered, op.CoveredSet())
	}
	if covered != bitset.Full(inst.N()) {
		return ErrInfeasible
	}
	return nil
}

// IsFeasible reports whether Validate returns nil.
func (s Solution) IsFeasible(inst InstanceView) bool {
	return s.Validate(inst) == nil
}

// Evaluate validates s against inst, then computes its Stats. Per-operation
// waiting time accrues to whichever vehicle finished that operation early:
// the truck waits max-truckCost, the drone waits max-droneCost (zero for an
// operation with no fly node, since the drone is riding along).
func (s Solution) Evaluate(inst InstanceView) (Stats, error) {
	if err := s.Validate(inst); err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, op := range s.Operations {
		truckCost, droneCost, total := op.Cost(inst)
		if math.IsInf(total, 1) {
			return Stats{}, ErrInfeasible
		}
		st.TotalCost += total
		st.TruckCost += truckCost
		st.DroneCost += droneCost
		st.TruckWaiting += total - truckCost
		if op.Fly != NoFly {
			st.DroneWaiting += total - droneCost
		}
		if total > st.MaxOperationCost {
			st.MaxOperationCost = total
		}
	}
	return st, nil
}
