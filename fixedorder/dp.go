// Package fixedorder implements the fixed-order dynamic program (C9):
// given a linear visiting order of every location (starting and ending at
// the depot), find the optimal partition of that order into operations —
// truck-only drives or single-fly-node detours — minimizing total cost,
// exactly as spec.md §4.8 describes.
//
// Grounded on tsp/exact.go's Held-Karp DP idiom: a flat dense state array
// instead of nested maps, explicit predeclared loop variables, and a
// parallel parent array for O(1) back-pointer reconstruction — adapted from
// Held-Karp's (mask, endpoint) state to this DP's (position) state, since
// the order is already fixed and there is no subset to choose.
package fixedorder

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
)

// Solve runs the O(n^3)-time, O(n^2)-space fixed-order DP over order, a
// permutation of inst's locations that starts and ends at the depot
// (order[0] == order[len(order)-1] == depot index), with every other
// location appearing exactly once. Returns ErrNonAtomicInput if order
// repeats any non-depot location, or ErrInvalidInput if order does not
// start and end at the depot.
func Solve(inst tspd.InstanceView, order []int) (tspd.Solution, error) {
	m := len(order)
	if m < 2 || !inst.IsDepot(order[0]) || !inst.IsDepot(order[m-1]) {
		return tspd.Solution{}, tspd.ErrInvalidInput
	}
	seen := make([]bool, inst.N())
	for p, loc := range order {
		if p != 0 && p != m-1 && inst.IsDepot(loc) {
			return tspd.Solution{}, tspd.ErrNonAtomicInput
		}
		if p == 0 || p == m-1 {
			continue
		}
		if seen[loc] {
			return tspd.Solution{}, tspd.ErrNonAtomicInput
		}
		seen[loc] = true
	}

	truck := inst.TruckDistance()
	drone := inst.DroneDistance()

	// leg[p] is the truck distance from order[p] to order[p+1]; drive[i][j]
	// (flattened i*m+j) is the cumulative truck distance from position i to
	// position j along the fixed order.
	leg := make([]float64, m-1)
	for p := 0; p < m-1; p++ {
		leg[p] = distance.ContextFree(truck, order[p], order[p+1])
	}
	drive := make([]float64, m*m)
	for i := 0; i < m; i++ {
		drive[i*m+i] = 0
		for j := i + 1; j < m; j++ {
			drive[i*m+j] = drive[i*m+j-1] + leg[j-1]
		}
	}

	f := make([]float64, m)
	predI := make([]int, m)
	predK := make([]int, m)
	for j := 1; j < m; j++ {
		f[j] = math.Inf(1)
		predI[j] = -1
		predK[j] = -1
	}

	var i, j, k int
	for j = 1; j < m; j++ {
		for i = 0; i < j; i++ {
			if math.IsInf(f[i], 1) {
				continue
			}
			// k == i: no drone node, drive the whole segment.
			cost := f[i] + drive[i*m+j]
			if cost < f[j] {
				f[j] = cost
				predI[j] = i
				predK[j] = i
			}
			for k = i + 1; k < j; k++ {
				bypass := drive[i*m+j] - leg[k-1] - leg[k] + distance.ContextFree(truck, order[k-1], order[k+1])
				fly := distance.FlyDistance(drone, order[i], order[j], order[k])
				opcost := math.Max(bypass, fly)
				cost = f[i] + opcost
				if cost < f[j] {
					f[j] = cost
					predI[j] = i
					predK[j] = k
				}
			}
		}
	}

	if math.IsInf(f[m-1], 1) {
		return tspd.Solution{}, tspd.ErrInfeasible
	}

	// Walk back-pointers from the end; each step yields one segment [i, j)
	// with its fly position k, in reverse order.
	type segment struct{ i, j, k int }
	var segments []segment
	for j = m - 1; j > 0; j = i {
		i = predI[j]
		k = predK[j]
		segments = append(segments, segment{i: i, j: j, k: k})
	}
	for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
		segments[l], segments[r] = segments[r], segments[l]
	}

	ops := make([]tspd.Operation, 0, len(segments))
	for _, seg := range segments {
		op := tspd.Operation{Start: order[seg.i], End: order[seg.j], Fly: tspd.NoFly}
		if seg.k != seg.i {
			op.Fly = order[seg.k]
		}
		for p := seg.i + 1; p < seg.j; p++ {
			if p == seg.k {
				continue
			}
			op.DrivePath = append(op.DrivePath, order[p])
		}
		ops = append(ops, op)
	}

	return tspd.Solution{Operations: ops}, nil
}
