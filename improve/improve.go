// Package improve implements the iterative-improvement driver (C12): three
// self-inverting order-level neighborhoods — Swap, TwoOpt (segment
// reversal), and Insert (relocate) — scored by a pluggable FixedOrderSolver
// and applied first-improvement until no neighborhood move improves total
// cost, exactly as spec.md §4.11 describes.
//
// Grounded on tsp/two_opt.go's deterministic first-improvement scan idiom:
// no RNG, a restart after every accepted move, and a soft cancellation
// check threaded through the scan.
package improve

import (
	"github.com/katalvlaran/tspd"
)

// FixedOrderSolver scores a fixed visiting order, exactly as
// fixedorder.Solve does. Any solver with this signature can drive the
// search — the default Solve wiring uses fixedorder.Solve, but a caller
// may substitute a cheaper approximate scorer.
type FixedOrderSolver func(inst tspd.InstanceView, order []int) (tspd.Solution, error)

// Options configures a Solve call.
type Options struct {
	// MaxRounds caps the number of improving moves committed before the
	// driver gives up even if further improvement might exist. Zero means
	// unbounded (run until convergence or cancellation).
	MaxRounds int
}

// Solve repeatedly scans the Swap, TwoOpt, and Insert neighborhoods of
// order (using score to cost each candidate), commits the first strictly
// improving move it finds, and restarts the scan — first-improvement, not
// best-improvement, matching tsp/two_opt.go. It stops when a full scan
// finds no improving move, opts.MaxRounds is reached, or cancel fires, and
// returns the best Solution found along with the order that produced it.
func Solve(inst tspd.InstanceView, order []int, score FixedOrderSolver, opts Options, cancel *tspd.Cancel) (tspd.Solution, []int, error) {
	if len(order) < 2 || !inst.IsDepot(order[0]) || !inst.IsDepot(order[len(order)-1]) {
		return tspd.Solution{}, nil, tspd.ErrInvalidInput
	}

	cur := append([]int(nil), order...)
	best, err := score(inst, cur)
	if err != nil {
		return tspd.Solution{}, nil, err
	}
	bestCost, err := totalCost(inst, best)
	if err != nil {
		return tspd.Solution{}, nil, err
	}

	rounds := 0
	for opts.MaxRounds <= 0 || rounds < opts.MaxRounds {
		if cancel != nil && cancel.Check() {
			return best, cur, tspd.ErrCancelled
		}
		improved, candidate, candSol, candCost := scanOnce(inst, cur, score, bestCost, cancel)
		if !improved {
			return best, cur, nil
		}
		cur, best, bestCost = candidate, candSol, candCost
		rounds++
	}
	return best, cur, nil
}

func totalCost(inst tspd.InstanceView, sol tspd.Solution) (float64, error) {
	stats, err := sol.Evaluate(inst)
	if err != nil {
		return 0, err
	}
	return stats.TotalCost, nil
}

// scanOnce performs one first-improvement pass over the combined
// neighborhood (Swap then TwoOpt for each interior index pair i < j, then
// Insert over every ordered interior pair i != j), stopping and returning
// as soon as a strictly improving candidate is found.
func scanOnce(inst tspd.InstanceView, order []int, score FixedOrderSolver, baseline float64, cancel *tspd.Cancel) (bool, []int, tspd.Solution, float64) {
	interior := len(order) - 2 // positions 1..len-2 are customers

	tryCandidate := func(cand []int) (bool, []int, tspd.Solution, float64) {
		sol, err := score(inst, cand)
		if err != nil {
			return false, nil, tspd.Solution{}, 0
		}
		cost, err := totalCost(inst, sol)
		if err != nil {
			return false, nil, tspd.Solution{}, 0
		}
		if cost < baseline-tspd.Eps {
			return true, cand, sol, cost
		}
		return false, nil, tspd.Solution{}, 0
	}

	for i := 1; i <= interior; i++ {
		if cancel != nil && cancel.Check() {
			return false, nil, tspd.Solution{}, 0
		}
		for j := i + 1; j <= interior; j++ {
			if ok, cand, sol, cost := tryCandidate(Swap(order, i, j)); ok {
				return true, cand, sol, cost
			}
			if ok, cand, sol, cost := tryCandidate(TwoOpt(order, i, j)); ok {
				return true, cand, sol, cost
			}
		}
	}
	for i := 1; i <= interior; i++ {
		if cancel != nil && cancel.Check() {
			return false, nil, tspd.Solution{}, 0
		}
		for j := 1; j <= interior; j++ {
			if j == i {
				continue
			}
			if ok, cand, sol, cost := tryCandidate(Insert(order, i, j)); ok {
				return true, cand, sol, cost
			}
		}
	}
	return false, nil, tspd.Solution{}, 0
}

// Swap returns a copy of order with the locations at positions i and j
// exchanged. Self-inverting: Swap(Swap(order, i, j), i, j) reproduces
// order.
func Swap(order []int, i, j int) []int {
	out := append([]int(nil), order...)
	out[i], out[j] = out[j], out[i]
	return out
}

// TwoOpt returns a copy of order with the closed segment [i, j] reversed
// (i <= j assumed; callers pass the smaller index first). Self-inverting:
// reversing the same segment twice reproduces order.
func TwoOpt(order []int, i, j int) []int {
	out := append([]int(nil), order...)
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Insert returns a copy of order with the location at position i removed
// and reinserted immediately after position j. Self-inverting: Insert can
// always be undone by another Insert call moving the relocated location
// back to its original neighbor.
func Insert(order []int, i, j int) []int {
	out := make([]int, 0, len(order))
	loc := order[i]
	without := make([]int, 0, len(order)-1)
	without = append(without, order[:i]...)
	without = append(without, order[i+1:]...)

	target := j
	if j > i {
		target-- // without has one fewer element before position i
	}
	out = append(out, without[:target+1]...)
	out = append(out, loc)
	out = append(out, without[target+1:]...)
	return out
}
