// Package solve is the unified dispatcher over every solve path this
// module ships: the exact operation-table + MIP + Eulerian-assembly path,
// and the seeded-heuristic paths (greedy, Murray–Chu, iterative
// improvement), each finished with a Simplify pass.
//
// Grounded on tsp/solve.go's SolveWithGraph/SolveWithMatrix routing — a
// thin dispatcher over an Options-selected algorithm, here adapted from
// "pick an algorithm" to "pick exact vs. a seeded heuristic, then
// optionally refine the seed". Lives in its own package, rather than
// tspd itself, because every algorithm package below imports tspd for
// its shared types (InstanceView, Solution, Cancel) — tspd must stay a
// leaf package to avoid an import cycle.
package solve

import (
	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/eulerian"
	"github.com/katalvlaran/tspd/fixedorder"
	"github.com/katalvlaran/tspd/greedy"
	"github.com/katalvlaran/tspd/improve"
	"github.com/katalvlaran/tspd/mip"
	"github.com/katalvlaran/tspd/murraychu"
	"github.com/katalvlaran/tspd/optable"
	"github.com/katalvlaran/tspd/seed"
)

// Method selects which solve path Solve dispatches to.
type Method int

const (
	// MethodExact builds the full operation table and searches it with the
	// MIP's branch-and-bound backend, guaranteeing optimality. Only
	// practical up to tspd.ErrInstanceTooLarge's bound (~25 customers).
	MethodExact Method = iota
	// MethodGreedy seeds a tour and folds it with the greedy heuristic
	// (C10): fast, no further refinement.
	MethodGreedy
	// MethodMurrayChu seeds a tour and refines it with the Murray–Chu
	// local search (C11).
	MethodMurrayChu
	// MethodImprove seeds a tour, scores it with the fixed-order DP, and
	// refines the order itself via the Swap/TwoOpt/Insert driver (C12).
	MethodImprove
)

// SeedMethod selects the initial tour construction a heuristic path starts
// from.
type SeedMethod int

const (
	// SeedMST builds the initial tour from a minimum spanning tree
	// (Prim) shortcut into a preorder walk.
	SeedMST SeedMethod = iota
	// SeedKruskal builds the initial tour from a Kruskal MST.
	SeedKruskal
	// SeedRandom builds a uniformly random initial tour, driven by
	// Options.Seed.
	SeedRandom
)

// Solve runs the matching solve path over inst and returns a Simplify-d
// Solution.
func Solve(inst tspd.InstanceView, method Method, seedMethod SeedMethod, opts tspd.Options, cancel *tspd.Cancel) (tspd.Solution, error) {
	if method == MethodExact {
		sol, err := SolveExact(inst, opts, cancel)
		if err != nil {
			return tspd.Solution{}, err
		}
		return tspd.Simplify(sol), nil
	}

	order, err := buildSeed(inst, seedMethod, opts)
	if err != nil {
		return tspd.Solution{}, err
	}

	var sol tspd.Solution
	switch method {
	case MethodGreedy:
		sol, err = greedy.Solve(inst, order, greedy.Options{TwoPass: true}, cancel)
	case MethodMurrayChu:
		sol, err = murraychu.Solve(inst, order, murraychu.Options{}, cancel)
	case MethodImprove:
		sol, _, err = improve.Solve(inst, order, fixedorder.Solve, improve.Options{}, cancel)
	default:
		return tspd.Solution{}, tspd.ErrInvalidInput
	}
	if err != nil {
		return tspd.Solution{}, err
	}
	return tspd.Simplify(sol), nil
}

// buildSeed constructs the initial visiting order for a heuristic path.
func buildSeed(inst tspd.InstanceView, method SeedMethod, opts tspd.Options) ([]int, error) {
	switch method {
	case SeedMST:
		return seed.MST(inst)
	case SeedKruskal:
		return seed.Kruskal(inst)
	case SeedRandom:
		return seed.RandomTour(inst, opts.Seed), nil
	default:
		return nil, tspd.ErrInvalidInput
	}
}

// SolveExact runs the exact path spec.md §4.6–§4.7 describes: build the
// operation table under opts' constraints, search it with a
// branch-and-bound Solver, and assemble the selected operations into a
// single closed walk via Hierholzer's rule.
func SolveExact(inst tspd.InstanceView, opts tspd.Options, cancel *tspd.Cancel) (tspd.Solution, error) {
	if inst.N() > 25 {
		return tspd.Solution{}, tspd.ErrInstanceTooLarge
	}
	maxCardinality := opts.MaxCardinality
	if maxCardinality == 0 {
		maxCardinality = -1 // Options: zero means unbounded
	}
	constraints := optable.BuildConstraints(inst, opts.MaxRangeFactor, maxCardinality)
	table, err := optable.Build(inst, constraints, cancel)
	if err != nil {
		return tspd.Solution{}, err
	}
	backend := mip.BranchAndBound{}
	selected, err := backend.Solve(inst, table, cancel)
	if err != nil {
		return tspd.Solution{}, err
	}
	walked, err := eulerian.Assemble(selected, 0)
	if err != nil {
		return tspd.Solution{}, err
	}
	return tspd.Solution{Operations: walked}, nil
}
