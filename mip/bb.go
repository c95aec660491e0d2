package mip

import (
	"math"
	"sort"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/optable"
)

// BranchAndBound is the exact Solver. It searches directly over table's
// entries rather than building an abstract LP/ILP model: the MIP's
// coverage/balance/subtour-elimination constraint family (spec.md §4.7) is
// together equivalent to "select a set of table entries whose covered-sets
// union to everything and whose endpoints chain into a closed walk through
// the depot" — exactly what a DFS over (currentLast, coveredSet, cost)
// states searches for directly, with no need to materialize the z_loc/x_op
// variables spec.md names as an actual linear system.
//
// Grounded on tsp/bb.go's bbEngine: deterministic ascending-cost branching
// order, an admissible additive lower bound, sparse deadline checks via the
// shared Cancel, and incumbent tracking. The lower bound here is
// LB_extra = max over uncovered v of minCoverCost[v], the per-location
// minimum cost of any surviving table entry that covers v at all — a
// relaxation of "every still-uncovered location needs at least one more
// selected operation" analogous to tsp/bb.go's minOut/minIn degree
// relaxation.
type BranchAndBound struct {
	// MaxDepth bounds the number of operations chained into one solution,
	// guarding against runaway recursion on a pathological table. Zero
	// means n (one operation per location is always sufficient to cover
	// a table built by package optable, so n is a safe default ceiling).
	MaxDepth int
}

type bbEngine struct {
	inst    tspd.InstanceView
	table   *optable.Table
	n       int
	depot   int
	eps     float64
	maxDep  int
	cancel  *tspd.Cancel
	timeout bool

	minCover []float64 // per-location v -> min cost over entries covering v

	path      []int // arena indices selected so far
	covered   bitset.Set
	costSoFar float64

	bestPath []int
	bestCost float64
	found    bool
}

// Solve implements Solver.
func (bb BranchAndBound) Solve(inst tspd.InstanceView, table *optable.Table, cancel *tspd.Cancel) ([]tspd.Operation, error) {
	n := inst.N()
	maxDepth := bb.MaxDepth
	if maxDepth <= 0 {
		maxDepth = n
	}
	e := &bbEngine{
		inst:     inst,
		table:    table,
		n:        n,
		depot:    0,
		eps:      tspd.Eps,
		maxDep:   maxDepth,
		cancel:   cancel,
		bestCost: math.Inf(1),
	}
	e.minCover = e.buildMinCover()
	for _, v := range e.minCover {
		if math.IsInf(v, 1) {
			return nil, &tspd.SolverError{Backend: "mip.BranchAndBound", Cause: tspd.ErrInfeasible}
		}
	}

	e.dfs(e.depot, bitset.Empty, 0)

	if e.cancel != nil && e.cancel.Check() {
		return nil, tspd.ErrCancelled
	}
	if !e.found {
		return nil, &tspd.SolverError{Backend: "mip.BranchAndBound", Cause: tspd.ErrInfeasible}
	}

	ops := make([]tspd.Operation, len(e.bestPath))
	for i, idx := range e.bestPath {
		ops[i] = table.Operation(idx)
	}
	return ops, nil
}

// buildMinCover computes, for every location v, the minimum cost among
// every surviving table entry whose covered-set contains v.
func (e *bbEngine) buildMinCover() []float64 {
	min := make([]float64, e.n)
	for i := range min {
		min[i] = math.Inf(1)
	}
	for idx := 0; idx < e.table.Len(); idx++ {
		entry := e.table.Entry(idx)
		cost := entry.Cost()
		for v := 0; v < e.n; v++ {
			if bitset.Contains(entry.Covered, v) && cost < min[v] {
				min[v] = cost
			}
		}
	}
	return min
}

// lowerBound returns an admissible estimate of the remaining cost to cover
// every location still outside covered, given costSoFar already spent.
func (e *bbEngine) lowerBound(costSoFar float64, covered bitset.Set) float64 {
	extra := 0.0
	for v := 0; v < e.n; v++ {
		if !bitset.Contains(covered, v) && e.minCover[v] > extra {
			extra = e.minCover[v]
		}
	}
	return costSoFar + extra
}

// candidateOrder returns the arena indices starting at last, sorted by
// ascending cost (then index, for determinism) — tsp/bb.go's branching
// order adapted from edge weight to operation cost.
func (e *bbEngine) candidateOrder(last int) []int {
	cands := e.table.StartingAt(last)
	out := make([]int, len(cands))
	copy(out, cands)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := e.table.Entry(out[i]).Cost(), e.table.Entry(out[j]).Cost()
		if ci == cj {
			return out[i] < out[j]
		}
		return ci < cj
	})
	return out
}

// dfs searches every chain of table entries starting and, eventually,
// ending at the depot, that together cover every location.
func (e *bbEngine) dfs(last int, covered bitset.Set, costSoFar float64) {
	if e.cancel != nil && e.cancel.Check() {
		return
	}
	if lb := e.lowerBound(costSoFar, covered); lb >= e.bestCost-e.eps {
		return
	}
	if len(e.path) > 0 && covered == bitset.Full(e.n) && last == e.depot {
		if costSoFar < e.bestCost-e.eps {
			e.bestCost = costSoFar
			e.bestPath = append([]int(nil), e.path...)
			e.found = true
		}
		return
	}
	if len(e.path) >= e.maxDep {
		return
	}

	for _, idx := range e.candidateOrder(last) {
		entry := e.table.Entry(idx)
		// A depot-to-depot loop that covers nothing new wastes a step
		// without making progress.
		if entry.Last == e.depot && entry.First == e.depot && bitset.Union(covered, entry.Covered) == covered {
			continue
		}
		e.path = append(e.path, idx)
		e.dfs(entry.Last, bitset.Union(covered, entry.Covered), costSoFar+entry.Cost())
		e.path = e.path[:len(e.path)-1]
	}
}

var _ Solver = BranchAndBound{}
