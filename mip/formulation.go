// Package mip implements the MIP formulation over the operation table (C8):
// one binary x_op per table entry, one binary z_loc per location, and an
// objective minimizing total selected cost. Formulation exposes the
// objective coefficients and the coverage and balance checks; no
// depot-arrival, depot-coverage, activity-bound or subtour-elimination
// constraint is materialized. BranchAndBound searches chains of table
// entries from the depot directly rather than solving the formulation.
//
// No Go MILP/LP binding exists anywhere in the retrieved example corpus (no
// gurobi/cplex/glpk/or-tools/highs import in any example repo or its
// go.mod). Per this module's policy (see DESIGN.md) no such dependency is
// fabricated. Solver is instead the boundary spec.md already describes as
// an opaque optimization backend, and this package ships exactly one
// concrete implementation — an exact branch-and-bound enumerator — grounded
// on tsp/bb.go's bbEngine (admissible lower bound, deterministic branching,
// sparse deadline checks, incumbent tracking).
package mip

import (
	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/optable"
)

// Solver is the MIP's pluggable optimization backend: given the operation
// table and instance, return the set of selected operations (in no
// particular order — the caller passes them to package eulerian to
// assemble a walk) or a *tspd.SolverError.
type Solver interface {
	Solve(inst tspd.InstanceView, table *optable.Table, cancel *tspd.Cancel) ([]tspd.Operation, error)
}

// Variable names a single x_op or z_loc decision variable. Nothing in this
// package builds or reads Variable values, and no subtour-elimination
// rebuild is implemented.
type Variable struct {
	IsLocation bool // true: z_loc; false: x_op
	Location   int  // valid when IsLocation
	Entry      int  // arena index into the table; valid when !IsLocation
}

// Formulation holds the static shape of the MIP — one x_op per table entry,
// one z_loc per location — used to check a candidate selection against the
// coverage and balance constraint families; the other families are not
// checked.
type Formulation struct {
	inst  tspd.InstanceView
	table *optable.Table
}

// NewFormulation captures the instance and table a Solve call will search
// over.
func NewFormulation(inst tspd.InstanceView, table *optable.Table) *Formulation {
	return &Formulation{inst: inst, table: table}
}

// Objective is cost(op) for the table entry at arena index idx — the
// per-variable coefficient in "minimize sum cost(op) * x_op".
func (f *Formulation) Objective(idx int) float64 {
	return f.table.Entry(idx).Cost()
}

// SatisfiesCoverage reports whether selected (a set of arena indices)
// covers every location at least once — the coverage constraint family.
func (f *Formulation) SatisfiesCoverage(selected []int) bool {
	covered := f.table.Entry(selected[0]).Covered
	for _, idx := range selected[1:] {
		covered = bitset.Union(covered, f.table.Entry(idx).Covered)
	}
	return covered == bitset.Full(f.inst.N())
}

// SatisfiesBalance reports whether selected's operations balance in/out
// degree at every location — the balance constraint family that lets the
// Eulerian-walk assembler succeed.
func (f *Formulation) SatisfiesBalance(selected []int) bool {
	n := f.inst.N()
	degree := make([]int, n)
	for _, idx := range selected {
		e := f.table.Entry(idx)
		degree[e.First]++
		degree[e.Last]--
	}
	for _, d := range degree {
		if d != 0 {
			return false
		}
	}
	return true
}
