// Package tspd solves the Traveling Salesman Problem with Drone (TSP-D):
// one truck and one drone jointly serve customer locations and both return
// to a depot, minimizing makespan, via a sequence of operations.
//
// Grounded on lvlath/tsp's types.go sentinel-error idiom (grouped var
// blocks, one doc comment per error, "tsp: " prefix — here "tspd: ") and
// Options/DefaultOptions pattern.
package tspd

import "errors"

// Validation / input-shape errors.
var (
	// ErrInvalidInput indicates a malformed instance or illegal parameter
	// (e.g. a non-positive range factor).
	ErrInvalidInput = errors.New("tspd: invalid input")

	// ErrInstanceTooLarge indicates an instance exceeds a solver's supported
	// location count (the exact path is bounded to ~25 customers).
	ErrInstanceTooLarge = errors.New("tspd: instance too large for this solver")

	// ErrNonAtomicInput indicates a fixed-order input repeats a location
	// instead of visiting every location exactly once.
	ErrNonAtomicInput = errors.New("tspd: fixed order repeats a location")
)

// Feasibility / solve-time errors.
var (
	// ErrInfeasible indicates no feasible Solution exists for the instance
	// under the active constraints.
	ErrInfeasible = errors.New("tspd: no feasible solution")

	// ErrTableIntegrity names the failure of a post-build cross-check of an
	// operation table entry's stored cost against its recomputed cost.
	// optable.Build performs no such check and never returns it.
	ErrTableIntegrity = errors.New("tspd: operation table integrity check failed")

	// ErrIllFormedGraph indicates the Eulerian-walk assembler could not
	// complete because the operation-arc multigraph has imbalanced
	// in/out degrees.
	ErrIllFormedGraph = errors.New("tspd: Eulerian assembly failed: imbalanced degrees")

	// ErrCancelled indicates cooperative cancellation was requested before
	// the solver produced a result.
	ErrCancelled = errors.New("tspd: cancelled")
)

// ErrSolverError is the sentinel an errors.Is caller matches against; use
// SolverError to carry the backend's own error identifier.
var ErrSolverError = errors.New("tspd: solver error")

// SolverError wraps an opaque failure from an underlying optimization
// backend (the MIP solver's branch-and-bound engine, or any future backend
// plugged into the same interface), carrying the backend's error identifier
// verbatim in Cause.
type SolverError struct {
	Backend string
	Cause   error
}

func (e *SolverError) Error() string {
	if e.Cause == nil {
		return "tspd: solver error (" + e.Backend + ")"
	}
	return "tspd: solver error (" + e.Backend + "): " + e.Cause.Error()
}

// Unwrap exposes both ErrSolverError (so errors.Is(err, ErrSolverError)
// succeeds) and the wrapped backend cause.
func (e *SolverError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSolverError}
	}
	return []error{ErrSolverError, e.Cause}
}
