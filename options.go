package tspd

import "time"

// Eps is the single named numeric tolerance used across the module: the
// operation table's dominance comparison, the strict-improvement thresholds
// of the heuristics and the branch-and-bound search, and the restricted
// instance's flight-range check all compare against this value rather than
// an ad-hoc literal. No post-build table integrity check is performed.
const Eps = 1e-8

// Options configures every solver in this module (exact and heuristic
// alike). Zero value is not meaningful; start from DefaultOptions and
// override fields as needed — mirrors tsp.Options/tsp.DefaultOptions.
type Options struct {
	// MaxRangeFactor bounds the drone's flight cost per operation on the
	// exact path as a multiple of the longest single drone leg in the
	// instance (see optable.BuildConstraints). Zero, a negative value, or a
	// value of 2 or more means unbounded.
	MaxRangeFactor float64

	// MaxCardinality caps, on the exact path, how many truck-only
	// customers (covered locations other than the operation's start, end
	// and fly node) a single operation-table entry may hold, bounding the
	// state space. Zero or a negative value means unbounded.
	MaxCardinality int

	// TimeLimit is carried for callers; no solve path reads it. A wall-clock
	// limit is applied by passing a token from NewCancel(limit).
	TimeLimit time.Duration

	// Seed drives the one pseudo-random component, the SeedRandom initial
	// tour (seed.RandomTour).
	Seed uint64

	// Eps is carried for callers; no solve path reads it, and every solver
	// compares against the package constant Eps. Default: the package Eps.
	Eps float64
}

// DefaultOptions returns Options with conservative, deterministic defaults:
// unbounded drone range and cardinality, no time limit, fixed seed, and the
// package's default numeric tolerance.
func DefaultOptions() Options {
	return Options{
		MaxRangeFactor: 0,
		MaxCardinality: 0,
		TimeLimit:      0,
		Seed:           0,
		Eps:            Eps,
	}
}
