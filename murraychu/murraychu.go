// Package murraychu implements the Murray–Chu local search (C11): a
// doubly-linked truck-path list where any stop may additionally launch
// (nextFly) or receive (prevFly) a single drone flight, searched by two
// neighborhoods — TruckAction (relocate a stop) and DroneAction (pull a
// stop off the truck path and fly it between two existing stops) — with a
// full-neighborhood scan committing the single best improving move each
// round, exactly as spec.md §4.10 describes.
//
// Grounded on tsp/three_opt.go's neighborhood-plus-explicit-undo idiom: a
// candidate move is applied, its effect measured, and undone, and the
// round's winner is applied again once the scan ends, rather than
// maintained via incremental bookkeeping.
package murraychu

import (
	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
)

// Options configures a Solve call. Reserved for future tuning knobs (the
// spec names none beyond the scan itself); present so callers have a
// stable signature to extend.
type Options struct{}

// Solve runs the Murray–Chu local search starting from order (a
// permutation of inst's locations starting and ending at the depot) until
// no neighborhood action improves total cost, and returns the resulting
// Solution.
func Solve(inst tspd.InstanceView, order []int, _ Options, cancel *tspd.Cancel) (tspd.Solution, error) {
	s, err := newSolver(inst, order)
	if err != nil {
		return tspd.Solution{}, err
	}
	if err := s.run(cancel); err != nil {
		return tspd.Solution{}, err
	}
	return s.extract(), nil
}

// node is one location's slot in the truck-path chain. A node is either
// on-chain (prev/next valid, part of the truck tour) or off-chain (a drone
// passenger currently mid-flight, onChain false, flight non-nil; its
// prev/next are left as they were and are not read while it is airborne).
type node struct {
	loc  int
	prev *node
	next *node

	onChain bool

	flightOut *flight // non-nil if this stop launches a drone sortie
	flightIn  *flight // non-nil if this stop receives a drone sortie
	flight    *flight // non-nil only when this node is itself the passenger
}

// flight is a single drone sortie: launch and landing are on-chain nodes,
// passenger is the location index currently airborne between them.
type flight struct {
	launch, landing *node
	passenger       int
}

type solver struct {
	inst  tspd.InstanceView
	truck distance.Provider
	drone distance.Provider

	depot *node
	locs  []int // every location index, for deterministic scan order
	nodes map[int]*node
}

func newSolver(inst tspd.InstanceView, order []int) (*solver, error) {
	m := len(order)
	if m < 2 || !inst.IsDepot(order[0]) || !inst.IsDepot(order[m-1]) {
		return nil, tspd.ErrInvalidInput
	}
	n := inst.N()
	seen := make([]bool, n)
	for p, loc := range order {
		if p == 0 || p == m-1 {
			continue
		}
		if inst.IsDepot(loc) || seen[loc] {
			return nil, tspd.ErrNonAtomicInput
		}
		seen[loc] = true
	}

	nodes := make(map[int]*node, n)
	locs := make([]int, 0, n)
	for _, loc := range order[:m-1] {
		nodes[loc] = &node{loc: loc, onChain: true}
		locs = append(locs, loc)
	}
	chain := make([]*node, len(locs))
	for i, loc := range locs {
		chain[i] = nodes[loc]
	}
	for i, nd := range chain {
		nd.next = chain[(i+1)%len(chain)]
		nd.prev = chain[(i-1+len(chain))%len(chain)]
	}

	return &solver{
		inst:  inst,
		truck: inst.TruckDistance(),
		drone: inst.DroneDistance(),
		depot: nodes[order[0]],
		locs:  locs,
		nodes: nodes,
	}, nil
}

// extract walks the current chain, folding every active flight into a
// single Operation spanning its launch to its landing, and returns the
// resulting Solution.
func (s *solver) extract() tspd.Solution {
	var ops []tspd.Operation
	cur := s.depot
	for {
		if cur.flightOut != nil {
			fl := cur.flightOut
			var drivePath []int
			for w := cur.next; w != fl.landing; w = w.next {
				drivePath = append(drivePath, w.loc)
			}
			ops = append(ops, tspd.Operation{Start: cur.loc, DrivePath: drivePath, End: fl.landing.loc, Fly: fl.passenger})
			cur = fl.landing
		} else {
			ops = append(ops, tspd.Operation{Start: cur.loc, End: cur.next.loc, Fly: tspd.NoFly})
			cur = cur.next
		}
		if cur == s.depot {
			break
		}
	}
	return tspd.Solution{Operations: ops}
}

// totalCost evaluates the current chain's Solution, returning (cost,
// true), or (0, false) if it is not presently feasible (should not occur
// for any chain this solver itself produces, but a defensive check is
// cheap next to the O(n) extract it wraps).
func (s *solver) totalCost() (float64, bool) {
	stats, err := s.extract().Evaluate(s.inst)
	if err != nil {
		return 0, false
	}
	return stats.TotalCost, true
}

// truckAction detaches subject from its current chain position and
// splices it immediately after target. Calling it twice — first with the
// intended target, then again with subject's original predecessor — is
// its own inverse.
func (s *solver) truckAction(subject, target *node) {
	subject.prev.next = subject.next
	subject.next.prev = subject.prev

	subject.prev = target
	subject.next = target.next
	target.next.prev = subject
	target.next = subject
}

func (s *solver) truckActionLegal(subject, target *node) bool {
	if subject == s.depot || subject == target {
		return false
	}
	if !subject.onChain || !target.onChain {
		return false
	}
	if subject.flightOut != nil || subject.flightIn != nil {
		return false
	}
	return target != subject.prev
}

// droneAction removes subject from the truck chain and installs it as the
// passenger of a new flight between from and to.
func (s *solver) droneAction(subject, from, to *node) {
	subject.prev.next = subject.next
	subject.next.prev = subject.prev
	subject.onChain = false

	fl := &flight{launch: from, landing: to, passenger: subject.loc}
	from.flightOut = fl
	to.flightIn = fl
	subject.flight = fl
}

// undoDroneAction reverses droneAction, given subject's chain neighbors as
// they were immediately before the flight was installed.
func (s *solver) undoDroneAction(subject, oldPrev, oldNext *node) {
	fl := subject.flight
	fl.launch.flightOut = nil
	fl.landing.flightIn = nil
	subject.flight = nil
	subject.onChain = true

	subject.prev = oldPrev
	subject.next = oldNext
	oldPrev.next = subject
	oldNext.prev = subject
}

// forEachDroneCandidate visits every legal (subject, from, to) triple, per
// spec.md §4.10: subject carries no drone links; from's launch slot is
// free; walking forward from from, every node up to and including to
// carries no conflicting drone link, except subject itself (which is
// leaving the chain) and to's own flightOut (a node may both land one
// flight and already launch another). The walk ends at the depot, so no
// flight spans it; from the depot itself the walk goes round to the depot
// again, which also proposes a depot-to-depot flight. fn returning false
// stops the scan.
func (s *solver) forEachDroneCandidate(fn func(subject, from, to *node) bool) bool {
	for _, subjectLoc := range s.locs {
		subject := s.nodes[subjectLoc]
		if subject == s.depot || !subject.onChain || subject.flightOut != nil || subject.flightIn != nil {
			continue
		}
		for _, fromLoc := range s.locs {
			from := s.nodes[fromLoc]
			if from == subject || !from.onChain || from.flightOut != nil {
				continue
			}
			for to := from.next; ; to = to.next {
				if to == subject {
					continue
				}
				if to.flightIn == nil {
					if !fn(subject, from, to) {
						return false
					}
				}
				if to == from || to == s.depot || to.flightIn != nil || to.flightOut != nil {
					break
				}
			}
		}
	}
	return true
}

// run performs the full-neighborhood scan: every round, evaluate every
// legal TruckAction and DroneAction, apply-measure-undo each one, commit
// the single best strictly-improving move, and repeat until a round finds
// none. Ties are broken by scan order (locs, then target/from/to in the
// same deterministic order), per spec.md §4.10.
//
// Complexity: O(n^2) candidates per round for TruckAction, up to O(n^3)
// for DroneAction, each measured in O(n) — bounded in practice because the
// drone scan's inner walk stops at the first existing flight boundary.
func (s *solver) run(cancel *tspd.Cancel) error {
	for {
		if cancel != nil && cancel.Check() {
			return tspd.ErrCancelled
		}
		baseline, ok := s.totalCost()
		if !ok {
			return tspd.ErrInfeasible
		}

		bestGain := tspd.Eps
		var bestApply func()

		for _, subjectLoc := range s.locs {
			subject := s.nodes[subjectLoc]
			for _, targetLoc := range s.locs {
				target := s.nodes[targetLoc]
				if !s.truckActionLegal(subject, target) {
					continue
				}
				oldPrev := subject.prev
				s.truckAction(subject, target)
				cost, feasible := s.totalCost()
				s.truckAction(subject, oldPrev)
				if !feasible {
					continue
				}
				if gain := baseline - cost; gain > bestGain {
					bestGain = gain
					subj, tgt := subject, target
					bestApply = func() { s.truckAction(subj, tgt) }
				}
			}
		}

		s.forEachDroneCandidate(func(subject, from, to *node) bool {
			if cancel != nil && cancel.Check() {
				return false
			}
			oldPrev, oldNext := subject.prev, subject.next
			s.droneAction(subject, from, to)
			cost, feasible := s.totalCost()
			s.undoDroneAction(subject, oldPrev, oldNext)
			if feasible {
				if gain := baseline - cost; gain > bestGain {
					bestGain = gain
					subj, f, t := subject, from, to
					bestApply = func() { s.droneAction(subj, f, t) }
				}
			}
			return true
		})

		if cancel != nil && cancel.Check() {
			return tspd.ErrCancelled
		}
		if bestApply == nil {
			return nil
		}
		bestApply()
	}
}
