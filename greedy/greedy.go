// Package greedy implements the greedy fixed-order heuristic (C10): given a
// linear visiting order, repeatedly apply the single most profitable local
// transformation — MakeFly, PushLeft, or PushRight — until no transformation
// improves total cost, exactly as spec.md §4.9 describes.
//
// The sequence is modeled as a cyclic doubly-linked list of operation
// segments (a segment is either a trivial single-edge truck hop or a full
// Operation with a drive-path and/or fly node). Every customer location is
// in exactly one of four roles at a time — SIMPLE (boundary between two
// trivial segments), TERMINAL (boundary of at least one non-trivial
// segment), INTERNAL (swallowed into some segment's drive-path), or FLY
// (some segment's drone node) — mirroring spec.md §4.9's SolutionNode
// labels, computed on demand from the segment graph rather than cached
// per-node (role follows directly from segment shape, so there is nothing
// to keep in sync by hand).
//
// Grounded on package pqueue's indexed max-heap (itself grounded on
// azul3d-legacy-dstarlite's priorityqueue.go) for O(log n) decrease-key
// savings updates, and tsp/two_opt.go's first-improvement scanning idiom —
// pick the best candidate, apply it, recompute only what changed, repeat.
package greedy

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
	"github.com/katalvlaran/tspd/pqueue"
)

// Options configures a Solve call.
type Options struct {
	// TwoPass re-runs the loop once more after the first pass converges,
	// relaxing the acceptance threshold from strictly-positive to
	// non-negative. Every zero-savings move is cost-neutral by
	// construction (it replaces one segment shape with another of
	// identical cost), so this second pass can only consume ties the
	// first pass left on the table — it can never regress total cost.
	TwoPass bool
}

// Label is the role a location currently plays in the segment graph,
// mirroring spec.md §4.9's SolutionNode labels.
type Label int

const (
	// LabelDepot is the depot; never a move subject.
	LabelDepot Label = iota
	// LabelSimple is a customer between two trivial (single-edge) segments.
	LabelSimple
	// LabelTerminal is a customer bordering at least one non-trivial segment.
	LabelTerminal
	// LabelInternal is a customer swallowed into a segment's drive-path.
	LabelInternal
	// LabelFly is a customer serving as some segment's drone node.
	LabelFly
)

// Solve runs the greedy fixed-order heuristic over order (a permutation of
// inst's locations starting and ending at the depot; see fixedorder.Solve
// for the exact shape contract) and returns the resulting Solution.
// Returns ErrInvalidInput / ErrNonAtomicInput for a malformed order, or
// ErrCancelled if cancel fires mid-search.
func Solve(inst tspd.InstanceView, order []int, opts Options, cancel *tspd.Cancel) (tspd.Solution, error) {
	s, err := newSolver(inst, order, cancel)
	if err != nil {
		return tspd.Solution{}, err
	}
	if err := s.run(tspd.Eps); err != nil {
		return tspd.Solution{}, err
	}
	if opts.TwoPass {
		if err := s.run(-tspd.Eps); err != nil {
			return tspd.Solution{}, err
		}
	}
	return s.extract(), nil
}

// segment is one entry of the cyclic doubly-linked operation chain: either
// a trivial single-edge truck hop (empty drivePath, fly == tspd.NoFly) or a
// full operation the chain has already folded customers into.
type segment struct {
	start, end int
	drivePath  []int
	fly        int

	prev, next *segment

	driveCost float64
	flyCost   float64
}

func (s *segment) isTrivial() bool {
	return len(s.drivePath) == 0 && s.fly == tspd.NoFly
}

func (s *segment) cost() float64 {
	return math.Max(s.driveCost, s.flyCost)
}

// moveKind names the transformation bestSavings selected for a location.
type moveKind int

const (
	moveNone moveKind = iota
	moveMakeFly
	movePushLeft
	movePushRight
)

// heapKey is the pqueue.Indexed element for one location: a stable wrapper
// object reused across insert/remove cycles so NotifyPosition always has
// somewhere to write the location's current heap slot.
type heapKey struct {
	loc int
	pos int
}

func (k *heapKey) NotifyPosition(i int) { k.pos = i }

// solver holds the segment graph and heap for one Solve call.
type solver struct {
	inst  tspd.InstanceView
	truck distance.Provider
	drone distance.Provider
	depot int

	leftOp     map[int]*segment // boundary location -> segment ending there
	rightOp    map[int]*segment // boundary location -> segment starting there
	flyOf      map[int]*segment // fly location -> owning segment
	internalOf map[int]*segment // internal (drive-path) location -> owning segment

	heap *pqueue.Heap
	keys map[int]*heapKey

	cancel *tspd.Cancel
}

func newSolver(inst tspd.InstanceView, order []int, cancel *tspd.Cancel) (*solver, error) {
	m := len(order)
	if m < 2 || !inst.IsDepot(order[0]) || !inst.IsDepot(order[m-1]) {
		return nil, tspd.ErrInvalidInput
	}
	seen := make([]bool, inst.N())
	for p, loc := range order {
		if p == 0 || p == m-1 {
			continue
		}
		if inst.IsDepot(loc) || seen[loc] {
			return nil, tspd.ErrNonAtomicInput
		}
		seen[loc] = true
	}

	truck := inst.TruckDistance()
	drone := inst.DroneDistance()
	segs := buildSegments(order, truck)

	s := &solver{
		inst:       inst,
		truck:      truck,
		drone:      drone,
		depot:      order[0],
		leftOp:     make(map[int]*segment, m),
		rightOp:    make(map[int]*segment, m),
		flyOf:      make(map[int]*segment),
		internalOf: make(map[int]*segment),
		heap:       pqueue.New(),
		keys:       make(map[int]*heapKey, inst.N()),
		cancel:     cancel,
	}
	for _, seg := range segs {
		s.rightOp[seg.start] = seg
		s.leftOp[seg.end] = seg
	}
	for loc := 0; loc < inst.N(); loc++ {
		s.keys[loc] = &heapKey{loc: loc, pos: -1}
	}
	for p := 1; p < m-1; p++ {
		s.update(order[p])
	}
	return s, nil
}

// buildSegments lays out one trivial segment per consecutive pair in order
// and links them into a cyclic doubly-linked list (the depot's own segment
// neighbors close the loop).
func buildSegments(order []int, truck distance.Provider) []*segment {
	m := len(order)
	segs := make([]*segment, m-1)
	for i := 0; i < m-1; i++ {
		segs[i] = &segment{
			start:     order[i],
			end:       order[i+1],
			fly:       tspd.NoFly,
			driveCost: distance.ContextFree(truck, order[i], order[i+1]),
		}
	}
	for i, seg := range segs {
		seg.prev = segs[(i-1+len(segs))%len(segs)]
		seg.next = segs[(i+1)%len(segs)]
	}
	return segs
}

// label reports loc's current role, mirroring spec.md §4.9's SolutionNode
// labels.
func (s *solver) label(loc int) Label {
	if s.inst.IsDepot(loc) {
		return LabelDepot
	}
	if _, ok := s.flyOf[loc]; ok {
		return LabelFly
	}
	if _, ok := s.internalOf[loc]; ok {
		return LabelInternal
	}
	if s.isSimple(loc) {
		return LabelSimple
	}
	return LabelTerminal
}

// isSimple reports whether loc sits between two trivial segments (both
// adjacent hops are plain single-edge truck legs).
func (s *solver) isSimple(loc int) bool {
	if s.inst.IsDepot(loc) {
		return false
	}
	l, ok1 := s.leftOp[loc]
	r, ok2 := s.rightOp[loc]
	if !ok1 || !ok2 {
		return false
	}
	return l.isTrivial() && r.isTrivial()
}

// isTerminal reports whether loc is a boundary location bordering at least
// one non-trivial segment.
func (s *solver) isTerminal(loc int) bool {
	l, ok1 := s.leftOp[loc]
	r, ok2 := s.rightOp[loc]
	if !ok1 || !ok2 {
		return false
	}
	return !(l.isTrivial() && r.isTrivial())
}

// bestSavings evaluates every move legal for loc (loc must be SIMPLE for
// any of the three to apply, per spec.md §4.9) and returns the one with
// the largest savings, or (moveNone, -Inf) if loc has no legal move.
func (s *solver) bestSavings(loc int) (moveKind, float64) {
	if !s.isSimple(loc) {
		return moveNone, math.Inf(-1)
	}
	l := s.leftOp[loc]
	r := s.rightOp[loc]

	best := moveNone
	bestVal := math.Inf(-1)

	// MakeFly: replace the (L, loc, R) triple with one operation having L
	// and R as endpoints and loc as fly node.
	newDrive := distance.ContextFree(s.truck, l.start, r.end)
	newFly := distance.FlyDistance(s.drone, l.start, r.end, loc)
	if val := (l.driveCost + r.driveCost) - math.Max(newDrive, newFly); val > bestVal {
		bestVal, best = val, moveMakeFly
	}

	// PushLeft: fold L into the operation L itself terminates, extending
	// it to end at loc.
	if L := l.start; !s.inst.IsDepot(L) && s.isTerminal(L) {
		op := s.leftOp[L]
		extDrive := op.driveCost + distance.ContextFree(s.truck, L, loc)
		extFly := 0.0
		if op.fly != tspd.NoFly {
			extFly = distance.FlyDistance(s.drone, op.start, loc, op.fly)
		}
		if val := (op.cost() + l.driveCost) - math.Max(extDrive, extFly); val > bestVal {
			bestVal, best = val, movePushLeft
		}
	}

	// PushRight: fold R into the operation R itself starts, extending it
	// to start at loc.
	if R := r.end; !s.inst.IsDepot(R) && s.isTerminal(R) {
		op := s.rightOp[R]
		extDrive := distance.ContextFree(s.truck, loc, R) + op.driveCost
		extFly := 0.0
		if op.fly != tspd.NoFly {
			extFly = distance.FlyDistance(s.drone, loc, op.end, op.fly)
		}
		if val := (op.cost() + r.driveCost) - math.Max(extDrive, extFly); val > bestVal {
			bestVal, best = val, movePushRight
		}
	}

	return best, bestVal
}

// applyMakeFly replaces loc's two trivial neighboring segments with one
// operation spanning L to R with loc as the fly node.
func (s *solver) applyMakeFly(loc int) {
	l := s.leftOp[loc]
	r := s.rightOp[loc]

	newSeg := &segment{
		start: l.start,
		end:   r.end,
		fly:   loc,
	}
	newSeg.driveCost = distance.ContextFree(s.truck, l.start, r.end)
	newSeg.flyCost = distance.FlyDistance(s.drone, l.start, r.end, loc)

	if l.prev == r {
		// l and r were the only two segments in the cycle (n == 2): the
		// merged segment is now alone, looping back to itself.
		newSeg.prev = newSeg
		newSeg.next = newSeg
	} else {
		newSeg.prev = l.prev
		newSeg.next = r.next
		newSeg.prev.next = newSeg
		newSeg.next.prev = newSeg
	}

	delete(s.leftOp, loc)
	delete(s.rightOp, loc)
	s.flyOf[loc] = newSeg
	s.rightOp[newSeg.start] = newSeg
	s.leftOp[newSeg.end] = newSeg

	s.update(loc)
	s.update(newSeg.start)
	s.update(newSeg.end)
	// L and R just became TERMINAL (bordering newSeg instead of a trivial
	// hop), which can open or reprice a PushRight/PushLeft candidate for
	// the node one hop further out on each side — their cached heap
	// priority was computed against the old, now-replaced segments.
	s.update(newSeg.prev.start)
	s.update(newSeg.next.end)
}

// applyPushLeft folds L (loc's left neighbor, a TERMINAL location) into
// the operation it terminates, extending that operation to end at loc.
func (s *solver) applyPushLeft(loc int) {
	l := s.leftOp[loc]
	L := l.start
	op := s.leftOp[L]

	op.drivePath = append(append([]int(nil), op.drivePath...), L)
	op.driveCost += distance.ContextFree(s.truck, L, loc)
	op.end = loc
	if op.fly != tspd.NoFly {
		op.flyCost = distance.FlyDistance(s.drone, op.start, loc, op.fly)
	}

	delete(s.leftOp, L)
	delete(s.rightOp, L)
	s.internalOf[L] = op
	s.leftOp[loc] = op

	next := s.rightOp[loc]
	op.next = next
	next.prev = op

	s.update(L)
	s.update(loc)
	// op's cost changed (it now drives one hop further), repricing the
	// PushRight candidate the node before op.start might have cached; and
	// loc just became TERMINAL, which can open a new PushLeft candidate
	// for the node after it — both read live segment state but were never
	// told to refresh their cached heap priority.
	s.update(op.prev.start)
	s.update(next.end)
}

// applyPushRight folds R (loc's right neighbor, a TERMINAL location) into
// the operation it starts, extending that operation to start at loc.
func (s *solver) applyPushRight(loc int) {
	r := s.rightOp[loc]
	R := r.end
	op := s.rightOp[R]

	op.drivePath = append([]int{R}, op.drivePath...)
	op.driveCost += distance.ContextFree(s.truck, loc, R)
	op.start = loc
	if op.fly != tspd.NoFly {
		op.flyCost = distance.FlyDistance(s.drone, loc, op.end, op.fly)
	}

	delete(s.leftOp, R)
	delete(s.rightOp, R)
	s.internalOf[R] = op
	s.rightOp[loc] = op

	prev := s.leftOp[loc]
	prev.next = op
	op.prev = prev

	s.update(R)
	s.update(loc)
	// Symmetric to applyPushLeft: op's cost changed, repricing the
	// PushLeft candidate the node after op.end might have cached, and loc
	// just became TERMINAL, which can open a new PushRight candidate for
	// the node before it.
	s.update(op.next.end)
	s.update(prev.start)
}

// update recomputes loc's heap membership: removed if loc is no longer
// SIMPLE (or has become depot/internal/fly), inserted or refreshed with
// its current best savings otherwise.
func (s *solver) update(loc int) {
	key := s.keys[loc]
	if key.pos >= 0 {
		s.heap.Remove(key.pos)
	}
	if !s.isSimple(loc) {
		return
	}
	_, savings := s.bestSavings(loc)
	s.heap.Insert(key, savings)
}

// run pops the heap while its top exceeds threshold, applying the best
// move for that location each time, until the heap empties or the top
// savings no longer clears threshold.
func (s *solver) run(threshold float64) error {
	for {
		if s.cancel != nil && s.cancel.Check() {
			return tspd.ErrCancelled
		}
		top, savings, ok := s.heap.Peek()
		if !ok || savings <= threshold {
			return nil
		}
		key := top.(*heapKey)
		loc := key.loc
		s.heap.PopMax()

		move, freshSavings := s.bestSavings(loc)
		if freshSavings <= threshold {
			// The popped priority was stale: an earlier move this round
			// changed a neighboring segment's cost or legality, and loc's
			// true current savings no longer clears threshold. Reinsert
			// with the fresh value (if loc is still SIMPLE at all) rather
			// than applying a move that would not actually help, and let
			// the heap order decide whether anything else outranks it.
			if !math.IsInf(freshSavings, -1) {
				s.heap.Insert(key, freshSavings)
			}
			continue
		}
		switch move {
		case moveMakeFly:
			s.applyMakeFly(loc)
		case movePushLeft:
			s.applyPushLeft(loc)
		case movePushRight:
			s.applyPushRight(loc)
		}
	}
}

// extract walks the converged segment chain from the depot and returns the
// resulting Solution.
func (s *solver) extract() tspd.Solution {
	start := s.rightOp[s.depot]
	ops := make([]tspd.Operation, 0, len(s.rightOp))
	cur := start
	for {
		ops = append(ops, tspd.Operation{
			Start:     cur.start,
			DrivePath: append([]int(nil), cur.drivePath...),
			End:       cur.end,
			Fly:       cur.fly,
		})
		cur = cur.next
		if cur == start {
			break
		}
	}
	return tspd.Solution{Operations: ops}
}
