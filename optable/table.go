package optable

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
)

// Table is the three-level first -> last -> covered-set -> entry mapping
// from spec.md §4.5, backed by a flat arena so predecessor links (Pred)
// are cheap integer indices rather than pointers.
type Table struct {
	entries     []tspd.OperationEntry
	index       map[tspd.Key]int    // dominance key -> arena index of current best
	byEndpoints map[endpoints][]int // (first,last) -> arena indices
	byStart     map[int][]int       // first -> arena indices, insertion order
}

type endpoints struct{ first, last int }

func newTable() *Table {
	return &Table{
		index:       make(map[tspd.Key]int),
		byEndpoints: make(map[endpoints][]int),
		byStart:     make(map[int][]int),
	}
}

// StartingAt returns the arena indices of every surviving entry whose First
// equals first, in insertion order.
func (t *Table) StartingAt(first int) []int {
	return t.byStart[first]
}

// GetOperations returns the flat sequence of surviving entries for the
// (first, last) endpoint pair, in insertion order.
func (t *Table) GetOperations(first, last int) []tspd.OperationEntry {
	idxs := t.byEndpoints[endpoints{first, last}]
	out := make([]tspd.OperationEntry, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, t.entries[idx])
	}
	return out
}

// All returns every surviving entry, in arena order.
func (t *Table) All() []tspd.OperationEntry {
	out := make([]tspd.OperationEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of surviving entries.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the arena entry at idx (a Pred value), used by callers
// reconstructing an operation's drive-path from the table.
func (t *Table) Entry(idx int) tspd.OperationEntry { return t.entries[idx] }

// store inserts e, keeping it only if it strictly improves the best cost
// for e.Key(). Returns the arena index of the stored entry and true when
// storage happened (the new entry became the key's representative), or the
// existing representative's index and false when that entry is kept.
func (t *Table) store(e tspd.OperationEntry) (int, bool) {
	key := e.Key()
	cost := e.Cost()
	if existingIdx, ok := t.index[key]; ok {
		if cost >= t.entries[existingIdx].Cost()-tspd.Eps {
			return existingIdx, false
		}
		t.entries[existingIdx] = e
		return existingIdx, true
	}
	idx := len(t.entries)
	t.entries = append(t.entries, e)
	t.index[key] = idx
	ep := endpoints{e.First, e.Last}
	t.byEndpoints[ep] = append(t.byEndpoints[ep], idx)
	t.byStart[e.First] = append(t.byStart[e.First], idx)
	return idx, true
}

// queueItem pairs an arena index with whether that entry is still
// eligible for phase-1 expansion (an entry that repeated a node is queued
// with expandable false, and an entry that has left the depot and ended
// back at it is skipped when dequeued; neither is expanded).
type queueItem struct {
	idx        int
	expandable bool
}

// Build runs the two-phase dynamic program over inst and returns the
// resulting Table. constraints gates both phases; cancel is checked
// between expansion layers (phase 1) and between fly-augmentation passes
// (phase 2).
func Build(inst tspd.InstanceView, constraints Constraints, cancel *tspd.Cancel) (*Table, error) {
	n := inst.N()
	truck := inst.TruckDistance()
	t := newTable()

	queue := make([]queueItem, 0, n)
	for i := 0; i < n; i++ {
		e := tspd.OperationEntry{
			First:     i,
			Last:      i,
			Covered:   bitset.Singleton(i),
			Fly:       tspd.NoFly,
			DriveCost: 0,
			FlyCost:   0,
			Pred:      -1,
		}
		idx, _ := t.store(e)
		queue = append(queue, queueItem{idx: idx, expandable: true})
	}

	for head := 0; head < len(queue); head++ {
		if cancel != nil && cancel.Check() {
			return nil, tspd.ErrCancelled
		}
		item := queue[head]
		if !item.expandable {
			continue
		}
		e := t.entries[item.idx]
		if inst.IsDepot(e.Last) && e.First != e.Last {
			continue
		}
		for j := 0; j < n; j++ {
			// A repetition (j already in e.Covered) keeps the same
			// covered-set but moves Last to j; per spec.md §4.5 such an
			// entry is still stored when it strictly improves its key,
			// but is never expanded again.
			repeated := bitset.Contains(e.Covered, j)
			leg := distance.ContextFreeWithPrior(truck, e.Last, j, e.DriveCost)
			if math.IsInf(leg, 1) {
				continue
			}
			newDrive := e.DriveCost + leg
			if constraints.rejectsUnsalvageableDrive(newDrive, e.DriveCost) {
				continue
			}
			covered := e.Covered
			if !repeated {
				covered = bitset.Add(e.Covered, j)
			}
			count := truckOnlyCount(bitset.Popcount(covered), e.First, j, tspd.NoFly)
			if !constraints.allowsCardinality(count) {
				continue
			}
			child := tspd.OperationEntry{
				First:     e.First,
				Last:      j,
				Covered:   covered,
				Fly:       tspd.NoFly,
				DriveCost: newDrive,
				FlyCost:   0,
				Pred:      item.idx,
			}
			idx, stored := t.store(child)
			if stored {
				queue = append(queue, queueItem{idx: idx, expandable: !repeated})
			}
		}
	}

	drone := inst.DroneDistance()
	phase1Count := len(t.entries)
	for idx := 0; idx < phase1Count; idx++ {
		if cancel != nil && cancel.Check() {
			return nil, tspd.ErrCancelled
		}
		e := t.entries[idx]
		if e.Fly != tspd.NoFly {
			continue
		}
		for k := 0; k < n; k++ {
			if inst.IsDepot(k) || bitset.Contains(e.Covered, k) {
				continue
			}
			flyCost := distance.FlyDistance(drone, e.First, e.Last, k)
			if math.IsInf(flyCost, 1) || !constraints.allowsFlyCost(flyCost) {
				continue
			}
			covered := bitset.Add(e.Covered, k)
			count := truckOnlyCount(bitset.Popcount(covered), e.First, e.Last, k)
			if !constraints.allowsCardinality(count) {
				continue
			}
			child := tspd.OperationEntry{
				First:     e.First,
				Last:      e.Last,
				Covered:   covered,
				Fly:       k,
				DriveCost: e.DriveCost,
				FlyCost:   flyCost,
				Pred:      idx,
			}
			t.store(child)
		}
	}

	return t, nil
}

// DrivePath reconstructs the ordered internal truck-only customers of the
// operation ending at arena index idx, by walking Pred links back to the
// entry's own start (exclusive of First and Last).
func (t *Table) DrivePath(idx int) []int {
	root := idx
	if t.entries[root].Fly != tspd.NoFly {
		// A fly-augmented entry's drive-path is its phase-1 predecessor's
		// (the fly node rides the drone, not the truck).
		root = t.entries[root].Pred
	}
	var reversed []int
	cur := root
	for {
		e := t.entries[cur]
		if e.Pred < 0 {
			break
		}
		if cur != root {
			reversed = append(reversed, e.Last)
		}
		cur = e.Pred
	}
	path := make([]int, len(reversed))
	for i, v := range reversed {
		path[len(reversed)-1-i] = v
	}
	return path
}

// Operation reconstructs the full Operation (including its drive-path) the
// arena entry at idx represents.
func (t *Table) Operation(idx int) tspd.Operation {
	e := t.entries[idx]
	return tspd.Operation{
		Start:     e.First,
		DrivePath: t.DrivePath(idx),
		End:       e.Last,
		Fly:       e.Fly,
	}
}
