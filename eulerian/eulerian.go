// Package eulerian assembles a sequence of operations (treated as directed
// arcs between their Start and End locations) into a single closed walk
// through the depot, by Hierholzer's rule (C7).
//
// Grounded on tsp/eulerian.go's half-edge/cursor bookkeeping (a per-vertex
// cursor skips already-consumed incidences in amortized O(1)), but
// generalized from an undirected twin-paired multigraph to a directed
// multigraph of operation-arcs, and written as the literal find-and-splice
// procedure spec.md §4.6 describes rather than the teacher's single-pass
// stack trick — the two are equivalent for a balanced Eulerian multigraph,
// but the explicit splice loop matches the spec's own description of the
// algorithm step for step.
package eulerian

import "github.com/katalvlaran/tspd"

// ErrIllFormedGraph is returned when arcs remain unconsumed but no vertex
// reachable from the current walk has any unused outgoing arc — the
// operation-arc multigraph's in/out degrees do not balance.
var ErrIllFormedGraph = tspd.ErrIllFormedGraph

// Assemble builds the closed walk starting and ending at start from
// operations (each treated as one directed arc Start->End), returning the
// operations in walk order. operations must form a balanced Eulerian
// multigraph over start's component — every vertex's in-degree must equal
// its out-degree, and every arc must be reachable from start.
func Assemble(operations []tspd.Operation, start int) ([]tspd.Operation, error) {
	n := 0
	for _, op := range operations {
		if op.Start+1 > n {
			n = op.Start + 1
		}
		if op.End+1 > n {
			n = op.End + 1
		}
	}
	if start+1 > n {
		n = start + 1
	}

	head := make([][]int, n)
	for i, op := range operations {
		head[op.Start] = append(head[op.Start], i)
	}

	w := &walker{
		operations: operations,
		head:       head,
		cursor:     make([]int, n),
		used:       make([]bool, len(operations)),
		start:      start,
	}

	master := w.greedyWalk(start)
	consumed := len(master)
	for consumed < len(operations) {
		pos, v, ok := w.findSpliceVertex(master)
		if !ok {
			return nil, ErrIllFormedGraph
		}
		sub := w.greedyWalk(v)
		if len(sub) == 0 {
			return nil, ErrIllFormedGraph
		}
		master = splice(master, pos, sub)
		consumed += len(sub)
	}
	if len(master) > 0 && operations[master[len(master)-1]].End != start {
		// Every arc was consumed, but the walk does not close back at
		// start: some vertex's in-degree exceeded its out-degree.
		return nil, ErrIllFormedGraph
	}

	ops := make([]tspd.Operation, len(master))
	for i, arcIdx := range master {
		ops[i] = operations[arcIdx]
	}
	return ops, nil
}

// walker holds the shared mutable bookkeeping (per-vertex outgoing arc
// lists, a lazily-advanced cursor per vertex, and the global used mask)
// that every greedyWalk/findSpliceVertex call consults.
type walker struct {
	operations []tspd.Operation
	head       [][]int
	cursor     []int
	used       []bool
	start      int
}

// nextUnused returns the next unused arc index out of v without marking it
// used, advancing v's cursor past any already-used arcs it passes.
func (w *walker) nextUnused(v int) (int, bool) {
	for w.cursor[v] < len(w.head[v]) {
		id := w.head[v][w.cursor[v]]
		if !w.used[id] {
			return id, true
		}
		w.cursor[v]++
	}
	return -1, false
}

// greedyWalk follows unused out-arcs from v until v (or wherever it ends
// up) has none left, marking each consumed arc used. For a balanced
// Eulerian multigraph this always returns to v, forming a closed sub-walk.
func (w *walker) greedyWalk(v int) []int {
	var seq []int
	cur := v
	for {
		arcID, ok := w.nextUnused(cur)
		if !ok {
			return seq
		}
		w.used[arcID] = true
		seq = append(seq, arcID)
		cur = w.operations[arcID].End
	}
}

// vertexAt returns the vertex the master walk occupies just before
// position p (p == 0 is the walk's start).
func (w *walker) vertexAt(master []int, p int) int {
	if p == 0 {
		return w.start
	}
	return w.operations[master[p-1]].End
}

// findSpliceVertex scans every position of the current master walk for a
// vertex with a remaining unused out-arc, per spec.md §4.6's "find a vertex
// on the current walk that still has outgoing arcs."
func (w *walker) findSpliceVertex(master []int) (pos int, vertex int, ok bool) {
	for p := 0; p <= len(master); p++ {
		v := w.vertexAt(master, p)
		if _, has := w.nextUnused(v); has {
			return p, v, true
		}
	}
	return 0, 0, false
}

// splice inserts sub into master at pos, the way a Hierholzer sub-circuit
// is spliced into the walk it was discovered from.
func splice(master []int, pos int, sub []int) []int {
	out := make([]int, 0, len(master)+len(sub))
	out = append(out, master[:pos]...)
	out = append(out, sub...)
	out = append(out, master[pos:]...)
	return out
}
