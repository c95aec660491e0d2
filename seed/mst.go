// Package seed builds initial feasible tours — a permutation of every
// location, starting and ending at the depot — for the heuristic solvers in
// packages fixedorder, greedy, improve, and murraychu. These are the "MST
// and random starting tours" spec.md §1 treats as black-box initial-
// solution providers; this package supplies minimal, teacher-grounded
// implementations of both.
//
// Grounded on tsp/mst.go's dense O(n^2) Prim (MST, below) and
// prim_kruskal/kruskal.go's union-find-based Kruskal (Kruskal, below);
// both shortcut the resulting tree into a Hamiltonian order the way
// tsp/tour.go's ShortcutEulerianToHamiltonian skips already-visited nodes
// during a walk — here a plain preorder walk of a tree, which by
// construction never revisits a vertex.
package seed

import (
	"math"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
)

// MST builds an initial tour by running Prim's O(n^2) algorithm over
// inst's truck-distance matrix, rooted at the depot, then shortcutting a
// depot-rooted preorder walk of the resulting tree into a Hamiltonian
// order. Grounded on tsp/mst.go's mstDense.
//
// Complexity: O(n^2) time, O(n) space.
func MST(inst tspd.InstanceView) ([]int, error) {
	n := inst.N()
	if n == 0 {
		return nil, tspd.ErrInvalidInput
	}
	if n == 1 {
		return []int{0, 0}, nil
	}
	truck := inst.TruckDistance()

	inTree := make([]bool, n)
	bestCost := make([]float64, n)
	parent := make([]int, n)
	for i := range bestCost {
		bestCost[i] = math.Inf(1)
		parent[i] = -1
	}
	bestCost[0] = 0

	adj := make([][]int, n)
	for iter := 0; iter < n; iter++ {
		u := -1
		min := math.Inf(1)
		for v := 0; v < n; v++ {
			if !inTree[v] && bestCost[v] < min {
				min = bestCost[v]
				u = v
			}
		}
		if u == -1 {
			// Some vertex is unreachable from the tree built so far.
			return nil, tspd.ErrInfeasible
		}
		inTree[u] = true
		if parent[u] != -1 {
			adj[u] = append(adj[u], parent[u])
			adj[parent[u]] = append(adj[parent[u]], u)
		}
		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			w := distance.ContextFree(truck, u, v)
			if w < bestCost[v] {
				bestCost[v] = w
				parent[v] = u
			}
		}
	}

	return shortcutPreorder(adj, n), nil
}

// shortcutPreorder walks adj (a spanning tree's adjacency lists) depth-
// first from the depot, recording each vertex the first time it is
// entered, then closes the tour back at the depot. Neighbors are pushed in
// reverse so each vertex's neighbors are explored in their adjacency-list
// order, keeping the walk deterministic.
func shortcutPreorder(adj [][]int, n int) []int {
	visited := make([]bool, n)
	order := make([]int, 0, n+1)
	stack := []int{0}
	visited[0] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, u)
		for i := len(adj[u]) - 1; i >= 0; i-- {
			v := adj[u][i]
			if !visited[v] {
				visited[v] = true
				stack = append(stack, v)
			}
		}
	}
	order = append(order, 0)
	return order
}
