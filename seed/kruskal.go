package seed

import (
	"math"
	"sort"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
	"github.com/katalvlaran/tspd/unionfind"
)

type weightedEdge struct {
	u, v int
	w    float64
}

// Kruskal builds an initial tour the same shape as MST, but via Kruskal's
// algorithm over package unionfind's disjoint-set forest — grounded on
// prim_kruskal/kruskal.go's inline DSU, generalized from string vertex IDs
// to the dense integer location index space this module uses throughout.
// Having two independently-grounded MST constructions lets the
// dominance-pruned operation table and every heuristic be exercised
// against either seed.
//
// Complexity: O(n^2 log n) time (sorting all pairs), O(n^2) space.
func Kruskal(inst tspd.InstanceView) ([]int, error) {
	n := inst.N()
	if n == 0 {
		return nil, tspd.ErrInvalidInput
	}
	if n == 1 {
		return []int{0, 0}, nil
	}
	truck := inst.TruckDistance()

	edges := make([]weightedEdge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := distance.ContextFree(truck, i, j)
			if math.IsInf(w, 1) {
				continue
			}
			edges = append(edges, weightedEdge{u: i, v: j, w: w})
		}
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].w < edges[b].w })

	uf := unionfind.New(n)
	adj := make([][]int, n)
	merged := 0
	for _, e := range edges {
		if merged == n-1 {
			break
		}
		if uf.Union(e.u, e.v) {
			adj[e.u] = append(adj[e.u], e.v)
			adj[e.v] = append(adj[e.v], e.u)
			merged++
		}
	}
	if merged != n-1 {
		// The truck-distance graph is disconnected: no spanning tree exists.
		return nil, tspd.ErrInfeasible
	}

	return shortcutPreorder(adj, n), nil
}
