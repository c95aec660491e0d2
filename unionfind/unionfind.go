// Package unionfind implements a disjoint-set forest over integer location
// indices, grounded on prim_kruskal.Kruskal's inline DSU (lvlath) but
// generalized from string vertex IDs to the dense [0, n) index space used
// throughout this module, and used by package seed to build the MST-based
// initial tour.
package unionfind

// UnionFind is a disjoint-set forest over {0, ..., n-1} with path
// compression and implicit unioning: the loser's root becomes a child of
// the winner's root (size-based, not rank-based — the winner is whichever
// root has the larger tree, matching the spec's "loser becomes a child of
// the winner" rule rather than rank comparison).
type UnionFind struct {
	parent []int
	size   []int
}

// New returns a UnionFind over n singleton sets {0}, {1}, ..., {n-1}.
//
// Complexity: O(n).
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Find returns the representative (root) of i's set, compressing the path
// from i to the root as it walks up.
//
// Complexity: amortized O(α(n)).
func (uf *UnionFind) Find(i int) int {
	root := i
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	// Path compression: point every visited node directly at root.
	for uf.parent[i] != root {
		uf.parent[i], i = root, uf.parent[i]
	}
	return root
}

// SameSet reports whether i and j belong to the same set.
//
// Complexity: amortized O(α(n)).
func (uf *UnionFind) SameSet(i, j int) bool {
	return uf.Find(i) == uf.Find(j)
}

// Union merges the sets containing i and j. It reports whether a merge
// happened (false if i and j were already in the same set).
//
// Complexity: amortized O(α(n)).
func (uf *UnionFind) Union(i, j int) bool {
	ri, rj := uf.Find(i), uf.Find(j)
	if ri == rj {
		return false
	}
	// The smaller tree's root becomes a child of the larger tree's root.
	if uf.size[ri] < uf.size[rj] {
		ri, rj = rj, ri
	}
	uf.parent[rj] = ri
	uf.size[ri] += uf.size[rj]
	return true
}
