package distance

import "math"

// FloydWarshallClosure runs all-pairs shortest paths in place on a Dense
// built from a sparse graph-format instance (spec.md §6): off-diagonal
// zero means "no direct edge" and is first rewritten to +Inf, the diagonal
// is forced to zero, then the classic k-i-j relaxation closes the matrix.
//
// Grounded on matrix/impl_floydwarshall.go's initDistancesInPlace +
// floydWarshallInPlace pair: same zero-to-Inf rewrite, same fixed k,i,j loop
// order for deterministic accumulation, same in-place O(1)-extra-space
// relaxation.
//
// Complexity: O(n^3) time, O(1) extra space.
func FloydWarshallClosure(d *Dense) {
	n := d.n
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				d.data[i*n+j] = 0
				continue
			}
			if d.data[i*n+j] == 0 {
				d.data[i*n+j] = math.Inf(1)
			}
		}
	}

	var baseK, baseI int
	var ik, kj, ij, cand float64
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = d.data[i*n+k]
			if math.IsInf(ik, 1) {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = d.data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				ij = d.data[baseI+j]
				cand = ik + kj
				if cand < ij {
					d.data[baseI+j] = cand
				}
			}
		}
	}
}
