package tspd

import "github.com/katalvlaran/tspd/bitset"

// Simplify removes redundant revisits from sol (spec.md §4.12): scanning
// operations in order and tracking which locations have already been
// covered, it drops any interior drive-path node that was already
// visited by an earlier operation, and drops an operation's fly node if
// that customer was already covered (the drone detour was unnecessary;
// the operation collapses to a plain truck drive). An operation's Start
// and End are never dropped, mirroring tsp/tour.go's
// ShortcutEulerianToHamiltonian: only interior revisits shortcut away,
// the walk's own endpoints stay pinned.
//
// Simplify never increases total cost: a dropped drive-path node removes
// dead driving distance the truck no longer needs to traverse twice, and
// a dropped fly node removes an unnecessary drone sortie, leaving the
// unavoidable truck drive between Start and End as the operation's new
// (and only) cost. It does not mutate sol; it returns a new Solution.
func Simplify(sol Solution) Solution {
	covered := bitset.Empty
	if len(sol.Operations) > 0 {
		covered = bitset.Singleton(sol.Operations[0].Start)
	}

	out := make([]Operation, 0, len(sol.Operations))
	for _, op := range sol.Operations {
		var drivePath []int
		for _, v := range op.DrivePath {
			if bitset.Contains(covered, v) {
				continue
			}
			drivePath = append(drivePath, v)
			covered = bitset.Add(covered, v)
		}

		fly := op.Fly
		if fly != NoFly {
			if bitset.Contains(covered, fly) {
				fly = NoFly
			} else {
				covered = bitset.Add(covered, fly)
			}
		}

		out = append(out, Operation{Start: op.Start, DrivePath: drivePath, End: op.End, Fly: fly})
		covered = bitset.Add(covered, op.End)
	}
	return Solution{Operations: out}
}
