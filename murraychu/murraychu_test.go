package murraychu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
)

func denseInstance(t *testing.T, truckRows, droneRows [][]float64) *tspd.Instance {
	t.Helper()
	n := len(truckRows)
	truck, err := distance.NewDenseFromRows(truckRows)
	require.NoError(t, err)
	drone, err := distance.NewDenseFromRows(droneRows)
	require.NoError(t, err)
	locs := make([]tspd.Location, n)
	for i := range locs {
		locs[i] = tspd.Location{ID: "loc", Index: i}
	}
	inst, err := tspd.NewInstance(locs, truck, drone)
	require.NoError(t, err)
	return inst
}

// TestSolveFoldsProfitableDroneFlight mirrors the greedy package's single
// customer check: with a fast drone, the only DroneAction available
// (launch at the depot, land at the depot, fly the sole customer) strictly
// beats the all-truck tour, so Solve must fold it.
func TestSolveFoldsProfitableDroneFlight(t *testing.T) {
	truck := [][]float64{{0, 1}, {1, 0}}
	drone := [][]float64{{0, 0.3}, {0.3, 0}}
	inst := denseInstance(t, truck, drone)

	sol, err := Solve(inst, []int{0, 1, 0}, Options{}, nil)
	require.NoError(t, err)
	require.NoError(t, sol.Validate(inst))
	require.Len(t, sol.Operations, 1)
	assert.Equal(t, tspd.Operation{Start: 0, End: 0, Fly: 1}, sol.Operations[0])
}

// TestSolveLeavesUnprofitableFlightAlone checks the symmetric case: a slow
// drone never beats the all-truck tour, so no move is ever committed.
func TestSolveLeavesUnprofitableFlightAlone(t *testing.T) {
	truck := [][]float64{{0, 1}, {1, 0}}
	drone := [][]float64{{0, 2}, {2, 0}}
	inst := denseInstance(t, truck, drone)

	sol, err := Solve(inst, []int{0, 1, 0}, Options{}, nil)
	require.NoError(t, err)
	require.Len(t, sol.Operations, 2)
	for _, op := range sol.Operations {
		assert.Equal(t, tspd.NoFly, op.Fly)
	}
}

// TestSolveRejectsMalformedOrder checks order-shape validation mirrors the
// other fixed-order-consuming packages.
func TestSolveRejectsMalformedOrder(t *testing.T) {
	uniform := [][]float64{
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
	inst := denseInstance(t, uniform, uniform)

	_, err := Solve(inst, []int{1, 2, 0}, Options{}, nil)
	assert.ErrorIs(t, err, tspd.ErrInvalidInput)

	_, err = Solve(inst, []int{0, 1, 1, 2, 0}, Options{}, nil)
	assert.ErrorIs(t, err, tspd.ErrNonAtomicInput)
}

// TestSolveNeverWorsensTheStartingTour builds a five-location Euclidean
// instance with several competing candidate moves and checks the aggregate
// invariant the local search guarantees by construction: every committed
// move strictly improves total cost, so the final solution can never cost
// more than the starting all-truck tour.
func TestSolveNeverWorsensTheStartingTour(t *testing.T) {
	pts := []distance.Point{
		{X: 0, Y: 0}, // depot
		{X: 1, Y: 0},
		{X: 2, Y: 1},
		{X: 3, Y: 0},
		{X: 1, Y: 2},
	}
	truck, err := distance.NewEuclidean(pts, 1.0)
	require.NoError(t, err)
	drone, err := distance.NewEuclidean(pts, 2.5)
	require.NoError(t, err)
	locs := make([]tspd.Location, len(pts))
	for i := range locs {
		locs[i] = tspd.Location{ID: "loc", Index: i}
	}
	inst, err := tspd.NewInstance(locs, truck, drone)
	require.NoError(t, err)

	order := []int{0, 1, 2, 3, 4, 0}
	var baseline float64
	for i := 0; i+1 < len(order); i++ {
		baseline += distance.ContextFree(truck, order[i], order[i+1])
	}

	sol, err := Solve(inst, order, Options{}, nil)
	require.NoError(t, err)
	require.NoError(t, sol.Validate(inst))

	stats, err := sol.Evaluate(inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.TotalCost, baseline+tspd.Eps)
}

// TestTruckActionIsSelfInverting exercises the relocate move's undo
// directly: after applying and undoing, every node's prev/next must match
// the original chain exactly.
func TestTruckActionIsSelfInverting(t *testing.T) {
	uniform := make([][]float64, 5)
	for i := range uniform {
		uniform[i] = make([]float64, 5)
		for j := range uniform[i] {
			if i != j {
				uniform[i][j] = 1
			}
		}
	}
	inst := denseInstance(t, uniform, uniform)

	s, err := newSolver(inst, []int{0, 1, 2, 3, 4, 0})
	require.NoError(t, err)

	subject := s.nodes[2]
	target := s.nodes[4]
	oldPrev := subject.prev

	s.truckAction(subject, target)
	assert.Equal(t, 4, subject.prev.loc)

	s.truckAction(subject, oldPrev)
	assert.Equal(t, 1, subject.prev.loc)
	assert.Equal(t, 3, subject.next.loc)
	assert.Equal(t, 2, s.nodes[1].next.loc)
	assert.Equal(t, 2, s.nodes[3].prev.loc)
}

// TestDroneActionIsSelfInverting exercises DroneAction/undoDroneAction the
// same way: after the round trip, the chain and every flight pointer must
// be back to their pre-move state.
func TestDroneActionIsSelfInverting(t *testing.T) {
	uniform := make([][]float64, 5)
	for i := range uniform {
		uniform[i] = make([]float64, 5)
		for j := range uniform[i] {
			if i != j {
				uniform[i][j] = 1
			}
		}
	}
	inst := denseInstance(t, uniform, uniform)

	s, err := newSolver(inst, []int{0, 1, 2, 3, 4, 0})
	require.NoError(t, err)

	subject := s.nodes[2]
	from := s.nodes[1]
	to := s.nodes[3]
	oldPrev, oldNext := subject.prev, subject.next

	s.droneAction(subject, from, to)
	assert.False(t, subject.onChain)
	assert.NotNil(t, from.flightOut)
	assert.NotNil(t, to.flightIn)

	s.undoDroneAction(subject, oldPrev, oldNext)
	assert.True(t, subject.onChain)
	assert.Nil(t, from.flightOut)
	assert.Nil(t, to.flightIn)
	assert.Equal(t, 2, s.nodes[1].next.loc)
	assert.Equal(t, 2, s.nodes[3].prev.loc)
}

// TestForEachDroneCandidateStopsAtExistingFlight checks the scan's
// boundary behavior: once a flight already occupies a stop, the inner
// walk must not propose landing any further candidate past it.
func TestForEachDroneCandidateStopsAtExistingFlight(t *testing.T) {
	uniform := make([][]float64, 6)
	for i := range uniform {
		uniform[i] = make([]float64, 6)
		for j := range uniform[i] {
			if i != j {
				uniform[i][j] = 1
			}
		}
	}
	inst := denseInstance(t, uniform, uniform)

	s, err := newSolver(inst, []int{0, 1, 2, 3, 4, 5, 0})
	require.NoError(t, err)

	// Install a flight launching at 1 and landing at 3 (passenger 2).
	s.droneAction(s.nodes[2], s.nodes[1], s.nodes[3])

	// Walking forward from the depot, node 1 is a legal landing (it already
	// launches a flight, but a node may both land and launch), but the walk
	// must stop there — node 3 (which already has an incoming flight) must
	// never be proposed as a landing reachable from the depot.
	var proposed []int
	s.forEachDroneCandidate(func(subject, from, to *node) bool {
		if from == s.depot && subject == s.nodes[4] {
			proposed = append(proposed, to.loc)
		}
		return true
	})
	assert.Equal(t, []int{1}, proposed)
}
