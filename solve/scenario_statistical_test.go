package solve

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/distance"
	"github.com/katalvlaran/tspd/fixedorder"
	"github.com/katalvlaran/tspd/greedy"
	"github.com/katalvlaran/tspd/murraychu"
	"github.com/katalvlaran/tspd/seed"
)

// randomGeometricInstance scatters n points uniformly over a 100x100 square
// and wires up truck/drone Euclidean providers at the given speeds. Seeded
// deterministically via math/rand/v2's PCG the same way seed.RandomTour
// mixes its seed value, so repeated test runs see the same 100 instances.
func randomGeometricInstance(t *testing.T, seedValue uint64, n int, truckSpeed, droneSpeed float64) *tspd.Instance {
	t.Helper()
	rng := rand.New(rand.NewPCG(seedValue, seedValue^0x9e3779b97f4a7c15))
	pts := make([]distance.Point, n)
	for i := range pts {
		pts[i] = distance.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}
	return buildGeometricInstance(t, pts, truckSpeed, droneSpeed)
}

// truckOnlyTourCost is the cost of driving order with the truck alone, no
// drone leg, used as the MST-seed baseline both statistical scenarios
// compare their heuristics against.
func truckOnlyTourCost(inst *tspd.Instance, order []int) float64 {
	truck := inst.TruckDistance()
	var total float64
	for i := 0; i+1 < len(order); i++ {
		total += distance.ContextFree(truck, order[i], order[i+1])
	}
	return total
}

// Scenario 4 (spec.md §8): for 100 random geometric instances of size 20,
// every heuristic (DP / greedy / Murray-Chu) applied to the MST seed must
// return a solution with cost <= MST-tour cost. Each heuristic only ever
// accepts a move that strictly lowers cost, so none of the three can
// finish worse than the seed they started from.
func TestScenarioMSTSeededHeuristicMonotonicity(t *testing.T) {
	const numInstances = 100
	const instanceSize = 20

	for i := 0; i < numInstances; i++ {
		inst := randomGeometricInstance(t, uint64(i), instanceSize, 1.0, 2.0)
		order, err := seed.MST(inst)
		require.NoError(t, err)
		baseline := truckOnlyTourCost(inst, order)

		dpSol, err := fixedorder.Solve(inst, order)
		require.NoError(t, err)
		dpStats, err := dpSol.Evaluate(inst)
		require.NoError(t, err)
		assert.LessOrEqual(t, dpStats.TotalCost, baseline+tspd.Eps, "instance %d: DP regressed past the MST seed", i)

		greedySol, err := greedy.Solve(inst, order, greedy.Options{TwoPass: true}, nil)
		require.NoError(t, err)
		greedyStats, err := greedySol.Evaluate(inst)
		require.NoError(t, err)
		assert.LessOrEqual(t, greedyStats.TotalCost, baseline+tspd.Eps, "instance %d: greedy regressed past the MST seed", i)

		mcSol, err := murraychu.Solve(inst, order, murraychu.Options{}, nil)
		require.NoError(t, err)
		mcStats, err := mcSol.Evaluate(inst)
		require.NoError(t, err)
		assert.LessOrEqual(t, mcStats.TotalCost, baseline+tspd.Eps, "instance %d: Murray-Chu regressed past the MST seed", i)
	}
}

// Scenario 5 (spec.md §8): on 100 random geometric instances of size 20,
// Murray-Chu strictly improves upon the MST seed and places at least one
// fly node in >= 80% of runs. Drawn from a disjoint seed range than
// scenario 4's instances so the two statistical scenarios don't silently
// share samples.
func TestScenarioMurrayChuImprovesOverMSTSeed(t *testing.T) {
	const numInstances = 100
	const instanceSize = 20
	const requiredFraction = 0.8

	strictlyImproved := 0
	flewAtLeastOne := 0
	for i := 0; i < numInstances; i++ {
		inst := randomGeometricInstance(t, uint64(i)+numInstances, instanceSize, 1.0, 2.0)
		order, err := seed.MST(inst)
		require.NoError(t, err)
		baseline := truckOnlyTourCost(inst, order)

		mcSol, err := murraychu.Solve(inst, order, murraychu.Options{}, nil)
		require.NoError(t, err)
		require.NoError(t, mcSol.Validate(inst))
		mcStats, err := mcSol.Evaluate(inst)
		require.NoError(t, err)

		assert.LessOrEqual(t, mcStats.TotalCost, baseline+tspd.Eps, "instance %d: Murray-Chu regressed past the MST seed", i)
		if mcStats.TotalCost < baseline-tspd.Eps {
			strictlyImproved++
		}
		for _, op := range mcSol.Operations {
			if op.Fly != tspd.NoFly {
				flewAtLeastOne++
				break
			}
		}
	}

	required := int(requiredFraction * numInstances)
	assert.GreaterOrEqual(t, strictlyImproved, required, "Murray-Chu should strictly improve on the MST seed in at least 80%% of runs")
	assert.GreaterOrEqual(t, flewAtLeastOne, required, "Murray-Chu should place at least one fly node in at least 80%% of runs")
}
