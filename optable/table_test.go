package optable

import (
	"testing"

	"github.com/katalvlaran/tspd"
	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleInstance is the canonical 3-location example from spec.md §9: a
// depot and two customers, where the right customer is cheapest served by
// drone fly.
func triangleInstance(t *testing.T) *tspd.Instance {
	t.Helper()
	truck, err := distance.NewDense(3)
	require.NoError(t, err)
	for _, leg := range [][3]float64{{0, 1, 4}, {1, 0, 4}, {1, 2, 4}, {2, 1, 4}, {0, 2, 8}, {2, 0, 8}} {
		require.NoError(t, truck.Set(int(leg[0]), int(leg[1]), leg[2]))
	}
	drone, err := distance.NewDense(3)
	require.NoError(t, err)
	for _, leg := range [][3]float64{{0, 1, 3}, {1, 0, 3}, {1, 2, 3}, {2, 1, 3}, {0, 2, 1}, {2, 0, 1}} {
		require.NoError(t, drone.Set(int(leg[0]), int(leg[1]), leg[2]))
	}
	inst, err := tspd.NewInstance([]tspd.Location{{Index: 0}, {Index: 1}, {Index: 2}}, truck, drone)
	require.NoError(t, err)
	return inst
}

func TestBuildSeedsOneEntryPerLocation(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxCardinality: -1}, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		ops := table.GetOperations(i, i)
		require.NotEmpty(t, ops)
		assert.Equal(t, bitset.Singleton(i), ops[0].Covered)
		assert.Equal(t, 0.0, ops[0].DriveCost)
	}
}

func TestBuildExpandsTruckOnlyPaths(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxCardinality: -1}, nil)
	require.NoError(t, err)
	ops := table.GetOperations(0, 2)
	require.NotEmpty(t, ops)
	found := false
	for _, op := range ops {
		if op.Fly == tspd.NoFly && op.Covered == bitset.Full(3) {
			found = true
			assert.InDelta(t, 8.0, op.DriveCost, 1e-9)
		}
	}
	assert.True(t, found, "expected a truck-only 0->1->2 entry covering all locations")
}

func TestBuildAugmentsWithFlyNode(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxCardinality: -1}, nil)
	require.NoError(t, err)
	ops := table.GetOperations(0, 0)
	require.NotEmpty(t, ops)
	var flyEntry *tspd.OperationEntry
	for i := range ops {
		if ops[i].Fly == 1 && ops[i].Covered == bitset.Full(3) {
			flyEntry = &ops[i]
		}
	}
	require.NotNil(t, flyEntry, "expected depot round-trip with customer 1 flown")
	assert.InDelta(t, 6.0, flyEntry.FlyCost, 1e-9) // 3+3
}

func TestMaxFlyConstraintRejectsExpensiveSortie(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxFly: 1, MaxCardinality: -1}, nil)
	require.NoError(t, err)
	ops := table.GetOperations(0, 2)
	for _, op := range ops {
		if op.Fly != tspd.NoFly {
			assert.LessOrEqual(t, op.FlyCost, 1.0)
		}
	}
}

func TestCardinalityConstraintCapsTruckOnlyCount(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxCardinality: 0}, nil)
	require.NoError(t, err)
	for _, e := range table.All() {
		if e.Fly == tspd.NoFly {
			continue
		}
		count := truckOnlyCount(bitset.Popcount(e.Covered), e.First, e.Last, e.Fly)
		assert.LessOrEqual(t, count, 0)
	}
}

func TestOperationReconstructsDrivePath(t *testing.T) {
	inst := triangleInstance(t)
	table, err := Build(inst, Constraints{MaxCardinality: -1}, nil)
	require.NoError(t, err)
	ops := table.GetOperations(0, 2)
	for i, e := range table.entries {
		if e.First == 0 && e.Last == 2 && e.Fly == tspd.NoFly && e.Covered == bitset.Full(3) {
			op := table.Operation(i)
			assert.Equal(t, []int{1}, op.DrivePath)
		}
	}
	_ = ops
}

func TestBuildConstraintsUnrestrictedAboveFactorTwo(t *testing.T) {
	inst := triangleInstance(t)
	c := BuildConstraints(inst, 2.0, -1)
	assert.Equal(t, 0.0, c.MaxFly)
}

func TestBuildConstraintsScalesMaxLeg(t *testing.T) {
	inst := triangleInstance(t)
	c := BuildConstraints(inst, 1.5, -1)
	assert.InDelta(t, 4.5, c.MaxFly, 1e-9) // maxLeg=3, factor=1.5
}

func TestCancelledBuildReturnsErrCancelled(t *testing.T) {
	inst := triangleInstance(t)
	cancel := tspd.NewCancel(0)
	cancel.Cancel()
	_, err := Build(inst, Constraints{MaxCardinality: -1}, cancel)
	assert.ErrorIs(t, err, tspd.ErrCancelled)
}
