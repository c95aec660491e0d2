package tspd

import (
	"math"
	"testing"

	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationCoveredSetIncludesFly(t *testing.T) {
	op := Operation{Start: 0, DrivePath: []int{1}, End: 3, Fly: 2}
	covered := op.CoveredSet()
	for _, i := range []int{0, 1, 2, 3} {
		assert.True(t, bitset.Contains(covered, i))
	}
}

func TestOperationValidateRejectsFlyInDrivePath(t *testing.T) {
	op := Operation{Start: 0, DrivePath: []int{1, 2}, End: 3, Fly: 2}
	assert.ErrorIs(t, op.Validate(), ErrInvalidInput)
}

func TestOperationValidateRejectsFlyAtEndpoint(t *testing.T) {
	op := Operation{Start: 0, End: 3, Fly: 3}
	assert.ErrorIs(t, op.Validate(), ErrInvalidInput)
}

func TestOperationCostWithoutFlyIsTruckOnly(t *testing.T) {
	d, err := distance.NewDense(3)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 1, 2))
	require.NoError(t, d.Set(1, 2, 3))
	inst, err := NewInstance([]Location{{Index: 0}, {Index: 1}, {Index: 2}}, d, d)
	require.NoError(t, err)

	op := Operation{Start: 0, DrivePath: []int{1}, End: 2, Fly: NoFly}
	truck, drone, total := op.Cost(inst)
	assert.Equal(t, 5.0, truck)
	assert.Equal(t, 0.0, drone)
	assert.Equal(t, 5.0, total)
}

func TestOperationCostTakesMaxOfTruckAndDrone(t *testing.T) {
	truck, err := distance.NewDense(3)
	require.NoError(t, err)
	require.NoError(t, truck.Set(0, 2, 10))
	drone, err := distance.NewDense(3)
	require.NoError(t, err)
	require.NoError(t, drone.Set(0, 1, 1))
	require.NoError(t, drone.Set(1, 2, 1))
	inst, err := NewInstance([]Location{{Index: 0}, {Index: 1}, {Index: 2}}, truck, drone)
	require.NoError(t, err)

	op := Operation{Start: 0, End: 2, Fly: 1}
	truckCost, droneCost, total := op.Cost(inst)
	assert.Equal(t, 10.0, truckCost)
	assert.Equal(t, 2.0, droneCost)
	assert.Equal(t, 10.0, total)
}

func TestOperationCostPropagatesInfiniteTruckLeg(t *testing.T) {
	truck, err := distance.NewDense(2)
	require.NoError(t, err)
	require.NoError(t, truck.Set(0, 1, math.Inf(1)))
	drone, err := distance.NewDense(2)
	require.NoError(t, err)
	inst, err := NewInstance([]Location{{Index: 0}, {Index: 1}}, truck, drone)
	require.NoError(t, err)

	op := Operation{Start: 0, End: 1, Fly: NoFly}
	_, _, total := op.Cost(inst)
	assert.True(t, math.IsInf(total, 1))
}

func TestOperationEntryKeyAndCost(t *testing.T) {
	e := OperationEntry{First: 0, Last: 3, Covered: bitset.Full(4), Fly: 2, DriveCost: 4, FlyCost: 6}
	assert.Equal(t, 6.0, e.Cost())
	assert.Equal(t, Key{First: 0, Last: 3, Covered: bitset.Full(4), Fly: 2}, e.Key())
}
