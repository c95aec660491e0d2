package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(n int) *Dense {
	d, err := NewDense(n)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDenseAtSetRoundTrip(t *testing.T) {
	d := square(3)
	require.NoError(t, d.Set(0, 1, 4.5))
	assert.Equal(t, 4.5, d.At(0, 1))
	assert.Equal(t, 0.0, d.At(1, 2))
}

func TestDenseSetOutOfRange(t *testing.T) {
	d := square(2)
	err := d.Set(2, 0, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDenseLegPropagatesNaNAsInf(t *testing.T) {
	d := square(2)
	require.NoError(t, d.Set(0, 1, math.NaN()))
	assert.True(t, math.IsInf(d.Leg(0, 1, Undefined, Undefined, 0), 1))
}

func TestContextFreeHelpers(t *testing.T) {
	d := square(3)
	require.NoError(t, d.Set(0, 1, 2))
	require.NoError(t, d.Set(1, 2, 3))
	assert.Equal(t, 2.0, ContextFree(d, 0, 1))
	assert.Equal(t, 2.0, DepartVisit(d, 0, 1))
	assert.Equal(t, 3.0, VisitArrive(d, 1, 2, 2))
	assert.Equal(t, 2.0, DepartArrive(d, 0, 1))
}

func TestFlyDistanceSumsTwoLegs(t *testing.T) {
	d := square(3)
	require.NoError(t, d.Set(0, 2, 5))
	require.NoError(t, d.Set(2, 1, 7))
	assert.Equal(t, 12.0, FlyDistance(d, 0, 1, 2))
}

func TestFlyDistancePropagatesInf(t *testing.T) {
	d := square(3)
	require.NoError(t, d.Set(0, 2, math.Inf(1)))
	require.NoError(t, d.Set(2, 1, 7))
	assert.True(t, math.IsInf(FlyDistance(d, 0, 1, 2), 1))
}

func TestPathDistanceSumsSequenceAndStopsOnInf(t *testing.T) {
	d := square(4)
	require.NoError(t, d.Set(0, 1, 1))
	require.NoError(t, d.Set(1, 2, 1))
	require.NoError(t, d.Set(2, 3, 1))
	total, ok := PathDistance(d, []int{0, 1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, 3.0, total)

	require.NoError(t, d.Set(1, 2, math.Inf(1)))
	total, ok = PathDistance(d, []int{0, 1, 2, 3})
	assert.False(t, ok)
	assert.True(t, math.IsInf(total, 1))
}

func TestPathDistanceOfSingleLegIsMinimal(t *testing.T) {
	d := square(2)
	require.NoError(t, d.Set(0, 1, 9))
	total, ok := PathDistance(d, []int{0, 1})
	require.True(t, ok)
	assert.Equal(t, 9.0, total)
}

func TestFloydWarshallClosesTransitively(t *testing.T) {
	d := square(3)
	require.NoError(t, d.Set(0, 1, 1))
	require.NoError(t, d.Set(1, 2, 1))
	FloydWarshallClosure(d)
	assert.Equal(t, 2.0, d.At(0, 2))
	assert.Equal(t, 0.0, d.At(0, 0))
}

func TestEuclideanScalesBySpeed(t *testing.T) {
	e, err := NewEuclidean([]Point{{0, 0}, {3, 4}}, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, ContextFree(e, 0, 1), 1e-9)
}

func TestNewEuclideanRejectsNonPositiveSpeed(t *testing.T) {
	_, err := NewEuclidean([]Point{{0, 0}}, 0)
	assert.Error(t, err)
}
