package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func revenuesCube(t *testing.T) *Cube {
	t.Helper()
	y := mustIndex(t, "year", []int{2014, 2015})
	q := mustIndex(t, "quarter", []string{"Q1", "Q2", "Q3", "Q4"})
	return mustCube(t, []int{10, 20, 30, 40, 50, 60, 70, 80}, y, q)
}

func TestScenarioSumKeep(t *testing.T) {
	revenues := revenuesCube(t)

	kept, err := revenues.SumKeep("year")
	require.NoError(t, err)
	assert.Equal(t, []string{"year"}, kept.Axes().Names())
	assertValues(t, kept, []float64{100, 260})

	reduced, err := revenues.Sum("quarter")
	require.NoError(t, err)
	assert.Equal(t, kept.Axes().Names(), reduced.Axes().Names())
	assertValues(t, reduced, []float64{100, 260})
}

func TestSumAllAxes(t *testing.T) {
	revenues := revenuesCube(t)

	total, err := revenues.Sum()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Rank())
	assertValues(t, total, []float64{360})

	// reducing axis by axis agrees with reducing everything at once
	partial, err := revenues.Sum("year")
	require.NoError(t, err)
	rest, err := partial.Sum("quarter")
	require.NoError(t, err)
	assert.Equal(t, 0, rest.Rank())
	assertValues(t, rest, []float64{360})
}

func TestSumRemovesAxisInPlace(t *testing.T) {
	a := mustIndex(t, "a", []int{1, 2})
	b := mustIndex(t, "b", []int{1, 2, 3})
	c := mustIndex(t, "c", []int{1, 2})
	cu := mustCube(t, []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}, a, b, c)

	res, err := cu.Sum("b")
	require.NoError(t, err)
	// the surviving axes keep their original relative order
	assert.Equal(t, []string{"a", "c"}, res.Axes().Names())
	assertValues(t, res, []float64{9, 12, 27, 30})
}

func TestMean(t *testing.T) {
	revenues := revenuesCube(t)

	mean, err := revenues.Mean("quarter")
	require.NoError(t, err)
	assertValues(t, mean, []float64{25, 65})

	all, err := revenues.Mean()
	require.NoError(t, err)
	assert.Equal(t, 0, all.Rank())
	assertValues(t, all, []float64{45})

	keep, err := revenues.MeanKeep("quarter")
	require.NoError(t, err)
	assert.Equal(t, []string{"quarter"}, keep.Axes().Names())
	assertValues(t, keep, []float64{30, 40, 50, 60})
}

func TestMinMax(t *testing.T) {
	revenues := revenuesCube(t)

	mn, err := revenues.Min("quarter")
	require.NoError(t, err)
	assertValues(t, mn, []float64{10, 50})

	mx, err := revenues.Max("year")
	require.NoError(t, err)
	assertValues(t, mx, []float64{50, 60, 70, 80})

	mxAll, err := revenues.Max()
	require.NoError(t, err)
	assertValues(t, mxAll, []float64{80})
}

func TestAllAny(t *testing.T) {
	y := mustIndex(t, "y", []int{1, 2})
	k := mustIndex(t, "k", []string{"a", "b"})
	c := mustCube(t, []bool{true, false, true, true}, y, k)

	all, err := c.All("k")
	require.NoError(t, err)
	data, err := all.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, data)

	any, err := c.Any("k")
	require.NoError(t, err)
	data, err = any.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, data)

	total, err := c.All()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Rank())
	data, err = total.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, data)
}

func TestReduceCustom(t *testing.T) {
	revenues := revenuesCube(t)

	spread, err := revenues.Reduce(func(lane []float64) float64 {
		return floats.Max(lane) - floats.Min(lane)
	}, "quarter")
	require.NoError(t, err)
	assert.Equal(t, []string{"year"}, spread.Axes().Names())
	assertValues(t, spread, []float64{30, 30})

	_, err = revenues.Reduce(nil, "quarter")
	assert.Error(t, err)
}

func TestReduceUnknownAxis(t *testing.T) {
	revenues := revenuesCube(t)

	_, err := revenues.Sum("month")
	assert.ErrorIs(t, err, ErrAxisNotFound)
	_, err = revenues.SumKeep("month")
	assert.ErrorIs(t, err, ErrAxisNotFound)
}
