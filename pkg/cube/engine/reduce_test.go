package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

func TestSumAlong(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 4}, []int{10, 20, 30, 40, 50, 60, 70, 80})

	rows, err := ts.SumAlong(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, rows.Shape())
	data, err := rows.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 260}, data)

	cols, err := ts.SumAlong(0)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, cols.Shape())
	data, err = cols.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{60, 80, 100, 120}, data)

	_, err = ts.SumAlong(2)
	assert.Error(t, err)
}

func TestSumAll(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 2}, []float64{1, 2, 3, 4})
	res, err := ts.SumAll()
	require.NoError(t, err)
	assert.True(t, res.IsScalar())
	data, err := res.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, data)
}

func TestMinMaxAlong(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 3}, []float64{3, 1, 2, 6, 5, 4})

	mx, err := ts.MaxAlong(1)
	require.NoError(t, err)
	data, err := mx.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, data)

	mn, err := ts.MinAlong(1)
	require.NoError(t, err)
	data, err = mn.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, data)
}

func TestMeanAlong(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 2}, []int{1, 2, 3, 5})
	res, err := ts.MeanAlong(1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, res.Dtype())
	data, err := res.Float64s()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, data[0], 1e-9)
	assert.InDelta(t, 4, data[1], 1e-9)
}

func TestReduceAlong(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	// reduce each lane to its spread with a custom function
	res, err := ts.ReduceAlong(1, func(lane []float64) float64 {
		return floats.Max(lane) - floats.Min(lane)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Shape())
	data, err := res.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, data)

	// lanes run along the reduced axis, not across it
	res, err = ts.ReduceAlong(0, floats.Sum)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, res.Shape())
	data, err = res.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, data)
}

func TestReduceAlongToScalar(t *testing.T) {
	ts := mustFromSlice(t, []int{3}, []float64{1, 2, 3})
	res, err := ts.ReduceAlong(0, floats.Sum)
	require.NoError(t, err)
	assert.True(t, res.IsScalar())
	data, err := res.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, data)
}

func TestBoolReduceAlong(t *testing.T) {
	ts := mustFromSlice(t, []int{2, 2}, []bool{true, true, true, false})

	all, err := ts.BoolReduceAlong(1, func(lane []bool) bool {
		for _, v := range lane {
			if !v {
				return false
			}
		}
		return true
	})
	require.NoError(t, err)
	data, err := all.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, data)

	// numeric input reads nonzero as true
	nums := mustFromSlice(t, []int{3}, []int{0, 2, 0})
	any, err := nums.BoolReduceAlong(0, func(lane []bool) bool {
		for _, v := range lane {
			if v {
				return true
			}
		}
		return false
	})
	require.NoError(t, err)
	data, err = any.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, data)
}
