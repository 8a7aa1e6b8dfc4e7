package engine

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

// SumAlong reduces the given axis by summation, preserving dtype.
func (t *Tensor) SumAlong(axis int) (*Tensor, error) {
	if err := t.checkReduceAxis(axis); err != nil {
		return nil, err
	}
	res, err := tensor.Sum(t.dense, axis)
	if err != nil {
		return nil, fmt.Errorf("engine: sum along axis %d: %w", axis, err)
	}
	return wrap(res), nil
}

// SumAll reduces every axis by summation, yielding a rank-0 tensor.
func (t *Tensor) SumAll() (*Tensor, error) {
	if t.IsScalar() {
		return t.Clone(), nil
	}
	res, err := tensor.Sum(t.dense)
	if err != nil {
		return nil, fmt.Errorf("engine: sum: %w", err)
	}
	return wrap(res), nil
}

// MaxAlong reduces the given axis by maximum, preserving dtype.
func (t *Tensor) MaxAlong(axis int) (*Tensor, error) {
	if err := t.checkReduceAxis(axis); err != nil {
		return nil, err
	}
	res, err := t.dense.Max(axis)
	if err != nil {
		return nil, fmt.Errorf("engine: max along axis %d: %w", axis, err)
	}
	return wrap(res), nil
}

// MinAlong reduces the given axis by minimum, preserving dtype.
func (t *Tensor) MinAlong(axis int) (*Tensor, error) {
	if err := t.checkReduceAxis(axis); err != nil {
		return nil, err
	}
	res, err := t.dense.Min(axis)
	if err != nil {
		return nil, fmt.Errorf("engine: min along axis %d: %w", axis, err)
	}
	return wrap(res), nil
}

// MeanAlong reduces the given axis by arithmetic mean. The result is always
// float64.
func (t *Tensor) MeanAlong(axis int) (*Tensor, error) {
	return t.ReduceAlong(axis, func(lane []float64) float64 {
		return stat.Mean(lane, nil)
	})
}

// ReduceAlong applies fn to every one-dimensional lane running along axis
// and returns the float64 tensor of results, with that axis removed.
func (t *Tensor) ReduceAlong(axis int, fn func([]float64) float64) (*Tensor, error) {
	if err := t.checkReduceAxis(axis); err != nil {
		return nil, err
	}
	data, err := asFloat64s(t.dense)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	outer, n, inner := laneDims(shape, axis)
	out := make([]float64, outer*inner)
	lane := make([]float64, n)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			for k := 0; k < n; k++ {
				lane[k] = data[(o*n+k)*inner+i]
			}
			out[o*inner+i] = fn(lane)
		}
	}
	return FromSlice(reducedShape(shape, axis), out)
}

// BoolReduceAlong applies fn to boolean lanes along axis. Numeric input is
// read as nonzero-is-true.
func (t *Tensor) BoolReduceAlong(axis int, fn func([]bool) bool) (*Tensor, error) {
	if err := t.checkReduceAxis(axis); err != nil {
		return nil, err
	}
	data, err := asBools(t.dense)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	outer, n, inner := laneDims(shape, axis)
	out := make([]bool, outer*inner)
	lane := make([]bool, n)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			for k := 0; k < n; k++ {
				lane[k] = data[(o*n+k)*inner+i]
			}
			out[o*inner+i] = fn(lane)
		}
	}
	return FromSlice(reducedShape(shape, axis), out)
}

func (t *Tensor) checkReduceAxis(axis int) error {
	if axis < 0 || axis >= t.Rank() {
		return fmt.Errorf("engine: reduction axis %d out of range for rank %d", axis, t.Rank())
	}
	return nil
}

func reducedShape(shape []int, axis int) []int {
	out := make([]int, 0, len(shape)-1)
	out = append(out, shape[:axis]...)
	out = append(out, shape[axis+1:]...)
	return out
}
