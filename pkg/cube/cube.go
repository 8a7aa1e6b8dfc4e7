package cube

import (
	"fmt"

	"github.com/vladimir-kraus/numcube/pkg/cube/engine"
)

// Cube is a labeled n-dimensional array: a dense tensor plus an axis list
// of matching rank. Cubes are immutable; every operation returns a fresh
// cube and may share the backing tensor with its source when the sharing is
// unobservable.
type Cube struct {
	axes   Axes
	values *engine.Tensor
}

// New wraps a tensor with the given axes. The tensor rank must equal the
// number of axes and each axis length must match the corresponding tensor
// dimension.
func New(values *engine.Tensor, axes ...*Axis) (*Cube, error) {
	list, err := NewAxes(axes...)
	if err != nil {
		return nil, err
	}
	shape := values.Shape()
	if len(shape) != len(list) {
		return nil, fmt.Errorf("cube: tensor rank %d does not match %d axes: %w", len(shape), len(list), ErrShapeMismatch)
	}
	for i, a := range list {
		if a.Len() != shape[i] {
			return nil, fmt.Errorf("cube: axis %q length %d does not match dimension %d of shape %v: %w", a.Name(), a.Len(), i, shape, ErrShapeMismatch)
		}
	}
	return &Cube{axes: list, values: values}, nil
}

// FromSlice builds a cube from a row-major backing slice, with the shape
// derived from the axis lengths.
func FromSlice[T engine.Element](data []T, axes ...*Axis) (*Cube, error) {
	shape := make([]int, len(axes))
	for i, a := range axes {
		if a == nil {
			return nil, fmt.Errorf("cube: nil axis")
		}
		shape[i] = a.Len()
	}
	values, err := engine.FromSlice(shape, data)
	if err != nil {
		return nil, fmt.Errorf("cube: %w: %v", ErrShapeMismatch, err)
	}
	return New(values, axes...)
}

// Scalar builds a rank-0 cube holding a single value.
func Scalar[T engine.Element](v T) *Cube {
	return &Cube{values: engine.FromScalar(v)}
}

// Axes returns a copy of the cube's axis list.
func (c *Cube) Axes() Axes {
	return c.axes.clone()
}

// Axis returns the axis with the given name.
func (c *Cube) Axis(name string) (*Axis, error) {
	return c.axes.Get(name)
}

// Values returns the backing tensor. It must be treated as read-only.
func (c *Cube) Values() *engine.Tensor {
	return c.values
}

// ValuesCopy returns a deep copy of the backing tensor, safe to modify.
func (c *Cube) ValuesCopy() *engine.Tensor {
	return c.values.Clone()
}

// Float64s returns the cube's elements as float64 in row-major order.
func (c *Cube) Float64s() ([]float64, error) {
	return c.values.Float64s()
}

// Bools returns the cube's elements as booleans in row-major order.
func (c *Cube) Bools() ([]bool, error) {
	return c.values.Bools()
}

// Shape returns the tensor dimensions.
func (c *Cube) Shape() []int {
	return c.values.Shape()
}

// Rank returns the number of axes.
func (c *Cube) Rank() int {
	return len(c.axes)
}

// Transpose returns the cube with axes permuted by position.
func (c *Cube) Transpose(order ...int) (*Cube, error) {
	axes, err := c.axes.Transpose(order)
	if err != nil {
		return nil, err
	}
	values, err := c.values.Transpose(order...)
	if err != nil {
		return nil, err
	}
	return &Cube{axes: axes, values: values}, nil
}

// TransposeNamed returns the cube with axes permuted into the given name
// order.
func (c *Cube) TransposeNamed(names ...string) (*Cube, error) {
	order, err := c.axes.Permutation(names)
	if err != nil {
		return nil, err
	}
	return c.Transpose(order...)
}

// Squeeze removes the named axis, which must have length 1.
func (c *Cube) Squeeze(name string) (*Cube, error) {
	pos := c.axes.Find(name)
	if pos < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", name, ErrAxisNotFound)
	}
	if c.axes[pos].Len() != 1 {
		return nil, fmt.Errorf("cube: axis %q has length %d, cannot squeeze: %w", name, c.axes[pos].Len(), ErrShapeMismatch)
	}
	axes, err := c.axes.Remove(name)
	if err != nil {
		return nil, err
	}
	values, err := c.values.Squeeze(pos)
	if err != nil {
		return nil, err
	}
	return &Cube{axes: axes, values: values}, nil
}

// String renders the cube's axes and shape.
func (c *Cube) String() string {
	return fmt.Sprintf("cube%s%v", c.axes, c.Shape())
}
