package cube

import (
	"fmt"
)

// Filter restricts the named axis to the given labels, preserving the
// axis's own order. Labels absent from the axis fail with ErrLabelNotFound.
func (c *Cube) Filter(axisName string, labels ...any) (*Cube, error) {
	pos := c.axes.Find(axisName)
	if pos < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", axisName, ErrAxisNotFound)
	}
	axis, sel, err := c.axes[pos].Filter(labels)
	if err != nil {
		return nil, err
	}
	return c.replaceAxis(pos, axis, sel)
}

// Take restricts the named axis to the given positional indices, in the
// given order. An Index axis that would acquire duplicate labels is demoted
// to Series.
func (c *Cube) Take(axisName string, positions ...int) (*Cube, error) {
	pos := c.axes.Find(axisName)
	if pos < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", axisName, ErrAxisNotFound)
	}
	axis, err := c.axes[pos].take(positions, true)
	if err != nil {
		return nil, err
	}
	return c.replaceAxis(pos, axis, positions)
}

// Compress restricts the named axis to the positions where mask is true.
// The mask length must equal the axis length.
func (c *Cube) Compress(axisName string, mask ...bool) (*Cube, error) {
	pos := c.axes.Find(axisName)
	if pos < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", axisName, ErrAxisNotFound)
	}
	old := c.axes[pos]
	if len(mask) != old.Len() {
		return nil, fmt.Errorf("cube: axis %q: mask length %d does not match axis length %d: %w", axisName, len(mask), old.Len(), ErrShapeMismatch)
	}
	sel := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			sel = append(sel, i)
		}
	}
	axis, err := old.take(sel, false)
	if err != nil {
		return nil, err
	}
	return c.replaceAxis(pos, axis, sel)
}

// replaceAxis swaps the axis at pos for its restricted version and gathers
// the tensor by the positional selector.
func (c *Cube) replaceAxis(pos int, axis *Axis, sel []int) (*Cube, error) {
	values, err := c.values.TakeAlong(pos, sel)
	if err != nil {
		return nil, err
	}
	axes := c.axes.clone()
	axes[pos] = axis
	return &Cube{axes: axes, values: values}, nil
}
