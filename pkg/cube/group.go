package cube

import (
	"fmt"

	"github.com/vladimir-kraus/numcube/pkg/cube/engine"
)

// Group partitions positions along the named axis by label equality,
// reduces each partition with the named reducer, and returns a cube whose
// corresponding axis is an Index axis with one entry per distinct label, in
// first-occurrence order. Only the order-insensitive builtin reducers
// ("sum", "mean", "min", "max", "all", "any") are accepted.
func (c *Cube) Group(axisName, reducer string) (*Cube, error) {
	red, ok := builtinReducers[reducer]
	if !ok {
		return nil, fmt.Errorf("cube: reducer %q is not order-insensitive: %w", reducer, ErrNonGroupableReducer)
	}
	pos := c.axes.Find(axisName)
	if pos < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", axisName, ErrAxisNotFound)
	}
	axis := c.axes[pos]

	var order Labels
	groups := make(map[any][]int, axis.Len())
	for i := 0; i < axis.Len(); i++ {
		label := axis.At(i)
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}

	parts := make([]*engine.Tensor, len(order))
	for k, label := range order {
		sub, err := c.values.TakeAlong(pos, groups[label])
		if err != nil {
			return nil, err
		}
		reduced, err := red(sub, pos)
		if err != nil {
			return nil, err
		}
		parts[k], err = reduced.Expand(pos)
		if err != nil {
			return nil, err
		}
	}
	values, err := engine.Concat(pos, parts...)
	if err != nil {
		return nil, err
	}

	grouped, err := newAxis(axis.Name(), KindIndex, order)
	if err != nil {
		return nil, err
	}
	axes := c.axes.clone()
	axes[pos] = grouped
	return &Cube{axes: axes, values: values}, nil
}
