package cube

import (
	"fmt"
	"sort"

	"github.com/vladimir-kraus/numcube/pkg/cube/engine"
)

// axisReducer reduces a tensor along one axis.
type axisReducer func(t *engine.Tensor, axis int) (*engine.Tensor, error)

var builtinReducers = map[string]axisReducer{
	"sum": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.SumAlong(axis)
	},
	"mean": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.MeanAlong(axis)
	},
	"min": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.MinAlong(axis)
	},
	"max": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.MaxAlong(axis)
	},
	"all": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.BoolReduceAlong(axis, func(lane []bool) bool {
			for _, v := range lane {
				if !v {
					return false
				}
			}
			return true
		})
	},
	"any": func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.BoolReduceAlong(axis, func(lane []bool) bool {
			for _, v := range lane {
				if v {
					return true
				}
			}
			return false
		})
	},
}

// Sum reduces the named axes by summation. With no names, every axis is
// reduced and the result is a rank-0 cube. The dtype is preserved.
func (c *Cube) Sum(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["sum"], axes, false)
}

// SumKeep sums away every axis except the named ones.
func (c *Cube) SumKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["sum"], keep, true)
}

// Mean reduces the named axes by arithmetic mean. The result is float64.
func (c *Cube) Mean(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["mean"], axes, false)
}

// MeanKeep averages away every axis except the named ones.
func (c *Cube) MeanKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["mean"], keep, true)
}

// Min reduces the named axes by minimum.
func (c *Cube) Min(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["min"], axes, false)
}

// MinKeep takes the minimum over every axis except the named ones.
func (c *Cube) MinKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["min"], keep, true)
}

// Max reduces the named axes by maximum.
func (c *Cube) Max(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["max"], axes, false)
}

// MaxKeep takes the maximum over every axis except the named ones.
func (c *Cube) MaxKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["max"], keep, true)
}

// All reduces the named axes by conjunction. Numeric input is read as
// nonzero-is-true; the result is a bool cube.
func (c *Cube) All(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["all"], axes, false)
}

// AllKeep conjoins every axis except the named ones.
func (c *Cube) AllKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["all"], keep, true)
}

// Any reduces the named axes by disjunction.
func (c *Cube) Any(axes ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["any"], axes, false)
}

// AnyKeep disjoins every axis except the named ones.
func (c *Cube) AnyKeep(keep ...string) (*Cube, error) {
	return c.reduceNamed(builtinReducers["any"], keep, true)
}

// Reduce applies a caller-supplied reducer mapping a one-dimensional lane
// to a scalar along the named axes. With several names the reducer is
// applied one axis at a time, starting from the last of them in the cube's
// axis order. The result is float64.
func (c *Cube) Reduce(fn func([]float64) float64, axes ...string) (*Cube, error) {
	if fn == nil {
		return nil, fmt.Errorf("cube: nil reducer")
	}
	red := func(t *engine.Tensor, axis int) (*engine.Tensor, error) {
		return t.ReduceAlong(axis, fn)
	}
	return c.reduceNamed(red, axes, false)
}

// reduceNamed reduces along the resolved axis positions, highest position
// first so earlier positions stay valid, and removes the reduced axes from
// the axis list in their original places.
func (c *Cube) reduceNamed(red axisReducer, names []string, keep bool) (*Cube, error) {
	positions, err := c.resolveReduced(names, keep)
	if err != nil {
		return nil, err
	}
	values := c.values
	for _, pos := range positions {
		values, err = red(values, pos)
		if err != nil {
			return nil, err
		}
	}
	axes := make(Axes, 0, len(c.axes)-len(positions))
	reduced := make(map[int]struct{}, len(positions))
	for _, pos := range positions {
		reduced[pos] = struct{}{}
	}
	for i, a := range c.axes {
		if _, ok := reduced[i]; !ok {
			axes = append(axes, a)
		}
	}
	return &Cube{axes: axes, values: values}, nil
}

// resolveReduced maps axis names to the positions to reduce, sorted in
// descending order. In keep mode the named axes are the ones to preserve.
func (c *Cube) resolveReduced(names []string, keep bool) ([]int, error) {
	if !keep && len(names) == 0 {
		positions := make([]int, len(c.axes))
		for i := range positions {
			positions[i] = len(c.axes) - 1 - i
		}
		return positions, nil
	}
	named := make(map[int]struct{}, len(names))
	for _, name := range names {
		pos := c.axes.Find(name)
		if pos < 0 {
			return nil, fmt.Errorf("cube: axis %q: %w", name, ErrAxisNotFound)
		}
		named[pos] = struct{}{}
	}
	var positions []int
	for i := range c.axes {
		_, isNamed := named[i]
		if isNamed != keep {
			positions = append(positions, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	return positions, nil
}
