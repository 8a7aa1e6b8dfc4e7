package cube

import (
	"fmt"
	"strings"
)

// Axes is an ordered list of axes. Axis names within a list are pairwise
// distinct; the list's length is the rank of the associated cube.
type Axes []*Axis

// NewAxes builds an axis list, rejecting duplicate names.
func NewAxes(axes ...*Axis) (Axes, error) {
	out := make(Axes, 0, len(axes))
	for _, a := range axes {
		var err error
		out, err = out.Insert(a)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Len returns the number of axes.
func (x Axes) Len() int {
	return len(x)
}

// At returns the axis at position i.
func (x Axes) At(i int) *Axis {
	return x[i]
}

// Find returns the position of the axis with the given name, or -1.
func (x Axes) Find(name string) int {
	for i, a := range x {
		if a.name == name {
			return i
		}
	}
	return -1
}

// Get returns the axis with the given name.
func (x Axes) Get(name string) (*Axis, error) {
	if i := x.Find(name); i >= 0 {
		return x[i], nil
	}
	return nil, fmt.Errorf("cube: axis %q: %w", name, ErrAxisNotFound)
}

// Names returns the axis names in order.
func (x Axes) Names() []string {
	out := make([]string, len(x))
	for i, a := range x {
		out[i] = a.name
	}
	return out
}

// Lengths returns the label-vector length of each axis in order.
func (x Axes) Lengths() []int {
	out := make([]int, len(x))
	for i, a := range x {
		out[i] = a.Len()
	}
	return out
}

// Insert returns a new list with the axis appended. A name already present
// in the list fails with ErrDuplicateAxis.
func (x Axes) Insert(a *Axis) (Axes, error) {
	if a == nil {
		return nil, fmt.Errorf("cube: nil axis")
	}
	if x.Find(a.name) >= 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", a.name, ErrDuplicateAxis)
	}
	out := make(Axes, len(x), len(x)+1)
	copy(out, x)
	return append(out, a), nil
}

// Remove returns a new list without the named axis.
func (x Axes) Remove(name string) (Axes, error) {
	i := x.Find(name)
	if i < 0 {
		return nil, fmt.Errorf("cube: axis %q: %w", name, ErrAxisNotFound)
	}
	out := make(Axes, 0, len(x)-1)
	out = append(out, x[:i]...)
	out = append(out, x[i+1:]...)
	return out, nil
}

// Transpose returns a new list permuted by order, which must be a complete
// permutation of the axis positions.
func (x Axes) Transpose(order []int) (Axes, error) {
	if err := x.checkPermutation(order); err != nil {
		return nil, err
	}
	out := make(Axes, len(x))
	for i, p := range order {
		out[i] = x[p]
	}
	return out, nil
}

// Permutation resolves a list of axis names to their positions, requiring
// every axis to be named exactly once.
func (x Axes) Permutation(names []string) ([]int, error) {
	if len(names) != len(x) {
		return nil, fmt.Errorf("cube: permutation names %v do not cover %d axes: %w", names, len(x), ErrInvalidPermutation)
	}
	order := make([]int, len(names))
	seen := make([]bool, len(x))
	for i, name := range names {
		p := x.Find(name)
		if p < 0 {
			return nil, fmt.Errorf("cube: permutation names %v: unknown axis %q: %w", names, name, ErrInvalidPermutation)
		}
		if seen[p] {
			return nil, fmt.Errorf("cube: permutation names %v: duplicate axis %q: %w", names, name, ErrInvalidPermutation)
		}
		seen[p] = true
		order[i] = p
	}
	return order, nil
}

func (x Axes) checkPermutation(order []int) error {
	if len(order) != len(x) {
		return fmt.Errorf("cube: permutation %v does not cover %d axes: %w", order, len(x), ErrInvalidPermutation)
	}
	seen := make([]bool, len(x))
	for _, p := range order {
		if p < 0 || p >= len(x) {
			return fmt.Errorf("cube: permutation entry %d out of range: %w", p, ErrInvalidPermutation)
		}
		if seen[p] {
			return fmt.Errorf("cube: duplicate permutation entry %d: %w", p, ErrInvalidPermutation)
		}
		seen[p] = true
	}
	return nil
}

func (x Axes) clone() Axes {
	out := make(Axes, len(x))
	copy(out, x)
	return out
}

// String renders the list as [kind("name")[len], ...].
func (x Axes) String() string {
	parts := make([]string, len(x))
	for i, a := range x {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
