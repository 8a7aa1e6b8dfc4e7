package cube

import (
	"fmt"
	"sync"
)

// Kind distinguishes the two axis variants.
type Kind uint8

const (
	// KindIndex marks an axis whose labels are pairwise distinct and
	// support hash lookup.
	KindIndex Kind = iota
	// KindSeries marks an axis with arbitrary labels and no lookup
	// guarantee beyond linear scan.
	KindSeries
)

func (k Kind) String() string {
	if k == KindIndex {
		return "index"
	}
	return "series"
}

// Axis is a named vector of labels annotating one cube dimension. An axis
// is immutable after construction; the only internal mutation is the lazy,
// memoized lookup table of an Index axis.
type Axis struct {
	name   string
	kind   Kind
	labels Labels

	once   sync.Once
	lookup map[any]int
}

// Index constructs an Index axis. The name must be non-empty and the labels
// pairwise distinct.
func Index[T Label](name string, labels []T) (*Axis, error) {
	return newAxis(name, KindIndex, newLabels(labels))
}

// Series constructs a Series axis. The name must be non-empty; labels may
// repeat.
func Series[T Label](name string, labels []T) (*Axis, error) {
	return newAxis(name, KindSeries, newLabels(labels))
}

func newAxis(name string, kind Kind, labels Labels) (*Axis, error) {
	if name == "" {
		return nil, fmt.Errorf("cube: axis name must not be empty")
	}
	if kind == KindIndex {
		seen := make(map[any]struct{}, len(labels))
		for _, v := range labels {
			if _, ok := seen[v]; ok {
				return nil, fmt.Errorf("cube: axis %q: duplicate label %v: %w", name, v, ErrUniquenessViolation)
			}
			seen[v] = struct{}{}
		}
	}
	return &Axis{name: name, kind: kind, labels: labels}, nil
}

// Name returns the axis name.
func (a *Axis) Name() string {
	return a.name
}

// Kind returns the axis variant.
func (a *Axis) Kind() Kind {
	return a.kind
}

// IsIndex reports whether the axis is an Index axis.
func (a *Axis) IsIndex() bool {
	return a.kind == KindIndex
}

// Len returns the number of labels.
func (a *Axis) Len() int {
	return len(a.labels)
}

// Labels returns a copy of the axis labels.
func (a *Axis) Labels() Labels {
	return a.labels.clone()
}

// At returns the label at position i.
func (a *Axis) At(i int) any {
	return a.labels[i]
}

// table returns the memoized label-to-position map of an Index axis,
// building it on first use.
func (a *Axis) table() map[any]int {
	a.once.Do(func() {
		m := make(map[any]int, len(a.labels))
		for i, v := range a.labels {
			m[v] = i
		}
		a.lookup = m
	})
	return a.lookup
}

// IndexOf returns the position of the given label. Index axes use hash
// lookup; Series axes fall back to a linear scan returning the first
// occurrence.
func (a *Axis) IndexOf(label any) (int, error) {
	if a.kind == KindIndex {
		if pos, ok := a.table()[label]; ok {
			return pos, nil
		}
		return 0, fmt.Errorf("cube: axis %q: label %v: %w", a.name, label, ErrLabelNotFound)
	}
	for i, v := range a.labels {
		if v == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("cube: axis %q: label %v: %w", a.name, label, ErrLabelNotFound)
}

// Positions returns one position per query label, failing on the first
// label absent from the axis.
func (a *Axis) Positions(labels []any) ([]int, error) {
	out := make([]int, len(labels))
	for i, v := range labels {
		pos, err := a.IndexOf(v)
		if err != nil {
			return nil, err
		}
		out[i] = pos
	}
	return out, nil
}

// Filter returns a new axis restricted to the positions whose label occurs
// in query, preserving this axis's own order, together with the positional
// selector to apply to tensors. Every query label must occur in the axis.
func (a *Axis) Filter(query []any) (*Axis, []int, error) {
	for _, v := range query {
		if !a.labels.Contains(v) {
			return nil, nil, fmt.Errorf("cube: axis %q: label %v: %w", a.name, v, ErrLabelNotFound)
		}
	}
	want := make(map[any]struct{}, len(query))
	for _, v := range query {
		want[v] = struct{}{}
	}
	var sel []int
	for i, v := range a.labels {
		if _, ok := want[v]; ok {
			sel = append(sel, i)
		}
	}
	ax, err := a.take(sel, false)
	if err != nil {
		return nil, nil, err
	}
	return ax, sel, nil
}

// Take returns a new axis selecting the given positions in the given order.
// The kind is preserved; an Index axis that would acquire duplicate labels
// fails with ErrUniquenessViolation.
func (a *Axis) Take(positions []int) (*Axis, error) {
	return a.take(positions, false)
}

// take implements Take. With demote set, an Index axis that would acquire
// duplicate labels becomes a Series axis instead of failing.
func (a *Axis) take(positions []int, demote bool) (*Axis, error) {
	labels := make(Labels, len(positions))
	for i, p := range positions {
		if p < 0 || p >= len(a.labels) {
			return nil, fmt.Errorf("cube: axis %q: position %d exceeds length %d: %w", a.name, p, len(a.labels), ErrIndexOutOfRange)
		}
		labels[i] = a.labels[p]
	}
	kind := a.kind
	if kind == KindIndex {
		seen := make(map[any]struct{}, len(labels))
		for _, v := range labels {
			if _, ok := seen[v]; ok {
				if !demote {
					return nil, fmt.Errorf("cube: axis %q: duplicate label %v: %w", a.name, v, ErrUniquenessViolation)
				}
				kind = KindSeries
				break
			}
			seen[v] = struct{}{}
		}
	}
	return &Axis{name: a.name, kind: kind, labels: labels}, nil
}

// Compress returns a new axis keeping the positions where mask is true. The
// mask length must equal the axis length.
func (a *Axis) Compress(mask []bool) (*Axis, error) {
	if len(mask) != len(a.labels) {
		return nil, fmt.Errorf("cube: axis %q: mask length %d does not match axis length %d: %w", a.name, len(mask), len(a.labels), ErrShapeMismatch)
	}
	var sel []int
	for i, keep := range mask {
		if keep {
			sel = append(sel, i)
		}
	}
	return a.take(sel, false)
}

// String renders the axis as kind(name)[len].
func (a *Axis) String() string {
	return fmt.Sprintf("%s(%q)[%d]", a.kind, a.name, len(a.labels))
}
