// Package engine adapts gorgonia's dense tensors to the narrow backend
// contract the cube algebra needs: creation from backing slices, transpose,
// gather, insertion of length-1 dimensions, eager broadcast, element-wise
// binary operations with dtype promotion, and axis-wise reductions.
//
// All operations are eager and inputs are never modified. Results are fresh
// tensors, except that AsFloat64 returns a float64 tensor as-is.
package engine

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Element constrains the scalar element types a tensor can hold.
type Element interface {
	~int | ~int64 | ~float32 | ~float64 | ~bool
}

// Tensor is a dense n-dimensional array backed by a gorgonia *tensor.Dense.
// A rank-0 tensor holds exactly one element.
type Tensor struct {
	dense *tensor.Dense
}

// FromSlice builds a tensor with the given shape from a row-major backing
// slice. The slice is used directly; callers must not modify it afterwards.
// An empty shape produces a rank-0 tensor from a one-element slice.
func FromSlice[T Element](shape []int, data []T) (*Tensor, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("engine: negative dimension %d in shape %v", d, shape)
		}
		size *= d
	}
	if len(data) != size {
		return nil, fmt.Errorf("engine: data length %d does not match shape %v (size %d)", len(data), shape, size)
	}
	if len(shape) == 0 {
		return FromScalar(data[0]), nil
	}
	d := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data))
	return &Tensor{dense: d}, nil
}

// FromScalar builds a rank-0 tensor holding v. v must be one of the Element
// types; anything else panics in the backend.
func FromScalar(v any) *Tensor {
	return &Tensor{dense: tensor.New(tensor.FromScalar(normalizeScalar(v)))}
}

// wrap asserts a backend result into a *Tensor.
func wrap(t tensor.Tensor) *Tensor {
	return &Tensor{dense: t.(*tensor.Dense)}
}

// Shape returns a copy of the tensor's dimensions. Rank-0 tensors return an
// empty slice.
func (t *Tensor) Shape() []int {
	s := t.dense.Shape()
	if len(s) == 0 {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.Shape())
}

// Size returns the total number of elements. Rank-0 tensors report 1.
func (t *Tensor) Size() int {
	size := 1
	for _, d := range t.Shape() {
		size *= d
	}
	return size
}

// Dtype returns the element type of the tensor.
func (t *Tensor) Dtype() tensor.Dtype {
	return t.dense.Dtype()
}

// IsScalar reports whether the tensor has rank 0.
func (t *Tensor) IsScalar() bool {
	return t.Rank() == 0
}

// Data returns the raw backing data. The result aliases the tensor's buffer
// and must be treated as read-only.
func (t *Tensor) Data() any {
	return flatAny(t.dense)
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{dense: t.dense.Clone().(*tensor.Dense)}
}

// Transpose returns a materialized copy with dimensions permuted by perm.
func (t *Tensor) Transpose(perm ...int) (*Tensor, error) {
	if err := checkPerm(t.Rank(), perm); err != nil {
		return nil, err
	}
	if isIdentity(perm) {
		return t.Clone(), nil
	}
	res, err := tensor.T(t.dense, perm...)
	if err != nil {
		return nil, fmt.Errorf("engine: transpose %v: %w", perm, err)
	}
	mat := res.(*tensor.Dense).Materialize().(*tensor.Dense)
	return &Tensor{dense: mat}, nil
}

// TakeAlong gathers the given positions along axis, in order. Positions may
// repeat; each must be within the axis length.
func (t *Tensor) TakeAlong(axis int, indices []int) (*Tensor, error) {
	shape := t.Shape()
	if axis < 0 || axis >= len(shape) {
		return nil, fmt.Errorf("engine: gather axis %d out of range for rank %d", axis, len(shape))
	}
	for _, ix := range indices {
		if ix < 0 || ix >= shape[axis] {
			return nil, fmt.Errorf("engine: gather index %d out of range for axis length %d", ix, shape[axis])
		}
	}
	if t.Dtype() == tensor.Bool {
		return t.takeAlongBool(axis, indices)
	}
	backing := make([]int, len(indices))
	copy(backing, indices)
	idx := tensor.New(tensor.WithShape(len(indices)), tensor.WithBacking(backing))
	res, err := tensor.ByIndices(t.dense, idx, axis)
	if err != nil {
		return nil, fmt.Errorf("engine: gather along axis %d: %w", axis, err)
	}
	return wrap(res), nil
}

// takeAlongBool implements gather for bool tensors, which the backend's
// advanced indexing does not cover.
func (t *Tensor) takeAlongBool(axis int, indices []int) (*Tensor, error) {
	src, err := asBools(t.dense)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	outer, n, inner := laneDims(shape, axis)
	outShape := make([]int, len(shape))
	copy(outShape, shape)
	outShape[axis] = len(indices)
	out := make([]bool, outer*len(indices)*inner)
	for o := 0; o < outer; o++ {
		for k, ix := range indices {
			srcOff := (o*n + ix) * inner
			dstOff := (o*len(indices) + k) * inner
			copy(out[dstOff:dstOff+inner], src[srcOff:srcOff+inner])
		}
	}
	return FromSlice(outShape, out)
}

// Expand returns a copy with a length-1 dimension inserted at every given
// position. Positions are in the coordinate space of the result and must be
// strictly increasing.
func (t *Tensor) Expand(positions ...int) (*Tensor, error) {
	if len(positions) == 0 {
		return t.Clone(), nil
	}
	shape := t.Shape()
	outRank := len(shape) + len(positions)
	newShape := make([]int, 0, outRank)
	pi, si := 0, 0
	for i := 0; i < outRank; i++ {
		if pi < len(positions) && positions[pi] == i {
			newShape = append(newShape, 1)
			pi++
			continue
		}
		if si >= len(shape) {
			return nil, fmt.Errorf("engine: expand positions %v invalid for rank %d", positions, len(shape))
		}
		newShape = append(newShape, shape[si])
		si++
	}
	if pi != len(positions) || si != len(shape) {
		return nil, fmt.Errorf("engine: expand positions %v invalid for rank %d", positions, len(shape))
	}
	d := t.dense.Clone().(*tensor.Dense)
	if err := d.Reshape(newShape...); err != nil {
		return nil, fmt.Errorf("engine: expand to %v: %w", newShape, err)
	}
	return &Tensor{dense: d}, nil
}

// Squeeze returns a copy with the given length-1 dimension removed.
func (t *Tensor) Squeeze(axis int) (*Tensor, error) {
	shape := t.Shape()
	if axis < 0 || axis >= len(shape) {
		return nil, fmt.Errorf("engine: squeeze axis %d out of range for rank %d", axis, len(shape))
	}
	if shape[axis] != 1 {
		return nil, fmt.Errorf("engine: squeeze axis %d has length %d", axis, shape[axis])
	}
	newShape := make([]int, 0, len(shape)-1)
	newShape = append(newShape, shape[:axis]...)
	newShape = append(newShape, shape[axis+1:]...)
	if len(newShape) == 0 {
		return FromScalar(scalarValue(t.dense)), nil
	}
	d := t.dense.Clone().(*tensor.Dense)
	if err := d.Reshape(newShape...); err != nil {
		return nil, fmt.Errorf("engine: squeeze to %v: %w", newShape, err)
	}
	return &Tensor{dense: d}, nil
}

// BroadcastTo stretches every length-1 dimension to the corresponding target
// length. The target rank must equal the tensor's rank and every non-1
// dimension must already match.
func (t *Tensor) BroadcastTo(shape ...int) (*Tensor, error) {
	cur := t.Shape()
	if len(cur) != len(shape) {
		return nil, fmt.Errorf("engine: broadcast rank %d to rank %d", len(cur), len(shape))
	}
	res := t
	for axis, want := range shape {
		have := res.Shape()[axis]
		if have == want {
			continue
		}
		if have != 1 {
			return nil, fmt.Errorf("engine: cannot broadcast dimension %d from %d to %d", axis, have, want)
		}
		rep, err := tensor.Repeat(res.dense, axis, want)
		if err != nil {
			return nil, fmt.Errorf("engine: broadcast axis %d to %d: %w", axis, want, err)
		}
		res = wrap(rep)
	}
	if res == t {
		return t.Clone(), nil
	}
	return res, nil
}

// Concat joins tensors along the given axis. All operands must agree on
// dtype and on every other dimension.
func Concat(axis int, ts ...*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("engine: concat of no tensors")
	}
	if len(ts) == 1 {
		return ts[0].Clone(), nil
	}
	rest := make([]tensor.Tensor, len(ts)-1)
	for i, t := range ts[1:] {
		rest[i] = t.dense
	}
	res, err := tensor.Concat(axis, ts[0].dense, rest...)
	if err != nil {
		return nil, fmt.Errorf("engine: concat along axis %d: %w", axis, err)
	}
	return wrap(res), nil
}

func checkPerm(rank int, perm []int) error {
	if len(perm) != rank {
		return fmt.Errorf("engine: permutation %v does not cover rank %d", perm, rank)
	}
	seen := make([]bool, rank)
	for _, p := range perm {
		if p < 0 || p >= rank {
			return fmt.Errorf("engine: permutation entry %d out of range for rank %d", p, rank)
		}
		if seen[p] {
			return fmt.Errorf("engine: duplicate permutation entry %d", p)
		}
		seen[p] = true
	}
	return nil
}

func isIdentity(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

// laneDims splits a shape into the element counts before, at, and after the
// given axis, for row-major lane iteration.
func laneDims(shape []int, axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for _, d := range shape[:axis] {
		outer *= d
	}
	for _, d := range shape[axis+1:] {
		inner *= d
	}
	return outer, shape[axis], inner
}
