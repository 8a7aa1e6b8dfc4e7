package cube

import (
	"fmt"

	"github.com/vladimir-kraus/numcube/pkg/cube/engine"
	"github.com/vladimir-kraus/numcube/pkg/logger"
)

// binaryCubes aligns two cubes and applies the element-wise operation.
func binaryCubes(op engine.BinaryOp, l, r *Cube) (*Cube, error) {
	pl, err := align(l.axes, r.axes)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug().
		Str("op", op.String()).
		Strs("out", pl.out.Names()).
		Ints("shape", pl.shape).
		Msg("aligned operands")
	lt, err := applyPlan(l.values, pl.left, pl.shape)
	if err != nil {
		return nil, err
	}
	rt, err := applyPlan(r.values, pl.right, pl.shape)
	if err != nil {
		return nil, err
	}
	values, err := engine.Binary(op, lt, rt)
	if err != nil {
		return nil, err
	}
	return &Cube{axes: pl.out, values: values}, nil
}

// compareCubes aligns two cubes and applies the element-wise comparison,
// yielding a bool cube.
func compareCubes(op engine.CmpOp, l, r *Cube) (*Cube, error) {
	pl, err := align(l.axes, r.axes)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug().
		Strs("out", pl.out.Names()).
		Ints("shape", pl.shape).
		Msg("aligned comparison operands")
	lt, err := applyPlan(l.values, pl.left, pl.shape)
	if err != nil {
		return nil, err
	}
	rt, err := applyPlan(r.values, pl.right, pl.shape)
	if err != nil {
		return nil, err
	}
	values, err := engine.Compare(op, lt, rt)
	if err != nil {
		return nil, err
	}
	return &Cube{axes: pl.out, values: values}, nil
}

// applyPlan shapes one operand tensor: transpose, gathers, insertion of
// length-1 dimensions, then eager broadcast to the output shape.
func applyPlan(t *engine.Tensor, sp sidePlan, outShape []int) (*engine.Tensor, error) {
	res := t
	if !isIdentityPerm(sp.perm) {
		var err error
		res, err = res.Transpose(sp.perm...)
		if err != nil {
			return nil, err
		}
	}
	for _, g := range sp.gathers {
		var err error
		res, err = res.TakeAlong(g.axis, g.indices)
		if err != nil {
			return nil, err
		}
	}
	if len(sp.expand) > 0 {
		var err error
		res, err = res.Expand(sp.expand...)
		if err != nil {
			return nil, err
		}
	}
	return res.BroadcastTo(outShape...)
}

// alignRaw shapes a bare tensor against the left cube. Alignment is
// bypassed: the tensor is right-aligned to the cube's shape and stretched
// along length-1 dimensions, exactly the engine's own broadcast rule. The
// cube's axis list is preserved by the caller.
func alignRaw(l *Cube, rhs *engine.Tensor) (*engine.Tensor, error) {
	lshape := l.Shape()
	rshape := rhs.Shape()
	if len(rshape) > len(lshape) {
		return nil, fmt.Errorf("cube: operand of rank %d against cube of rank %d: %w", len(rshape), len(lshape), ErrShapeMismatch)
	}
	res := rhs
	if pad := len(lshape) - len(rshape); pad > 0 {
		positions := make([]int, pad)
		for i := range positions {
			positions[i] = i
		}
		var err error
		res, err = res.Expand(positions...)
		if err != nil {
			return nil, err
		}
	}
	res, err := res.BroadcastTo(lshape...)
	if err != nil {
		return nil, fmt.Errorf("cube: tensor shape %v does not broadcast to %v: %w", rshape, lshape, ErrShapeMismatch)
	}
	return res, nil
}

func isIdentityPerm(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}
