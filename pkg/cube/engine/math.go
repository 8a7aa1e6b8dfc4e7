package engine

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"gorgonia.org/tensor"
)

// BinaryOp identifies an element-wise arithmetic operation.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Pow:
		return "pow"
	}
	return "unknown"
}

// CmpOp identifies an element-wise comparison.
type CmpOp uint8

const (
	Lt CmpOp = iota
	Lte
	Gt
	Gte
	Eq
	Ne
)

// UnaryOp identifies an element-wise unary function.
type UnaryOp uint8

const (
	Sin UnaryOp = iota
	Cos
	Tan
	Log
	Exp
	Sqrt
	Abs
	Neg
)

// Binary applies op element-wise. Operand dtypes are promoted to a common
// type first; integer division always promotes to float64. Rank-0 operands
// combine with tensors of any shape; two non-scalar operands must have
// identical shapes (broadcast is the caller's job).
func Binary(op BinaryOp, a, b *Tensor) (*Tensor, error) {
	a, b, err := promotePair(op, a, b)
	if err != nil {
		return nil, err
	}
	switch {
	case a.IsScalar() && b.IsScalar():
		v, err := scalarBinary(op, scalarValue(a.dense), scalarValue(b.dense))
		if err != nil {
			return nil, err
		}
		return FromScalar(v), nil
	case b.IsScalar():
		return binaryDispatch(op, a.dense, scalarValue(b.dense))
	case a.IsScalar():
		return binaryDispatch(op, scalarValue(a.dense), b.dense)
	default:
		if !shapeEq(a.Shape(), b.Shape()) {
			return nil, fmt.Errorf("engine: %v: shapes %v and %v do not match", op, a.Shape(), b.Shape())
		}
		return binaryDispatch(op, a.dense, b.dense)
	}
}

func binaryDispatch(op BinaryOp, a, b interface{}) (*Tensor, error) {
	var res tensor.Tensor
	var err error
	switch op {
	case Add:
		res, err = tensor.Add(a, b)
	case Sub:
		res, err = tensor.Sub(a, b)
	case Mul:
		res, err = tensor.Mul(a, b)
	case Div:
		res, err = tensor.Div(a, b)
	case Mod:
		res, err = tensor.Mod(a, b)
	case Pow:
		res, err = tensor.Pow(a, b)
	default:
		return nil, fmt.Errorf("engine: unknown binary op %d", op)
	}
	if err != nil {
		return nil, fmt.Errorf("engine: %v: %w", op, err)
	}
	return wrap(res), nil
}

// Compare applies op element-wise and returns a bool tensor. Numeric dtypes
// are promoted pairwise; bool operands are only comparable to bool, and only
// for equality.
func Compare(op CmpOp, a, b *Tensor) (*Tensor, error) {
	a, b, err := promoteCmpPair(op, a, b)
	if err != nil {
		return nil, err
	}
	switch {
	case a.IsScalar() && b.IsScalar():
		v, err := scalarCompare(op, scalarValue(a.dense), scalarValue(b.dense))
		if err != nil {
			return nil, err
		}
		return FromScalar(v), nil
	case b.IsScalar():
		return cmpDispatch(op, a.dense, scalarValue(b.dense))
	case a.IsScalar():
		return cmpDispatch(op, scalarValue(a.dense), b.dense)
	default:
		if !shapeEq(a.Shape(), b.Shape()) {
			return nil, fmt.Errorf("engine: compare: shapes %v and %v do not match", a.Shape(), b.Shape())
		}
		return cmpDispatch(op, a.dense, b.dense)
	}
}

func cmpDispatch(op CmpOp, a, b interface{}) (*Tensor, error) {
	var res tensor.Tensor
	var err error
	switch op {
	case Lt:
		res, err = tensor.Lt(a, b)
	case Lte:
		res, err = tensor.Lte(a, b)
	case Gt:
		res, err = tensor.Gt(a, b)
	case Gte:
		res, err = tensor.Gte(a, b)
	case Eq:
		res, err = tensor.ElEq(a, b)
	case Ne:
		res, err = tensor.ElNe(a, b)
	default:
		return nil, fmt.Errorf("engine: unknown comparison op %d", op)
	}
	if err != nil {
		return nil, fmt.Errorf("engine: compare: %w", err)
	}
	return wrap(res), nil
}

// Unary applies op element-wise, preserving shape. Transcendental functions
// on integer input promote to float64; float32 input stays float32 via
// math32. Neg and Abs preserve integer dtypes.
func (t *Tensor) Unary(op UnaryOp) (*Tensor, error) {
	switch t.Dtype() {
	case tensor.Float32:
		data := flatAny(t.dense).([]float32)
		out := make([]float32, len(data))
		fn, err := unaryF32(op)
		if err != nil {
			return nil, err
		}
		for i, x := range data {
			out[i] = fn(x)
		}
		return FromSlice(t.Shape(), out)
	case tensor.Float64:
		data := flatAny(t.dense).([]float64)
		out := make([]float64, len(data))
		fn, err := unaryF64(op)
		if err != nil {
			return nil, err
		}
		for i, x := range data {
			out[i] = fn(x)
		}
		return FromSlice(t.Shape(), out)
	case tensor.Int, tensor.Int64:
		if op == Neg || op == Abs {
			return t.unaryInt(op)
		}
		f, err := t.AsFloat64()
		if err != nil {
			return nil, err
		}
		return f.Unary(op)
	default:
		return nil, fmt.Errorf("engine: unary %d on dtype %v", op, t.Dtype())
	}
}

func (t *Tensor) unaryInt(op UnaryOp) (*Tensor, error) {
	switch data := flatAny(t.dense).(type) {
	case []int:
		out := make([]int, len(data))
		for i, x := range data {
			if op == Neg {
				out[i] = -x
			} else if x < 0 {
				out[i] = -x
			} else {
				out[i] = x
			}
		}
		return FromSlice(t.Shape(), out)
	case []int64:
		out := make([]int64, len(data))
		for i, x := range data {
			if op == Neg {
				out[i] = -x
			} else if x < 0 {
				out[i] = -x
			} else {
				out[i] = x
			}
		}
		return FromSlice(t.Shape(), out)
	default:
		return nil, fmt.Errorf("engine: integer unary on %T", data)
	}
}

func unaryF64(op UnaryOp) (func(float64) float64, error) {
	switch op {
	case Sin:
		return math.Sin, nil
	case Cos:
		return math.Cos, nil
	case Tan:
		return math.Tan, nil
	case Log:
		return math.Log, nil
	case Exp:
		return math.Exp, nil
	case Sqrt:
		return math.Sqrt, nil
	case Abs:
		return math.Abs, nil
	case Neg:
		return func(x float64) float64 { return -x }, nil
	}
	return nil, fmt.Errorf("engine: unknown unary op %d", op)
}

func unaryF32(op UnaryOp) (func(float32) float32, error) {
	switch op {
	case Sin:
		return math32.Sin, nil
	case Cos:
		return math32.Cos, nil
	case Tan:
		return math32.Tan, nil
	case Log:
		return math32.Log, nil
	case Exp:
		return math32.Exp, nil
	case Sqrt:
		return math32.Sqrt, nil
	case Abs:
		return math32.Abs, nil
	case Neg:
		return func(x float32) float32 { return -x }, nil
	}
	return nil, fmt.Errorf("engine: unknown unary op %d", op)
}

// promoteDtype picks the common dtype two numeric operands are widened to.
func promoteDtype(a, b tensor.Dtype) tensor.Dtype {
	if a == b {
		return a
	}
	if a == tensor.Float64 || b == tensor.Float64 {
		return tensor.Float64
	}
	if a == tensor.Float32 || b == tensor.Float32 {
		// float32 with an integer widens all the way to float64 so large
		// integers survive the conversion.
		return tensor.Float64
	}
	return tensor.Int64
}

func promotePair(op BinaryOp, a, b *Tensor) (*Tensor, *Tensor, error) {
	if a.Dtype() == tensor.Bool || b.Dtype() == tensor.Bool {
		return nil, nil, fmt.Errorf("engine: arithmetic on bool tensors")
	}
	target := promoteDtype(a.Dtype(), b.Dtype())
	if op == Div && (target == tensor.Int || target == tensor.Int64) {
		target = tensor.Float64
	}
	ac, err := a.convertTo(target)
	if err != nil {
		return nil, nil, err
	}
	bc, err := b.convertTo(target)
	if err != nil {
		return nil, nil, err
	}
	return ac, bc, nil
}

func promoteCmpPair(op CmpOp, a, b *Tensor) (*Tensor, *Tensor, error) {
	if a.Dtype() == tensor.Bool || b.Dtype() == tensor.Bool {
		if a.Dtype() == tensor.Bool && b.Dtype() == tensor.Bool && (op == Eq || op == Ne) {
			return a, b, nil
		}
		return nil, nil, fmt.Errorf("engine: bool tensors support only equality comparison with bool")
	}
	target := promoteDtype(a.Dtype(), b.Dtype())
	ac, err := a.convertTo(target)
	if err != nil {
		return nil, nil, err
	}
	bc, err := b.convertTo(target)
	if err != nil {
		return nil, nil, err
	}
	return ac, bc, nil
}

func (t *Tensor) convertTo(dt tensor.Dtype) (*Tensor, error) {
	if t.Dtype() == dt {
		return t, nil
	}
	switch dt {
	case tensor.Float64:
		return t.AsFloat64()
	case tensor.Int64:
		switch v := flatAny(t.dense).(type) {
		case []int:
			out := make([]int64, len(v))
			for i, x := range v {
				out[i] = int64(x)
			}
			return FromSlice(t.Shape(), out)
		default:
			return nil, fmt.Errorf("engine: cannot convert %T to int64", v)
		}
	default:
		return nil, fmt.Errorf("engine: cannot convert %v to %v", t.Dtype(), dt)
	}
}

func scalarBinary(op BinaryOp, a, b any) (any, error) {
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch op {
		case Add:
			return av + bv, nil
		case Sub:
			return av - bv, nil
		case Mul:
			return av * bv, nil
		case Div:
			return av / bv, nil
		case Mod:
			return math.Mod(av, bv), nil
		case Pow:
			return math.Pow(av, bv), nil
		}
	case float32:
		bv := b.(float32)
		switch op {
		case Add:
			return av + bv, nil
		case Sub:
			return av - bv, nil
		case Mul:
			return av * bv, nil
		case Div:
			return av / bv, nil
		case Mod:
			return math32.Mod(av, bv), nil
		case Pow:
			return math32.Pow(av, bv), nil
		}
	case int:
		bv := b.(int)
		r, err := scalarIntBinary(op, int64(av), int64(bv))
		if err != nil {
			return nil, err
		}
		return int(r), nil
	case int64:
		bv := b.(int64)
		return scalarIntBinary(op, av, bv)
	}
	return nil, fmt.Errorf("engine: scalar %v on %T", op, a)
}

func scalarIntBinary(op BinaryOp, a, b int64) (int64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Mod:
		return a % b, nil
	case Pow:
		r := int64(1)
		for i := int64(0); i < b; i++ {
			r *= a
		}
		return r, nil
	}
	// Div is promoted to float64 before dispatch.
	return 0, fmt.Errorf("engine: scalar integer %v", op)
}

func scalarCompare(op CmpOp, a, b any) (bool, error) {
	if ab, ok := a.(bool); ok {
		bb := b.(bool)
		switch op {
		case Eq:
			return ab == bb, nil
		case Ne:
			return ab != bb, nil
		}
		return false, fmt.Errorf("engine: ordering comparison on bool")
	}
	av, err := scalarAsFloat(a)
	if err != nil {
		return false, err
	}
	bv, err := scalarAsFloat(b)
	if err != nil {
		return false, err
	}
	switch op {
	case Lt:
		return av < bv, nil
	case Lte:
		return av <= bv, nil
	case Gt:
		return av > bv, nil
	case Gte:
		return av >= bv, nil
	case Eq:
		return av == bv, nil
	case Ne:
		return av != bv, nil
	}
	return false, fmt.Errorf("engine: unknown comparison op %d", op)
}

func scalarAsFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("engine: non-numeric scalar %T", v)
}

func shapeEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
