package cube

import (
	"fmt"

	"github.com/vladimir-kraus/numcube/pkg/cube/engine"
)

// Add returns the element-wise sum of the cube and other. The right operand
// may be another cube (aligned by axis name), a bare engine tensor or a
// numeric scalar (both bypass alignment and keep this cube's axes).
func (c *Cube) Add(other any) (*Cube, error) { return c.binary(engine.Add, other) }

// Sub returns the element-wise difference.
func (c *Cube) Sub(other any) (*Cube, error) { return c.binary(engine.Sub, other) }

// Mul returns the element-wise product.
func (c *Cube) Mul(other any) (*Cube, error) { return c.binary(engine.Mul, other) }

// Div returns the element-wise quotient. Integer operands promote to
// float64.
func (c *Cube) Div(other any) (*Cube, error) { return c.binary(engine.Div, other) }

// Mod returns the element-wise remainder.
func (c *Cube) Mod(other any) (*Cube, error) { return c.binary(engine.Mod, other) }

// Pow returns the element-wise power.
func (c *Cube) Pow(other any) (*Cube, error) { return c.binary(engine.Pow, other) }

// Apply2 applies a caller-selected engine binary operation, dispatching the
// right operand exactly like the named arithmetic methods.
func (c *Cube) Apply2(op engine.BinaryOp, other any) (*Cube, error) {
	return c.binary(op, other)
}

// Lt returns the element-wise less-than comparison as a bool cube.
func (c *Cube) Lt(other any) (*Cube, error) { return c.compare(engine.Lt, other) }

// Lte returns the element-wise less-or-equal comparison as a bool cube.
func (c *Cube) Lte(other any) (*Cube, error) { return c.compare(engine.Lte, other) }

// Gt returns the element-wise greater-than comparison as a bool cube.
func (c *Cube) Gt(other any) (*Cube, error) { return c.compare(engine.Gt, other) }

// Gte returns the element-wise greater-or-equal comparison as a bool cube.
func (c *Cube) Gte(other any) (*Cube, error) { return c.compare(engine.Gte, other) }

// Eq returns the element-wise equality comparison as a bool cube.
func (c *Cube) Eq(other any) (*Cube, error) { return c.compare(engine.Eq, other) }

// Ne returns the element-wise inequality comparison as a bool cube.
func (c *Cube) Ne(other any) (*Cube, error) { return c.compare(engine.Ne, other) }

// Sin applies the sine function element-wise, preserving axes.
func (c *Cube) Sin() (*Cube, error) { return c.unary(engine.Sin) }

// Cos applies the cosine function element-wise, preserving axes.
func (c *Cube) Cos() (*Cube, error) { return c.unary(engine.Cos) }

// Tan applies the tangent function element-wise, preserving axes.
func (c *Cube) Tan() (*Cube, error) { return c.unary(engine.Tan) }

// Log applies the natural logarithm element-wise, preserving axes.
func (c *Cube) Log() (*Cube, error) { return c.unary(engine.Log) }

// Exp applies the exponential function element-wise, preserving axes.
func (c *Cube) Exp() (*Cube, error) { return c.unary(engine.Exp) }

// Sqrt applies the square root element-wise, preserving axes.
func (c *Cube) Sqrt() (*Cube, error) { return c.unary(engine.Sqrt) }

// Abs applies the absolute value element-wise, preserving axes and integer
// dtypes.
func (c *Cube) Abs() (*Cube, error) { return c.unary(engine.Abs) }

// Neg negates every element, preserving axes and integer dtypes.
func (c *Cube) Neg() (*Cube, error) { return c.unary(engine.Neg) }

func (c *Cube) binary(op engine.BinaryOp, other any) (*Cube, error) {
	switch rhs := other.(type) {
	case *Cube:
		return binaryCubes(op, c, rhs)
	case *engine.Tensor:
		rt, err := alignRaw(c, rhs)
		if err != nil {
			return nil, err
		}
		values, err := engine.Binary(op, c.values, rt)
		if err != nil {
			return nil, err
		}
		return &Cube{axes: c.axes, values: values}, nil
	default:
		sc, err := scalarOperand(other)
		if err != nil {
			return nil, err
		}
		values, err := engine.Binary(op, c.values, sc)
		if err != nil {
			return nil, err
		}
		return &Cube{axes: c.axes, values: values}, nil
	}
}

func (c *Cube) compare(op engine.CmpOp, other any) (*Cube, error) {
	switch rhs := other.(type) {
	case *Cube:
		return compareCubes(op, c, rhs)
	case *engine.Tensor:
		rt, err := alignRaw(c, rhs)
		if err != nil {
			return nil, err
		}
		values, err := engine.Compare(op, c.values, rt)
		if err != nil {
			return nil, err
		}
		return &Cube{axes: c.axes, values: values}, nil
	default:
		sc, err := scalarOperand(other)
		if err != nil {
			return nil, err
		}
		values, err := engine.Compare(op, c.values, sc)
		if err != nil {
			return nil, err
		}
		return &Cube{axes: c.axes, values: values}, nil
	}
}

func (c *Cube) unary(op engine.UnaryOp) (*Cube, error) {
	values, err := c.values.Unary(op)
	if err != nil {
		return nil, err
	}
	return &Cube{axes: c.axes, values: values}, nil
}

// scalarOperand wraps a Go scalar as a rank-0 tensor.
func scalarOperand(v any) (*engine.Tensor, error) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32, float32, float64, bool:
		return engine.FromScalar(v), nil
	default:
		return nil, fmt.Errorf("cube: unsupported operand %T", v)
	}
}
