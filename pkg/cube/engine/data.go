package engine

import (
	"fmt"

	"gorgonia.org/tensor"
)

// flatAny returns the dense tensor's backing data as a typed slice. Rank-0
// tensors, whose Data() may be a bare scalar, are normalized to a
// one-element slice.
func flatAny(d *tensor.Dense) any {
	switch v := d.Data().(type) {
	case []float64, []float32, []int, []int64, []bool:
		return v
	case float64:
		return []float64{v}
	case float32:
		return []float32{v}
	case int:
		return []int{v}
	case int64:
		return []int64{v}
	case bool:
		return []bool{v}
	default:
		panic(fmt.Sprintf("engine: unsupported backing data %T", v))
	}
}

// scalarValue extracts the single element of a rank-0 or one-element tensor.
func scalarValue(d *tensor.Dense) any {
	switch v := flatAny(d).(type) {
	case []float64:
		return v[0]
	case []float32:
		return v[0]
	case []int:
		return v[0]
	case []int64:
		return v[0]
	case []bool:
		return v[0]
	default:
		panic(fmt.Sprintf("engine: unsupported backing data %T", v))
	}
}

// normalizeScalar widens Go scalar literals to the element types the engine
// stores: int, int64, float32, float64, bool.
func normalizeScalar(v any) any {
	switch s := v.(type) {
	case int, int64, float32, float64, bool:
		return s
	case int8:
		return int(s)
	case int16:
		return int(s)
	case int32:
		return int(s)
	case uint8:
		return int(s)
	case uint16:
		return int(s)
	case uint32:
		return int64(s)
	default:
		panic(fmt.Sprintf("engine: unsupported scalar %T", v))
	}
}

// asFloat64s returns the tensor's data converted to float64. The result is
// always a fresh slice.
func asFloat64s(d *tensor.Dense) ([]float64, error) {
	switch v := flatAny(d).(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("engine: cannot convert %T to float64", v)
	}
}

// asBools returns the tensor's data as booleans. Numeric data maps nonzero
// to true.
func asBools(d *tensor.Dense) ([]bool, error) {
	switch v := flatAny(d).(type) {
	case []bool:
		out := make([]bool, len(v))
		copy(out, v)
		return out, nil
	case []float64:
		out := make([]bool, len(v))
		for i, x := range v {
			out[i] = x != 0
		}
		return out, nil
	case []float32:
		out := make([]bool, len(v))
		for i, x := range v {
			out[i] = x != 0
		}
		return out, nil
	case []int:
		out := make([]bool, len(v))
		for i, x := range v {
			out[i] = x != 0
		}
		return out, nil
	case []int64:
		out := make([]bool, len(v))
		for i, x := range v {
			out[i] = x != 0
		}
		return out, nil
	default:
		return nil, fmt.Errorf("engine: cannot convert %T to bool", v)
	}
}

// Float64s returns the tensor's elements as float64 in row-major order.
func (t *Tensor) Float64s() ([]float64, error) {
	return asFloat64s(t.dense)
}

// Bools returns the tensor's elements as booleans in row-major order, with
// nonzero numeric values mapping to true.
func (t *Tensor) Bools() ([]bool, error) {
	return asBools(t.dense)
}

// AsFloat64 returns the tensor converted to float64 elements. Tensors that
// already hold float64 are returned as-is.
func (t *Tensor) AsFloat64() (*Tensor, error) {
	if t.Dtype() == tensor.Float64 {
		return t, nil
	}
	data, err := asFloat64s(t.dense)
	if err != nil {
		return nil, err
	}
	return FromSlice(t.Shape(), data)
}
