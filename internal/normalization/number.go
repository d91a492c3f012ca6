package normalization

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ToNumber converts any numeric encoding the graph store may hand back into a
// finite float64. It is total: nil, unparseable or non-finite input yields 0.
//
// Accepted encodings: Go integer and float kinds, *big.Int, *big.Float,
// json.Number, numeric strings, and the split {low, high} 32-bit pair some
// drivers emit for 64-bit integers.
func ToNumber(v any) float64 {
	return finite(toFloat(v))
}

// ToInt is ToNumber truncated toward zero, keeping full int64 precision for
// integer inputs.
func ToInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case *big.Int:
		if t != nil && t.IsInt64() {
			return t.Int64()
		}
	case map[string]any:
		if n, ok := splitInt(t); ok {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n
		}
	}
	f := ToNumber(v)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

// ParseInt is the strict counterpart of ToInt for request input: ok is false
// for nil, booleans, unparseable strings, non-finite floats and unknown types.
func ParseInt(v any) (n int64, ok bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	case map[string]any:
		return splitInt(t)
	case *big.Int:
		if t == nil || !t.IsInt64() {
			return 0, false
		}
		return t.Int64(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Float:
		return ToInt(t), true
	default:
		return 0, false
	}
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case *big.Int:
		if t == nil {
			return 0
		}
		f, _ := new(big.Float).SetInt(t).Float64()
		return f
	case *big.Float:
		if t == nil {
			return 0
		}
		f, _ := t.Float64()
		return f
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	case map[string]any:
		if n, ok := splitInt(t); ok {
			return float64(n)
		}
		return 0
	default:
		return 0
	}
}

// splitInt decodes {low, high} where low holds the lower 32 bits and high the upper 32 bits.
func splitInt(m map[string]any) (int64, bool) {
	lowRaw, okLow := m["low"]
	highRaw, okHigh := m["high"]
	if !okLow || !okHigh {
		return 0, false
	}
	low := int64(finite(toFloat(lowRaw)))
	high := int64(finite(toFloat(highRaw)))
	return high<<32 | int64(uint32(low)), true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
