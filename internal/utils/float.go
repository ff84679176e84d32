package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts a decoded sample value to float64.
// Accepts Go numeric types, json.Number and numeric strings (some monitoring
// backends ship values as strings). Returns false for nil, bools, non-numeric
// strings and any other type.
func ToFloat64(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToTimestamp converts a decoded timestamp to integer milliseconds.
// Fractional values are rejected: timestamps are integral by contract.
func ToTimestamp(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, true
		}
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return floatToTimestamp(f)
	case float64:
		return floatToTimestamp(val)
	default:
		return 0, false
	}
}

func floatToTimestamp(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// FloorDiv divides rounding toward negative infinity.
// Bucket alignment relies on this so negative timestamps align downward.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
