package aggregation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/soltixdb/tsfunc/internal/models"
)

// Func reduces the values of one frame to a single value.
// Implementations are pure and never fail: an empty frame yields null
// (Count yields 0).
type Func func(values []models.Value) models.Value

// Type selects an aggregation function by name
type Type string

const (
	// TypeAverage is the mean of the non-null values (default)
	TypeAverage Type = "avg"
	// TypeMin is the smallest non-null value
	TypeMin Type = "min"
	// TypeMax is the largest non-null value
	TypeMax Type = "max"
	// TypeSum is the arithmetic sum, null if any value is null
	TypeSum Type = "sum"
	// TypeCount is the number of values, nulls included
	TypeCount Type = "count"
	// TypeMedian is the upper median of the non-null values
	TypeMedian Type = "median"
)

// DefaultType is used when no aggregation is named
const DefaultType = TypeAverage

// ErrUnknownAggregation is returned by Lookup for names outside ValidTypes
var ErrUnknownAggregation = errors.New("unknown aggregation")

var functions = map[Type]Func{
	TypeAverage: Average,
	TypeMin:     Min,
	TypeMax:     Max,
	TypeSum:     Sum,
	TypeCount:   Count,
	TypeMedian:  Median,
}

// ValidTypes returns all aggregation types
func ValidTypes() []Type {
	return []Type{TypeAverage, TypeMin, TypeMax, TypeSum, TypeCount, TypeMedian}
}

// IsValid checks if an aggregation name is valid. The empty name is valid
// and selects DefaultType.
func IsValid(name string) bool {
	if name == "" {
		return true
	}
	_, ok := functions[Type(name)]
	return ok
}

// Lookup resolves an aggregation name to its function.
func Lookup(name string) (Func, error) {
	if name == "" {
		return functions[DefaultType], nil
	}
	fn, ok := functions[Type(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, name)
	}
	return fn, nil
}

// Count returns the number of values in the frame, nulls included.
func Count(values []models.Value) models.Value {
	return models.Float(float64(len(values)))
}

// Sum returns the arithmetic sum of the frame.
// A null anywhere in the frame poisons the result: the sum becomes null and
// stays null. An empty frame is null as well.
func Sum(values []models.Value) models.Value {
	if len(values) == 0 {
		return models.Null
	}
	sum := 0.0
	for _, v := range values {
		if !v.Valid {
			return models.Null
		}
		sum += v.Float
	}
	return models.Float(sum)
}

// Average returns the mean of the non-null values, or null if there are none.
func Average(values []models.Value) models.Value {
	sum := 0.0
	n := 0
	for _, v := range values {
		if !v.Valid {
			continue
		}
		sum += v.Float
		n++
	}
	if n == 0 {
		return models.Null
	}
	return models.Float(sum / float64(n))
}

// Min returns the smallest non-null value.
func Min(values []models.Value) models.Value {
	result := models.Null
	for _, v := range values {
		if v.Valid && (!result.Valid || v.Float < result.Float) {
			result = v
		}
	}
	return result
}

// Max returns the largest non-null value.
func Max(values []models.Value) models.Value {
	result := models.Null
	for _, v := range values {
		if v.Valid && (!result.Valid || v.Float > result.Float) {
			result = v
		}
	}
	return result
}

// Median returns the element at index floor(n/2) of the sorted non-null
// values. For even n this is the upper of the two middle values, not their mean.
func Median(values []models.Value) models.Value {
	nums := numeric(values)
	if len(nums) == 0 {
		return models.Null
	}
	sort.Float64s(nums)
	return models.Float(nums[len(nums)/2])
}

func numeric(values []models.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v.Float)
		}
	}
	return out
}
