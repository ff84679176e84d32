// Package models defines the sample, series and request/response types shared
// by every transformation package.
package models

import (
	"math"
	"sort"
)

// Value is a sample value that may be absent. The zero Value is null.
type Value struct {
	Float float64
	Valid bool
}

// Null is the absent value.
var Null = Value{}

// Float returns a present value.
func Float(v float64) Value {
	return Value{Float: v, Valid: true}
}

// Equal reports whether two values are identical. Two NaNs are equal here
// so that tests can compare propagated NaN results.
func (v Value) Equal(o Value) bool {
	if v.Valid != o.Valid {
		return false
	}
	if !v.Valid {
		return true
	}
	if math.IsNaN(v.Float) && math.IsNaN(o.Float) {
		return true
	}
	return v.Float == o.Float
}

// Point is one sample: a value and a timestamp in milliseconds since epoch.
type Point struct {
	Value     Value
	Timestamp int64
}

// NewPoint returns a point carrying a value.
func NewPoint(v float64, ts int64) Point {
	return Point{Value: Float(v), Timestamp: ts}
}

// NullPoint returns a gap marker at ts.
func NullPoint(ts int64) Point {
	return Point{Timestamp: ts}
}

// Series is an ordered sequence of points, normally ascending by timestamp.
// Duplicate timestamps are allowed and are treated independently.
type Series []Point

// Len returns the number of points
func (s Series) Len() int { return len(s) }

// Clone returns an independently owned copy.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Timestamps returns the timestamps in series order.
func (s Series) Timestamps() []int64 {
	out := make([]int64, len(s))
	for i, p := range s {
		out[i] = p.Timestamp
	}
	return out
}

// Values returns the values in series order.
func (s Series) Values() []Value {
	out := make([]Value, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// IsSorted reports whether timestamps are non-decreasing.
func (s Series) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp < s[i-1].Timestamp {
			return false
		}
	}
	return true
}

// SortByTime returns a copy sorted ascending by timestamp. The sort is stable
// so points sharing a timestamp keep their relative order.
func (s Series) SortByTime() Series {
	out := s.Clone()
	if out.IsSorted() {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Equal compares two series point by point.
func (s Series) Equal(o Series) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Timestamp != o[i].Timestamp || !s[i].Value.Equal(o[i].Value) {
			return false
		}
	}
	return true
}

// TimeSeries is a named series.
type TimeSeries struct {
	Target     string `json:"target"`
	Datapoints Series `json:"datapoints"`
}

// CountPoints counts points across all series
func CountPoints(series []TimeSeries) int {
	total := 0
	for _, ts := range series {
		total += len(ts.Datapoints)
	}
	return total
}

// TimeWindow is the half-open interval (From, To] in milliseconds.
type TimeWindow struct {
	From int64
	To   int64
}

// NewTimeWindow returns the window of the given width that ends at to.
func NewTimeWindow(to, width int64) TimeWindow {
	return TimeWindow{From: to - width, To: to}
}

// Contains reports whether ts falls inside the window.
func (w TimeWindow) Contains(ts int64) bool {
	return w.From < ts && ts <= w.To
}

// Shift moves the window back by n widths.
func (w TimeWindow) Shift(n int64) TimeWindow {
	width := w.To - w.From
	return TimeWindow{From: w.From - n*width, To: w.To - n*width}
}
