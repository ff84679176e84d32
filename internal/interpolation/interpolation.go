// Package interpolation fills gaps in a series from its nearest known samples.
package interpolation

import "github.com/soltixdb/tsfunc/internal/models"

// Linear estimates the value at ts on the line through left and right.
// When both neighbours share a timestamp the result is their midpoint, which
// also covers the single-neighbour case where left and right are the same point.
func Linear(ts int64, left, right models.Point) float64 {
	if left.Timestamp == right.Timestamp {
		return (left.Value.Float + right.Value.Float) / 2
	}
	slope := (right.Value.Float - left.Value.Float) / float64(right.Timestamp-left.Timestamp)
	return left.Value.Float + slope*float64(ts-left.Timestamp)
}

// InterpolateSeries fills every null point in place and returns the same slice.
//
// Each gap takes its nearest non-null neighbour on either side; a gap with a
// neighbour on one side only is flattened to that neighbour's value. Only
// original samples act as neighbours, so the result does not depend on the
// order in which gaps are filled. A series with no non-null sample is left
// unchanged. The series must be sorted ascending.
func InterpolateSeries(series models.Series) models.Series {
	n := len(series)
	if n == 0 {
		return series
	}

	// right[i] is the index of the first non-null sample at or after i
	right := make([]int, n)
	next := -1
	for i := n - 1; i >= 0; i-- {
		if series[i].Value.Valid {
			next = i
		}
		right[i] = next
	}

	prev := -1
	for i := 0; i < n; i++ {
		if series[i].Value.Valid {
			prev = i
			continue
		}

		l, r := prev, right[i]
		if l < 0 && r < 0 {
			// no samples at all
			return series
		}
		if l < 0 {
			l = r
		}
		if r < 0 {
			r = l
		}
		series[i].Value = models.Float(Linear(series[i].Timestamp, series[l], series[r]))
	}

	return series
}
