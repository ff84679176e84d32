// Package combine merges several series into one.
package combine

import (
	"sort"

	"github.com/soltixdb/tsfunc/internal/interpolation"
	"github.com/soltixdb/tsfunc/internal/models"
)

// SumSeries adds series together point by point.
//
// The output has one point per distinct timestamp found in any input. Each
// series is first completed on that timestamp union: missing timestamps are
// inserted as gaps and filled by linear interpolation from that series' own
// samples, never from another series. The completed series are then summed at
// every union timestamp. A series with no samples at all contributes nothing;
// a timestamp to which no series contributes is null.
//
// Inputs are not modified. The result is ascending by timestamp.
func SumSeries(timeseries []models.Series) models.Series {
	union := UnionTimestamps(timeseries)
	if len(union) == 0 {
		return models.Series{}
	}

	sums := make([]float64, len(union))
	present := make([]bool, len(union))

	for _, s := range timeseries {
		filled := fillToUnion(s, union)

		j := 0
		for i, ts := range union {
			for filled[j].Timestamp < ts {
				j++
			}
			if v := filled[j].Value; v.Valid {
				sums[i] += v.Float
				present[i] = true
			}
		}
	}

	result := make(models.Series, len(union))
	for i, ts := range union {
		if present[i] {
			result[i] = models.NewPoint(sums[i], ts)
		} else {
			result[i] = models.NullPoint(ts)
		}
	}
	return result
}

// UnionTimestamps returns every distinct timestamp across the series, ascending.
func UnionTimestamps(timeseries []models.Series) []int64 {
	seen := make(map[int64]struct{})
	for _, s := range timeseries {
		for _, p := range s {
			seen[p.Timestamp] = struct{}{}
		}
	}

	out := make([]int64, 0, len(seen))
	for ts := range seen {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fillToUnion returns a sorted, interpolated copy of s that holds at least one
// point at every timestamp of union.
func fillToUnion(s models.Series, union []int64) models.Series {
	own := make(map[int64]struct{}, len(s))
	for _, p := range s {
		own[p.Timestamp] = struct{}{}
	}

	filled := make(models.Series, 0, len(union))
	filled = append(filled, s...)
	for _, ts := range union {
		if _, ok := own[ts]; !ok {
			filled = append(filled, models.NullPoint(ts))
		}
	}

	return interpolation.InterpolateSeries(filled.SortByTime())
}
