// Package downsampling reduces the sampling frequency of a series by
// aggregating fixed-width time windows or buckets.
package downsampling

import (
	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/models"
)

// Downsample aggregates the series into backward-tiled windows of width
// msInterval. The newest window is (timeTo*1000-msInterval, timeTo*1000];
// each earlier window ends where the next one starts.
//
// Points are scanned newest first. When a point falls before the current
// window the window is closed, its aggregate is emitted at the window's To
// boundary, and the scan jumps straight to the window holding that point, so
// any run of empty windows costs O(1). Only windows that received at least one
// point produce output. Points newer than timeTo are ignored.
//
// The result is ascending by timestamp. A nil fn selects aggregation.Average.
func Downsample(datapoints models.Series, timeTo int64, msInterval int64, fn aggregation.Func) models.Series {
	result := models.Series{}
	if msInterval <= 0 || len(datapoints) == 0 {
		return result
	}
	if fn == nil {
		fn = aggregation.Average
	}

	window := models.NewTimeWindow(timeTo*1000, msInterval)
	frame := make([]models.Value, 0)

	for i := len(datapoints) - 1; i >= 0; i-- {
		p := datapoints[i]
		if p.Timestamp > window.To {
			continue
		}

		if !window.Contains(p.Timestamp) {
			if len(frame) > 0 {
				result = append(result, models.Point{Value: fn(frame), Timestamp: window.To})
				frame = frame[:0]
			}
			window = window.Shift((window.To - p.Timestamp) / msInterval)
		}
		frame = append(frame, p.Value)
	}

	if len(frame) > 0 {
		result = append(result, models.Point{Value: fn(frame), Timestamp: window.To})
	}

	reverse(result)
	return result
}

func reverse(s models.Series) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
