package downsampling

import (
	"fmt"
	"sort"

	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/interval"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/soltixdb/tsfunc/internal/utils"
)

// BucketStart aligns ts to the start of its bucket: floor(ts/ms)*ms.
func BucketStart(ts, msInterval int64) int64 {
	return utils.FloorDiv(ts, msInterval) * msInterval
}

// GroupBy parses the interval and aggregates each bucket with fn.
// See GroupByMs.
func GroupBy(datapoints models.Series, groupInterval string, fn aggregation.Func) (models.Series, error) {
	ms, err := interval.Parse(groupInterval)
	if err != nil {
		return nil, fmt.Errorf("group by: %w", err)
	}
	return GroupByMs(datapoints, ms, fn), nil
}

// GroupByMs partitions points into buckets of msInterval regardless of input
// order, aggregates each bucket with fn and returns one point per non-empty
// bucket, ascending, stamped at the bucket start. Empty buckets are absent.
func GroupByMs(datapoints models.Series, msInterval int64, fn aggregation.Func) models.Series {
	if msInterval <= 0 || len(datapoints) == 0 {
		return models.Series{}
	}
	if fn == nil {
		fn = aggregation.Average
	}

	buckets := make(map[int64][]models.Value)
	keys := make([]int64, 0)
	for _, p := range datapoints {
		key := BucketStart(p.Timestamp, msInterval)
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], p.Value)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	result := make(models.Series, len(keys))
	for i, key := range keys {
		result[i] = models.Point{Value: fn(buckets[key]), Timestamp: key}
	}
	return result
}

// GroupByPerf parses the interval and runs the single-pass bucketing.
// See GroupByPerfMs.
func GroupByPerf(datapoints models.Series, groupInterval string, fn aggregation.Func) (models.Series, error) {
	ms, err := interval.Parse(groupInterval)
	if err != nil {
		return nil, fmt.Errorf("group by: %w", err)
	}
	return GroupByPerfMs(datapoints, ms, fn), nil
}

// GroupByPerfMs buckets a sorted series in one forward pass.
//
// Unlike GroupByMs every bucket between the first and the last one is
// present: buckets with no points are emitted as null points. The input must
// be ascending; a point whose bucket precedes the current one is dropped.
func GroupByPerfMs(datapoints models.Series, msInterval int64, fn aggregation.Func) models.Series {
	if msInterval <= 0 || len(datapoints) == 0 {
		return models.Series{}
	}
	if fn == nil {
		fn = aggregation.Average
	}

	result := make(models.Series, 0)
	frameTs := BucketStart(datapoints[0].Timestamp, msInterval)
	frame := make([]models.Value, 0)

	for _, p := range datapoints {
		pointFrameTs := BucketStart(p.Timestamp, msInterval)
		switch {
		case pointFrameTs == frameTs:
			frame = append(frame, p.Value)
		case pointFrameTs > frameTs:
			result = append(result, models.Point{Value: fn(frame), Timestamp: frameTs})
			for frameTs += msInterval; frameTs < pointFrameTs; frameTs += msInterval {
				result = append(result, models.NullPoint(frameTs))
			}
			frame = append(frame[:0], p.Value)
		}
	}

	result = append(result, models.Point{Value: fn(frame), Timestamp: frameTs})
	return result
}
