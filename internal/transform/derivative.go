package transform

import "github.com/soltixdb/tsfunc/internal/models"

// Delta returns the difference between each point and its predecessor,
// stamped at the later point. The first point has no predecessor, so the
// output is one point shorter than the input. A null on either side yields a
// null point.
func Delta(datapoints models.Series) models.Series {
	if len(datapoints) < 2 {
		return models.Series{}
	}

	result := make(models.Series, 0, len(datapoints)-1)
	for i := 1; i < len(datapoints); i++ {
		cur, prev := datapoints[i], datapoints[i-1]
		if !cur.Value.Valid || !prev.Value.Valid {
			result = append(result, models.NullPoint(cur.Timestamp))
			continue
		}
		result = append(result, models.NewPoint(cur.Value.Float-prev.Value.Float, cur.Timestamp))
	}
	return result
}

// Rate returns the per-second rate of change of a counter, one point shorter
// than the input.
//
// A decrease between two samples is a counter reset. The reset pair is not
// used: the point repeats the last rate computed from a non-decreasing pair,
// or 0 if there was none yet, so resets never produce negative spikes.
// A null on either side yields a null point and does not change the last rate.
//
// Samples sharing a timestamp divide by a zero time delta; the resulting
// +Inf or NaN is passed through unchanged.
func Rate(datapoints models.Series) models.Series {
	if len(datapoints) < 2 {
		return models.Series{}
	}

	result := make(models.Series, 0, len(datapoints)-1)
	lastRate := 0.0
	for i := 1; i < len(datapoints); i++ {
		cur, prev := datapoints[i], datapoints[i-1]
		if !cur.Value.Valid || !prev.Value.Valid {
			result = append(result, models.NullPoint(cur.Timestamp))
			continue
		}

		if cur.Value.Float >= prev.Value.Float {
			timeDelta := float64(cur.Timestamp-prev.Timestamp) / 1000
			lastRate = (cur.Value.Float - prev.Value.Float) / timeDelta
		}
		result = append(result, models.NewPoint(lastRate, cur.Timestamp))
	}
	return result
}
