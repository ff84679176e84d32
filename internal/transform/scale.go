// Package transform holds point-wise series transforms: scaling, deltas,
// rates and time shifts.
package transform

import "github.com/soltixdb/tsfunc/internal/models"

// Scale returns a new series with every value multiplied by factor.
// Null values stay null and timestamps are preserved.
func Scale(datapoints models.Series, factor float64) models.Series {
	result := make(models.Series, len(datapoints))
	for i, p := range datapoints {
		result[i] = scalePoint(p, factor)
	}
	return result
}

// ScaleInPlace multiplies every value by factor in place and returns the same
// slice. Callers that still need the original values must use Scale. Not safe
// for concurrent use on a shared series.
func ScaleInPlace(datapoints models.Series, factor float64) models.Series {
	for i := range datapoints {
		datapoints[i] = scalePoint(datapoints[i], factor)
	}
	return datapoints
}

func scalePoint(p models.Point, factor float64) models.Point {
	if p.Value.Valid {
		p.Value.Float *= factor
	}
	return p
}

// TimeShift returns a new series with every timestamp moved by deltaMs.
func TimeShift(datapoints models.Series, deltaMs int64) models.Series {
	result := make(models.Series, len(datapoints))
	for i, p := range datapoints {
		p.Timestamp += deltaMs
		result[i] = p
	}
	return result
}
