package combine

import (
	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/downsampling"
	"github.com/soltixdb/tsfunc/internal/models"
)

// Flatten concatenates the series and sorts the result by time.
func Flatten(timeseries []models.Series) models.Series {
	total := 0
	for _, s := range timeseries {
		total += len(s)
	}

	flat := make(models.Series, 0, total)
	for _, s := range timeseries {
		flat = append(flat, s...)
	}
	return flat.SortByTime()
}

// AggregateBy pools the samples of all series and aggregates them per bucket,
// e.g. the average across every host per minute. Gap buckets are null, as in
// downsampling.GroupByPerf.
func AggregateBy(timeseries []models.Series, groupInterval string, fn aggregation.Func) (models.Series, error) {
	return downsampling.GroupByPerf(Flatten(timeseries), groupInterval, fn)
}

// AggregateByMs is AggregateBy with an already parsed bucket width.
func AggregateByMs(timeseries []models.Series, msInterval int64, fn aggregation.Func) models.Series {
	return downsampling.GroupByPerfMs(Flatten(timeseries), msInterval, fn)
}
