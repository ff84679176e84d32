package models

// StepConfig describes one transformation step of a pipeline.
// Which fields are read depends on Func.
type StepConfig struct {
	Func        string  `json:"func" mapstructure:"func"`                         // downsample, groupBy, groupByPerf, scale, delta, rate, timeShift, sumSeries, aggregateBy
	Interval    string  `json:"interval,omitempty" mapstructure:"interval"`       // window/bucket width or shift, e.g. 1m, 5m, -1h
	Aggregation string  `json:"aggregation,omitempty" mapstructure:"aggregation"` // avg (default), min, max, sum, count, median
	Factor      float64 `json:"factor,omitempty" mapstructure:"factor"`           // scale factor
	TimeTo      int64   `json:"time_to,omitempty" mapstructure:"time_to"`         // downsample end in seconds (0 = newest sample)
}

// TransformRequest is the body of POST /v1/transform
type TransformRequest struct {
	Series []TimeSeries `json:"series"`
	Steps  []StepConfig `json:"steps,omitempty"`
}

// Step function names accepted in StepConfig.Func
const (
	StepDownsample  = "downsample"
	StepGroupBy     = "groupBy"
	StepGroupByPerf = "groupByPerf"
	StepScale       = "scale"
	StepDelta       = "delta"
	StepRate        = "rate"
	StepTimeShift   = "timeShift"
	StepSumSeries   = "sumSeries"
	StepAggregateBy = "aggregateBy"
)

// StepFuncs lists every step function name
func StepFuncs() []string {
	return []string{
		StepDownsample, StepGroupBy, StepGroupByPerf,
		StepScale, StepDelta, StepRate, StepTimeShift,
		StepSumSeries, StepAggregateBy,
	}
}

// IsStepFunc reports whether name is a known step function
func IsStepFunc(name string) bool {
	for _, f := range StepFuncs() {
		if f == name {
			return true
		}
	}
	return false
}

// NeedsInterval reports whether the step reads Interval
func (s StepConfig) NeedsInterval() bool {
	switch s.Func {
	case StepDownsample, StepGroupBy, StepGroupByPerf, StepTimeShift, StepAggregateBy:
		return true
	}
	return false
}
