package processing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/combine"
	"github.com/soltixdb/tsfunc/internal/downsampling"
	"github.com/soltixdb/tsfunc/internal/interval"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/soltixdb/tsfunc/internal/transform"
	"github.com/soltixdb/tsfunc/internal/utils"
)

var (
	// ErrUnknownStep is wrapped when a step names an unsupported func
	ErrUnknownStep = errors.New("unknown step function")
	// ErrMissingInterval is wrapped when a step that needs an interval has none
	ErrMissingInterval = errors.New("missing interval")
)

// StepError reports which step of a pipeline failed to compile.
type StepError struct {
	Index int
	Func  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Func, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline is a compiled, immutable list of steps. It is safe to share a
// Pipeline between goroutines.
type Pipeline struct {
	steps []step
}

// step is either per-series (each) or a reduction over all series (all).
// each receives the step input so it can derive parameters from it.
type step struct {
	cfg  models.StepConfig
	each func(in []models.TimeSeries) func(models.Series) models.Series
	all  func(in []models.TimeSeries) []models.TimeSeries
}

// Len returns the number of steps
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Steps returns the configuration each step was compiled from
func (p *Pipeline) Steps() []models.StepConfig {
	out := make([]models.StepConfig, p.Len())
	for i := range out {
		out[i] = p.steps[i].cfg
	}
	return out
}

func (p *Pipeline) String() string {
	names := make([]string, p.Len())
	for i := range names {
		names[i] = p.steps[i].cfg.Func
	}
	return strings.Join(names, " | ")
}

// Compile validates every step, parses intervals and resolves aggregations.
// Nothing runs until the whole pipeline compiled.
func Compile(steps []models.StepConfig) (*Pipeline, error) {
	p := &Pipeline{steps: make([]step, 0, len(steps))}
	for i, cfg := range steps {
		st, err := compileStep(cfg)
		if err != nil {
			return nil, &StepError{Index: i, Func: cfg.Func, Err: err}
		}
		p.steps = append(p.steps, st)
	}
	return p, nil
}

func compileStep(cfg models.StepConfig) (step, error) {
	st := step{cfg: cfg}
	if !models.IsStepFunc(cfg.Func) {
		return st, fmt.Errorf("%w: %q", ErrUnknownStep, cfg.Func)
	}

	fn, err := aggregation.Lookup(cfg.Aggregation)
	if err != nil {
		return st, err
	}

	var ms int64
	if cfg.NeedsInterval() {
		if cfg.Interval == "" {
			return st, ErrMissingInterval
		}
		if cfg.Func == models.StepTimeShift {
			ms, err = interval.ParseSigned(cfg.Interval)
		} else {
			ms, err = interval.Parse(cfg.Interval)
		}
		if err != nil {
			return st, err
		}
	}

	switch cfg.Func {
	case models.StepDownsample:
		timeTo := cfg.TimeTo
		st.each = func(in []models.TimeSeries) func(models.Series) models.Series {
			to := timeTo
			if to == 0 {
				to = newestSecond(in)
			}
			return func(s models.Series) models.Series {
				return downsampling.Downsample(s, to, ms, fn)
			}
		}
	case models.StepGroupBy:
		st.each = constant(func(s models.Series) models.Series {
			return downsampling.GroupByMs(s, ms, fn)
		})
	case models.StepGroupByPerf:
		st.each = constant(func(s models.Series) models.Series {
			return downsampling.GroupByPerfMs(s, ms, fn)
		})
	case models.StepScale:
		factor := cfg.Factor
		st.each = constant(func(s models.Series) models.Series {
			return transform.ScaleInPlace(s, factor)
		})
	case models.StepDelta:
		st.each = constant(transform.Delta)
	case models.StepRate:
		st.each = constant(transform.Rate)
	case models.StepTimeShift:
		st.each = constant(func(s models.Series) models.Series {
			return transform.TimeShift(s, ms)
		})
	case models.StepSumSeries:
		st.all = reduce(models.StepSumSeries, combine.SumSeries)
	case models.StepAggregateBy:
		st.all = reduce(models.StepAggregateBy, func(all []models.Series) models.Series {
			return combine.AggregateByMs(all, ms, fn)
		})
	}

	return st, nil
}

func constant(f func(models.Series) models.Series) func([]models.TimeSeries) func(models.Series) models.Series {
	return func([]models.TimeSeries) func(models.Series) models.Series {
		return f
	}
}

// reduce collapses all series into one named name(target1,target2,...).
// No input series gives no output series.
func reduce(name string, f func([]models.Series) models.Series) func([]models.TimeSeries) []models.TimeSeries {
	return func(in []models.TimeSeries) []models.TimeSeries {
		if len(in) == 0 {
			return []models.TimeSeries{}
		}
		all := make([]models.Series, len(in))
		targets := make([]string, len(in))
		for i, ts := range in {
			all[i] = ts.Datapoints
			targets[i] = ts.Target
		}
		return []models.TimeSeries{{
			Target:     name + "(" + strings.Join(targets, ",") + ")",
			Datapoints: f(all),
		}}
	}
}

// newestSecond returns the newest timestamp across all series, in seconds,
// rounded up.
func newestSecond(in []models.TimeSeries) int64 {
	var newest int64
	found := false
	for _, ts := range in {
		if n := len(ts.Datapoints); n > 0 {
			last := ts.Datapoints[n-1].Timestamp
			if !found || last > newest {
				newest = last
				found = true
			}
		}
	}
	if !found {
		return 0
	}
	return -utils.FloorDiv(-newest, utils.MillisPerSecond)
}
