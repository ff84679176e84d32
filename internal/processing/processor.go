// Package processing compiles step configurations into a pipeline and runs
// it over a set of named series.
package processing

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/models"
)

// ProcessorConfig contains configuration for the processor
type ProcessorConfig struct {
	// Workers limits how many series a per-series step transforms at once.
	// Values below 1 select runtime.NumCPU().
	Workers int
}

// DefaultProcessorConfig returns default configuration
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{Workers: runtime.NumCPU()}
}

// Processor runs compiled pipelines
type Processor struct {
	logger  *logging.Logger
	workers int
}

// NewProcessor creates a Processor with the default configuration
func NewProcessor(logger *logging.Logger) *Processor {
	return NewProcessorWithConfig(logger, DefaultProcessorConfig())
}

// NewProcessorWithConfig creates a Processor
func NewProcessorWithConfig(logger *logging.Logger, cfg ProcessorConfig) *Processor {
	if logger == nil {
		logger = logging.Global()
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Processor{
		logger:  logger,
		workers: cfg.Workers,
	}
}

// Apply runs every step of p in order. Inputs are copied (and sorted by
// timestamp when needed) before the first step, so the caller's series are
// never modified. The context is checked between steps.
func (pr *Processor) Apply(ctx context.Context, p *Pipeline, series []models.TimeSeries) ([]models.TimeSeries, error) {
	current := prepare(series)
	if p == nil {
		return current, nil
	}

	logger := pr.logger.WithContext(ctx)
	debug := logger.Enabled(zerolog.DebugLevel)

	for i, st := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline interrupted before step %d: %w", i, err)
		}

		before := models.CountPoints(current)
		if st.all != nil {
			current = st.all(current)
		} else {
			var err error
			current, err = pr.mapSeries(ctx, current, st.each(current))
			if err != nil {
				return nil, fmt.Errorf("pipeline interrupted in step %d: %w", i, err)
			}
		}

		if debug {
			logger.Debug("Applied pipeline step",
				"index", i,
				"func", st.cfg.Func,
				"series", len(current),
				"points_in", before,
				"points_out", models.CountPoints(current))
		}
	}

	return current, nil
}

// mapSeries applies f to every series, at most pr.workers at a time.
// Output order matches input order.
func (pr *Processor) mapSeries(ctx context.Context, in []models.TimeSeries, f func(models.Series) models.Series) ([]models.TimeSeries, error) {
	out := make([]models.TimeSeries, len(in))

	if pr.workers == 1 || len(in) < 2 {
		for i, ts := range in {
			out[i] = models.TimeSeries{Target: ts.Target, Datapoints: f(ts.Datapoints)}
		}
		return out, nil
	}

	semaphore := make(chan struct{}, pr.workers)
	var wg sync.WaitGroup

	var err error
	for i := range in {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case semaphore <- struct{}{}:
		}
		if err != nil {
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			out[i] = models.TimeSeries{Target: in[i].Target, Datapoints: f(in[i].Datapoints)}
		}(i)
	}

	wg.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func prepare(series []models.TimeSeries) []models.TimeSeries {
	out := make([]models.TimeSeries, len(series))
	for i, ts := range series {
		out[i] = models.TimeSeries{Target: ts.Target, Datapoints: ts.Datapoints.SortByTime()}
	}
	return out
}
