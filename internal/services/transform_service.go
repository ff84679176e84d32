package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/config"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/soltixdb/tsfunc/internal/processing"
	"github.com/soltixdb/tsfunc/internal/utils"
)

// TransformService validates transform requests and runs them through the
// processing pipeline
type TransformService struct {
	logger          *logging.Logger
	processor       *processing.Processor
	cfg             config.TransformConfig
	defaultPipeline *processing.Pipeline
	timeout         time.Duration
}

// NewTransformService creates a new TransformService. The default pipeline
// is compiled here, so a bad configured pipeline fails at start-up.
func NewTransformService(
	logger *logging.Logger,
	processor *processing.Processor,
	cfg config.TransformConfig,
) (*TransformService, error) {
	pipeline, err := processing.Compile(cfg.DefaultPipeline())
	if err != nil {
		return nil, fmt.Errorf("default pipeline: %w", err)
	}

	return &TransformService{
		logger:          logger,
		processor:       processor,
		cfg:             cfg,
		defaultPipeline: pipeline,
		timeout:         utils.DefaultRequestTimeout,
	}, nil
}

// Execute validates req, compiles its steps (or uses the default pipeline
// when it has none) and applies them to the request series.
func (s *TransformService) Execute(ctx context.Context, req *models.TransformRequest) (*models.TransformResponse, error) {
	startTime := time.Now()

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = logging.WithRequestID(ctx, requestID)
	}
	logger := s.logger.WithContext(ctx)

	if err := s.validate(req); err != nil {
		return nil, err
	}

	pipeline, err := s.pipelineFor(req.Steps)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.processor.Apply(ctx, pipeline, req.Series)
	if err != nil {
		logger.Warn("Transform aborted",
			"error", err,
			"latency_ms", time.Since(startTime).Milliseconds())
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, NewServiceError(CodeCancelled, err.Error())
		}
		return nil, err
	}

	logger.Info("Transform completed",
		"series_in", len(req.Series),
		"points_in", models.CountPoints(req.Series),
		"series_out", len(result),
		"points_out", models.CountPoints(result),
		"pipeline", pipeline.String(),
		"latency_ms", time.Since(startTime).Milliseconds())

	return &models.TransformResponse{
		RequestID: requestID,
		Series:    result,
		Count:     len(result),
	}, nil
}

// Functions lists supported step functions and aggregations
func (s *TransformService) Functions() *models.FunctionsResponse {
	aggs := make([]string, 0, len(aggregation.ValidTypes()))
	for _, t := range aggregation.ValidTypes() {
		aggs = append(aggs, string(t))
	}
	return &models.FunctionsResponse{
		Functions:    models.StepFuncs(),
		Aggregations: aggs,
	}
}

func (s *TransformService) validate(req *models.TransformRequest) error {
	if req == nil {
		return NewServiceError(CodeInvalidRequest, "request body is required")
	}

	if len(req.Series) > s.cfg.MaxSeries {
		return NewServiceErrorWithDetails(CodeLimitExceeded,
			fmt.Sprintf("too many series: %d (max %d)", len(req.Series), s.cfg.MaxSeries),
			map[string]interface{}{"series": len(req.Series), "max_series": s.cfg.MaxSeries})
	}

	for i, ts := range req.Series {
		if len(ts.Datapoints) > s.cfg.MaxPointsPerSeries {
			return NewServiceErrorWithDetails(CodeLimitExceeded,
				fmt.Sprintf("series %q has too many points: %d (max %d)", ts.Target, len(ts.Datapoints), s.cfg.MaxPointsPerSeries),
				map[string]interface{}{
					"index":                 i,
					"target":                ts.Target,
					"points":                len(ts.Datapoints),
					"max_points_per_series": s.cfg.MaxPointsPerSeries,
				})
		}
	}

	return nil
}

func (s *TransformService) pipelineFor(steps []models.StepConfig) (*processing.Pipeline, error) {
	if len(steps) == 0 {
		return s.defaultPipeline, nil
	}

	pipeline, err := processing.Compile(s.cfg.ApplyDefaults(steps))
	if err != nil {
		var stepErr *processing.StepError
		if errors.As(err, &stepErr) {
			return nil, NewServiceErrorWithDetails(CodeInvalidPipeline, err.Error(),
				map[string]interface{}{"index": stepErr.Index, "func": stepErr.Func})
		}
		return nil, NewServiceError(CodeInvalidPipeline, err.Error())
	}
	return pipeline, nil
}
