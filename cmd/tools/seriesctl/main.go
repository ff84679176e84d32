// Command seriesctl applies a transformation pipeline to series read from a
// JSON file or stdin and writes the result as JSON.
//
//	seriesctl -input cpu.json.sz -steps '[{"func":"groupBy","interval":"5m","aggregation":"max"}]'
//	cat series.json | seriesctl -config config.yaml -output out.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/soltixdb/tsfunc/internal/compression"
	"github.com/soltixdb/tsfunc/internal/config"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/soltixdb/tsfunc/internal/processing"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seriesctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "Input JSON file with a list of series (- for stdin)")
	output := fs.String("output", "-", "Output file (- for stdout)")
	stepsJSON := fs.String("steps", "", "Pipeline as a JSON list of steps; overrides the config pipeline")
	configPath := fs.String("config", "", "Path to configuration file")
	useSnappy := fs.Bool("snappy", false, "Input is snappy-compressed (implied by a .sz suffix)")
	pretty := fs.Bool("pretty", false, "Indent JSON output")
	verbose := fs.Bool("v", false, "Log each pipeline step to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := logging.NewWithWriter(zerolog.ConsoleWriter{Out: stderr, NoColor: true}, level)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	steps := cfg.Transform.DefaultPipeline()
	if *stepsJSON != "" {
		var parsed []models.StepConfig
		if err := json.Unmarshal([]byte(*stepsJSON), &parsed); err != nil {
			return fmt.Errorf("invalid -steps: %w", err)
		}
		steps = cfg.Transform.ApplyDefaults(parsed)
	}

	pipeline, err := processing.Compile(steps)
	if err != nil {
		return err
	}

	series, err := readSeries(*input, stdin, *useSnappy)
	if err != nil {
		return err
	}
	logger.Debug("Read input", "series", len(series), "points", models.CountPoints(series), "pipeline", pipeline.String())

	processor := processing.NewProcessorWithConfig(logger, processing.ProcessorConfig{Workers: cfg.Transform.Workers})
	result, err := processor.Apply(ctx, pipeline, series)
	if err != nil {
		return err
	}

	return writeSeries(*output, stdout, result, *pretty)
}

func readSeries(path string, stdin io.Reader, useSnappy bool) ([]models.TimeSeries, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	decoder := compression.ForFilename(path)
	if useSnappy {
		decoder = compression.NewSnappyCompressor()
	}
	data, err = decoder.Decompress(data)
	if err != nil {
		return nil, err
	}

	var series []models.TimeSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return series, nil
}

func writeSeries(path string, stdout io.Writer, series []models.TimeSeries, pretty bool) error {
	w := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(series)
}
