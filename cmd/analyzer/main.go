package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"cocoalens/internal/analytics"
	"cocoalens/internal/config"
	"cocoalens/internal/dataset"
	"cocoalens/internal/exporter"
	"cocoalens/internal/files"
	"cocoalens/internal/infrastructure"
	"cocoalens/internal/models"
	"cocoalens/internal/validation"
	"cocoalens/pkg/contracts/domain"
)

func main() {
	inFile := flag.String("in", "", "input dataset file (.csv or .xlsx); defaults to the newest dataset in the data directory")
	outDir := flag.String("out", "", "output directory for aggregate tables (defaults to the configured reports directory)")
	format := flag.String("format", "both", "export format: csv, json or both")
	fitModels := flag.Bool("models", true, "fit the illustrative linear and tree models")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "analyzer")

	// Every log line in this run carries the same run_id.
	ctx := infrastructure.ContextWithRunID(context.Background())

	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	if *inFile == "" {
		discovery := files.NewDiscovery(".")
		latest, err := discovery.LatestDataset(cfg.Paths.DataDir)
		if err != nil {
			logger.ErrorContext(ctx, "No input dataset found", slog.String("error", err.Error()))
			os.Exit(1)
		}
		*inFile = latest.Path
	}

	logger.InfoContext(ctx, "Starting chocolate-bar review analysis",
		slog.String("input", *inFile),
		slog.String("output_dir", *outDir),
		slog.String("format", *format))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(*inFile); err != nil {
		logger.ErrorContext(ctx, "Input validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(*outDir); err != nil {
		logger.ErrorContext(ctx, "Output validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	records, report, err := dataset.Load(ctx, *inFile, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Dataset load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if report.Failed > 0 {
		logger.WarnContext(ctx, "Some rows were excluded from the cleaned table",
			slog.Int("failed", report.Failed),
			slog.Any("samples", report.Samples))
	}

	summary, err := analytics.RunAll(ctx, records, cfg.Analysis, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	exp := exporter.NewExporter(logger)
	if *format == "csv" || *format == "both" {
		if err := exp.WriteSummaryCSV(ctx, *outDir, summary); err != nil {
			logger.ErrorContext(ctx, "CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if *format == "json" || *format == "both" {
		jsonPath := filepath.Join(*outDir, "summary.json")
		if err := exp.WriteSummaryJSON(ctx, jsonPath, summary); err != nil {
			logger.ErrorContext(ctx, "JSON export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *fitModels {
		fitAndLogModels(ctx, logger, records)
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("records", len(records)),
		slog.Int("dropped", report.Dropped),
		slog.Int("failed", report.Failed))
}

// fitAndLogModels fits the two illustrative models and logs their
// in-sample fit. Model failures are reported but never fail the run; the
// aggregate tables are already written.
func fitAndLogModels(ctx context.Context, logger *slog.Logger, records []domain.Record) {
	if len(records) < 2 {
		logger.WarnContext(ctx, "Too few records to fit models", slog.Int("records", len(records)))
		return
	}

	dm, err := models.NewDesignMatrix(records, models.CandidatePredictors)
	if err != nil {
		logger.WarnContext(ctx, "Feature encoding failed", slog.String("error", err.Error()))
		return
	}

	trace, err := models.ForwardSelect(dm, models.CandidatePredictors)
	if err != nil {
		logger.WarnContext(ctx, "Linear model selection failed", slog.String("error", err.Error()))
	} else {
		final := trace[len(trace)-1]
		logger.InfoContext(ctx, "Linear model fitted",
			slog.Any("predictors", final.Predictors),
			slog.Float64("r_squared", final.RSquared))
	}

	samples := models.SamplesFrom(records)
	tree := models.NewRegressionTree(models.DefaultTreeConfig())
	if err := tree.Fit(samples); err != nil {
		logger.WarnContext(ctx, "Tree model fit failed", slog.String("error", err.Error()))
		return
	}
	preds, err := tree.PredictAll(samples)
	if err != nil {
		logger.WarnContext(ctx, "Tree model prediction failed", slog.String("error", err.Error()))
		return
	}
	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Rating
	}
	logger.InfoContext(ctx, "Tree model fitted",
		slog.Float64("r_squared", models.RSquared(ys, preds)),
		slog.Float64("mse", models.MSE(ys, preds)))
}
