package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cocoalens/internal/analytics"
	"cocoalens/internal/errors"
)

// Exporter writes the aggregate tables produced by an analysis run. The
// exports are conveniences for downstream consumers; the in-memory
// Summary stays the source of truth.
type Exporter struct {
	logger    *slog.Logger
	csvWriter *CSVWriter
	bomPrefix bool
}

// NewExporter creates an exporter writing into outDir.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		logger:    logger,
		csvWriter: NewCSVWriter(logger),
		bomPrefix: true,
	}
}

// WriteSummaryCSV writes one CSV file per aggregate table into outDir.
func (e *Exporter) WriteSummaryCSV(ctx context.Context, outDir string, summary *analytics.Summary) error {
	e.logger.InfoContext(ctx, "writing aggregate tables",
		slog.String("out_dir", outDir))

	tables := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{"ratings_by_year.csv", []string{"Year", "Count", "MeanRating", "StddevRating"}, yearRows(summary.Years)},
		{"low_rating_share.csv", []string{"Year", "CountBelow", "Total", "Fraction"}, lowRatingRows(summary.LowRatings)},
		{"ratings_by_company.csv", []string{"Company", "Count", "MeanRating"}, groupRows(summary.Companies)},
		{"ratings_by_maker.csv", []string{"Maker", "Count", "MeanRating"}, groupRows(summary.Makers)},
		{"ratings_by_origin.csv", []string{"Origin", "Count", "MeanRating"}, groupRows(summary.Origins)},
		{"company_origin_heatmap.csv", []string{"Company", "Origin", "Count"}, heatmapRows(summary.Heatmap)},
	}

	for _, table := range tables {
		path := filepath.Join(outDir, table.name)
		if err := e.csvWriter.WriteCSV(path, WriteOptions{
			Headers:   table.headers,
			Records:   table.rows,
			BOMPrefix: e.bomPrefix,
		}); err != nil {
			return err
		}
	}

	return nil
}

// WriteSummaryJSON writes the whole summary as one JSON document with
// generation metadata.
func (e *Exporter) WriteSummaryJSON(ctx context.Context, path string, summary *analytics.Summary) error {
	e.logger.InfoContext(ctx, "writing summary JSON", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	doc := map[string]interface{}{
		"summary":      summary,
		"generated_at": time.Now().Format(time.RFC3339),
		"format":       "aggregate_summary_v1",
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create summary JSON file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return errors.NewStorageError("failed to encode summary JSON", err)
	}

	return nil
}

func yearRows(stats []analytics.YearStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		stddev := ""
		if s.StddevValid {
			stddev = formatFloat(s.StddevRating)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Count),
			formatFloat(s.MeanRating),
			stddev,
		})
	}
	return rows
}

func lowRatingRows(stats []analytics.LowRatingRow) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.CountBelow),
			strconv.Itoa(s.Total),
			fmt.Sprintf("%.2f", s.Fraction),
		})
	}
	return rows
}

func groupRows(stats []analytics.GroupStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Key,
			strconv.Itoa(s.Count),
			formatFloat(s.MeanRating),
		})
	}
	return rows
}

func heatmapRows(cells []analytics.HeatmapCount) [][]string {
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []string{c.Company, c.Origin, strconv.Itoa(c.Count)})
	}
	return rows
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.3f", f)
}
