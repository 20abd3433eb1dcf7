package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"cocoalens/internal/errors"
	"cocoalens/pkg/contracts/domain"
)

// Load reads, normalizes and derives the dataset at path in one call.
// CSV and Excel sources are dispatched on the file extension.
func Load(ctx context.Context, path string, logger *slog.Logger) ([]domain.Record, *LoadReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		table RawTable
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		table, err = LoadCSV(path)
	case ".xlsx", ".xls":
		table, err = LoadXLSX(path)
	default:
		return nil, nil, errors.NewFormatError("unsupported dataset extension", nil).
			WithContext("path", path)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.InfoContext(ctx, "loaded raw table",
		slog.String("path", path),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))

	return NewNormalizer(logger).Normalize(ctx, table)
}
