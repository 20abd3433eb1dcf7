package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cocoalens/internal/errors"
)

func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

func TestLoad_CSVEndToEnd(t *testing.T) {
	path := writeCSV(t, [][]string{
		rawHeaders,
		append([]string{}, rawHeaders...), // header echo shipped as data
		goodRow(nil),
		goodRow(map[int]string{0: "Bonnat (Chapuis)", 3: "2013", 4: "70%"}),
		goodRow(map[int]string{6: "amazing"}), // bad rating, excluded
	})

	records, report, err := Load(context.Background(), path, nil)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 4, report.TotalRows)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 1, report.Failed)

	assert.Equal(t, "A. Morin", records[0].Company)
	assert.Equal(t, "Chapuis", records[1].Maker)
	assert.Equal(t, 2013, records[1].ReviewYear())
	assert.Equal(t, 70.0, records[1].CocoaPercent)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, _, err := Load(context.Background(), "reviews.parquet", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFormat))
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeIO))
}
