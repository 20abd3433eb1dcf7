package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cocoalens/internal/errors"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  apperrors.ErrorType
		wantRows int
	}{
		{
			name:     "simple table",
			input:    "A,B\n1,2\n3,4\n",
			wantRows: 2,
		},
		{
			name:     "BOM stripped",
			input:    "\ufeffA,B\n1,2\n",
			wantRows: 1,
		},
		{
			name:    "inconsistent column count",
			input:   "A,B\n1,2,3\n",
			wantErr: apperrors.ErrTypeFormat,
		},
		{
			name:    "empty source",
			input:   "",
			wantErr: apperrors.ErrTypeFormat,
		},
		{
			name:     "header only",
			input:    "A,B\n",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, table.Rows, tt.wantRows)
		})
	}
}

func TestReadCSV_StripsBOMFromHeader(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\ufeffCompany,Rating\nBonnat,3.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Company", "Rating"}, table.Headers)
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeIO))
	assert.True(t, apperrors.IsFatal(err))
}
