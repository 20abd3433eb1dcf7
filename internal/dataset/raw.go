package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"cocoalens/internal/errors"
)

// RawTable holds the untyped source table: a header row plus data rows in
// input order. It only exists between loading and normalization.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// LoadCSV reads a comma-delimited source with a header row into a RawTable.
// The reader rejects rows whose column count differs from the header
// (truncated rows are a format error, not padded). A UTF-8 BOM on the
// first cell is stripped.
func LoadCSV(path string) (RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return RawTable{}, errors.NewIOError("failed to open dataset", err).
			WithContext("path", path)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads a RawTable from r. Split out of LoadCSV so tests and
// in-memory sources do not need a file on disk.
func ReadCSV(r io.Reader) (RawTable, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return RawTable{}, errors.NewIOError("failed to read dataset content", err)
	}

	// Remove BOM if present
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	// FieldsPerRecord is set from the first row, so inconsistent column
	// counts surface as csv.ErrFieldCount below.
	rows, err := reader.ReadAll()
	if err != nil {
		return RawTable{}, errors.NewFormatError("inconsistent row shape in dataset", err)
	}

	if len(rows) == 0 {
		return RawTable{}, errors.NewFormatError("dataset has no header row", nil)
	}

	return RawTable{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
