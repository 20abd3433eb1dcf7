package dataset

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"cocoalens/internal/errors"
)

// LoadXLSX reads the review table from an Excel workbook into the same
// RawTable shape LoadCSV produces. The sheet is located by content: the
// first sheet whose early rows contain the company, cocoa and rating
// headers. Workbooks trim trailing empty cells per row, so short rows are
// padded back to the header width rather than rejected.
func LoadXLSX(path string) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawTable{}, errors.NewIOError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, headerRow, found := findReviewSheet(f)
	if !found {
		return RawTable{}, errors.NewFormatError("could not find review sheet in workbook", nil).
			WithContext("path", path)
	}

	headers := rows[headerRow]
	table := RawTable{Headers: headers}

	for _, row := range rows[headerRow+1:] {
		if isEmptyRow(row) {
			continue
		}
		if len(row) > len(headers) {
			return RawTable{}, errors.NewFormatError("row wider than header in workbook", nil)
		}
		padded := make([]string, len(headers))
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}

	return table, nil
}

// findReviewSheet scans the workbook for a sheet whose first rows look
// like the review table header and returns its rows plus the header row
// index.
func findReviewSheet(f *excelize.File) ([][]string, int, bool) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i, row := range rows {
			if i > 3 {
				break
			}
			rowText := strings.ToLower(strings.Join(row, " "))
			if strings.Contains(rowText, "company") &&
				strings.Contains(rowText, "cocoa") &&
				strings.Contains(rowText, "rating") {
				return rows, i, true
			}
		}
	}
	return nil, 0, false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
