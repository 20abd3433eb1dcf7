package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"cocoalens/internal/errors"
	"cocoalens/pkg/contracts/domain"
)

// Canonical column names after normalization. The raw headers carry
// embedded newlines ("Review\nDate") and mixed case; every downstream
// reference uses these names only.
const (
	ColCompanyMaker = "company_(maker-if-known)"
	ColBarName      = "specific_bean_origin_or_bar_name"
	ColRef          = "ref"
	ColReviewDate   = "review_date"
	ColCocoaPercent = "cocoa_percent"
	ColLocation     = "company_location"
	ColRating       = "rating"
	ColBeanType     = "bean_type"
	ColOrigin       = "broad_bean_origin"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CanonicalName canonicalizes a raw column header: every run of whitespace
// or line-break characters becomes a single underscore, then the result is
// lowercased. Applying it to an already-canonical name is a no-op.
func CanonicalName(header string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(header), "_"))
}

// RowError describes one data row excluded from the cleaned table.
type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
	Err   string `json:"error"`
}

// maxErrorSamples bounds the number of offending rows kept in the report.
const maxErrorSamples = 10

// LoadReport summarizes what happened to every source row during
// normalization. Failed rows are counted and sampled; they never abort
// the batch.
type LoadReport struct {
	TotalRows int        `json:"total_rows"`
	Loaded    int        `json:"loaded"`
	Dropped   int        `json:"dropped"` // header-echo rows
	Failed    int        `json:"failed"`
	Samples   []RowError `json:"samples,omitempty"`
}

func (r *LoadReport) addFailure(row int, field, value string, err error) {
	r.Failed++
	if len(r.Samples) < maxErrorSamples {
		r.Samples = append(r.Samples, RowError{
			Row:   row,
			Field: field,
			Value: value,
			Err:   err.Error(),
		})
	}
}

// Normalizer transforms a RawTable into typed, derived records.
type Normalizer struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewNormalizer creates a normalizer. A nil logger falls back to the
// default slog logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger:   logger,
		validate: validator.New(),
	}
}

// Normalize canonicalizes the header, drops header-echo rows, retypes every
// field and derives the company/maker split and the review-date timestamp.
// Rows that fail type coercion or range validation are excluded and
// reported; schema and shape problems are fatal.
func (n *Normalizer) Normalize(ctx context.Context, table RawTable) ([]domain.Record, *LoadReport, error) {
	columns, err := n.mapColumns(table.Headers)
	if err != nil {
		return nil, nil, err
	}

	canonical := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		canonical[i] = CanonicalName(h)
	}

	report := &LoadReport{TotalRows: len(table.Rows)}
	records := make([]domain.Record, 0, len(table.Rows))

	for i, row := range table.Rows {
		rowNum := i + 1 // 1-based data row index

		if len(row) != len(table.Headers) {
			return nil, nil, errors.NewFormatError("row column count differs from header", nil).
				WithContext("row", rowNum)
		}

		// A re-encoded copy of the header can masquerade as data. Detect
		// it structurally: the row's cells canonicalize to the header
		// names themselves.
		if isHeaderEcho(row, canonical) {
			report.Dropped++
			n.logger.InfoContext(ctx, "dropped header-echo row", slog.Int("row", rowNum))
			continue
		}

		record, rowErr := n.buildRecord(row, columns)
		if rowErr != nil {
			report.addFailure(rowNum, rowErr.Field, rowErr.Value, rowErr)
			n.logger.WarnContext(ctx, "excluded row from cleaned table",
				slog.Int("row", rowNum),
				slog.String("field", rowErr.Field),
				slog.String("error", rowErr.Error()))
			continue
		}

		records = append(records, record)
	}

	report.Loaded = len(records)

	n.logger.InfoContext(ctx, "normalized dataset",
		slog.Int("total_rows", report.TotalRows),
		slog.Int("loaded", report.Loaded),
		slog.Int("dropped", report.Dropped),
		slog.Int("failed", report.Failed))

	return records, report, nil
}

// columnMap holds the index of each canonical column in the source table.
type columnMap map[string]int

// mapColumns canonicalizes the header and resolves the required columns.
// Two raw headers canonicalizing to the same name make the schema
// ambiguous, which is fatal.
func (n *Normalizer) mapColumns(headers []string) (columnMap, error) {
	columns := make(columnMap, len(headers))
	for i, header := range headers {
		name := CanonicalName(header)
		if prev, exists := columns[name]; exists {
			return nil, errors.NewSchemaError("ambiguous column name after canonicalization", nil).
				WithContext("column", name).
				WithContext("indices", []int{prev, i})
		}
		columns[name] = i
	}

	required := []string{
		ColCompanyMaker, ColBarName, ColRef, ColReviewDate,
		ColCocoaPercent, ColLocation, ColRating, ColBeanType, ColOrigin,
	}
	var missing []string
	for _, name := range required {
		if _, exists := columns[name]; !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewFormatError("required columns not found", nil).
			WithContext("missing", missing)
	}

	return columns, nil
}

// isHeaderEcho reports whether the row's cells, canonicalized, equal the
// canonicalized header names.
func isHeaderEcho(row, canonical []string) bool {
	for i, cell := range row {
		if CanonicalName(cell) != canonical[i] {
			return false
		}
	}
	return true
}

// fieldError is a recoverable per-row failure tagged with the offending
// field and raw value.
type fieldError struct {
	Field string
	Value string
	cause error
}

func (e *fieldError) Error() string { return e.cause.Error() }
func (e *fieldError) Unwrap() error { return e.cause }

// buildRecord retypes one raw row and derives its computed fields.
func (n *Normalizer) buildRecord(row []string, columns columnMap) (domain.Record, *fieldError) {
	get := func(name string) string {
		return strings.TrimSpace(row[columns[name]])
	}

	record := domain.Record{
		CompanyMaker:    get(ColCompanyMaker),
		BarName:         get(ColBarName),
		Ref:             get(ColRef),
		CompanyLocation: get(ColLocation),
		BeanType:        get(ColBeanType),
		BroadBeanOrigin: get(ColOrigin),
	}

	reviewDate, err := ParseReviewYear(get(ColReviewDate))
	if err != nil {
		return domain.Record{}, &fieldError{Field: ColReviewDate, Value: get(ColReviewDate), cause: err}
	}
	record.ReviewDate = reviewDate

	pct, err := ParsePercent(get(ColCocoaPercent))
	if err != nil {
		return domain.Record{}, &fieldError{Field: ColCocoaPercent, Value: get(ColCocoaPercent), cause: err}
	}
	record.CocoaPercent = pct

	rating, err := strconv.ParseFloat(get(ColRating), 64)
	if err != nil {
		parseErr := errors.NewParseError("rating is not numeric", err)
		return domain.Record{}, &fieldError{Field: ColRating, Value: get(ColRating), cause: parseErr}
	}
	record.Rating = rating

	record.Company, record.Maker = SplitCompanyMaker(record.CompanyMaker)

	if err := n.validate.Struct(record); err != nil {
		parseErr := errors.NewParseError(fmt.Sprintf("record failed range validation: %v", err), err)
		return domain.Record{}, &fieldError{Field: "record", Value: record.CompanyMaker, cause: parseErr}
	}

	return record, nil
}
