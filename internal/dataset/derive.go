package dataset

import (
	"strconv"
	"strings"
	"time"

	"cocoalens/internal/errors"
)

// SplitCompanyMaker splits the combined "Company (Maker-if-known)" label.
// The maker is the trimmed text inside the first parenthesis group; the
// first ')' after the first '(' closes the match, so nested parentheses
// are not treated specially and later groups are ignored. When no
// parenthesis is present the maker is empty and the company is the whole
// trimmed label.
func SplitCompanyMaker(label string) (company, maker string) {
	open := strings.Index(label, "(")
	if open < 0 {
		return strings.TrimSpace(label), ""
	}

	company = strings.TrimSpace(label[:open])

	rest := label[open+1:]
	if close := strings.Index(rest, ")"); close >= 0 {
		maker = strings.TrimSpace(rest[:close])
	} else {
		maker = strings.TrimSpace(rest)
	}
	return company, maker
}

// ParseReviewYear parses a bare 4-digit review year into a year-precision
// timestamp: January 1 of that year, UTC. Anything other than exactly four
// digits is a parse error.
func ParseReviewYear(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) != 4 {
		return time.Time{}, errors.NewParseError("review year is not a 4-digit year", nil).
			WithContext("value", value)
	}

	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return time.Time{}, errors.NewParseError("review year is not numeric", err).
			WithContext("value", value)
	}

	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

// ParsePercent parses a cocoa percentage, stripping one trailing '%' if
// present. Parsing an already-numeric value is a no-op re-parse, so the
// transform is idempotent. A non-numeric remainder is a parse error, never
// a silent coercion.
func ParsePercent(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimSuffix(trimmed, "%")

	pct, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, errors.NewParseError("cocoa percent is not numeric", err).
			WithContext("value", value)
	}

	return pct, nil
}

// FormatPercent renders a cocoa percentage back to its source form.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
