package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Record represents one cleaned chocolate-bar review after schema
// normalization and field derivation. Records are immutable once the
// deriver has run; aggregates are always recomputed from them.
type Record struct {
	CompanyMaker    string    `json:"company_maker" csv:"company_maker" validate:"required"`
	Company         string    `json:"company" csv:"company"`
	Maker           string    `json:"maker,omitempty" csv:"maker"`
	BarName         string    `json:"bar_name" csv:"bar_name"`
	Ref             string    `json:"ref" csv:"ref"`
	ReviewDate      time.Time `json:"review_date" csv:"review_date"`
	CocoaPercent    float64   `json:"cocoa_percent" csv:"cocoa_percent" validate:"gt=0,lte=100"`
	CompanyLocation string    `json:"company_location" csv:"company_location"`
	Rating          float64   `json:"rating" csv:"rating" validate:"gte=0,lte=5"`
	BeanType        string    `json:"bean_type,omitempty" csv:"bean_type"`
	BroadBeanOrigin string    `json:"broad_bean_origin,omitempty" csv:"broad_bean_origin"`
}

// ReviewYear returns the review year. ReviewDate is a year-precision
// timestamp (always January 1), so the year is the only meaningful part.
func (r Record) ReviewYear() int {
	return r.ReviewDate.Year()
}

// HasMaker reports whether the original company field carried a
// parenthesized maker name.
func (r Record) HasMaker() bool {
	return r.Maker != ""
}

// HasKnownOrigin reports whether the broad bean origin is usable for
// origin-based aggregation: present and at least two characters after
// trimming. Counted in runes, so a single multi-byte character does not
// qualify. Records with unknown origins stay in the base dataset; they
// are only excluded from origin-keyed aggregates.
func (r Record) HasKnownOrigin() bool {
	return utf8.RuneCountInString(strings.TrimSpace(r.BroadBeanOrigin)) >= 2
}
