package analytics

// YearStats holds the per-year rating summary. StddevValid is false when
// the group has fewer than two records, where the sample standard
// deviation is undefined.
type YearStats struct {
	Year         int     `json:"year"`
	Count        int     `json:"count"`
	MeanRating   float64 `json:"mean_rating"`
	StddevRating float64 `json:"stddev_rating,omitempty"`
	StddevValid  bool    `json:"stddev_valid"`
}

// LowRatingRow holds the per-year share of ratings below the threshold.
// Fraction is rounded to two decimal places; an empty group has fraction
// zero rather than a division by zero.
type LowRatingRow struct {
	Year       int     `json:"year"`
	CountBelow int     `json:"count_below"`
	Total      int     `json:"total"`
	Fraction   float64 `json:"fraction"`
}

// GroupStats holds count and mean rating for one grouping key (company,
// maker or bean origin).
type GroupStats struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// HeatmapCount holds one company x origin cell of the pairing heatmap.
type HeatmapCount struct {
	Company string `json:"company"`
	Origin  string `json:"origin"`
	Count   int    `json:"count"`
}

// Summary bundles every aggregate table produced by one analysis run.
type Summary struct {
	Years      []YearStats    `json:"years"`
	LowRatings []LowRatingRow `json:"low_ratings"`
	Companies  []GroupStats   `json:"companies"`
	Makers     []GroupStats   `json:"makers"`
	Origins    []GroupStats   `json:"origins"`
	Heatmap    []HeatmapCount `json:"heatmap"`
}
