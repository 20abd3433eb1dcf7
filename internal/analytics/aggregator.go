package analytics

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"cocoalens/internal/config"
	"cocoalens/pkg/contracts/domain"
)

// The aggregate queries are pure functions over an immutable record slice.
// All grouping is stable: distinct keys appear in first-seen order.

// GroupByYear groups records on the review year and computes count, mean
// rating and sample standard deviation per year.
func GroupByYear(records []domain.Record) []YearStats {
	var order []int
	ratings := make(map[int][]float64)

	for _, r := range records {
		year := r.ReviewYear()
		if _, seen := ratings[year]; !seen {
			order = append(order, year)
		}
		ratings[year] = append(ratings[year], r.Rating)
	}

	stats := make([]YearStats, 0, len(order))
	for _, year := range order {
		xs := ratings[year]
		row := YearStats{
			Year:       year,
			Count:      len(xs),
			MeanRating: stat.Mean(xs, nil),
		}
		if len(xs) >= 2 {
			row.StddevRating = stat.StdDev(xs, nil)
			row.StddevValid = true
		}
		stats = append(stats, row)
	}
	return stats
}

// LowRatingShare computes, per year, the fraction of ratings strictly
// below threshold, rounded to two decimal places.
func LowRatingShare(records []domain.Record, threshold float64) []LowRatingRow {
	var order []int
	totals := make(map[int]int)
	below := make(map[int]int)

	for _, r := range records {
		year := r.ReviewYear()
		if _, seen := totals[year]; !seen {
			order = append(order, year)
		}
		totals[year]++
		if r.Rating < threshold {
			below[year]++
		}
	}

	rows := make([]LowRatingRow, 0, len(order))
	for _, year := range order {
		row := LowRatingRow{
			Year:       year,
			CountBelow: below[year],
			Total:      totals[year],
		}
		if row.Total > 0 {
			row.Fraction = math.Round(float64(row.CountBelow)/float64(row.Total)*100) / 100
		}
		rows = append(rows, row)
	}
	return rows
}

// GroupByCompany computes per-company mean ratings, keeping only companies
// with strictly more than minCount records.
func GroupByCompany(records []domain.Record, minCount int) []GroupStats {
	return groupRatings(records, minCount, true, func(r domain.Record) (string, bool) {
		return r.Company, true
	})
}

// GroupByMaker computes per-maker mean ratings over records with a parsed
// maker, keeping makers with at least minCount records (inclusive).
func GroupByMaker(records []domain.Record, minCount int) []GroupStats {
	return groupRatings(records, minCount, false, func(r domain.Record) (string, bool) {
		return r.Maker, r.HasMaker()
	})
}

// GroupByOrigin computes per-origin mean ratings over records with a known
// bean origin, keeping origins with strictly more than minCount records.
func GroupByOrigin(records []domain.Record, minCount int) []GroupStats {
	return groupRatings(records, minCount, true, func(r domain.Record) (string, bool) {
		return r.BroadBeanOrigin, r.HasKnownOrigin()
	})
}

// groupRatings is the shared grouping kernel: key extraction, first-seen
// ordering, minimum-count filtering (strict or inclusive) and mean rating.
func groupRatings(records []domain.Record, minCount int, strict bool, key func(domain.Record) (string, bool)) []GroupStats {
	var order []string
	ratings := make(map[string][]float64)

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, seen := ratings[k]; !seen {
			order = append(order, k)
		}
		ratings[k] = append(ratings[k], r.Rating)
	}

	stats := make([]GroupStats, 0, len(order))
	for _, k := range order {
		xs := ratings[k]
		if strict && len(xs) <= minCount {
			continue
		}
		if !strict && len(xs) < minCount {
			continue
		}
		stats = append(stats, GroupStats{
			Key:        k,
			Count:      len(xs),
			MeanRating: stat.Mean(xs, nil),
		})
	}
	return stats
}

// CompanyOriginHeatmap counts company x origin pairings, restricted to
// known origins and to companies passing the GroupByCompany filter.
func CompanyOriginHeatmap(records []domain.Record, companyMinCount int) []HeatmapCount {
	qualifying := make(map[string]bool)
	for _, c := range GroupByCompany(records, companyMinCount) {
		qualifying[c.Key] = true
	}

	type cell struct{ company, origin string }
	var order []cell
	counts := make(map[cell]int)

	for _, r := range records {
		if !qualifying[r.Company] || !r.HasKnownOrigin() {
			continue
		}
		c := cell{company: r.Company, origin: r.BroadBeanOrigin}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	heatmap := make([]HeatmapCount, 0, len(order))
	for _, c := range order {
		heatmap = append(heatmap, HeatmapCount{
			Company: c.company,
			Origin:  c.origin,
			Count:   counts[c],
		})
	}
	return heatmap
}

// RunAll executes every aggregate query over the same immutable record
// slice. The queries are independent read-only functions, so they run
// concurrently.
func RunAll(ctx context.Context, records []domain.Record, cfg config.AnalysisConfig, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	summary := &Summary{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary.Years = GroupByYear(records)
		return nil
	})
	g.Go(func() error {
		summary.LowRatings = LowRatingShare(records, cfg.LowRatingThreshold)
		return nil
	})
	g.Go(func() error {
		summary.Companies = GroupByCompany(records, cfg.CompanyMinCount)
		return nil
	})
	g.Go(func() error {
		summary.Makers = GroupByMaker(records, cfg.MakerMinCount)
		return nil
	})
	g.Go(func() error {
		summary.Origins = GroupByOrigin(records, cfg.OriginMinCount)
		return nil
	})
	g.Go(func() error {
		summary.Heatmap = CompanyOriginHeatmap(records, cfg.CompanyMinCount)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "aggregation complete",
		slog.Int("years", len(summary.Years)),
		slog.Int("companies", len(summary.Companies)),
		slog.Int("makers", len(summary.Makers)),
		slog.Int("origins", len(summary.Origins)),
		slog.Int("heatmap_cells", len(summary.Heatmap)))

	return summary, nil
}
