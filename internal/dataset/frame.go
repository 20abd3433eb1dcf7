package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"cocoalens/pkg/contracts/domain"
)

// Frame exposes the cleaned records as a gota DataFrame for the
// visualization and model collaborators. The review date is flattened to
// its year, which is the only meaningful part of the year-precision
// timestamp.
func Frame(records []domain.Record) dataframe.DataFrame {
	n := len(records)
	company := make([]string, n)
	maker := make([]string, n)
	location := make([]string, n)
	barName := make([]string, n)
	beanType := make([]string, n)
	origin := make([]string, n)
	year := make([]int, n)
	cocoa := make([]float64, n)
	rating := make([]float64, n)

	for i, r := range records {
		company[i] = r.Company
		maker[i] = r.Maker
		location[i] = r.CompanyLocation
		barName[i] = r.BarName
		beanType[i] = r.BeanType
		origin[i] = r.BroadBeanOrigin
		year[i] = r.ReviewYear()
		cocoa[i] = r.CocoaPercent
		rating[i] = r.Rating
	}

	return dataframe.New(
		series.New(company, series.String, "company"),
		series.New(maker, series.String, "maker"),
		series.New(location, series.String, "company_location"),
		series.New(barName, series.String, "bar_name"),
		series.New(beanType, series.String, "bean_type"),
		series.New(origin, series.String, "broad_bean_origin"),
		series.New(year, series.Int, "review_year"),
		series.New(cocoa, series.Float, "cocoa_percent"),
		series.New(rating, series.Float, "rating"),
	)
}
