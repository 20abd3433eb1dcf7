package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocoalens/pkg/contracts/domain"
)

func TestFrame(t *testing.T) {
	records := []domain.Record{
		{
			Company:         "Bonnat",
			Maker:           "Chapuis",
			CompanyLocation: "France",
			BarName:         "Madagascar",
			BroadBeanOrigin: "Madagascar",
			ReviewDate:      time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			CocoaPercent:    75,
			Rating:          4,
		},
		{
			Company:         "Soma",
			CompanyLocation: "Canada",
			BarName:         "Chuao",
			BroadBeanOrigin: "Venezuela",
			ReviewDate:      time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC),
			CocoaPercent:    70,
			Rating:          4.5,
		},
	}

	df := Frame(records)

	assert.Equal(t, 2, df.Nrow())
	assert.ElementsMatch(t, []string{
		"company", "maker", "company_location", "bar_name", "bean_type",
		"broad_bean_origin", "review_year", "cocoa_percent", "rating",
	}, df.Names())

	years := df.Col("review_year")
	got, err := years.Elem(1).Int()
	require.NoError(t, err)
	assert.Equal(t, 2016, got)

	assert.Equal(t, 4.5, df.Col("rating").Elem(1).Float())
}

func TestFrame_Empty(t *testing.T) {
	df := Frame(nil)
	assert.Equal(t, 0, df.Nrow())
}
