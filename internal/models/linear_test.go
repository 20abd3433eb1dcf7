package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"cocoalens/pkg/contracts/domain"
)

func modelRecord(year int, cocoa, rating float64, location string) domain.Record {
	return domain.Record{
		CompanyLocation: location,
		ReviewDate:      time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		CocoaPercent:    cocoa,
		Rating:          rating,
	}
}

func TestLinearRegression_RecoversExactFit(t *testing.T) {
	// y = 1 + 2x, noiseless.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 2,
		1, 3,
		1, 4,
	})
	y := []float64{3, 5, 7, 9}

	model := &LinearRegression{}
	require.NoError(t, model.Fit(X, y))

	coeffs := model.Coefficients()
	require.Len(t, coeffs, 2)
	assert.InDelta(t, 1.0, coeffs[0], 1e-9)
	assert.InDelta(t, 2.0, coeffs[1], 1e-9)

	preds, err := model.Predict(X)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, RSquared(y, preds), 1e-12)
	assert.InDelta(t, 0.0, MSE(y, preds), 1e-12)
}

func TestLinearRegression_Errors(t *testing.T) {
	model := &LinearRegression{}

	_, err := model.Predict(mat.NewDense(1, 2, []float64{1, 1}))
	assert.Error(t, err, "predict before fit")

	X := mat.NewDense(2, 2, []float64{1, 1, 1, 2})
	assert.Error(t, model.Fit(X, []float64{1}), "target length mismatch")
	assert.Error(t, model.Fit(X, []float64{1, 2}), "too few observations")
}

func TestNewDesignMatrix(t *testing.T) {
	records := []domain.Record{
		modelRecord(2014, 70, 3.5, "France"),
		modelRecord(2015, 75, 4.0, "Canada"),
		modelRecord(2016, 80, 3.0, "France"),
	}

	dm, err := NewDesignMatrix(records, CandidatePredictors)
	require.NoError(t, err)

	assert.Equal(t, []float64{3.5, 4.0, 3.0}, dm.Target)
	assert.Len(t, dm.Groups[PredictorCocoaPercent], 1)
	assert.Len(t, dm.Groups[PredictorReviewYear], 1)
	// Two levels, first dropped as reference: one indicator column.
	assert.Len(t, dm.Groups[PredictorLocation], 1)

	cocoaCol := dm.Cols[dm.Groups[PredictorCocoaPercent][0]]
	assert.Equal(t, []float64{70, 75, 80}, cocoaCol)

	canada := dm.Cols[dm.Groups[PredictorLocation][0]]
	assert.Equal(t, []float64{0, 1, 0}, canada)
}

func TestNewDesignMatrix_UnknownPredictor(t *testing.T) {
	_, err := NewDesignMatrix(nil, []Predictor{"bean_color"})
	assert.Error(t, err)
}

func TestForwardSelect_NonDecreasingRSquared(t *testing.T) {
	// Rating depends strongly on cocoa percent and weakly on year.
	var records []domain.Record
	years := []int{2012, 2013, 2014, 2015, 2016}
	for i := 0; i < 40; i++ {
		year := years[i%len(years)]
		cocoa := 60 + float64(i%8)*5
		rating := 1 + cocoa/30 + float64(year-2012)*0.05
		records = append(records, modelRecord(year, cocoa, rating, "France"))
	}

	dm, err := NewDesignMatrix(records, CandidatePredictors)
	require.NoError(t, err)

	trace, err := ForwardSelect(dm, CandidatePredictors)
	require.NoError(t, err)
	require.NotEmpty(t, trace)

	for i := 1; i < len(trace); i++ {
		assert.GreaterOrEqual(t, trace[i].RSquared, trace[i-1].RSquared)
		assert.Len(t, trace[i].Predictors, len(trace[i-1].Predictors)+1)
	}

	// Cocoa percent carries most of the signal, so it is chosen first.
	assert.Equal(t, PredictorCocoaPercent, trace[0].Predictors[0])
	assert.Greater(t, trace[0].RSquared, 0.9)
}
