package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"cocoalens/pkg/contracts/domain"
)

// Predictor names one of the candidate model inputs.
type Predictor string

const (
	PredictorCocoaPercent Predictor = "cocoa_percent"
	PredictorReviewYear   Predictor = "review_year"
	PredictorLocation     Predictor = "company_location"
)

// CandidatePredictors is the default predictor set for both models.
var CandidatePredictors = []Predictor{
	PredictorCocoaPercent,
	PredictorReviewYear,
	PredictorLocation,
}

// DesignMatrix holds the encoded predictors column-by-column plus the
// rating target. The location predictor is one-hot encoded, so one
// predictor can own several columns; Groups maps each predictor to its
// column indices.
type DesignMatrix struct {
	Cols   [][]float64
	Names  []string
	Groups map[Predictor][]int
	Target []float64
}

// NewDesignMatrix encodes the cleaned records into a design matrix for the
// given predictors. Categorical levels are taken in first-seen order; any
// cardinality is allowed.
func NewDesignMatrix(records []domain.Record, predictors []Predictor) (*DesignMatrix, error) {
	n := len(records)
	dm := &DesignMatrix{
		Groups: make(map[Predictor][]int),
		Target: make([]float64, n),
	}
	for i, r := range records {
		dm.Target[i] = r.Rating
	}

	for _, p := range predictors {
		switch p {
		case PredictorCocoaPercent:
			col := make([]float64, n)
			for i, r := range records {
				col[i] = r.CocoaPercent
			}
			dm.addColumn(p, string(p), col)
		case PredictorReviewYear:
			col := make([]float64, n)
			for i, r := range records {
				col[i] = float64(r.ReviewYear())
			}
			dm.addColumn(p, string(p), col)
		case PredictorLocation:
			dm.addOneHot(p, records)
		default:
			return nil, fmt.Errorf("unknown predictor: %s", p)
		}
	}

	return dm, nil
}

func (dm *DesignMatrix) addColumn(p Predictor, name string, col []float64) {
	dm.Groups[p] = append(dm.Groups[p], len(dm.Cols))
	dm.Names = append(dm.Names, name)
	dm.Cols = append(dm.Cols, col)
}

// addOneHot encodes company location as indicator columns, dropping the
// first-seen level as the reference so the encoding stays full-rank next
// to an intercept.
func (dm *DesignMatrix) addOneHot(p Predictor, records []domain.Record) {
	var levels []string
	index := make(map[string]int)
	for _, r := range records {
		if _, seen := index[r.CompanyLocation]; !seen {
			index[r.CompanyLocation] = len(levels)
			levels = append(levels, r.CompanyLocation)
		}
	}

	if len(levels) < 2 {
		return
	}
	for _, level := range levels[1:] {
		col := make([]float64, len(records))
		for i, r := range records {
			if r.CompanyLocation == level {
				col[i] = 1
			}
		}
		dm.addColumn(p, fmt.Sprintf("%s=%s", p, level), col)
	}
}

// Matrix assembles the selected columns (plus a leading intercept column)
// into a dense matrix.
func (dm *DesignMatrix) Matrix(colIndices []int) *mat.Dense {
	n := len(dm.Target)
	X := mat.NewDense(n, len(colIndices)+1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, c := range colIndices {
			X.Set(i, j+1, dm.Cols[c][i])
		}
	}
	return X
}
