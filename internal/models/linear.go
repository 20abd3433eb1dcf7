package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least-squares model over a design
// matrix with a leading intercept column.
type LinearRegression struct {
	coeffs []float64
	fitted bool
}

// Fit solves the least-squares problem X*beta = y via QR factorization.
// X must carry the intercept column; rows must outnumber columns.
func (m *LinearRegression) Fit(X *mat.Dense, y []float64) error {
	rows, cols := X.Dims()
	if rows != len(y) {
		return fmt.Errorf("design matrix has %d rows but target has %d values", rows, len(y))
	}
	if rows <= cols {
		return fmt.Errorf("need more than %d observations to fit %d coefficients", cols, cols)
	}

	var qr mat.QR
	qr.Factorize(X)

	b := mat.NewVecDense(len(y), y)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, b); err != nil {
		return fmt.Errorf("least squares solve failed: %w", err)
	}

	m.coeffs = make([]float64, cols)
	for i := range m.coeffs {
		m.coeffs[i] = beta.AtVec(i)
	}
	m.fitted = true
	return nil
}

// Predict evaluates the fitted model on X, which must have the same
// column layout used in Fit.
func (m *LinearRegression) Predict(X *mat.Dense) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model has not been fitted")
	}
	rows, cols := X.Dims()
	if cols != len(m.coeffs) {
		return nil, fmt.Errorf("design matrix has %d columns but model has %d coefficients", cols, len(m.coeffs))
	}

	preds := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * m.coeffs[j]
		}
		preds[i] = sum
	}
	return preds, nil
}

// Coefficients returns the fitted coefficients, intercept first.
func (m *LinearRegression) Coefficients() []float64 {
	out := make([]float64, len(m.coeffs))
	copy(out, m.coeffs)
	return out
}

// SelectionResult describes one forward-selection fit: the predictors
// chosen so far, the fitted model over them, and its in-sample R-squared.
type SelectionResult struct {
	Predictors []Predictor
	Model      *LinearRegression
	RSquared   float64
}

// ForwardSelect builds a linear model by greedy forward selection over the
// candidate predictors: at each step the predictor (with all its encoded
// columns) whose addition yields the largest R-squared is kept, until no
// candidate improves the fit. The returned trace never decreases in
// R-squared.
func ForwardSelect(dm *DesignMatrix, candidates []Predictor) ([]SelectionResult, error) {
	var (
		selected []Predictor
		colIdx   []int
		trace    []SelectionResult
		bestR2   float64
	)
	remaining := append([]Predictor(nil), candidates...)

	for len(remaining) > 0 {
		bestStep := -1
		var bestModel *LinearRegression
		stepR2 := bestR2

		for i, cand := range remaining {
			cols := append(append([]int(nil), colIdx...), dm.Groups[cand]...)
			model := &LinearRegression{}
			if err := model.Fit(dm.Matrix(cols), dm.Target); err != nil {
				continue
			}
			preds, err := model.Predict(dm.Matrix(cols))
			if err != nil {
				return nil, err
			}
			if r2 := RSquared(dm.Target, preds); r2 > stepR2 {
				stepR2 = r2
				bestStep = i
				bestModel = model
			}
		}

		if bestStep < 0 {
			break
		}

		chosen := remaining[bestStep]
		selected = append(selected, chosen)
		colIdx = append(colIdx, dm.Groups[chosen]...)
		remaining = append(remaining[:bestStep], remaining[bestStep+1:]...)
		bestR2 = stepR2

		trace = append(trace, SelectionResult{
			Predictors: append([]Predictor(nil), selected...),
			Model:      bestModel,
			RSquared:   stepR2,
		})
	}

	if len(trace) == 0 {
		return nil, fmt.Errorf("no predictor improved on the intercept-only model")
	}
	return trace, nil
}
