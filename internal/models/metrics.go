package models

import (
	"gonum.org/v1/gonum/stat"
)

// RSquared computes the coefficient of determination of predictions
// against observed values.
func RSquared(observed, predicted []float64) float64 {
	return stat.RSquaredFrom(predicted, observed, nil)
}

// MSE computes the mean squared error of predictions against observed
// values.
func MSE(observed, predicted []float64) float64 {
	var sum float64
	for i := range observed {
		d := observed[i] - predicted[i]
		sum += d * d
	}
	if len(observed) == 0 {
		return 0
	}
	return sum / float64(len(observed))
}
