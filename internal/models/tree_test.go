package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSamples(n int, cocoa, rating float64, location string) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			CocoaPercent: cocoa,
			ReviewYear:   2015,
			Location:     location,
			Rating:       rating,
		}
	}
	return samples
}

func TestRegressionTree_PureLeafIsConstant(t *testing.T) {
	samples := makeSamples(10, 70, 3.5, "France")

	tree := NewRegressionTree(TreeConfig{MaxDepth: 3, MinLeaf: 2})
	require.NoError(t, tree.Fit(samples))

	pred, err := tree.Predict(samples[0])
	require.NoError(t, err)
	assert.Equal(t, 3.5, pred)

	// Unseen sample still lands in a leaf and gets the leaf mean.
	pred, err = tree.Predict(Sample{CocoaPercent: 99, ReviewYear: 2020, Location: "Peru"})
	require.NoError(t, err)
	assert.Equal(t, 3.5, pred)
}

func TestRegressionTree_SplitsOnCocoa(t *testing.T) {
	samples := append(makeSamples(10, 60, 4.0, "France"), makeSamples(10, 90, 2.0, "France")...)

	tree := NewRegressionTree(TreeConfig{MaxDepth: 3, MinLeaf: 5})
	require.NoError(t, tree.Fit(samples))

	low, err := tree.Predict(Sample{CocoaPercent: 60, ReviewYear: 2015, Location: "France"})
	require.NoError(t, err)
	high, err := tree.Predict(Sample{CocoaPercent: 90, ReviewYear: 2015, Location: "France"})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, low, 1e-12)
	assert.InDelta(t, 2.0, high, 1e-12)
}

func TestRegressionTree_SplitsOnLocation(t *testing.T) {
	samples := append(makeSamples(10, 70, 4.5, "Switzerland"), makeSamples(10, 70, 2.5, "Belgium")...)

	tree := NewRegressionTree(TreeConfig{MaxDepth: 2, MinLeaf: 5})
	require.NoError(t, tree.Fit(samples))

	swiss, err := tree.Predict(Sample{CocoaPercent: 70, ReviewYear: 2015, Location: "Switzerland"})
	require.NoError(t, err)
	belgian, err := tree.Predict(Sample{CocoaPercent: 70, ReviewYear: 2015, Location: "Belgium"})
	require.NoError(t, err)

	assert.InDelta(t, 4.5, swiss, 1e-12)
	assert.InDelta(t, 2.5, belgian, 1e-12)
}

func TestRegressionTree_Bounds(t *testing.T) {
	// Below 2*MinLeaf the root stays a leaf.
	samples := append(makeSamples(3, 60, 4.0, "France"), makeSamples(3, 90, 2.0, "France")...)

	tree := NewRegressionTree(TreeConfig{MaxDepth: 3, MinLeaf: 5})
	require.NoError(t, tree.Fit(samples))

	pred, err := tree.Predict(samples[0])
	require.NoError(t, err)
	assert.InDelta(t, 3.0, pred, 1e-12)
}

func TestRegressionTree_Errors(t *testing.T) {
	tree := NewRegressionTree(DefaultTreeConfig())
	assert.Error(t, tree.Fit(nil))

	_, err := tree.Predict(Sample{})
	assert.Error(t, err)

	_, err = tree.PredictAll([]Sample{{}})
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	observed := []float64{1, 2, 3, 4}
	perfect := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, RSquared(observed, perfect), 1e-12)
	assert.Zero(t, MSE(observed, perfect))

	off := []float64{2, 3, 4, 5}
	assert.InDelta(t, 1.0, MSE(observed, off), 1e-12)
	assert.Zero(t, MSE(nil, nil))
}
