package models

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"cocoalens/pkg/contracts/domain"
)

// Sample is one observation for the tree model: the numeric predictors
// plus the raw location category. Trees split categories on equality, so
// no one-hot encoding is needed and any cardinality is allowed.
type Sample struct {
	CocoaPercent float64
	ReviewYear   float64
	Location     string
	Rating       float64
}

// SamplesFrom converts cleaned records into tree samples.
func SamplesFrom(records []domain.Record) []Sample {
	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Sample{
			CocoaPercent: r.CocoaPercent,
			ReviewYear:   float64(r.ReviewYear()),
			Location:     r.CompanyLocation,
			Rating:       r.Rating,
		}
	}
	return samples
}

// TreeConfig bounds tree growth.
type TreeConfig struct {
	MaxDepth int
	MinLeaf  int
}

// DefaultTreeConfig returns growth bounds suited to a few thousand rows.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{MaxDepth: 5, MinLeaf: 20}
}

// RegressionTree is a CART-style variance-reduction regression tree over
// {cocoa_percent, review_year, company_location}.
type RegressionTree struct {
	cfg  TreeConfig
	root *treeNode
}

type treeNode struct {
	// leaf
	value float64
	leaf  bool

	// split: numeric (feature, threshold) or categorical (location == category)
	feature   string
	threshold float64
	category  string
	left      *treeNode // condition true
	right     *treeNode // condition false
}

const (
	featureCocoa    = "cocoa_percent"
	featureYear     = "review_year"
	featureLocation = "company_location"
)

// NewRegressionTree creates a tree with the given growth bounds.
func NewRegressionTree(cfg TreeConfig) *RegressionTree {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultTreeConfig().MaxDepth
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = DefaultTreeConfig().MinLeaf
	}
	return &RegressionTree{cfg: cfg}
}

// Fit grows the tree on the samples.
func (t *RegressionTree) Fit(samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to fit")
	}
	t.root = t.grow(samples, 0)
	return nil
}

// Predict returns the fitted rating for one sample.
func (t *RegressionTree) Predict(s Sample) (float64, error) {
	if t.root == nil {
		return 0, fmt.Errorf("model has not been fitted")
	}
	node := t.root
	for !node.leaf {
		if node.matches(s) {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value, nil
}

// PredictAll returns fitted ratings for all samples.
func (t *RegressionTree) PredictAll(samples []Sample) ([]float64, error) {
	preds := make([]float64, len(samples))
	for i, s := range samples {
		p, err := t.Predict(s)
		if err != nil {
			return nil, err
		}
		preds[i] = p
	}
	return preds, nil
}

func (n *treeNode) matches(s Sample) bool {
	switch n.feature {
	case featureCocoa:
		return s.CocoaPercent <= n.threshold
	case featureYear:
		return s.ReviewYear <= n.threshold
	default:
		return s.Location == n.category
	}
}

func (t *RegressionTree) grow(samples []Sample, depth int) *treeNode {
	mean := meanRating(samples)
	if depth >= t.cfg.MaxDepth || len(samples) < 2*t.cfg.MinLeaf {
		return &treeNode{leaf: true, value: mean}
	}

	split, ok := t.bestSplit(samples)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var left, right []Sample
	for _, s := range samples {
		if split.matches(s) {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	split.left = t.grow(left, depth+1)
	split.right = t.grow(right, depth+1)
	return split
}

// bestSplit scans numeric thresholds and categorical equality splits for
// the largest reduction in total squared error.
func (t *RegressionTree) bestSplit(samples []Sample) (*treeNode, bool) {
	parentSSE := sseRating(samples)

	var (
		best     *treeNode
		bestGain float64
	)

	consider := func(node *treeNode) {
		var left, right []Sample
		for _, s := range samples {
			if node.matches(s) {
				left = append(left, s)
			} else {
				right = append(right, s)
			}
		}
		if len(left) < t.cfg.MinLeaf || len(right) < t.cfg.MinLeaf {
			return
		}
		gain := parentSSE - sseRating(left) - sseRating(right)
		if gain > bestGain {
			bestGain = gain
			best = node
		}
	}

	for _, feature := range []string{featureCocoa, featureYear} {
		for _, threshold := range candidateThresholds(samples, feature) {
			consider(&treeNode{feature: feature, threshold: threshold})
		}
	}

	seen := make(map[string]bool)
	for _, s := range samples {
		if seen[s.Location] {
			continue
		}
		seen[s.Location] = true
		consider(&treeNode{feature: featureLocation, category: s.Location})
	}

	return best, best != nil
}

// candidateThresholds returns midpoints between consecutive distinct
// values of a numeric feature.
func candidateThresholds(samples []Sample, feature string) []float64 {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if feature == featureCocoa {
			values = append(values, s.CocoaPercent)
		} else {
			values = append(values, s.ReviewYear)
		}
	}
	sort.Float64s(values)

	var thresholds []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			thresholds = append(thresholds, (values[i]+values[i-1])/2)
		}
	}
	return thresholds
}

func meanRating(samples []Sample) float64 {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Rating
	}
	return stat.Mean(xs, nil)
}

func sseRating(samples []Sample) float64 {
	mean := meanRating(samples)
	var sse float64
	for _, s := range samples {
		d := s.Rating - mean
		sse += d * d
	}
	return sse
}
