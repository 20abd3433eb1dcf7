// Package models fits the two illustrative predictive models over the
// cleaned records: an ordinary least-squares linear regression built by
// forward selection over {cocoa_percent, review_year, company_location},
// and a CART-style regression tree over the same predictor set.
//
// Both are simple reference implementations consuming the design matrix
// and sample views built here; they exist to exercise the cleaned table,
// not to compete with a real modeling stack.
package models
