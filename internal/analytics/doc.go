// Package analytics computes the grouped summary tables over the cleaned
// record collection: per-year rating statistics, low-rating shares, and
// the company, maker and origin tables gated by minimum group sizes.
//
// Every query is a pure function over an immutable []domain.Record and
// preserves first-seen key order. RunAll fans the independent queries out
// across goroutines; no locking is needed because the records are never
// mutated.
package analytics
