// Package dataset turns the raw chocolate-bar review table into cleaned,
// typed records.
//
// The pipeline runs in three stages:
//
//  1. Load: read the delimited source (CSV, or the same table shipped as
//     an Excel workbook) into an untyped RawTable, preserving row order.
//  2. Normalize: canonicalize column names, drop header-echo rows, and
//     retype fields. A row whose fields fail type coercion is excluded
//     from the cleaned table and reported; it never aborts the batch.
//  3. Derive: split the combined company/maker label and turn the bare
//     review year into a year-precision timestamp.
//
// IO, format and schema problems are fatal and reported through the
// internal/errors taxonomy. The resulting []domain.Record is treated as
// immutable by every downstream consumer.
package dataset
