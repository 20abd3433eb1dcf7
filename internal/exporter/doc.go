// Package exporter writes the aggregate tables to CSV and JSON for
// consumption outside the process. CSV output optionally carries a UTF-8
// BOM so Excel opens the files correctly.
package exporter
