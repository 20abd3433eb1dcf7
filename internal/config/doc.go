// Package config provides centralized configuration management for the
// cocoalens pipeline.
//
// Configuration is loaded from environment variables (prefix COCOA) and an
// optional YAML file, with environment values taking precedence. It covers
// three concerns:
//
//   - Logging: level, format and output destinations for the structured logger
//   - Paths: data, reports and logs directories
//   - Analysis: aggregation thresholds (low-rating cutoff and the minimum
//     group sizes for the company, maker and origin tables)
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	records, report, err := dataset.Load(ctx, path)
package config
