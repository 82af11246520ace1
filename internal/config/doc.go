// Package config provides 12-factor configuration for the function service
// and CLI.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Series: epsilon and iteration budget of the series primitives
//   - Export: sweep precision, step, output format, CSV separator, workers
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	series, _ := cfg.SeriesConfig()
//	family, err := math.NewFamily(series)
//
// Environment Variables:
//   - SERIES_EPSILON, SERIES_MAX_ITERATIONS
//   - EXPORT_PRECISION, EXPORT_STEP, EXPORT_FORMAT, EXPORT_SEPARATOR, EXPORT_WORKERS, EXPORT_DIR
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
