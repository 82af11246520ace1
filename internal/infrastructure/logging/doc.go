// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: colored console output at debug level
//
// Logs go to stderr by default; stdout is reserved for command output.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Sweep exported", zap.String("function", "system"), zap.Int("points", 132))
package logging
