// Package main is the entry point for the funcsys HTTP server.
//
// The server evaluates the series-based trigonometric and logarithmic
// functions and their piecewise system over HTTP and WebSocket:
//   - GET  /functions            tool definitions
//   - POST /evaluate             evaluate a tool
//   - GET  /evaluate/:name       evaluate by name from query parameters
//   - POST /sweep                sweep a range (csv, json, yaml, toml)
//   - GET  /ws/sweep             stream a sweep sample by sample
//   - GET  /metrics              Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -epsilon 1e-6 -iterations 100
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
