/*
Package monitoring provides Prometheus metrics for the function service.

# Overview

Metrics are kept in a per-instance registry, so several servers (or tests)
can coexist in one process. Tracked series:

- HTTP requests by route pattern and status
- Function evaluations by function and outcome (defined/undefined)
- Range sweeps: count, sample count and duration
- WebSocket connections and messages

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	sin := monitoring.Instrument(metrics, "sin", family.Sin)

	timer := monitoring.NewTimer(metrics, "system")
	// ... sweep ...
	timer.Stop("success", len(samples))
*/
package monitoring
