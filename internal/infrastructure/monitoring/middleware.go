package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection. Requests are
// labelled by route pattern so that path parameters do not explode
// cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures a sweep
type Timer struct {
	start    time.Time
	metrics  *Metrics
	function string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, function string) *Timer {
	return &Timer{
		start:    time.Now(),
		metrics:  metrics,
		function: function,
	}
}

// Stop stops the timer and records the sweep
func (t *Timer) Stop(status string, samples int) {
	if t == nil || t.metrics == nil {
		return
	}
	t.metrics.RecordSweep(t.function, status, samples, time.Since(t.start))
}
