package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/funcsys/internal/api/middleware"
	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/monitoring"
	mathprovider "github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
	"github.com/GriffinCanCode/funcsys/internal/service"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers serves the function API
type Handlers struct {
	registry *service.Registry
	provider *mathprovider.Provider
	exporter *export.Exporter
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates handlers. Tool execution goes through registry;
// provider serves lookups by function name. metrics may be nil.
func NewHandlers(registry *service.Registry, provider *mathprovider.Provider, exporter *export.Exporter, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		provider: provider,
		exporter: exporter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles the root endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "funcsys",
		"version": Version,
	})
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	cfg := h.provider.Family().Config()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"series": gin.H{
			"epsilon":        cfg.Epsilon,
			"max_iterations": cfg.MaxIterations,
		},
		"default_precision": h.provider.DefaultPrecision(),
		"services":          h.registry.Stats(),
	})
}

// ListFunctions returns the service definition with all tools
func (h *Handlers) ListFunctions(c *gin.Context) {
	c.JSON(http.StatusOK, h.provider.Definition())
}

// Execute evaluates a tool
func (h *Handlers) Execute(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := h.registry.Execute(c.Request.Context(), req.Tool, req.Params, requestContext(c))
	if err != nil {
		h.logger.Error("Execution failed", zap.String("tool", req.Tool), zap.Error(err))
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	if h.metrics != nil {
		defined, _ := result.Data["defined"].(bool)
		h.metrics.RecordEvaluation(strings.TrimPrefix(req.Tool, "math."), defined, time.Since(start))
	}
	c.JSON(http.StatusOK, result)
}

// EvaluateByName evaluates a function given as path parameter with x and
// precision taken from the query string
func (h *Handlers) EvaluateByName(c *gin.Context) {
	name := c.Param("name")
	fn, err := h.provider.Lookup(name)
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}

	x, ok, err := queryFloat(c, "x")
	if !ok || err != nil {
		fail(c, http.StatusBadRequest, "x query parameter required")
		return
	}
	precision, ok, err := queryFloat(c, "precision")
	if err != nil {
		fail(c, http.StatusBadRequest, "precision must be a number")
		return
	}
	if !ok {
		precision = h.provider.DefaultPrecision()
	}

	fn = monitoring.Instrument(h.metrics, strings.TrimPrefix(name, "math."), fn)
	c.JSON(http.StatusOK, types.Result{
		Success: true,
		Data:    mathprovider.Evaluation(x, precision, fn.Calculate(x, precision)),
	})
}

// Sweep evaluates a function over a range and returns the samples in the
// requested format
func (h *Handlers) Sweep(c *gin.Context) {
	var req types.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	fn, err := h.provider.Lookup(req.Function)
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	precision := req.Precision
	if precision == 0 {
		precision = h.provider.DefaultPrecision()
	}

	r := utilities.Range{Start: req.Start, End: req.End, Step: req.Step}
	table, err := h.exporter.Sweep(c.Request.Context(), r, precision, export.Column{Name: export.FunctionColumn, Label: req.Function, Fn: fn})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, utilities.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		fail(c, status, err.Error())
		return
	}

	h.logger.Info("Sweep served",
		zap.String("run_id", table.RunID),
		zap.String("function", req.Function),
		zap.String("format", string(format)),
		zap.Int("points", len(table.Samples)))

	c.Header("X-Run-ID", table.RunID)
	if format == export.FormatJSON {
		c.JSON(http.StatusOK, export.NewDocument(table))
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, table, format); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func requestContext(c *gin.Context) *types.Context {
	ip := c.ClientIP()
	ctx := &types.Context{ClientIP: &ip}
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		ctx.RequestID = &id
	}
	return ctx
}

// queryFloat reports whether key is present and parses it.
func queryFloat(c *gin.Context, key string) (float64, bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, true, err
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, types.Result{Success: false, Error: &message})
}
