package ws

import (
	"context"
	"errors"
	gomath "math"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/monitoring"
	mathprovider "github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/statistics"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
	"github.com/GriffinCanCode/funcsys/internal/shared/id"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// sweepTimeout bounds a single streamed sweep
const sweepTimeout = 2 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler streams sweeps over WebSocket connections
type Handler struct {
	provider *mathprovider.Provider
	exporter *export.Exporter
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(provider *mathprovider.Provider, exporter *export.Exporter, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		provider: provider,
		exporter: exporter,
		metrics:  metrics,
		logger:   logger,
	}
}

// SampleMessage is sent once per grid point. Y is nil where the function
// is undefined.
type SampleMessage struct {
	Type  string   `json:"type"`
	Index int      `json:"index"`
	X     float64  `json:"x"`
	Y     *float64 `json:"y"`
}

// CompleteMessage ends a sweep
type CompleteMessage struct {
	Type    string             `json:"type"`
	RunID   string             `json:"run_id"`
	Count   int                `json:"count"`
	Summary statistics.Summary `json:"summary"`
}

// conn serializes writes; gorilla connections allow one concurrent writer.
type conn struct {
	*websocket.Conn
	mu sync.Mutex
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	cn := &conn{Conn: ws}
	defer cn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()

	h.send(cn, "system", map[string]interface{}{
		"type":    "system",
		"message": "Connected to funcsys",
	})

	for {
		var msg types.WSMessage
		if err := cn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.record("in", msg.Type)

		switch msg.Type {
		case "sweep":
			if err := h.handleSweep(reqCtx, cn, msg.Sweep); err != nil {
				h.sendError(cn, err.Error())
			}
		case "ping":
			h.send(cn, "pong", map[string]interface{}{"type": "pong"})
		default:
			h.sendError(cn, "unknown message type")
		}
	}
}

func (h *Handler) handleSweep(reqCtx context.Context, cn *conn, req *types.SweepRequest) error {
	if req == nil {
		return errors.New("sweep parameters required")
	}
	fn, err := h.provider.Lookup(req.Function)
	if err != nil {
		return err
	}
	precision := req.Precision
	if precision == 0 {
		precision = h.provider.DefaultPrecision()
	}

	ctx, cancel := context.WithTimeout(reqCtx, sweepTimeout)
	defer cancel()

	runID := id.NewRunID().String()
	r := utilities.Range{Start: req.Start, End: req.End, Step: req.Step}
	values := make([]float64, 0, r.Count())

	instrumented := monitoring.Instrument(h.metrics, req.Function, fn)
	n, err := h.exporter.Stream(ctx, r, precision, instrumented, func(s export.Sample) error {
		y := s.Values[0]
		values = append(values, y)
		msg := SampleMessage{Type: "sample", Index: len(values) - 1, X: s.X}
		if !gomath.IsNaN(y) && !gomath.IsInf(y, 0) {
			msg.Y = &y
		}
		return h.send(cn, "sample", msg)
	})
	if err != nil {
		h.logger.Warn("Streamed sweep aborted",
			zap.String("run_id", runID),
			zap.Int("sent", n),
			zap.Error(err))
		return err
	}

	h.logger.Info("Streamed sweep completed",
		zap.String("run_id", runID),
		zap.String("function", req.Function),
		zap.Int("points", n))

	return h.send(cn, "complete", CompleteMessage{
		Type:    "complete",
		RunID:   runID,
		Count:   n,
		Summary: statistics.Summarize(values),
	})
}

func (h *Handler) send(cn *conn, msgType string, msg interface{}) error {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	if err := cn.WriteJSON(msg); err != nil {
		return err
	}
	h.record("out", msgType)
	return nil
}

func (h *Handler) sendError(cn *conn, message string) {
	h.send(cn, "error", map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
