package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/funcsys/internal/api/middleware"
	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/monitoring"
	mathprovider "github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/service"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router  *gin.Engine
	metrics *monitoring.Metrics
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	provider := mathprovider.NewProvider(mathprovider.DefaultFamily(), 1e-6)
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(provider))
	h := NewHandlers(registry, provider, export.New(export.WithMetrics(metrics)), metrics, nil)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/functions", h.ListFunctions)
	router.POST("/evaluate", h.Execute)
	router.GET("/evaluate/:name", h.EvaluateByName)
	router.POST("/sweep", h.Sweep)

	return &testEnv{router: router, metrics: metrics}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRootAndHealth(t *testing.T) {
	env := setup(t)

	w := env.do("GET", "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = env.do("GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 1e-6, body["default_precision"])
	series := body["series"].(map[string]interface{})
	assert.Equal(t, 100.0, series["max_iterations"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, 1.0, services["total_services"])
}

func TestListFunctions(t *testing.T) {
	env := setup(t)

	w := env.do("GET", "/functions", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "math", body["id"])
	assert.Len(t, body["tools"], 12)
}

func TestExecute(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		defined    bool
		want       float64
	}{
		{"sine", `{"tool":"math.sin","params":{"x":0.5}}`, http.StatusOK, true, 0.479426},
		{"system", `{"tool":"math.system","params":{"x":-1,"precision":1e-6}}`, http.StatusOK, true, -4.0531},
		{"log base", `{"tool":"math.log","params":{"x":8,"base":2}}`, http.StatusOK, true, 3},
		{"undefined", `{"tool":"math.ln","params":{"x":-1}}`, http.StatusOK, false, 0},
		{"missing x", `{"tool":"math.sin","params":{}}`, http.StatusBadRequest, false, 0},
		{"unknown tool", `{"tool":"math.exp","params":{"x":1}}`, http.StatusBadRequest, false, 0},
		{"unknown service", `{"tool":"fs.read","params":{"x":1}}`, http.StatusBadRequest, false, 0},
		{"malformed", `{"tool":`, http.StatusBadRequest, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do("POST", "/evaluate", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decode(t, w)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["error"])
				return
			}

			data := body["data"].(map[string]interface{})
			assert.Equal(t, tt.defined, data["defined"])
			if tt.defined {
				assert.InDelta(t, tt.want, data["result"], 1e-4)
			} else {
				assert.Nil(t, data["result"])
			}
		})
	}

	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.EvaluationsTotal.WithLabelValues("ln", monitoring.OutcomeUndefined)))
	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.EvaluationsTotal.WithLabelValues("sin", monitoring.OutcomeDefined)))
}

func TestEvaluateByName(t *testing.T) {
	env := setup(t)

	w := env.do("GET", "/evaluate/system?x=-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.InDelta(t, -4.0531, data["result"], 1e-4)
	assert.Equal(t, 1e-6, data["precision"])

	w = env.do("GET", "/evaluate/csc?x=0&precision=0.001", "")
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["defined"])
	assert.Equal(t, 0.001, data["precision"])

	for _, query := range []string{"x=NaN", "x=Inf", "x=-Inf", "x=1&precision=NaN", "x=1&precision=Inf"} {
		w = env.do("GET", "/evaluate/sin?"+query, "")
		require.Equal(t, http.StatusOK, w.Code, query)
		require.NotEmpty(t, w.Body.String(), query)
		data = decode(t, w)["data"].(map[string]interface{})
		assert.Equal(t, false, data["defined"], query)
		assert.Nil(t, data["result"], query)
	}
	data = decode(t, env.do("GET", "/evaluate/sin?x=Inf", ""))["data"].(map[string]interface{})
	assert.Nil(t, data["x"])
	assert.Equal(t, 1e-6, data["precision"])
	data = decode(t, env.do("GET", "/evaluate/sin?x=1&precision=NaN", ""))["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["x"])
	assert.Nil(t, data["precision"])

	// math. prefix shares the metric label with the bare name
	env.do("GET", "/evaluate/math.system?x=-1", "")

	assert.Equal(t, http.StatusNotFound, env.do("GET", "/evaluate/exp?x=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do("GET", "/evaluate/sin", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do("GET", "/evaluate/sin?x=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do("GET", "/evaluate/sin?x=1&precision=low", "").Code)

	assert.Equal(t, 2.0, promtest.ToFloat64(env.metrics.EvaluationsTotal.WithLabelValues("system", monitoring.OutcomeDefined)))
}

func TestSweepJSON(t *testing.T) {
	env := setup(t)

	w := env.do("POST", "/sweep", `{"function":"ln","start":-1,"end":1,"step":0.5,"format":"json"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["run_id"])
	assert.Equal(t, body["run_id"], w.Header().Get("X-Run-ID"))

	samples := body["samples"].([]interface{})
	require.Len(t, samples, 5)
	first := samples[0].(map[string]interface{})
	assert.Equal(t, -1.0, first["x"])
	assert.Equal(t, []interface{}{nil}, first["values"])

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 5.0, summary["count"])
	assert.Equal(t, 2.0, summary["defined"])
	assert.Equal(t, 3.0, summary["undefined"])
}

func TestSweepCSV(t *testing.T) {
	env := setup(t)

	w := env.do("POST", "/sweep", `{"function":"system","start":0.5,"end":0.5,"step":0.1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "X,f(X)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.5,"))
	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.SweepsTotal.WithLabelValues("system", "success")))
}

func TestSweepYAMLAndTOML(t *testing.T) {
	env := setup(t)

	w := env.do("POST", "/sweep", `{"function":"cos","start":0,"end":1,"step":0.5,"format":"yaml"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "run_id:")

	w = env.do("POST", "/sweep", `{"function":"cos","start":0,"end":1,"step":0.5,"format":"toml"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[[samples]]")
}

func TestSweepErrors(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"reversed range", `{"function":"sin","start":1,"end":0,"step":0.1}`, http.StatusBadRequest},
		{"too many points", `{"function":"sin","start":0,"end":1000,"step":0.0001}`, http.StatusBadRequest},
		{"unknown function", `{"function":"exp","start":0,"end":1,"step":0.1}`, http.StatusNotFound},
		{"unknown format", `{"function":"sin","start":0,"end":1,"step":0.1,"format":"xml"}`, http.StatusBadRequest},
		{"missing step", `{"function":"sin","start":0,"end":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do("POST", "/sweep", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}
