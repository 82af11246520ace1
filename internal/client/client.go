package client

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"strings"
	"time"

	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

var ErrRequestFailed = errors.New("request failed")

// Client talks to a funcsys HTTP server
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// Config defines client behavior
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
	// RateLimit caps requests per second; zero means unlimited.
	RateLimit float64
}

// DefaultConfig returns client defaults for baseURL
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		MinWait:    500 * time.Millisecond,
		MaxWait:    5 * time.Second,
	}
}

// New creates a client. Retries on connection errors and 5xx responses
// are handled by the retryable transport.
func New(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.MinWait
	retryClient.RetryWaitMax = cfg.MaxWait
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "funcsys-client/1.0").
		SetHeader("Accept", "application/json")
	restyClient.JSONMarshal = sonic.Marshal
	restyClient.JSONUnmarshal = sonic.Unmarshal

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))
	}

	return &Client{resty: restyClient, limiter: limiter}
}

// Evaluation is one remote evaluation. Result is nil where the function is
// undefined.
type Evaluation struct {
	X         float64
	Precision float64
	Defined   bool
	Result    *float64
}

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode())
	}
	return nil
}

// Functions fetches the service definition
func (c *Client) Functions(ctx context.Context) (*types.Service, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var service types.Service
	resp, err := req.SetResult(&service).Get("/functions")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode())
	}
	return &service, nil
}

// Evaluate evaluates a function by name ("sin" or "math.sin"). A zero
// precision uses the server default.
func (c *Client) Evaluate(ctx context.Context, name string, x, precision float64) (*Evaluation, error) {
	return c.execute(ctx, toolID(name), params(x, precision))
}

// EvaluateLog evaluates the logarithm to base.
func (c *Client) EvaluateLog(ctx context.Context, base, x, precision float64) (*Evaluation, error) {
	p := params(x, precision)
	p["base"] = base
	return c.execute(ctx, "math.log", p)
}

// Sweep runs a JSON sweep on the server
func (c *Client) Sweep(ctx context.Context, sweep types.SweepRequest) (*export.Document, error) {
	sweep.Format = string(export.FormatJSON)
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var doc export.Document
	var failure types.Result
	resp, err := req.SetBody(sweep).SetResult(&doc).SetError(&failure).Post("/sweep")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, resultError(resp.StatusCode(), &failure)
	}
	return &doc, nil
}

// SweepRaw runs a sweep and returns the encoded body, for CSV, YAML or TOML.
func (c *Client) SweepRaw(ctx context.Context, sweep types.SweepRequest) ([]byte, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var failure types.Result
	resp, err := req.SetBody(sweep).SetError(&failure).Post("/sweep")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, resultError(resp.StatusCode(), &failure)
	}
	return resp.Body(), nil
}

func (c *Client) execute(ctx context.Context, tool string, p map[string]interface{}) (*Evaluation, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var result, failure types.Result
	resp, err := req.
		SetBody(types.ExecuteRequest{Tool: tool, Params: p}).
		SetResult(&result).
		SetError(&failure).
		Post("/evaluate")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, resultError(resp.StatusCode(), &failure)
	}
	if !result.Success {
		return nil, resultError(resp.StatusCode(), &result)
	}
	return parseEvaluation(result.Data)
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	return c.resty.R().SetContext(ctx), nil
}

func parseEvaluation(data map[string]interface{}) (*Evaluation, error) {
	raw, present := data["x"]
	if !present {
		return nil, fmt.Errorf("%w: response has no x", ErrRequestFailed)
	}
	// null marks a non-finite input
	x, ok := raw.(float64)
	if !ok {
		x = gomath.NaN()
	}
	precision, _ := data["precision"].(float64)
	defined, _ := data["defined"].(bool)

	eval := &Evaluation{X: x, Precision: precision, Defined: defined}
	if v, ok := data["result"].(float64); ok && defined {
		eval.Result = &v
	}
	return eval, nil
}

func resultError(status int, r *types.Result) error {
	if r != nil && r.Error != nil {
		return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, status, *r.Error)
	}
	return fmt.Errorf("%w: status %d", ErrRequestFailed, status)
}

func toolID(name string) string {
	if strings.HasPrefix(name, "math.") {
		return name
	}
	return "math." + name
}

func params(x, precision float64) map[string]interface{} {
	p := map[string]interface{}{"x": x}
	if precision != 0 {
		p["precision"] = precision
	}
	return p
}
