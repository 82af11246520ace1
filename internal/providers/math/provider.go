package math

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"sort"
	"strings"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/advanced"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/operations"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

const toolPrefix = "math."

var ErrUnknownFunction = errors.New("unknown function")

// Provider exposes a function family as service tools
type Provider struct {
	family    *Family
	precision float64
	functions map[string]common.Function
}

// NewProvider creates a provider over family. defaultPrecision is used
// when a call does not carry its own precision.
func NewProvider(family *Family, defaultPrecision float64) *Provider {
	return &Provider{
		family:    family,
		precision: defaultPrecision,
		functions: family.Functions(),
	}
}

// Family returns the underlying function family
func (m *Provider) Family() *Family {
	return m.family
}

// DefaultPrecision returns the precision applied when a call omits one
func (m *Provider) DefaultPrecision() float64 {
	return m.precision
}

// Names lists the function names accepted by Lookup, sorted
func (m *Provider) Names() []string {
	names := make([]string, 0, len(m.functions))
	for name := range m.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a function by short name ("sin") or tool ID ("math.sin")
func (m *Provider) Lookup(name string) (common.Function, error) {
	fn, ok := m.functions[strings.TrimPrefix(name, toolPrefix)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn, nil
}

// Definition returns service metadata with all module tools
func (m *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, operations.TrigTools()...)
	tools = append(tools, operations.LogTools()...)
	tools = append(tools, advanced.SystemTools()...)

	return types.Service{
		ID:          "math",
		Name:        "Function System",
		Description: "Series-based trigonometric and logarithmic functions and their piecewise system",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"trigonometry",
			"logarithms",
			"system",
		},
		Tools: tools,
	}
}

// Execute evaluates a tool. Undefined results are successes with a null
// result and defined=false; only malformed requests fail.
func (m *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, ok := GetNumber(params, "x")
	if !ok {
		return Failure("x parameter required")
	}
	precision, ok := GetNumber(params, "precision")
	if !ok {
		precision = m.precision
	}

	var fn common.Function
	switch toolID {
	case "math.log":
		base, ok := GetNumber(params, "base")
		if !ok {
			return Failure("base parameter required")
		}
		log, err := m.family.Log(base)
		if err != nil {
			return Failure(err.Error())
		}
		fn = log
	default:
		if !strings.HasPrefix(toolID, toolPrefix) {
			return Failure(fmt.Sprintf("unknown tool: %s", toolID))
		}
		var err error
		if fn, err = m.Lookup(toolID); err != nil {
			return Failure(fmt.Sprintf("unknown tool: %s", toolID))
		}
	}

	return Success(Evaluation(x, precision, fn.Calculate(x, precision)))
}

// Evaluation renders one evaluation as result data. JSON has no NaN or
// Inf, so non-finite inputs and undefined results are reported as nil.
func Evaluation(x, precision, y float64) map[string]interface{} {
	return map[string]interface{}{
		"x":         finiteOrNil(x),
		"precision": finiteOrNil(precision),
		"defined":   !nonFinite(y),
		"result":    finiteOrNil(y),
	}
}

func nonFinite(v float64) bool {
	return gomath.IsNaN(v) || gomath.IsInf(v, 0)
}

func finiteOrNil(v float64) interface{} {
	if nonFinite(v) {
		return nil
	}
	return v
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}
