// Package testutil provides testing utilities and helpers for function tests.
package testutil

import (
	gomath "math"
	"testing"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFunction is a mock implementation of common.Function.
type MockFunction struct {
	mock.Mock
}

// Calculate mocks the Calculate method.
func (m *MockFunction) Calculate(x, precision float64) float64 {
	args := m.Called(x, precision)
	return args.Get(0).(float64)
}

// MockSeries is a mock implementation of common.Series.
type MockSeries struct {
	MockFunction
}

// Config mocks the Config method.
func (m *MockSeries) Config() common.Config {
	args := m.Called()
	return args.Get(0).(common.Config)
}

// NewMockFunction creates a mock that returns value for (x, precision).
func NewMockFunction(t *testing.T, x, precision, value float64) *MockFunction {
	t.Helper()
	m := new(MockFunction)
	m.On("Calculate", x, precision).Return(value)
	return m
}

// NewMockSeries creates a series mock with cfg as its configuration.
func NewMockSeries(t *testing.T, cfg common.Config) *MockSeries {
	t.Helper()
	m := new(MockSeries)
	m.On("Config").Return(cfg).Maybe()
	return m
}

// AssertNaN asserts that v is NaN.
func AssertNaN(t *testing.T, v float64) bool {
	t.Helper()
	return assert.Truef(t, gomath.IsNaN(v), "expected NaN, got %v", v)
}

// AssertDefined asserts that v is a finite number.
func AssertDefined(t *testing.T, v float64) bool {
	t.Helper()
	ok := !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
	return assert.Truef(t, ok, "expected finite value, got %v", v)
}
