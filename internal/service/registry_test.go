package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mathprovider "github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

type mockProvider struct {
	id    string
	calls []string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:       m.id,
		Name:     "Mock Service",
		Category: types.CategoryMath,
		Tools:    []types.Tool{{ID: m.id + ".test", Name: "Test Tool"}},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	m.calls = append(m.calls, toolID)
	return &types.Result{Success: true, Data: map[string]interface{}{"result": "success"}}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	require.NoError(t, r.Register(p))
	got, ok := r.Get("test")
	require.True(t, ok)
	assert.Same(t, p, got)

	assert.Error(t, r.Register(&mockProvider{id: "test"}), "duplicate ID")
	assert.Error(t, r.Register(&mockProvider{}), "empty ID")

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestListAndStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "b"}))
	require.NoError(t, r.Register(&mockProvider{id: "a"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
}

func TestExecuteRouting(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}
	require.NoError(t, r.Register(p))

	result, err := r.Execute(context.Background(), "test.tool", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"test.tool"}, p.calls)

	tests := []struct {
		toolID string
		want   string
	}{
		{"notool", "invalid tool ID format: notool"},
		{".sin", "invalid tool ID format: .sin"},
		{"other.tool", "service not found: other"},
	}
	for _, tt := range tests {
		result, err := r.Execute(context.Background(), tt.toolID, nil, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, tt.want, *result.Error)
	}
}

func TestExecuteMathProvider(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(mathprovider.NewProvider(mathprovider.DefaultFamily(), 1e-6)))

	result, err := r.Execute(context.Background(), "math.system", map[string]interface{}{"x": -1.0}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.InDelta(t, -4.053191, result.Data["result"], 1e-4)
}
