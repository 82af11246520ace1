package statistics

import (
	gomath "math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4, gomath.NaN(), gomath.Inf(1)})

	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 4, s.Defined)
	assert.Equal(t, 2, s.Undefined)

	require.NotNil(t, s.Min)
	require.NotNil(t, s.Max)
	require.NotNil(t, s.Mean)
	require.NotNil(t, s.StdDev)
	assert.Equal(t, 1.0, *s.Min)
	assert.Equal(t, 4.0, *s.Max)
	assert.Equal(t, 2.5, *s.Mean)
	// sample standard deviation
	assert.InDelta(t, 1.290994, *s.StdDev, 1e-6)
}

func TestSummarizeSingleValue(t *testing.T) {
	s := Summarize([]float64{7})

	assert.Equal(t, 1, s.Defined)
	require.NotNil(t, s.Mean)
	assert.Equal(t, 7.0, *s.Mean)
	assert.Nil(t, s.StdDev)
}

func TestSummarizeNoDefinedValues(t *testing.T) {
	s := Summarize([]float64{gomath.NaN(), gomath.Inf(-1)})

	assert.Equal(t, Summary{Count: 2, Undefined: 2}, s)

	empty := Summarize(nil)
	assert.Equal(t, Summary{}, empty)
}

func TestSummarizeOverflow(t *testing.T) {
	s := Summarize([]float64{1e200, -1e200})
	require.NotNil(t, s.Mean)
	assert.Equal(t, 0.0, *s.Mean)
	assert.Nil(t, s.StdDev, "variance of ±1e200 overflows")
	assert.Equal(t, 2, s.Defined)

	s = Summarize([]float64{1.5e308, 1.5e308})
	assert.Nil(t, s.Mean)
	require.NotNil(t, s.Max)
	assert.Equal(t, 1.5e308, *s.Max)

	_, err := sonic.Marshal(s)
	assert.NoError(t, err)
}
