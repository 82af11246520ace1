package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/funcsys/internal/config"
	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/server"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// resultOf parses the value from a "name(x) = y" line.
func resultOf(t *testing.T, line string) float64 {
	t.Helper()
	_, value, ok := strings.Cut(strings.TrimSpace(line), " = ")
	require.True(t, ok, "unexpected line %q", line)
	y, err := strconv.ParseFloat(value, 64)
	require.NoError(t, err)
	return y
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "funcsys version dev\n", out)
}

func TestEvalSystem(t *testing.T) {
	out, err := run(t, "eval", "system", "--", "-1", "0", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "system(-1) = "))
	assert.InDelta(t, -4.053191, resultOf(t, lines[0]), 1e-4)
	assert.Equal(t, "system(0) = undefined", lines[1])
	assert.InDelta(t, 0.0612056, resultOf(t, lines[2]), 1e-4)
}

func TestEvalLog(t *testing.T) {
	out, err := run(t, "eval", "log", "--base", "5", "25")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, resultOf(t, out), 1e-4)
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown function", []string{"eval", "exp", "1"}, "unknown function: exp"},
		{"invalid x", []string{"eval", "sin", "abc"}, `invalid x "abc"`},
		{"invalid base", []string{"eval", "log", "--base", "1", "2"}, "base"},
		{"invalid epsilon", []string{"eval", "sin", "1", "--epsilon", "2"}, "invalid configuration"},
		{"missing x", []string{"eval", "sin"}, "requires at least 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExportStdoutCSV(t *testing.T) {
	out, err := run(t, "export", "sin", "--start", "0", "--end", "0.2", "--step", "0.1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "X,f(X)", lines[0])
	assert.Equal(t, "0,0", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "0.1,0.0998"))
}

func TestExportIntermediateJSON(t *testing.T) {
	out, err := run(t, "export", "system",
		"--start", "1", "--end", "2", "--step", "0.5",
		"--intermediate", "ln", "--format", "json")
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"ln", "f(X)"}, doc.Columns)
	require.Len(t, doc.Samples, 3)

	// x = 1 is undefined for the system but not for ln
	require.NotNil(t, doc.Samples[0].Values[0])
	assert.InDelta(t, 0.0, *doc.Samples[0].Values[0], 1e-9)
	assert.Nil(t, doc.Samples[0].Values[1])
	require.NotNil(t, doc.Samples[2].Values[1])
	assert.InDelta(t, 0.0612056, *doc.Samples[2].Values[1], 1e-4)
}

func TestExportGzipFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "cos", "--start", "0", "--end", "1", "--step", "0.25",
		"--separator", ";", "--out", filepath.Join(dir, "cos.csv.gz"))
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 5 samples")

	f, err := os.Open(filepath.Join(dir, "cos.csv.gz"))
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "X;f(X)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0;"))
}

func TestExportErrors(t *testing.T) {
	_, err := run(t, "export", "sin", "--start", "1", "--end", "0")
	assert.ErrorContains(t, err, "invalid range")

	_, err = run(t, "export", "sin", "--end", "1", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported")

	_, err = run(t, "export", "sin", "--end", "1", "--separator", "ab")
	assert.ErrorContains(t, err, "separator")

	_, err = run(t, "export", "nope", "--end", "1")
	assert.ErrorContains(t, err, "unknown function: nope")
}

func TestDemo(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "demo", "--dir", dir)
	require.NoError(t, err)

	for _, e := range demoExports {
		path := filepath.Join(dir, e.file)
		assert.Contains(t, out, path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "X,f(X)\n"))
	}

	assert.Contains(t, out, "f(-1.0000) = -4.0531")
	assert.Contains(t, out, "f(0.0000) = NaN")
	assert.Contains(t, out, "f(-3.1416) = NaN")
}

func TestRemoteEval(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	srv, err := server.NewServer(cfg, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	out, err := run(t, "eval", "system", "--remote", ts.URL, "--", "-1", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.InDelta(t, -4.053191, resultOf(t, lines[0]), 1e-4)
	assert.Equal(t, "system(0) = undefined", lines[1])

	out, err = run(t, "export", "sin", "--remote", ts.URL, "--start", "0", "--end", "0.1", "--step", "0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "X,f(X)\n"))
}
