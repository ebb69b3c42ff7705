// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/sparsecalc/calc"
	"github.com/katalvlaran/sparsecalc/config"
	"github.com/katalvlaran/sparsecalc/sparse"
	"github.com/katalvlaran/sparsecalc/sparseio"
)

// useDefaults resets the globals the RunE functions read.
func useDefaults(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	opFlag, spyOut = "", ""
	stdin = strings.NewReader("")
	t.Cleanup(func() { stdin = os.Stdin })
}

func writeMatrix(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	return p
}

func TestPromptOperation_RetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	op, err := promptOperation(strings.NewReader("/\n\nmul\n"), &out)
	require.NoError(t, err)
	require.Equal(t, calc.OpMul, op)
	require.Equal(t, 2, strings.Count(out.String(), invalidText))
	require.Equal(t, 3, strings.Count(out.String(), promptText))
}

func TestPromptOperation_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := promptOperation(strings.NewReader("x\n"), &out)
	require.ErrorIs(t, err, errNoOperation)
}

func TestRunCompute_FlagOpToStdout(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "rows=2\ncols=2\n(0,0,1)\n(1,1,2)\n")
	b := writeMatrix(t, dir, "b.txt", "rows=2\ncols=2\n(0,0,3)\n(0,1,4)\n")

	opFlag = "-"
	cfg.Compute.Output = calc.StdoutPath
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runCompute(cmd, []string{a, b}))
	require.Equal(t, "rows=2\ncols=2\n(0, 0, -2)\n(0, 1, -4)\n(1, 1, 2)\n", out.String())
}

func TestRunCompute_PromptedOpToFile(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "rows=2\ncols=2\n(0,0,1)\n(0,1,2)\n(1,0,3)\n(1,1,4)\n")
	id := writeMatrix(t, dir, "id.txt", "rows=2\ncols=2\n(0,0,1)\n(1,1,1)\n")
	cfg.Compute.Output = filepath.Join(dir, "result.txt")
	stdin = strings.NewReader("?\n*\n")

	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&stderr)

	require.NoError(t, runCompute(cmd, []string{a, id}))
	require.Contains(t, stderr.String(), invalidText)
	require.Contains(t, stderr.String(), "Result written to")

	got, err := sparseio.ParseFile(cfg.Compute.Output)
	require.NoError(t, err)
	want, err := sparseio.ParseFile(a)
	require.NoError(t, err)
	require.True(t, sparse.Equal(want, got))
}

func TestRunCompute_Errors(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "rows=2\ncols=3\n")
	cfg.Compute.Output = calc.StdoutPath
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	opFlag = "+"
	sq := writeMatrix(t, dir, "sq.txt", "rows=2\ncols=2\n")
	require.ErrorIs(t, runCompute(cmd, []string{a, sq}), sparse.ErrDimensionMismatch)

	opFlag = "%"
	require.ErrorIs(t, runCompute(cmd, []string{a, a}), calc.ErrInvalidOperation)
}

func TestRunSpy_WritesFile(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	m := writeMatrix(t, dir, "m.txt", "rows=3\ncols=3\n(0,0,1)\n(2,1,4)\n")
	spyOut = filepath.Join(dir, "m.svg")

	require.NoError(t, runSpy(&cobra.Command{}, []string{m}))
	raw, err := os.ReadFile(spyOut)
	require.NoError(t, err)
	require.Contains(t, string(raw), "<svg")
}

func TestRunSpy_Stdout(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	m := writeMatrix(t, dir, "m.txt", "rows=1\ncols=1\n(0,0,1)\n")
	spyOut = "-"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runSpy(cmd, []string{m}))
	require.True(t, bytes.HasPrefix(out.Bytes(), []byte("\x89PNG")))
}

func TestRootCmd_ComputeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.txt", "rows=2\ncols=2\n(0,0,1)\n(1,1,2)\n")
	b := writeMatrix(t, dir, "b.txt", "rows=2\ncols=2\n(0,0,3)\n(0,1,4)\n")
	conf := filepath.Join(dir, "sparsecalc.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("logging:\n  level: error\n"), 0o644))
	out := filepath.Join(dir, "sum.txt")

	rootCmd.SetArgs([]string{"compute", "--config", conf, "--op", "+", "--out", out, a, b})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "rows=2\ncols=2\n(0, 0, 4)\n(0, 1, 4)\n(1, 1, 2)\n", string(raw))
	require.Equal(t, out, cfg.Compute.Output)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = newLogger(config.LoggingConfig{Level: "warn", Development: true}, true)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger(config.LoggingConfig{Level: "loud"}, false)
	require.Error(t, err)
}
