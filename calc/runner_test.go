// SPDX-License-Identifier: MIT

package calc_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/sparsecalc/calc"
	"github.com/katalvlaran/sparsecalc/sparse"
	"github.com/katalvlaran/sparsecalc/sparseio"
)

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestRunner_AddEndToEnd(t *testing.T) {
	dir := t.TempDir()
	pa := writeInput(t, dir, "a.txt", "rows=2\ncols=2\n(0,0,1)\n(1,1,2)\n")
	pb := writeInput(t, dir, "b.txt", "rows=2\ncols=2\n(0,0,3)\n(0,1,4)\n")
	out := filepath.Join(dir, "result.txt")

	core, logs := observer.New(zapcore.DebugLevel)
	r := &calc.Runner{Logger: zap.New(core)}

	res, err := r.Run(context.Background(), calc.Job{Op: calc.OpAdd, PathA: pa, PathB: pb, Output: out})
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "rows=2\ncols=2\n(0, 0, 4)\n(0, 1, 4)\n(1, 1, 2)\n", string(raw))

	require.Equal(t, 1, logs.FilterMessage("addition completed").Len())
	require.Equal(t, 2, logs.FilterMessage("Matrix loaded").Len())
	for _, entry := range logs.All() {
		require.Equal(t, res.RunID, entry.ContextMap()["run_id"])
	}
}

func TestRunner_Stdout(t *testing.T) {
	dir := t.TempDir()
	pa := writeInput(t, dir, "a.txt", "rows=2\ncols=2\n(0,0,1)\n(0,1,2)\n(1,0,3)\n(1,1,4)\n")
	pb := writeInput(t, dir, "b.txt", "rows=2\ncols=2\n(0,0,1)\n(1,1,1)\n")

	var buf bytes.Buffer
	r := &calc.Runner{Stdout: &buf}
	res, err := r.Run(context.Background(), calc.Job{Op: calc.OpMul, PathA: pa, PathB: pb, Output: calc.StdoutPath})
	require.NoError(t, err)

	a, err := sparseio.ParseFile(pa)
	require.NoError(t, err)
	require.True(t, sparse.Equal(a, res.Matrix))
	require.Equal(t, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, 2)\n(1, 0, 3)\n(1, 1, 4)\n", buf.String())
}

func TestRunner_Errors(t *testing.T) {
	dir := t.TempDir()
	square := writeInput(t, dir, "sq.txt", "rows=2\ncols=2\n(0,0,1)\n")
	wide := writeInput(t, dir, "wide.txt", "rows=2\ncols=3\n(0,2,1)\n")
	bad := writeInput(t, dir, "bad.txt", "rows=2\n(0,0,1)\n")
	oob := writeInput(t, dir, "oob.txt", "rows=2\ncols=2\n(5,0,1)\n")

	for _, tc := range []struct {
		name   string
		runner calc.Runner
		job    calc.Job
		want   error
	}{
		{"addMismatch", calc.Runner{}, calc.Job{Op: calc.OpAdd, PathA: square, PathB: wide}, sparse.ErrDimensionMismatch},
		{"subMismatch", calc.Runner{}, calc.Job{Op: calc.OpSub, PathA: square, PathB: wide}, sparse.ErrDimensionMismatch},
		{"mulMismatch", calc.Runner{}, calc.Job{Op: calc.OpMul, PathA: wide, PathB: wide}, sparse.ErrDimensionMismatch},
		{"format", calc.Runner{}, calc.Job{Op: calc.OpAdd, PathA: square, PathB: bad}, sparseio.ErrFormat},
		{"missingFile", calc.Runner{}, calc.Job{Op: calc.OpAdd, PathA: square, PathB: filepath.Join(dir, "nope")}, os.ErrNotExist},
		{"invalidOp", calc.Runner{}, calc.Job{Op: "/", PathA: square, PathB: square}, calc.ErrInvalidOperation},
		{"strictBounds", calc.Runner{StrictBounds: true}, calc.Job{Op: calc.OpAdd, PathA: square, PathB: oob}, sparse.ErrOutOfRange},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "result.txt")
			tc.job.Output = out
			_, err := tc.runner.Run(context.Background(), tc.job)
			require.ErrorIs(t, err, tc.want)
			_, statErr := os.Stat(out)
			require.ErrorIs(t, statErr, os.ErrNotExist, "no output on failure")
		})
	}
}

func TestRunner_Cancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeInput(t, dir, "a.txt", "rows=1\ncols=1\n(0,0,1)\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&calc.Runner{}).Run(ctx, calc.Job{Op: calc.OpAdd, PathA: p, PathB: p, Output: calc.StdoutPath})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_MulEpsilon(t *testing.T) {
	dir := t.TempDir()
	p := writeInput(t, dir, "a.txt", "rows=1\ncols=1\n(0,0,0.000001)\n")

	res, err := (&calc.Runner{}).Run(context.Background(), calc.Job{Op: calc.OpMul, PathA: p, PathB: p, Output: calc.StdoutPath})
	require.NoError(t, err)
	require.Zero(t, res.Matrix.NNZ())

	r := &calc.Runner{MulOptions: []sparse.Option{sparse.WithEpsilon(0)}}
	res, err = r.Run(context.Background(), calc.Job{Op: calc.OpMul, PathA: p, PathB: p, Output: calc.StdoutPath})
	require.NoError(t, err)
	require.Equal(t, 1, res.Matrix.NNZ())
}
