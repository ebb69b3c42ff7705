// SPDX-License-Identifier: MIT

package calc

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sparsecalc/sparse"
	"github.com/katalvlaran/sparsecalc/sparseio"
)

// StdoutPath as Job.Output sends the result to Runner.Stdout.
const StdoutPath = "-"

// Job is one invocation: two input files, one operation, one destination.
type Job struct {
	Op     Op
	PathA  string
	PathB  string
	Output string
}

// Result summarizes a finished run.
type Result struct {
	RunID  string
	Matrix *sparse.Sparse
	Output string
}

// Runner executes Jobs. The zero value is usable: it logs nothing, writes
// "-" to io.Discard and uses the default arithmetic options.
type Runner struct {
	Logger       *zap.Logger
	Stdout       io.Writer
	StrictBounds bool
	MulOptions   []sparse.Option
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}

	return r.Logger
}

// Run loads both inputs concurrently, applies the operation and writes the
// result. Every failure is fatal to the run; nothing is written on error.
//
// Errors match (errors.Is) sparseio.ErrFormat, sparse.ErrDimensionMismatch,
// ErrInvalidOperation, the context error or the underlying I/O error.
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	runID := uuid.NewString()
	log := r.logger().With(
		zap.String("run_id", runID),
		zap.String("op", string(job.Op)),
	)
	start := time.Now()

	if _, err := ParseOp(string(job.Op)); err != nil {
		return nil, err
	}

	a, b, err := r.load(ctx, log, job.PathA, job.PathB)
	if err != nil {
		log.Error("Loading inputs failed", zap.Error(err))
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("Computing "+job.Op.Name(),
		zap.String("a", shape(a)),
		zap.String("b", shape(b)))
	res, err := job.Op.Apply(a, b, r.MulOptions...)
	if err != nil {
		log.Error(job.Op.Name()+" failed", zap.Error(err))
		return nil, err
	}
	log.Info(job.Op.Name()+" completed",
		zap.String("result", shape(res)),
		zap.Int("nnz", res.NNZ()))

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = r.write(job.Output, res); err != nil {
		log.Error("Writing result failed", zap.String("path", job.Output), zap.Error(err))
		return nil, err
	}
	log.Info("Result written",
		zap.String("path", job.Output),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{RunID: runID, Matrix: res, Output: job.Output}, nil
}

// load parses both inputs in parallel; the first error cancels the other.
func (r *Runner) load(ctx context.Context, log *zap.Logger, pathA, pathB string) (a, b *sparse.Sparse, err error) {
	var opts []sparseio.ParseOption
	if r.StrictBounds {
		opts = append(opts, sparseio.WithStrictBounds())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := loadOne(gctx, log, pathA, opts)
		a = m
		return err
	})
	g.Go(func() error {
		m, err := loadOne(gctx, log, pathB, opts)
		b = m
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

func loadOne(ctx context.Context, log *zap.Logger, path string, opts []sparseio.ParseOption) (*sparse.Sparse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := sparseio.ParseFile(path, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("Matrix loaded",
		zap.String("path", path),
		zap.String("shape", shape(m)),
		zap.Int("nnz", m.NNZ()))

	return m, nil
}

func (r *Runner) write(path string, m *sparse.Sparse) error {
	if path == "" || path == StdoutPath {
		w := r.Stdout
		if w == nil {
			w = io.Discard
		}
		return sparseio.Write(w, m)
	}

	return sparseio.WriteFile(path, m)
}

func shape(m *sparse.Sparse) string {
	return fmt.Sprintf("%dx%d", m.Rows(), m.Cols())
}
