// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	glp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/reliefroute/internal/logging"
	"github.com/katalvlaran/reliefroute/lp"
)

// Simplex solves systems with gonum's dense two-phase simplex.
type Simplex struct {
	opts Options
	sem  *semaphore.Weighted
}

var _ Solver = (*Simplex)(nil)

// NewSimplex returns a Simplex configured by opts on top of DefaultOptions.
func NewSimplex(opts ...Option) *Simplex {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Simplex{opts: o, sem: semaphore.NewWeighted(int64(o.MaxInFlight))}
}

// Options returns the effective configuration.
func (s *Simplex) Options() Options { return s.opts }

type outcome struct {
	y     []float64
	exact bool
	err   error
}

// Solve minimises sys.
//
// The backend runs on its own goroutine and cannot be interrupted. When ctx
// expires or Options.Timeout elapses first, Solve returns status Timeout
// while that goroutine keeps its Options.MaxInFlight slot until the backend
// returns; with every slot taken, Solve waits for one within the same
// budget. Cancellation of ctx (as opposed to a deadline) is returned as
// ctx.Err().
func (s *Simplex) Solve(ctx context.Context, sys *lp.System) (Result, error) {
	start := time.Now()
	if sys == nil {
		return Result{}, ErrNilSystem
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return s.interrupted(ctx, err, start)
	}
	log := s.opts.Logger

	pre := presolve(sys, s.opts.Tolerance)
	m, n := pre.form.dims()
	log.Debug(ctx, "presolve",
		logging.Int("variables", sys.NumVariables()),
		logging.Int("constraints", sys.NumConstraints()),
		logging.Int("dropped_rows", pre.droppedRows),
		logging.Int("fixed_columns", pre.fixedCols),
		logging.Int("rows", m), logging.Int("columns", n))

	switch pre.status {
	case Infeasible, Unbounded:
		log.Info(ctx, "decided in presolve",
			logging.String("status", pre.status.String()), logging.String("culprit", pre.culprit))
		return Result{Status: pre.status, Elapsed: time.Since(start)}, nil
	case Optimal:
		return s.optimal(sys, make([]float64, sys.NumVariables()), start), nil
	}

	tctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if err := s.sem.Acquire(tctx, 1); err != nil {
		return s.expired(ctx, start)
	}
	done := make(chan outcome, 1)
	go func() {
		defer s.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		done <- s.run(pre.form)
	}()

	select {
	case <-tctx.Done():
		return s.expired(ctx, start)
	case out := <-done:
		return s.finish(ctx, sys, pre.form, out, start)
	}
}

// run calls the backend on the relaxed form and recovers the vertex of
// the unrelaxed one.
func (s *Simplex) run(form *standardForm) outcome {
	_, y, err := glp.Simplex(form.c, form.a, form.b, s.opts.Tolerance, nil)
	if err != nil {
		return outcome{err: err}
	}
	if v, ok := form.vertex(y); ok {
		return outcome{y: v, exact: true}
	}

	return outcome{y: y}
}

func (s *Simplex) expired(ctx context.Context, start time.Time) (Result, error) {
	if err := ctx.Err(); err != nil {
		return s.interrupted(ctx, err, start)
	}
	s.opts.Logger.Warn(ctx, "simplex timed out", logging.Any("timeout", s.opts.Timeout))

	return Result{Status: Timeout, Elapsed: time.Since(start)}, nil
}

func (s *Simplex) interrupted(ctx context.Context, err error, start time.Time) (Result, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		s.opts.Logger.Warn(ctx, "deadline reached before simplex finished")
		return Result{Status: Timeout, Elapsed: time.Since(start)}, nil
	}

	return Result{}, err
}

func (s *Simplex) finish(ctx context.Context, sys *lp.System, form *standardForm, out outcome, start time.Time) (Result, error) {
	switch {
	case out.err == nil:
	case isBackendErr(out.err, glp.ErrInfeasible):
		return Result{Status: Infeasible, Elapsed: time.Since(start)}, nil
	case isBackendErr(out.err, glp.ErrUnbounded):
		return Result{Status: Unbounded, Elapsed: time.Since(start)}, nil
	default:
		m, n := form.dims()
		s.opts.Logger.Error(ctx, "simplex failed", logging.Err(out.err))
		return Result{}, &SolveError{Rows: m, Cols: n, Err: out.err}
	}
	if !out.exact {
		s.opts.Logger.Warn(ctx, "kept relaxed vertex",
			logging.Float("relaxation", perturbation))
	}

	return s.optimal(sys, form.unscale(out.y, sys.NumVariables()), start), nil
}

func (s *Simplex) optimal(sys *lp.System, x []float64, start time.Time) Result {
	assignment := make(map[lp.VarID]float64, len(x))
	for i, v := range x {
		if math.Abs(v) <= s.opts.Tolerance {
			v = 0
			x[i] = 0
		}
		assignment[lp.VarID(i)] = v
	}

	return Result{
		Status:     Optimal,
		Assignment: assignment,
		Objective:  sys.Evaluate(x),
		Elapsed:    time.Since(start),
	}
}

// isBackendErr matches target directly or inside the phase-one message,
// which the backend formats with %s rather than %w.
func isBackendErr(err, target error) bool {
	return errors.Is(err, target) || strings.Contains(err.Error(), target.Error())
}
