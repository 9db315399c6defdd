// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/katalvlaran/reliefroute/internal/logging"
	"github.com/katalvlaran/reliefroute/lp"
)

// ErrNilSystem is returned when Solve is called without a system.
var ErrNilSystem = errors.New("solver: nil system")

// Solver optimises an assembled system.
//
// Implementations return status Timeout when the time budget runs out and
// an error when ctx is cancelled. A backend that cannot be interrupted may
// keep computing after Solve returns; Simplex bounds how many such runs
// exist at once (Options.MaxInFlight).
type Solver interface {
	Solve(ctx context.Context, sys *lp.System) (Result, error)
}

// Status is the outcome of a solve.
type Status int

const (
	// Optimal means Assignment minimises the objective.
	Optimal Status = iota + 1
	// Infeasible means no assignment satisfies every constraint.
	Infeasible
	// Unbounded means the objective decreases without limit.
	Unbounded
	// Timeout means the solve did not finish within the time budget.
	Timeout
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what a Solver returns. Assignment and Objective are set only
// when Status is Optimal; Assignment then holds every variable of the system.
type Result struct {
	Status     Status
	Assignment map[lp.VarID]float64
	Objective  float64
	Elapsed    time.Duration
}

// IsOptimal reports whether r carries a solution.
func (r Result) IsOptimal() bool { return r.Status == Optimal }

// SolveError reports a numerical failure of the backend.
type SolveError struct {
	Rows, Cols int
	Err        error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solver: simplex failed on %d×%d standard form: %v", e.Rows, e.Cols, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// Defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultTolerance = 1e-9
)

// Options configures NewSimplex.
type Options struct {
	// Timeout bounds a single solve; 0 means DefaultTimeout.
	Timeout time.Duration
	// Tolerance is the reduced-cost optimality threshold and the magnitude
	// under which solution values are rounded to 0.
	Tolerance float64
	// Logger receives presolve and status records.
	Logger logging.Logger
	// MaxInFlight caps concurrent backend runs, including runs abandoned
	// by a timeout that are still finishing; 0 means GOMAXPROCS.
	MaxInFlight int
}

// DefaultOptions returns the options NewSimplex starts from.
func DefaultOptions() Options {
	return Options{
		Timeout:     DefaultTimeout,
		Tolerance:   DefaultTolerance,
		Logger:      logging.Noop(),
		MaxInFlight: runtime.GOMAXPROCS(0),
	}
}

// Option mutates Options.
type Option func(*Options)

// WithTimeout sets the per-solve time budget. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithTolerance sets the numerical tolerance. Non-positive values keep the default.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithLogger sets the logger. nil keeps the current one.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxInFlight caps concurrent backend runs. Non-positive values keep the default.
func WithMaxInFlight(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxInFlight = n
		}
	}
}
