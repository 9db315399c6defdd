// SPDX-License-Identifier: MIT

package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/config"
	"github.com/katalvlaran/reliefroute/dataset"
	"github.com/katalvlaran/reliefroute/internal/logging"
	"github.com/katalvlaran/reliefroute/internal/metrics"
	"github.com/katalvlaran/reliefroute/lp"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/solver"
)

const tracerName = "github.com/katalvlaran/reliefroute/planner"

// DefaultVerifyTolerance is the absolute slack allowed when checking a
// solution against its constraints.
const DefaultVerifyTolerance = 1e-6

// Planner runs planning pipelines. It is safe for concurrent use.
type Planner struct {
	solver    solver.Solver
	model     model.Options
	log       logging.Logger
	metrics   *metrics.Collector
	tracer    trace.Tracer
	verifyTol float64
}

// Option configures a Planner.
type Option func(*Planner)

// WithSolver replaces the default simplex solver.
func WithSolver(s solver.Solver) Option {
	return func(p *Planner) {
		if s != nil {
			p.solver = s
		}
	}
}

// WithModelOptions sets the assembly policies.
func WithModelOptions(o model.Options) Option {
	return func(p *Planner) { p.model = o }
}

// WithLogger sets the run logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records runs on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Planner) { p.metrics = c }
}

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Planner) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithVerifyTolerance sets the verification slack. Non-positive values keep
// the default.
func WithVerifyTolerance(tol float64) Option {
	return func(p *Planner) {
		if tol > 0 {
			p.verifyTol = tol
		}
	}
}

// New returns a Planner with the default policies, a simplex solver, no
// metrics and the global tracer provider, adjusted by opts.
func New(opts ...Option) *Planner {
	p := &Planner{
		model:     model.DefaultOptions(),
		log:       logging.Noop(),
		tracer:    otel.Tracer(tracerName),
		verifyTol: DefaultVerifyTolerance,
	}
	for _, fn := range opts {
		fn(p)
	}
	if p.solver == nil {
		p.solver = solver.NewSimplex(solver.WithLogger(p.log))
	}

	return p
}

// NewFromConfig builds a Planner from a deployment configuration. The
// logger is taken from opts (WithLogger) and shared with the solver.
func NewFromConfig(cfg config.Config, opts ...Option) (*Planner, error) {
	mo, err := cfg.ModelOptions()
	if err != nil {
		return nil, err
	}
	defaults := New(opts...)
	base := []Option{
		WithModelOptions(mo),
		WithSolver(solver.NewSimplex(cfg.SolverOptions(defaults.log)...)),
	}

	return New(append(base, opts...)...), nil
}

// Options returns the assembly policies the planner runs with.
func (p *Planner) Options() model.Options { return p.model }

// PlanFile loads the dataset at path and plans it.
func (p *Planner) PlanFile(ctx context.Context, path string) (*Report, error) {
	cat, err := dataset.LoadCatalog(path)
	if err != nil {
		return nil, err
	}

	return p.Plan(ctx, cat)
}

// Plan screens, assembles, solves and verifies cat.
//
// Infeasible, Unbounded and Timeout outcomes are returned as a Report with
// the corresponding Status and a nil error. Errors are returned for invalid
// input, assembly failures, solver failures and verification failures; no
// Report is returned with them.
func (p *Planner) Plan(ctx context.Context, cat *catalog.Catalog) (rep *Report, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, runID := logging.EnsureRunID(ctx)
	ctx, span := p.tracer.Start(ctx, "reliefroute.Plan",
		trace.WithAttributes(attribute.String("run_id", runID)))
	defer func() {
		status := "error"
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.log.Error(ctx, "planning run failed", logging.Err(err))
		} else {
			status = rep.Status.String()
			span.SetAttributes(attribute.String("status", status))
		}
		p.metrics.IncRun(status)
		span.End()
	}()
	if cat == nil {
		return nil, ErrNilCatalog
	}

	p.log.Info(ctx, "planning run started",
		logging.String("missing_land_cost", p.model.MissingLandCost.String()),
		logging.Float("penalty", p.model.Penalty),
		logging.String("missing_capacity", p.model.MissingCapacity.String()),
		logging.Int("commodities", len(cat.Commodities())),
		logging.Int("locations", len(cat.Locations(0))))

	rep = &Report{RunID: runID}
	if rep.Screen, err = p.screen(ctx, cat); err != nil {
		return nil, err
	}

	m, err := p.assemble(ctx, cat)
	if err != nil {
		return nil, err
	}
	rep.Stats, rep.Options = m.Stats(), m.Options()

	res, err := p.solve(ctx, m.System())
	if err != nil {
		return nil, err
	}
	rep.Status = res.Status
	if !res.IsOptimal() {
		p.log.Warn(ctx, "no plan", logging.String("status", res.Status.String()))
		return rep, nil
	}

	if err := p.verify(ctx, runID, m.System(), res.Assignment); err != nil {
		return nil, err
	}
	rep.Objective = res.Objective
	rep.Breakdown = m.Breakdown(res.Assignment)
	rep.Flows = flows(m, res.Assignment)
	p.log.Info(ctx, "plan ready",
		logging.Float("objective", rep.Objective),
		logging.Int("flows", len(rep.Flows)),
		logging.Int("defaulted_flows", len(rep.DefaultedFlows())))

	return rep, nil
}

func (p *Planner) screen(ctx context.Context, cat *catalog.Catalog) (ScreenResult, error) {
	ctx, span := p.tracer.Start(ctx, "reliefroute.Screen")
	defer span.End()

	res, err := Screen(ctx, cat, p.model)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScreenResult{}, fmt.Errorf("planner: screen: %w", err)
	}
	span.SetAttributes(
		attribute.Float64("required", res.Required),
		attribute.Float64("deliverable", res.Deliverable),
		attribute.Float64("shortfall", res.Shortfall))
	p.metrics.SetShortfall(res.Shortfall)

	if !res.Feasible(p.verifyTol) {
		p.log.Warn(ctx, "throughput screen shortfall",
			logging.Float("required", res.Required),
			logging.Float("deliverable", res.Deliverable),
			logging.Float("shortfall", res.Shortfall),
			logging.Any("unservable", res.Unservable))
	}

	return res, nil
}

func (p *Planner) assemble(ctx context.Context, cat *catalog.Catalog) (*model.Model, error) {
	ctx, span := p.tracer.Start(ctx, "reliefroute.Assemble")
	defer span.End()

	start := time.Now()
	m, err := model.Assemble(ctx, cat, p.model)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	st := m.Stats()
	p.metrics.ObserveAssembly(time.Since(start), st.Variables, st.Constraints, st.Defaulted)
	span.SetAttributes(
		attribute.Int("model.variables", st.Variables),
		attribute.Int("model.constraints", st.Constraints),
		attribute.Int("model.defaulted", st.Defaulted))
	p.log.Debug(ctx, "model assembled",
		logging.Int("variables", st.Variables),
		logging.Int("constraints", st.Constraints),
		logging.Int("defaulted", st.Defaulted),
		logging.Int("excluded", st.Excluded))

	return m, nil
}

func (p *Planner) solve(ctx context.Context, sys *lp.System) (solver.Result, error) {
	ctx, span := p.tracer.Start(ctx, "reliefroute.Solve")
	defer span.End()

	start := time.Now()
	res, err := p.solver.Solve(ctx, sys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.metrics.ObserveSolve("error", time.Since(start))
		return solver.Result{}, err
	}
	p.metrics.ObserveSolve(res.Status.String(), time.Since(start))
	span.SetAttributes(attribute.String("status", res.Status.String()))
	p.log.Info(ctx, "solver finished",
		logging.String("status", res.Status.String()),
		logging.Any("elapsed", time.Since(start)))

	return res, nil
}

func (p *Planner) verify(ctx context.Context, runID string, sys *lp.System, assignment map[lp.VarID]float64) error {
	_, span := p.tracer.Start(ctx, "reliefroute.Verify")
	defer span.End()

	bad := sys.Violations(sys.Dense(assignment), p.verifyTol)
	span.SetAttributes(attribute.Int("violations", len(bad)))
	if len(bad) == 0 {
		return nil
	}
	err := &VerificationError{RunID: runID, Violations: bad}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

// flows lists the positive entries of assignment in variable order.
func flows(m *model.Model, assignment map[lp.VarID]float64) []Flow {
	ids := make([]lp.VarID, 0, len(assignment))
	for id, q := range assignment {
		if q > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Flow, 0, len(ids))
	for _, id := range ids {
		v, ok := m.Variable(id)
		if !ok {
			continue
		}
		out = append(out, Flow{
			Name:      v.Name,
			Key:       v.Key,
			Quantity:  assignment[id],
			UnitCost:  v.UnitCost(),
			Defaulted: v.Defaulted,
		})
	}

	return out
}
