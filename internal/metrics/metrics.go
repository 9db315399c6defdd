// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instruments for planning runs.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reliefroute"

// Collector bundles the planning metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Runs             *prometheus.CounterVec
	AssemblyDuration prometheus.Histogram
	SolveDuration    *prometheus.HistogramVec
	ModelVariables   prometheus.Gauge
	ModelConstraints prometheus.Gauge
	DefaultedLanes   prometheus.Gauge
	ScreenShortfall  prometheus.Gauge
}

// New registers the planning metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry returns
// collectors sharing the already registered instruments.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	c := &Collector{gatherer: gatherer}

	var err error
	if c.Runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Planning runs, labeled by outcome (optimal, infeasible, unbounded, timeout, error).",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if c.AssemblyDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assembly_duration_seconds",
		Help:      "Model assembly latency in seconds.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})); err != nil {
		return nil, err
	}
	if c.SolveDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "solve_duration_seconds",
		Help:      "Solver latency in seconds, labeled by solver status.",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60},
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if c.ModelVariables, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_variables",
		Help:      "Flow variables in the most recently assembled model.",
	})); err != nil {
		return nil, err
	}
	if c.ModelConstraints, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_constraints",
		Help:      "Constraints in the most recently assembled model.",
	})); err != nil {
		return nil, err
	}
	if c.DefaultedLanes, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_defaulted_lanes",
		Help:      "Land lanes priced by the penalty policy in the most recent model.",
	})); err != nil {
		return nil, err
	}
	if c.ScreenShortfall, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "screen_shortfall_units",
		Help:      "Mass the throughput screen could not route to camps in the most recent run.",
	})); err != nil {
		return nil, err
	}

	return c, nil
}

// ObserveAssembly records the latency and size of an assembled model.
func (c *Collector) ObserveAssembly(d time.Duration, variables, constraints, defaulted int) {
	if c == nil {
		return
	}
	c.AssemblyDuration.Observe(d.Seconds())
	c.ModelVariables.Set(float64(variables))
	c.ModelConstraints.Set(float64(constraints))
	c.DefaultedLanes.Set(float64(defaulted))
}

// ObserveSolve records solver latency under its status.
func (c *Collector) ObserveSolve(status string, d time.Duration) {
	if c == nil {
		return
	}
	c.SolveDuration.WithLabelValues(status).Observe(d.Seconds())
}

// SetShortfall records the throughput-screen shortfall; 0 when routable.
func (c *Collector) SetShortfall(units float64) {
	if c == nil {
		return
	}
	c.ScreenShortfall.Set(units)
}

// IncRun counts one finished run.
func (c *Collector) IncRun(status string) {
	if c == nil {
		return
	}
	c.Runs.WithLabelValues(status).Inc()
}

// Gatherer returns the gatherer backing Handler.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}

	return c.gatherer
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Gatherer(), promhttp.HandlerOpts{})
}

// register adds col to reg, reusing an already registered collector of the
// same type.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
		var zero T
		return zero, fmt.Errorf("metrics: collector already registered with incompatible type: %w", err)
	}
	var zero T

	return zero, fmt.Errorf("metrics: register: %w", err)
}
