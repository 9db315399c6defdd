// SPDX-License-Identifier: MIT

package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/reliefroute/lp"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/solver"
)

var (
	// ErrNilCatalog is returned when Plan is called without a catalog.
	ErrNilCatalog = errors.New("planner: nil catalog")

	// ErrVerification is the sentinel wrapped by VerificationError.
	ErrVerification = errors.New("planner: solution violates constraints")
)

// VerificationError reports an Optimal assignment that breaks named
// constraints beyond tolerance.
type VerificationError struct {
	RunID      string
	Violations []lp.Violation
}

func (e *VerificationError) Error() string {
	names := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		names = append(names, v.Name)
	}

	return fmt.Sprintf("%v: run %s: %s", ErrVerification, e.RunID, strings.Join(names, ", "))
}

func (e *VerificationError) Unwrap() error { return ErrVerification }

// Flow is one non-zero decision of a solved plan.
type Flow struct {
	Name      string
	Key       model.VarKey
	Quantity  float64
	UnitCost  float64
	Defaulted bool // priced by the penalty policy
}

// Cost returns Quantity × UnitCost.
func (f Flow) Cost() float64 { return f.Quantity * f.UnitCost }

// CampScreen is the screen outcome for one camp.
type CampScreen struct {
	// Required is the least mass meeting every nutrient requirement of the camp.
	Required float64
	// Deliverable is the mass the maximum flow routes to the camp.
	Deliverable float64
}

// ScreenResult is the outcome of the throughput screen.
type ScreenResult struct {
	Required    float64
	Deliverable float64
	// Shortfall is Required − Deliverable, never negative.
	Shortfall float64
	Camps     map[string]CampScreen
	// Unservable lists "camp/nutrient" requirements no commodity carries.
	Unservable []string
}

// Feasible reports whether the screen found no obstacle within tol.
func (s ScreenResult) Feasible(tol float64) bool {
	return s.Shortfall <= tol && len(s.Unservable) == 0
}

// Report is the outcome of a planning run. Objective, Flows and Breakdown
// are set only when Status is Optimal.
type Report struct {
	RunID     string
	Status    solver.Status
	Objective float64
	Flows     []Flow
	Breakdown map[model.CostComponent]float64
	Screen    ScreenResult
	Stats     model.Stats
	Options   model.Options
}

// Flow returns the flow with the given key.
func (r *Report) Flow(k model.VarKey) (Flow, bool) {
	for _, f := range r.Flows {
		if f.Key == k {
			return f, true
		}
	}

	return Flow{}, false
}

// DefaultedFlows returns the flows priced by the penalty policy.
func (r *Report) DefaultedFlows() []Flow {
	var out []Flow
	for _, f := range r.Flows {
		if f.Defaulted {
			out = append(out, f)
		}
	}

	return out
}
