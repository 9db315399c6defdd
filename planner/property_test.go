package planner_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/catalog/catalogtest"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/planner"
	"github.com/katalvlaran/reliefroute/solver"
)

// planRandom plans the network generated from seed with every quantity
// multiplied by k. It returns a nil report only when the network has no
// procurement basis; any other error fails the test.
func planRandom(t *testing.T, seed int64, penalty bool, k float64) (*catalog.Catalog, *planner.Report) {
	cat, err := catalog.New(catalogtest.Scale(catalogtest.Random(seed), k))
	if err != nil {
		t.Fatalf("seed %d: catalog: %v", seed, err)
	}
	opts := model.DefaultOptions()
	if penalty {
		opts.MissingLandCost = model.Penalty
		opts.Penalty = 500
	}
	rep, err := planner.New(planner.WithModelOptions(opts)).Plan(context.Background(), cat)
	if errors.Is(err, model.ErrNoProcurementBasis) {
		return cat, nil
	}
	if err != nil {
		t.Fatalf("seed %d ×%g penalty %v: plan: %v", seed, k, penalty, err)
	}
	if rep.Status == solver.Timeout {
		t.Fatalf("seed %d ×%g penalty %v: solver timed out", seed, k, penalty)
	}

	return cat, rep
}

// scaledTol is tol relative to the magnitude it guards.
func scaledTol(v float64) float64 { return tol * math.Max(1, math.Abs(v)) }

// TestPlanProperties checks optimal plans against the physical rules of
// the network, recomputed from the reported flows.
func TestPlanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("flow is conserved at every supplier, port and warehouse", prop.ForAll(
		func(seed int64, penalty bool) bool {
			_, rep := planRandom(t, seed, penalty, 1)
			if rep == nil || rep.Status != solver.Optimal {
				return true
			}
			net := make(map[[2]string]float64) // commodity/node → in − out
			for _, f := range rep.Flows {
				c := f.Key.Commodity
				switch f.Key.Stage {
				case model.StageProcure:
					net[[2]string{c, f.Key.From}] += f.Quantity
				case model.StageDeliver:
					net[[2]string{c, f.Key.From}] -= f.Quantity
				default:
					net[[2]string{c, f.Key.From}] -= f.Quantity
					net[[2]string{c, f.Key.To}] += f.Quantity
				}
			}
			for _, v := range net {
				if math.Abs(v) > tol {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.Bool(),
	))

	properties.Property("declared capacities hold and camps get their nutrients", prop.ForAll(
		func(seed int64, penalty bool, k float64) bool {
			cat, rep := planRandom(t, seed, penalty, k)
			if rep == nil || rep.Status != solver.Optimal {
				return true
			}
			through := make(map[string]float64)
			delivered := make(map[[2]string]float64)
			for _, f := range rep.Flows {
				switch f.Key.Stage {
				case model.StageShip, model.StageHaul:
					through[f.Key.To] += f.Quantity
				case model.StageDeliver:
					for _, n := range cat.Nutrients() {
						delivered[[2]string{f.Key.To, n}] += f.Quantity * cat.NutrientContent(f.Key.Commodity, n)
					}
				}
			}
			for node, q := range through {
				if limit, ok := cat.Capacity(node); ok && q > limit+scaledTol(limit) {
					return false
				}
			}
			for _, v := range cat.IDs(catalog.Camp) {
				for _, n := range cat.Nutrients() {
					if req := cat.NutrientRequirement(v, n); delivered[[2]string{v, n}] < req-scaledTol(req) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(), gen.Bool(), gen.OneConstOf(1.0, 1e3, 1e5),
	))

	properties.Property("a screen shortfall rules out an optimal plan", prop.ForAll(
		func(seed int64, penalty bool) bool {
			_, rep := planRandom(t, seed, penalty, 1)
			if rep == nil || rep.Screen.Feasible(tol) {
				return true
			}
			return rep.Status != solver.Optimal
		},
		gen.Int64(), gen.Bool(),
	))

	properties.Property("the breakdown sums to the objective", prop.ForAll(
		func(seed int64) bool {
			_, rep := planRandom(t, seed, true, 1)
			if rep == nil || rep.Status != solver.Optimal {
				return true
			}
			var sum float64
			for _, v := range rep.Breakdown {
				sum += v
			}
			return math.Abs(sum-rep.Objective) <= tol*math.Max(1, math.Abs(rep.Objective))
		},
		gen.Int64(),
	))

	properties.Property("plans scale linearly with tonnage", prop.ForAll(
		func(seed int64, penalty bool) bool {
			_, small := planRandom(t, seed, penalty, 1)
			_, large := planRandom(t, seed, penalty, 1000)
			if small == nil || large == nil {
				return small == nil && large == nil
			}
			if small.Status != large.Status {
				return false
			}
			if small.Status != solver.Optimal {
				return true
			}
			return math.Abs(large.Objective-1000*small.Objective) <= scaledTol(large.Objective)
		},
		gen.Int64(), gen.Bool(),
	))

	properties.TestingRun(t)
}
