package solver_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/catalog/catalogtest"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/solver"
)

// ExampleSimplex_Solve solves the single-route network and then the same
// network with its port capped below demand.
func ExampleSimplex_Solve() {
	ctx := context.Background()
	s := solver.NewSimplex()

	for _, t := range []catalog.Tables{catalogtest.Basic(), catalogtest.PortLimited()} {
		cat, _ := catalog.New(t)
		m, _ := model.Assemble(ctx, cat, model.DefaultOptions())
		res, err := s.Solve(ctx, m.System())
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("%s %.0f\n", res.Status, res.Objective)
	}
	// Output:
	// optimal 6500
	// infeasible 0
}
