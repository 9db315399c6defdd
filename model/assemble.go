// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/lp"
)

// Assemble builds the linear program for cat under opts.
//
// Steps:
//  1. Validate options and the role of every capacity and requirement key.
//  2. Build one fragment per commodity, at most opts.Parallelism at a time.
//  3. Surface the first fragment failure in commodity order.
//  4. Merge: declare variables stage-major, then emit capacity, balance and
//     nutrient rows, resolving variable keys to IDs.
//
// The result depends only on cat and opts. ctx cancellation aborts the
// workers and is returned unwrapped.
//
// Complexity: O(K·(S·P + P·W + W·V·N)) for K commodities, S suppliers,
// P ports, W warehouses, V camps and N nutrients.
func Assemble(ctx context.Context, cat *catalog.Catalog, opts Options) (*Model, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cat == nil {
		return nil, &AssemblyError{Op: "assemble", Err: fmt.Errorf("%w: nil catalog", ErrInvalidOptions)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.normalize(); err != nil {
		return nil, &AssemblyError{Op: "validate options", Err: err}
	}
	if err := checkRoles(cat); err != nil {
		return nil, err
	}

	top := newTopology(cat)
	commodities := cat.Commodities()
	frags := make([]*fragment, len(commodities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, c := range commodities {
		g.Go(func() error {
			f, err := buildFragment(gctx, cat, top, opts, c)
			if err != nil {
				return err
			}
			frags[i] = f

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	procured := 0
	for _, f := range frags {
		if f.err != nil {
			return nil, f.err
		}
		procured += len(f.vars[StageProcure])
	}
	if procured == 0 {
		return nil, &AssemblyError{Op: "declare variables", Err: ErrNoProcurementBasis}
	}

	return merge(cat, top, opts, frags)
}

// checkRoles verifies that capacities sit on ports or warehouses and
// requirements on camps.
func checkRoles(cat *catalog.Catalog) error {
	for _, node := range cat.CapacityNodes() {
		if r, _ := cat.Role(node); r != catalog.Port && r != catalog.Warehouse {
			return &AssemblyError{Op: "check capacity", Key: node, Err: ErrRoleMismatch}
		}
	}
	for _, camp := range cat.RequirementCamps() {
		if r, _ := cat.Role(camp); r != catalog.Camp {
			return &AssemblyError{Op: "check requirement", Key: camp, Err: ErrRoleMismatch}
		}
	}

	return nil
}

type merger struct {
	b *lp.Builder
	m *Model
}

func merge(cat *catalog.Catalog, top topology, opts Options, frags []*fragment) (*Model, error) {
	mg := merger{
		b: lp.NewBuilder(),
		m: &Model{
			index: make(map[VarKey]lp.VarID),
			opts:  opts,
			stats: Stats{
				VariablesByStage:  make(map[Stage]int, numStages),
				ConstraintsByKind: make(map[ConstraintKind]int, 3),
			},
		},
	}

	for stage := StageProcure; stage < numStages; stage++ {
		for _, f := range frags {
			for _, pv := range f.vars[stage] {
				if err := mg.declare(pv); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, f := range frags {
		mg.m.stats.Excluded += f.excluded
	}

	var rows []row
	for _, p := range top.ports {
		var keys []VarKey
		for _, f := range frags {
			keys = append(keys, f.portIn[p]...)
		}
		rows = appendNodeCap(rows, cat, opts, "cap_port["+p+"]", p, keys)
	}
	for _, w := range top.warehouses {
		var keys []VarKey
		for _, f := range frags {
			keys = append(keys, f.whIn[w]...)
		}
		rows = appendNodeCap(rows, cat, opts, "cap_warehouse["+w+"]", w, keys)
	}
	for _, f := range frags {
		rows = append(rows, f.procCaps...)
	}
	for _, f := range frags {
		rows = append(rows, f.balances...)
	}
	for _, v := range top.camps {
		for _, n := range top.nutrients {
			var terms []keyTerm
			for _, f := range frags {
				terms = append(terms, f.nutrients[[2]string{v, n}]...)
			}
			rows = append(rows, row{
				name: "nutrient[" + v + "/" + n + "]", kind: KindNutrient,
				terms: terms, sense: lp.GreaterEq, rhs: cat.NutrientRequirement(v, n),
			})
		}
	}

	for _, r := range rows {
		if err := mg.emit(r); err != nil {
			return nil, err
		}
	}

	sys, err := mg.b.Build()
	if err != nil {
		return nil, &AssemblyError{Op: "build", Err: err}
	}
	mg.m.sys = sys
	mg.m.stats.Variables = sys.NumVariables()
	mg.m.stats.Constraints = sys.NumConstraints()

	return mg.m, nil
}

func (mg *merger) declare(pv pending) error {
	name := pv.key.String()
	id, err := mg.b.AddVariable(name)
	if err != nil {
		return &AssemblyError{Op: "declare variable", Key: name, Err: err}
	}
	for _, ct := range pv.costs {
		mg.b.AddObjective(id, ct.UnitCost)
	}
	mg.m.index[pv.key] = id
	mg.m.vars = append(mg.m.vars, Variable{
		ID: id, Key: pv.key, Name: name, Costs: pv.costs, Defaulted: pv.defaulted,
	})
	mg.m.stats.VariablesByStage[pv.key.Stage]++
	if pv.defaulted {
		mg.m.stats.Defaulted++
	}

	return nil
}

func (mg *merger) emit(r row) error {
	expr := make(lp.Expr, 0, len(r.terms))
	for _, t := range r.terms {
		expr = expr.Plus(mg.m.index[t.key], t.coef)
	}
	err := mg.b.AddConstraint(lp.Constraint{Name: r.name, Expr: expr, Sense: r.sense, RHS: r.rhs})
	if err != nil {
		return &AssemblyError{Op: "emit constraint", Key: r.name, Err: err}
	}
	mg.m.stats.ConstraintsByKind[r.kind]++

	return nil
}

// appendNodeCap adds the throughput row of a port or warehouse, if any.
func appendNodeCap(rows []row, cat *catalog.Catalog, opts Options, name, node string, keys []VarKey) []row {
	if len(keys) == 0 {
		return rows
	}
	limit, declared := cat.Capacity(node)
	switch {
	case declared && math.IsInf(limit, 1):
		return rows
	case !declared && opts.MissingCapacity == Unconstrained:
		return rows
	case !declared:
		limit = 0
	}

	return append(rows, row{
		name: name, kind: KindCapacity,
		terms: unitTerms(keys, 1), sense: lp.LessEq, rhs: limit,
	})
}
