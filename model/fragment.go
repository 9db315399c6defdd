// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"math"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/lp"
)

// pending is a variable generated by a worker, before IDs exist.
type pending struct {
	key       VarKey
	costs     []CostTerm
	defaulted bool
}

type keyTerm struct {
	key  VarKey
	coef float64
}

// row is a constraint over VarKeys, resolved to lp terms in the merge.
type row struct {
	name  string
	kind  ConstraintKind
	terms []keyTerm
	sense lp.Sense
	rhs   float64
}

// fragment is the single-commodity slice of the model.
type fragment struct {
	commodity string
	vars      [numStages][]pending
	balances  []row
	procCaps  []row
	portIn    map[string][]VarKey     // port → inbound ship keys
	whIn      map[string][]VarKey     // warehouse → inbound haul keys
	nutrients map[[2]string][]keyTerm // (camp, nutrient) → delivery contributions
	excluded  int
	err       error
}

// topology is the declared node order shared by all workers.
type topology struct {
	suppliers, ports, warehouses, camps []string
	nutrients                           []string
}

func newTopology(cat *catalog.Catalog) topology {
	return topology{
		suppliers:  cat.IDs(catalog.Supplier),
		ports:      cat.IDs(catalog.Port),
		warehouses: cat.IDs(catalog.Warehouse),
		camps:      cat.IDs(catalog.Camp),
		nutrients:  cat.Nutrients(),
	}
}

func usable(cost float64, ok bool) bool { return ok && !math.IsInf(cost, 1) }

// buildFragment generates every variable and commodity-local row for c.
//
// Steps:
//  1. procure[c/s] for each supplier with a usable procurement cost.
//  2. ship[c/s/p] for each procured (c, s) and usable sea cost.
//  3. haul[c/p/w] and deliver[c/w/v] per land cost and the missing-cost policy.
//  4. Balance rows, procurement capacity rows, node and nutrient contributions.
//
// Domain failures are stored in f.err; only ctx errors are returned.
func buildFragment(ctx context.Context, cat *catalog.Catalog, top topology, opts Options, c string) (*fragment, error) {
	f := &fragment{
		commodity: c,
		portIn:    make(map[string][]VarKey),
		whIn:      make(map[string][]VarKey),
		nutrients: make(map[[2]string][]keyTerm),
	}

	procured := make(map[string]bool, len(top.suppliers))
	for _, s := range top.suppliers {
		cost, ok := cat.ProcurementCost(c, s)
		if !usable(cost, ok) {
			if ok {
				f.excluded++
			}
			continue
		}
		procured[s] = true
		f.add(StageProcure, s, "", false, CostTerm{Acquisition, cost})
	}

	for _, s := range top.suppliers {
		for _, p := range top.ports {
			cost, ok := cat.SeaCost(c, s, p)
			if !ok {
				continue
			}
			if !procured[s] || math.IsInf(cost, 1) {
				f.excluded++
				continue
			}
			costs := []CostTerm{{SeaTransport, cost}}
			if h, ok := cat.HandlingCost(p); ok {
				costs = append(costs, CostTerm{PortHandling, h})
			}
			key := f.add(StageShip, s, p, false, costs...)
			f.portIn[p] = append(f.portIn[p], key)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	for _, p := range top.ports {
		for _, w := range top.warehouses {
			cost, defaulted, ok := f.landCost(cat, opts, p, w)
			if !ok {
				if f.err != nil {
					return f, nil
				}
				continue
			}
			costs := []CostTerm{{LandPortWarehouse, cost}}
			if h, ok := cat.HandlingCost(w); ok {
				costs = append(costs, CostTerm{WarehouseHandling, h})
			}
			key := f.add(StageHaul, p, w, defaulted, costs...)
			f.whIn[w] = append(f.whIn[w], key)
		}
	}

	for _, w := range top.warehouses {
		for _, v := range top.camps {
			cost, defaulted, ok := f.landCost(cat, opts, w, v)
			if !ok {
				if f.err != nil {
					return f, nil
				}
				continue
			}
			key := f.add(StageDeliver, w, v, defaulted, CostTerm{LandWarehouseCamp, cost})
			for _, n := range top.nutrients {
				if content := cat.NutrientContent(c, n); content != 0 {
					nk := [2]string{v, n}
					f.nutrients[nk] = append(f.nutrients[nk], keyTerm{key, content})
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	f.buildRows(cat, top)

	return f, nil
}

// landCost resolves a land lane under the missing-cost policy. ok is false
// when the lane gets no variable; under Strict f.err is set as well.
func (f *fragment) landCost(cat *catalog.Catalog, opts Options, from, to string) (cost float64, defaulted, ok bool) {
	cost, declared := cat.LandCost(from, to)
	switch {
	case declared && math.IsInf(cost, 1):
		f.excluded++
		return 0, false, false
	case declared:
		return cost, false, true
	}

	switch opts.MissingLandCost {
	case Penalty:
		return opts.Penalty, true, true
	case Strict:
		f.err = &AssemblyError{Op: "price land lane", Key: from + "/" + to, Err: ErrMissingCost}
	default:
		f.excluded++
	}

	return 0, false, false
}

func (f *fragment) add(stage Stage, from, to string, defaulted bool, costs ...CostTerm) VarKey {
	key := VarKey{Stage: stage, Commodity: f.commodity, From: from, To: to}
	f.vars[stage] = append(f.vars[stage], pending{key: key, costs: costs, defaulted: defaulted})

	return key
}

// buildRows derives balance and procurement capacity rows from the
// generated variables.
func (f *fragment) buildRows(cat *catalog.Catalog, top topology) {
	c := f.commodity
	shipsFrom := make(map[string][]VarKey)
	for _, v := range f.vars[StageShip] {
		shipsFrom[v.key.From] = append(shipsFrom[v.key.From], v.key)
	}
	haulsFrom := make(map[string][]VarKey)
	for _, v := range f.vars[StageHaul] {
		haulsFrom[v.key.From] = append(haulsFrom[v.key.From], v.key)
	}
	deliveriesFrom := make(map[string][]VarKey)
	for _, v := range f.vars[StageDeliver] {
		deliveriesFrom[v.key.From] = append(deliveriesFrom[v.key.From], v.key)
	}

	for _, pv := range f.vars[StageProcure] {
		s := pv.key.From
		terms := append(unitTerms(shipsFrom[s], 1), keyTerm{pv.key, -1})
		f.balances = append(f.balances, row{
			name: "balance_supplier[" + c + "/" + s + "]", kind: KindBalance,
			terms: terms, sense: lp.Equal,
		})

		limit, ok := cat.ProcurementCapacity(c, s)
		if ok && !math.IsInf(limit, 1) && len(shipsFrom[s]) > 0 {
			f.procCaps = append(f.procCaps, row{
				name: "cap_procure[" + c + "/" + s + "]", kind: KindCapacity,
				terms: unitTerms(shipsFrom[s], 1), sense: lp.LessEq, rhs: limit,
			})
		}
	}

	for _, p := range top.ports {
		terms := append(unitTerms(f.portIn[p], 1), unitTerms(haulsFrom[p], -1)...)
		if len(terms) > 0 {
			f.balances = append(f.balances, row{
				name: "balance_port[" + c + "/" + p + "]", kind: KindBalance,
				terms: terms, sense: lp.Equal,
			})
		}
	}

	for _, w := range top.warehouses {
		terms := append(unitTerms(f.whIn[w], 1), unitTerms(deliveriesFrom[w], -1)...)
		if len(terms) > 0 {
			f.balances = append(f.balances, row{
				name: "balance_warehouse[" + c + "/" + w + "]", kind: KindBalance,
				terms: terms, sense: lp.Equal,
			})
		}
	}
}

func unitTerms(keys []VarKey, coef float64) []keyTerm {
	out := make([]keyTerm, len(keys))
	for i, k := range keys {
		out[i] = keyTerm{k, coef}
	}

	return out
}
