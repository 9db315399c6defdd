// SPDX-License-Identifier: MIT

package planner

import (
	"context"
	"math"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/flow"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/network"
)

const (
	screenSource = "\x00source"
	screenSink   = "\x00sink"
)

// Screen runs the throughput screen of cat under the policies of opts.
//
// Steps:
//  1. Required mass per camp: max over nutrients of requirement ÷ best
//     content of any commodity.
//  2. Flow network: source → supplier (total procurement capacity),
//     capacitated ports and warehouses split into in → out arcs,
//     every priced lane as an uncapped arc (plus unpriced land pairs under
//     the penalty policy), camp → sink (required mass).
//  3. Dinic max-flow from source to sink.
//
// Complexity: O(K·N) for step 1 and O(V²·E) for Dinic.
func Screen(ctx context.Context, cat *catalog.Catalog, opts model.Options) (ScreenResult, error) {
	if cat == nil {
		return ScreenResult{}, ErrNilCatalog
	}
	res := ScreenResult{Camps: make(map[string]CampScreen)}

	best := make(map[string]float64, len(cat.Nutrients()))
	for _, n := range cat.Nutrients() {
		for _, c := range cat.Commodities() {
			best[n] = math.Max(best[n], cat.NutrientContent(c, n))
		}
	}
	for _, v := range cat.IDs(catalog.Camp) {
		var mass float64
		for _, n := range cat.Nutrients() {
			req := cat.NutrientRequirement(v, n)
			if req <= 0 {
				continue
			}
			if best[n] <= 0 {
				res.Unservable = append(res.Unservable, v+"/"+n)
				continue
			}
			mass = math.Max(mass, req/best[n])
		}
		res.Camps[v] = CampScreen{Required: mass}
		res.Required += mass
	}

	g := screenGraph(cat, opts)
	for _, v := range cat.IDs(catalog.Camp) {
		if r := res.Camps[v].Required; r > 0 {
			_, _ = g.AddEdge(v, screenSink, r)
		}
	}
	if !g.HasVertex(screenSink) {
		return res, nil
	}

	mf, err := flow.Dinic(ctx, g, screenSource, screenSink, flow.DefaultOptions())
	if err != nil {
		return ScreenResult{}, err
	}
	res.Deliverable = mf.MaxFlow
	for v, cs := range res.Camps {
		cs.Deliverable = mf.EdgeFlow[v][screenSink]
		res.Camps[v] = cs
	}
	res.Shortfall = math.Max(0, res.Required-res.Deliverable)

	return res, nil
}

// screenGraph builds the capacitated relaxation without the sink arcs.
func screenGraph(cat *catalog.Catalog, opts model.Options) *network.Graph {
	lanes := cat.Network()
	g := network.NewGraph()
	_ = g.AddVertex(screenSource, nil)

	// in/out name the entry and exit vertex of a location; they differ
	// only for split nodes.
	in := make(map[string]string)
	out := make(map[string]string)
	for _, id := range lanes.Vertices() {
		in[id], out[id] = id, id
		_ = g.AddVertex(id, nil)

		role, _ := cat.Role(id)
		if role != catalog.Port && role != catalog.Warehouse {
			continue
		}
		limit, declared := cat.Capacity(id)
		switch {
		case !declared && opts.MissingCapacity == model.Unconstrained:
			continue
		case !declared:
			limit = 0
		case math.IsInf(limit, 1):
			continue
		}
		out[id] = id + "\x00out"
		_, _ = g.AddEdge(id, out[id], limit)
	}

	for _, s := range cat.IDs(catalog.Supplier) {
		if supply := procurementLimit(cat, s); supply > 0 {
			_, _ = g.AddEdge(screenSource, s, supply)
		}
	}
	for _, e := range lanes.Edges() {
		_, _ = g.AddEdge(out[e.From], in[e.To], e.Capacity)
	}
	if opts.MissingLandCost == model.Penalty {
		addUnpriced := func(from, to []string) {
			for _, a := range from {
				for _, b := range to {
					if _, declared := cat.LandCost(a, b); !declared {
						_, _ = g.AddEdge(out[a], in[b], math.Inf(1))
					}
				}
			}
		}
		addUnpriced(cat.IDs(catalog.Port), cat.IDs(catalog.Warehouse))
		addUnpriced(cat.IDs(catalog.Warehouse), cat.IDs(catalog.Camp))
	}

	return g
}

// procurementLimit sums the capacity of every usable procurement row of
// supplier s; an undeclared capacity is unlimited.
func procurementLimit(cat *catalog.Catalog, s string) float64 {
	var total float64
	for _, c := range cat.Commodities() {
		cost, ok := cat.ProcurementCost(c, s)
		if !ok || math.IsInf(cost, 1) {
			continue
		}
		limit, declared := cat.ProcurementCapacity(c, s)
		if !declared {
			return math.Inf(1)
		}
		total += limit
	}

	return total
}
