// SPDX-License-Identifier: MIT

package flow

import (
	"context"

	"github.com/katalvlaran/reliefroute/network"
)

// buildCapMap constructs the residual capacity map of g:
// capMap[u][v] = Σ capacity of all parallel u→v edges, loops ignored,
// entries ≤ Epsilon removed.
//
// Steps:
//  1. Initialise one inner map per vertex (O(V)).
//  2. For each vertex u in sorted order, check ctx, then aggregate its
//     outgoing edges by target.
//  3. Drop aggregated entries ≤ Epsilon.
//
// Complexity:
//
//	Time:   O(V + E·log d_max) (Neighbors sorts per vertex).
//	Memory: O(V + E).
func buildCapMap(ctx context.Context, g *network.Graph, opts Options) (map[string]map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vertices := g.Vertices()
	capMap := make(map[string]map[string]float64, len(vertices))
	for _, u := range vertices {
		capMap[u] = make(map[string]float64)
	}

	for _, u := range vertices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		neighbors, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, e := range neighbors {
			if e.From == e.To {
				continue
			}
			capMap[u][e.To] += e.Capacity
		}
		for v, c := range capMap[u] {
			if c <= opts.Epsilon {
				delete(capMap[u], v)
			}
		}
	}

	return capMap, nil
}

// positiveFlows keeps only the strictly positive net flows.
func positiveFlows(net map[string]map[string]float64, eps float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for u, inner := range net {
		for v, f := range inner {
			if f > eps {
				if out[u] == nil {
					out[u] = make(map[string]float64)
				}
				out[u][v] = f
			}
		}
	}

	return out
}
