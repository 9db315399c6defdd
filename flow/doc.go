// SPDX-License-Identifier: MIT

// Package flow computes maximum flows over *network.Graph lane networks.
// The relief planner uses it to screen a catalog before solving: how much
// commodity mass can the capacitated supplier→port→warehouse→camp network
// physically carry, independent of costs and nutrients?
//
// The algorithm offered is Dinic:
//
//   - Method: level graph construction (BFS) + blocking flow via DFS.
//   - Time:   O(V²·E) in general, much faster on the shallow layered
//     networks produced by relief catalogs (depth ≤ 7).
//   - Memory: O(V + E) for residual map, level map and adjacency slices.
//
// # Capacities
//
// Capacities are float64. +Inf marks an uncapped lane. Parallel edges are
// summed and self-loops ignored when the residual map is built. Capacities
// ≤ Options.Epsilon are treated as absent. If an augmenting path consists
// solely of uncapped lanes the maximum flow is unbounded: Dinic returns
// MaxFlow = +Inf and no per-edge flows.
//
// # API
//
//	res, err := flow.Dinic(ctx, g, "source", "sink", flow.DefaultOptions())
//	res.MaxFlow          // total value
//	res.EdgeFlow[u][v]   // net flow pushed over u→v (positive entries only)
//
// # Errors
//
//	ErrSourceNotFound - the source vertex is missing.
//	ErrSinkNotFound   - the sink vertex is missing.
//	ErrSameEndpoints  - source == sink.
//	context.Canceled / context.DeadlineExceeded - ctx ended mid-run.
package flow
