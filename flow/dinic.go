// SPDX-License-Identifier: MIT

package flow

import (
	"context"
	"math"
	"sort"

	"github.com/katalvlaran/reliefroute/network"
)

// Dinic computes the maximum flow from source to sink in g using Dinic's
// algorithm (level graph + blocking flows).
//
// Steps:
//  1. Normalise options; validate source/sink.
//  2. Build the residual map via buildCapMap.
//  3. Repeat until the sink is unreachable:
//     a. Check ctx.
//     b. BFS from source to assign levels.
//     c. Build level-graph adjacency (neighbors sorted for determinism).
//     d. Push blocking flow with DFS, optionally rebuilding levels every
//     LevelRebuildInterval augmentations.
//  4. Report net positive edge flows.
//
// Complexity:
//
//	Time:   O(V²·E) worst case.
//	Memory: O(V + E).
func Dinic(ctx context.Context, g *network.Graph, source, sink string, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts.normalize()

	if !g.HasVertex(source) {
		return Result{}, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return Result{}, ErrSinkNotFound
	}
	if source == sink {
		return Result{}, ErrSameEndpoints
	}

	capMap, err := buildCapMap(ctx, g, opts)
	if err != nil {
		return Result{}, err
	}
	net := make(map[string]map[string]float64, len(capMap))

	var maxFlow float64
	augmentCount := 0
	for {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}

		level := levels(capMap, source, opts.Epsilon)
		if _, ok := level[sink]; !ok {
			break
		}
		next := levelGraph(capMap, level, opts.Epsilon)

		iter := make(map[string]int, len(next))
		for {
			if err = ctx.Err(); err != nil {
				return Result{}, err
			}
			pushed := push(ctx, capMap, net, next, iter, source, sink, math.Inf(1), opts.Epsilon)
			if math.IsInf(pushed, 1) {
				return Result{MaxFlow: math.Inf(1)}, nil
			}
			if pushed <= opts.Epsilon {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return Result{MaxFlow: maxFlow, EdgeFlow: positiveFlows(net, opts.Epsilon)}, nil
}

// levels runs BFS over residual edges with capacity > eps and returns the
// distance from source of every reachable vertex.
func levels(capMap map[string]map[string]float64, source string, eps float64) map[string]int {
	level := map[string]int{source: 0}
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range sortedKeys(capMap[u]) {
			if _, seen := level[v]; seen || capMap[u][v] <= eps {
				continue
			}
			level[v] = level[u] + 1
			queue = append(queue, v)
		}
	}

	return level
}

// levelGraph keeps residual edges u→v with level[v] == level[u]+1.
func levelGraph(capMap map[string]map[string]float64, level map[string]int, eps float64) map[string][]string {
	next := make(map[string][]string, len(level))
	for u, lu := range level {
		for _, v := range sortedKeys(capMap[u]) {
			if lv, ok := level[v]; ok && lv == lu+1 && capMap[u][v] > eps {
				next[u] = append(next[u], v)
			}
		}
	}

	return next
}

// push sends up to available units from u toward sink along the level graph,
// updating residual capacities and net flows in place. It returns the amount
// sent; +Inf means an uncapped path was found.
func push(
	ctx context.Context,
	capMap, net map[string]map[string]float64,
	next map[string][]string,
	iter map[string]int,
	u, sink string,
	available, eps float64,
) float64 {
	if ctx.Err() != nil {
		return 0
	}
	if u == sink {
		return available
	}
	for i := iter[u]; i < len(next[u]); i++ {
		v := next[u][i]
		capUV := capMap[u][v]
		if capUV <= eps {
			iter[u] = i + 1
			continue
		}
		send := math.Min(available, capUV)
		pushed := push(ctx, capMap, net, next, iter, v, sink, send, eps)
		if math.IsInf(pushed, 1) {
			return pushed
		}
		if pushed > eps {
			capMap[u][v] -= pushed
			if capMap[v] == nil {
				capMap[v] = make(map[string]float64)
			}
			capMap[v][u] += pushed
			addNet(net, u, v, pushed)

			return pushed
		}
		iter[u] = i + 1
	}

	return 0
}

func addNet(net map[string]map[string]float64, u, v string, f float64) {
	if net[u] == nil {
		net[u] = make(map[string]float64)
	}
	if net[v] == nil {
		net[v] = make(map[string]float64)
	}
	net[u][v] += f
	net[v][u] -= f
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
