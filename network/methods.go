// SPDX-License-Identifier: MIT

package network

import (
	"math"
	"sort"
	"strconv"
)

// AddVertex inserts a vertex if absent. Existing vertices keep their metadata
// unless meta is non-nil, in which case keys are merged in.
//
// Complexity: O(len(meta)). Concurrency: muVert write lock.
func (g *Graph) AddVertex(id string, meta map[string]any) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()

	v, ok := g.vertices[id]
	if !ok {
		v = &Vertex{ID: id, Metadata: make(map[string]any, len(meta))}
		g.vertices[id] = v
	}
	for k, val := range meta {
		v.Metadata[k] = val
	}

	return nil
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id string) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return v, nil
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()
	sort.Strings(ids)

	return ids
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// AddEdge creates a directed edge from→to with the given capacity, adding
// missing endpoints. It returns the new edge ID.
//
// Steps:
//  1. Validate IDs, capacity, loops.
//  2. Ensure endpoints via AddVertex.
//  3. Under muEdgeAdj: check the multi-edge rule, allocate an ID, link adjacency.
//
// Complexity: O(1) amortised.
func (g *Graph) AddEdge(from, to string, capacity float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if math.IsNaN(capacity) || capacity < 0 {
		return "", ErrBadCapacity
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if err := g.AddVertex(from, nil); err != nil {
		return "", err
	}
	if err := g.AddVertex(to, nil); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !g.allowMulti && len(g.adjacency[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}
	g.nextEdgeID++
	eid := "e" + strconv.FormatUint(g.nextEdgeID, 10)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Capacity: capacity}

	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]map[string]struct{})
	}
	if g.adjacency[from][to] == nil {
		g.adjacency[from][to] = make(map[string]struct{})
	}
	g.adjacency[from][to][eid] = struct{}{}

	return eid, nil
}

// HasEdge reports whether at least one edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Edges returns copies of all edges sorted by (From, To, ID).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	g.muEdgeAdj.RUnlock()
	sortEdges(out)

	return out
}

// Neighbors returns copies of the outgoing edges of id sorted by (To, ID).
//
// Errors: ErrVertexNotFound.
// Complexity: O(d log d) for out-degree d.
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	var out []Edge
	for _, ids := range g.adjacency[id] {
		for eid := range ids {
			out = append(out, *g.edges[eid])
		}
	}
	g.muEdgeAdj.RUnlock()
	sortEdges(out)

	return out, nil
}

// sortEdges orders edges by (From, To, numeric ID) for stable output.
func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].From != es[j].From {
			return es[i].From < es[j].From
		}
		if es[i].To != es[j].To {
			return es[i].To < es[j].To
		}

		return edgeSeq(es[i].ID) < edgeSeq(es[j].ID)
	})
}

func edgeSeq(eid string) uint64 {
	n, _ := strconv.ParseUint(eid[1:], 10, 64)

	return n
}
