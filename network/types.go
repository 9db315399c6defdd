// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("network: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("network: vertex not found")

	// ErrBadCapacity indicates a NaN or negative edge capacity.
	ErrBadCapacity = errors.New("network: capacity must be a non-negative number")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("network: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("network: multi-edges not allowed")
)

// Vertex is a node of the lane network.
//
// Metadata stores arbitrary annotations (e.g. the location role); Vertex
// returns the live map, so callers must not mutate it concurrently.
type Vertex struct {
	ID       string
	Metadata map[string]any
}

// Edge is a directed lane From→To with a capacity.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	From string
	To   string

	// Capacity bounds the flow over this edge; +Inf means uncapped.
	Capacity float64
}

// GraphOption configures a Graph before use.
type GraphOption func(g *Graph)

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a directed capacitated graph, safe for concurrent use.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges, adjacency and nextEdgeID

	allowMulti bool
	allowLoops bool

	nextEdgeID uint64
	vertices   map[string]*Vertex
	edges      map[string]*Edge

	// adjacency[from][to][edgeID] = struct{}{}
	adjacency map[string]map[string]map[string]struct{}
}

// NewGraph creates an empty Graph. By default it rejects loops and parallel edges.
// Complexity: O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
