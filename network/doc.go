// SPDX-License-Identifier: MIT

// Package network defines a small, thread-safe, directed and capacitated
// graph used to describe relief lane topology: locations become vertices,
// lanes become edges carrying a non-negative float64 capacity.
//
// The graph is deliberately narrower than a general-purpose graph library:
//
//	– every edge is directed (lanes have an origin and a destination);
//	– capacities are float64 and may be +Inf (uncapped lane);
//	– parallel edges are opt-in via WithMultiEdges and are summed by consumers;
//	– self-loops are opt-in via WithLoops.
//
// Locking mirrors a split model: muVert guards the vertex catalog,
// muEdgeAdj guards edges and adjacency. Vertices(), Edges() and Neighbors()
// return deterministic, sorted snapshots so downstream algorithms (flow)
// produce reproducible results.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrBadCapacity         - capacity is NaN or negative.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
package network
