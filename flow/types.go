// SPDX-License-Identifier: MIT

package flow

import "errors"

var (
	// ErrSourceNotFound is returned when the specified source vertex is missing.
	ErrSourceNotFound = errors.New("flow: source vertex not found")

	// ErrSinkNotFound is returned when the specified sink vertex is missing.
	ErrSinkNotFound = errors.New("flow: sink vertex not found")

	// ErrSameEndpoints is returned when source and sink coincide.
	ErrSameEndpoints = errors.New("flow: source and sink must differ")
)

// Options configures Dinic.
//   - Epsilon: capacities ≤ Epsilon are ignored and pushes ≤ Epsilon stop a phase (default 1e-9).
//   - LevelRebuildInterval: rebuild the level graph every N augmentations (0 = only when blocked).
type Options struct {
	Epsilon              float64
	LevelRebuildInterval int
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{Epsilon: 1e-9}
}

func (o *Options) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}

// Result is the outcome of a max-flow run.
type Result struct {
	// MaxFlow is the total flow value; +Inf when an uncapped path exists.
	MaxFlow float64

	// EdgeFlow[u][v] is the net flow over u→v; only positive entries are kept.
	// Nil when MaxFlow is +Inf.
	EdgeFlow map[string]map[string]float64
}
