// SPDX-License-Identifier: MIT

package catalog

import (
	"math"

	"github.com/katalvlaran/reliefroute/network"
)

// Vertex metadata keys set by Network.
const (
	MetaRole     = "role"
	MetaCapacity = "capacity"
)

// Network renders the declared lane topology as a directed graph.
//
// Every location becomes a vertex carrying MetaRole and, when declared,
// MetaCapacity. Sea and land lanes with a finite cost become uncapped edges;
// sea lanes are merged across commodities, so each (supplier, port) pair
// yields one edge. Procurement is a property of the supplier and is not
// drawn.
//
// Complexity: O(V + E).
func (c *Catalog) Network() *network.Graph {
	g := network.NewGraph()
	for _, l := range c.locations {
		meta := map[string]any{MetaRole: l.Role}
		if capacity, ok := c.capacity[l.ID]; ok {
			meta[MetaCapacity] = capacity
		}
		_ = g.AddVertex(l.ID, meta)
	}

	kinds := []LaneKind{Sea, PortToWarehouse, WarehouseToCamp}
	for _, kind := range kinds {
		for _, lane := range c.Lanes(kind) {
			cost, _ := c.UnitCost(lane)
			if math.IsInf(cost, 1) || g.HasEdge(lane.From, lane.To) {
				continue
			}
			// Endpoints were validated by New; the only possible
			// failure is a duplicate, filtered above.
			_, _ = g.AddEdge(lane.From, lane.To, math.Inf(1))
		}
	}

	return g
}
