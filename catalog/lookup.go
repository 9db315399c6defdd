// SPDX-License-Identifier: MIT

package catalog

// Locations returns the locations with the given role in declared order.
// A zero role returns every location.
func (c *Catalog) Locations(role Role) []Location {
	out := make([]Location, 0, len(c.locations))
	for _, l := range c.locations {
		if role == 0 || l.Role == role {
			out = append(out, l)
		}
	}

	return out
}

// IDs returns the IDs of the locations with the given role in declared order.
func (c *Catalog) IDs(role Role) []string {
	locs := c.Locations(role)
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID
	}

	return out
}

// Role reports the role of id.
func (c *Catalog) Role(id string) (Role, bool) {
	r, ok := c.roles[id]

	return r, ok
}

// Commodities returns the commodity set in declared order.
func (c *Catalog) Commodities() []string { return append([]string(nil), c.commodities...) }

// Nutrients returns the nutrient set in declared order.
func (c *Catalog) Nutrients() []string { return append([]string(nil), c.nutrients...) }

// UnitCost returns the declared unit cost of a lane. Land lanes ignore
// the commodity. A +Inf cost is returned as declared.
func (c *Catalog) UnitCost(l Lane) (float64, bool) {
	switch l.Kind {
	case Procurement:
		return c.ProcurementCost(l.Commodity, l.From)
	case Sea:
		return c.SeaCost(l.Commodity, l.From, l.To)
	case PortToWarehouse, WarehouseToCamp:
		return c.LandCost(l.From, l.To)
	default:
		return 0, false
	}
}

// ProcurementCost returns the unit cost of commodity at supplier.
func (c *Catalog) ProcurementCost(commodity, supplier string) (float64, bool) {
	v, ok := c.procCost[pair{commodity, supplier}]

	return v, ok
}

// SeaCost returns the unit cost of shipping commodity from supplier to port.
func (c *Catalog) SeaCost(commodity, supplier, port string) (float64, bool) {
	v, ok := c.seaCost[triple{commodity, supplier, port}]

	return v, ok
}

// LandCost returns the commodity-independent unit cost of a land lane,
// either port→warehouse or warehouse→camp.
func (c *Catalog) LandCost(from, to string) (float64, bool) {
	if v, ok := c.portWhCost[pair{from, to}]; ok {
		return v, true
	}
	v, ok := c.whCampCost[pair{from, to}]

	return v, ok
}

// Capacity returns the declared monthly throughput of a node.
func (c *Catalog) Capacity(node string) (float64, bool) {
	v, ok := c.capacity[node]

	return v, ok
}

// ProcurementCapacity returns the monthly procurement limit of commodity at supplier.
func (c *Catalog) ProcurementCapacity(commodity, supplier string) (float64, bool) {
	v, ok := c.procCap[pair{commodity, supplier}]

	return v, ok
}

// HandlingCost returns the per-unit handling cost charged at a node.
func (c *Catalog) HandlingCost(node string) (float64, bool) {
	v, ok := c.handling[node]

	return v, ok
}

// NutrientContent returns the nutrient mass per unit of commodity, 0 if undeclared.
func (c *Catalog) NutrientContent(commodity, nutrient string) float64 {
	return c.content[pair{commodity, nutrient}]
}

// NutrientRequirement returns the minimum nutrient mass for a camp, 0 if undeclared.
func (c *Catalog) NutrientRequirement(camp, nutrient string) float64 {
	return c.requirement[pair{camp, nutrient}]
}

// CapacityNodes returns the nodes with a declared capacity in declared order.
func (c *Catalog) CapacityNodes() []string { return append([]string(nil), c.capNodes...) }

// RequirementCamps returns the locations with a requirement row in declared order.
func (c *Catalog) RequirementCamps() []string { return append([]string(nil), c.reqCamps...) }

// Lanes returns the declared lanes of one kind in table order.
func (c *Catalog) Lanes(kind LaneKind) []Lane {
	var out []Lane
	switch kind {
	case Procurement:
		for _, k := range c.procurements {
			out = append(out, Lane{Kind: kind, Commodity: k.a, From: k.b})
		}
	case Sea:
		for _, k := range c.seaLanes {
			out = append(out, Lane{Kind: kind, Commodity: k.a, From: k.b, To: k.c})
		}
	case PortToWarehouse:
		for _, k := range c.portWhLanes {
			out = append(out, Lane{Kind: kind, From: k.a, To: k.b})
		}
	case WarehouseToCamp:
		for _, k := range c.whCampLanes {
			out = append(out, Lane{Kind: kind, From: k.a, To: k.b})
		}
	}

	return out
}
