// SPDX-License-Identifier: MIT

package catalog

import (
	"math"
	"sort"
	"strings"
)

// New validates t and builds the Catalog.
//
// Steps:
//  1. Commodity and nutrient sets: identifiers non-empty and unique; the
//     sets themselves may be empty.
//  2. Nodes: parse roles, reject duplicates, record capacity/handling.
//  3. Procurement, sea and land tables: endpoints declared with the right
//     role, keys unique, values valid.
//  4. Nutrition and requirement tables: references declared, values valid.
//
// The first failure is returned as a *CatalogError.
//
// Complexity: O(total rows + Σ map entries · log) for deterministic order.
func New(t Tables) (*Catalog, error) {
	c := &Catalog{
		roles:       make(map[string]Role, len(t.Nodes)),
		capacity:    make(map[string]float64),
		handling:    make(map[string]float64),
		procCost:    make(map[pair]float64, len(t.Procurement)),
		procCap:     make(map[pair]float64),
		seaCost:     make(map[triple]float64, len(t.SeaTransport)),
		portWhCost:  make(map[pair]float64),
		whCampCost:  make(map[pair]float64),
		content:     make(map[pair]float64),
		requirement: make(map[pair]float64),
	}

	steps := []func(Tables) error{
		c.loadSets,
		c.loadNodes,
		c.loadProcurement,
		c.loadSea,
		c.loadLand,
		c.loadNutrition,
		c.loadRequirements,
	}
	for _, step := range steps {
		if err := step(t); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func fail(table string, row int, key string, err error) error {
	return &CatalogError{Table: table, Row: row, Key: key, Err: err}
}

func joinKey(parts ...string) string { return strings.Join(parts, "/") }

// checkValue rejects NaN and negatives; +Inf passes only when allowInf.
func checkValue(v float64, allowInf bool) error {
	if math.IsNaN(v) || v < 0 || (!allowInf && math.IsInf(v, 1)) {
		return ErrInvalidValue
	}

	return nil
}

func loadSet(table string, names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for i, n := range names {
		if n == "" {
			return nil, fail(table, i, "", ErrEmptyIdentifier)
		}
		if _, dup := seen[n]; dup {
			return nil, fail(table, i, n, ErrDuplicateEntry)
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out, nil
}

func (c *Catalog) loadSets(t Tables) error {
	var err error
	if c.commodities, err = loadSet(TableCommodities, t.Commodities); err != nil {
		return err
	}
	c.nutrients, err = loadSet(TableNutrients, t.Nutrients)

	return err
}

func (c *Catalog) loadNodes(t Tables) error {
	for i, n := range t.Nodes {
		if n.Location == "" {
			return fail(TableNodes, i, "", ErrEmptyIdentifier)
		}
		role, err := ParseRole(n.Role)
		if err != nil {
			return fail(TableNodes, i, n.Location, err)
		}
		if prev, dup := c.roles[n.Location]; dup {
			if prev != role {
				return fail(TableNodes, i, n.Location, ErrRoleConflict)
			}

			return fail(TableNodes, i, n.Location, ErrDuplicateEntry)
		}
		c.roles[n.Location] = role
		c.locations = append(c.locations, Location{ID: n.Location, Role: role})

		if n.Capacity != nil {
			if err = checkValue(*n.Capacity, true); err != nil {
				return fail(TableNodes, i, n.Location, err)
			}
			c.capacity[n.Location] = *n.Capacity
			c.capNodes = append(c.capNodes, n.Location)
		}
		if n.HandlingCost != nil {
			if err = checkValue(*n.HandlingCost, false); err != nil {
				return fail(TableNodes, i, n.Location, err)
			}
			c.handling[n.Location] = *n.HandlingCost
		}
	}

	return nil
}

// endpoint checks that id is declared and, when want is non-zero, has that role.
func (c *Catalog) endpoint(table string, row int, key, id string, want Role) error {
	if id == "" {
		return fail(table, row, key, ErrEmptyIdentifier)
	}
	role, ok := c.roles[id]
	if !ok {
		return fail(table, row, key, ErrDanglingReference)
	}
	if want != 0 && role != want {
		return fail(table, row, key, ErrLaneRole)
	}

	return nil
}

func (c *Catalog) commodity(table string, row int, key, name string) error {
	if name == "" {
		return fail(table, row, key, ErrEmptyIdentifier)
	}
	for _, x := range c.commodities {
		if x == name {
			return nil
		}
	}

	return fail(table, row, key, ErrDanglingReference)
}

func (c *Catalog) nutrient(table string, row int, key, name string) error {
	for _, x := range c.nutrients {
		if x == name {
			return nil
		}
	}

	return fail(table, row, key, ErrDanglingReference)
}

func (c *Catalog) loadProcurement(t Tables) error {
	for i, r := range t.Procurement {
		key := joinKey(r.Commodity, r.Supplier)
		if err := c.commodity(TableProcurement, i, key, r.Commodity); err != nil {
			return err
		}
		if err := c.endpoint(TableProcurement, i, key, r.Supplier, Supplier); err != nil {
			return err
		}
		k := pair{r.Commodity, r.Supplier}
		if _, dup := c.procCost[k]; dup {
			return fail(TableProcurement, i, key, ErrDuplicateEntry)
		}
		if err := checkValue(r.UnitCost, true); err != nil {
			return fail(TableProcurement, i, key, err)
		}
		c.procCost[k] = r.UnitCost
		c.procurements = append(c.procurements, k)
		if r.MonthlyCapacity != nil {
			if err := checkValue(*r.MonthlyCapacity, true); err != nil {
				return fail(TableProcurement, i, key, err)
			}
			c.procCap[k] = *r.MonthlyCapacity
		}
	}

	return nil
}

func (c *Catalog) loadSea(t Tables) error {
	for i, r := range t.SeaTransport {
		key := joinKey(r.Commodity, r.Origin, r.Destination)
		if err := c.commodity(TableSeaTransport, i, key, r.Commodity); err != nil {
			return err
		}
		if err := c.endpoint(TableSeaTransport, i, key, r.Origin, Supplier); err != nil {
			return err
		}
		if err := c.endpoint(TableSeaTransport, i, key, r.Destination, Port); err != nil {
			return err
		}
		k := triple{r.Commodity, r.Origin, r.Destination}
		if _, dup := c.seaCost[k]; dup {
			return fail(TableSeaTransport, i, key, ErrDuplicateEntry)
		}
		if err := checkValue(r.UnitCost, true); err != nil {
			return fail(TableSeaTransport, i, key, err)
		}
		c.seaCost[k] = r.UnitCost
		c.seaLanes = append(c.seaLanes, k)
	}

	return nil
}

func (c *Catalog) loadLand(t Tables) error {
	if t.LandBoundary < 0 || t.LandBoundary > len(t.LandTransport) {
		return fail(TableLand, -1, "", ErrBoundary)
	}
	for i, r := range t.LandTransport {
		from, to, costs := Port, Warehouse, c.portWhCost
		if i >= t.LandBoundary {
			from, to, costs = Warehouse, Camp, c.whCampCost
		}
		key := joinKey(r.Origin, r.Destination)
		if err := c.endpoint(TableLand, i, key, r.Origin, from); err != nil {
			return err
		}
		if err := c.endpoint(TableLand, i, key, r.Destination, to); err != nil {
			return err
		}
		k := pair{r.Origin, r.Destination}
		if _, dup := costs[k]; dup {
			return fail(TableLand, i, key, ErrDuplicateEntry)
		}
		if err := checkValue(r.UnitCost, true); err != nil {
			return fail(TableLand, i, key, err)
		}
		costs[k] = r.UnitCost
		if from == Port {
			c.portWhLanes = append(c.portWhLanes, k)
		} else {
			c.whCampLanes = append(c.whCampLanes, k)
		}
	}

	return nil
}

func (c *Catalog) loadNutrition(t Tables) error {
	seen := make(map[string]struct{}, len(t.Nutrition))
	for i, r := range t.Nutrition {
		if err := c.commodity(TableNutrition, i, r.Commodity, r.Commodity); err != nil {
			return err
		}
		if _, dup := seen[r.Commodity]; dup {
			return fail(TableNutrition, i, r.Commodity, ErrDuplicateEntry)
		}
		seen[r.Commodity] = struct{}{}
		for _, n := range sortedKeys(r.Content) {
			key := joinKey(r.Commodity, n)
			if err := c.nutrient(TableNutrition, i, key, n); err != nil {
				return err
			}
			v := r.Content[n]
			if err := checkValue(v, false); err != nil {
				return fail(TableNutrition, i, key, err)
			}
			c.content[pair{r.Commodity, n}] = v
		}
	}

	return nil
}

func (c *Catalog) loadRequirements(t Tables) error {
	seen := make(map[string]struct{}, len(t.Requirements))
	for i, r := range t.Requirements {
		if err := c.endpoint(TableRequirements, i, r.Camp, r.Camp, 0); err != nil {
			return err
		}
		if _, dup := seen[r.Camp]; dup {
			return fail(TableRequirements, i, r.Camp, ErrDuplicateEntry)
		}
		seen[r.Camp] = struct{}{}
		c.reqCamps = append(c.reqCamps, r.Camp)
		for _, n := range sortedKeys(r.Minimum) {
			key := joinKey(r.Camp, n)
			if err := c.nutrient(TableRequirements, i, key, n); err != nil {
				return err
			}
			v := r.Minimum[n]
			if err := checkValue(v, false); err != nil {
				return fail(TableRequirements, i, key, err)
			}
			c.requirement[pair{r.Camp, n}] = v
		}
	}

	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
