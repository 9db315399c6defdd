// SPDX-License-Identifier: MIT

// Package catalogtest provides small, hand-checkable relief networks for
// tests across the module.
package catalogtest

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/reliefroute/catalog"
)

// Float returns a pointer to v, for the optional numeric fields of Tables.
func Float(v float64) *float64 { return &v }

// Basic is one supplier S, port P, warehouse W and camp C moving "Beans".
// Costs per unit: procurement 100, sea 10, port handling 5, land P→W 8,
// warehouse handling 3, land W→C 4. Camp C needs 50 Protein and Beans carry
// 1 Protein per unit. No capacities are declared, so the optimum ships 50
// units end to end for 50×130 = 6500.
func Basic() catalog.Tables {
	return catalog.Tables{
		Nodes: []catalog.NodeRecord{
			{Location: "S", Role: "Supplier"},
			{Location: "P", Role: "Port", HandlingCost: Float(5)},
			{Location: "W", Role: "Warehouse", HandlingCost: Float(3)},
			{Location: "C", Role: "Beneficiary Camp"},
		},
		Commodities: []string{"Beans"},
		Nutrients:   []string{"Protein"},
		Procurement: []catalog.ProcurementRecord{
			{Commodity: "Beans", Supplier: "S", UnitCost: 100},
		},
		SeaTransport: []catalog.SeaTransportRecord{
			{Origin: "S", Destination: "P", Commodity: "Beans", UnitCost: 10},
		},
		LandTransport: []catalog.LandTransportRecord{
			{Origin: "P", Destination: "W", UnitCost: 8},
			{Origin: "W", Destination: "C", UnitCost: 4},
		},
		LandBoundary: 1,
		Nutrition: []catalog.NutritionRecord{
			{Commodity: "Beans", Content: map[string]float64{"Protein": 1}},
		},
		Requirements: []catalog.RequirementRecord{
			{Camp: "C", Minimum: map[string]float64{"Protein": 50}},
		},
	}
}

// PortLimited is Basic with port P capped at 20 units, which cannot carry
// the 50 units camp C needs.
func PortLimited() catalog.Tables {
	t := Basic()
	t.Nodes[1].Capacity = Float(20)

	return t
}

// SeaWithoutProcurement is Basic plus a second supplier S2 with a priced
// sea lane to P but no procurement row for Beans.
func SeaWithoutProcurement() catalog.Tables {
	t := Basic()
	t.Nodes = append([]catalog.NodeRecord{{Location: "S2", Role: "Supplier"}}, t.Nodes...)
	t.SeaTransport = append(t.SeaTransport, catalog.SeaTransportRecord{
		Origin: "S2", Destination: "P", Commodity: "Beans", UnitCost: 1,
	})

	return t
}

// TwoRoutes is a two-commodity network with alternative ports and
// warehouses, capacities on every node and one unpriced land lane (P2→W1).
//
//	Suppliers S1 (Rice 50, Beans 90 cap 40), S2 (Rice 60 cap 100)
//	Ports     P1 (cap 160, handling 2), P2 (cap 80)
//	Warehouses W1 (cap 150, handling 1), W2 (cap 60)
//	Camps     C1 (Energy 200, Protein 30), C2 (Energy 100)
//
// Rice carries Energy 2/unit, Protein 0.1; Beans Energy 1, Protein 0.5.
func TwoRoutes() catalog.Tables {
	return catalog.Tables{
		Nodes: []catalog.NodeRecord{
			{Location: "S1", Role: "Supplier"},
			{Location: "S2", Role: "Supplier"},
			{Location: "P1", Role: "Port", Capacity: Float(160), HandlingCost: Float(2)},
			{Location: "P2", Role: "Port", Capacity: Float(80)},
			{Location: "W1", Role: "Warehouse", Capacity: Float(150), HandlingCost: Float(1)},
			{Location: "W2", Role: "Warehouse", Capacity: Float(60)},
			{Location: "C1", Role: "Beneficiary Camp"},
			{Location: "C2", Role: "Camp"},
		},
		Commodities: []string{"Rice", "Beans"},
		Nutrients:   []string{"Energy", "Protein"},
		Procurement: []catalog.ProcurementRecord{
			{Commodity: "Rice", Supplier: "S1", UnitCost: 50},
			{Commodity: "Beans", Supplier: "S1", UnitCost: 90, MonthlyCapacity: Float(40)},
			{Commodity: "Rice", Supplier: "S2", UnitCost: 60, MonthlyCapacity: Float(100)},
		},
		SeaTransport: []catalog.SeaTransportRecord{
			{Origin: "S1", Destination: "P1", Commodity: "Rice", UnitCost: 12},
			{Origin: "S1", Destination: "P1", Commodity: "Beans", UnitCost: 12},
			{Origin: "S1", Destination: "P2", Commodity: "Rice", UnitCost: 20},
			{Origin: "S2", Destination: "P2", Commodity: "Rice", UnitCost: 5},
		},
		LandTransport: []catalog.LandTransportRecord{
			{Origin: "P1", Destination: "W1", UnitCost: 4},
			{Origin: "P1", Destination: "W2", UnitCost: 6},
			{Origin: "P2", Destination: "W2", UnitCost: 3},
			{Origin: "W1", Destination: "C1", UnitCost: 2},
			{Origin: "W1", Destination: "C2", UnitCost: 7},
			{Origin: "W2", Destination: "C1", UnitCost: 5},
			{Origin: "W2", Destination: "C2", UnitCost: 2},
		},
		LandBoundary: 3,
		Nutrition: []catalog.NutritionRecord{
			{Commodity: "Rice", Content: map[string]float64{"Energy": 2, "Protein": 0.1}},
			{Commodity: "Beans", Content: map[string]float64{"Energy": 1, "Protein": 0.5}},
		},
		Requirements: []catalog.RequirementRecord{
			{Camp: "C1", Minimum: map[string]float64{"Energy": 200, "Protein": 30}},
			{Camp: "C2", Minimum: map[string]float64{"Energy": 100}},
		},
	}
}

// Tied moves Beans from two suppliers through two ports and two warehouses
// to two camps over a fully connected network where every route costs the
// same: procurement 100, sea 10, land P→W 8, land W→C 4. Ports and
// warehouses hold 50 units each and the camps need 60 and 40 Protein, so
// every node runs at capacity and every feasible plan costs 100×122 = 12200.
func Tied() catalog.Tables {
	t := catalog.Tables{
		Commodities: []string{"Beans"},
		Nutrients:   []string{"Protein"},
		Nutrition: []catalog.NutritionRecord{
			{Commodity: "Beans", Content: map[string]float64{"Protein": 1}},
		},
		Requirements: []catalog.RequirementRecord{
			{Camp: "C1", Minimum: map[string]float64{"Protein": 60}},
			{Camp: "C2", Minimum: map[string]float64{"Protein": 40}},
		},
	}
	for _, s := range []string{"S1", "S2"} {
		t.Nodes = append(t.Nodes, catalog.NodeRecord{Location: s, Role: "Supplier"})
		t.Procurement = append(t.Procurement, catalog.ProcurementRecord{Commodity: "Beans", Supplier: s, UnitCost: 100})
		for _, p := range []string{"P1", "P2"} {
			t.SeaTransport = append(t.SeaTransport, catalog.SeaTransportRecord{
				Origin: s, Destination: p, Commodity: "Beans", UnitCost: 10,
			})
		}
	}
	for _, p := range []string{"P1", "P2"} {
		t.Nodes = append(t.Nodes, catalog.NodeRecord{Location: p, Role: "Port", Capacity: Float(50)})
		for _, w := range []string{"W1", "W2"} {
			t.LandTransport = append(t.LandTransport, catalog.LandTransportRecord{Origin: p, Destination: w, UnitCost: 8})
		}
	}
	t.LandBoundary = len(t.LandTransport)
	for _, w := range []string{"W1", "W2"} {
		t.Nodes = append(t.Nodes, catalog.NodeRecord{Location: w, Role: "Warehouse", Capacity: Float(50)})
		for _, v := range []string{"C1", "C2"} {
			t.LandTransport = append(t.LandTransport, catalog.LandTransportRecord{Origin: w, Destination: v, UnitCost: 4})
		}
	}
	for _, v := range []string{"C1", "C2"} {
		t.Nodes = append(t.Nodes, catalog.NodeRecord{Location: v, Role: "Camp"})
	}

	return t
}

// Scale returns a copy of t with every quantity multiplied by k: node
// capacities, procurement capacities and nutrient requirements. Costs and
// nutrient content are unchanged, so an optimal plan scales by k as well.
func Scale(t catalog.Tables, k float64) catalog.Tables {
	mul := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return Float(*v * k)
	}

	out := t
	out.Nodes = make([]catalog.NodeRecord, len(t.Nodes))
	for i, n := range t.Nodes {
		n.Capacity = mul(n.Capacity)
		out.Nodes[i] = n
	}
	out.Procurement = make([]catalog.ProcurementRecord, len(t.Procurement))
	for i, r := range t.Procurement {
		r.MonthlyCapacity = mul(r.MonthlyCapacity)
		out.Procurement[i] = r
	}
	out.Requirements = make([]catalog.RequirementRecord, len(t.Requirements))
	for i, r := range t.Requirements {
		minimum := make(map[string]float64, len(r.Minimum))
		for n, v := range r.Minimum {
			minimum[n] = v * k
		}
		out.Requirements[i] = catalog.RequirementRecord{Camp: r.Camp, Minimum: minimum}
	}

	return out
}

// Random builds a small valid network from seed: up to three commodities,
// suppliers and camps, up to two nutrients, ports and warehouses. Roughly a
// third of the lanes are left unpriced, some procurement rows are declared
// infeasible with +Inf, and some sea lanes have no procurement basis. The
// same seed always yields the same tables.
func Random(seed int64) catalog.Tables {
	rng := rand.New(rand.NewSource(seed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	chance := func(p float64) bool { return rng.Float64() < p }
	names := func(prefix string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%s%d", prefix, i+1)
		}
		return out
	}

	var t catalog.Tables
	t.Commodities = names("K", 1+rng.Intn(3))
	t.Nutrients = names("N", 1+rng.Intn(2))
	suppliers := names("S", 1+rng.Intn(3))
	ports := names("P", 1+rng.Intn(2))
	warehouses := names("W", 1+rng.Intn(2))
	camps := names("C", 1+rng.Intn(3))

	node := func(id, role string, withCap bool) catalog.NodeRecord {
		n := catalog.NodeRecord{Location: id, Role: role}
		if withCap && chance(0.5) {
			n.Capacity = Float(between(50, 300))
		}
		if withCap && chance(0.5) {
			n.HandlingCost = Float(between(0, 5))
		}
		return n
	}
	for _, s := range suppliers {
		t.Nodes = append(t.Nodes, node(s, "Supplier", false))
	}
	for _, p := range ports {
		t.Nodes = append(t.Nodes, node(p, "Port", true))
	}
	for _, w := range warehouses {
		t.Nodes = append(t.Nodes, node(w, "Warehouse", true))
	}
	for _, v := range camps {
		t.Nodes = append(t.Nodes, node(v, "Beneficiary Camp", false))
	}

	for _, c := range t.Commodities {
		for _, s := range suppliers {
			if !chance(0.8) {
				continue
			}
			r := catalog.ProcurementRecord{Commodity: c, Supplier: s, UnitCost: between(10, 100)}
			if chance(0.05) {
				r.UnitCost = math.Inf(1)
			}
			if chance(0.4) {
				r.MonthlyCapacity = Float(between(20, 200))
			}
			t.Procurement = append(t.Procurement, r)
		}
		for _, s := range suppliers {
			for _, p := range ports {
				if chance(0.7) {
					t.SeaTransport = append(t.SeaTransport, catalog.SeaTransportRecord{
						Origin: s, Destination: p, Commodity: c, UnitCost: between(1, 20),
					})
				}
			}
		}
	}

	for _, p := range ports {
		for _, w := range warehouses {
			if chance(0.7) {
				t.LandTransport = append(t.LandTransport, catalog.LandTransportRecord{
					Origin: p, Destination: w, UnitCost: between(1, 10),
				})
			}
		}
	}
	t.LandBoundary = len(t.LandTransport)
	for _, w := range warehouses {
		for _, v := range camps {
			if chance(0.7) {
				t.LandTransport = append(t.LandTransport, catalog.LandTransportRecord{
					Origin: w, Destination: v, UnitCost: between(1, 10),
				})
			}
		}
	}

	for _, c := range t.Commodities {
		content := make(map[string]float64)
		for _, n := range t.Nutrients {
			if chance(0.7) {
				content[n] = between(0.1, 2)
			}
		}
		t.Nutrition = append(t.Nutrition, catalog.NutritionRecord{Commodity: c, Content: content})
	}
	for _, v := range camps {
		minimum := make(map[string]float64)
		for _, n := range t.Nutrients {
			if chance(0.7) {
				minimum[n] = between(0, 50)
			}
		}
		t.Requirements = append(t.Requirements, catalog.RequirementRecord{Camp: v, Minimum: minimum})
	}

	return t
}
