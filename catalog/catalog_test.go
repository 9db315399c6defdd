package catalog_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/catalog/catalogtest"
)

func TestNewBasic(t *testing.T) {
	cat, err := catalog.New(catalogtest.Basic())
	require.NoError(t, err)

	require.Equal(t, []string{"Beans"}, cat.Commodities())
	require.Equal(t, []string{"Protein"}, cat.Nutrients())
	require.Equal(t, []catalog.Location{{ID: "S", Role: catalog.Supplier}}, cat.Locations(catalog.Supplier))
	require.Len(t, cat.Locations(0), 4)
	require.Equal(t, []string{"C"}, cat.IDs(catalog.Camp))

	role, ok := cat.Role("W")
	require.True(t, ok)
	require.Equal(t, catalog.Warehouse, role)
	_, ok = cat.Role("X")
	require.False(t, ok)

	v, ok := cat.ProcurementCost("Beans", "S")
	require.True(t, ok)
	require.Equal(t, 100.0, v)
	v, ok = cat.SeaCost("Beans", "S", "P")
	require.True(t, ok)
	require.Equal(t, 10.0, v)
	v, ok = cat.LandCost("P", "W")
	require.True(t, ok)
	require.Equal(t, 8.0, v)
	v, ok = cat.UnitCost(catalog.Lane{Kind: catalog.WarehouseToCamp, Commodity: "ignored", From: "W", To: "C"})
	require.True(t, ok)
	require.Equal(t, 4.0, v)
	v, ok = cat.HandlingCost("P")
	require.True(t, ok)
	require.Equal(t, 5.0, v)

	_, ok = cat.Capacity("P")
	require.False(t, ok, "no capacity declared")
	_, ok = cat.ProcurementCapacity("Beans", "S")
	require.False(t, ok)
	_, ok = cat.LandCost("W", "P")
	require.False(t, ok, "lanes are directed")
	_, ok = cat.UnitCost(catalog.Lane{})
	require.False(t, ok)

	require.Equal(t, 1.0, cat.NutrientContent("Beans", "Protein"))
	require.Equal(t, 0.0, cat.NutrientContent("Beans", "Iron"))
	require.Equal(t, 50.0, cat.NutrientRequirement("C", "Protein"))
	require.Equal(t, []string{"C"}, cat.RequirementCamps())
	require.Empty(t, cat.CapacityNodes())
}

func TestLanesDeclaredOrder(t *testing.T) {
	cat, err := catalog.New(catalogtest.TwoRoutes())
	require.NoError(t, err)

	require.Equal(t, []catalog.Lane{
		{Kind: catalog.PortToWarehouse, From: "P1", To: "W1"},
		{Kind: catalog.PortToWarehouse, From: "P1", To: "W2"},
		{Kind: catalog.PortToWarehouse, From: "P2", To: "W2"},
	}, cat.Lanes(catalog.PortToWarehouse))
	require.Len(t, cat.Lanes(catalog.WarehouseToCamp), 4)
	require.Len(t, cat.Lanes(catalog.Sea), 4)
	require.Equal(t, catalog.Lane{Kind: catalog.Procurement, Commodity: "Beans", From: "S1"},
		cat.Lanes(catalog.Procurement)[1])
	require.Equal(t, []string{"P1", "P2", "W1", "W2"}, cat.CapacityNodes())

	c, ok := cat.ProcurementCapacity("Beans", "S1")
	require.True(t, ok)
	require.Equal(t, 40.0, c)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	cat, err := catalog.New(catalogtest.Basic())
	require.NoError(t, err)

	cs := cat.Commodities()
	cs[0] = "mutated"
	require.Equal(t, []string{"Beans"}, cat.Commodities())
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]catalog.Role{
		"Supplier":         catalog.Supplier,
		" port ":           catalog.Port,
		"WAREHOUSE":        catalog.Warehouse,
		"Beneficiary Camp": catalog.Camp,
		"camp":             catalog.Camp,
	} {
		got, err := catalog.ParseRole(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := catalog.ParseRole("")
	require.ErrorIs(t, err, catalog.ErrUnknownRole)
	require.Equal(t, "Beneficiary Camp", catalog.Camp.String())
}

func TestInfiniteCostAccepted(t *testing.T) {
	tb := catalogtest.Basic()
	tb.LandTransport[0].UnitCost = math.Inf(1)
	cat, err := catalog.New(tb)
	require.NoError(t, err)
	v, ok := cat.LandCost("P", "W")
	require.True(t, ok)
	require.True(t, math.IsInf(v, 1))
}

func TestEmptySets(t *testing.T) {
	tb := catalog.Tables{Nodes: catalogtest.Basic().Nodes}
	cat, err := catalog.New(tb)
	require.NoError(t, err)
	require.Empty(t, cat.Commodities())
	require.Empty(t, cat.Nutrients())
	require.Len(t, cat.Locations(0), 4)

	tb.Commodities = []string{"Beans", ""}
	_, err = catalog.New(tb)
	require.ErrorIs(t, err, catalog.ErrEmptyIdentifier)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*catalog.Tables)
		table  string
		row    int
		err    error
	}{
		{"unknown role", func(tb *catalog.Tables) { tb.Nodes[0].Role = "Depot" },
			catalog.TableNodes, 0, catalog.ErrUnknownRole},
		{"empty role", func(tb *catalog.Tables) { tb.Nodes[2].Role = "" },
			catalog.TableNodes, 2, catalog.ErrUnknownRole},
		{"role conflict", func(tb *catalog.Tables) {
			tb.Nodes = append(tb.Nodes, catalog.NodeRecord{Location: "P", Role: "Warehouse"})
		}, catalog.TableNodes, 4, catalog.ErrRoleConflict},
		{"duplicate node", func(tb *catalog.Tables) {
			tb.Nodes = append(tb.Nodes, catalog.NodeRecord{Location: "P", Role: "Port"})
		}, catalog.TableNodes, 4, catalog.ErrDuplicateEntry},
		{"empty location", func(tb *catalog.Tables) { tb.Nodes[1].Location = "" },
			catalog.TableNodes, 1, catalog.ErrEmptyIdentifier},
		{"negative capacity", func(tb *catalog.Tables) { tb.Nodes[1].Capacity = catalogtest.Float(-1) },
			catalog.TableNodes, 1, catalog.ErrInvalidValue},
		{"infinite handling", func(tb *catalog.Tables) { tb.Nodes[1].HandlingCost = catalogtest.Float(math.Inf(1)) },
			catalog.TableNodes, 1, catalog.ErrInvalidValue},
		{"duplicate commodity", func(tb *catalog.Tables) { tb.Commodities = []string{"Beans", "Beans"} },
			catalog.TableCommodities, 1, catalog.ErrDuplicateEntry},
		{"empty nutrient", func(tb *catalog.Tables) { tb.Nutrients = []string{""} },
			catalog.TableNutrients, 0, catalog.ErrEmptyIdentifier},
		{"procurement unknown commodity", func(tb *catalog.Tables) { tb.Procurement[0].Commodity = "Rice" },
			catalog.TableProcurement, 0, catalog.ErrDanglingReference},
		{"procurement at port", func(tb *catalog.Tables) { tb.Procurement[0].Supplier = "P" },
			catalog.TableProcurement, 0, catalog.ErrLaneRole},
		{"procurement duplicate", func(tb *catalog.Tables) {
			tb.Procurement = append(tb.Procurement, tb.Procurement[0])
		}, catalog.TableProcurement, 1, catalog.ErrDuplicateEntry},
		{"procurement NaN", func(tb *catalog.Tables) { tb.Procurement[0].UnitCost = math.NaN() },
			catalog.TableProcurement, 0, catalog.ErrInvalidValue},
		{"sea undeclared port", func(tb *catalog.Tables) { tb.SeaTransport[0].Destination = "P9" },
			catalog.TableSeaTransport, 0, catalog.ErrDanglingReference},
		{"sea into warehouse", func(tb *catalog.Tables) { tb.SeaTransport[0].Destination = "W" },
			catalog.TableSeaTransport, 0, catalog.ErrLaneRole},
		{"sea negative", func(tb *catalog.Tables) { tb.SeaTransport[0].UnitCost = -3 },
			catalog.TableSeaTransport, 0, catalog.ErrInvalidValue},
		{"land boundary too large", func(tb *catalog.Tables) { tb.LandBoundary = 3 },
			catalog.TableLand, -1, catalog.ErrBoundary},
		{"land boundary negative", func(tb *catalog.Tables) { tb.LandBoundary = -1 },
			catalog.TableLand, -1, catalog.ErrBoundary},
		{"land boundary misplaced", func(tb *catalog.Tables) { tb.LandBoundary = 2 },
			catalog.TableLand, 1, catalog.ErrLaneRole},
		{"land duplicate", func(tb *catalog.Tables) {
			tb.LandTransport = append(tb.LandTransport, tb.LandTransport[1])
		}, catalog.TableLand, 2, catalog.ErrDuplicateEntry},
		{"nutrition unknown nutrient", func(tb *catalog.Tables) { tb.Nutrition[0].Content["Iron"] = 1 },
			catalog.TableNutrition, 0, catalog.ErrDanglingReference},
		{"nutrition duplicate", func(tb *catalog.Tables) {
			tb.Nutrition = append(tb.Nutrition, catalog.NutritionRecord{Commodity: "Beans"})
		}, catalog.TableNutrition, 1, catalog.ErrDuplicateEntry},
		{"requirement unknown camp", func(tb *catalog.Tables) { tb.Requirements[0].Camp = "C9" },
			catalog.TableRequirements, 0, catalog.ErrDanglingReference},
		{"requirement negative", func(tb *catalog.Tables) { tb.Requirements[0].Minimum["Protein"] = -5 },
			catalog.TableRequirements, 0, catalog.ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := catalogtest.Basic()
			tc.mutate(&tb)

			_, err := catalog.New(tb)
			require.ErrorIs(t, err, tc.err)
			var ce *catalog.CatalogError
			require.True(t, errors.As(err, &ce))
			require.Equal(t, tc.table, ce.Table)
			require.Equal(t, tc.row, ce.Row)
		})
	}
}

func TestCatalogErrorMessage(t *testing.T) {
	tb := catalogtest.Basic()
	tb.SeaTransport[0].Destination = "W"
	_, err := catalog.New(tb)
	require.EqualError(t, err, "catalog: lane endpoint has wrong role: table sea_transport row 0 key Beans/S/W")
}

func TestNetwork(t *testing.T) {
	tb := catalogtest.TwoRoutes()
	tb.LandTransport[1].UnitCost = math.Inf(1) // P1→W2 declared infeasible
	cat, err := catalog.New(tb)
	require.NoError(t, err)

	g := cat.Network()
	require.Equal(t, 8, g.VertexCount())
	require.True(t, g.HasEdge("S1", "P1"), "merged across Rice and Beans")
	require.True(t, g.HasEdge("S2", "P2"))
	require.False(t, g.HasEdge("P1", "W2"))
	require.False(t, g.HasEdge("P2", "W1"))
	// 3 sea pairs + 2 finite port→warehouse + 4 warehouse→camp.
	require.Equal(t, 9, g.EdgeCount())

	v, err := g.Vertex("P1")
	require.NoError(t, err)
	require.Equal(t, catalog.Port, v.Metadata[catalog.MetaRole])
	require.Equal(t, 160.0, v.Metadata[catalog.MetaCapacity])
	v, err = g.Vertex("S1")
	require.NoError(t, err)
	_, has := v.Metadata[catalog.MetaCapacity]
	require.False(t, has)
}
