package dataset_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliefroute/catalog"
	"github.com/katalvlaran/reliefroute/catalog/catalogtest"
	"github.com/katalvlaran/reliefroute/dataset"
)

const basic = `
nodes:
  - {location: S, role: Supplier}
  - {location: P, role: Port, handling_cost: 5}
  - {location: W, role: Warehouse, handling_cost: 3}
  - {location: C, role: Beneficiary Camp}
commodities: [Beans]
nutrients: [Protein]
procurement:
  - {commodity: Beans, supplier: S, unit_cost: 100}
sea_transport:
  - {origin: S, destination: P, commodity: Beans, unit_cost: 10}
land_transport:
  - {origin: P, destination: W, unit_cost: 8}
  - {origin: W, destination: C, unit_cost: 4}
land_boundary: 1
nutrition:
  - {commodity: Beans, Protein: 1}
requirements:
  - {camp: C, Protein: 50}
`

func TestDecodeMatchesFixture(t *testing.T) {
	got, err := dataset.Decode(strings.NewReader(basic))
	require.NoError(t, err)
	require.Equal(t, catalogtest.Basic(), got)
}

func TestLoadDropsMetadataColumns(t *testing.T) {
	got, err := dataset.Load(filepath.Join("testdata", "two_routes.yaml"))
	require.NoError(t, err)
	require.Equal(t, catalogtest.TwoRoutes(), got)

	cat, err := dataset.LoadCatalog(filepath.Join("testdata", "two_routes.yaml"))
	require.NoError(t, err)
	require.Equal(t, 0.0, cat.NutrientRequirement("C1", "population"))
}

func TestDecodeInfiniteCost(t *testing.T) {
	doc := strings.Replace(basic, "{origin: P, destination: W, unit_cost: 8}", "{origin: P, destination: W, unit_cost: .inf}", 1)
	got, err := dataset.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, math.IsInf(got.LandTransport[0].UnitCost, 1))
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		err  error
		msg  string
	}{
		{"empty", "", dataset.ErrDecode, "empty input"},
		{"malformed", "nodes: [", dataset.ErrDecode, ""},
		{"unknown table", basic + "\nwarehouses: []\n", dataset.ErrDecode, "warehouses"},
		{"no nodes", "commodities: [Beans]\n", dataset.ErrInvalid, "Document.Nodes"},
		{"missing role", strings.Replace(basic, "{location: S, role: Supplier}", "{location: S}", 1),
			dataset.ErrInvalid, "Document.Nodes[0].Role: field is required"},
		{"negative cost", strings.Replace(basic, "unit_cost: 100", "unit_cost: -1", 1),
			dataset.ErrInvalid, "Document.Procurement[0].UnitCost: must be at least 0"},
		{"negative capacity", strings.Replace(basic, "handling_cost: 5}", "handling_cost: 5, capacity: -2}", 1),
			dataset.ErrInvalid, "Capacity"},
		{"negative boundary", strings.Replace(basic, "land_boundary: 1", "land_boundary: -1", 1),
			dataset.ErrInvalid, "LandBoundary"},
		{"nutrition without commodity", strings.Replace(basic, "{commodity: Beans, Protein: 1}", "{Protein: 1}", 1),
			dataset.ErrInvalid, "nutrition[0]"},
		{"text nutrient", strings.Replace(basic, "{commodity: Beans, Protein: 1}", "{commodity: Beans, Protein: lots}", 1),
			dataset.ErrInvalid, "column Protein"},
		{"requirement without camp", strings.Replace(basic, "{camp: C, Protein: 50}", "{Protein: 50}", 1),
			dataset.ErrInvalid, "requirements[0]"},
		{"negative requirement", strings.Replace(basic, "{camp: C, Protein: 50}", "{camp: C, Protein: -50}", 1),
			dataset.ErrInvalid, "non-negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Decode(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.err)
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestReferentialErrorsReachCatalog(t *testing.T) {
	doc := strings.Replace(basic, "{origin: S, destination: P,", "{origin: S, destination: W,", 1)
	tb, err := dataset.Decode(strings.NewReader(doc))
	require.NoError(t, err, "structure is fine")
	_, err = catalog.New(tb)
	require.ErrorIs(t, err, catalog.ErrLaneRole)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join("testdata", "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.yaml")
}
