// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog construction.
var (
	// ErrUnknownRole indicates a node row with an empty or unrecognised role.
	ErrUnknownRole = errors.New("catalog: unknown role")

	// ErrRoleConflict indicates a location declared twice with different roles.
	ErrRoleConflict = errors.New("catalog: conflicting roles")

	// ErrDuplicateEntry indicates a key that appears twice within one table.
	ErrDuplicateEntry = errors.New("catalog: duplicate entry")

	// ErrDanglingReference indicates a row naming an undeclared location, commodity or nutrient.
	ErrDanglingReference = errors.New("catalog: dangling reference")

	// ErrLaneRole indicates a lane endpoint whose role does not fit the table.
	ErrLaneRole = errors.New("catalog: lane endpoint has wrong role")

	// ErrInvalidValue indicates a NaN, negative or otherwise unusable number.
	ErrInvalidValue = errors.New("catalog: invalid value")

	// ErrBoundary indicates a land boundary outside [0, len(LandTransport)].
	ErrBoundary = errors.New("catalog: land boundary out of range")

	// ErrEmptyIdentifier indicates an empty location, commodity or nutrient name.
	ErrEmptyIdentifier = errors.New("catalog: empty identifier")
)

// CatalogError pins a validation failure to its table, row and key.
// Row is the zero-based index within the table, or -1 for table-level errors.
type CatalogError struct {
	Table string
	Row   int
	Key   string
	Err   error
}

func (e *CatalogError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v: table %s", e.Err, e.Table)
	if e.Row >= 0 {
		fmt.Fprintf(&sb, " row %d", e.Row)
	}
	if e.Key != "" {
		fmt.Fprintf(&sb, " key %s", e.Key)
	}

	return sb.String()
}

func (e *CatalogError) Unwrap() error { return e.Err }

// Table names used in CatalogError.
const (
	TableNodes        = "nodes"
	TableCommodities  = "commodities"
	TableNutrients    = "nutrients"
	TableProcurement  = "procurement"
	TableSeaTransport = "sea_transport"
	TableLand         = "land_transport"
	TableNutrition    = "nutrition"
	TableRequirements = "requirements"
)

// Role is the single, fixed function of a location in the network.
type Role int

const (
	// Supplier sources commodities.
	Supplier Role = iota + 1
	// Port receives sea shipments.
	Port
	// Warehouse stages goods between ports and camps.
	Warehouse
	// Camp is a beneficiary camp with nutrient requirements.
	Camp
)

// String returns the provider spelling of the role.
func (r Role) String() string {
	switch r {
	case Supplier:
		return "Supplier"
	case Port:
		return "Port"
	case Warehouse:
		return "Warehouse"
	case Camp:
		return "Beneficiary Camp"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps a provider role string to a Role. Matching ignores case
// and surrounding space; "Camp" is accepted as a short form.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supplier":
		return Supplier, nil
	case "port":
		return Port, nil
	case "warehouse":
		return Warehouse, nil
	case "beneficiary camp", "camp":
		return Camp, nil
	default:
		return 0, ErrUnknownRole
	}
}

// Location is a named node of the network.
type Location struct {
	ID   string
	Role Role
}

// LaneKind selects which cost table a Lane lives in.
type LaneKind int

const (
	// Procurement is (commodity, supplier); From is the supplier, To is empty.
	Procurement LaneKind = iota + 1
	// Sea is (commodity, supplier, port).
	Sea
	// PortToWarehouse is a commodity-independent land lane.
	PortToWarehouse
	// WarehouseToCamp is a commodity-independent land lane.
	WarehouseToCamp
)

// String implements fmt.Stringer.
func (k LaneKind) String() string {
	switch k {
	case Procurement:
		return "procurement"
	case Sea:
		return "sea"
	case PortToWarehouse:
		return "port-warehouse"
	case WarehouseToCamp:
		return "warehouse-camp"
	default:
		return fmt.Sprintf("LaneKind(%d)", int(k))
	}
}

// Lane identifies one priced movement. Commodity is ignored for land lanes.
type Lane struct {
	Kind      LaneKind
	Commodity string
	From      string
	To        string
}

// NodeRecord declares a location. Capacity and HandlingCost are optional.
type NodeRecord struct {
	Location     string
	Role         string
	Capacity     *float64
	HandlingCost *float64
}

// ProcurementRecord prices one commodity at one supplier.
// MonthlyCapacity is optional; nil means no procurement limit.
type ProcurementRecord struct {
	Commodity       string
	Supplier        string
	UnitCost        float64
	MonthlyCapacity *float64
}

// SeaTransportRecord prices one commodity from a supplier to a port.
type SeaTransportRecord struct {
	Origin      string
	Destination string
	Commodity   string
	UnitCost    float64
}

// LandTransportRecord prices a land lane for every commodity.
type LandTransportRecord struct {
	Origin      string
	Destination string
	UnitCost    float64
}

// NutritionRecord lists the nutrient content of one unit of a commodity.
type NutritionRecord struct {
	Commodity string
	Content   map[string]float64
}

// RequirementRecord lists the minimum nutrient mass a camp must receive.
type RequirementRecord struct {
	Camp    string
	Minimum map[string]float64
}

// Tables is the raw, provider-shaped input to New.
//
// LandTransport rows [0, LandBoundary) are port→warehouse lanes and the rest
// are warehouse→camp lanes. The split is declared, never inferred from roles.
type Tables struct {
	Nodes         []NodeRecord
	Commodities   []string
	Nutrients     []string
	Procurement   []ProcurementRecord
	SeaTransport  []SeaTransportRecord
	LandTransport []LandTransportRecord
	LandBoundary  int
	Nutrition     []NutritionRecord
	Requirements  []RequirementRecord
}

type pair struct{ a, b string }

type triple struct{ a, b, c string }

// Catalog is the immutable, validated network description.
// All methods are safe for concurrent use.
type Catalog struct {
	locations   []Location
	roles       map[string]Role
	commodities []string
	nutrients   []string

	capacity     map[string]float64
	capNodes     []string
	handling     map[string]float64
	procCost     map[pair]float64   // (commodity, supplier)
	procCap      map[pair]float64   // (commodity, supplier)
	seaCost      map[triple]float64 // (commodity, supplier, port)
	portWhCost   map[pair]float64   // (port, warehouse)
	whCampCost   map[pair]float64   // (warehouse, camp)
	content      map[pair]float64   // (commodity, nutrient)
	requirement  map[pair]float64   // (camp, nutrient)
	reqCamps     []string
	procurements []pair
	seaLanes     []triple
	portWhLanes  []pair
	whCampLanes  []pair
}
