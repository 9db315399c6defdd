// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/katalvlaran/reliefroute/lp"
)

// Sentinel errors for model assembly.
var (
	// ErrRoleMismatch indicates a capacity or requirement declared on a location of the wrong role.
	ErrRoleMismatch = errors.New("model: role mismatch")

	// ErrMissingCost indicates an undeclared land cost under the Strict policy.
	ErrMissingCost = errors.New("model: missing lane cost")

	// ErrNoProcurementBasis indicates that no procurement variable could be created.
	ErrNoProcurementBasis = errors.New("model: no feasible procurement basis")

	// ErrInvalidOptions indicates an unusable Options value.
	ErrInvalidOptions = errors.New("model: invalid options")
)

// AssemblyError pins an assembly failure to the step and key that caused it.
type AssemblyError struct {
	Op  string
	Key string
	Err error
}

func (e *AssemblyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v (%s)", e.Err, e.Op)
	}

	return fmt.Sprintf("%v (%s %s)", e.Err, e.Op, e.Key)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// MissingCostPolicy decides what an undeclared land cost means.
type MissingCostPolicy int

const (
	// Exclude creates no variable for the lane.
	Exclude MissingCostPolicy = iota
	// Penalty creates the variable at Options.Penalty per unit.
	Penalty
	// Strict fails assembly with ErrMissingCost.
	Strict
)

var missingCostNames = [...]string{"exclude", "penalty", "strict"}

func (p MissingCostPolicy) String() string {
	if p < 0 || int(p) >= len(missingCostNames) {
		return fmt.Sprintf("MissingCostPolicy(%d)", int(p))
	}

	return missingCostNames[p]
}

// ParseMissingCostPolicy accepts "exclude", "penalty" or "strict" in any case.
func ParseMissingCostPolicy(s string) (MissingCostPolicy, error) {
	for i, n := range missingCostNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return MissingCostPolicy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown missing-cost policy %q", ErrInvalidOptions, s)
}

// CapacityPolicy decides what an undeclared port or warehouse capacity means.
type CapacityPolicy int

const (
	// Unconstrained emits no capacity row.
	Unconstrained CapacityPolicy = iota
	// ZeroThroughput emits an explicit ≤ 0 row.
	ZeroThroughput
)

var capacityNames = [...]string{"unconstrained", "zero"}

func (p CapacityPolicy) String() string {
	if p < 0 || int(p) >= len(capacityNames) {
		return fmt.Sprintf("CapacityPolicy(%d)", int(p))
	}

	return capacityNames[p]
}

// ParseCapacityPolicy accepts "unconstrained" or "zero" in any case.
func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	for i, n := range capacityNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return CapacityPolicy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown capacity policy %q", ErrInvalidOptions, s)
}

// DefaultPenalty is the per-unit cost given to undeclared lanes under Penalty.
const DefaultPenalty = 1e6

// Options configures Assemble.
//   - MissingLandCost: policy for undeclared port→warehouse and warehouse→camp costs.
//   - Penalty: unit cost under the Penalty policy; finite and ≥ 0 (0 = DefaultPenalty).
//   - MissingCapacity: policy for undeclared port and warehouse capacities.
//   - Parallelism: maximum concurrent per-commodity workers (0 = GOMAXPROCS).
type Options struct {
	MissingLandCost MissingCostPolicy
	Penalty         float64
	MissingCapacity CapacityPolicy
	Parallelism     int
}

// DefaultOptions returns Exclude / Unconstrained with the default penalty.
func DefaultOptions() Options {
	return Options{
		MissingLandCost: Exclude,
		Penalty:         DefaultPenalty,
		MissingCapacity: Unconstrained,
	}
}

func (o *Options) normalize() error {
	if o.MissingLandCost < Exclude || o.MissingLandCost > Strict {
		return fmt.Errorf("%w: missing-cost policy %d", ErrInvalidOptions, int(o.MissingLandCost))
	}
	if o.MissingCapacity < Unconstrained || o.MissingCapacity > ZeroThroughput {
		return fmt.Errorf("%w: capacity policy %d", ErrInvalidOptions, int(o.MissingCapacity))
	}
	if o.Penalty == 0 {
		o.Penalty = DefaultPenalty
	}
	if math.IsNaN(o.Penalty) || math.IsInf(o.Penalty, 0) || o.Penalty < 0 {
		return fmt.Errorf("%w: penalty %v", ErrInvalidOptions, o.Penalty)
	}
	if o.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d", ErrInvalidOptions, o.Parallelism)
	}
	if o.Parallelism == 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}

	return nil
}

// Stage is the position of a flow variable in the supply chain.
type Stage int

const (
	StageProcure Stage = iota
	StageShip
	StageHaul
	StageDeliver
	numStages
)

var stageNames = [...]string{"procure", "ship", "haul", "deliver"}

func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return fmt.Sprintf("Stage(%d)", int(s))
	}

	return stageNames[s]
}

// VarKey identifies a flow variable. For StageProcure, From is the supplier
// and To is empty.
type VarKey struct {
	Stage     Stage
	Commodity string
	From      string
	To        string
}

// String returns the variable name, e.g. "ship[Beans/S/P]".
func (k VarKey) String() string {
	if k.Stage == StageProcure {
		return fmt.Sprintf("%s[%s/%s]", k.Stage, k.Commodity, k.From)
	}

	return fmt.Sprintf("%s[%s/%s/%s]", k.Stage, k.Commodity, k.From, k.To)
}

// CostComponent tags each objective term for cost breakdowns.
type CostComponent int

const (
	Acquisition CostComponent = iota
	SeaTransport
	PortHandling
	LandPortWarehouse
	WarehouseHandling
	LandWarehouseCamp
	numComponents
)

var componentNames = [...]string{
	"acquisition", "sea_transport", "port_handling",
	"land_port_warehouse", "warehouse_handling", "land_warehouse_camp",
}

func (c CostComponent) String() string {
	if c < 0 || c >= numComponents {
		return fmt.Sprintf("CostComponent(%d)", int(c))
	}

	return componentNames[c]
}

// Components lists every CostComponent in objective order.
func Components() []CostComponent {
	out := make([]CostComponent, numComponents)
	for i := range out {
		out[i] = CostComponent(i)
	}

	return out
}

// CostTerm is one tagged per-unit charge on a variable.
type CostTerm struct {
	Component CostComponent
	UnitCost  float64
}

// Variable describes one flow variable of a Model.
type Variable struct {
	ID   lp.VarID
	Key  VarKey
	Name string

	// Costs lists the per-unit charges; their sum is the objective coefficient.
	Costs []CostTerm

	// Defaulted is true when the lane cost came from the Penalty policy.
	Defaulted bool
}

// UnitCost returns the total objective coefficient of v.
func (v Variable) UnitCost() float64 {
	var sum float64
	for _, c := range v.Costs {
		sum += c.UnitCost
	}

	return sum
}

// ConstraintKind groups constraint rows for statistics.
type ConstraintKind string

const (
	KindCapacity ConstraintKind = "capacity"
	KindBalance  ConstraintKind = "balance"
	KindNutrient ConstraintKind = "nutrient"
)

// Stats summarises the size and shape of an assembled model.
type Stats struct {
	Variables         int
	Constraints       int
	VariablesByStage  map[Stage]int
	ConstraintsByKind map[ConstraintKind]int

	// Defaulted counts variables priced by the Penalty policy.
	Defaulted int

	// Excluded counts candidate lanes that received no variable: declared
	// +Inf costs, sea lanes without a procurement basis, and land lanes
	// dropped under Exclude.
	Excluded int
}

// Model is an assembled linear program plus the metadata needed to read
// its solutions. It is immutable and safe for concurrent use.
type Model struct {
	sys   *lp.System
	vars  []Variable
	index map[VarKey]lp.VarID
	opts  Options
	stats Stats
}
