// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrDecode indicates the input is not a well-formed YAML document.
	ErrDecode = errors.New("dataset: cannot decode document")

	// ErrInvalid indicates a structurally invalid row or field.
	ErrInvalid = errors.New("dataset: invalid document")
)

// Document is the on-disk shape of one planning dataset.
type Document struct {
	Nodes         []Node        `yaml:"nodes" validate:"required,min=1,dive"`
	Commodities   []string      `yaml:"commodities" validate:"required,min=1,dive,required"`
	Nutrients     []string      `yaml:"nutrients" validate:"dive,required"`
	Procurement   []Procurement `yaml:"procurement" validate:"dive"`
	SeaTransport  []SeaLane     `yaml:"sea_transport" validate:"dive"`
	LandTransport []LandLane    `yaml:"land_transport" validate:"dive"`
	LandBoundary  int           `yaml:"land_boundary" validate:"gte=0"`
	Nutrition     []Row         `yaml:"nutrition" validate:"dive"`
	Requirements  []Row         `yaml:"requirements" validate:"dive"`
}

// Node declares a location.
type Node struct {
	Location     string   `yaml:"location" validate:"required"`
	Role         string   `yaml:"role" validate:"required"`
	Capacity     *float64 `yaml:"capacity" validate:"omitempty,gte=0"`
	HandlingCost *float64 `yaml:"handling_cost" validate:"omitempty,gte=0"`
}

// Procurement prices a commodity at a supplier.
type Procurement struct {
	Commodity       string   `yaml:"commodity" validate:"required"`
	Supplier        string   `yaml:"supplier" validate:"required"`
	UnitCost        float64  `yaml:"unit_cost" validate:"gte=0"`
	MonthlyCapacity *float64 `yaml:"monthly_capacity" validate:"omitempty,gte=0"`
}

// SeaLane prices one commodity from a supplier to a port.
type SeaLane struct {
	Origin      string  `yaml:"origin" validate:"required"`
	Destination string  `yaml:"destination" validate:"required"`
	Commodity   string  `yaml:"commodity" validate:"required"`
	UnitCost    float64 `yaml:"unit_cost" validate:"gte=0"`
}

// LandLane prices a commodity-independent land lane.
type LandLane struct {
	Origin      string  `yaml:"origin" validate:"required"`
	Destination string  `yaml:"destination" validate:"required"`
	UnitCost    float64 `yaml:"unit_cost" validate:"gte=0"`
}

// Row is a nutrition or requirement row: one key column (commodity or camp)
// plus free-form columns, some of which name nutrients.
type Row struct {
	Commodity string         `yaml:"commodity,omitempty"`
	Camp      string         `yaml:"camp,omitempty"`
	Columns   map[string]any `yaml:",inline"`
}
