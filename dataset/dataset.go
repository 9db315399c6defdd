// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/reliefroute/catalog"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Load reads the dataset at path. See Decode.
func Load(path string) (catalog.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Tables{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadCatalog reads the dataset at path and builds the validated Catalog.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}

	return catalog.New(t)
}

// Decode parses one YAML document, validates it and converts it to
// catalog.Tables.
//
// Steps:
//  1. Strict decode (unknown top-level keys are rejected).
//  2. Struct-tag validation of every row.
//  3. Row key checks (nutrition rows need a commodity, requirement rows a camp).
//  4. Conversion; requirement columns naming no declared nutrient are dropped.
func Decode(r io.Reader) (catalog.Tables, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog.Tables{}, fmt.Errorf("%w: empty input", ErrDecode)
		}

		return catalog.Tables{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := validate.Struct(&doc); err != nil {
		return catalog.Tables{}, formatValidationError(err)
	}

	return doc.Tables()
}

// Tables converts a validated Document.
func (d *Document) Tables() (catalog.Tables, error) {
	t := catalog.Tables{
		Commodities:  append([]string(nil), d.Commodities...),
		Nutrients:    append([]string(nil), d.Nutrients...),
		LandBoundary: d.LandBoundary,
	}
	for _, n := range d.Nodes {
		t.Nodes = append(t.Nodes, catalog.NodeRecord{
			Location: n.Location, Role: n.Role, Capacity: n.Capacity, HandlingCost: n.HandlingCost,
		})
	}
	for _, p := range d.Procurement {
		t.Procurement = append(t.Procurement, catalog.ProcurementRecord{
			Commodity: p.Commodity, Supplier: p.Supplier, UnitCost: p.UnitCost, MonthlyCapacity: p.MonthlyCapacity,
		})
	}
	for _, s := range d.SeaTransport {
		t.SeaTransport = append(t.SeaTransport, catalog.SeaTransportRecord{
			Origin: s.Origin, Destination: s.Destination, Commodity: s.Commodity, UnitCost: s.UnitCost,
		})
	}
	for _, l := range d.LandTransport {
		t.LandTransport = append(t.LandTransport, catalog.LandTransportRecord{
			Origin: l.Origin, Destination: l.Destination, UnitCost: l.UnitCost,
		})
	}

	for i, row := range d.Nutrition {
		if row.Commodity == "" || row.Camp != "" {
			return catalog.Tables{}, fmt.Errorf("%w: nutrition[%d]: row needs a commodity column and no camp", ErrInvalid, i)
		}
		content, err := numericColumns(row.Columns, nil)
		if err != nil {
			return catalog.Tables{}, fmt.Errorf("%w: nutrition[%d]: %v", ErrInvalid, i, err)
		}
		t.Nutrition = append(t.Nutrition, catalog.NutritionRecord{Commodity: row.Commodity, Content: content})
	}

	nutrients := make(map[string]struct{}, len(d.Nutrients))
	for _, n := range d.Nutrients {
		nutrients[n] = struct{}{}
	}
	for i, row := range d.Requirements {
		if row.Camp == "" || row.Commodity != "" {
			return catalog.Tables{}, fmt.Errorf("%w: requirements[%d]: row needs a camp column and no commodity", ErrInvalid, i)
		}
		minimum, err := numericColumns(row.Columns, nutrients)
		if err != nil {
			return catalog.Tables{}, fmt.Errorf("%w: requirements[%d]: %v", ErrInvalid, i, err)
		}
		t.Requirements = append(t.Requirements, catalog.RequirementRecord{Camp: row.Camp, Minimum: minimum})
	}

	return t, nil
}

// numericColumns converts the columns of a row to numbers. When keep is
// non-nil, columns absent from keep are dropped unconverted.
func numericColumns(cols map[string]any, keep map[string]struct{}) (map[string]float64, error) {
	keys := make([]string, 0, len(cols))
	for k := range cols {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(cols))
	for _, k := range keys {
		if keep != nil {
			if _, ok := keep[k]; !ok {
				continue
			}
		}
		v, ok := toFloat(cols[k])
		if !ok {
			return nil, fmt.Errorf("column %s: %v is not a number", k, cols[k])
		}
		if math.IsNaN(v) || v < 0 {
			return nil, fmt.Errorf("column %s: must be a non-negative number", k)
		}
		out[k] = v
	}

	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// formatValidationError reports the first failed rule with its field path.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s: field is required", ErrInvalid, e.Namespace())
	case "min":
		return fmt.Errorf("%w: %s: must have at least %s entries", ErrInvalid, e.Namespace(), e.Param())
	case "gte":
		return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, e.Namespace(), e.Param())
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, e.Namespace(), e.Tag())
	}
}
