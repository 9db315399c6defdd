// SPDX-License-Identifier: MIT

// Package catalog is the typed, validated view of one relief network: the
// role-partitioned set of locations, the commodity and nutrient sets, and the
// sparse cost, capacity and nutrition tables keyed by composite identifiers.
//
// A Catalog is built once from Tables and never changes afterwards:
//
//	cat, err := catalog.New(tables)
//	if err != nil {
//	    var ce *catalog.CatalogError
//	    errors.As(err, &ce) // ce.Table, ce.Row, ce.Key
//	}
//	cost, ok := cat.SeaCost("beans", "S1", "P1")
//
// # Lookups
//
// Every lookup is total. Absence is reported through the boolean of a
// (value, ok) pair, or as 0 for nutrient content and requirements, never as
// an error. The tables are explicit composite-key maps; nothing is defaulted
// inside the data structure, so policy decisions (what a missing land cost
// means) stay with the model assembly engine.
//
// # Validation
//
// New rejects, with a *CatalogError naming the table, row and key:
//
//   - node rows with an empty or unknown role (ErrUnknownRole);
//   - locations declared twice (ErrRoleConflict, ErrDuplicateEntry);
//   - rows referencing undeclared locations, commodities or nutrients
//     (ErrDanglingReference);
//   - lane endpoints of the wrong role for their table (ErrLaneRole);
//   - repeated cost keys within one table (ErrDuplicateEntry);
//   - NaN or negative numbers (ErrInvalidValue);
//   - a land boundary outside the land table (ErrBoundary);
//   - empty identifiers (ErrEmptyIdentifier).
//
// A +Inf unit cost is accepted and means the lane is declared infeasible.
package catalog
