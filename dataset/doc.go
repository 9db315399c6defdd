// SPDX-License-Identifier: MIT

// Package dataset is the data provider of the relief planner. It reads a
// YAML document whose tables mirror the provider schema, validates every row
// with struct tags, and converts the result into catalog.Tables.
//
//	nodes:
//	  - {location: S, role: Supplier}
//	  - {location: P, role: Port, capacity: 20, handling_cost: 5}
//	commodities: [Beans]
//	nutrients: [Protein]
//	procurement:
//	  - {commodity: Beans, supplier: S, unit_cost: 100, monthly_capacity: 500}
//	sea_transport:
//	  - {origin: S, destination: P, commodity: Beans, unit_cost: 10}
//	land_transport:            # rows before land_boundary are port→warehouse
//	  - {origin: P, destination: W, unit_cost: 8}
//	  - {origin: W, destination: C, unit_cost: 4}
//	land_boundary: 1
//	nutrition:
//	  - {commodity: Beans, Protein: 1}
//	requirements:
//	  - {camp: C, population: 1200, Protein: 50}
//
// Nutrient values sit in columns named after the nutrient. Requirement rows
// may carry other columns (population, region, ...); those that do not name
// a declared nutrient are dropped. Costs may be written as .inf to declare a
// lane infeasible.
//
// Structural problems (missing keys, negative numbers) are reported as
// ErrInvalid; referential problems are left to catalog.New.
package dataset
