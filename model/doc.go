// SPDX-License-Identifier: MIT

// Package model is the assembly engine of the relief planner: it turns a
// validated *catalog.Catalog into a linear program (*lp.System) whose
// optimum is the cheapest way to meet every camp's nutrient requirements.
//
// # Variables
//
// Four stages of non-negative flow variables, generated in this order so
// that each stage gates the next:
//
//	procure[c/s]    commodity c bought at supplier s      finite procurement cost
//	ship[c/s/p]     c shipped from s to port p             procure[c/s] exists and finite sea cost
//	haul[c/p/w]     c moved from port p to warehouse w     land cost, or per MissingLandCost
//	deliver[c/w/v]  c moved from warehouse w to camp v     land cost, or per MissingLandCost
//
// A sea cost without a procurement basis never yields a ship variable. A
// +Inf cost declares a lane infeasible under every policy.
//
// # Objective
//
// Σ unit cost × flow over all stages, plus the port handling cost on every
// ship variable entering a port and the warehouse handling cost on every haul
// variable entering a warehouse. Each term is tagged with a CostComponent so
// a solved plan can be broken down with (*Model).Breakdown.
//
// # Constraints
//
//	cap_port[p]             Σ ship[·/·/p]  ≤ capacity(p)
//	cap_warehouse[w]        Σ haul[·/·/w]  ≤ capacity(w)
//	cap_procure[c/s]        Σ ship[c/s/·]  ≤ procurement capacity(c, s)
//	balance_supplier[c/s]   Σ ship[c/s/·]  − procure[c/s]   = 0
//	balance_port[c/p]       Σ ship[c/·/p]  − Σ haul[c/p/·]  = 0
//	balance_warehouse[c/w]  Σ haul[c/·/w]  − Σ deliver[c/w/·] = 0
//	nutrient[v/n]           Σ content(c, n)·deliver[c/·/v] ≥ requirement(v, n)
//
// Capacity and balance rows with no incident variable are omitted. An
// undeclared node capacity means no row (Unconstrained) or an explicit ≤ 0
// row (ZeroThroughput). Nutrient rows are emitted for every (camp, nutrient)
// pair, so an unreachable camp with a positive requirement makes the program
// infeasible under a diagnosable name.
//
// # Determinism
//
// Per-commodity fragments are generated concurrently (Options.Parallelism)
// and merged in declared commodity order. Variable IDs are assigned in the
// merge, stage-major, then by commodity, then by declared node order.
// Assembling the same catalog twice yields identical systems.
//
// # Errors
//
// All failures are *AssemblyError values unwrapping to ErrRoleMismatch,
// ErrMissingCost, ErrNoProcurementBasis, ErrInvalidOptions or
// lp.ErrDuplicateName. No partial model is ever returned.
package model
