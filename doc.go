// Package reliefroute plans humanitarian supply chains: which commodities to
// buy where, and how to move them Supplier → Port → Warehouse → Camp at the
// least total cost while every camp receives its minimum nutrients.
//
// What is inside
//
//	A linear-programming pipeline built from small packages:
//		• dataset:  YAML tables → validated catalog.Tables
//		• catalog:  typed locations, lanes and composite-key lookups
//		• model:    the assembly engine turning sparse relational data
//		            into a consistent linear program, under explicit
//		            missing-cost and missing-capacity policies
//		• lp:       immutable constraint systems with named rows
//		• solver:   the Solver contract and a gonum simplex adapter
//		• network / flow: lane graphs and Dinic max-flow
//		• planner:  run IDs, throughput screen, verification, reports
//		• config:   YAML + environment configuration
//
// Data flow:
//
//	dataset ─► catalog ─► model ─► lp.System ─► solver ─► planner.Report
//	                 └──► network ─► flow (throughput screen)
//
// Quick start:
//
//	cat, err := dataset.LoadCatalog("relief.yaml")
//	rep, err := planner.New().Plan(ctx, cat)
//	fmt.Println(rep.Status, rep.Objective)
//
// See examples/relief_plan.go for a complete program.
package reliefroute
