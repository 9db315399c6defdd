// SPDX-License-Identifier: MIT

// Package planner runs the relief planning pipeline end to end:
//
//	catalog ─► throughput screen ─► model.Assemble ─► solver ─► verification ─► Report
//
// Each run gets a UUID run ID, carried on the context, in every log record
// and as a span attribute. The missing-cost and capacity policies in force
// are logged at the start of every run.
//
// The throughput screen is an aggregate max-flow relaxation: it ignores
// commodity identity and asks whether the capacitated lane network can move
// the least mass that could meet every nutrient requirement. A shortfall
// proves the program infeasible; no shortfall proves nothing. The solver
// stays authoritative either way.
//
// Every Optimal assignment is checked against the named constraints of the
// program before it is reported. A failure there is a VerificationError.
package planner
