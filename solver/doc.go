// SPDX-License-Identifier: MIT

// Package solver defines the contract between an assembled linear program
// and a numerical optimiser, and provides a simplex implementation backed by
// gonum.org/v1/gonum/optimize/convex/lp.
//
// Infeasible, Unbounded and Timeout are statuses of a Result, not errors:
// callers branch on Result.Status. An error is returned only when the call
// itself fails (nil system, cancelled context, numerical breakdown).
//
// Simplex translation:
//   - each row gets its own slack column (+s for ≤, −s for ≥);
//   - an equality row becomes a ≤ row and a ≥ row, so the slack columns
//     form an identity block and the matrix has full row rank;
//   - rows with a negative right-hand side are negated;
//   - presolve drops empty rows (infeasible if violated at 0) and fixes
//     columns that appear in no row (unbounded if their cost is negative).
//
// Every variable is bounded below by 0. There are no upper bounds and no
// integrality.
package solver
