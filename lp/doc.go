// SPDX-License-Identifier: MIT

// Package lp holds the constraint-system representation handed from the
// model assembly engine to a solver: a fixed index space of non-negative
// continuous variables, a minimisation objective, and an ordered list of
// uniquely named linear constraints.
//
// A System is produced by a Builder and is immutable afterwards:
//
//	b := lp.NewBuilder()
//	x, _ := b.AddVariable("ship[beans/S/P]")
//	b.AddObjective(x, 110)
//	_ = b.AddConstraint(lp.Constraint{
//	    Name:  "cap_port[P]",
//	    Expr:  lp.Expr{{Var: x, Coef: 1}},
//	    Sense: lp.LessEq,
//	    RHS:   20,
//	})
//	sys, err := b.Build()
//
// # Invariants (checked by Build)
//
//   - Variable names are unique and non-empty.
//   - Constraint names are unique and non-empty (ErrDuplicateName).
//   - Every term references a declared variable (ErrUnknownVariable).
//   - Coefficients and right-hand sides are finite (ErrNonFinite).
//
// Expressions are compacted on the way in: duplicate variables are merged,
// zero coefficients dropped, and terms sorted by variable ID, so two systems
// built from the same inputs compare equal with reflect.DeepEqual.
//
// Constraints are identified by name, never by position; Constraint(name)
// and Violations(x, tol) report by name for diagnostics.
package lp
