// SPDX-License-Identifier: MIT

package lp

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for constraint-system construction.
var (
	// ErrDuplicateName indicates a variable or constraint name was used twice.
	ErrDuplicateName = errors.New("lp: duplicate name")

	// ErrEmptyName indicates a variable or constraint was declared without a name.
	ErrEmptyName = errors.New("lp: empty name")

	// ErrUnknownVariable indicates a term references a variable outside the index space.
	ErrUnknownVariable = errors.New("lp: unknown variable")

	// ErrNonFinite indicates a NaN or ±Inf coefficient or right-hand side.
	ErrNonFinite = errors.New("lp: non-finite value")

	// ErrBadSense indicates a constraint carries an undefined comparison operator.
	ErrBadSense = errors.New("lp: invalid constraint sense")
)

// NameError pins a construction error to the offending name.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *NameError) Unwrap() error { return e.Err }

// VarID indexes a variable inside its System. IDs are dense, starting at 0.
type VarID int

// Variable is a non-negative continuous decision variable.
type Variable struct {
	ID   VarID
	Name string
}

// Term is a single coefficient × variable product.
type Term struct {
	Var  VarID
	Coef float64
}

// Sense is the comparison operator of a constraint.
type Sense int

const (
	// LessEq is expr ≤ rhs.
	LessEq Sense = iota
	// Equal is expr = rhs.
	Equal
	// GreaterEq is expr ≥ rhs.
	GreaterEq
)

// String returns the mathematical operator.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

func (s Sense) valid() bool { return s >= LessEq && s <= GreaterEq }

// Constraint is a named linear relation over variables.
type Constraint struct {
	Name  string
	Expr  Expr
	Sense Sense
	RHS   float64
}

// Residual returns lhs − rhs at x. Its sign tells how the relation stands:
// LessEq holds iff Residual ≤ 0, GreaterEq iff ≥ 0, Equal iff = 0.
func (c Constraint) Residual(x []float64) float64 {
	return c.Expr.Value(x) - c.RHS
}

// Satisfied reports whether x meets the constraint within tol, measured
// relative to the larger of 1, |RHS| and the row's absolute activity
// Σ|coef·x|.
func (c Constraint) Satisfied(x []float64, tol float64) bool {
	r := c.Residual(x)
	tol *= math.Max(1, math.Max(math.Abs(c.RHS), c.Expr.Magnitude(x)))
	switch c.Sense {
	case LessEq:
		return r <= tol
	case GreaterEq:
		return r >= -tol
	default:
		return r <= tol && r >= -tol
	}
}

// String renders the constraint for diagnostics, e.g. "cap_port[P]: 1·x3 <= 20".
func (c Constraint) String() string {
	return fmt.Sprintf("%s: %s %s %g", c.Name, c.Expr, c.Sense, c.RHS)
}

// Violation describes a constraint that an assignment breaks.
type Violation struct {
	Name     string
	Sense    Sense
	LHS, RHS float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %g %s %g violated", v.Name, v.LHS, v.Sense, v.RHS)
}
