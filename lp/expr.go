// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Expr is a linear expression Σ coef·var. The zero value is the empty sum.
type Expr []Term

// Plus returns e with coef·v appended. The receiver is not modified when it
// has no spare capacity; callers should use the returned value.
func (e Expr) Plus(v VarID, coef float64) Expr {
	return append(e, Term{Var: v, Coef: coef})
}

// Value evaluates the expression at x. Variables beyond len(x) count as 0.
func (e Expr) Value(x []float64) float64 {
	var sum float64
	for _, t := range e {
		if int(t.Var) < len(x) && t.Var >= 0 {
			sum += t.Coef * x[t.Var]
		}
	}

	return sum
}

// Magnitude is Σ|coef·x|, the scale of the expression at x.
func (e Expr) Magnitude(x []float64) float64 {
	var sum float64
	for _, t := range e {
		if int(t.Var) < len(x) && t.Var >= 0 {
			sum += math.Abs(t.Coef * x[t.Var])
		}
	}

	return sum
}

// Compact returns a new expression with duplicate variables merged, zero
// coefficients removed, and terms sorted by variable ID.
//
// Complexity: O(k log k) for k terms.
func (e Expr) Compact() Expr {
	if len(e) == 0 {
		return nil
	}
	acc := make(map[VarID]float64, len(e))
	for _, t := range e {
		acc[t.Var] += t.Coef
	}
	out := make(Expr, 0, len(acc))
	for v, c := range acc {
		if c != 0 {
			out = append(out, Term{Var: v, Coef: c})
		}
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })

	return out
}

// String renders the expression as "2·x0 + 1·x4"; the empty sum renders as "0".
func (e Expr) String() string {
	if len(e) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range e {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%g·x%d", t.Coef, t.Var)
	}

	return sb.String()
}
