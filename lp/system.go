// SPDX-License-Identifier: MIT

package lp

// System is an immutable linear program: minimise Objective subject to
// Constraints, every variable ≥ 0. Accessors return copies.
type System struct {
	vars        []Variable
	objective   Expr
	constraints []Constraint
	byName      map[string]int
}

// NumVariables returns the size of the variable index space.
func (s *System) NumVariables() int { return len(s.vars) }

// NumConstraints returns the number of constraints.
func (s *System) NumConstraints() int { return len(s.constraints) }

// Variables returns the variables in ID order.
func (s *System) Variables() []Variable {
	out := make([]Variable, len(s.vars))
	copy(out, s.vars)

	return out
}

// Variable returns the variable with the given ID.
func (s *System) Variable(id VarID) (Variable, bool) {
	if id < 0 || int(id) >= len(s.vars) {
		return Variable{}, false
	}

	return s.vars[id], true
}

// Objective returns the compacted objective expression.
func (s *System) Objective() Expr {
	return append(Expr(nil), s.objective...)
}

// Constraints returns the constraints in emission order.
func (s *System) Constraints() []Constraint {
	out := make([]Constraint, len(s.constraints))
	for i, c := range s.constraints {
		c.Expr = append(Expr(nil), c.Expr...)
		out[i] = c
	}

	return out
}

// Constraint looks a constraint up by name.
func (s *System) Constraint(name string) (Constraint, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Constraint{}, false
	}
	c := s.constraints[i]
	c.Expr = append(Expr(nil), c.Expr...)

	return c, true
}

// Evaluate returns the objective value at x.
func (s *System) Evaluate(x []float64) float64 {
	return s.objective.Value(x)
}

// Violations lists every constraint x breaks by more than tol (relative,
// see Constraint.Satisfied), plus a synthetic "lower_bound[name]" entry for
// each variable below −tol.
// An empty result means x is feasible.
//
// Complexity: O(nnz + n).
func (s *System) Violations(x []float64, tol float64) []Violation {
	var out []Violation
	for _, v := range s.vars {
		if int(v.ID) < len(x) && x[v.ID] < -tol {
			out = append(out, Violation{
				Name:  "lower_bound[" + v.Name + "]",
				Sense: GreaterEq,
				LHS:   x[v.ID],
			})
		}
	}
	for _, c := range s.constraints {
		if !c.Satisfied(x, tol) {
			out = append(out, Violation{
				Name:  c.Name,
				Sense: c.Sense,
				LHS:   c.Expr.Value(x),
				RHS:   c.RHS,
			})
		}
	}

	return out
}

// Dense converts a sparse assignment into a vector indexed by VarID.
// Missing entries are 0; IDs outside the index space are ignored.
func (s *System) Dense(assignment map[VarID]float64) []float64 {
	x := make([]float64, len(s.vars))
	for id, v := range assignment {
		if id >= 0 && int(id) < len(x) {
			x[id] = v
		}
	}

	return x
}
