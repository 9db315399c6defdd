// SPDX-License-Identifier: MIT

package lp

import "math"

// Builder accumulates variables, objective terms and constraints and
// freezes them into a System. A Builder is not safe for concurrent use.
type Builder struct {
	vars      []Variable
	varNames  map[string]VarID
	objective Expr
	cons      []Constraint
	consNames map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		varNames:  make(map[string]VarID),
		consNames: make(map[string]int),
	}
}

// AddVariable declares a new non-negative variable and returns its ID.
//
// Errors: ErrEmptyName, or a *NameError wrapping ErrDuplicateName.
// Complexity: O(1) amortised.
func (b *Builder) AddVariable(name string) (VarID, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if _, dup := b.varNames[name]; dup {
		return 0, &NameError{Name: name, Err: ErrDuplicateName}
	}
	id := VarID(len(b.vars))
	b.vars = append(b.vars, Variable{ID: id, Name: name})
	b.varNames[name] = id

	return id, nil
}

// NumVariables reports how many variables have been declared so far.
func (b *Builder) NumVariables() int { return len(b.vars) }

// AddObjective adds coef·v to the minimisation objective. Repeated calls for
// the same variable accumulate. Validation is deferred to Build.
func (b *Builder) AddObjective(v VarID, coef float64) {
	b.objective = append(b.objective, Term{Var: v, Coef: coef})
}

// AddConstraint validates and appends c. The expression is compacted.
//
// Errors (in check order): ErrEmptyName, ErrBadSense, ErrNonFinite,
// ErrUnknownVariable, ErrDuplicateName, each wrapped in a *NameError
// except ErrEmptyName.
func (b *Builder) AddConstraint(c Constraint) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if !c.Sense.valid() {
		return &NameError{Name: c.Name, Err: ErrBadSense}
	}
	if !finite(c.RHS) {
		return &NameError{Name: c.Name, Err: ErrNonFinite}
	}
	if err := b.checkTerms(c.Expr); err != nil {
		return &NameError{Name: c.Name, Err: err}
	}
	if _, dup := b.consNames[c.Name]; dup {
		return &NameError{Name: c.Name, Err: ErrDuplicateName}
	}
	c.Expr = c.Expr.Compact()
	b.consNames[c.Name] = len(b.cons)
	b.cons = append(b.cons, c)

	return nil
}

// Build validates the objective and returns the immutable System.
// The Builder may keep being used; later additions do not affect the result.
func (b *Builder) Build() (*System, error) {
	if err := b.checkTerms(b.objective); err != nil {
		return nil, &NameError{Name: "objective", Err: err}
	}

	vars := make([]Variable, len(b.vars))
	copy(vars, b.vars)
	cons := make([]Constraint, len(b.cons))
	byName := make(map[string]int, len(b.cons))
	for i, c := range b.cons {
		c.Expr = append(Expr(nil), c.Expr...)
		cons[i] = c
		byName[c.Name] = i
	}

	return &System{
		vars:        vars,
		objective:   b.objective.Compact(),
		constraints: cons,
		byName:      byName,
	}, nil
}

func (b *Builder) checkTerms(e Expr) error {
	n := VarID(len(b.vars))
	for _, t := range e {
		if t.Var < 0 || t.Var >= n {
			return ErrUnknownVariable
		}
		if !finite(t.Coef) {
			return ErrNonFinite
		}
	}

	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
