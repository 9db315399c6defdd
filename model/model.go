// SPDX-License-Identifier: MIT

package model

import "github.com/katalvlaran/reliefroute/lp"

// System returns the assembled linear program.
func (m *Model) System() *lp.System { return m.sys }

// Options returns the normalised options the model was assembled with.
func (m *Model) Options() Options { return m.opts }

// Variables returns every flow variable in ID order.
func (m *Model) Variables() []Variable {
	out := make([]Variable, len(m.vars))
	for i, v := range m.vars {
		v.Costs = append([]CostTerm(nil), v.Costs...)
		out[i] = v
	}

	return out
}

// Variable returns the variable with the given ID.
func (m *Model) Variable(id lp.VarID) (Variable, bool) {
	if id < 0 || int(id) >= len(m.vars) {
		return Variable{}, false
	}
	v := m.vars[id]
	v.Costs = append([]CostTerm(nil), v.Costs...)

	return v, true
}

// Lookup returns the ID of the variable with the given key.
func (m *Model) Lookup(k VarKey) (lp.VarID, bool) {
	id, ok := m.index[k]

	return id, ok
}

// Name returns the human-readable name of a variable, or "" if id is unknown.
func (m *Model) Name(id lp.VarID) string {
	if id < 0 || int(id) >= len(m.vars) {
		return ""
	}

	return m.vars[id].Name
}

// Stats returns size statistics of the model.
func (m *Model) Stats() Stats {
	s := m.stats
	s.VariablesByStage = make(map[Stage]int, len(m.stats.VariablesByStage))
	for k, v := range m.stats.VariablesByStage {
		s.VariablesByStage[k] = v
	}
	s.ConstraintsByKind = make(map[ConstraintKind]int, len(m.stats.ConstraintsByKind))
	for k, v := range m.stats.ConstraintsByKind {
		s.ConstraintsByKind[k] = v
	}

	return s
}

// Breakdown splits the cost of an assignment by component. Every component
// is present in the result, zero when unused. The components sum to the
// objective value of the assignment.
func (m *Model) Breakdown(assignment map[lp.VarID]float64) map[CostComponent]float64 {
	out := make(map[CostComponent]float64, numComponents)
	for _, c := range Components() {
		out[c] = 0
	}
	for id, q := range assignment {
		if id < 0 || int(id) >= len(m.vars) || q == 0 {
			continue
		}
		for _, ct := range m.vars[id].Costs {
			out[ct.Component] += ct.UnitCost * q
		}
	}

	return out
}
