// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/reliefroute/lp"
)

const (
	// perturbation is the base relaxation of every scaled right-hand side.
	// Row i is relaxed by perturbation·(1 + frac(i·φ)) so no two rows tie.
	perturbation = 1e-9

	// vertexTol bounds how negative a basic value may come out when the
	// final basis is re-solved against the unrelaxed right-hand side.
	vertexTol = 1e-9

	// independentCond is the condition number above which a candidate
	// column is treated as dependent on the basis built so far.
	independentCond = 1e12
)

// standardForm is min cᵀy s.t. Ay = b, y ≥ 0, built from an equilibrated
// copy of the system:
//
//   - every row is divided by its largest structural |coefficient|;
//   - every structural column is then divided by its largest |entry|;
//   - b is divided by its largest |entry| and c likewise, so both are O(1);
//   - each row is relaxed by a distinct tiny amount (≤ rows up, ≥ rows
//     down), which keeps the backend off degenerate vertices.
//
// Columns [0, len(cols)) are structural, the rest are slacks. The original
// value of cols[j] is scale[j]·y[j]. b0 is the unrelaxed right-hand side.
type standardForm struct {
	c     []float64
	a     *mat.Dense
	b     []float64
	b0    []float64
	cols  []lp.VarID
	scale []float64
}

// dims returns the shape of A; a nil form is 0×0.
func (f *standardForm) dims() (int, int) {
	if f == nil {
		return 0, 0
	}
	if f.a == nil {
		return 0, len(f.cols)
	}

	return f.a.Dims()
}

// presolveResult is the outcome of presolve. status is non-zero when the
// system was decided without calling the backend; culprit then names the
// row or variable that decided it.
type presolveResult struct {
	form        *standardForm
	status      Status
	culprit     string
	droppedRows int
	fixedCols   int
}

// row is a constraint after equality splitting.
type row struct {
	expr  lp.Expr
	slack float64 // +1 for ≤, −1 for ≥
	rhs   float64
}

// presolve reduces sys and builds its standard form.
//
// Complexity: O(nnz + m·(n+m)) for the dense matrix.
func presolve(sys *lp.System, tol float64) presolveResult {
	var res presolveResult
	nv := sys.NumVariables()
	used := make([]bool, nv)

	var rows []row
	for _, c := range sys.Constraints() {
		if len(c.Expr) == 0 {
			if !c.Satisfied(nil, tol) {
				res.status, res.culprit = Infeasible, c.Name
				return res
			}
			res.droppedRows++
			continue
		}
		for _, t := range c.Expr {
			used[t.Var] = true
		}
		switch c.Sense {
		case lp.LessEq:
			rows = append(rows, row{expr: c.Expr, slack: 1, rhs: c.RHS})
		case lp.GreaterEq:
			rows = append(rows, row{expr: c.Expr, slack: -1, rhs: c.RHS})
		default:
			rows = append(rows,
				row{expr: c.Expr, slack: 1, rhs: c.RHS},
				row{expr: c.Expr, slack: -1, rhs: c.RHS})
		}
	}

	cost := make([]float64, nv)
	for _, t := range sys.Objective() {
		cost[t.Var] = t.Coef
	}

	// Columns outside every row are free to move: a negative cost drives them
	// to infinity, otherwise they sit at their lower bound.
	col := make([]int, nv)
	var cols []lp.VarID
	for id := range nv {
		if used[id] {
			col[id] = len(cols)
			cols = append(cols, lp.VarID(id))
			continue
		}
		col[id] = -1
		if cost[id] < 0 {
			v, _ := sys.Variable(lp.VarID(id))
			res.status, res.culprit = Unbounded, v.Name
			return res
		}
		res.fixedCols++
	}

	form := &standardForm{cols: cols}
	res.form = form
	if len(rows) == 0 {
		res.status = Optimal
		return res
	}

	form.build(rows, col, cost)

	return res
}

// build fills the equilibrated, relaxed matrices of f from rows.
func (f *standardForm) build(rows []row, col []int, cost []float64) {
	m, ns := len(rows), len(f.cols)
	n := ns + m

	rowScale := make([]float64, m)
	for i, r := range rows {
		rowScale[i] = 1 / maxAbs(r.expr)
	}
	colMax := make([]float64, ns)
	for i, r := range rows {
		for _, t := range r.expr {
			j := col[t.Var]
			colMax[j] = math.Max(colMax[j], math.Abs(t.Coef)*rowScale[i])
		}
	}
	var rhsMax float64
	for i, r := range rows {
		rhsMax = math.Max(rhsMax, math.Abs(r.rhs)*rowScale[i])
	}
	if rhsMax == 0 {
		rhsMax = 1
	}

	f.scale = make([]float64, ns)
	f.c = make([]float64, n)
	var costMax float64
	for j, id := range f.cols {
		f.scale[j] = rhsMax / colMax[j]
		f.c[j] = cost[id] / colMax[j]
		costMax = math.Max(costMax, math.Abs(f.c[j]))
	}
	if costMax > 0 {
		for j := range ns {
			f.c[j] /= costMax
		}
	}

	f.a = mat.NewDense(m, n, nil)
	f.b = make([]float64, m)
	f.b0 = make([]float64, m)
	for i, r := range rows {
		b0 := r.rhs * rowScale[i] / rhsMax
		b := b0 + r.slack*relaxation(i)
		sign := 1.0
		if b < 0 {
			sign = -1
		}
		for _, t := range r.expr {
			j := col[t.Var]
			f.a.Set(i, j, sign*t.Coef*rowScale[i]/colMax[j])
		}
		f.a.Set(i, ns+i, sign*r.slack)
		f.b[i] = sign * b
		f.b0[i] = sign * b0
	}
}

// relaxation is the amount row i is loosened by.
func relaxation(i int) float64 {
	_, frac := math.Modf(float64(i+1) * math.Phi)
	return perturbation * (1 + frac)
}

func maxAbs(e lp.Expr) float64 {
	var m float64
	for _, t := range e {
		m = math.Max(m, math.Abs(t.Coef))
	}

	return m
}

// vertex re-solves the basis behind y against the unrelaxed right-hand
// side. It reports false when no such basis can be formed or the result
// is infeasible beyond vertexTol; y is then the best available answer.
//
// The basis is optimal for the relaxed problem and optimality does not
// depend on b, so a feasible re-solve is an optimum of the original.
func (f *standardForm) vertex(y []float64) ([]float64, bool) {
	m, n := f.a.Dims()
	basis := make([]int, 0, m)
	in := make([]bool, n)
	for j, v := range y {
		if v != 0 {
			basis = append(basis, j)
			in[j] = true
		}
	}
	if len(basis) > m {
		return nil, false
	}

	// Complete a degenerate basis, slacks first.
	for k := n - 1; k >= 0 && len(basis) < m; k-- {
		if in[k] {
			continue
		}
		cand := append(basis, k)
		ab := mat.NewDense(m, len(cand), nil)
		for c, j := range cand {
			ab.SetCol(c, mat.Col(nil, j, f.a))
		}
		if mat.Cond(ab, 1) > independentCond {
			continue
		}
		basis, in[k] = cand, true
	}
	if len(basis) < m {
		return nil, false
	}

	ab := mat.NewDense(m, m, nil)
	for c, j := range basis {
		ab.SetCol(c, mat.Col(nil, j, f.a))
	}
	var xb mat.VecDense
	if err := xb.SolveVec(ab, mat.NewVecDense(m, f.b0)); err != nil {
		return nil, false
	}

	out := make([]float64, n)
	for c, j := range basis {
		v := xb.AtVec(c)
		if v < -vertexTol {
			return nil, false
		}
		out[j] = math.Max(v, 0)
	}

	return out, true
}

// unscale maps a standard-form solution back onto the system's variables.
func (f *standardForm) unscale(y []float64, nv int) []float64 {
	x := make([]float64, nv)
	for j, id := range f.cols {
		x[id] = f.scale[j] * y[j]
	}

	return x
}
