package lp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/reliefroute/lp"
)

// BuilderSuite exercises construction invariants of the constraint system.
type BuilderSuite struct {
	suite.Suite
	b    *lp.Builder
	x, y lp.VarID
}

func (s *BuilderSuite) SetupTest() {
	s.b = lp.NewBuilder()
	var err error
	s.x, err = s.b.AddVariable("x")
	s.Require().NoError(err)
	s.y, err = s.b.AddVariable("y")
	s.Require().NoError(err)
}

// TestVariableIDsAreDense verifies IDs are assigned 0..n-1 in declaration order.
func (s *BuilderSuite) TestVariableIDsAreDense() {
	require.Equal(s.T(), lp.VarID(0), s.x)
	require.Equal(s.T(), lp.VarID(1), s.y)
	require.Equal(s.T(), 2, s.b.NumVariables())
}

// TestDuplicateVariable rejects a second variable with the same name.
func (s *BuilderSuite) TestDuplicateVariable() {
	_, err := s.b.AddVariable("x")
	require.ErrorIs(s.T(), err, lp.ErrDuplicateName)

	var ne *lp.NameError
	require.True(s.T(), errors.As(err, &ne))
	require.Equal(s.T(), "x", ne.Name)
}

// TestEmptyNames rejects anonymous variables and constraints.
func (s *BuilderSuite) TestEmptyNames() {
	_, err := s.b.AddVariable("")
	require.ErrorIs(s.T(), err, lp.ErrEmptyName)

	err = s.b.AddConstraint(lp.Constraint{Expr: lp.Expr{{Var: s.x, Coef: 1}}})
	require.ErrorIs(s.T(), err, lp.ErrEmptyName)
}

// TestDuplicateConstraint is the structural uniqueness invariant.
func (s *BuilderSuite) TestDuplicateConstraint() {
	c := lp.Constraint{Name: "cap", Expr: lp.Expr{{Var: s.x, Coef: 1}}, Sense: lp.LessEq, RHS: 3}
	require.NoError(s.T(), s.b.AddConstraint(c))
	err := s.b.AddConstraint(c)
	require.ErrorIs(s.T(), err, lp.ErrDuplicateName)
	require.Contains(s.T(), err.Error(), `"cap"`)
}

// TestInvalidConstraints covers unknown variables, NaN/Inf values and bad senses.
func (s *BuilderSuite) TestInvalidConstraints() {
	cases := []struct {
		name string
		c    lp.Constraint
		want error
	}{
		{"unknown var", lp.Constraint{Name: "a", Expr: lp.Expr{{Var: 7, Coef: 1}}}, lp.ErrUnknownVariable},
		{"negative var", lp.Constraint{Name: "b", Expr: lp.Expr{{Var: -1, Coef: 1}}}, lp.ErrUnknownVariable},
		{"nan rhs", lp.Constraint{Name: "c", RHS: math.NaN()}, lp.ErrNonFinite},
		{"inf coef", lp.Constraint{Name: "d", Expr: lp.Expr{{Var: s.x, Coef: math.Inf(1)}}}, lp.ErrNonFinite},
		{"bad sense", lp.Constraint{Name: "e", Sense: lp.Sense(9)}, lp.ErrBadSense},
	}
	for _, tc := range cases {
		require.ErrorIs(s.T(), s.b.AddConstraint(tc.c), tc.want, tc.name)
	}
}

// TestObjectiveValidatedAtBuild defers objective checks until Build.
func (s *BuilderSuite) TestObjectiveValidatedAtBuild() {
	s.b.AddObjective(lp.VarID(42), 1)
	_, err := s.b.Build()
	require.ErrorIs(s.T(), err, lp.ErrUnknownVariable)
}

// TestCompactionAndLookup verifies expressions are merged and sorted.
func (s *BuilderSuite) TestCompactionAndLookup() {
	require.NoError(s.T(), s.b.AddConstraint(lp.Constraint{
		Name:  "bal",
		Expr:  lp.Expr{{Var: s.y, Coef: 1}, {Var: s.x, Coef: 2}, {Var: s.y, Coef: -1}, {Var: s.x, Coef: 1}},
		Sense: lp.Equal,
	}))
	s.b.AddObjective(s.y, 4)
	s.b.AddObjective(s.x, 1)
	s.b.AddObjective(s.y, 1)

	sys, err := s.b.Build()
	require.NoError(s.T(), err)

	c, ok := sys.Constraint("bal")
	require.True(s.T(), ok)
	require.Equal(s.T(), lp.Expr{{Var: s.x, Coef: 3}}, c.Expr)
	require.Equal(s.T(), lp.Expr{{Var: s.x, Coef: 1}, {Var: s.y, Coef: 5}}, sys.Objective())

	_, ok = sys.Constraint("missing")
	require.False(s.T(), ok)
}

// TestSystemIsFrozen ensures later builder calls and caller mutation do not leak in.
func (s *BuilderSuite) TestSystemIsFrozen() {
	require.NoError(s.T(), s.b.AddConstraint(lp.Constraint{Name: "c1", Expr: lp.Expr{{Var: s.x, Coef: 1}}}))
	sys, err := s.b.Build()
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.b.AddConstraint(lp.Constraint{Name: "c2"}))
	require.Equal(s.T(), 1, sys.NumConstraints())

	cons := sys.Constraints()
	cons[0].Expr[0].Coef = 99
	c, _ := sys.Constraint("c1")
	require.Equal(s.T(), 1.0, c.Expr[0].Coef)
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

// TestViolations checks feasibility reporting by constraint name.
func TestViolations(t *testing.T) {
	b := lp.NewBuilder()
	x, _ := b.AddVariable("x")
	y, _ := b.AddVariable("y")
	require.NoError(t, b.AddConstraint(lp.Constraint{Name: "le", Expr: lp.Expr{{Var: x, Coef: 1}}, Sense: lp.LessEq, RHS: 5}))
	require.NoError(t, b.AddConstraint(lp.Constraint{Name: "ge", Expr: lp.Expr{{Var: y, Coef: 2}}, Sense: lp.GreaterEq, RHS: 4}))
	require.NoError(t, b.AddConstraint(lp.Constraint{
		Name: "eq", Expr: lp.Expr{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, Sense: lp.Equal,
	}))
	sys, err := b.Build()
	require.NoError(t, err)

	require.Empty(t, sys.Violations([]float64{3, 3}, 1e-9))

	v := sys.Violations([]float64{6, 1}, 1e-9)
	names := make([]string, 0, len(v))
	for _, vi := range v {
		names = append(names, vi.Name)
	}
	require.Equal(t, []string{"le", "ge", "eq"}, names)

	v = sys.Violations([]float64{-1, -1}, 1e-9)
	require.Equal(t, "lower_bound[x]", v[0].Name)
	require.Equal(t, "lower_bound[y]", v[1].Name)
}

// TestRelativeTolerance scales the allowance with the size of the row.
func TestRelativeTolerance(t *testing.T) {
	big := lp.Constraint{Name: "nutrient[C/Energy]", Expr: lp.Expr{{Var: 0, Coef: 2}}, Sense: lp.GreaterEq, RHS: 5e6}
	require.True(t, big.Satisfied([]float64{2.5e6 - 1e-4}, 1e-9))
	require.False(t, big.Satisfied([]float64{2.5e6 - 1}, 1e-9))

	balance := lp.Constraint{Name: "balance_port[Beans/P]", Expr: lp.Expr{{Var: 0, Coef: 1}, {Var: 1, Coef: -1}}, Sense: lp.Equal}
	require.Equal(t, 8e6, balance.Expr.Magnitude([]float64{4e6, 4e6}))
	require.True(t, balance.Satisfied([]float64{4e6, 4e6 + 1e-3}, 1e-9))
	require.False(t, balance.Satisfied([]float64{4e6, 4e6 + 1}, 1e-9))

	small := lp.Constraint{Name: "cap_port[P]", Expr: lp.Expr{{Var: 0, Coef: 1}}, Sense: lp.LessEq, RHS: 0.5}
	require.True(t, small.Satisfied([]float64{0.5 + 1e-10}, 1e-9))
	require.False(t, small.Satisfied([]float64{0.5 + 1e-8}, 1e-9))
}

// TestDenseAndEvaluate covers assignment conversion and objective evaluation.
func TestDenseAndEvaluate(t *testing.T) {
	b := lp.NewBuilder()
	x, _ := b.AddVariable("x")
	y, _ := b.AddVariable("y")
	b.AddObjective(x, 2)
	b.AddObjective(y, 3)
	sys, err := b.Build()
	require.NoError(t, err)

	dense := sys.Dense(map[lp.VarID]float64{y: 4, 17: 1})
	require.Equal(t, []float64{0, 4}, dense)
	require.Equal(t, 12.0, sys.Evaluate(dense))
}

// TestSenseString covers operator rendering.
func TestSenseString(t *testing.T) {
	require.Equal(t, "<=", lp.LessEq.String())
	require.Equal(t, "=", lp.Equal.String())
	require.Equal(t, ">=", lp.GreaterEq.String())
	require.Equal(t, "Sense(7)", lp.Sense(7).String())
	require.Equal(t, "0", lp.Expr(nil).String())
}
