// Package milp wraps a mixed-integer linear programming backend behind a
// small model/solve API so the planning engine never touches the solver
// binding directly. The backend is lp_solve via github.com/draffensperger/golp.
package milp

import "math"

// VarKind is the domain of a column.
type VarKind int

const (
	Continuous VarKind = iota
	Integer
	Binary
)

// Op is a linear constraint relation.
type Op int

const (
	LE Op = iota
	GE
	EQ
)

// Term is one coefficient of a linear expression.
type Term struct {
	Col  int
	Coef float64
}

// Constraint is a named linear row: sum(Terms) Op RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Op    Op
	RHS   float64
}

// Variable is one column. All columns have a lower bound of 0; Upper may
// be +Inf for unbounded continuous or integer columns.
type Variable struct {
	Name  string
	Kind  VarKind
	Upper float64
}

// Model is an assembled minimization problem.
type Model struct {
	vars []Variable
	cons []Constraint
	obj  []float64
}

// NewModel returns an empty minimization model.
func NewModel() *Model { return &Model{} }

func (m *Model) addVar(v Variable) int {
	m.vars = append(m.vars, v)
	m.obj = append(m.obj, 0)
	return len(m.vars) - 1
}

// AddBinary declares a {0,1} column and returns its index.
func (m *Model) AddBinary(name string) int {
	return m.addVar(Variable{Name: name, Kind: Binary, Upper: 1})
}

// AddInteger declares a non-negative integer column bounded above by upper
// (use math.Inf(1) for no bound) and returns its index.
func (m *Model) AddInteger(name string, upper float64) int {
	return m.addVar(Variable{Name: name, Kind: Integer, Upper: upper})
}

// AddContinuous declares a non-negative continuous column bounded above by
// upper (use math.Inf(1) for no bound) and returns its index.
func (m *Model) AddContinuous(name string, upper float64) int {
	return m.addVar(Variable{Name: name, Kind: Continuous, Upper: upper})
}

// AddConstraint appends a linear row.
func (m *Model) AddConstraint(name string, terms []Term, op Op, rhs float64) {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Op: op, RHS: rhs})
}

// SetObjectiveCoef sets a column's coefficient in the minimized objective.
func (m *Model) SetObjectiveCoef(col int, coef float64) { m.obj[col] = coef }

// NumVars returns the number of declared columns.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of rows, not counting the bound rows
// the backend adds for finite upper bounds.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Vars returns the declared columns.
func (m *Model) Vars() []Variable { return m.vars }

// Constraints returns the declared rows.
func (m *Model) Constraints() []Constraint { return m.cons }

// ObjectiveCoefs returns the per-column objective vector.
func (m *Model) ObjectiveCoefs() []float64 { return m.obj }

// HasFiniteUpper reports whether the column needs an explicit bound row.
// Binary columns are bounded through their own upper of 1.
func (v Variable) HasFiniteUpper() bool { return !math.IsInf(v.Upper, 1) }
