package milp

import (
	"context"
	"math"
	"testing"
)

func TestSolveSmallInteger(t *testing.T) {
	// Minimize x + 2y with x + y >= 3, x <= 2, both integer.
	m := NewModel()
	x := m.AddInteger("x", 2)
	y := m.AddInteger("y", math.Inf(1))
	m.AddConstraint("cover", []Term{{Col: x, Coef: 1}, {Col: y, Coef: 1}}, GE, 3)
	m.SetObjectiveCoef(x, 1)
	m.SetObjectiveCoef(y, 2)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %v", sol.Status)
	}
	if math.Abs(sol.Objective-4) > 1e-6 {
		t.Fatalf("objective = %v, want 4", sol.Objective)
	}
	if math.Abs(sol.Values[x]-2) > 1e-6 || math.Abs(sol.Values[y]-1) > 1e-6 {
		t.Fatalf("values = %v, want x=2 y=1", sol.Values)
	}
}

func TestSolveBinaryChoice(t *testing.T) {
	// Exactly one of three binaries, cheapest wins.
	m := NewModel()
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	c := m.AddBinary("c")
	m.AddConstraint("pick", []Term{{Col: a, Coef: 1}, {Col: b, Coef: 1}, {Col: c, Coef: 1}}, EQ, 1)
	m.SetObjectiveCoef(a, 3)
	m.SetObjectiveCoef(b, 1)
	m.SetObjectiveCoef(c, 2)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.Status != StatusOptimal || math.Abs(sol.Objective-1) > 1e-6 {
		t.Fatalf("status=%v objective=%v", sol.Status, sol.Objective)
	}
	if math.Abs(sol.Values[b]-1) > 1e-6 {
		t.Fatalf("expected b picked, values = %v", sol.Values)
	}
}

func TestSolveInfeasible(t *testing.T) {
	m := NewModel()
	x := m.AddBinary("x")
	m.AddConstraint("lo", []Term{{Col: x, Coef: 1}}, GE, 2)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Fatalf("status = %v, want Infeasible", sol.Status)
	}
}

func TestSolveEmptyRowViolated(t *testing.T) {
	// A row that lost all its columns but still demands a nonzero sum
	// settles the model as infeasible before the backend runs.
	m := NewModel()
	x := m.AddBinary("x")
	m.AddConstraint("keep", []Term{{Col: x, Coef: 1}}, LE, 1)
	m.AddConstraint("empty", nil, EQ, 2)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Fatalf("status = %v, want Infeasible", sol.Status)
	}
}

func TestSolveEmptyRowTrivial(t *testing.T) {
	// An empty row the zero sum satisfies is dropped, not sent to the
	// backend.
	m := NewModel()
	x := m.AddBinary("x")
	m.AddConstraint("empty_eq", nil, EQ, 0)
	m.AddConstraint("empty_le", nil, LE, 3)
	m.AddConstraint("empty_ge", nil, GE, -1)
	m.AddConstraint("pick", []Term{{Col: x, Coef: 1}}, GE, 1)
	m.SetObjectiveCoef(x, 1)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.Status != StatusOptimal || math.Abs(sol.Objective-1) > 1e-6 {
		t.Fatalf("status=%v objective=%v", sol.Status, sol.Objective)
	}
}

func TestSolveUnbounded(t *testing.T) {
	m := NewModel()
	x := m.AddContinuous("x", math.Inf(1))
	m.AddConstraint("lo", []Term{{Col: x, Coef: 1}}, GE, 0)
	m.SetObjectiveCoef(x, -1)

	sol, err := Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusUnbounded {
		t.Fatalf("status = %v, want Unbounded", sol.Status)
	}
}
