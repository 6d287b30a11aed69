package milp

import (
	"context"
	"fmt"

	"github.com/draffensperger/golp"
)

// Status classifies a solve outcome.
type Status int

const (
	StatusOptimal Status = iota
	// StatusFeasibleNotProven means the backend returned an incumbent
	// without proving optimality (lp_solve SUBOPTIMAL).
	StatusFeasibleNotProven
	StatusInfeasible
	StatusUnbounded
	StatusSolverError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasibleNotProven:
		return "FeasibleNotProven"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "SolverError"
	}
}

// Solution is the outcome of a solve. Values and Objective are only
// meaningful when Status is Optimal or FeasibleNotProven.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solve translates the model to lp_solve and runs the branch-and-bound
// procedure. The call blocks until the solver returns or ctx is done;
// a ctx that expires first yields StatusSolverError and ctx.Err(). The
// underlying solver run is not interruptible and finishes in background.
func Solve(ctx context.Context, m *Model) (*Solution, error) {
	// Rows with no columns cannot go through the binding. An empty row
	// whose relation the zero sum violates settles the whole model.
	for _, c := range m.Constraints() {
		if len(c.Terms) == 0 && !zeroSatisfies(c.Op, c.RHS) {
			return &Solution{Status: StatusInfeasible}, nil
		}
	}

	lp, err := build(m)
	if err != nil {
		return &Solution{Status: StatusSolverError}, err
	}

	type outcome struct {
		sol *Solution
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		st := lp.Solve()
		done <- outcome{classify(lp, st, m.NumVars())}
	}()

	select {
	case <-ctx.Done():
		return &Solution{Status: StatusSolverError}, ctx.Err()
	case out := <-done:
		return out.sol, out.err
	}
}

func build(m *Model) (*golp.LP, error) {
	lp := golp.NewLP(0, m.NumVars())
	lp.SetVerboseLevel(golp.IMPORTANT)

	for i, v := range m.Vars() {
		lp.SetColName(i, v.Name)
		if v.Kind != Continuous {
			lp.SetInt(i, true)
		}
		if v.HasFiniteUpper() {
			ub := []golp.Entry{{Col: i, Val: 1}}
			if err := lp.AddConstraintSparse(ub, golp.LE, v.Upper); err != nil {
				return nil, fmt.Errorf("bound %s: %w", v.Name, err)
			}
		}
	}

	for _, c := range m.Constraints() {
		if len(c.Terms) == 0 {
			// Trivially satisfied; Solve rejects the violated ones.
			continue
		}
		entries := make([]golp.Entry, len(c.Terms))
		for j, t := range c.Terms {
			entries[j] = golp.Entry{Col: t.Col, Val: t.Coef}
		}
		if err := lp.AddConstraintSparse(entries, rowType(c.Op), c.RHS); err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Name, err)
		}
	}

	lp.SetObjFn(m.ObjectiveCoefs())
	return lp, nil
}

// zeroSatisfies reports whether an empty linear sum meets the relation.
func zeroSatisfies(op Op, rhs float64) bool {
	switch op {
	case LE:
		return rhs >= 0
	case GE:
		return rhs <= 0
	default:
		return rhs == 0
	}
}

func rowType(op Op) golp.ConstraintType {
	switch op {
	case LE:
		return golp.LE
	case GE:
		return golp.GE
	default:
		return golp.EQ
	}
}

func classify(lp *golp.LP, st golp.SolutionType, ncols int) (*Solution, error) {
	switch st {
	case golp.OPTIMAL:
		return &Solution{Status: StatusOptimal, Objective: lp.Objective(), Values: values(lp, ncols)}, nil
	case golp.SUBOPTIMAL:
		return &Solution{Status: StatusFeasibleNotProven, Objective: lp.Objective(), Values: values(lp, ncols)}, nil
	case golp.INFEASIBLE:
		return &Solution{Status: StatusInfeasible}, nil
	case golp.UNBOUNDED:
		return &Solution{Status: StatusUnbounded}, nil
	default:
		return &Solution{Status: StatusSolverError}, fmt.Errorf("solver returned %v", st)
	}
}

func values(lp *golp.LP, ncols int) []float64 {
	vals := lp.Variables()
	out := make([]float64, ncols)
	copy(out, vals)
	return out
}
