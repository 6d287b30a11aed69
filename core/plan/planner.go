package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmarec/stewardshift/core/logger"
	"github.com/tmarec/stewardshift/core/milp"
	"github.com/tmarec/stewardshift/core/model"
)

// solveModel points to the function used to solve the assembled model. It
// can be overridden in tests to simulate solver failures.
var solveModel = milp.Solve

// Planner runs the full pipeline: calendar resolution, fairness targets,
// model building, solving and extraction. A Planner holds no state across
// runs; every Plan call builds a fresh model.
type Planner struct {
	cfg *model.ScheduleConfig
	log logger.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the planner's logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Planner) { p.log = l }
}

// New returns a Planner for the given configuration.
func New(cfg *model.ScheduleConfig, opts ...Option) *Planner {
	p := &Planner{cfg: cfg, log: nopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan executes one planning run. The ctx bounds the solve; everything
// else is cheap. On any non-usable status the returned Result carries the
// classification and a nil schedule alongside the error.
func (p *Planner) Plan(ctx context.Context) (*model.Result, error) {
	runID := uuid.NewString()
	res := &model.Result{
		RunID:               runID,
		Config:              p.cfg,
		TotalShiftsRequired: p.cfg.TotalShiftsRequired(),
	}

	days, avail, err := BuildCalendar(p.cfg)
	if err != nil {
		return nil, err
	}
	res.Days = days

	ideals := IdealShifts(p.cfg, avail)
	bm := buildModel(p.cfg, days, avail, ideals)
	p.log.Debugw("model assembled", map[string]any{
		"run_id":      runID,
		"variables":   bm.m.NumVars(),
		"constraints": bm.m.NumConstraints(),
	})

	start := time.Now()
	sol, serr := solveModel(ctx, bm.m)
	if sol == nil {
		sol = &milp.Solution{Status: milp.StatusSolverError}
	}
	p.log.Infof("solve finished in %s with status %v (run %s)", time.Since(start), sol.Status, runID)

	res.Status = classifyStatus(sol.Status)
	switch res.Status {
	case model.StatusOptimal, model.StatusFeasibleNotProven:
		if err := extract(p.cfg, days, avail, ideals, bm, sol, res); err != nil {
			res.Status = model.StatusSolverError
			res.Schedule = nil
			return res, err
		}
		return res, nil
	case model.StatusInfeasible:
		return res, &InfeasibleModelError{Detail: "hard constraints admit no assignment"}
	case model.StatusUnbounded:
		return res, &SolverError{Err: errors.New("objective unbounded; model is malformed")}
	default:
		if serr == nil {
			serr = fmt.Errorf("unrecognized solver outcome")
		}
		return res, &SolverError{Err: serr}
	}
}

func classifyStatus(s milp.Status) model.Status {
	switch s {
	case milp.StatusOptimal:
		return model.StatusOptimal
	case milp.StatusFeasibleNotProven:
		return model.StatusFeasibleNotProven
	case milp.StatusInfeasible:
		return model.StatusInfeasible
	case milp.StatusUnbounded:
		return model.StatusUnbounded
	default:
		return model.StatusSolverError
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
