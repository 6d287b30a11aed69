package model

import "time"

// Status classifies the outcome of a solve attempt. Only Optimal and
// FeasibleNotProven produce a usable schedule.
type Status int

const (
	StatusOptimal Status = iota
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

// Usable reports whether the status carries an assignment.
func (s Status) Usable() bool {
	return s == StatusOptimal || s == StatusFeasibleNotProven
}

// PlanningDay maps a horizon index to its calendar attributes and
// staffing requirement.
type PlanningDay struct {
	Index    int
	Date     time.Time
	Weekday  Weekday
	Week     int
	Required int
}

// Schedule is the assignment matrix: one binary decision per employee and
// planning day. It is produced once per solve and never mutated.
type Schedule struct {
	Days []PlanningDay
	// Assigned maps an employee name to a per-day working flag, indexed
	// like Days. Every roster employee has an entry of full length.
	Assigned map[string][]bool
}

// Working reports whether the employee works on day k.
func (s *Schedule) Working(employee string, k int) bool {
	row, ok := s.Assigned[employee]
	return ok && k < len(row) && row[k]
}

// AssignedCount returns the employee's total shift count.
func (s *Schedule) AssignedCount(employee string) int {
	n := 0
	for _, w := range s.Assigned[employee] {
		if w {
			n++
		}
	}
	return n
}

// EmployeeSchedule summarizes one employee's outcome.
type EmployeeSchedule struct {
	Employee       Employee
	AssignedDays   []int
	AvailableDays  int
	IdealShifts    float64
	ActualShifts   int
	MaxConsecutive int
	// ViolationWindows counts the flagged windows of length
	// MaxConsecutiveShifts+1 that are fully worked. Overlapping windows in
	// a longer run each count once, so longer runs score higher.
	ViolationWindows int
	// ExcessWeeks counts 7-day blocks worked above MaxShiftsPerWeek.
	ExcessWeeks int
	// RepeatedWeekdayPairs counts (week, week+1, weekday) pairs worked on
	// the same weekday in both weeks.
	RepeatedWeekdayPairs int
}

// Deviation is the signed distance between actual and ideal shifts.
func (e EmployeeSchedule) Deviation() float64 {
	return float64(e.ActualShifts) - e.IdealShifts
}

// DailyAssignment lists who works on one planning day.
type DailyAssignment struct {
	Day       PlanningDay
	Employees []string
	Actual    int
}

// TeamSummary summarizes one team's share outcome.
type TeamSummary struct {
	Team         Team
	TargetShifts float64
	ActualShifts int
	Deviation    float64
}

// ObjectiveBreakdown splits the objective value into its weighted terms,
// each recomputed from the assignment matrix.
type ObjectiveBreakdown struct {
	Fairness      float64
	TeamDeviation float64
	Consecutive   float64
	WeeklyExcess  float64
	SameWeekday   float64
}

// Total sums all terms.
func (b ObjectiveBreakdown) Total() float64 {
	return b.Fairness + b.TeamDeviation + b.Consecutive + b.WeeklyExcess + b.SameWeekday
}

// Result is the outcome of one planning run. Schedule and the summary
// slices are nil unless Status.Usable().
type Result struct {
	RunID     string
	Config    *ScheduleConfig
	Status    Status
	Objective float64
	Breakdown ObjectiveBreakdown

	TotalShiftsRequired int
	Days                []PlanningDay

	Schedule  *Schedule
	Daily     []DailyAssignment
	Employees []EmployeeSchedule
	Teams     []TeamSummary
}

// Usable reports whether the run produced an assignment.
func (r *Result) Usable() bool { return r.Status.Usable() }

// EmployeeSchedule returns the summary for the named employee.
func (r *Result) EmployeeSchedule(name string) (EmployeeSchedule, bool) {
	for _, es := range r.Employees {
		if es.Employee.Name == name {
			return es, true
		}
	}
	return EmployeeSchedule{}, false
}

// TeamSummary returns the summary for the named team.
func (r *Result) TeamSummary(name string) (TeamSummary, bool) {
	for _, ts := range r.Teams {
		if ts.Team.Name == name {
			return ts, true
		}
	}
	return TeamSummary{}, false
}
