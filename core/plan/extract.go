package plan

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tmarec/stewardshift/core/milp"
	"github.com/tmarec/stewardshift/core/model"
)

// binaryTol is how far a solved decision value may sit from 0 or 1
// before extraction rejects it.
const binaryTol = 1e-4

// extract reads the solved decision variables into the assignment matrix
// and fills every summary statistic by scanning that matrix. Auxiliary
// solver variables are deliberately never read back: the statistics must
// match what a direct scan computes.
func extract(cfg *model.ScheduleConfig, days []model.PlanningDay, avail Availability,
	ideals map[string]float64, bm *builtModel, sol *milp.Solution, res *model.Result) error {

	sched := &model.Schedule{
		Days:     days,
		Assigned: make(map[string][]bool, len(cfg.Employees)),
	}
	for _, emp := range cfg.Employees {
		row := make([]bool, len(days))
		for k, col := range bm.x[emp.Name] {
			if col < 0 {
				continue
			}
			v := sol.Values[col]
			r := math.Round(v)
			if math.Abs(v-r) > binaryTol || (r != 0 && r != 1) {
				return &ExtractionError{Variable: bm.m.Vars()[col].Name, Value: v}
			}
			row[k] = r == 1
		}
		sched.Assigned[emp.Name] = row
	}

	res.Schedule = sched
	res.Objective = sol.Objective
	res.Daily = dailyAssignments(cfg, sched)
	res.Employees = employeeSummaries(cfg, sched, avail, ideals)
	res.Teams = teamSummaries(cfg, res.Employees)
	res.Breakdown = breakdown(cfg, res)
	return nil
}

func dailyAssignments(cfg *model.ScheduleConfig, sched *model.Schedule) []model.DailyAssignment {
	out := make([]model.DailyAssignment, len(sched.Days))
	for k, day := range sched.Days {
		var names []string
		for _, emp := range cfg.Employees {
			if sched.Working(emp.Name, k) {
				names = append(names, emp.Name)
			}
		}
		out[k] = model.DailyAssignment{Day: day, Employees: names, Actual: len(names)}
	}
	return out
}

func employeeSummaries(cfg *model.ScheduleConfig, sched *model.Schedule, avail Availability,
	ideals map[string]float64) []model.EmployeeSchedule {

	kappa := cfg.Penalties.MaxConsecutiveShifts
	mu := cfg.Penalties.MaxShiftsPerWeek
	out := make([]model.EmployeeSchedule, 0, len(cfg.Employees))
	for _, emp := range cfg.Employees {
		row := sched.Assigned[emp.Name]
		var assigned []int
		for k, w := range row {
			if w {
				assigned = append(assigned, k)
			}
		}
		out = append(out, model.EmployeeSchedule{
			Employee:             emp,
			AssignedDays:         assigned,
			AvailableDays:        avail.AvailableDays(emp.Name),
			IdealShifts:          ideals[emp.Name],
			ActualShifts:         len(assigned),
			MaxConsecutive:       maxRun(row),
			ViolationWindows:     violationWindows(row, kappa),
			ExcessWeeks:          excessWeeks(row, mu),
			RepeatedWeekdayPairs: repeatedWeekdayPairs(row),
		})
	}
	return out
}

func teamSummaries(cfg *model.ScheduleConfig, emps []model.EmployeeSchedule) []model.TeamSummary {
	total := float64(cfg.TotalShiftsRequired())
	out := make([]model.TeamSummary, 0, len(cfg.Teams))
	for _, team := range cfg.Teams {
		actual := 0
		for _, es := range emps {
			if es.Employee.Team == team.Name {
				actual += es.ActualShifts
			}
		}
		target := team.TargetShare * total
		out = append(out, model.TeamSummary{
			Team:         team,
			TargetShifts: target,
			ActualShifts: actual,
			Deviation:    math.Abs(target - float64(actual)),
		})
	}
	return out
}

// breakdown recomputes each weighted objective term from the matrix-based
// statistics. For an optimal solution its total equals the solver's
// objective value up to floating-point noise.
func breakdown(cfg *model.ScheduleConfig, res *model.Result) model.ObjectiveBreakdown {
	pen := cfg.Penalties
	var b model.ObjectiveBreakdown

	devs := make([]float64, len(res.Employees))
	for i, es := range res.Employees {
		devs[i] = math.Abs(es.Deviation())
	}
	b.Fairness = floats.Sum(devs)

	for _, ts := range res.Teams {
		b.TeamDeviation += pen.TeamDeviation * ts.Deviation
	}
	for _, es := range res.Employees {
		b.Consecutive += pen.ConsecutiveShifts * float64(es.ViolationWindows)
		b.SameWeekday += pen.SameDayConsecutiveWeeks * float64(es.RepeatedWeekdayPairs)
	}
	for _, es := range res.Employees {
		row := res.Schedule.Assigned[es.Employee.Name]
		b.WeeklyExcess += pen.WeeklyShifts * float64(totalWeeklyExcess(row, pen.MaxShiftsPerWeek))
	}
	return b
}

func maxRun(row []bool) int {
	best, run := 0, 0
	for _, w := range row {
		if w {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// violationWindows counts every window of kappa+1 consecutive worked
// days, overlapping windows included.
func violationWindows(row []bool, kappa int) int {
	count := 0
	for k := 0; k+kappa < len(row); k++ {
		all := true
		for j := k; j <= k+kappa; j++ {
			if !row[j] {
				all = false
				break
			}
		}
		if all {
			count++
		}
	}
	return count
}

func weekCount(row []bool, w int) int {
	n := 0
	for k := w * 7; k < (w+1)*7 && k < len(row); k++ {
		if row[k] {
			n++
		}
	}
	return n
}

func excessWeeks(row []bool, mu int) int {
	weeks := (len(row) + 6) / 7
	n := 0
	for w := 0; w < weeks; w++ {
		if weekCount(row, w) > mu {
			n++
		}
	}
	return n
}

func totalWeeklyExcess(row []bool, mu int) int {
	weeks := (len(row) + 6) / 7
	total := 0
	for w := 0; w < weeks; w++ {
		if c := weekCount(row, w); c > mu {
			total += c - mu
		}
	}
	return total
}

func repeatedWeekdayPairs(row []bool) int {
	weeks := (len(row) + 6) / 7
	n := 0
	for w := 0; w+1 < weeks; w++ {
		for d := 0; d < 7; d++ {
			a, b := w*7+d, (w+1)*7+d
			if b < len(row) && row[a] && row[b] {
				n++
			}
		}
	}
	return n
}
