package plan

import (
	"github.com/tmarec/stewardshift/core/model"
)

// Availability holds the resolved per-employee, per-day availability.
// Rows are indexed like the planning-day slice.
type Availability map[string][]bool

// AvailableDays returns the employee's count of available days.
func (a Availability) AvailableDays(employee string) int {
	n := 0
	for _, ok := range a[employee] {
		if ok {
			n++
		}
	}
	return n
}

// BuildCalendar resolves the horizon into planning days and the
// availability matrix. A day is available when the weekly pattern covers
// its weekday, no vacation period contains its date and it is not the
// employee's team day.
//
// It fails with a ConfigurationError when some weekday requires staff but
// no employee could ever work it; solving would only surface that later
// as a bare infeasibility.
func BuildCalendar(cfg *model.ScheduleConfig) ([]model.PlanningDay, Availability, error) {
	start := int(cfg.StartWeekday())
	days := make([]model.PlanningDay, cfg.TotalDays())
	for k := range days {
		wd := model.Weekday((start + k) % 7)
		days[k] = model.PlanningDay{
			Index:    k,
			Date:     cfg.StartDate.AddDate(0, 0, k),
			Weekday:  wd,
			Week:     k / 7,
			Required: cfg.Staffing[wd],
		}
	}

	if err := checkWeekdayCoverage(cfg); err != nil {
		return nil, nil, err
	}

	avail := make(Availability, len(cfg.Employees))
	for _, emp := range cfg.Employees {
		team, _ := cfg.TeamByName(emp.Team)
		row := make([]bool, len(days))
		for k, day := range days {
			if team.IsTeamDay(day.Weekday) {
				continue
			}
			row[k] = emp.WorksOn(day.Weekday) && !emp.OnVacation(day.Date)
		}
		avail[emp.Name] = row
	}
	return days, avail, nil
}

// checkWeekdayCoverage verifies that every weekday with a staffing
// requirement has at least one employee whose pattern covers it, team
// days excluded. Vacations are ignored here: they are transient, this
// check is about the roster shape.
func checkWeekdayCoverage(cfg *model.ScheduleConfig) error {
	for wd := model.Weekday(0); wd < 7; wd++ {
		if cfg.Staffing[wd] == 0 {
			continue
		}
		covered := false
		for _, emp := range cfg.Employees {
			team, _ := cfg.TeamByName(emp.Team)
			if !team.IsTeamDay(wd) && emp.WorksOn(wd) {
				covered = true
				break
			}
		}
		if !covered {
			return configErrorf("staffing requires %d on %s but no employee can ever work that day",
				cfg.Staffing[wd], wd)
		}
	}
	return nil
}
