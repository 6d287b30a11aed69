package plan

import (
	"time"

	"github.com/tmarec/stewardshift/core/model"
)

// monday is 2026-01-05, a Monday, used as horizon start in most tests.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func allWeek() []model.Weekday {
	return []model.Weekday{
		model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
		model.Friday, model.Saturday, model.Sunday,
	}
}

func weekdaysOnly() []model.Weekday {
	return []model.Weekday{
		model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday,
	}
}

func singleTeamConfig(weeks int, staffing [7]int, emps ...model.Employee) *model.ScheduleConfig {
	return &model.ScheduleConfig{
		StartDate:     monday,
		DurationWeeks: weeks,
		Staffing:      staffing,
		Teams:         []model.Team{{Name: "T", TargetShare: 1.0}},
		Employees:     emps,
		Penalties:     model.DefaultPenalties(),
	}
}

func employee(name string, days ...model.Weekday) model.Employee {
	return model.Employee{Name: name, Team: "T", AvailableDays: days}
}

func everyDay(n int) [7]int {
	return [7]int{n, n, n, n, n, n, n}
}
