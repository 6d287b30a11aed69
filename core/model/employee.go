package model

import "time"

// Weekday indexes days Monday=0 through Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Weekday) String() string {
	if d < 0 || d > 6 {
		return "???"
	}
	return weekdayNames[d]
}

// ToWeekday converts a time.Weekday (Sunday=0) to the Monday=0 convention
// used throughout the planner.
func ToWeekday(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// VacationPeriod is an inclusive date interval during which an employee
// cannot be assigned. Periods may overlap or touch; availability treats
// them as a union.
type VacationPeriod struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the period,
// bounds included. Only the calendar date is compared.
func (v VacationPeriod) Contains(day time.Time) bool {
	d := truncateDate(day)
	return !d.Before(truncateDate(v.Start)) && !d.After(truncateDate(v.End))
}

// Days returns the inclusive length of the period in days.
func (v VacationPeriod) Days() int {
	return int(truncateDate(v.End).Sub(truncateDate(v.Start)).Hours()/24) + 1
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Employee is a roster member with a weekly availability pattern and
// vacation intervals. Each employee belongs to exactly one team.
type Employee struct {
	Name          string
	Team          string
	AvailableDays []Weekday
	Vacations     []VacationPeriod
}

// WorksOn reports whether the weekly pattern includes the given weekday.
func (e Employee) WorksOn(d Weekday) bool {
	for _, w := range e.AvailableDays {
		if w == d {
			return true
		}
	}
	return false
}

// OnVacation reports whether the date falls in any vacation period.
func (e Employee) OnVacation(day time.Time) bool {
	for _, v := range e.Vacations {
		if v.Contains(day) {
			return true
		}
	}
	return false
}

// Team groups employees under a target share of all shifts. TeamDay, when
// set, is a weekday on which no member of the team is ever assigned.
type Team struct {
	Name        string
	TargetShare float64
	TeamDay     *Weekday
}

// IsTeamDay reports whether the given weekday is the team's off day.
func (t Team) IsTeamDay(d Weekday) bool {
	return t.TeamDay != nil && *t.TeamDay == d
}
