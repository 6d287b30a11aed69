package model

import "time"

// Default penalty weights and thresholds applied when the configuration
// omits them. Team deviation dominates everything else on purpose: a team
// missing its share is considered far worse than an uneven week.
const (
	DefaultPenaltyTeamDeviation      = 10000
	DefaultPenaltyConsecutiveShifts  = 50
	DefaultPenaltyWeeklyShifts       = 25
	DefaultPenaltySameDayConsecutive = 5
	DefaultMaxConsecutiveShifts      = 3
	DefaultMaxShiftsPerWeek          = 5
)

// PenaltyConfig holds the soft-constraint weights and thresholds.
// A weight of 0 disables the corresponding term entirely.
type PenaltyConfig struct {
	TeamDeviation           float64 `json:"team_deviation"`
	ConsecutiveShifts       float64 `json:"consecutive_shifts"`
	WeeklyShifts            float64 `json:"weekly_shifts"`
	SameDayConsecutiveWeeks float64 `json:"same_day_consecutive_weeks"`

	// MaxConsecutiveShifts is the longest run worked without triggering
	// the consecutive-shift penalty.
	MaxConsecutiveShifts int `json:"max_consecutive_shifts"`
	// MaxShiftsPerWeek is the number of shifts per 7-day block above which
	// the weekly-excess penalty applies.
	MaxShiftsPerWeek int `json:"max_shifts_per_week"`
}

// DefaultPenalties returns the penalty configuration used when the file
// omits the penalties section.
func DefaultPenalties() PenaltyConfig {
	return PenaltyConfig{
		TeamDeviation:           DefaultPenaltyTeamDeviation,
		ConsecutiveShifts:       DefaultPenaltyConsecutiveShifts,
		WeeklyShifts:            DefaultPenaltyWeeklyShifts,
		SameDayConsecutiveWeeks: DefaultPenaltySameDayConsecutive,
		MaxConsecutiveShifts:    DefaultMaxConsecutiveShifts,
		MaxShiftsPerWeek:        DefaultMaxShiftsPerWeek,
	}
}

// ScheduleConfig is the complete immutable input of a planning run.
type ScheduleConfig struct {
	StartDate     time.Time
	DurationWeeks int
	// Staffing holds the required head count per weekday (Monday=0).
	Staffing  [7]int
	Teams     []Team
	Employees []Employee
	Penalties PenaltyConfig
}

// TotalDays returns the horizon length in days.
func (c *ScheduleConfig) TotalDays() int { return c.DurationWeeks * 7 }

// EndDate returns the last calendar date of the horizon.
func (c *ScheduleConfig) EndDate() time.Time {
	return c.StartDate.AddDate(0, 0, c.TotalDays()-1)
}

// StartWeekday returns the weekday of the first planning day.
func (c *ScheduleConfig) StartWeekday() Weekday { return ToWeekday(c.StartDate.Weekday()) }

// TotalShiftsRequired sums the staffing requirement over the horizon.
func (c *ScheduleConfig) TotalShiftsRequired() int {
	start := int(c.StartWeekday())
	total := 0
	for k := 0; k < c.TotalDays(); k++ {
		total += c.Staffing[(start+k)%7]
	}
	return total
}

// TeamByName returns the team with the given name.
func (c *ScheduleConfig) TeamByName(name string) (Team, bool) {
	for _, t := range c.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// EmployeesInTeam returns the employees belonging to the named team,
// in configuration order.
func (c *ScheduleConfig) EmployeesInTeam(name string) []Employee {
	var out []Employee
	for _, e := range c.Employees {
		if e.Team == name {
			out = append(out, e)
		}
	}
	return out
}
