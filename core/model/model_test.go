package model

import (
	"testing"
	"time"
)

func TestToWeekday(t *testing.T) {
	if ToWeekday(time.Monday) != Monday {
		t.Fatalf("Monday mapped to %v", ToWeekday(time.Monday))
	}
	if ToWeekday(time.Sunday) != Sunday {
		t.Fatalf("Sunday mapped to %v", ToWeekday(time.Sunday))
	}
	if ToWeekday(time.Wednesday) != Wednesday {
		t.Fatalf("Wednesday mapped to %v", ToWeekday(time.Wednesday))
	}
}

func TestWeekdayString(t *testing.T) {
	if Monday.String() != "Mon" || Sunday.String() != "Sun" {
		t.Fatalf("names: %s %s", Monday, Sunday)
	}
	if Weekday(9).String() != "???" {
		t.Fatalf("out of range = %s", Weekday(9))
	}
}

func TestVacationPeriodContains(t *testing.T) {
	v := VacationPeriod{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	if !v.Contains(v.Start) || !v.Contains(v.End) {
		t.Fatalf("bounds must be inclusive")
	}
	if v.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day before start contained")
	}
	if v.Contains(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day after end contained")
	}
	// Time of day never matters.
	if !v.Contains(time.Date(2026, 3, 6, 23, 30, 0, 0, time.UTC)) {
		t.Fatalf("late time on last day not contained")
	}
	if got := v.Days(); got != 5 {
		t.Fatalf("Days() = %d", got)
	}
}

func TestEmployeeAvailability(t *testing.T) {
	e := Employee{
		Name:          "Alice",
		Team:          "A",
		AvailableDays: []Weekday{Monday, Wednesday},
		Vacations: []VacationPeriod{{
			Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		}},
	}
	if !e.WorksOn(Monday) || e.WorksOn(Friday) {
		t.Fatalf("weekly pattern wrong")
	}
	if !e.OnVacation(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("vacation day missed")
	}
	if e.OnVacation(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("working day flagged as vacation")
	}
}

func TestTeamDay(t *testing.T) {
	wed := Wednesday
	withDay := Team{Name: "A", TargetShare: 0.5, TeamDay: &wed}
	without := Team{Name: "B", TargetShare: 0.5}
	if !withDay.IsTeamDay(Wednesday) || withDay.IsTeamDay(Thursday) {
		t.Fatalf("team day check wrong")
	}
	if without.IsTeamDay(Wednesday) {
		t.Fatalf("nil team day must never match")
	}
}

func TestScheduleConfigTotals(t *testing.T) {
	cfg := &ScheduleConfig{
		// 2026-01-08 is a Thursday.
		StartDate:     time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		DurationWeeks: 2,
		Staffing:      [7]int{2, 1, 1, 1, 1, 0, 0},
	}
	if cfg.TotalDays() != 14 {
		t.Fatalf("TotalDays = %d", cfg.TotalDays())
	}
	if cfg.StartWeekday() != Thursday {
		t.Fatalf("StartWeekday = %v", cfg.StartWeekday())
	}
	if got, want := cfg.EndDate(), time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("EndDate = %v", got)
	}
	// Every weekday appears exactly twice over two full weeks.
	if got := cfg.TotalShiftsRequired(); got != 12 {
		t.Fatalf("TotalShiftsRequired = %d", got)
	}
}

func TestStatusUsable(t *testing.T) {
	if !StatusOptimal.Usable() || !StatusFeasibleNotProven.Usable() {
		t.Fatalf("usable statuses misreported")
	}
	for _, s := range []Status{StatusInfeasible, StatusUnbounded, StatusSolverError} {
		if s.Usable() {
			t.Fatalf("%v reported usable", s)
		}
	}
}

func TestScheduleWorking(t *testing.T) {
	s := &Schedule{Assigned: map[string][]bool{"A": {true, false, true}}}
	if !s.Working("A", 0) || s.Working("A", 1) {
		t.Fatalf("Working wrong")
	}
	if s.Working("A", 5) || s.Working("missing", 0) {
		t.Fatalf("out-of-range lookups must be false")
	}
	if s.AssignedCount("A") != 2 {
		t.Fatalf("AssignedCount = %d", s.AssignedCount("A"))
	}
}
