package plan

import (
	"math"
	"testing"

	"github.com/tmarec/stewardshift/core/model"
)

func TestIdealShiftsProportionalToAvailability(t *testing.T) {
	// Part works 3 of 7 days, Full works 7 of 7.
	cfg := singleTeamConfig(1, everyDay(1),
		employee("Part", model.Monday, model.Wednesday, model.Friday),
		employee("Full", allWeek()...))

	_, avail, err := BuildCalendar(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ideals := IdealShifts(cfg, avail)

	// 10 available employee-days split a target of 7 shifts.
	if got, want := ideals["Part"], 3.0/10.0*7.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Part ideal %v want %v", got, want)
	}
	if got, want := ideals["Full"], 7.0/10.0*7.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Full ideal %v want %v", got, want)
	}
}

func TestIdealShiftsSplitAcrossTeams(t *testing.T) {
	cfg := &model.ScheduleConfig{
		StartDate:     monday,
		DurationWeeks: 1,
		Staffing:      everyDay(2), // 14 total
		Teams: []model.Team{
			{Name: "A", TargetShare: 0.5},
			{Name: "B", TargetShare: 0.5},
		},
		Employees: []model.Employee{
			{Name: "A1", Team: "A", AvailableDays: allWeek()},
			{Name: "A2", Team: "A", AvailableDays: allWeek()},
			{Name: "B1", Team: "B", AvailableDays: allWeek()},
		},
		Penalties: model.DefaultPenalties(),
	}

	_, avail, err := BuildCalendar(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ideals := IdealShifts(cfg, avail)

	if math.Abs(ideals["A1"]-3.5) > 1e-9 || math.Abs(ideals["A2"]-3.5) > 1e-9 {
		t.Fatalf("team A ideals wrong: %v %v", ideals["A1"], ideals["A2"])
	}
	if math.Abs(ideals["B1"]-7) > 1e-9 {
		t.Fatalf("team B ideal wrong: %v", ideals["B1"])
	}
}

func TestIdealShiftsZeroAvailabilityTeam(t *testing.T) {
	// Bob's whole horizon is vacation; his team cannot meet its share and
	// every member target collapses to zero without error.
	bob := model.Employee{
		Name: "Bob", Team: "B", AvailableDays: allWeek(),
		Vacations: []model.VacationPeriod{{Start: date("2026-01-05"), End: date("2026-01-11")}},
	}
	cfg := &model.ScheduleConfig{
		StartDate:     monday,
		DurationWeeks: 1,
		Staffing:      everyDay(1),
		Teams: []model.Team{
			{Name: "A", TargetShare: 0.5},
			{Name: "B", TargetShare: 0.5},
		},
		Employees: []model.Employee{
			{Name: "Alice", Team: "A", AvailableDays: allWeek()},
			bob,
		},
		Penalties: model.DefaultPenalties(),
	}

	_, avail, err := BuildCalendar(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ideals := IdealShifts(cfg, avail)
	if ideals["Bob"] != 0 {
		t.Fatalf("expected zero ideal for Bob, got %v", ideals["Bob"])
	}
	if math.Abs(ideals["Alice"]-3.5) > 1e-9 {
		t.Fatalf("Alice ideal wrong: %v", ideals["Alice"])
	}
}
