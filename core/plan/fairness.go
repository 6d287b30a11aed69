package plan

import "github.com/tmarec/stewardshift/core/model"

// IdealShifts computes each employee's fairness target: the team's share
// of the total required shifts, split across members proportionally to
// their available-day counts. A team with zero available employee-days
// gets all-zero targets; its missed share shows up as team deviation in
// the objective, not as an error.
func IdealShifts(cfg *model.ScheduleConfig, avail Availability) map[string]float64 {
	total := float64(cfg.TotalShiftsRequired())
	ideals := make(map[string]float64, len(cfg.Employees))

	for _, team := range cfg.Teams {
		members := cfg.EmployeesInTeam(team.Name)
		teamDays := 0
		for _, emp := range members {
			teamDays += avail.AvailableDays(emp.Name)
		}
		target := team.TargetShare * total
		for _, emp := range members {
			if teamDays == 0 {
				ideals[emp.Name] = 0
				continue
			}
			ideals[emp.Name] = float64(avail.AvailableDays(emp.Name)) / float64(teamDays) * target
		}
	}
	return ideals
}
