package plan

import (
	"fmt"
	"math"

	"github.com/tmarec/stewardshift/core/milp"
	"github.com/tmarec/stewardshift/core/model"
)

// builtModel keeps the column bookkeeping needed to read a solution back.
type builtModel struct {
	m *milp.Model

	// x maps employee name to per-day decision columns; -1 marks an
	// unavailable pair, which has no column and is fixed at 0.
	x map[string][]int

	shiftCount map[string]int // S_i
	fairDev    map[string]int // Z_i
	teamCount  map[string]int // St_t
	teamDev    map[string]int // Dt_t

	consecutive []int // C windows
	weekly      []int // W excess
	sameWeekday []int // R repeated-weekday flags
}

// buildModel assembles the full MILP: staffing equalities as hard rows,
// availability by construction (no column for unavailable pairs) and the
// five soft terms as linearized auxiliaries. Soft families whose weight
// is 0 are not constructed at all.
func buildModel(cfg *model.ScheduleConfig, days []model.PlanningDay, avail Availability, ideals map[string]float64) *builtModel {
	bm := &builtModel{
		m:          milp.NewModel(),
		x:          make(map[string][]int, len(cfg.Employees)),
		shiftCount: make(map[string]int, len(cfg.Employees)),
		fairDev:    make(map[string]int, len(cfg.Employees)),
		teamCount:  make(map[string]int, len(cfg.Teams)),
		teamDev:    make(map[string]int, len(cfg.Teams)),
	}
	m := bm.m
	total := float64(cfg.TotalShiftsRequired())

	// Decision variables, available pairs only.
	for _, emp := range cfg.Employees {
		cols := make([]int, len(days))
		for k := range days {
			cols[k] = -1
			if avail[emp.Name][k] {
				cols[k] = m.AddBinary(fmt.Sprintf("x_%s_%d", emp.Name, k))
			}
		}
		bm.x[emp.Name] = cols
	}

	// Exact staffing per day. A day nobody can cover keeps its row so the
	// solver reports the infeasibility rather than the builder guessing.
	for k, day := range days {
		var terms []milp.Term
		for _, emp := range cfg.Employees {
			if col := bm.x[emp.Name][k]; col >= 0 {
				terms = append(terms, milp.Term{Col: col, Coef: 1})
			}
		}
		m.AddConstraint(fmt.Sprintf("staffing_%d", k), terms, milp.EQ, float64(day.Required))
	}

	// Shift counts and fairness deviations. Fairness carries unit weight.
	for _, emp := range cfg.Employees {
		s := m.AddInteger("S_"+emp.Name, total)
		bm.shiftCount[emp.Name] = s
		terms := []milp.Term{{Col: s, Coef: 1}}
		for k := range days {
			if col := bm.x[emp.Name][k]; col >= 0 {
				terms = append(terms, milp.Term{Col: col, Coef: -1})
			}
		}
		m.AddConstraint("count_"+emp.Name, terms, milp.EQ, 0)

		z := m.AddContinuous("Z_"+emp.Name, math.Inf(1))
		bm.fairDev[emp.Name] = z
		ideal := ideals[emp.Name]
		m.AddConstraint("fair_lo_"+emp.Name,
			[]milp.Term{{Col: z, Coef: 1}, {Col: s, Coef: 1}}, milp.GE, ideal)
		m.AddConstraint("fair_hi_"+emp.Name,
			[]milp.Term{{Col: z, Coef: 1}, {Col: s, Coef: -1}}, milp.GE, -ideal)
		m.SetObjectiveCoef(z, 1)
	}

	// Team totals and their deviation from the target share.
	if cfg.Penalties.TeamDeviation > 0 {
		for _, team := range cfg.Teams {
			st := m.AddContinuous("St_"+team.Name, total)
			bm.teamCount[team.Name] = st
			terms := []milp.Term{{Col: st, Coef: 1}}
			for _, emp := range cfg.EmployeesInTeam(team.Name) {
				terms = append(terms, milp.Term{Col: bm.shiftCount[emp.Name], Coef: -1})
			}
			m.AddConstraint("teamcount_"+team.Name, terms, milp.EQ, 0)

			target := team.TargetShare * total
			dt := m.AddContinuous("Dt_"+team.Name, math.Inf(1))
			bm.teamDev[team.Name] = dt
			m.AddConstraint("teamdev_lo_"+team.Name,
				[]milp.Term{{Col: dt, Coef: 1}, {Col: st, Coef: 1}}, milp.GE, target)
			m.AddConstraint("teamdev_hi_"+team.Name,
				[]milp.Term{{Col: dt, Coef: 1}, {Col: st, Coef: -1}}, milp.GE, -target)
			m.SetObjectiveCoef(dt, cfg.Penalties.TeamDeviation)
		}
	}

	if cfg.Penalties.ConsecutiveShifts > 0 {
		bm.addConsecutiveWindows(cfg, days)
	}
	if cfg.Penalties.WeeklyShifts > 0 {
		bm.addWeeklyExcess(cfg, days)
	}
	if cfg.Penalties.SameDayConsecutiveWeeks > 0 {
		bm.addSameWeekday(cfg, days)
	}
	return bm
}

// addConsecutiveWindows flags every fully-worked window of kappa+1 days.
// A run of kappa+2 days raises two overlapping flags: longer runs are
// meant to cost more.
func (bm *builtModel) addConsecutiveWindows(cfg *model.ScheduleConfig, days []model.PlanningDay) {
	kappa := cfg.Penalties.MaxConsecutiveShifts
	for _, emp := range cfg.Employees {
		cols := bm.x[emp.Name]
		for k := 0; k+kappa < len(days); k++ {
			var terms []milp.Term
			for j := k; j <= k+kappa; j++ {
				if cols[j] >= 0 {
					terms = append(terms, milp.Term{Col: cols[j], Coef: -1})
				}
			}
			// The window cannot be fully worked if some day is unavailable.
			if len(terms) < kappa+1 {
				continue
			}
			c := bm.m.AddBinary(fmt.Sprintf("C_%s_%d", emp.Name, k))
			terms = append(terms, milp.Term{Col: c, Coef: 1})
			bm.m.AddConstraint(fmt.Sprintf("consec_%s_%d", emp.Name, k),
				terms, milp.GE, -float64(kappa))
			bm.m.SetObjectiveCoef(c, cfg.Penalties.ConsecutiveShifts)
			bm.consecutive = append(bm.consecutive, c)
		}
	}
}

// addWeeklyExcess penalizes shifts above mu inside each 7-day block
// anchored at the horizon start.
func (bm *builtModel) addWeeklyExcess(cfg *model.ScheduleConfig, days []model.PlanningDay) {
	mu := cfg.Penalties.MaxShiftsPerWeek
	weeks := (len(days) + 6) / 7
	for _, emp := range cfg.Employees {
		cols := bm.x[emp.Name]
		for w := 0; w < weeks; w++ {
			var terms []milp.Term
			for k := w * 7; k < (w+1)*7 && k < len(days); k++ {
				if cols[k] >= 0 {
					terms = append(terms, milp.Term{Col: cols[k], Coef: -1})
				}
			}
			if len(terms) <= mu {
				continue
			}
			e := bm.m.AddInteger(fmt.Sprintf("W_%s_%d", emp.Name, w), 7)
			terms = append(terms, milp.Term{Col: e, Coef: 1})
			bm.m.AddConstraint(fmt.Sprintf("week_%s_%d", emp.Name, w),
				terms, milp.GE, -float64(mu))
			bm.m.SetObjectiveCoef(e, cfg.Penalties.WeeklyShifts)
			bm.weekly = append(bm.weekly, e)
		}
	}
}

// addSameWeekday flags working the same weekday in two adjacent 7-day
// blocks, discouraging frozen week-to-week rotations.
func (bm *builtModel) addSameWeekday(cfg *model.ScheduleConfig, days []model.PlanningDay) {
	weeks := (len(days) + 6) / 7
	for _, emp := range cfg.Employees {
		cols := bm.x[emp.Name]
		for w := 0; w+1 < weeks; w++ {
			for d := 0; d < 7; d++ {
				a, b := w*7+d, (w+1)*7+d
				if b >= len(days) || cols[a] < 0 || cols[b] < 0 {
					continue
				}
				r := bm.m.AddBinary(fmt.Sprintf("R_%s_%d_%d", emp.Name, w, d))
				bm.m.AddConstraint(fmt.Sprintf("repeat_%s_%d_%d", emp.Name, w, d),
					[]milp.Term{{Col: r, Coef: 1}, {Col: cols[a], Coef: -1}, {Col: cols[b], Coef: -1}},
					milp.GE, -1)
				bm.m.SetObjectiveCoef(r, cfg.Penalties.SameDayConsecutiveWeeks)
				bm.sameWeekday = append(bm.sameWeekday, r)
			}
		}
	}
}
