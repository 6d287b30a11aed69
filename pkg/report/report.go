// Package report renders a solved (or failed) planning run as a
// human-readable text report.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tmarec/stewardshift/core/model"
)

// Write renders the full report to w. In quiet mode only the header and
// the daily schedule are printed.
func Write(w io.Writer, res *model.Result, quiet bool) error {
	pw := &printer{w: w}
	pw.header(res)

	if !res.Usable() {
		pw.failure(res)
		return pw.err
	}

	pw.daily(res)
	if !quiet {
		pw.employees(res)
		pw.teams(res)
		pw.availability(res)
		pw.vacations(res)
		pw.violations(res)
	}
	return pw.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) title(s string) {
	bar := strings.Repeat("=", 80)
	p.printf("%s\n%s\n%s\n", bar, s, bar)
}

func (p *printer) header(res *model.Result) {
	p.title("SHIFT SCHEDULE OPTIMIZATION RESULTS")
	p.printf("\nStatus: %s\n", res.Status)
	if res.Usable() {
		p.printf("Objective Value: %.2f\n", res.Objective)
	}
	cfg := res.Config
	p.printf("Planning Period: %s to %s\n",
		cfg.StartDate.Format(time.DateOnly), cfg.EndDate().Format(time.DateOnly))
	p.printf("Total Shifts Required: %d\n\n", res.TotalShiftsRequired)
}

func (p *printer) failure(res *model.Result) {
	p.printf("\nNO USABLE SCHEDULE FOUND (%s)\n", res.Status)
	p.printf("\nPossible reasons:\n")
	p.printf("  - part-time availability conflicts with staffing requirements\n")
	p.printf("  - team distribution targets are impossible with current constraints\n")
	p.printf("  - too many vacation conflicts\n")
	p.printf("\nSuggestions:\n")
	p.printf("  - review vacation schedules for conflicts\n")
	p.printf("  - check if part-time employees have sufficient availability\n")
	p.printf("  - verify staffing requirements are realistic\n")
}

func (p *printer) daily(res *model.Result) {
	p.title("DAILY SCHEDULE")
	for _, da := range res.Daily {
		p.printf("Day %2d (%s %s): %-40s [Required: %d]\n",
			da.Day.Index+1, da.Day.Date.Format(time.DateOnly), da.Day.Weekday,
			strings.Join(da.Employees, ", "), da.Day.Required)
	}
	p.printf("\n")
}

func (p *printer) employees(res *model.Result) {
	p.title("EMPLOYEE SUMMARY")
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Employee\tTeam\tAvailable\tIdeal\tActual\tDeviation\tMax Consecutive\tViolations")
	devs := make([]float64, 0, len(res.Employees))
	for _, es := range res.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%d\t%+.2f\t%d\t%d\n",
			es.Employee.Name, es.Employee.Team, es.AvailableDays, es.IdealShifts,
			es.ActualShifts, es.Deviation(), es.MaxConsecutive, es.ViolationWindows)
		devs = append(devs, es.Deviation())
	}
	if p.err == nil {
		p.err = tw.Flush()
	}
	p.printf("Mean deviation: %+.2f shifts\n\n", stat.Mean(devs, nil))
}

func (p *printer) teams(res *model.Result) {
	p.title("TEAM SUMMARY")
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tTarget %\tActual %\tTarget Shifts\tActual Shifts\tDeviation")
	for _, ts := range res.Teams {
		actualPct := 0.0
		if res.TotalShiftsRequired > 0 {
			actualPct = float64(ts.ActualShifts) / float64(res.TotalShiftsRequired) * 100
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.2f\t%d\t%.2f\n",
			ts.Team.Name, ts.Team.TargetShare*100, actualPct,
			ts.TargetShifts, ts.ActualShifts, ts.Deviation)
	}
	if p.err == nil {
		p.err = tw.Flush()
	}
	p.printf("\n")
}

func (p *printer) availability(res *model.Result) {
	p.title("AVAILABILITY PATTERNS")
	for _, team := range res.Config.Teams {
		p.printf("\n  Team %s:\n", team.Name)
		if team.TeamDay != nil {
			p.printf("    Team Day: %s (no %s staff work on that day)\n", *team.TeamDay, team.Name)
		}
		for _, emp := range res.Config.EmployeesInTeam(team.Name) {
			names := make([]string, 0, len(emp.AvailableDays))
			for _, d := range emp.AvailableDays {
				names = append(names, d.String())
			}
			status := "Part-time"
			if len(emp.AvailableDays) == 7 {
				status = "Full-time"
			}
			p.printf("    %-10s (%-10s): %s\n", emp.Name, status, strings.Join(names, ", "))
		}
	}
	p.printf("\n")
}

func (p *printer) vacations(res *model.Result) {
	p.title("VACATION SCHEDULE")
	any := false
	for _, emp := range res.Config.Employees {
		if len(emp.Vacations) == 0 {
			continue
		}
		any = true
		p.printf("\n  %s:\n", emp.Name)
		for _, vac := range emp.Vacations {
			if vac.Start.Equal(vac.End) {
				p.printf("    - %s\n", vac.Start.Format("2006-01-02 (Mon)"))
			} else {
				p.printf("    - %s to %s (%d days)\n",
					vac.Start.Format("2006-01-02 (Mon)"), vac.End.Format("2006-01-02 (Mon)"), vac.Days())
			}
		}
	}
	if !any {
		p.printf("\n  No vacations scheduled for this period\n")
	}
	p.printf("\n")
}

func (p *printer) violations(res *model.Result) {
	p.title("CONSECUTIVE SHIFT VIOLATIONS")
	kappa := res.Config.Penalties.MaxConsecutiveShifts
	any := false
	for _, es := range res.Employees {
		runs := longRuns(res.Schedule.Assigned[es.Employee.Name], kappa)
		if len(runs) == 0 {
			continue
		}
		any = true
		p.printf("\n  %s:\n", es.Employee.Name)
		for _, r := range runs {
			start := res.Days[r.start]
			end := res.Days[r.end]
			p.printf("    %d consecutive shifts: Day %d (%s) to Day %d (%s)\n",
				r.length, r.start+1, start.Weekday, r.end+1, end.Weekday)
		}
	}
	if !any {
		p.printf("\n  No consecutive shift violations\n")
	}
	p.printf("\n")
}

type run struct{ start, end, length int }

// longRuns lists maximal worked runs strictly longer than kappa days.
func longRuns(row []bool, kappa int) []run {
	var out []run
	count, start := 0, 0
	for k, worked := range row {
		if worked {
			if count == 0 {
				start = k
			}
			count++
			continue
		}
		if count > kappa {
			out = append(out, run{start: start, end: k - 1, length: count})
		}
		count = 0
	}
	if count > kappa {
		out = append(out, run{start: start, end: len(row) - 1, length: count})
	}
	return out
}
