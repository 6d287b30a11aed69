// Package export writes a solved schedule to CSV in two layouts: flat
// assignment rows and an employee-by-date matrix suitable for
// spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tmarec/stewardshift/core/model"
)

// DefaultShiftMarker is the cell content marking a worked day in the
// matrix layout.
const DefaultShiftMarker = "X"

// WriteSimpleCSV writes one row per assignment: Date, Day_of_Week,
// Employee, in chronological order.
func WriteSimpleCSV(w io.Writer, res *model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Day_of_Week", "Employee"}); err != nil {
		return err
	}
	for _, da := range res.Daily {
		for _, name := range da.Employees {
			rec := []string{
				da.Day.Date.Format(time.DateOnly),
				da.Day.Weekday.String(),
				name,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixCSV writes the schedule as a matrix: one row per employee,
// one column per date, grouped by team with a header row per team and a
// TOTAL row of COUNTIF formulas usable in a spreadsheet.
func WriteMatrixCSV(w io.Writer, res *model.Result, marker string) error {
	if marker == "" {
		marker = DefaultShiftMarker
	}
	cw := csv.NewWriter(w)

	header := []string{"Employee"}
	for _, day := range res.Days {
		header = append(header, fmt.Sprintf("%s %s", day.Date.Format(time.DateOnly), day.Weekday))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	// Row 1 is the header; formulas below reference data rows only.
	currentRow := 2
	for _, team := range res.Config.Teams {
		teamHeader := make([]string, len(header))
		teamHeader[0] = fmt.Sprintf("--- %s ---", team.Name)
		if err := cw.Write(teamHeader); err != nil {
			return err
		}
		currentRow++

		emps := res.Config.EmployeesInTeam(team.Name)
		sort.Slice(emps, func(i, j int) bool { return emps[i].Name < emps[j].Name })
		for _, emp := range emps {
			rec := []string{emp.Name}
			for k := range res.Days {
				if res.Schedule.Working(emp.Name, k) {
					rec = append(rec, marker)
				} else {
					rec = append(rec, "")
				}
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
			currentRow++
		}
	}

	total := []string{"TOTAL"}
	lastDataRow := currentRow - 1
	for col := range res.Days {
		letter := columnLetter(col + 1)
		total = append(total, fmt.Sprintf("=COUNTIF(%s2:%s%d,%q)", letter, letter, lastDataRow, marker))
	}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// columnLetter converts a 0-based column index to its spreadsheet letter
// (A, B, ..., Z, AA, AB, ...).
func columnLetter(index int) string {
	out := ""
	index++
	for index > 0 {
		index--
		out = string(rune('A'+index%26)) + out
		index /= 26
	}
	return out
}
