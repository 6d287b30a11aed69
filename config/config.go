package config

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tmarec/stewardshift/core/model"
)

// shareEpsilon is how far the team target shares may drift from 1.0.
const shareEpsilon = 0.01

var dayNameToIndex = map[string]model.Weekday{
	"monday":    model.Monday,
	"tuesday":   model.Tuesday,
	"wednesday": model.Wednesday,
	"thursday":  model.Thursday,
	"friday":    model.Friday,
	"saturday":  model.Saturday,
	"sunday":    model.Sunday,
}

// fileConfig mirrors the configuration file layout.
type fileConfig struct {
	Planning struct {
		StartDate     string `json:"start_date" validate:"required"`
		DurationWeeks int    `json:"duration_weeks"`
	} `json:"planning"`
	Staffing  map[string]int        `json:"staffing_requirements" validate:"required"`
	Teams     map[string]teamConfig `json:"teams" validate:"required,min=1"`
	Employees []employeeConfig      `json:"employees" validate:"required,min=1,dive"`
	Penalties penaltyConfig         `json:"penalties"`
	Limits    limitConfig           `json:"limits"`
}

type teamConfig struct {
	TargetPercentage float64 `json:"target_percentage" validate:"gt=0,lte=1"`
	TeamDay          string  `json:"team_day"`
}

type employeeConfig struct {
	Name          string   `json:"name" validate:"required"`
	Team          string   `json:"team" validate:"required"`
	AvailableDays []string `json:"available_days" validate:"required,min=1"`
	Vacations     []struct {
		Start string `json:"start" validate:"required"`
		End   string `json:"end" validate:"required"`
	} `json:"vacations" validate:"dive"`
}

type penaltyConfig struct {
	TeamDeviation           *float64 `json:"team_deviation" validate:"omitempty,gte=0"`
	ConsecutiveShifts       *float64 `json:"consecutive_shifts" validate:"omitempty,gte=0"`
	WeeklyShifts            *float64 `json:"weekly_shifts" validate:"omitempty,gte=0"`
	SameDayConsecutiveWeeks *float64 `json:"same_day_consecutive_weeks" validate:"omitempty,gte=0"`
}

type limitConfig struct {
	MaxConsecutiveShifts *int `json:"max_consecutive_shifts" validate:"omitempty,min=1"`
	MaxShiftsPerWeek     *int `json:"max_shifts_per_week" validate:"omitempty,min=1,max=7"`
}

// Load reads and validates a schedule configuration from a YAML or JSON
// file. Values can be overridden through STEWARD_-prefixed environment
// variables, "__" standing in for the key separator.
func Load(path string) (*model.ScheduleConfig, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("STEWARD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "steward_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := k.UnmarshalWithConf("", &fc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&fc); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return build(&fc)
}

func build(fc *fileConfig) (*model.ScheduleConfig, error) {
	start, err := parseDate(fc.Planning.StartDate)
	if err != nil {
		return nil, fmt.Errorf("planning.start_date: %w", err)
	}
	weeks := fc.Planning.DurationWeeks
	if weeks == 0 {
		weeks = 4
	}
	if weeks < 1 {
		return nil, fmt.Errorf("planning.duration_weeks must be positive, got %d", weeks)
	}

	cfg := &model.ScheduleConfig{
		StartDate:     start,
		DurationWeeks: weeks,
		Penalties:     model.DefaultPenalties(),
	}
	applyPenalties(cfg, fc)

	if err := parseStaffing(cfg, fc.Staffing); err != nil {
		return nil, err
	}
	if err := parseTeams(cfg, fc.Teams); err != nil {
		return nil, err
	}
	if err := parseEmployees(cfg, fc.Employees); err != nil {
		return nil, err
	}
	return cfg, validate(cfg)
}

func applyPenalties(cfg *model.ScheduleConfig, fc *fileConfig) {
	if v := fc.Penalties.TeamDeviation; v != nil {
		cfg.Penalties.TeamDeviation = *v
	}
	if v := fc.Penalties.ConsecutiveShifts; v != nil {
		cfg.Penalties.ConsecutiveShifts = *v
	}
	if v := fc.Penalties.WeeklyShifts; v != nil {
		cfg.Penalties.WeeklyShifts = *v
	}
	if v := fc.Penalties.SameDayConsecutiveWeeks; v != nil {
		cfg.Penalties.SameDayConsecutiveWeeks = *v
	}
	if v := fc.Limits.MaxConsecutiveShifts; v != nil {
		cfg.Penalties.MaxConsecutiveShifts = *v
	}
	if v := fc.Limits.MaxShiftsPerWeek; v != nil {
		cfg.Penalties.MaxShiftsPerWeek = *v
	}
}

func parseStaffing(cfg *model.ScheduleConfig, raw map[string]int) error {
	for name, count := range raw {
		wd, err := parseDayName(name)
		if err != nil {
			return fmt.Errorf("staffing_requirements: %w", err)
		}
		if count < 0 {
			return fmt.Errorf("staffing_requirements.%s must not be negative, got %d", name, count)
		}
		cfg.Staffing[wd] = count
	}
	return nil
}

func parseTeams(cfg *model.ScheduleConfig, raw map[string]teamConfig) error {
	// The map loses the file's ordering; sort so reports, exports and
	// model columns come out the same on every run.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	totalShare := 0.0
	for _, name := range names {
		tc := raw[name]
		team := model.Team{Name: name, TargetShare: tc.TargetPercentage}
		if tc.TeamDay != "" {
			wd, err := parseDayName(tc.TeamDay)
			if err != nil {
				return fmt.Errorf("teams.%s.team_day: %w", name, err)
			}
			team.TeamDay = &wd
		}
		cfg.Teams = append(cfg.Teams, team)
		totalShare += tc.TargetPercentage
	}
	if math.Abs(totalShare-1.0) > shareEpsilon {
		return fmt.Errorf("team target percentages must sum to 1.0, got %.2f", totalShare)
	}
	return nil
}

func parseEmployees(cfg *model.ScheduleConfig, raw []employeeConfig) error {
	for _, ec := range raw {
		emp := model.Employee{Name: ec.Name, Team: ec.Team}
		for _, dn := range ec.AvailableDays {
			wd, err := parseDayName(dn)
			if err != nil {
				return fmt.Errorf("employee %s available_days: %w", ec.Name, err)
			}
			emp.AvailableDays = append(emp.AvailableDays, wd)
		}
		for _, vc := range ec.Vacations {
			start, err := parseDate(vc.Start)
			if err != nil {
				return fmt.Errorf("employee %s vacation start: %w", ec.Name, err)
			}
			end, err := parseDate(vc.End)
			if err != nil {
				return fmt.Errorf("employee %s vacation end: %w", ec.Name, err)
			}
			if end.Before(start) {
				return fmt.Errorf("employee %s vacation ends %s before it starts %s",
					ec.Name, vc.End, vc.Start)
			}
			emp.Vacations = append(emp.Vacations, model.VacationPeriod{Start: start, End: end})
		}
		cfg.Employees = append(cfg.Employees, emp)
	}
	return nil
}

// validate cross-checks references after parsing.
func validate(cfg *model.ScheduleConfig) error {
	seenEmp := make(map[string]bool, len(cfg.Employees))
	for _, emp := range cfg.Employees {
		if seenEmp[emp.Name] {
			return fmt.Errorf("duplicate employee name %q", emp.Name)
		}
		seenEmp[emp.Name] = true
		if _, ok := cfg.TeamByName(emp.Team); !ok {
			return fmt.Errorf("employee %q belongs to undefined team %q", emp.Name, emp.Team)
		}
	}
	for _, team := range cfg.Teams {
		if len(cfg.EmployeesInTeam(team.Name)) == 0 {
			return fmt.Errorf("team %q has no employees", team.Name)
		}
	}
	return nil
}

// Warnings lists non-fatal oddities: vacations entirely outside the
// planning horizon.
func Warnings(cfg *model.ScheduleConfig) []string {
	var out []string
	for _, emp := range cfg.Employees {
		for _, vac := range emp.Vacations {
			if vac.End.Before(cfg.StartDate) || vac.Start.After(cfg.EndDate()) {
				out = append(out, fmt.Sprintf("%s's vacation %s to %s is outside planning period %s to %s",
					emp.Name, vac.Start.Format(time.DateOnly), vac.End.Format(time.DateOnly),
					cfg.StartDate.Format(time.DateOnly), cfg.EndDate().Format(time.DateOnly)))
			}
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in ISO 8601 format (YYYY-MM-DD), got %q", s)
	}
	return t, nil
}

func parseDayName(s string) (model.Weekday, error) {
	wd, ok := dayNameToIndex[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("invalid day name %q", s)
	}
	return wd, nil
}
