// Package config loads the plant configuration: the lead-time table, the
// scheduling rules, the stock-model catalog and the fixtures.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"production/internal/core/domain/model/leadtime"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only plant configuration version this build reads.
const CurrentVersion = 1

// Plant is the decoded plant configuration file.
//
//	version: 1
//	leadTimes:
//	  defaultDwellDays: 7
//	  departments:
//	    - name: P1 Production Queue
//	      expectedDwellDays: 7
//	    - name: Finish
//	      expectedDwellDays: 7
//	      adjustedDwellDays: 14
//	scheduling:
//	  lookAheadDays: 60
//	  excludedWeekdays: [friday]
//	  adjustmentWeekday: monday
//	  entryDepartments: [P1 Production Queue, Layup/Plugging]
//	stockModels: [cf_chalk_branch]
//	fixtures:
//	  - id: M-01
//	    compatibleModels: [cf_chalk_branch]
//	    dailyCapacity: 2
type Plant struct {
	Version     int        `yaml:"version"`
	LeadTimes   LeadTimes  `yaml:"leadTimes"`
	Scheduling  Scheduling `yaml:"scheduling"`
	StockModels []string   `yaml:"stockModels" validate:"dive,required"`
	Fixtures    []Fixture  `yaml:"fixtures" validate:"dive"`
}

type LeadTimes struct {
	DefaultDwellDays *int         `yaml:"defaultDwellDays" validate:"omitempty,min=0"`
	Departments      []Department `yaml:"departments" validate:"dive"`
}

type Department struct {
	Name              string `yaml:"name" validate:"required"`
	ExpectedDwellDays int    `yaml:"expectedDwellDays" validate:"min=0"`
	AdjustedDwellDays *int   `yaml:"adjustedDwellDays" validate:"omitempty,min=0"`
}

type Scheduling struct {
	LookAheadDays     int      `yaml:"lookAheadDays" validate:"omitempty,min=1"`
	ExcludedWeekdays  []string `yaml:"excludedWeekdays"`
	AdjustmentWeekday string   `yaml:"adjustmentWeekday"`
	EntryDepartments  []string `yaml:"entryDepartments" validate:"dive,required"`
}

type Fixture struct {
	ID               string   `yaml:"id" validate:"required"`
	Name             string   `yaml:"name"`
	CompatibleModels []string `yaml:"compatibleModels" validate:"dive,required"`
	DailyCapacity    int      `yaml:"dailyCapacity" validate:"min=0"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled reports the effective enabled flag.
func (f Fixture) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and parses the file at path.
func Load(path string) (Plant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plant{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	plant, err := Parse(data)
	if err != nil {
		return Plant{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return plant, nil
}

// Parse decodes and validates a plant configuration. Unknown keys are rejected.
func Parse(data []byte) (Plant, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Plant{}, errs.NewValueIsRequiredError("plant configuration")
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var plant Plant
	if err := decoder.Decode(&plant); err != nil {
		return Plant{}, errs.NewValueIsInvalidErrorWithCause("plant configuration", err)
	}
	if plant.Version != CurrentVersion {
		return Plant{}, errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("got %d, want %d", plant.Version, CurrentVersion),
		)
	}
	if err := validate.Struct(plant); err != nil {
		return Plant{}, errs.NewValueIsInvalidErrorWithCause("plant configuration", err)
	}

	// Domain rules of the table and the engine options.
	if _, err := plant.LeadTimeTable(); err != nil {
		return Plant{}, err
	}
	if _, err := plant.ScheduleOptions(); err != nil {
		return Plant{}, err
	}

	return plant, nil
}

// LeadTimeTable builds the lead-time table. Without departments it is the
// plant's standard line.
func (p Plant) LeadTimeTable() (leadtime.Table, error) {
	if len(p.LeadTimes.Departments) == 0 {
		return leadtime.DefaultTable(), nil
	}

	defaultDwell := leadtime.DefaultDwellDays
	if p.LeadTimes.DefaultDwellDays != nil {
		defaultDwell = *p.LeadTimes.DefaultDwellDays
	}

	stages := make([]leadtime.Stage, 0, len(p.LeadTimes.Departments))
	for _, d := range p.LeadTimes.Departments {
		stages = append(stages, leadtime.Stage{
			Department:        d.Name,
			ExpectedDwellDays: d.ExpectedDwellDays,
			AdjustedDwellDays: d.AdjustedDwellDays,
		})
	}
	return leadtime.NewTable(stages, defaultDwell)
}

// ScheduleOptions merges the scheduling section over the defaults and
// checks it by building an engine.
func (p Plant) ScheduleOptions() (services.ScheduleOptions, error) {
	options := services.DefaultScheduleOptions()
	if p.Scheduling.LookAheadDays > 0 {
		options.LookAheadDays = p.Scheduling.LookAheadDays
	}
	if len(p.Scheduling.EntryDepartments) > 0 {
		options.EntryDepartments = append([]string(nil), p.Scheduling.EntryDepartments...)
	}
	options.StockModelCatalog = append([]string(nil), p.StockModels...)

	var problems []error
	if p.Scheduling.ExcludedWeekdays != nil {
		options.ExcludedWeekdays = make([]time.Weekday, 0, len(p.Scheduling.ExcludedWeekdays))
		for _, name := range p.Scheduling.ExcludedWeekdays {
			wd, err := ParseWeekday(name)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			options.ExcludedWeekdays = append(options.ExcludedWeekdays, wd)
		}
	}
	if p.Scheduling.AdjustmentWeekday != "" {
		wd, err := ParseWeekday(p.Scheduling.AdjustmentWeekday)
		if err != nil {
			problems = append(problems, err)
		}
		options.AdjustmentWeekday = wd
	}
	if err := errors.Join(problems...); err != nil {
		return services.ScheduleOptions{}, err
	}

	if _, err := services.NewScheduleEngine(options); err != nil {
		return services.ScheduleOptions{}, err
	}
	return options, nil
}

// ParseWeekday accepts full English weekday names and their three-letter
// abbreviations, in any case.
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return wd, nil
		}
	}
	return time.Sunday, errs.NewValueIsInvalidErrorWithCause("weekday", fmt.Errorf("%q is not a weekday", name))
}
