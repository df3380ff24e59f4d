package model

import (
	"fmt"
	"math"
)

// DefaultTimeHorizon is the base budget-impact horizon in years.
const DefaultTimeHorizon = 5

// MaxExtendedHorizonYears bounds the extrapolated horizon.
const MaxExtendedHorizonYears = 50

// Inputs is the full configuration for one budget impact run.
type Inputs struct {
	Population PopulationConfig `yaml:"population" json:"population"`
	Market     MarketConfig     `yaml:"market" json:"market"`
	Costs      CostConfig       `yaml:"costs" json:"costs"`
	Country    CountryConfig    `yaml:"country" json:"country"`

	TimeHorizonYears    int      `yaml:"time_horizon_years" json:"time_horizon_years"`
	SelectedScenario    Scenario `yaml:"selected_scenario" json:"selected_scenario"`
	IncludeEventOffsets bool     `yaml:"include_event_offsets" json:"include_event_offsets"`
}

// DefaultInputs returns the US base case.
func DefaultInputs() *Inputs {
	return ForCountry(CountryUS.Code)
}

// ForCountry builds inputs from a country preset. Unknown codes use the US.
func ForCountry(code string) *Inputs {
	c, _ := Country(code)
	return FromCountry(c)
}

// FromCountry builds inputs from any country configuration, preset or custom.
func FromCountry(c CountryConfig) *Inputs {
	return &Inputs{
		Population:          c.Population(),
		Market:              DefaultMarket(),
		Costs:               c.Costs(),
		Country:             c,
		TimeHorizonYears:    DefaultTimeHorizon,
		SelectedScenario:    ScenarioModerate,
		IncludeEventOffsets: true,
	}
}

// Clone returns a deep copy safe to mutate independently.
func (in *Inputs) Clone() *Inputs {
	out := *in
	out.Market = in.Market.Clone()
	return &out
}

// Validate returns human-readable problems. An empty slice means valid.
// It never blocks a calculation; callers decide what to surface.
func (in *Inputs) Validate() []string {
	var errs []string
	if in.Population.TotalPopulation <= 0 {
		errs = append(errs, "Total population must be positive")
	}
	if !in.Market.Validate() {
		errs = append(errs, "Market shares must sum to 100%")
	}
	if in.TimeHorizonYears < 1 || in.TimeHorizonYears > DefaultTimeHorizon {
		errs = append(errs, fmt.Sprintf("Time horizon must be between 1 and %d years", DefaultTimeHorizon))
	}
	return errs
}

// ExtendedInputs adds event, subgroup, persistence and sensitivity settings.
type ExtendedInputs struct {
	Inputs `yaml:",inline" json:",inline"`

	EventRates  EventRates          `yaml:"event_rates" json:"event_rates"`
	EventCosts  EventCosts          `yaml:"event_costs" json:"event_costs"`
	Subgroups   SubgroupDefinitions `yaml:"subgroups" json:"subgroups"`
	Persistence PersistenceConfig   `yaml:"persistence" json:"persistence"`
	Sensitivity SensitivityConfig   `yaml:"sensitivity" json:"sensitivity"`

	ExtendedTimeHorizonYears int  `yaml:"extended_time_horizon_years" json:"extended_time_horizon_years"`
	PlateauYear              int  `yaml:"plateau_year" json:"plateau_year"`
	IncludePersistence       bool `yaml:"include_persistence" json:"include_persistence"`
	IncludeEvents            bool `yaml:"include_events" json:"include_events"`

	// Empty means no subgroup analysis.
	SelectedSubgroupTypes []SubgroupType `yaml:"selected_subgroup_types" json:"selected_subgroup_types"`
}

func DefaultExtendedInputs() *ExtendedInputs {
	return ExtendedForCountry(CountryUS.Code)
}

// ExtendedForCountry also scales event costs by the country cost multiplier.
func ExtendedForCountry(code string) *ExtendedInputs {
	c, _ := Country(code)
	return ExtendedFromCountry(c)
}

func ExtendedFromCountry(c CountryConfig) *ExtendedInputs {
	base := FromCountry(c)
	ext := Extend(base)
	ext.EventCosts = DefaultEventCosts().Scale(base.Country.CostMultiplier)
	ext.EventCosts.Currency = base.Country.Currency
	return ext
}

// Extend promotes base inputs with default extended parameters. The base
// inputs are copied, not shared.
func Extend(base *Inputs) *ExtendedInputs {
	return &ExtendedInputs{
		Inputs:                   *base.Clone(),
		EventRates:               DefaultEventRates(),
		EventCosts:               DefaultEventCosts(),
		Subgroups:                DefaultSubgroups(),
		Persistence:              DefaultPersistence(),
		Sensitivity:              DefaultSensitivity(),
		ExtendedTimeHorizonYears: 10,
		PlateauYear:              DefaultTimeHorizon,
		IncludePersistence:       true,
		IncludeEvents:            true,
	}
}

func (in *ExtendedInputs) Clone() *ExtendedInputs {
	out := *in
	out.Inputs = *in.Inputs.Clone()
	out.Subgroups = in.Subgroups.Clone()
	out.Sensitivity = in.Sensitivity.Clone()
	out.SelectedSubgroupTypes = append([]SubgroupType(nil), in.SelectedSubgroupTypes...)
	return &out
}

func (in *ExtendedInputs) Validate() []string {
	errs := in.Inputs.Validate()
	for _, t := range SubgroupTypes() {
		sgs := in.Subgroups.Get(t)
		if len(sgs) == 0 {
			continue
		}
		total := 0.0
		for _, s := range sgs {
			total += s.Proportion
		}
		if math.Abs(total-1.0) > 0.01 {
			errs = append(errs, fmt.Sprintf("%s subgroup proportions must sum to 100%% (currently %.1f%%)", t, total*100))
		}
	}
	if in.ExtendedTimeHorizonYears < in.TimeHorizonYears {
		errs = append(errs, "Extended time horizon must be >= standard time horizon")
	}
	if in.ExtendedTimeHorizonYears > MaxExtendedHorizonYears {
		errs = append(errs, fmt.Sprintf("Extended time horizon must be at most %d years", MaxExtendedHorizonYears))
	}
	return errs
}
