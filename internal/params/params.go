// Package params addresses numeric configuration fields by their snake_case
// name so sweeps and samplers can perturb a cloned configuration.
package params

import (
	"errors"
	"fmt"

	"budget-impact/internal/model"
)

// ErrUnknownParameter is returned when a name matches no registered field.
var ErrUnknownParameter = errors.New("unknown parameter")

// Group is a configuration section. Lookups probe groups in declaration order.
type Group int

const (
	GroupCost Group = iota
	GroupPopulation
	GroupMarket
	GroupEventRates
	GroupPersistence
)

func (g Group) String() string {
	switch g {
	case GroupCost:
		return "cost"
	case GroupPopulation:
		return "population"
	case GroupMarket:
		return "market"
	case GroupEventRates:
		return "event_rates"
	case GroupPersistence:
		return "persistence"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// BaseGroups are the sections present on model.Inputs.
func BaseGroups() []Group { return []Group{GroupCost, GroupPopulation, GroupMarket} }

// AllGroups also covers the extended sections.
func AllGroups() []Group {
	return []Group{GroupCost, GroupPopulation, GroupMarket, GroupEventRates, GroupPersistence}
}

// Param is one addressable numeric field.
type Param struct {
	Name  string `json:"name"`
	Group Group  `json:"-"`

	get func(*model.ExtendedInputs) float64
	set func(*model.ExtendedInputs, float64)
}

func (p Param) Get(in *model.ExtendedInputs) float64    { return p.get(in) }
func (p Param) Set(in *model.ExtendedInputs, v float64) { p.set(in, v) }

func floatParam(name string, g Group, ref func(*model.ExtendedInputs) *float64) Param {
	return Param{
		Name:  name,
		Group: g,
		get:   func(in *model.ExtendedInputs) float64 { return *ref(in) },
		set:   func(in *model.ExtendedInputs, v float64) { *ref(in) = v },
	}
}

var (
	registry []Param
	byGroup  map[Group]map[string]Param
)

func init() {
	registry = build()
	byGroup = make(map[Group]map[string]Param)
	for _, p := range registry {
		if byGroup[p.Group] == nil {
			byGroup[p.Group] = make(map[string]Param)
		}
		byGroup[p.Group][p.Name] = p
	}
}

func build() []Param {
	var out []Param
	cost := func(name string, ref func(*model.CostConfig) *float64) {
		out = append(out, floatParam(name, GroupCost, func(in *model.ExtendedInputs) *float64 { return ref(&in.Costs) }))
	}
	cost("ixa_001_annual", func(c *model.CostConfig) *float64 { return &c.IXA001Annual })
	cost("spironolactone_annual", func(c *model.CostConfig) *float64 { return &c.SpironolactoneAnnual })
	cost("other_mra_annual", func(c *model.CostConfig) *float64 { return &c.OtherMRAAnnual })
	cost("no_treatment_annual", func(c *model.CostConfig) *float64 { return &c.NoTreatmentAnnual })
	cost("monitoring_ixa_001", func(c *model.CostConfig) *float64 { return &c.MonitoringIXA001 })
	cost("monitoring_spironolactone", func(c *model.CostConfig) *float64 { return &c.MonitoringSpironolactone })
	cost("monitoring_other_mra", func(c *model.CostConfig) *float64 { return &c.MonitoringOtherMRA })
	cost("monitoring_no_treatment", func(c *model.CostConfig) *float64 { return &c.MonitoringNoTreatment })
	cost("office_visits_annual", func(c *model.CostConfig) *float64 { return &c.OfficeVisitsAnnual })
	cost("ae_management_ixa_001", func(c *model.CostConfig) *float64 { return &c.AEManagementIXA001 })
	cost("ae_management_spironolactone", func(c *model.CostConfig) *float64 { return &c.AEManagementSpironolactone })
	cost("ae_management_other_mra", func(c *model.CostConfig) *float64 { return &c.AEManagementOtherMRA })
	cost("ae_management_no_treatment", func(c *model.CostConfig) *float64 { return &c.AEManagementNoTreatment })
	cost("avoided_events_ixa_001_annual", func(c *model.CostConfig) *float64 { return &c.AvoidedEventsIXA001Annual })
	cost("avoided_events_spironolactone_annual", func(c *model.CostConfig) *float64 { return &c.AvoidedEventsSpironolactoneAnnual })
	cost("avoided_events_other_mra_annual", func(c *model.CostConfig) *float64 { return &c.AvoidedEventsOtherMRAAnnual })

	// Integer field; fractional values are truncated.
	out = append(out, Param{
		Name:  "total_population",
		Group: GroupPopulation,
		get:   func(in *model.ExtendedInputs) float64 { return float64(in.Population.TotalPopulation) },
		set:   func(in *model.ExtendedInputs, v float64) { in.Population.TotalPopulation = int(v) },
	})
	pop := func(name string, ref func(*model.PopulationConfig) *float64) {
		out = append(out, floatParam(name, GroupPopulation, func(in *model.ExtendedInputs) *float64 { return ref(&in.Population) }))
	}
	pop("adult_proportion", func(p *model.PopulationConfig) *float64 { return &p.AdultProportion })
	pop("hypertension_prevalence", func(p *model.PopulationConfig) *float64 { return &p.HypertensionPrevalence })
	pop("resistant_htn_proportion", func(p *model.PopulationConfig) *float64 { return &p.ResistantHTNProportion })
	pop("uncontrolled_proportion", func(p *model.PopulationConfig) *float64 { return &p.UncontrolledProportion })
	pop("treatment_seeking_rate", func(p *model.PopulationConfig) *float64 { return &p.TreatmentSeekingRate })

	market := func(name string, ref func(*model.MarketConfig) *float64) {
		out = append(out, floatParam(name, GroupMarket, func(in *model.ExtendedInputs) *float64 { return ref(&in.Market) }))
	}
	market("baseline_spironolactone", func(m *model.MarketConfig) *float64 { return &m.BaselineSpironolactone })
	market("baseline_other_mra", func(m *model.MarketConfig) *float64 { return &m.BaselineOtherMRA })
	market("baseline_no_4th_line", func(m *model.MarketConfig) *float64 { return &m.BaselineNoTreatment })
	market("displacement_from_spironolactone", func(m *model.MarketConfig) *float64 { return &m.DisplacementFromSpironolactone })
	market("displacement_from_other_mra", func(m *model.MarketConfig) *float64 { return &m.DisplacementFromOtherMRA })
	market("displacement_from_untreated", func(m *model.MarketConfig) *float64 { return &m.DisplacementFromUntreated })

	for _, e := range model.EventTypes() {
		for _, t := range model.Treatments() {
			e, t := e, t
			out = append(out, floatParam(fmt.Sprintf("%s_%s", e, t), GroupEventRates, func(in *model.ExtendedInputs) *float64 {
				return in.EventRates.Ref(e).Ref(t)
			}))
		}
	}

	for _, t := range []model.Treatment{model.TreatmentIXA001, model.TreatmentSpironolactone, model.TreatmentOtherMRA} {
		t := t
		out = append(out,
			floatParam(fmt.Sprintf("discontinuation_%s_year1", t), GroupPersistence, func(in *model.ExtendedInputs) *float64 {
				return in.Persistence.DiscontinuationYear1.Ref(t)
			}),
			floatParam(fmt.Sprintf("discontinuation_%s_year2_plus", t), GroupPersistence, func(in *model.ExtendedInputs) *float64 {
				return in.Persistence.DiscontinuationYear2Plus.Ref(t)
			}),
		)
	}
	return out
}

// Lookup resolves name against groups in the order given. With no groups it
// searches every group.
func Lookup(name string, groups ...Group) (Param, error) {
	if len(groups) == 0 {
		groups = AllGroups()
	}
	for _, g := range groups {
		if p, ok := byGroup[g][name]; ok {
			return p, nil
		}
	}
	return Param{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Names lists registered names in the given groups, in registry order.
func Names(groups ...Group) []string {
	if len(groups) == 0 {
		groups = AllGroups()
	}
	want := make(map[Group]bool, len(groups))
	for _, g := range groups {
		want[g] = true
	}
	var out []string
	for _, p := range registry {
		if want[p.Group] {
			out = append(out, p.Name)
		}
	}
	return out
}

// Get reads a base-configuration field.
func Get(in *model.Inputs, name string) (float64, error) {
	p, err := Lookup(name, BaseGroups()...)
	if err != nil {
		return 0, err
	}
	ext := model.ExtendedInputs{Inputs: *in}
	return p.Get(&ext), nil
}

// Set writes a base-configuration field in place. Callers that must keep the
// original should pass a clone.
func Set(in *model.Inputs, name string, v float64) error {
	p, err := Lookup(name, BaseGroups()...)
	if err != nil {
		return err
	}
	ext := model.ExtendedInputs{Inputs: *in}
	p.Set(&ext, v)
	*in = ext.Inputs
	return nil
}

// GetExtended reads any registered field.
func GetExtended(in *model.ExtendedInputs, name string) (float64, error) {
	p, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Get(in), nil
}

// SetExtended writes any registered field in place.
func SetExtended(in *model.ExtendedInputs, name string, v float64) error {
	p, err := Lookup(name)
	if err != nil {
		return err
	}
	p.Set(in, v)
	return nil
}
