package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrYearOutOfRange is returned when a year falls outside an uptake curve.
var ErrYearOutOfRange = errors.New("year out of range")

// MarketConfig describes the treatment mix with and without the new treatment.
//
// Baseline shares describe the current world (no IXA-001) and should sum to 1.
// Uptake curves hold one IXA-001 share per year for each scenario.
// Displacement fractions split IXA-001 uptake across the existing options
// and should also sum to 1.
type MarketConfig struct {
	BaselineSpironolactone float64 `yaml:"baseline_spironolactone" json:"baseline_spironolactone"`
	BaselineOtherMRA       float64 `yaml:"baseline_other_mra" json:"baseline_other_mra"`
	BaselineNoTreatment    float64 `yaml:"baseline_no_4th_line" json:"baseline_no_4th_line"`

	UptakeCurves map[Scenario][]float64 `yaml:"uptake_curves" json:"uptake_curves"`

	DisplacementFromSpironolactone float64 `yaml:"displacement_from_spironolactone" json:"displacement_from_spironolactone"`
	DisplacementFromOtherMRA       float64 `yaml:"displacement_from_other_mra" json:"displacement_from_other_mra"`
	DisplacementFromUntreated      float64 `yaml:"displacement_from_untreated" json:"displacement_from_untreated"`
}

func DefaultMarket() MarketConfig {
	return MarketConfig{
		BaselineSpironolactone: 0.60,
		BaselineOtherMRA:       0.15,
		BaselineNoTreatment:    0.25,
		UptakeCurves: map[Scenario][]float64{
			ScenarioConservative: {0.05, 0.10, 0.15, 0.18, 0.20},
			ScenarioModerate:     {0.10, 0.20, 0.30, 0.35, 0.40},
			ScenarioOptimistic:   {0.15, 0.30, 0.45, 0.50, 0.55},
		},
		DisplacementFromSpironolactone: 0.70,
		DisplacementFromOtherMRA:       0.20,
		DisplacementFromUntreated:      0.10,
	}
}

// Clone deep-copies the uptake curves.
func (m MarketConfig) Clone() MarketConfig {
	out := m
	out.UptakeCurves = make(map[Scenario][]float64, len(m.UptakeCurves))
	for sc, curve := range m.UptakeCurves {
		out.UptakeCurves[sc] = append([]float64(nil), curve...)
	}
	return out
}

// Uptake returns the IXA-001 share for a 1-indexed year.
func (m MarketConfig) Uptake(scenario Scenario, year int) (float64, error) {
	curve, ok := m.UptakeCurves[scenario]
	if !ok {
		return 0, fmt.Errorf("no uptake curve for scenario %q", scenario)
	}
	if year < 1 || year > len(curve) {
		return 0, fmt.Errorf("%w: year %d not in 1..%d", ErrYearOutOfRange, year, len(curve))
	}
	return curve[year-1], nil
}

// Horizon is the shortest uptake curve length across scenarios.
func (m MarketConfig) Horizon() int {
	h := -1
	for _, curve := range m.UptakeCurves {
		if h < 0 || len(curve) < h {
			h = len(curve)
		}
	}
	if h < 0 {
		return 0
	}
	return h
}

// ByTreatment holds one value per treatment option (shares, unit costs, rates).
type ByTreatment struct {
	IXA001         float64 `yaml:"ixa_001" json:"ixa_001"`
	Spironolactone float64 `yaml:"spironolactone" json:"spironolactone"`
	OtherMRA       float64 `yaml:"other_mra" json:"other_mra"`
	NoTreatment    float64 `yaml:"no_treatment" json:"no_treatment"`
}

func (s ByTreatment) Of(t Treatment) float64 {
	switch t {
	case TreatmentIXA001:
		return s.IXA001
	case TreatmentSpironolactone:
		return s.Spironolactone
	case TreatmentOtherMRA:
		return s.OtherMRA
	default:
		return s.NoTreatment
	}
}

func (s ByTreatment) Sum() float64 {
	return s.IXA001 + s.Spironolactone + s.OtherMRA + s.NoTreatment
}

// Baseline returns the current-world shares (no IXA-001).
func (m MarketConfig) Baseline() ByTreatment {
	return ByTreatment{
		Spironolactone: m.BaselineSpironolactone,
		OtherMRA:       m.BaselineOtherMRA,
		NoTreatment:    m.BaselineNoTreatment,
	}
}

// Displacement is the fraction of IXA-001 uptake drawn from an existing option.
func (m MarketConfig) Displacement(t Treatment) float64 {
	switch t {
	case TreatmentSpironolactone:
		return m.DisplacementFromSpironolactone
	case TreatmentOtherMRA:
		return m.DisplacementFromOtherMRA
	case TreatmentNone:
		return m.DisplacementFromUntreated
	default:
		return 0
	}
}

// SharesForUptake evolves the baseline mix for a given IXA-001 uptake.
// Existing options lose uptake*displacement and are floored at zero, then the
// four shares are normalized to sum to 1. A zero raw sum is left at zero.
func (m MarketConfig) SharesForUptake(uptake float64) ByTreatment {
	s := ByTreatment{
		IXA001:         uptake,
		Spironolactone: math.Max(0, m.BaselineSpironolactone-uptake*m.DisplacementFromSpironolactone),
		OtherMRA:       math.Max(0, m.BaselineOtherMRA-uptake*m.DisplacementFromOtherMRA),
		NoTreatment:    math.Max(0, m.BaselineNoTreatment-uptake*m.DisplacementFromUntreated),
	}
	total := s.Sum()
	if total > 0 {
		s.IXA001 /= total
		s.Spironolactone /= total
		s.OtherMRA /= total
		s.NoTreatment /= total
	}
	return s
}

// Shares returns the new-world mix for a scenario and year.
func (m MarketConfig) Shares(scenario Scenario, year int) (ByTreatment, error) {
	u, err := m.Uptake(scenario, year)
	if err != nil {
		return ByTreatment{}, err
	}
	return m.SharesForUptake(u), nil
}

// Validate reports whether baseline shares and displacement fractions each sum
// to 1 within 0.01. It is advisory; calculations run regardless.
func (m MarketConfig) Validate() bool {
	baseline := m.BaselineSpironolactone + m.BaselineOtherMRA + m.BaselineNoTreatment
	displacement := m.DisplacementFromSpironolactone + m.DisplacementFromOtherMRA + m.DisplacementFromUntreated
	return math.Abs(baseline-1.0) < 0.01 && math.Abs(displacement-1.0) < 0.01
}

// Ref returns a pointer to the value for t.
func (s *ByTreatment) Ref(t Treatment) *float64 {
	switch t {
	case TreatmentIXA001:
		return &s.IXA001
	case TreatmentSpironolactone:
		return &s.Spironolactone
	case TreatmentOtherMRA:
		return &s.OtherMRA
	default:
		return &s.NoTreatment
	}
}
