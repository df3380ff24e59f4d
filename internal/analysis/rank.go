package analysis

import (
	"math"
	"sort"
)

// Swing is the outcome of evaluating one parameter at a low and a high value.
type Swing struct {
	Parameter string  `json:"parameter"`
	Label     string  `json:"label"`
	BaseValue float64 `json:"base_value"`
	LowValue  float64 `json:"low_value"`
	HighValue float64 `json:"high_value"`

	ImpactAtLow  float64 `json:"impact_at_low"`
	ImpactAtHigh float64 `json:"impact_at_high"`
	// Range is |ImpactAtHigh - ImpactAtLow|.
	Range float64 `json:"impact_range"`
}

// NewSwing fills Range from the two impacts.
func NewSwing(parameter, label string, base, low, high, impactLow, impactHigh float64) Swing {
	return Swing{
		Parameter:    parameter,
		Label:        label,
		BaseValue:    base,
		LowValue:     low,
		HighValue:    high,
		ImpactAtLow:  impactLow,
		ImpactAtHigh: impactHigh,
		Range:        math.Abs(impactHigh - impactLow),
	}
}

// RankByRange sorts swings in place, widest first. Equal ranges keep their
// input order.
func RankByRange(swings []Swing) []Swing {
	sort.SliceStable(swings, func(i, j int) bool {
		return swings[i].Range > swings[j].Range
	})
	return swings
}
