package model

// TornadoParameter is swept to base*Low and base*High.
type TornadoParameter struct {
	Name  string  `yaml:"name" json:"name"`
	Label string  `yaml:"label" json:"label"`
	Low   float64 `yaml:"low" json:"low"`
	High  float64 `yaml:"high" json:"high"`
}

// DistributionKind names a PSA sampling distribution.
type DistributionKind string

const (
	// Normal takes (mean, sd).
	DistNormal DistributionKind = "normal"
	// LogNormal takes the arithmetic (mean, sd) of the sampled value.
	DistLogNormal DistributionKind = "lognormal"
	// Beta takes shape parameters (alpha, beta).
	DistBeta DistributionKind = "beta"
)

// Distribution is one uncertain parameter in the PSA.
type Distribution struct {
	Name   string           `yaml:"name" json:"name"`
	Kind   DistributionKind `yaml:"kind" json:"kind"`
	Param1 float64          `yaml:"param1" json:"param1"`
	Param2 float64          `yaml:"param2" json:"param2"`
}

type SensitivityConfig struct {
	TornadoParameters  []TornadoParameter `yaml:"tornado_parameters" json:"tornado_parameters"`
	PSADistributions   []Distribution     `yaml:"psa_distributions" json:"psa_distributions"`
	PSAIterations      int                `yaml:"psa_iterations" json:"psa_iterations"`
	PSAConfidenceLevel float64            `yaml:"psa_confidence_level" json:"psa_confidence_level"`
}

func DefaultSensitivity() SensitivityConfig {
	return SensitivityConfig{
		TornadoParameters: []TornadoParameter{
			{Name: "ixa_001_annual", Label: "IXA-001 Annual Cost", Low: 0.75, High: 1.25},
			{Name: "resistant_htn_proportion", Label: "Resistant HTN Prevalence", Low: 0.75, High: 1.25},
			{Name: "treatment_seeking_rate", Label: "Treatment-Seeking Rate", Low: 0.80, High: 1.20},
			{Name: "avoided_events_ixa_001_annual", Label: "Avoided Event Costs (IXA)", Low: 0.50, High: 1.50},
			{Name: "displacement_from_spironolactone", Label: "Displacement from Spiro", Low: 0.80, High: 1.20},
			{Name: "hypertension_prevalence", Label: "HTN Prevalence", Low: 0.85, High: 1.15},
			{Name: "discontinuation_ixa_001_year1", Label: "IXA-001 Yr1 Discontinuation", Low: 0.50, High: 1.50},
		},
		PSADistributions: []Distribution{
			{Name: "ixa_001_annual", Kind: DistLogNormal, Param1: 6000, Param2: 600},
			{Name: "spironolactone_annual", Kind: DistLogNormal, Param1: 180, Param2: 20},
			{Name: "resistant_htn_proportion", Kind: DistBeta, Param1: 12, Param2: 88},
			{Name: "treatment_seeking_rate", Kind: DistBeta, Param1: 80, Param2: 20},
			{Name: "stroke_ixa_001", Kind: DistLogNormal, Param1: 8, Param2: 2},
			{Name: "mi_ixa_001", Kind: DistLogNormal, Param1: 6, Param2: 1.5},
			{Name: "hf_ixa_001", Kind: DistLogNormal, Param1: 15, Param2: 4},
		},
		PSAIterations:      1000,
		PSAConfidenceLevel: 0.95,
	}
}

func (s SensitivityConfig) Clone() SensitivityConfig {
	out := s
	out.TornadoParameters = append([]TornadoParameter(nil), s.TornadoParameters...)
	out.PSADistributions = append([]Distribution(nil), s.PSADistributions...)
	return out
}
