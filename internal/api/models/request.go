package models

import "budget-impact/internal/enhanced"

// RunRequest selects a country preset and overlays partial model overrides.
// Overrides are keyed like the run config's model section.
type RunRequest struct {
	Country   string         `json:"country,omitempty"`
	Scenario  string         `json:"scenario,omitempty"`
	Overrides map[string]any `json:"overrides,omitempty"`
	Subgroups []string       `json:"subgroups,omitempty"`
}

func (r RunRequest) Run() RunRequest { return r }

// SensitivityRequest sweeps one parameter.
type SensitivityRequest struct {
	RunRequest
	Parameter string    `json:"parameter" binding:"required"`
	Values    []float64 `json:"values" binding:"required,min=1"`
}

// ThresholdRequest searches the IXA-001 price giving TargetImpact.
// Zero means budget neutral.
type ThresholdRequest struct {
	RunRequest
	TargetImpact float64 `json:"target_impact"`
}

// FullRequest runs the extended calculation. A nil Options enables every part.
type FullRequest struct {
	RunRequest
	Options        *enhanced.Options `json:"options,omitempty"`
	IncludeTornado bool              `json:"include_tornado,omitempty"`
	IncludePSA     bool              `json:"include_psa,omitempty"`
	PSA            PSAOptions        `json:"psa,omitempty"`
}

// MultiwayRequest sweeps several parameters one at a time.
type MultiwayRequest struct {
	RunRequest
	Sweeps []enhanced.ParameterSweep `json:"sweeps" binding:"required,min=1"`
}

// PSAOptions bounds a probabilistic sensitivity run.
type PSAOptions struct {
	Iterations int     `json:"iterations,omitempty" binding:"gte=0,lte=100000"`
	Seed       *uint64 `json:"seed,omitempty"`
	Workers    int     `json:"workers,omitempty" binding:"gte=0,lte=64"`
}

// PSARequest runs a probabilistic sensitivity analysis.
type PSARequest struct {
	RunRequest
	PSAOptions
	IncludeSamples bool `json:"include_samples,omitempty"`
}
