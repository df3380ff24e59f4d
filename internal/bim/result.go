package bim

import (
	"budget-impact/internal/model"
)

// PatientCounts holds whole-patient counts per treatment option.
type PatientCounts struct {
	IXA001         int `json:"ixa_001"`
	Spironolactone int `json:"spironolactone"`
	OtherMRA       int `json:"other_mra"`
	NoTreatment    int `json:"no_treatment"`
}

func (p PatientCounts) Of(t model.Treatment) int {
	switch t {
	case model.TreatmentIXA001:
		return p.IXA001
	case model.TreatmentSpironolactone:
		return p.Spironolactone
	case model.TreatmentOtherMRA:
		return p.OtherMRA
	default:
		return p.NoTreatment
	}
}

func (p PatientCounts) Total() int {
	return p.IXA001 + p.Spironolactone + p.OtherMRA + p.NoTreatment
}

// countPatients truncates eligible*share per option.
func countPatients(eligible int, shares model.ByTreatment) PatientCounts {
	e := float64(eligible)
	return PatientCounts{
		IXA001:         int(e * shares.IXA001),
		Spironolactone: int(e * shares.Spironolactone),
		OtherMRA:       int(e * shares.OtherMRA),
		NoTreatment:    int(e * shares.NoTreatment),
	}
}

// YearRow is one year of the budget impact ledger.
type YearRow struct {
	Year   int     `json:"year"`
	Uptake float64 `json:"uptake"`

	// New world (with IXA-001).
	Shares       model.ByTreatment `json:"shares"`
	Patients     PatientCounts     `json:"patients"`
	Costs        model.ByTreatment `json:"costs"`
	CostNewWorld float64           `json:"cost_new_world"`

	// Current world uses baseline shares only.
	CurrentPatients  PatientCounts `json:"current_patients"`
	CostCurrentWorld float64       `json:"cost_current_world"`

	BudgetImpact    float64 `json:"budget_impact"`
	CumBudgetImpact float64 `json:"cum_budget_impact"`
	PMPM            float64 `json:"pmpm"`
}

// Result is the outcome of one scenario run.
type Result struct {
	Scenario         model.Scenario `json:"scenario"`
	Currency         string         `json:"currency"`
	EligiblePatients int            `json:"eligible_patients"`
	TotalPopulation  int            `json:"total_population"`

	Years []YearRow `json:"years"`

	TotalBudgetImpact   float64 `json:"total_budget_impact"`
	AverageAnnualImpact float64 `json:"average_annual_impact"`
	PMPMYear1           float64 `json:"pmpm_year1"`
	PMPMFinal           float64 `json:"pmpm_final"`

	CostPerIXAPatient         float64 `json:"cost_per_ixa_patient"`
	IncrementalCostPerPatient float64 `json:"incremental_cost_per_patient"`
}

// YearlyImpacts returns budget impact by year.
func (r *Result) YearlyImpacts() []float64 {
	out := make([]float64, len(r.Years))
	for i, y := range r.Years {
		out[i] = y.BudgetImpact
	}
	return out
}

// CumulativeImpacts returns the running total of budget impact.
func (r *Result) CumulativeImpacts() []float64 {
	out := make([]float64, len(r.Years))
	cum := 0.0
	for i, y := range r.Years {
		cum += y.BudgetImpact
		out[i] = cum
	}
	return out
}

// Summary flattens the headline metrics for display.
func (r *Result) Summary() map[string]any {
	return map[string]any{
		"scenario":                     string(r.Scenario),
		"eligible_patients":            r.EligiblePatients,
		"total_5yr_impact":             r.TotalBudgetImpact,
		"average_annual_impact":        r.AverageAnnualImpact,
		"pmpm_year1":                   r.PMPMYear1,
		"pmpm_year5":                   r.PMPMFinal,
		"cost_per_ixa_patient":         r.CostPerIXAPatient,
		"incremental_cost_per_patient": r.IncrementalCostPerPatient,
		"yearly_impacts":               r.YearlyImpacts(),
	}
}
