// Package bim computes year-by-year budget impact of introducing IXA-001
// against a current world without it.
package bim

import (
	"fmt"

	"budget-impact/internal/model"
)

// Calculator runs scenarios against one configuration. It never modifies the
// configuration it was built with; perturbations work on clones.
type Calculator struct {
	in *model.Inputs
}

func New(in *model.Inputs) *Calculator {
	if in == nil {
		in = model.DefaultInputs()
	}
	return &Calculator{in: in}
}

// Inputs returns the calculator's configuration.
func (c *Calculator) Inputs() *model.Inputs { return c.in }

// scenarioOr returns sc, or the configured scenario when sc is empty.
func (c *Calculator) scenarioOr(sc model.Scenario) model.Scenario {
	if sc == "" {
		return c.in.SelectedScenario
	}
	return sc
}

// Calculate runs one scenario. An empty scenario uses the configured one.
func (c *Calculator) Calculate(scenario model.Scenario) (*Result, error) {
	return Compute(c.in, c.scenarioOr(scenario))
}

// RunAllScenarios runs every scenario in canonical order.
func (c *Calculator) RunAllScenarios() (map[model.Scenario]*Result, error) {
	out := make(map[model.Scenario]*Result, len(model.Scenarios()))
	for _, sc := range model.Scenarios() {
		res, err := Compute(c.in, sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc, err)
		}
		out[sc] = res
	}
	return out, nil
}

// Compute is the pure budget impact calculation over in.TimeHorizonYears.
func Compute(in *model.Inputs, scenario model.Scenario) (*Result, error) {
	if in == nil {
		return nil, fmt.Errorf("inputs are nil")
	}
	if in.TimeHorizonYears < 1 {
		return nil, fmt.Errorf("%w: time horizon %d years", model.ErrYearOutOfRange, in.TimeHorizonYears)
	}
	eligible := in.Population.EligiblePatients()
	res := &Result{
		Scenario:         scenario,
		Currency:         in.Costs.Currency,
		EligiblePatients: eligible,
		TotalPopulation:  in.Population.TotalPopulation,
		Years:            make([]YearRow, 0, in.TimeHorizonYears),
	}

	cum := 0.0
	for year := 1; year <= in.TimeHorizonYears; year++ {
		uptake, err := in.Market.Uptake(scenario, year)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		row := YearAt(in, year, eligible, uptake)
		cum += row.BudgetImpact
		row.CumBudgetImpact = cum
		res.Years = append(res.Years, row)
	}

	res.TotalBudgetImpact = cum
	res.AverageAnnualImpact = cum / float64(in.TimeHorizonYears)
	if n := len(res.Years); n > 0 {
		res.PMPMYear1 = res.Years[0].PMPM
		res.PMPMFinal = res.Years[n-1].PMPM
	}

	res.CostPerIXAPatient = in.Costs.NetAnnualCost(model.TreatmentIXA001, in.IncludeEventOffsets)
	res.IncrementalCostPerPatient = res.CostPerIXAPatient - weightedCurrentCost(in)
	return res, nil
}

// YearAt computes one ledger year for a given IXA-001 uptake. It does not
// consult the uptake curve, so callers can project past the curve's end.
func YearAt(in *model.Inputs, year, eligible int, uptake float64) YearRow {
	net := in.Costs.NetAnnualCosts(in.IncludeEventOffsets)
	shares := in.Market.SharesForUptake(uptake)

	row := YearRow{
		Year:     year,
		Uptake:   uptake,
		Shares:   shares,
		Patients: countPatients(eligible, shares),
	}
	row.Costs = model.ByTreatment{
		IXA001:         float64(row.Patients.IXA001) * net.IXA001,
		Spironolactone: float64(row.Patients.Spironolactone) * net.Spironolactone,
		OtherMRA:       float64(row.Patients.OtherMRA) * net.OtherMRA,
		NoTreatment:    float64(row.Patients.NoTreatment) * net.NoTreatment,
	}
	row.CostNewWorld = row.Costs.Sum()

	row.CurrentPatients = countPatients(eligible, in.Market.Baseline())
	row.CostCurrentWorld = float64(row.CurrentPatients.Spironolactone)*net.Spironolactone +
		float64(row.CurrentPatients.OtherMRA)*net.OtherMRA +
		float64(row.CurrentPatients.NoTreatment)*net.NoTreatment

	row.BudgetImpact = row.CostNewWorld - row.CostCurrentWorld
	row.PMPM = pmpm(row.BudgetImpact, in.Population.TotalPopulation)
	return row
}

// pmpm is per member per month. A zero population yields zero.
func pmpm(impact float64, members int) float64 {
	if members <= 0 {
		return 0
	}
	return impact / float64(members) / 12
}

func weightedCurrentCost(in *model.Inputs) float64 {
	net := in.Costs.NetAnnualCosts(in.IncludeEventOffsets)
	m := in.Market
	return m.BaselineSpironolactone*net.Spironolactone +
		m.BaselineOtherMRA*net.OtherMRA +
		m.BaselineNoTreatment*net.NoTreatment
}
