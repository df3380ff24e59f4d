package bim

import (
	"fmt"

	"budget-impact/internal/model"
	"budget-impact/internal/params"
)

// SensitivityPoint is one evaluated value of a one-way sweep.
type SensitivityPoint struct {
	Parameter        string  `json:"parameter"`
	Value            float64 `json:"value"`
	BudgetImpact5yr  float64 `json:"budget_impact_5yr"`
	PMPMYear5        float64 `json:"pmpm_year5"`
	EligiblePatients int     `json:"eligible_patients"`
}

// SensitivityAnalysis evaluates the scenario once per value of parameter.
// Names resolve against cost, population and market fields in that order.
func (c *Calculator) SensitivityAnalysis(parameter string, values []float64, scenario model.Scenario) ([]SensitivityPoint, error) {
	scenario = c.scenarioOr(scenario)
	if _, err := params.Get(c.in, parameter); err != nil {
		return nil, err
	}

	out := make([]SensitivityPoint, 0, len(values))
	for _, v := range values {
		in := c.in.Clone()
		if err := params.Set(in, parameter, v); err != nil {
			return nil, err
		}
		res, err := Compute(in, scenario)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", parameter, v, err)
		}
		out = append(out, SensitivityPoint{
			Parameter:        parameter,
			Value:            v,
			BudgetImpact5yr:  res.TotalBudgetImpact,
			PMPMYear5:        res.PMPMFinal,
			EligiblePatients: res.EligiblePatients,
		})
	}
	return out, nil
}

// Price search bounds and convergence tolerance, in currency units.
const (
	ThresholdMinPrice  = 0.0
	ThresholdMaxPrice  = 50_000.0
	ThresholdTolerance = 100.0
)

// PriceThresholdAnalysis bisects the IXA-001 annual price until total impact
// meets target. It assumes total impact is non-decreasing in price and does not
// check that. ok is false when target lies outside the impacts produced at the
// search bounds; price then holds the bound the search collapsed to.
func (c *Calculator) PriceThresholdAnalysis(target float64, scenario model.Scenario) (price float64, ok bool, err error) {
	scenario = c.scenarioOr(scenario)
	in := c.in.Clone()

	impactAt := func(p float64) (float64, error) {
		in.Costs.IXA001Annual = p
		res, err := Compute(in, scenario)
		if err != nil {
			return 0, err
		}
		return res.TotalBudgetImpact, nil
	}

	lo, hi := ThresholdMinPrice, ThresholdMaxPrice
	for hi-lo > ThresholdTolerance {
		mid := (lo + hi) / 2
		impact, err := impactAt(mid)
		if err != nil {
			return 0, false, err
		}
		if impact < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	price = (lo + hi) / 2

	atMin, err := impactAt(ThresholdMinPrice)
	if err != nil {
		return 0, false, err
	}
	atMax, err := impactAt(ThresholdMaxPrice)
	if err != nil {
		return 0, false, err
	}
	return price, atMin <= target && target <= atMax, nil
}
