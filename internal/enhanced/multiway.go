package enhanced

import (
	"fmt"

	"budget-impact/internal/bim"
	"budget-impact/internal/model"
	"budget-impact/internal/params"
)

// ParameterSweep lists the values to try for one parameter.
type ParameterSweep struct {
	Parameter string    `json:"parameter" yaml:"parameter"`
	Values    []float64 `json:"values" yaml:"values"`
}

// RunMultiwaySensitivity sweeps each parameter on its own, holding the others
// at their configured values. It is a union of one-way sweeps, not a grid.
// Every name is resolved before anything is evaluated.
func (c *Calculator) RunMultiwaySensitivity(sweeps []ParameterSweep, scenario model.Scenario) ([]bim.SensitivityPoint, error) {
	scenario = c.scenarioOr(scenario)

	resolved := make([]params.Param, len(sweeps))
	n := 0
	for i, s := range sweeps {
		p, err := params.Lookup(s.Parameter)
		if err != nil {
			return nil, err
		}
		resolved[i] = p
		n += len(s.Values)
	}

	out := make([]bim.SensitivityPoint, 0, n)
	for i, s := range sweeps {
		for _, v := range s.Values {
			res, err := c.impactWith(resolved[i], v, scenario)
			if err != nil {
				return nil, fmt.Errorf("%s=%g: %w", s.Parameter, v, err)
			}
			out = append(out, bim.SensitivityPoint{
				Parameter:        s.Parameter,
				Value:            v,
				BudgetImpact5yr:  res.TotalBudgetImpact,
				PMPMYear5:        res.PMPMFinal,
				EligiblePatients: res.EligiblePatients,
			})
		}
	}
	return out, nil
}
