package enhanced

import (
	"fmt"

	"budget-impact/internal/analysis"
	"budget-impact/internal/bim"
	"budget-impact/internal/model"
	"budget-impact/internal/params"
)

// impactWith evaluates the scenario on a clone with one parameter overridden.
func (c *Calculator) impactWith(p params.Param, v float64, scenario model.Scenario) (*bim.Result, error) {
	in := c.in.Clone()
	p.Set(in, v)
	return bim.Compute(&in.Inputs, scenario)
}

// RunTornadoAnalysis evaluates each configured parameter at base*Low and
// base*High and ranks the results by impact range, widest first.
func (c *Calculator) RunTornadoAnalysis(scenario model.Scenario) ([]analysis.Swing, error) {
	scenario = c.scenarioOr(scenario)
	tps := c.in.Sensitivity.TornadoParameters

	swings := make([]analysis.Swing, 0, len(tps))
	for _, tp := range tps {
		p, err := params.Lookup(tp.Name)
		if err != nil {
			return nil, err
		}
		base := p.Get(c.in)
		low, high := base*tp.Low, base*tp.High

		lowRes, err := c.impactWith(p, low, scenario)
		if err != nil {
			return nil, fmt.Errorf("%s low: %w", tp.Name, err)
		}
		highRes, err := c.impactWith(p, high, scenario)
		if err != nil {
			return nil, fmt.Errorf("%s high: %w", tp.Name, err)
		}

		label := tp.Label
		if label == "" {
			label = tp.Name
		}
		swings = append(swings, analysis.NewSwing(tp.Name, label, base, low, high,
			lowRes.TotalBudgetImpact, highRes.TotalBudgetImpact))
	}
	return analysis.RankByRange(swings), nil
}
