package enhanced

import (
	"fmt"

	"budget-impact/internal/bim"
	"budget-impact/internal/model"
)

// ExtendedHorizon projects budget impact past the uptake curve. Years after
// the plateau year hold uptake at the plateau year's value.
type ExtendedHorizon struct {
	Years         []bim.YearRow `json:"years"`
	PlateauYear   int           `json:"plateau_year"`
	PlateauUptake float64       `json:"plateau_uptake"`
	TotalImpact   float64       `json:"total_impact"`
}

func (h *ExtendedHorizon) YearlyImpacts() []float64 {
	out := make([]float64, len(h.Years))
	for i, y := range h.Years {
		out[i] = y.BudgetImpact
	}
	return out
}

func computeExtended(in *model.ExtendedInputs, scenario model.Scenario) (*ExtendedHorizon, error) {
	if n := in.ExtendedTimeHorizonYears; n < 1 || n > model.MaxExtendedHorizonYears {
		return nil, fmt.Errorf("%w: extended horizon %d years not in 1..%d",
			model.ErrYearOutOfRange, n, model.MaxExtendedHorizonYears)
	}
	plateau, err := in.Market.Uptake(scenario, in.PlateauYear)
	if err != nil {
		return nil, err
	}
	eligible := in.Population.EligiblePatients()
	h := &ExtendedHorizon{
		Years:         make([]bim.YearRow, 0, in.ExtendedTimeHorizonYears),
		PlateauYear:   in.PlateauYear,
		PlateauUptake: plateau,
	}

	for year := 1; year <= in.ExtendedTimeHorizonYears; year++ {
		uptake := plateau
		if year <= in.PlateauYear {
			if uptake, err = in.Market.Uptake(scenario, year); err != nil {
				return nil, err
			}
		}
		row := bim.YearAt(&in.Inputs, year, eligible, uptake)
		h.TotalImpact += row.BudgetImpact
		row.CumBudgetImpact = h.TotalImpact
		h.Years = append(h.Years, row)
	}
	return h, nil
}
