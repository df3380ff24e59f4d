package enhanced

import (
	"budget-impact/internal/bim"
	"budget-impact/internal/model"
)

type SubgroupResult struct {
	Type       model.SubgroupType `json:"type"`
	Name       string             `json:"name"`
	Code       string             `json:"code"`
	Proportion float64            `json:"proportion"`
	Patients   int                `json:"patients"`

	BudgetImpact5yr        float64   `json:"budget_impact_5yr"`
	BudgetImpactPerPatient float64   `json:"budget_impact_per_patient"`
	YearlyImpacts          []float64 `json:"yearly_impacts"`

	// Carried for reporting; the budget calculation does not use it.
	TreatmentEffectModifier float64 `json:"treatment_effect_modifier"`

	EventsAvoided map[model.EventType]float64 `json:"events_avoided,omitempty"`
}

// subgroupRiskEvents are the events whose IXA-001 rates take a subgroup's
// risk multiplier. CKD and death multipliers are carried but not applied.
var subgroupRiskEvents = []model.EventType{model.EventStroke, model.EventMI, model.EventHF}

// subgroupInputs scales a clone to the subgroup's share of covered lives and
// applies its risk multipliers to the IXA-001 event rates.
func subgroupInputs(in *model.ExtendedInputs, sg model.SubgroupParameters) *model.ExtendedInputs {
	out := in.Clone()
	out.Population.TotalPopulation = int(float64(in.Population.TotalPopulation) * sg.Proportion)
	for _, e := range subgroupRiskEvents {
		out.EventRates.Ref(e).IXA001 *= sg.RiskMultiplier(e)
	}
	return out
}

func computeSubgroups(in *model.ExtendedInputs, scenario model.Scenario) (map[model.SubgroupType][]SubgroupResult, error) {
	eligible := in.Population.EligiblePatients()
	out := make(map[model.SubgroupType][]SubgroupResult, len(in.SelectedSubgroupTypes))

	for _, st := range in.SelectedSubgroupTypes {
		sgs := in.Subgroups.Get(st)
		results := make([]SubgroupResult, 0, len(sgs))
		for _, sg := range sgs {
			sgIn := subgroupInputs(in, sg)
			res, err := bim.Compute(&sgIn.Inputs, scenario)
			if err != nil {
				return nil, err
			}

			r := SubgroupResult{
				Type:                    st,
				Name:                    sg.Name,
				Code:                    sg.Code,
				Proportion:              sg.Proportion,
				Patients:                int(float64(eligible) * sg.Proportion),
				BudgetImpact5yr:         res.TotalBudgetImpact,
				YearlyImpacts:           res.YearlyImpacts(),
				TreatmentEffectModifier: sg.TreatmentEffectModifier,
			}
			if r.Patients > 0 {
				r.BudgetImpactPerPatient = r.BudgetImpact5yr / float64(r.Patients)
			}
			if in.IncludeEvents {
				r.EventsAvoided = computeEvents(sgIn, res).Avoided
			}
			results = append(results, r)
		}
		out[st] = results
	}
	return out, nil
}
