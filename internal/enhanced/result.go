package enhanced

import (
	"budget-impact/internal/analysis"
	"budget-impact/internal/bim"
	"budget-impact/internal/model"
)

// Result holds the base run plus whichever extended parts were computed.
// Nil parts were not requested.
type Result struct {
	Base        *bim.Result                             `json:"base"`
	Events      *EventResult                            `json:"events,omitempty"`
	Subgroups   map[model.SubgroupType][]SubgroupResult `json:"subgroups,omitempty"`
	Persistence *PersistenceResult                      `json:"persistence,omitempty"`
	Extended    *ExtendedHorizon                        `json:"extended,omitempty"`
	Tornado     []analysis.Swing                        `json:"tornado,omitempty"`
	PSA         *PSAResult                              `json:"psa,omitempty"`
}

// Summary extends the base summary with event, horizon and PSA headlines.
func (r *Result) Summary() map[string]any {
	s := map[string]any{}
	if r.Base != nil {
		s = r.Base.Summary()
	}
	if r.Events != nil {
		s["total_events_avoided"] = r.Events.TotalEventsAvoided
		s["total_event_costs_avoided"] = r.Events.TotalCostsAvoided
	}
	extended := 0.0
	if r.Extended != nil {
		extended = r.Extended.TotalImpact
	}
	s["extended_10yr_impact"] = extended
	if r.PSA != nil {
		s["psa_mean_impact"] = r.PSA.Impact.Mean
		s["psa_ci_lower"] = r.PSA.Impact.CILower
		s["psa_ci_upper"] = r.PSA.Impact.CIUpper
	}
	return s
}
