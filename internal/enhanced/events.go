package enhanced

import (
	"budget-impact/internal/bim"
	"budget-impact/internal/model"
)

// EventResult accumulates clinical events over the base horizon. Death types
// are not counted.
type EventResult struct {
	// Events by type and treatment in the world with IXA-001.
	NewWorld map[model.EventType]model.ByTreatment `json:"new_world"`
	// Events by type and treatment under baseline shares.
	CurrentWorld map[model.EventType]model.ByTreatment `json:"current_world"`

	// Avoided is current minus new; negative means extra events.
	Avoided      map[model.EventType]float64 `json:"events_avoided"`
	CostsAvoided map[model.EventType]float64 `json:"event_costs_avoided"`
	// FollowupCostExposure is one year of follow-up cost on the avoided events.
	// It is reported alongside, not included in TotalCostsAvoided.
	FollowupCostExposure map[model.EventType]float64 `json:"followup_cost_exposure"`

	TotalEventsAvoided float64 `json:"total_events_avoided"`
	TotalCostsAvoided  float64 `json:"total_costs_avoided"`
}

// TotalEvents sums new-world events for one treatment across event types.
func (r *EventResult) TotalEvents(t model.Treatment) float64 {
	total := 0.0
	for _, e := range model.EventTypes() {
		if bt, ok := r.NewWorld[e]; ok {
			total += bt.Of(t)
		}
	}
	return total
}

// computeEvents applies per-1,000 annual rates to the yearly patient counts of
// a computed base result. Both worlds use the ledger's counts, so new-world
// comparator patients follow the displacement table rather than a
// proportional (1 - uptake) scaling of baseline shares.
func computeEvents(in *model.ExtendedInputs, base *bim.Result) *EventResult {
	r := &EventResult{
		NewWorld:             make(map[model.EventType]model.ByTreatment),
		CurrentWorld:         make(map[model.EventType]model.ByTreatment),
		Avoided:              make(map[model.EventType]float64),
		CostsAvoided:         make(map[model.EventType]float64),
		FollowupCostExposure: make(map[model.EventType]float64),
	}

	for _, e := range model.EventTypes() {
		if e.IsDeath() {
			continue
		}
		rate := func(t model.Treatment) float64 { return in.EventRates.Rate(e, t) / 1000 }

		var newWorld, current model.ByTreatment
		for _, y := range base.Years {
			for _, t := range model.Treatments() {
				*newWorld.Ref(t) += float64(y.Patients.Of(t)) * rate(t)
				*current.Ref(t) += float64(y.CurrentPatients.Of(t)) * rate(t)
			}
		}

		avoided := current.Sum() - newWorld.Sum()
		cost := in.EventCosts.Cost(e)

		r.NewWorld[e] = newWorld
		r.CurrentWorld[e] = current
		r.Avoided[e] = avoided
		r.CostsAvoided[e] = avoided * cost.Acute
		r.FollowupCostExposure[e] = avoided * cost.FollowupAnnual

		r.TotalEventsAvoided += avoided
		r.TotalCostsAvoided += avoided * cost.Acute
	}
	return r
}
