package enhanced

import (
	"budget-impact/internal/model"
)

// PersistenceResult gives patients still on each treatment per year after
// cumulative discontinuation.
type PersistenceResult struct {
	PatientsByYear   map[model.Treatment][]int     `json:"patients_by_year"`
	PersistenceRates map[model.Treatment][]float64 `json:"persistence_rates"`
	PatientYears     map[model.Treatment]float64   `json:"patient_years"`
}

func computePersistence(in *model.ExtendedInputs, scenario model.Scenario) (*PersistenceResult, error) {
	eligible := float64(in.Population.EligiblePatients())
	r := &PersistenceResult{
		PatientsByYear:   make(map[model.Treatment][]int),
		PersistenceRates: make(map[model.Treatment][]float64),
		PatientYears:     make(map[model.Treatment]float64),
	}

	for year := 1; year <= in.TimeHorizonYears; year++ {
		shares, err := in.Market.Shares(scenario, year)
		if err != nil {
			return nil, err
		}
		for _, t := range model.Treatments() {
			initial := int(eligible * shares.Of(t))
			rate := in.Persistence.Persistence(t, year)
			r.PatientsByYear[t] = append(r.PatientsByYear[t], int(float64(initial)*rate))
			r.PersistenceRates[t] = append(r.PersistenceRates[t], rate)
		}
	}

	for _, t := range model.Treatments() {
		total := 0
		for _, n := range r.PatientsByYear[t] {
			total += n
		}
		r.PatientYears[t] = float64(total)
	}
	return r, nil
}
