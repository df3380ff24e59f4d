package model

// PopulationConfig sizes the eligible population from a plan's covered lives.
// All proportions are fractions in [0,1].
type PopulationConfig struct {
	TotalPopulation        int     `yaml:"total_population" json:"total_population"`
	AdultProportion        float64 `yaml:"adult_proportion" json:"adult_proportion"`
	HypertensionPrevalence float64 `yaml:"hypertension_prevalence" json:"hypertension_prevalence"`
	ResistantHTNProportion float64 `yaml:"resistant_htn_proportion" json:"resistant_htn_proportion"`
	UncontrolledProportion float64 `yaml:"uncontrolled_proportion" json:"uncontrolled_proportion"`
	TreatmentSeekingRate   float64 `yaml:"treatment_seeking_rate" json:"treatment_seeking_rate"`
}

func DefaultPopulation() PopulationConfig {
	return PopulationConfig{
		TotalPopulation:        1_000_000,
		AdultProportion:        0.78,
		HypertensionPrevalence: 0.30,
		ResistantHTNProportion: 0.12,
		UncontrolledProportion: 0.50,
		TreatmentSeekingRate:   0.80,
	}
}

// EligiblePatients applies the whole cascade in one pass and truncates once.
func (p PopulationConfig) EligiblePatients() int {
	return int(float64(p.TotalPopulation) *
		p.AdultProportion *
		p.HypertensionPrevalence *
		p.ResistantHTNProportion *
		p.UncontrolledProportion *
		p.TreatmentSeekingRate)
}

// CascadeStage is one step of the population funnel.
type CascadeStage struct {
	Name     string `json:"name"`
	Patients int    `json:"patients"`
}

// Cascade truncates after every stage, so the last stage can sit up to one
// patient below EligiblePatients. That gap is accepted rounding.
func (p PopulationConfig) Cascade() []CascadeStage {
	adults := int(float64(p.TotalPopulation) * p.AdultProportion)
	htn := int(float64(adults) * p.HypertensionPrevalence)
	resistant := int(float64(htn) * p.ResistantHTNProportion)
	uncontrolled := int(float64(resistant) * p.UncontrolledProportion)
	eligible := int(float64(uncontrolled) * p.TreatmentSeekingRate)

	return []CascadeStage{
		{Name: "total_population", Patients: p.TotalPopulation},
		{Name: "adults_18_plus", Patients: adults},
		{Name: "with_hypertension", Patients: htn},
		{Name: "resistant_hypertension", Patients: resistant},
		{Name: "uncontrolled_resistant", Patients: uncontrolled},
		{Name: "eligible_for_treatment", Patients: eligible},
	}
}
