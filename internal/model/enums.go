package model

import "fmt"

// Scenario is an adoption scenario for the new treatment.
// Keep these values stable; they appear in config files and API payloads.
type Scenario string

const (
	ScenarioConservative Scenario = "conservative"
	ScenarioModerate     Scenario = "moderate"
	ScenarioOptimistic   Scenario = "optimistic"
)

// Scenarios lists every adoption scenario in canonical order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioConservative, ScenarioModerate, ScenarioOptimistic}
}

func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios() {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// Treatment is one option in the fourth-line treatment mix.
type Treatment string

const (
	TreatmentIXA001         Treatment = "ixa_001"
	TreatmentSpironolactone Treatment = "spironolactone"
	TreatmentOtherMRA       Treatment = "other_mra"
	TreatmentNone           Treatment = "no_treatment"
)

// Treatments lists the new treatment first, then the existing options.
func Treatments() []Treatment {
	return []Treatment{TreatmentIXA001, TreatmentSpironolactone, TreatmentOtherMRA, TreatmentNone}
}

// ExistingTreatments are the options available in the current world.
func ExistingTreatments() []Treatment {
	return []Treatment{TreatmentSpironolactone, TreatmentOtherMRA, TreatmentNone}
}

// EventType is a clinical event tracked by the event accounting.
type EventType string

const (
	EventStroke        EventType = "stroke"
	EventMI            EventType = "mi"
	EventHF            EventType = "hf"
	EventCKD           EventType = "ckd"
	EventESRD          EventType = "esrd"
	EventCVDeath       EventType = "cv_death"
	EventAllCauseDeath EventType = "all_cause_death"
)

func EventTypes() []EventType {
	return []EventType{EventStroke, EventMI, EventHF, EventCKD, EventESRD, EventCVDeath, EventAllCauseDeath}
}

// IsDeath reports whether the event is death-related. Deaths need cohort
// survival accounting and are left out of events-avoided totals.
func (e EventType) IsDeath() bool {
	return e == EventCVDeath || e == EventAllCauseDeath
}

// SubgroupType is a stratification category.
type SubgroupType string

const (
	SubgroupAge                  SubgroupType = "age"
	SubgroupCKDStage             SubgroupType = "ckd_stage"
	SubgroupPriorCV              SubgroupType = "prior_cv"
	SubgroupDiabetes             SubgroupType = "diabetes"
	SubgroupPrimaryAldosteronism SubgroupType = "primary_aldosteronism"
	SubgroupSecondaryEtiology    SubgroupType = "secondary_htn_etiology"
)

func SubgroupTypes() []SubgroupType {
	return []SubgroupType{
		SubgroupAge,
		SubgroupCKDStage,
		SubgroupPriorCV,
		SubgroupDiabetes,
		SubgroupPrimaryAldosteronism,
		SubgroupSecondaryEtiology,
	}
}

func ParseSubgroupType(s string) (SubgroupType, error) {
	for _, st := range SubgroupTypes() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown subgroup type %q", s)
}
