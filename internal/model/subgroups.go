package model

// SubgroupParameters describe one population slice. Risk multipliers are
// relative to the average eligible patient; TreatmentEffectModifier scales the
// expected IXA-001 response (1.0 = average).
type SubgroupParameters struct {
	Name       string  `yaml:"name" json:"name"`
	Code       string  `yaml:"code" json:"code"`
	Proportion float64 `yaml:"proportion" json:"proportion"`

	StrokeRiskMultiplier float64 `yaml:"stroke_risk_multiplier" json:"stroke_risk_multiplier"`
	MIRiskMultiplier     float64 `yaml:"mi_risk_multiplier" json:"mi_risk_multiplier"`
	HFRiskMultiplier     float64 `yaml:"hf_risk_multiplier" json:"hf_risk_multiplier"`
	CKDRiskMultiplier    float64 `yaml:"ckd_risk_multiplier" json:"ckd_risk_multiplier"`
	DeathRiskMultiplier  float64 `yaml:"death_risk_multiplier" json:"death_risk_multiplier"`

	TreatmentEffectModifier float64 `yaml:"treatment_effect_modifier" json:"treatment_effect_modifier"`
}

// RiskMultiplier returns the multiplier for an event. ESRD follows CKD and both
// death types follow the death multiplier.
func (s SubgroupParameters) RiskMultiplier(e EventType) float64 {
	switch e {
	case EventStroke:
		return s.StrokeRiskMultiplier
	case EventMI:
		return s.MIRiskMultiplier
	case EventHF:
		return s.HFRiskMultiplier
	case EventCKD, EventESRD:
		return s.CKDRiskMultiplier
	default:
		return s.DeathRiskMultiplier
	}
}

// SubgroupDefinitions maps each category to its slices, in display order.
type SubgroupDefinitions map[SubgroupType][]SubgroupParameters

func (d SubgroupDefinitions) Get(t SubgroupType) []SubgroupParameters {
	return d[t]
}

func (d SubgroupDefinitions) Clone() SubgroupDefinitions {
	out := make(SubgroupDefinitions, len(d))
	for t, sgs := range d {
		out[t] = append([]SubgroupParameters(nil), sgs...)
	}
	return out
}

func sg(name, code string, proportion, stroke, mi, hf, ckd, death, response float64) SubgroupParameters {
	return SubgroupParameters{
		Name: name, Code: code, Proportion: proportion,
		StrokeRiskMultiplier: stroke, MIRiskMultiplier: mi, HFRiskMultiplier: hf,
		CKDRiskMultiplier: ckd, DeathRiskMultiplier: death,
		TreatmentEffectModifier: response,
	}
}

func DefaultSubgroups() SubgroupDefinitions {
	return SubgroupDefinitions{
		SubgroupAge: {
			sg("Age <65", "age_lt65", 0.35, 0.6, 0.7, 0.5, 0.7, 0.4, 1.1),
			sg("Age 65-74", "age_65_74", 0.40, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0),
			sg("Age 75+", "age_75plus", 0.25, 1.8, 1.5, 2.0, 1.5, 2.5, 0.9),
		},
		SubgroupCKDStage: {
			sg("CKD Stage 1-2 (eGFR≥60)", "ckd_1_2", 0.50, 0.8, 0.8, 0.7, 0.5, 0.7, 1.0),
			sg("CKD Stage 3 (eGFR 30-59)", "ckd_3", 0.35, 1.2, 1.3, 1.4, 1.5, 1.4, 1.0),
			sg("CKD Stage 4 (eGFR 15-29)", "ckd_4", 0.15, 1.8, 1.8, 2.2, 3.0, 2.5, 0.85),
		},
		SubgroupPriorCV: {
			sg("No Prior CV Events", "no_prior_cv", 0.70, 0.7, 0.6, 0.6, 0.9, 0.6, 1.0),
			sg("Prior CV Events", "prior_cv", 0.30, 2.0, 2.5, 2.5, 1.3, 2.5, 1.1),
		},
		SubgroupDiabetes: {
			sg("No Diabetes", "no_diabetes", 0.55, 0.8, 0.7, 0.7, 0.6, 0.7, 1.0),
			sg("With Diabetes", "with_diabetes", 0.45, 1.3, 1.5, 1.5, 1.8, 1.5, 1.05),
		},
		// Aldosterone-driven organ damage raises baseline risk independent of BP.
		SubgroupPrimaryAldosteronism: {
			sg("No Primary Aldosteronism", "no_primary_aldo", 0.83, 0.90, 0.92, 0.78, 0.84, 0.88, 1.0),
			sg("With Primary Aldosteronism", "with_primary_aldo", 0.17, 1.50, 1.40, 2.05, 1.80, 1.60, 1.70),
		},
		SubgroupSecondaryEtiology: {
			sg("Primary Aldosteronism", "pa", 0.17, 1.50, 1.40, 2.05, 1.80, 1.60, 1.70),
			sg("Renal Artery Stenosis", "ras", 0.11, 1.3, 1.3, 1.4, 1.6, 1.3, 1.05),
			sg("Pheochromocytoma", "pheo", 0.01, 1.4, 1.5, 1.5, 1.0, 1.5, 0.40),
			sg("Obstructive Sleep Apnea", "osa", 0.15, 1.2, 1.2, 1.3, 1.0, 1.2, 1.20),
			sg("Essential Hypertension", "essential", 0.56, 0.85, 0.88, 0.80, 0.85, 0.88, 1.0),
		},
	}
}
