package model

// PersistenceConfig holds annual discontinuation rates. Year 1 is typically
// higher than the steady state that applies from year 2 on. The no-treatment
// option never discontinues, whatever is configured for it.
type PersistenceConfig struct {
	DiscontinuationYear1     ByTreatment `yaml:"discontinuation_year1" json:"discontinuation_year1"`
	DiscontinuationYear2Plus ByTreatment `yaml:"discontinuation_year2_plus" json:"discontinuation_year2_plus"`
}

func DefaultPersistence() PersistenceConfig {
	return PersistenceConfig{
		DiscontinuationYear1:     ByTreatment{IXA001: 0.15, Spironolactone: 0.25, OtherMRA: 0.20},
		DiscontinuationYear2Plus: ByTreatment{IXA001: 0.08, Spironolactone: 0.12, OtherMRA: 0.10},
	}
}

func (p PersistenceConfig) DiscontinuationRate(t Treatment, year int) float64 {
	if t == TreatmentNone {
		return 0
	}
	if year == 1 {
		return p.DiscontinuationYear1.Of(t)
	}
	return p.DiscontinuationYear2Plus.Of(t)
}

// Persistence is the cumulative fraction still on treatment at the end of year.
func (p PersistenceConfig) Persistence(t Treatment, year int) float64 {
	persistence := 1.0
	for y := 1; y <= year; y++ {
		persistence *= 1.0 - p.DiscontinuationRate(t, y)
	}
	return persistence
}
