package model

// CostConfig holds annual per-patient costs in the configured currency.
// Avoided-event offsets come from the cost-effectiveness model and represent
// downstream savings from fewer cardiovascular events.
type CostConfig struct {
	Currency string `yaml:"currency" json:"currency"`

	// Drug
	IXA001Annual         float64 `yaml:"ixa_001_annual" json:"ixa_001_annual"`
	SpironolactoneAnnual float64 `yaml:"spironolactone_annual" json:"spironolactone_annual"`
	OtherMRAAnnual       float64 `yaml:"other_mra_annual" json:"other_mra_annual"`
	NoTreatmentAnnual    float64 `yaml:"no_treatment_annual" json:"no_treatment_annual"`

	// Monitoring
	MonitoringIXA001         float64 `yaml:"monitoring_ixa_001" json:"monitoring_ixa_001"`
	MonitoringSpironolactone float64 `yaml:"monitoring_spironolactone" json:"monitoring_spironolactone"`
	MonitoringOtherMRA       float64 `yaml:"monitoring_other_mra" json:"monitoring_other_mra"`
	MonitoringNoTreatment    float64 `yaml:"monitoring_no_treatment" json:"monitoring_no_treatment"`

	// Shared across every option.
	OfficeVisitsAnnual float64 `yaml:"office_visits_annual" json:"office_visits_annual"`

	// Adverse event management
	AEManagementIXA001         float64 `yaml:"ae_management_ixa_001" json:"ae_management_ixa_001"`
	AEManagementSpironolactone float64 `yaml:"ae_management_spironolactone" json:"ae_management_spironolactone"`
	AEManagementOtherMRA       float64 `yaml:"ae_management_other_mra" json:"ae_management_other_mra"`
	AEManagementNoTreatment    float64 `yaml:"ae_management_no_treatment" json:"ae_management_no_treatment"`

	// Offsets. No treatment has none.
	AvoidedEventsIXA001Annual         float64 `yaml:"avoided_events_ixa_001_annual" json:"avoided_events_ixa_001_annual"`
	AvoidedEventsSpironolactoneAnnual float64 `yaml:"avoided_events_spironolactone_annual" json:"avoided_events_spironolactone_annual"`
	AvoidedEventsOtherMRAAnnual       float64 `yaml:"avoided_events_other_mra_annual" json:"avoided_events_other_mra_annual"`
}

// DefaultCosts returns US list costs.
func DefaultCosts() CostConfig {
	return CostConfig{
		Currency: "USD",

		IXA001Annual:         6_000,
		SpironolactoneAnnual: 180,
		OtherMRAAnnual:       1_800,
		NoTreatmentAnnual:    0,

		MonitoringIXA001:         180,
		MonitoringSpironolactone: 240,
		MonitoringOtherMRA:       240,
		MonitoringNoTreatment:    120,

		OfficeVisitsAnnual: 300,

		AEManagementIXA001:         100,
		AEManagementSpironolactone: 300,
		AEManagementOtherMRA:       200,
		AEManagementNoTreatment:    0,

		AvoidedEventsIXA001Annual:         1_200,
		AvoidedEventsSpironolactoneAnnual: 800,
		AvoidedEventsOtherMRAAnnual:       600,
	}
}

// Scale multiplies every cost field by m. Currency is left untouched.
func (c CostConfig) Scale(m float64) CostConfig {
	out := c
	out.IXA001Annual *= m
	out.SpironolactoneAnnual *= m
	out.OtherMRAAnnual *= m
	out.NoTreatmentAnnual *= m
	out.MonitoringIXA001 *= m
	out.MonitoringSpironolactone *= m
	out.MonitoringOtherMRA *= m
	out.MonitoringNoTreatment *= m
	out.OfficeVisitsAnnual *= m
	out.AEManagementIXA001 *= m
	out.AEManagementSpironolactone *= m
	out.AEManagementOtherMRA *= m
	out.AEManagementNoTreatment *= m
	out.AvoidedEventsIXA001Annual *= m
	out.AvoidedEventsSpironolactoneAnnual *= m
	out.AvoidedEventsOtherMRAAnnual *= m
	return out
}

// NetAnnualCost is drug + monitoring + office visits + AE management, less the
// avoided-event offset when includeOffsets is set.
func (c CostConfig) NetAnnualCost(t Treatment, includeOffsets bool) float64 {
	var base, offset float64
	switch t {
	case TreatmentIXA001:
		base = c.IXA001Annual + c.MonitoringIXA001 + c.OfficeVisitsAnnual + c.AEManagementIXA001
		offset = c.AvoidedEventsIXA001Annual
	case TreatmentSpironolactone:
		base = c.SpironolactoneAnnual + c.MonitoringSpironolactone + c.OfficeVisitsAnnual + c.AEManagementSpironolactone
		offset = c.AvoidedEventsSpironolactoneAnnual
	case TreatmentOtherMRA:
		base = c.OtherMRAAnnual + c.MonitoringOtherMRA + c.OfficeVisitsAnnual + c.AEManagementOtherMRA
		offset = c.AvoidedEventsOtherMRAAnnual
	default:
		base = c.NoTreatmentAnnual + c.MonitoringNoTreatment + c.OfficeVisitsAnnual + c.AEManagementNoTreatment
	}
	if !includeOffsets {
		offset = 0
	}
	return base - offset
}

// NetAnnualCosts evaluates NetAnnualCost for every option.
func (c CostConfig) NetAnnualCosts(includeOffsets bool) ByTreatment {
	return ByTreatment{
		IXA001:         c.NetAnnualCost(TreatmentIXA001, includeOffsets),
		Spironolactone: c.NetAnnualCost(TreatmentSpironolactone, includeOffsets),
		OtherMRA:       c.NetAnnualCost(TreatmentOtherMRA, includeOffsets),
		NoTreatment:    c.NetAnnualCost(TreatmentNone, includeOffsets),
	}
}
