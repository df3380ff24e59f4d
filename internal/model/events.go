package model

// EventRates are annual event rates per 1,000 patient-years, per treatment.
type EventRates struct {
	Stroke        ByTreatment `yaml:"stroke" json:"stroke"`
	MI            ByTreatment `yaml:"mi" json:"mi"`
	HF            ByTreatment `yaml:"hf" json:"hf"`
	CKD           ByTreatment `yaml:"ckd" json:"ckd"`
	ESRD          ByTreatment `yaml:"esrd" json:"esrd"`
	CVDeath       ByTreatment `yaml:"cv_death" json:"cv_death"`
	AllCauseDeath ByTreatment `yaml:"all_cause_death" json:"all_cause_death"`
}

func DefaultEventRates() EventRates {
	return EventRates{
		Stroke:        ByTreatment{IXA001: 8, Spironolactone: 12, OtherMRA: 14, NoTreatment: 18},
		MI:            ByTreatment{IXA001: 6, Spironolactone: 9, OtherMRA: 10, NoTreatment: 14},
		HF:            ByTreatment{IXA001: 15, Spironolactone: 22, OtherMRA: 25, NoTreatment: 35},
		CKD:           ByTreatment{IXA001: 20, Spironolactone: 28, OtherMRA: 30, NoTreatment: 40},
		ESRD:          ByTreatment{IXA001: 3, Spironolactone: 5, OtherMRA: 5.5, NoTreatment: 8},
		CVDeath:       ByTreatment{IXA001: 4, Spironolactone: 6, OtherMRA: 7, NoTreatment: 10},
		AllCauseDeath: ByTreatment{IXA001: 12, Spironolactone: 16, OtherMRA: 18, NoTreatment: 24},
	}
}

// Ref returns a pointer to the per-treatment rates for an event.
func (r *EventRates) Ref(e EventType) *ByTreatment {
	switch e {
	case EventStroke:
		return &r.Stroke
	case EventMI:
		return &r.MI
	case EventHF:
		return &r.HF
	case EventCKD:
		return &r.CKD
	case EventESRD:
		return &r.ESRD
	case EventCVDeath:
		return &r.CVDeath
	default:
		return &r.AllCauseDeath
	}
}

// Rate is the per-1,000 annual rate for one event and treatment.
func (r EventRates) Rate(e EventType, t Treatment) float64 {
	return r.Ref(e).Of(t)
}

// EventCost is the acute episode cost and the annual follow-up cost of an event.
type EventCost struct {
	Acute          float64 `yaml:"acute" json:"acute"`
	FollowupAnnual float64 `yaml:"followup_annual" json:"followup_annual"`
}

type EventCosts struct {
	Currency      string    `yaml:"currency" json:"currency"`
	Stroke        EventCost `yaml:"stroke" json:"stroke"`
	MI            EventCost `yaml:"mi" json:"mi"`
	HF            EventCost `yaml:"hf" json:"hf"`
	CKD           EventCost `yaml:"ckd" json:"ckd"`
	ESRD          EventCost `yaml:"esrd" json:"esrd"`
	CVDeath       EventCost `yaml:"cv_death" json:"cv_death"`
	AllCauseDeath EventCost `yaml:"all_cause_death" json:"all_cause_death"`
}

func DefaultEventCosts() EventCosts {
	return EventCosts{
		Currency:      "USD",
		Stroke:        EventCost{Acute: 35_000, FollowupAnnual: 8_000},
		MI:            EventCost{Acute: 28_000, FollowupAnnual: 5_000},
		HF:            EventCost{Acute: 18_000, FollowupAnnual: 12_000},
		CKD:           EventCost{Acute: 5_000, FollowupAnnual: 8_000},
		ESRD:          EventCost{Acute: 50_000, FollowupAnnual: 90_000},
		CVDeath:       EventCost{Acute: 45_000},
		AllCauseDeath: EventCost{Acute: 35_000},
	}
}

func (c EventCosts) Cost(e EventType) EventCost {
	switch e {
	case EventStroke:
		return c.Stroke
	case EventMI:
		return c.MI
	case EventHF:
		return c.HF
	case EventCKD:
		return c.CKD
	case EventESRD:
		return c.ESRD
	case EventCVDeath:
		return c.CVDeath
	default:
		return c.AllCauseDeath
	}
}

// Scale multiplies acute and follow-up costs of every event by m.
func (c EventCosts) Scale(m float64) EventCosts {
	scale := func(ec EventCost) EventCost {
		return EventCost{Acute: ec.Acute * m, FollowupAnnual: ec.FollowupAnnual * m}
	}
	out := c
	out.Stroke = scale(c.Stroke)
	out.MI = scale(c.MI)
	out.HF = scale(c.HF)
	out.CKD = scale(c.CKD)
	out.ESRD = scale(c.ESRD)
	out.CVDeath = scale(c.CVDeath)
	out.AllCauseDeath = scale(c.AllCauseDeath)
	return out
}
