package model

import (
	"errors"
	"math"
	"testing"
)

func TestEligiblePatientsDefault(t *testing.T) {
	got := DefaultPopulation().EligiblePatients()
	if got != 11232 {
		t.Fatalf("eligible = %d, want 11232", got)
	}
}

func TestEligiblePatientsZeroInputs(t *testing.T) {
	p := DefaultPopulation()
	p.TreatmentSeekingRate = 0
	if got := p.EligiblePatients(); got != 0 {
		t.Errorf("eligible with zero seeking rate = %d, want 0", got)
	}
	p = DefaultPopulation()
	p.TotalPopulation = 0
	if got := p.EligiblePatients(); got != 0 {
		t.Errorf("eligible with zero population = %d, want 0", got)
	}
}

func TestCascadeMonotoneAndMatchesEligible(t *testing.T) {
	pops := []PopulationConfig{DefaultPopulation()}
	for _, c := range Countries() {
		pops = append(pops, c.Population())
	}
	odd := DefaultPopulation()
	odd.TotalPopulation = 123_457
	odd.HypertensionPrevalence = 0.333
	pops = append(pops, odd)

	for _, p := range pops {
		stages := p.Cascade()
		if len(stages) != 6 {
			t.Fatalf("stages = %d, want 6", len(stages))
		}
		for i := 1; i < len(stages); i++ {
			if stages[i].Patients > stages[i-1].Patients {
				t.Errorf("stage %s (%d) > %s (%d)", stages[i].Name, stages[i].Patients, stages[i-1].Name, stages[i-1].Patients)
			}
		}
		last := stages[len(stages)-1].Patients
		if d := last - p.EligiblePatients(); d < -1 || d > 1 {
			t.Errorf("cascade end %d vs eligible %d differ by more than 1", last, p.EligiblePatients())
		}
	}
}

func TestUptakeOutOfRange(t *testing.T) {
	m := DefaultMarket()
	for _, year := range []int{0, 6, -1} {
		if _, err := m.Uptake(ScenarioModerate, year); !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("Uptake(year=%d) err = %v, want ErrYearOutOfRange", year, err)
		}
	}
	u, err := m.Uptake(ScenarioModerate, 5)
	if err != nil {
		t.Fatalf("Uptake: %v", err)
	}
	if u != 0.40 {
		t.Errorf("moderate year 5 uptake = %v, want 0.40", u)
	}
	if _, err := m.Uptake(Scenario("aggressive"), 1); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestSharesSumToOne(t *testing.T) {
	m := DefaultMarket()
	for _, sc := range Scenarios() {
		for year := 1; year <= 5; year++ {
			s, err := m.Shares(sc, year)
			if err != nil {
				t.Fatalf("Shares(%s, %d): %v", sc, year, err)
			}
			if math.Abs(s.Sum()-1) > 1e-6 {
				t.Errorf("%s year %d shares sum = %v", sc, year, s.Sum())
			}
			if s.IXA001 <= 0 {
				t.Errorf("%s year %d ixa share = %v, want > 0", sc, year, s.IXA001)
			}
		}
	}
}

func TestSharesFloorAndZeroTotal(t *testing.T) {
	m := DefaultMarket()
	s := m.SharesForUptake(3.0)
	if s.Spironolactone != 0 || s.OtherMRA != 0 || s.NoTreatment != 0 {
		t.Errorf("existing shares not floored at zero: %+v", s)
	}
	if math.Abs(s.IXA001-1) > 1e-9 {
		t.Errorf("ixa share = %v, want 1", s.IXA001)
	}

	empty := MarketConfig{}
	z := empty.SharesForUptake(0)
	if z.Sum() != 0 {
		t.Errorf("zero market shares sum = %v, want 0", z.Sum())
	}
}

func TestMarketValidate(t *testing.T) {
	m := DefaultMarket()
	if !m.Validate() {
		t.Error("default market should validate")
	}
	m.BaselineSpironolactone = 0.9
	if m.Validate() {
		t.Error("baseline summing to 1.3 should not validate")
	}
}

func TestNetAnnualCost(t *testing.T) {
	c := DefaultCosts()
	cases := []struct {
		tr      Treatment
		offsets bool
		want    float64
	}{
		{TreatmentIXA001, true, 5380},
		{TreatmentIXA001, false, 6580},
		{TreatmentSpironolactone, true, 220},
		{TreatmentOtherMRA, true, 1940},
		{TreatmentNone, true, 420},
		{TreatmentNone, false, 420},
	}
	for _, tc := range cases {
		if got := c.NetAnnualCost(tc.tr, tc.offsets); got != tc.want {
			t.Errorf("NetAnnualCost(%s, %v) = %v, want %v", tc.tr, tc.offsets, got, tc.want)
		}
	}
}

func TestCountryCostScaling(t *testing.T) {
	us := DefaultCosts()
	uk, ok := Country("uk")
	if !ok {
		t.Fatal("UK preset not found")
	}
	ukCosts := uk.Costs()
	if ukCosts.Currency != "GBP" {
		t.Errorf("currency = %q, want GBP", ukCosts.Currency)
	}
	for _, tr := range Treatments() {
		for _, off := range []bool{true, false} {
			want := 0.40 * us.NetAnnualCost(tr, off)
			got := ukCosts.NetAnnualCost(tr, off)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("UK %s offsets=%v = %v, want %v", tr, off, got, want)
			}
		}
	}
}

func TestCountryFallback(t *testing.T) {
	c, ok := Country("ZZ")
	if ok {
		t.Error("unknown country reported as found")
	}
	if c.Code != "US" {
		t.Errorf("fallback = %s, want US", c.Code)
	}
	if len(Countries()) != 6 {
		t.Errorf("countries = %d, want 6", len(Countries()))
	}
}

func TestPersistence(t *testing.T) {
	p := DefaultPersistence()
	if got := p.Persistence(TreatmentIXA001, 1); math.Abs(got-0.85) > 1e-12 {
		t.Errorf("ixa year 1 persistence = %v, want 0.85", got)
	}
	want := 0.85 * 0.92 * 0.92
	if got := p.Persistence(TreatmentIXA001, 3); math.Abs(got-want) > 1e-12 {
		t.Errorf("ixa year 3 persistence = %v, want %v", got, want)
	}
	p.DiscontinuationYear1.NoTreatment = 0.5
	if got := p.Persistence(TreatmentNone, 4); got != 1 {
		t.Errorf("no-treatment persistence = %v, want 1", got)
	}
}

func TestSubgroupProportionsSumToOne(t *testing.T) {
	defs := DefaultSubgroups()
	for _, st := range SubgroupTypes() {
		sgs := defs.Get(st)
		if len(sgs) == 0 {
			t.Errorf("no subgroups for %s", st)
			continue
		}
		total := 0.0
		for _, s := range sgs {
			total += s.Proportion
		}
		if math.Abs(total-1) > 0.01 {
			t.Errorf("%s proportions sum = %v", st, total)
		}
	}
	if n := len(defs.Get(SubgroupPrimaryAldosteronism)); n != 2 {
		t.Errorf("primary aldosteronism subgroups = %d, want 2", n)
	}
}

func TestRiskMultiplierMapping(t *testing.T) {
	s := sg("x", "x", 1, 1.1, 1.2, 1.3, 1.4, 1.5, 1)
	want := map[EventType]float64{
		EventStroke: 1.1, EventMI: 1.2, EventHF: 1.3, EventCKD: 1.4, EventESRD: 1.4,
		EventCVDeath: 1.5, EventAllCauseDeath: 1.5,
	}
	for e, w := range want {
		if got := s.RiskMultiplier(e); got != w {
			t.Errorf("RiskMultiplier(%s) = %v, want %v", e, got, w)
		}
	}
}

func TestInputsCloneIsDeep(t *testing.T) {
	in := DefaultInputs()
	c := in.Clone()
	c.Market.UptakeCurves[ScenarioModerate][0] = 0.99
	c.Costs.IXA001Annual = 1
	if in.Market.UptakeCurves[ScenarioModerate][0] != 0.10 {
		t.Error("clone shares uptake curves with original")
	}
	if in.Costs.IXA001Annual != 6000 {
		t.Error("clone shares costs with original")
	}

	ext := DefaultExtendedInputs()
	ec := ext.Clone()
	ec.Subgroups[SubgroupAge][0].Proportion = 0
	ec.Sensitivity.PSADistributions[0].Param1 = 0
	ec.EventRates.Stroke.IXA001 = 0
	if ext.Subgroups[SubgroupAge][0].Proportion != 0.35 {
		t.Error("extended clone shares subgroups with original")
	}
	if ext.Sensitivity.PSADistributions[0].Param1 != 6000 {
		t.Error("extended clone shares PSA distributions with original")
	}
	if ext.EventRates.Stroke.IXA001 != 8 {
		t.Error("extended clone shares event rates with original")
	}
}

func TestValidate(t *testing.T) {
	if errs := DefaultInputs().Validate(); len(errs) != 0 {
		t.Errorf("default inputs invalid: %v", errs)
	}
	if errs := DefaultExtendedInputs().Validate(); len(errs) != 0 {
		t.Errorf("default extended inputs invalid: %v", errs)
	}

	in := DefaultInputs()
	in.Population.TotalPopulation = 0
	in.TimeHorizonYears = 7
	in.Market.BaselineNoTreatment = 0.5
	if errs := in.Validate(); len(errs) != 3 {
		t.Errorf("errors = %v, want 3", errs)
	}

	ext := DefaultExtendedInputs()
	ext.Subgroups[SubgroupDiabetes][0].Proportion = 0.9
	ext.ExtendedTimeHorizonYears = 3
	if errs := ext.Validate(); len(errs) != 2 {
		t.Errorf("errors = %v, want 2", errs)
	}
}

func TestExtendedForCountryScalesEventCosts(t *testing.T) {
	de := ExtendedForCountry("DE")
	if de.EventCosts.Stroke.Acute != 35_000*0.50 {
		t.Errorf("DE stroke acute = %v, want %v", de.EventCosts.Stroke.Acute, 35_000*0.50)
	}
	if de.EventCosts.Currency != "EUR" {
		t.Errorf("event cost currency = %q, want EUR", de.EventCosts.Currency)
	}
	if de.Country.Code != "DE" || de.Population.TotalPopulation != 500_000 {
		t.Errorf("DE population/country not applied: %s %d", de.Country.Code, de.Population.TotalPopulation)
	}
	if de.ExtendedTimeHorizonYears != 10 || de.PlateauYear != 5 {
		t.Errorf("extended horizon = %d plateau = %d", de.ExtendedTimeHorizonYears, de.PlateauYear)
	}
}

func TestParseEnums(t *testing.T) {
	if sc, err := ParseScenario("optimistic"); err != nil || sc != ScenarioOptimistic {
		t.Errorf("ParseScenario = %v, %v", sc, err)
	}
	if _, err := ParseScenario("Moderate"); err == nil {
		t.Error("scenario parsing should be exact")
	}
	if st, err := ParseSubgroupType("ckd_stage"); err != nil || st != SubgroupCKDStage {
		t.Errorf("ParseSubgroupType = %v, %v", st, err)
	}
	if !EventCVDeath.IsDeath() || EventStroke.IsDeath() {
		t.Error("IsDeath classification wrong")
	}
}
