package enhanced

import (
	"context"
	"errors"
	"math"
	"testing"

	"budget-impact/internal/bim"
	"budget-impact/internal/model"
	"budget-impact/internal/params"
)

func TestFromBaseMatchesCoreCalculator(t *testing.T) {
	base := model.DefaultInputs()
	c := FromBase(base)
	full, err := c.CalculateFull(model.ScenarioModerate, Options{})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	core, err := bim.New(base).Calculate(model.ScenarioModerate)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if full.Base.TotalBudgetImpact != core.TotalBudgetImpact {
		t.Errorf("enhanced base = %v, core = %v", full.Base.TotalBudgetImpact, core.TotalBudgetImpact)
	}
	if full.Events != nil || full.Persistence != nil || full.Extended != nil || full.Subgroups != nil {
		t.Error("optional parts computed without being requested")
	}
}

func TestCalculateFullAllParts(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.SelectedSubgroupTypes = []model.SubgroupType{model.SubgroupPrimaryAldosteronism}
	res, err := New(in).CalculateFull("", AllOptions())
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	if res.Events == nil || res.Persistence == nil || res.Extended == nil {
		t.Fatal("expected events, persistence and extended horizon")
	}
	if n := len(res.Subgroups[model.SubgroupPrimaryAldosteronism]); n != 2 {
		t.Errorf("primary aldosteronism subgroups = %d, want 2", n)
	}

	s := res.Summary()
	for _, k := range []string{"total_5yr_impact", "total_events_avoided", "total_event_costs_avoided", "extended_10yr_impact"} {
		if _, ok := s[k]; !ok {
			t.Errorf("summary missing %q", k)
		}
	}
	if _, ok := s["psa_mean_impact"]; ok {
		t.Error("summary has PSA keys without a PSA run")
	}
}

func TestConfigurationSwitchesGateParts(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.IncludeEvents = false
	in.IncludePersistence = false
	res, err := New(in).CalculateFull("", AllOptions())
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	if res.Events != nil || res.Persistence != nil {
		t.Error("events/persistence computed although disabled in configuration")
	}
	if res.Subgroups != nil {
		t.Error("subgroups computed with no selected subgroup types")
	}
}

func TestEventsAvoided(t *testing.T) {
	in := model.DefaultExtendedInputs()
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{Events: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	ev := res.Events
	for _, e := range []model.EventType{model.EventCVDeath, model.EventAllCauseDeath} {
		if _, ok := ev.Avoided[e]; ok {
			t.Errorf("death event %s should not be counted", e)
		}
	}
	for _, e := range []model.EventType{model.EventStroke, model.EventMI, model.EventHF, model.EventCKD, model.EventESRD} {
		if ev.Avoided[e] <= 0 {
			t.Errorf("%s avoided = %v, want > 0", e, ev.Avoided[e])
		}
		want := ev.Avoided[e] * in.EventCosts.Cost(e).Acute
		if math.Abs(ev.CostsAvoided[e]-want) > 1e-6 {
			t.Errorf("%s cost avoided = %v, want %v", e, ev.CostsAvoided[e], want)
		}
	}

	// Stroke on IXA-001 by hand from the base ledger.
	want := 0.0
	for _, y := range res.Base.Years {
		want += float64(y.Patients.IXA001) * 8 / 1000
	}
	if got := ev.NewWorld[model.EventStroke].IXA001; math.Abs(got-want) > 1e-9 {
		t.Errorf("stroke events on IXA-001 = %v, want %v", got, want)
	}
	if ev.TotalEvents(model.TreatmentIXA001) <= 0 {
		t.Error("TotalEvents(ixa_001) should be positive")
	}

	sumCosts := 0.0
	for _, v := range ev.CostsAvoided {
		sumCosts += v
	}
	if math.Abs(sumCosts-ev.TotalCostsAvoided) > 1e-6 {
		t.Errorf("total costs avoided = %v, sum = %v", ev.TotalCostsAvoided, sumCosts)
	}
}

func TestSubgroupScaling(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.SelectedSubgroupTypes = []model.SubgroupType{model.SubgroupPrimaryAldosteronism, model.SubgroupAge}
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{Subgroups: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	pa := res.Subgroups[model.SubgroupPrimaryAldosteronism]
	with := pa[1]
	if with.Code != "with_primary_aldo" {
		t.Fatalf("second PA subgroup = %s", with.Code)
	}
	// 11232 * 0.17 = 1909.44
	if with.Patients != 1909 {
		t.Errorf("patients = %d, want 1909", with.Patients)
	}
	if math.Abs(with.BudgetImpactPerPatient-with.BudgetImpact5yr/float64(with.Patients)) > 1e-9 {
		t.Errorf("per-patient impact inconsistent")
	}
	if with.TreatmentEffectModifier != 1.70 {
		t.Errorf("modifier = %v, want 1.70", with.TreatmentEffectModifier)
	}
	if len(with.YearlyImpacts) != 5 {
		t.Errorf("yearly impacts = %d, want 5", len(with.YearlyImpacts))
	}
	if with.BudgetImpact5yr >= res.Base.TotalBudgetImpact {
		t.Errorf("subgroup impact %v should be below whole-population impact %v", with.BudgetImpact5yr, res.Base.TotalBudgetImpact)
	}
	if len(res.Subgroups[model.SubgroupAge]) != 3 {
		t.Errorf("age subgroups = %d, want 3", len(res.Subgroups[model.SubgroupAge]))
	}

	// Subgroup runs leave the shared configuration untouched.
	if in.Population.TotalPopulation != 1_000_000 || in.EventRates.Stroke.IXA001 != 8 {
		t.Error("subgroup analysis modified the configuration")
	}
}

func TestSubgroupRiskMultipliersOnIXAOnly(t *testing.T) {
	in := model.DefaultExtendedInputs()
	sg := in.Subgroups.Get(model.SubgroupPrimaryAldosteronism)[1]
	out := subgroupInputs(in, sg)
	if got, want := out.EventRates.HF.IXA001, 15*2.05; math.Abs(got-want) > 1e-9 {
		t.Errorf("hf ixa rate = %v, want %v", got, want)
	}
	if out.EventRates.HF.Spironolactone != 22 {
		t.Errorf("comparator rate changed: %v", out.EventRates.HF.Spironolactone)
	}
	if out.Population.TotalPopulation != 170_000 {
		t.Errorf("total population = %d, want 170000", out.Population.TotalPopulation)
	}
}

func TestSubgroupMultipliersOnlyStrokeMIHF(t *testing.T) {
	in := model.DefaultExtendedInputs()
	sg := model.SubgroupParameters{
		Name:                 "test",
		Proportion:           0.5,
		StrokeRiskMultiplier: 2,
		MIRiskMultiplier:     3,
		HFRiskMultiplier:     4,
		CKDRiskMultiplier:    5,
		DeathRiskMultiplier:  6,
	}
	out := subgroupInputs(in, sg)
	scaled := map[model.EventType]float64{model.EventStroke: 2, model.EventMI: 3, model.EventHF: 4}
	for _, e := range model.EventTypes() {
		want := in.EventRates.Ref(e).IXA001
		if m, ok := scaled[e]; ok {
			want *= m
		}
		if got := out.EventRates.Ref(e).IXA001; math.Abs(got-want) > 1e-9 {
			t.Fatalf("%s ixa rate = %v, want %v", e, got, want)
		}
	}
}

func TestEventsUseLedgerPatientCounts(t *testing.T) {
	in := model.DefaultExtendedInputs()
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{Events: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	for _, e := range []model.EventType{model.EventStroke, model.EventCKD} {
		var newWorld, current float64
		for _, y := range res.Base.Years {
			for _, tr := range model.Treatments() {
				rate := in.EventRates.Rate(e, tr) / 1000
				newWorld += float64(y.Patients.Of(tr)) * rate
				current += float64(y.CurrentPatients.Of(tr)) * rate
			}
		}
		if got := res.Events.NewWorld[e].Sum(); math.Abs(got-newWorld) > 1e-9 {
			t.Fatalf("%s new-world events = %v, want %v", e, got, newWorld)
		}
		if got := res.Events.Avoided[e]; math.Abs(got-(current-newWorld)) > 1e-9 {
			t.Fatalf("%s avoided = %v, want %v", e, got, current-newWorld)
		}
	}
}

func TestPersistence(t *testing.T) {
	in := model.DefaultExtendedInputs()
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{Persistence: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	p := res.Persistence
	for _, tr := range model.Treatments() {
		if len(p.PatientsByYear[tr]) != 5 {
			t.Fatalf("%s years = %d, want 5", tr, len(p.PatientsByYear[tr]))
		}
	}
	for _, r := range p.PersistenceRates[model.TreatmentNone] {
		if r != 1 {
			t.Errorf("no-treatment persistence = %v, want 1", r)
		}
	}
	year1 := res.Base.Years[0].Patients.IXA001
	if got, want := p.PatientsByYear[model.TreatmentIXA001][0], int(float64(year1)*0.85); got != want {
		t.Errorf("ixa persisting year 1 = %d, want %d", got, want)
	}
	rates := p.PersistenceRates[model.TreatmentSpironolactone]
	for i := 1; i < len(rates); i++ {
		if rates[i] >= rates[i-1] {
			t.Errorf("spironolactone persistence not decreasing at year %d", i+1)
		}
	}
	total := 0
	for _, n := range p.PatientsByYear[model.TreatmentIXA001] {
		total += n
	}
	if p.PatientYears[model.TreatmentIXA001] != float64(total) {
		t.Errorf("patient years = %v, want %d", p.PatientYears[model.TreatmentIXA001], total)
	}
}

func TestExtendedHorizonPlateau(t *testing.T) {
	in := model.DefaultExtendedInputs()
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{ExtendedHorizon: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	h := res.Extended
	if len(h.Years) != 10 {
		t.Fatalf("extended years = %d, want 10", len(h.Years))
	}
	if h.TotalImpact <= res.Base.TotalBudgetImpact {
		t.Errorf("10-year impact %v should exceed 5-year %v", h.TotalImpact, res.Base.TotalBudgetImpact)
	}
	for i := 0; i < 5; i++ {
		if h.Years[i].BudgetImpact != res.Base.Years[i].BudgetImpact {
			t.Errorf("year %d differs from base: %v vs %v", i+1, h.Years[i].BudgetImpact, res.Base.Years[i].BudgetImpact)
		}
	}
	for i := 5; i < 10; i++ {
		if h.Years[i].Uptake != 0.40 {
			t.Errorf("year %d uptake = %v, want plateau 0.40", i+1, h.Years[i].Uptake)
		}
		if h.Years[i].BudgetImpact != h.Years[4].BudgetImpact {
			t.Errorf("year %d impact = %v, want plateau %v", i+1, h.Years[i].BudgetImpact, h.Years[4].BudgetImpact)
		}
	}
	if got := res.Summary()["extended_10yr_impact"]; got != h.TotalImpact {
		t.Errorf("summary extended impact = %v, want %v", got, h.TotalImpact)
	}
}

func TestExtendedHorizonBounds(t *testing.T) {
	for _, n := range []int{-1, 0, model.MaxExtendedHorizonYears + 1} {
		in := model.DefaultExtendedInputs()
		in.ExtendedTimeHorizonYears = n
		_, err := New(in).CalculateFull(model.ScenarioModerate, Options{ExtendedHorizon: true})
		if !errors.Is(err, model.ErrYearOutOfRange) {
			t.Fatalf("extended horizon %d: err = %v, want ErrYearOutOfRange", n, err)
		}
	}

	in := model.DefaultExtendedInputs()
	in.ExtendedTimeHorizonYears = model.MaxExtendedHorizonYears
	res, err := New(in).CalculateFull(model.ScenarioModerate, Options{ExtendedHorizon: true})
	if err != nil {
		t.Fatalf("CalculateFull: %v", err)
	}
	if len(res.Extended.Years) != model.MaxExtendedHorizonYears {
		t.Fatalf("extended years = %d, want %d", len(res.Extended.Years), model.MaxExtendedHorizonYears)
	}
}

func TestTornado(t *testing.T) {
	in := model.DefaultExtendedInputs()
	before := in.Clone()
	swings, err := New(in).RunTornadoAnalysis(model.ScenarioModerate)
	if err != nil {
		t.Fatalf("RunTornadoAnalysis: %v", err)
	}
	if len(swings) != 7 {
		t.Fatalf("tornado results = %d, want 7", len(swings))
	}
	positive := 0
	for i, s := range swings {
		if s.Range > 0 {
			positive++
		}
		if i > 0 && s.Range > swings[i-1].Range {
			t.Errorf("not sorted at %d: %v > %v", i, s.Range, swings[i-1].Range)
		}
		if s.Label == "" {
			t.Errorf("%s has no label", s.Parameter)
		}
	}
	if positive < 6 {
		t.Errorf("parameters with positive range = %d, want >= 6", positive)
	}

	for _, tp := range in.Sensitivity.TornadoParameters {
		got, err := params.GetExtended(in, tp.Name)
		if err != nil {
			t.Fatalf("GetExtended(%s): %v", tp.Name, err)
		}
		want, _ := params.GetExtended(before, tp.Name)
		if got != want {
			t.Errorf("%s = %v after tornado, want %v", tp.Name, got, want)
		}
	}
}

func TestTornadoUnknownParameter(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.Sensitivity.TornadoParameters = append(in.Sensitivity.TornadoParameters, model.TornadoParameter{Name: "nope", Low: 0.5, High: 1.5})
	if _, err := New(in).RunTornadoAnalysis(""); !errors.Is(err, params.ErrUnknownParameter) {
		t.Fatalf("err = %v, want ErrUnknownParameter", err)
	}
}

func TestMultiway(t *testing.T) {
	in := model.DefaultExtendedInputs()
	pts, err := New(in).RunMultiwaySensitivity([]ParameterSweep{
		{Parameter: "ixa_001_annual", Values: []float64{5000, 6000, 7000}},
		{Parameter: "treatment_seeking_rate", Values: []float64{0.6, 0.8}},
	}, model.ScenarioModerate)
	if err != nil {
		t.Fatalf("RunMultiwaySensitivity: %v", err)
	}
	if len(pts) != 5 {
		t.Fatalf("points = %d, want 5 (union of one-way sweeps)", len(pts))
	}
	if pts[3].Parameter != "treatment_seeking_rate" || pts[3].EligiblePatients >= pts[4].EligiblePatients {
		t.Errorf("unexpected population sweep: %+v %+v", pts[3], pts[4])
	}
	// Second sweep runs at the configured price, not the last swept value.
	if math.Abs(pts[4].BudgetImpact5yr-pts[1].BudgetImpact5yr) > 1e-6 {
		t.Errorf("base point mismatch: %v vs %v", pts[4].BudgetImpact5yr, pts[1].BudgetImpact5yr)
	}
	if in.Costs.IXA001Annual != 6000 || in.Population.TreatmentSeekingRate != 0.8 {
		t.Error("multiway sweep modified the configuration")
	}

	_, err = New(in).RunMultiwaySensitivity([]ParameterSweep{{Parameter: "bad", Values: []float64{1}}}, "")
	if !errors.Is(err, params.ErrUnknownParameter) {
		t.Errorf("err = %v, want ErrUnknownParameter", err)
	}
}

func TestPSADeterministicWithSeed(t *testing.T) {
	in := model.DefaultExtendedInputs()
	before := in.Clone()
	c := New(in)
	seed := uint64(42)

	a, err := c.RunProbabilisticSensitivity(context.Background(), model.ScenarioModerate, PSAOptions{Iterations: 100, Seed: &seed, Workers: 1})
	if err != nil {
		t.Fatalf("PSA: %v", err)
	}
	b, err := c.RunProbabilisticSensitivity(context.Background(), model.ScenarioModerate, PSAOptions{Iterations: 100, Seed: &seed, Workers: 8})
	if err != nil {
		t.Fatalf("PSA: %v", err)
	}
	if a.Completed != 100 || a.Skipped != 0 {
		t.Fatalf("completed = %d skipped = %d, want 100/0", a.Completed, a.Skipped)
	}
	if a.Impact.Mean != b.Impact.Mean {
		t.Errorf("same seed gave different means: %v vs %v", a.Impact.Mean, b.Impact.Mean)
	}
	for i := range a.ImpactSamples {
		if a.ImpactSamples[i] != b.ImpactSamples[i] {
			t.Fatalf("sample %d differs across worker counts", i)
		}
	}
	if !(a.Impact.CILower <= a.Impact.Mean && a.Impact.Mean <= a.Impact.CIUpper) {
		t.Errorf("CI [%v, %v] does not bracket mean %v", a.Impact.CILower, a.Impact.CIUpper, a.Impact.Mean)
	}
	if a.Impact.ConfidenceLevel != 0.95 {
		t.Errorf("confidence = %v, want 0.95", a.Impact.ConfidenceLevel)
	}

	other := uint64(7)
	d, err := c.RunProbabilisticSensitivity(context.Background(), model.ScenarioModerate, PSAOptions{Iterations: 100, Seed: &other})
	if err != nil {
		t.Fatalf("PSA: %v", err)
	}
	if d.Impact.Mean == a.Impact.Mean {
		t.Error("different seeds gave identical means")
	}

	if in.Costs.IXA001Annual != before.Costs.IXA001Annual ||
		in.Population.ResistantHTNProportion != before.Population.ResistantHTNProportion ||
		in.EventRates.Stroke.IXA001 != before.EventRates.Stroke.IXA001 {
		t.Error("PSA modified the configuration")
	}

	full := &Result{Base: &bim.Result{}, PSA: a}
	if full.Summary()["psa_mean_impact"] != a.Impact.Mean {
		t.Error("summary psa_mean_impact mismatch")
	}
}

func TestPSASkipsNonFiniteIterations(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.Sensitivity.PSADistributions = []model.Distribution{
		{Name: "ixa_001_annual", Kind: model.DistNormal, Param1: math.NaN(), Param2: 1},
	}
	seed := uint64(1)
	res, err := New(in).RunProbabilisticSensitivity(context.Background(), "", PSAOptions{Iterations: 20, Seed: &seed})
	if err != nil {
		t.Fatalf("PSA: %v", err)
	}
	if res.Skipped != 20 || res.Completed != 0 {
		t.Errorf("skipped = %d completed = %d, want 20/0", res.Skipped, res.Completed)
	}
}

func TestPSAInvalidDistribution(t *testing.T) {
	in := model.DefaultExtendedInputs()
	in.Sensitivity.PSADistributions = []model.Distribution{
		{Name: "treatment_seeking_rate", Kind: model.DistBeta, Param1: 0, Param2: 1},
	}
	if _, err := New(in).RunProbabilisticSensitivity(context.Background(), "", PSAOptions{Iterations: 5}); err == nil {
		t.Error("expected error for non-positive beta shape")
	}
}

func TestPSAIterationBounds(t *testing.T) {
	seed := uint64(1)
	for name, tc := range map[string]struct {
		configured, requested int
	}{
		"configured above cap": {configured: MaxPSAIterations + 1},
		"configured negative":  {configured: -3},
		"requested above cap":  {configured: 10, requested: MaxPSAIterations + 1},
	} {
		in := model.DefaultExtendedInputs()
		in.Sensitivity.PSAIterations = tc.configured
		_, err := New(in).RunProbabilisticSensitivity(context.Background(), "", PSAOptions{Iterations: tc.requested, Seed: &seed})
		if !errors.Is(err, ErrIterationsOutOfRange) {
			t.Fatalf("%s: err = %v, want ErrIterationsOutOfRange", name, err)
		}
	}
}

func TestPSACancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seed := uint64(3)
	_, err := New(nil).RunProbabilisticSensitivity(ctx, "", PSAOptions{Iterations: 50, Seed: &seed})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLognormalParams(t *testing.T) {
	mu, sigma := lognormalParams(6000, 600)
	// E[X] = exp(mu + sigma^2/2) recovers the arithmetic mean.
	if got := math.Exp(mu + sigma*sigma/2); math.Abs(got-6000) > 1e-6 {
		t.Errorf("implied mean = %v, want 6000", got)
	}
	variance := (math.Exp(sigma*sigma) - 1) * math.Exp(2*mu+sigma*sigma)
	if math.Abs(math.Sqrt(variance)-600) > 1e-6 {
		t.Errorf("implied sd = %v, want 600", math.Sqrt(variance))
	}
}
