package main

import (
	"fmt"
	"io"
	"sort"

	"budget-impact/internal/analysis"
	"budget-impact/internal/bim"
	"budget-impact/internal/enhanced"
	"budget-impact/internal/model"
	"budget-impact/internal/report"
)

func money(sym string, v float64) string { return report.Money(sym, v, 0) }

func cents(sym string, v float64) string { return report.Money(sym, v, 2) }

func printResult(w io.Writer, sym string, res *bim.Result) {
	fmt.Fprintf(w, "Scenario: %s   Eligible patients: %d   Covered lives: %d\n\n",
		res.Scenario, res.EligiblePatients, res.TotalPopulation)
	fmt.Fprintf(w, "%-5s %-8s %-8s %-16s %-16s %-16s %-10s\n",
		"year", "uptake", "ixa_pts", "new_world", "current_world", "impact", "pmpm")
	for _, y := range res.Years {
		fmt.Fprintf(w, "%-5d %-8.0f %-8d %-16s %-16s %-16s %-10s\n",
			y.Year,
			y.Uptake*100,
			y.Patients.IXA001,
			money(sym, y.CostNewWorld),
			money(sym, y.CostCurrentWorld),
			money(sym, y.BudgetImpact),
			cents(sym, y.PMPM),
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total %d-year impact:     %s\n", len(res.Years), money(sym, res.TotalBudgetImpact))
	fmt.Fprintf(w, "Average annual impact:    %s\n", money(sym, res.AverageAnnualImpact))
	fmt.Fprintf(w, "PMPM year 1 / final:      %s / %s\n", cents(sym, res.PMPMYear1), cents(sym, res.PMPMFinal))
	fmt.Fprintf(w, "Incremental cost/patient: %s\n", money(sym, res.IncrementalCostPerPatient))
}

func printScenarios(w io.Writer, sym string, all map[model.Scenario]*bim.Result) {
	fmt.Fprintf(w, "%-14s %-16s %-16s %-10s %-10s\n", "scenario", "total_impact", "avg_annual", "pmpm_y1", "pmpm_final")
	for _, sc := range model.Scenarios() {
		r, ok := all[sc]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-14s %-16s %-16s %-10s %-10s\n",
			sc,
			money(sym, r.TotalBudgetImpact),
			money(sym, r.AverageAnnualImpact),
			cents(sym, r.PMPMYear1),
			cents(sym, r.PMPMFinal),
		)
	}
}

func printPoints(w io.Writer, sym string, points []bim.SensitivityPoint) {
	fmt.Fprintf(w, "%-34s %-14s %-16s %-10s %-8s\n", "parameter", "value", "impact_5yr", "pmpm_y5", "eligible")
	for _, p := range points {
		fmt.Fprintf(w, "%-34s %-14g %-16s %-10s %-8d\n",
			p.Parameter, p.Value, money(sym, p.BudgetImpact5yr), cents(sym, p.PMPMYear5), p.EligiblePatients)
	}
}

func printThreshold(w io.Writer, sym string, target, price float64, found bool) {
	if !found {
		fmt.Fprintf(w, "No IXA-001 price between %s and %s gives a 5-year impact of %s\n",
			money(sym, bim.ThresholdMinPrice), money(sym, bim.ThresholdMaxPrice), money(sym, target))
		return
	}
	fmt.Fprintf(w, "IXA-001 annual price for a 5-year impact of %s: %s\n", money(sym, target), money(sym, price))
}

func printTornado(w io.Writer, sym string, swings []analysis.Swing) {
	fmt.Fprintf(w, "%-4s %-32s %-16s %-16s %-16s\n", "rank", "parameter", "impact_low", "impact_high", "range")
	for i, s := range swings {
		fmt.Fprintf(w, "%-4d %-32s %-16s %-16s %-16s\n",
			i+1, s.Label, money(sym, s.ImpactAtLow), money(sym, s.ImpactAtHigh), money(sym, s.Range))
	}
}

func printPSA(w io.Writer, sym string, res *enhanced.PSAResult) {
	d := res.Impact
	fmt.Fprintf(w, "PSA %s: %d iterations (seed %d), %d completed, %d skipped\n",
		res.Scenario, res.Iterations, res.Seed, res.Completed, res.Skipped)
	fmt.Fprintf(w, "Mean 5-year impact: %s (sd %s)\n", money(sym, d.Mean), money(sym, d.StdDev))
	fmt.Fprintf(w, "Median:             %s\n", money(sym, d.Median))
	fmt.Fprintf(w, "%.0f%% interval:       %s to %s\n", d.ConfidenceLevel*100, money(sym, d.CILower), money(sym, d.CIUpper))
	fmt.Fprintf(w, "P(budget increase): %.1f%%\n", res.ProbBudgetIncrease()*100)
	fmt.Fprintf(w, "Mean final PMPM:    %s\n", cents(sym, res.PMPM.Mean))
}

func printFull(w io.Writer, sym string, res *enhanced.Result) {
	printResult(w, sym, res.Base)

	if ev := res.Events; ev != nil {
		fmt.Fprintf(w, "\nClinical events avoided over %d years\n", len(res.Base.Years))
		fmt.Fprintf(w, "%-16s %-10s %-16s %-16s\n", "event", "avoided", "costs_avoided", "followup_1yr")
		for _, e := range model.EventTypes() {
			if e.IsDeath() {
				continue
			}
			fmt.Fprintf(w, "%-16s %-10.1f %-16s %-16s\n",
				e, ev.Avoided[e], money(sym, ev.CostsAvoided[e]), money(sym, ev.FollowupCostExposure[e]))
		}
		fmt.Fprintf(w, "Total: %.1f events, %s\n", ev.TotalEventsAvoided, money(sym, ev.TotalCostsAvoided))
	}

	if len(res.Subgroups) > 0 {
		types := make([]string, 0, len(res.Subgroups))
		for t := range res.Subgroups {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(w, "\nSubgroups by %s\n", t)
			fmt.Fprintf(w, "%-32s %-8s %-8s %-16s %-12s\n", "subgroup", "share", "patients", "impact_5yr", "per_patient")
			for _, sg := range res.Subgroups[model.SubgroupType(t)] {
				fmt.Fprintf(w, "%-32s %-8.0f %-8d %-16s %-12s\n",
					sg.Name, sg.Proportion*100, sg.Patients, money(sym, sg.BudgetImpact5yr), money(sym, sg.BudgetImpactPerPatient))
			}
		}
	}

	if p := res.Persistence; p != nil {
		fmt.Fprintln(w, "\nPatient-years on treatment")
		for _, t := range model.Treatments() {
			if py, ok := p.PatientYears[t]; ok {
				fmt.Fprintf(w, "%-16s %.0f\n", t, py)
			}
		}
	}

	if x := res.Extended; x != nil {
		fmt.Fprintf(w, "\n%d-year impact (uptake held from year %d): %s\n",
			len(x.Years), x.PlateauYear, money(sym, x.TotalImpact))
	}

	if len(res.Tornado) > 0 {
		fmt.Fprintln(w)
		printTornado(w, sym, res.Tornado)
	}
	if res.PSA != nil {
		fmt.Fprintln(w)
		printPSA(w, sym, res.PSA)
	}
}
