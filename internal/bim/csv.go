package bim

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteLedgerCSV writes one row per year to path.
func WriteLedgerCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedger(f, res)
}

// WriteLedger writes the yearly ledger as CSV to w.
func WriteLedger(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"scenario",
		"year",
		"uptake",
		"share_ixa_001",
		"share_spironolactone",
		"share_other_mra",
		"share_no_treatment",
		"patients_ixa_001",
		"patients_spironolactone",
		"patients_other_mra",
		"patients_no_treatment",
		"cost_ixa_001",
		"cost_spironolactone",
		"cost_other_mra",
		"cost_no_treatment",
		"cost_new_world",
		"cost_current_world",
		"budget_impact",
		"cum_budget_impact",
		"pmpm",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range res.Years {
		row := []string{
			string(res.Scenario),
			strconv.Itoa(r.Year),
			fmtFloat(r.Uptake),
			fmtFloat(r.Shares.IXA001),
			fmtFloat(r.Shares.Spironolactone),
			fmtFloat(r.Shares.OtherMRA),
			fmtFloat(r.Shares.NoTreatment),
			strconv.Itoa(r.Patients.IXA001),
			strconv.Itoa(r.Patients.Spironolactone),
			strconv.Itoa(r.Patients.OtherMRA),
			strconv.Itoa(r.Patients.NoTreatment),
			fmtMoney(r.Costs.IXA001),
			fmtMoney(r.Costs.Spironolactone),
			fmtMoney(r.Costs.OtherMRA),
			fmtMoney(r.Costs.NoTreatment),
			fmtMoney(r.CostNewWorld),
			fmtMoney(r.CostCurrentWorld),
			fmtMoney(r.BudgetImpact),
			fmtMoney(r.CumBudgetImpact),
			fmtFloat(r.PMPM),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtMoney(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
