package handlers

import (
	"log"

	"budget-impact/internal/api/models"
	"budget-impact/internal/enhanced"

	"github.com/gin-gonic/gin"
)

func psaOptions(o models.PSAOptions) enhanced.PSAOptions {
	return enhanced.PSAOptions{Iterations: o.Iterations, Seed: o.Seed, Workers: o.Workers}
}

// Full handles POST /api/v1/full
func (e *Env) Full(c *gin.Context) {
	var req models.FullRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	opts := enhanced.AllOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	calc := enhanced.New(in)
	res, err := calc.CalculateFull("", opts)
	if err != nil {
		respondCalcError(c, err)
		return
	}
	if req.IncludeTornado {
		if res.Tornado, err = calc.RunTornadoAnalysis(""); err != nil {
			respondCalcError(c, err)
			return
		}
	}
	if req.IncludePSA {
		if res.PSA, err = calc.RunProbabilisticSensitivity(c.Request.Context(), "", psaOptions(req.PSA)); err != nil {
			respondCalcError(c, err)
			return
		}
	}
	e.store(c, "full", in, res.Summary(), res)
}

// Tornado handles POST /api/v1/tornado
func (e *Env) Tornado(c *gin.Context) {
	var req models.RunRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	swings, err := enhanced.New(in).RunTornadoAnalysis("")
	if err != nil {
		respondCalcError(c, err)
		return
	}
	e.store(c, "tornado", in, nil, swings)
}

// Multiway handles POST /api/v1/multiway
func (e *Env) Multiway(c *gin.Context) {
	var req models.MultiwayRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	points, err := enhanced.New(in).RunMultiwaySensitivity(req.Sweeps, "")
	if err != nil {
		respondCalcError(c, err)
		return
	}
	e.store(c, "multiway", in, nil, points)
}

// PSA handles POST /api/v1/psa
func (e *Env) PSA(c *gin.Context) {
	var req models.PSARequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	res, err := enhanced.New(in).RunProbabilisticSensitivity(c.Request.Context(), "", psaOptions(req.PSAOptions))
	if err != nil {
		respondCalcError(c, err)
		return
	}
	log.Printf("API: psa %s seed=%d completed=%d skipped=%d", res.Scenario, res.Seed, res.Completed, res.Skipped)
	summary := map[string]any{
		"iterations":           res.Iterations,
		"completed":            res.Completed,
		"skipped":              res.Skipped,
		"mean_impact":          res.Impact.Mean,
		"median_impact":        res.Impact.Median,
		"ci_lower":             res.Impact.CILower,
		"ci_upper":             res.Impact.CIUpper,
		"prob_budget_increase": res.ProbBudgetIncrease(),
	}
	if !req.IncludeSamples {
		res.ImpactSamples, res.PMPMSamples = nil, nil
	}
	e.store(c, "psa", in, summary, res)
}
