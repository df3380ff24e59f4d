package handlers

import (
	"log"

	"budget-impact/internal/api/models"
	"budget-impact/internal/bim"
	"budget-impact/internal/model"

	"github.com/gin-gonic/gin"
)

// Calculate handles POST /api/v1/calculate
func (e *Env) Calculate(c *gin.Context) {
	var req models.RunRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	res, err := bim.New(&in.Inputs).Calculate("")
	if err != nil {
		respondCalcError(c, err)
		return
	}
	log.Printf("API: calculate %s/%s total=%.0f", in.Country.Code, res.Scenario, res.TotalBudgetImpact)
	e.store(c, "calculate", in, res.Summary(), res)
}

// CompareScenarios handles POST /api/v1/scenarios/compare
func (e *Env) CompareScenarios(c *gin.Context) {
	var req models.RunRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	all, err := bim.New(&in.Inputs).RunAllScenarios()
	if err != nil {
		respondCalcError(c, err)
		return
	}
	summary := make(map[string]any, len(all))
	for _, sc := range model.Scenarios() {
		if r, ok := all[sc]; ok {
			summary[string(sc)+"_total_5yr_impact"] = r.TotalBudgetImpact
		}
	}
	e.store(c, "compare", in, summary, all)
}

// Sensitivity handles POST /api/v1/sensitivity
func (e *Env) Sensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	points, err := bim.New(&in.Inputs).SensitivityAnalysis(req.Parameter, req.Values, "")
	if err != nil {
		respondCalcError(c, err)
		return
	}
	e.store(c, "sensitivity", in, nil, points)
}

// Threshold handles POST /api/v1/threshold
func (e *Env) Threshold(c *gin.Context) {
	var req models.ThresholdRequest
	in, ok := e.bindRun(c, &req)
	if !ok {
		return
	}
	price, found, err := bim.New(&in.Inputs).PriceThresholdAnalysis(req.TargetImpact, "")
	if err != nil {
		respondCalcError(c, err)
		return
	}
	out := models.ThresholdResult{
		TargetImpact: req.TargetImpact,
		Found:        found,
		MinPrice:     bim.ThresholdMinPrice,
		MaxPrice:     bim.ThresholdMaxPrice,
		Currency:     in.Costs.Currency,
	}
	if found {
		out.Price = price
	}
	e.store(c, "threshold", in, nil, out)
}
