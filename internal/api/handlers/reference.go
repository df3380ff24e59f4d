package handlers

import (
	"net/http"

	"budget-impact/internal/api/models"
	"budget-impact/internal/model"
	"budget-impact/internal/params"

	"github.com/gin-gonic/gin"
)

// ListCountries handles GET /api/v1/countries
func ListCountries(c *gin.Context) {
	presets := model.Countries()
	countries := make([]models.CountryInfo, 0, len(presets))
	for _, p := range presets {
		countries = append(countries, models.CountryInfo{
			Code:           p.Code,
			Name:           p.Name,
			Currency:       p.Currency,
			CurrencySymbol: p.CurrencySymbol,
			Population:     p.DefaultPopulation,
			CostMultiplier: p.CostMultiplier,
		})
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

// ListScenarios handles GET /api/v1/scenarios
func ListScenarios(c *gin.Context) {
	market := model.DefaultMarket()
	scenarios := make([]models.ScenarioInfo, 0, len(model.Scenarios()))
	for _, sc := range model.Scenarios() {
		scenarios = append(scenarios, models.ScenarioInfo{
			Name:   string(sc),
			Uptake: market.UptakeCurves[sc],
		})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// ListParameters handles GET /api/v1/parameters
//
// Defaults are the US preset values.
func ListParameters(c *gin.Context) {
	defaults := model.DefaultExtendedInputs()
	names := params.Names()
	out := make([]models.ParameterInfo, 0, len(names))
	for _, name := range names {
		p, err := params.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, models.ParameterInfo{
			Name:    name,
			Group:   p.Group.String(),
			Default: p.Get(defaults),
		})
	}
	c.JSON(http.StatusOK, gin.H{"parameters": out})
}
