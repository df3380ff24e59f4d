package model

import "strings"

// CountryConfig carries country-specific defaults. CostMultiplier is relative to
// US list costs and is applied uniformly to every cost field.
type CountryConfig struct {
	Code           string `yaml:"country_code" json:"country_code"`
	Name           string `yaml:"country_name" json:"country_name"`
	Currency       string `yaml:"currency" json:"currency"`
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"`

	DefaultPopulation      int     `yaml:"default_population" json:"default_population"`
	AdultProportion        float64 `yaml:"adult_proportion" json:"adult_proportion"`
	HypertensionPrevalence float64 `yaml:"hypertension_prevalence" json:"hypertension_prevalence"`
	ResistantHTNProportion float64 `yaml:"resistant_htn_proportion" json:"resistant_htn_proportion"`

	CostMultiplier float64 `yaml:"cost_multiplier" json:"cost_multiplier"`
	// Reporting only; the engine never converts currencies.
	ExchangeRateToUSD float64 `yaml:"exchange_rate_to_usd" json:"exchange_rate_to_usd"`
}

var (
	CountryUS = CountryConfig{
		Code: "US", Name: "United States", Currency: "USD", CurrencySymbol: "$",
		DefaultPopulation: 1_000_000, AdultProportion: 0.78, HypertensionPrevalence: 0.30, ResistantHTNProportion: 0.12,
		CostMultiplier: 1.0, ExchangeRateToUSD: 1.0,
	}
	CountryUK = CountryConfig{
		Code: "UK", Name: "United Kingdom", Currency: "GBP", CurrencySymbol: "£",
		DefaultPopulation: 500_000, AdultProportion: 0.80, HypertensionPrevalence: 0.28, ResistantHTNProportion: 0.10,
		CostMultiplier: 0.40, ExchangeRateToUSD: 1.27,
	}
	CountryDE = CountryConfig{
		Code: "DE", Name: "Germany", Currency: "EUR", CurrencySymbol: "€",
		DefaultPopulation: 500_000, AdultProportion: 0.81, HypertensionPrevalence: 0.32, ResistantHTNProportion: 0.11,
		CostMultiplier: 0.50, ExchangeRateToUSD: 1.08,
	}
	CountryFR = CountryConfig{
		Code: "FR", Name: "France", Currency: "EUR", CurrencySymbol: "€",
		DefaultPopulation: 500_000, AdultProportion: 0.79, HypertensionPrevalence: 0.30, ResistantHTNProportion: 0.11,
		CostMultiplier: 0.45, ExchangeRateToUSD: 1.08,
	}
	CountryIT = CountryConfig{
		Code: "IT", Name: "Italy", Currency: "EUR", CurrencySymbol: "€",
		DefaultPopulation: 500_000, AdultProportion: 0.81, HypertensionPrevalence: 0.33, ResistantHTNProportion: 0.12,
		CostMultiplier: 0.42, ExchangeRateToUSD: 1.08,
	}
	CountryES = CountryConfig{
		Code: "ES", Name: "Spain", Currency: "EUR", CurrencySymbol: "€",
		DefaultPopulation: 500_000, AdultProportion: 0.82, HypertensionPrevalence: 0.33, ResistantHTNProportion: 0.11,
		CostMultiplier: 0.38, ExchangeRateToUSD: 1.08,
	}
)

// Countries returns the built-in presets in display order.
func Countries() []CountryConfig {
	return []CountryConfig{CountryUS, CountryUK, CountryDE, CountryFR, CountryIT, CountryES}
}

// Country looks up a preset by code. Unknown codes fall back to the US.
func Country(code string) (CountryConfig, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Countries() {
		if c.Code == code {
			return c, true
		}
	}
	return CountryUS, false
}

// Population builds the country's population defaults. Uncontrolled share and
// treatment-seeking rate are not country-specific.
func (c CountryConfig) Population() PopulationConfig {
	p := DefaultPopulation()
	p.TotalPopulation = c.DefaultPopulation
	p.AdultProportion = c.AdultProportion
	p.HypertensionPrevalence = c.HypertensionPrevalence
	p.ResistantHTNProportion = c.ResistantHTNProportion
	return p
}

// Costs scales US list costs into the country's currency.
func (c CountryConfig) Costs() CostConfig {
	costs := DefaultCosts().Scale(c.CostMultiplier)
	costs.Currency = c.Currency
	return costs
}
