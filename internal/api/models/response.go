package models

// RunResponse wraps any computed result with its run ID.
type RunResponse struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Summary  map[string]any `json:"summary,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Result   any            `json:"result"`
}

// ThresholdResult reports the price search. Found is false when the target
// lies outside the impacts reachable within the search bounds.
type ThresholdResult struct {
	TargetImpact float64 `json:"target_impact"`
	Found        bool    `json:"found"`
	Price        float64 `json:"price,omitempty"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	Currency     string  `json:"currency"`
}

// CountryInfo describes a country preset.
type CountryInfo struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	Population     int     `json:"default_population"`
	CostMultiplier float64 `json:"cost_multiplier"`
}

// ScenarioInfo describes an uptake scenario.
type ScenarioInfo struct {
	Name   string    `json:"name"`
	Uptake []float64 `json:"uptake"`
}

// ParameterInfo describes an addressable numeric parameter.
type ParameterInfo struct {
	Name    string  `json:"name"`
	Group   string  `json:"group"`
	Default float64 `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
