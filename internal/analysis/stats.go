package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution summarizes a sample of simulated outcomes.
type Distribution struct {
	Count int `json:"count"`

	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// StdDev is the population standard deviation.
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	ConfidenceLevel float64 `json:"confidence_level"`
	CILower         float64 `json:"ci_lower"`
	CIUpper         float64 `json:"ci_upper"`

	// ProbPositive is the share of samples strictly above zero.
	ProbPositive float64 `json:"prob_positive"`
}

// Summarize computes descriptive statistics and an equal-tailed percentile
// interval at the given confidence level. values is not modified.
func Summarize(values []float64, confidence float64) Distribution {
	d := Distribution{Count: len(values), ConfidenceLevel: confidence}
	if len(values) == 0 {
		return d
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d.Mean, d.StdDev = stat.PopMeanStdDev(sorted, nil)
	d.Median = Percentile(sorted, 0.5)
	d.Min = floats.Min(sorted)
	d.Max = floats.Max(sorted)

	alpha := (1 - confidence) / 2
	d.CILower = Percentile(sorted, alpha)
	d.CIUpper = Percentile(sorted, 1-alpha)

	positive := 0
	for _, v := range sorted {
		if v > 0 {
			positive++
		}
	}
	d.ProbPositive = float64(positive) / float64(len(sorted))
	return d
}

// Percentile reads quantile q from an ascending slice, interpolating linearly
// between order statistics.
func Percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
