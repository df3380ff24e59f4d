// Package report formats engine results for people: rounded money figures and
// flat summaries.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given decimal places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Money formats v with a currency symbol, thousands separators and the given
// number of decimals, e.g. "$72,712,540" or "-£1,234.50".
func Money(symbol string, v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(places)

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// RoundSummary returns a copy of a flat summary with every float rounded to
// places. Float slices are rounded element-wise.
func RoundSummary(s map[string]any, places int32) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		switch t := v.(type) {
		case float64:
			out[k] = Round(t, places)
		case []float64:
			r := make([]float64, len(t))
			for i, x := range t {
				r[i] = Round(x, places)
			}
			out[k] = r
		default:
			out[k] = v
		}
	}
	return out
}
