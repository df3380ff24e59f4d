package report

import "testing"

func TestMoney(t *testing.T) {
	tests := []struct {
		symbol string
		v      float64
		places int32
		want   string
	}{
		{"$", 72712540, 0, "$72,712,540"},
		{"$", 999, 0, "$999"},
		{"£", -1234.5, 2, "-£1,234.50"},
		{"€", 0.004, 2, "€0.00"},
		{"$", 1220.66, 0, "$1,221"},
		{"", 100000, 0, "100,000"},
	}
	for _, tt := range tests {
		if got := Money(tt.symbol, tt.v, tt.places); got != tt.want {
			t.Errorf("Money(%q, %v, %d) = %q, want %q", tt.symbol, tt.v, tt.places, got, tt.want)
		}
	}
}

func TestRoundSummary(t *testing.T) {
	in := map[string]any{
		"scenario":       "moderate",
		"pmpm_year1":     0.448881,
		"yearly_impacts": []float64{1.005, 2.4449},
		"eligible":       11232,
	}
	out := RoundSummary(in, 2)
	if out["pmpm_year1"].(float64) != 0.45 {
		t.Fatalf("expected 0.45, got %v", out["pmpm_year1"])
	}
	ys := out["yearly_impacts"].([]float64)
	if ys[1] != 2.44 {
		t.Fatalf("expected 2.44, got %v", ys[1])
	}
	if out["eligible"].(int) != 11232 || out["scenario"].(string) != "moderate" {
		t.Fatalf("non-floats should pass through: %v", out)
	}
	if in["pmpm_year1"].(float64) != 0.448881 {
		t.Fatalf("input mutated")
	}
}
