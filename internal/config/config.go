package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"budget-impact/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	// Preset code (US, UK, DE, FR, IT, ES). Empty means US.
	Country string `yaml:"country"`
	// Optional: load a custom country from a separate YAML (e.g. countries/*.yaml).
	// Non-zero fields of CountryOverride win over the file, and the file wins
	// over the preset.
	CountryFile     string              `yaml:"country_file"`
	CountryOverride model.CountryConfig `yaml:"country_config"`

	Scenario  string    `yaml:"scenario"`
	Subgroups []string  `yaml:"subgroups"`
	PSA       PSAConfig `yaml:"psa"`

	// Model holds partial overrides decoded onto the country defaults, keyed
	// like model.ExtendedInputs (population, costs, market, event_rates, ...).
	Model map[string]any `yaml:"model"`
}

type PSAConfig struct {
	Iterations int     `yaml:"iterations"`
	Seed       *uint64 `yaml:"seed"`
	Workers    int     `yaml:"workers"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If country_file is set, load it and merge in any explicit overrides.
	if c.CountryFile != "" {
		countryPath := c.CountryFile
		if !filepath.IsAbs(countryPath) {
			// Prefer paths relative to the config file directory, falling back
			// to the working directory.
			cand := filepath.Join(filepath.Dir(path), countryPath)
			if _, err := os.Stat(cand); err == nil {
				countryPath = cand
			}
		}
		loaded, err := loadCountryFile(countryPath)
		if err != nil {
			return nil, err
		}
		c.CountryOverride = MergeCountry(loaded, c.CountryOverride)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Country != "" && c.CountryFile == "" {
		if _, ok := model.Country(c.Country); !ok {
			return fmt.Errorf("unknown country %q", c.Country)
		}
	}
	if c.Scenario != "" {
		if _, err := model.ParseScenario(c.Scenario); err != nil {
			return err
		}
	}
	for _, s := range c.Subgroups {
		if _, err := model.ParseSubgroupType(s); err != nil {
			return err
		}
	}
	if c.PSA.Iterations < 0 {
		return errors.New("psa.iterations must be non-negative")
	}
	return nil
}

// CountryConfig resolves the preset, file and inline country settings.
func (c *Config) CountryConfig() model.CountryConfig {
	preset, _ := model.Country(c.Country)
	return MergeCountry(preset, c.CountryOverride)
}

// Inputs builds the extended model inputs this configuration describes.
func (c *Config) Inputs() (*model.ExtendedInputs, error) {
	in := model.ExtendedFromCountry(c.CountryConfig())
	if err := ApplyOverrides(in, c.Model); err != nil {
		return nil, err
	}
	if c.Scenario != "" {
		sc, err := model.ParseScenario(c.Scenario)
		if err != nil {
			return nil, err
		}
		in.SelectedScenario = sc
	}
	for _, s := range c.Subgroups {
		st, err := model.ParseSubgroupType(s)
		if err != nil {
			return nil, err
		}
		in.SelectedSubgroupTypes = append(in.SelectedSubgroupTypes, st)
	}
	if c.PSA.Iterations > 0 {
		in.Sensitivity.PSAIterations = c.PSA.Iterations
	}
	return in, nil
}

// ApplyOverrides decodes a partial document onto in. Keys that are absent keep
// their current values; present keys replace them, including zeros.
func ApplyOverrides(in *model.ExtendedInputs, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(normalizeNumbers(overrides))
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	if err := yaml.Unmarshal(raw, in); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

// normalizeNumbers turns integral floats (as decoded from JSON) into ints so
// they encode without an exponent and still decode into int fields.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = normalizeNumbers(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = normalizeNumbers(x)
		}
		return out
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t)
		}
		return t
	default:
		return v
	}
}

type countryFileWrapper struct {
	Country model.CountryConfig `yaml:"country"`
}

func loadCountryFile(path string) (model.CountryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.CountryConfig{}, err
	}
	var w countryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return model.CountryConfig{}, err
	}
	return w.Country, nil
}

// MergeCountry overlays non-zero fields from override onto base.
// This is used when loading a country file and then applying inline overrides.
func MergeCountry(base, override model.CountryConfig) model.CountryConfig {
	out := base
	if override.Code != "" {
		out.Code = override.Code
	}
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Currency != "" {
		out.Currency = override.Currency
	}
	if override.CurrencySymbol != "" {
		out.CurrencySymbol = override.CurrencySymbol
	}
	if override.DefaultPopulation != 0 {
		out.DefaultPopulation = override.DefaultPopulation
	}
	if override.AdultProportion != 0 {
		out.AdultProportion = override.AdultProportion
	}
	if override.HypertensionPrevalence != 0 {
		out.HypertensionPrevalence = override.HypertensionPrevalence
	}
	if override.ResistantHTNProportion != 0 {
		out.ResistantHTNProportion = override.ResistantHTNProportion
	}
	if override.CostMultiplier != 0 {
		out.CostMultiplier = override.CostMultiplier
	}
	if override.ExchangeRateToUSD != 0 {
		out.ExchangeRateToUSD = override.ExchangeRateToUSD
	}
	return out
}
