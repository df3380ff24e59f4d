package main

import (
	"fmt"
	"io"
	"os"

	"budget-impact/internal/config"
	"budget-impact/internal/model"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	country    string
	scenario   string
	json       bool
}

func main() {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "bim",
		Short:         "Budget impact model for IXA-001 in resistant hypertension",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to YAML run config")
	pf.StringVar(&opts.country, "country", "", "Country preset (US, UK, DE, FR, IT, ES); overrides the config")
	pf.StringVar(&opts.scenario, "scenario", "", "Uptake scenario (conservative, moderate, optimistic); overrides the config")
	pf.BoolVar(&opts.json, "json", false, "Print results as JSON")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(scenariosCmd(opts))
	rootCmd.AddCommand(sensitivityCmd(opts))
	rootCmd.AddCommand(multiwayCmd(opts))
	rootCmd.AddCommand(thresholdCmd(opts))
	rootCmd.AddCommand(tornadoCmd(opts))
	rootCmd.AddCommand(psaCmd(opts))
	rootCmd.AddCommand(fullCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// load resolves the config file and flag overrides into model inputs.
// Validation problems are advisory and go to stderr.
func (o *rootOptions) load() (*config.Config, *model.ExtendedInputs, error) {
	cfg := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if o.country != "" {
		cfg.Country = o.country
		cfg.CountryFile = ""
		cfg.CountryOverride = model.CountryConfig{}
	}
	if o.scenario != "" {
		cfg.Scenario = o.scenario
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	in, err := cfg.Inputs()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range in.Validate() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return cfg, in, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
