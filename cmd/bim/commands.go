package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"budget-impact/internal/bim"
	"budget-impact/internal/enhanced"

	"github.com/spf13/cobra"
)

func runCmd(opts *rootOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate the budget impact for one scenario",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			res, err := bim.New(&in.Inputs).Calculate("")
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
					return err
				}
				if err := bim.WriteLedgerCSV(csvPath, res); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(res.Years), csvPath)
			}
			if opts.json {
				return writeJSON(os.Stdout, res)
			}
			printResult(os.Stdout, in.Country.CurrencySymbol, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the yearly ledger to this CSV path")
	return cmd
}

func scenariosCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Compare conservative, moderate and optimistic uptake",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			all, err := bim.New(&in.Inputs).RunAllScenarios()
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(os.Stdout, all)
			}
			printScenarios(os.Stdout, in.Country.CurrencySymbol, all)
			return nil
		},
	}
}

func sensitivityCmd(opts *rootOptions) *cobra.Command {
	var (
		param  string
		values []float64
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep one base parameter across values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			points, err := bim.New(&in.Inputs).SensitivityAnalysis(param, values, "")
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(os.Stdout, points)
			}
			printPoints(os.Stdout, in.Country.CurrencySymbol, points)
			return nil
		},
	}

	cmd.Flags().StringVar(&param, "param", "ixa_001_annual", "Parameter name (see the API's /parameters list)")
	cmd.Flags().Float64SliceVar(&values, "values", []float64{3000, 4000, 5500, 7000, 8000}, "Comma-separated values")
	return cmd
}

// parseSweep reads "name=v1,v2,v3".
func parseSweep(s string) (enhanced.ParameterSweep, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return enhanced.ParameterSweep{}, fmt.Errorf("sweep %q: want name=v1,v2", s)
	}
	sw := enhanced.ParameterSweep{Parameter: strings.TrimSpace(name)}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return enhanced.ParameterSweep{}, fmt.Errorf("sweep %q: %w", s, err)
		}
		sw.Values = append(sw.Values, v)
	}
	if len(sw.Values) == 0 {
		return enhanced.ParameterSweep{}, fmt.Errorf("sweep %q: no values", s)
	}
	return sw, nil
}

func multiwayCmd(opts *rootOptions) *cobra.Command {
	var raw []string

	cmd := &cobra.Command{
		Use:   "multiway",
		Short: "Sweep several parameters, each on its own",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if len(raw) == 0 {
				return fmt.Errorf("at least one --sweep is required")
			}
			sweeps := make([]enhanced.ParameterSweep, 0, len(raw))
			for _, s := range raw {
				sw, err := parseSweep(s)
				if err != nil {
					return err
				}
				sweeps = append(sweeps, sw)
			}
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			points, err := enhanced.New(in).RunMultiwaySensitivity(sweeps, "")
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(os.Stdout, points)
			}
			printPoints(os.Stdout, in.Country.CurrencySymbol, points)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&raw, "sweep", nil, "Parameter sweep as name=v1,v2 (repeatable)")
	return cmd
}

func thresholdCmd(opts *rootOptions) *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Find the IXA-001 annual price that gives a target 5-year impact",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			price, found, err := bim.New(&in.Inputs).PriceThresholdAnalysis(target, "")
			if err != nil {
				return err
			}
			if opts.json {
				out := map[string]any{"target_impact": target, "found": found}
				if found {
					out["price"] = price
				}
				return writeJSON(os.Stdout, out)
			}
			printThreshold(os.Stdout, in.Country.CurrencySymbol, target, price, found)
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "Target 5-year budget impact (0 = budget neutral)")
	return cmd
}

func tornadoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tornado",
		Short: "Rank parameters by their one-way effect on 5-year impact",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, in, err := opts.load()
			if err != nil {
				return err
			}
			swings, err := enhanced.New(in).RunTornadoAnalysis("")
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(os.Stdout, swings)
			}
			printTornado(os.Stdout, in.Country.CurrencySymbol, swings)
			return nil
		},
	}
}

type psaFlags struct {
	iterations int
	seed       uint64
	workers    int
}

func (f *psaFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "PSA iterations (0 = configured value)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "PSA random seed (omit for a random seed)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "PSA workers (0 = one per CPU)")
}

// options merges flags over the run config; explicit flags win.
func (f *psaFlags) options(cmd *cobra.Command, cfgIterations, cfgWorkers int, cfgSeed *uint64) enhanced.PSAOptions {
	o := enhanced.PSAOptions{Iterations: cfgIterations, Workers: cfgWorkers, Seed: cfgSeed}
	if cmd.Flags().Changed("iterations") {
		o.Iterations = f.iterations
	}
	if cmd.Flags().Changed("workers") {
		o.Workers = f.workers
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		o.Seed = &seed
	}
	return o
}

func psaCmd(opts *rootOptions) *cobra.Command {
	flags := &psaFlags{}

	cmd := &cobra.Command{
		Use:   "psa",
		Short: "Run a probabilistic sensitivity analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, in, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			psaOpts := flags.options(cmd, cfg.PSA.Iterations, cfg.PSA.Workers, cfg.PSA.Seed)
			res, err := enhanced.New(in).RunProbabilisticSensitivity(ctx, "", psaOpts)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(os.Stdout, res)
			}
			printPSA(os.Stdout, in.Country.CurrencySymbol, res)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func fullCmd(opts *rootOptions) *cobra.Command {
	var (
		withTornado bool
		withPSA     bool
	)
	flags := &psaFlags{}

	cmd := &cobra.Command{
		Use:   "full",
		Short: "Run the extended analysis: events, subgroups, persistence and 10-year horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, in, err := opts.load()
			if err != nil {
				return err
			}
			calc := enhanced.New(in)
			res, err := calc.CalculateFull("", enhanced.AllOptions())
			if err != nil {
				return err
			}
			if withTornado {
				if res.Tornado, err = calc.RunTornadoAnalysis(""); err != nil {
					return err
				}
			}
			if withPSA {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()
				psaOpts := flags.options(cmd, cfg.PSA.Iterations, cfg.PSA.Workers, cfg.PSA.Seed)
				if res.PSA, err = calc.RunProbabilisticSensitivity(ctx, "", psaOpts); err != nil {
					return err
				}
			}
			if opts.json {
				return writeJSON(os.Stdout, res)
			}
			printFull(os.Stdout, in.Country.CurrencySymbol, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTornado, "tornado", false, "Include the tornado analysis")
	cmd.Flags().BoolVar(&withPSA, "psa", false, "Include the probabilistic sensitivity analysis")
	flags.register(cmd)
	return cmd
}
