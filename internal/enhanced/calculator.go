// Package enhanced layers clinical events, subgroups, persistence, a longer
// horizon and uncertainty analyses over the core budget impact calculation.
package enhanced

import (
	"fmt"

	"budget-impact/internal/bim"
	"budget-impact/internal/model"
)

// Calculator wraps a core calculator with the extended configuration. Like the
// core calculator it never writes to its configuration.
type Calculator struct {
	in   *model.ExtendedInputs
	base *bim.Calculator
}

func New(in *model.ExtendedInputs) *Calculator {
	if in == nil {
		in = model.DefaultExtendedInputs()
	}
	return &Calculator{in: in, base: bim.New(&in.Inputs)}
}

// FromBase promotes base inputs with default extended parameters.
func FromBase(in *model.Inputs) *Calculator {
	if in == nil {
		in = model.DefaultInputs()
	}
	return New(model.Extend(in))
}

func (c *Calculator) Inputs() *model.ExtendedInputs { return c.in }
func (c *Calculator) Base() *bim.Calculator         { return c.base }

func (c *Calculator) scenarioOr(sc model.Scenario) model.Scenario {
	if sc == "" {
		return c.in.SelectedScenario
	}
	return sc
}

// Options selects the optional parts of CalculateFull. Events and persistence
// also require the matching switch on the configuration.
type Options struct {
	Events          bool `json:"include_events"`
	Subgroups       bool `json:"include_subgroups"`
	Persistence     bool `json:"include_persistence"`
	ExtendedHorizon bool `json:"include_extended_horizon"`
}

// AllOptions enables every part.
func AllOptions() Options {
	return Options{Events: true, Subgroups: true, Persistence: true, ExtendedHorizon: true}
}

// CalculateFull always runs the base calculation and adds the parts opts asks for.
func (c *Calculator) CalculateFull(scenario model.Scenario, opts Options) (*Result, error) {
	scenario = c.scenarioOr(scenario)

	base, err := c.base.Calculate(scenario)
	if err != nil {
		return nil, err
	}
	out := &Result{Base: base}

	if opts.Events && c.in.IncludeEvents {
		out.Events = computeEvents(c.in, base)
	}
	if opts.Subgroups && len(c.in.SelectedSubgroupTypes) > 0 {
		out.Subgroups, err = computeSubgroups(c.in, scenario)
		if err != nil {
			return nil, fmt.Errorf("subgroups: %w", err)
		}
	}
	if opts.Persistence && c.in.IncludePersistence {
		out.Persistence, err = computePersistence(c.in, scenario)
		if err != nil {
			return nil, fmt.Errorf("persistence: %w", err)
		}
	}
	if opts.ExtendedHorizon {
		out.Extended, err = computeExtended(c.in, scenario)
		if err != nil {
			return nil, fmt.Errorf("extended horizon: %w", err)
		}
	}
	return out, nil
}
