package enhanced

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"budget-impact/internal/analysis"
	"budget-impact/internal/bim"
	"budget-impact/internal/model"
	"budget-impact/internal/params"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxPSAIterations bounds one probabilistic run, whether the count comes
// from options or from the configuration.
const MaxPSAIterations = 100_000

// ErrIterationsOutOfRange is returned when the resolved iteration count is
// not in 1..MaxPSAIterations.
var ErrIterationsOutOfRange = errors.New("psa iterations out of range")

// PSAOptions controls a probabilistic sensitivity run. Zero values fall back
// to the configured iteration count, a random seed and one worker per CPU.
type PSAOptions struct {
	Iterations int     `json:"iterations"`
	Seed       *uint64 `json:"seed,omitempty"`
	Workers    int     `json:"workers,omitempty"`
}

// PSAResult summarizes the simulated 5-year impact and final-year PMPM.
type PSAResult struct {
	Scenario   model.Scenario `json:"scenario"`
	Seed       uint64         `json:"seed"`
	Iterations int            `json:"iterations"`
	// Completed iterations produced a finite result; the rest were skipped.
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`

	Impact analysis.Distribution `json:"impact"`
	PMPM   analysis.Distribution `json:"pmpm"`

	ImpactSamples []float64 `json:"impact_samples"`
	PMPMSamples   []float64 `json:"pmpm_samples"`
}

// ProbBudgetIncrease is the share of completed iterations with positive impact.
func (r *PSAResult) ProbBudgetIncrease() float64 { return r.Impact.ProbPositive }

// sampler draws one value for a distribution from a shared source.
type sampler func() float64

// lognormalParams converts an arithmetic mean and sd into the mu and sigma of
// the underlying normal.
func lognormalParams(mean, sd float64) (mu, sigma float64) {
	mu = math.Log(mean * mean / math.Sqrt(sd*sd+mean*mean))
	sigma = math.Sqrt(math.Log(1 + sd*sd/(mean*mean)))
	return mu, sigma
}

func newSampler(d model.Distribution, src rand.Source) (sampler, error) {
	switch d.Kind {
	case model.DistNormal:
		if d.Param2 < 0 {
			return nil, fmt.Errorf("%s: normal sd must be non-negative", d.Name)
		}
		return distuv.Normal{Mu: d.Param1, Sigma: d.Param2, Src: src}.Rand, nil
	case model.DistLogNormal:
		if d.Param1 <= 0 || d.Param2 < 0 {
			return nil, fmt.Errorf("%s: lognormal needs positive mean and non-negative sd", d.Name)
		}
		mu, sigma := lognormalParams(d.Param1, d.Param2)
		return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: src}.Rand, nil
	case model.DistBeta:
		if d.Param1 <= 0 || d.Param2 <= 0 {
			return nil, fmt.Errorf("%s: beta shapes must be positive", d.Name)
		}
		return distuv.Beta{Alpha: d.Param1, Beta: d.Param2, Src: src}.Rand, nil
	default:
		// Unknown kinds hold the parameter at Param1.
		v := d.Param1
		return func() float64 { return v }, nil
	}
}

// RunProbabilisticSensitivity samples every configured distribution per
// iteration and evaluates the scenario on a clone with all samples applied.
//
// Samples are drawn up front from a single PCG stream in iteration order, then
// evaluated on a bounded worker pool and merged by iteration index. A fixed
// seed therefore gives identical results for any worker count.
func (c *Calculator) RunProbabilisticSensitivity(ctx context.Context, scenario model.Scenario, opts PSAOptions) (*PSAResult, error) {
	scenario = c.scenarioOr(scenario)
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = c.in.Sensitivity.PSAIterations
	}
	if iterations < 1 || iterations > MaxPSAIterations {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrIterationsOutOfRange, iterations, MaxPSAIterations)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}

	dists := c.in.Sensitivity.PSADistributions
	src := rand.NewPCG(seed, seed)
	targets := make([]params.Param, len(dists))
	samplers := make([]sampler, len(dists))
	for j, d := range dists {
		p, err := params.Lookup(d.Name)
		if err != nil {
			return nil, err
		}
		s, err := newSampler(d, src)
		if err != nil {
			return nil, err
		}
		targets[j], samplers[j] = p, s
	}

	draws := make([][]float64, iterations)
	for i := range draws {
		draws[i] = make([]float64, len(dists))
		for j, s := range samplers {
			draws[i][j] = s()
		}
	}

	impacts := make([]float64, iterations)
	pmpms := make([]float64, iterations)
	ok := make([]bool, iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range draws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := c.in.Clone()
			for j, p := range targets {
				p.Set(in, draws[i][j])
			}
			res, err := bim.Compute(&in.Inputs, scenario)
			if err != nil {
				return nil
			}
			if math.IsNaN(res.TotalBudgetImpact) || math.IsInf(res.TotalBudgetImpact, 0) {
				return nil
			}
			impacts[i], pmpms[i], ok[i] = res.TotalBudgetImpact, res.PMPMFinal, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &PSAResult{
		Scenario:      scenario,
		Seed:          seed,
		Iterations:    iterations,
		ImpactSamples: make([]float64, 0, iterations),
		PMPMSamples:   make([]float64, 0, iterations),
	}
	for i := range ok {
		if !ok[i] {
			out.Skipped++
			continue
		}
		out.ImpactSamples = append(out.ImpactSamples, impacts[i])
		out.PMPMSamples = append(out.PMPMSamples, pmpms[i])
	}
	out.Completed = len(out.ImpactSamples)

	conf := c.in.Sensitivity.PSAConfidenceLevel
	out.Impact = analysis.Summarize(out.ImpactSamples, conf)
	out.PMPM = analysis.Summarize(out.PMPMSamples, conf)
	return out, nil
}
