// Package de implements the differential-evolution family of
// SPEC_FULL.md §1: a population of fixed-length real vectors evolved
// via DE/rand/1/bin (Storn & Price). No example repo in the retrieval
// pack ships a DE library, so this is hand-rolled — the justified
// stdlib-only exception recorded in DESIGN.md. Shaped like the
// teacher's GeneticOptimizer (config/objective/progress/result) for
// consistency with pkg/ga and pkg/evolution rather than grounded on
// any one teacher file.
package de

import (
	"fmt"
	"math/rand"
	"time"
)

// Objective scores a candidate vector; lower is better, matching the
// classical DE minimization convention.
type Objective func([]float64) float64

// Progress captures one generation's best score, for callers that want
// a progress bar or log line.
type Progress struct {
	Generation int
	Best       float64
}

// Result captures the final outputs of a DE run.
type Result struct {
	Best        []float64
	BestScore   float64
	Generations int
	Duration    time.Duration
}

// Config holds the DE family's tunables (config.Config's DEPopulation/
// DEGenerations/DEF/DECR).
type Config struct {
	VectorLength int
	Population   int
	Generations  int
	F            float64 // differential weight, typically in [0.4, 1.0]
	CR           float64 // crossover probability, typically in [0.1, 1.0]
	Min, Max     float64 // per-component bounds, applied uniformly
}

func (c *Config) Validate() error {
	if c.VectorLength <= 0 {
		return fmt.Errorf("de: vector_length must be positive")
	}
	if c.Population < 4 {
		return fmt.Errorf("de: population must be at least 4 (DE/rand/1 needs 3 distinct donors)")
	}
	if c.Generations <= 0 {
		return fmt.Errorf("de: generations must be positive")
	}
	if c.F <= 0 {
		return fmt.Errorf("de: f must be positive")
	}
	if c.CR < 0 || c.CR > 1 {
		return fmt.Errorf("de: cr must be between 0 and 1")
	}
	if c.Min >= c.Max {
		return fmt.Errorf("de: min must be less than max")
	}
	return nil
}

// Optimizer orchestrates one DE run.
type Optimizer struct {
	Config    Config
	Objective Objective
	Progress  func(Progress)
	RNG       *rand.Rand
}

// New constructs an Optimizer, validating cfg and requiring a non-nil
// objective.
func New(cfg Config, objective Objective) (*Optimizer, error) {
	if objective == nil {
		return nil, fmt.Errorf("de: objective must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{Config: cfg, Objective: objective}, nil
}

// Optimize runs DE/rand/1/bin for Config.Generations generations and
// returns the best vector found.
func (o *Optimizer) Optimize() (*Result, error) {
	if o == nil {
		return nil, fmt.Errorf("de: optimizer is nil")
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	rng := o.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	c := o.Config
	pop := make([][]float64, c.Population)
	scores := make([]float64, c.Population)
	for i := range pop {
		pop[i] = o.randomVector(rng)
		scores[i] = o.Objective(pop[i])
	}

	bestIdx := argmin(scores)
	gen := 0
	for ; gen < c.Generations; gen++ {
		for i := range pop {
			trial := o.mutateAndCross(pop, i, rng)
			trialScore := o.Objective(trial)
			if trialScore <= scores[i] {
				pop[i] = trial
				scores[i] = trialScore
				if trialScore < scores[bestIdx] {
					bestIdx = i
				}
			}
		}
		if o.Progress != nil {
			o.Progress(Progress{Generation: gen, Best: scores[bestIdx]})
		}
	}

	best := make([]float64, c.VectorLength)
	copy(best, pop[bestIdx])
	return &Result{
		Best:        best,
		BestScore:   scores[bestIdx],
		Generations: gen,
		Duration:    time.Since(start),
	}, nil
}

func (o *Optimizer) randomVector(rng *rand.Rand) []float64 {
	c := o.Config
	v := make([]float64, c.VectorLength)
	for i := range v {
		v[i] = c.Min + rng.Float64()*(c.Max-c.Min)
	}
	return v
}

// mutateAndCross produces one DE/rand/1/bin trial vector for target
// index i: pick three distinct donors r0,r1,r2 != i, form the mutant
// r0 + F*(r1-r2), then binomial-crossover it with the target, forcing
// at least one mutant component through (the classical "jrand"
// guarantee that the trial differs from the target).
func (o *Optimizer) mutateAndCross(pop [][]float64, i int, rng *rand.Rand) []float64 {
	c := o.Config
	r0, r1, r2 := distinctIndices(len(pop), i, rng)

	trial := make([]float64, c.VectorLength)
	jrand := rng.Intn(c.VectorLength)
	for j := 0; j < c.VectorLength; j++ {
		if j == jrand || rng.Float64() < c.CR {
			mutant := pop[r0][j] + c.F*(pop[r1][j]-pop[r2][j])
			trial[j] = clamp(mutant, c.Min, c.Max)
		} else {
			trial[j] = pop[i][j]
		}
	}
	return trial
}

func distinctIndices(n, exclude int, rng *rand.Rand) (a, b, c int) {
	pick := func(avoid map[int]bool) int {
		for {
			i := rng.Intn(n)
			if !avoid[i] {
				return i
			}
		}
	}
	avoid := map[int]bool{exclude: true}
	a = pick(avoid)
	avoid[a] = true
	b = pick(avoid)
	avoid[b] = true
	c = pick(avoid)
	return a, b, c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func argmin(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}
