// Package ga implements the classical genetic-algorithm family of
// SPEC_FULL.md §1's "shared core, three families" framing: a
// fixed-length integer-vector GA, backed by the same
// github.com/MaxHalford/eaopt engine and elitist-selection/crossover
// shape the teacher uses for deck optimization
// (pkg/deck/genetic/optimizer.go), now evolving []int vectors against a
// caller-supplied objective instead of deck-card choices.
package ga

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/MaxHalford/eaopt"
)

// Objective scores a candidate vector; higher is better. The optimizer
// internally negates it since eaopt minimizes.
type Objective func([]int) float64

// Progress captures one generation's aggregate fitness, mirroring the
// teacher's GeneticProgress shape.
type Progress struct {
	Generation  uint
	BestFitness float64
	AvgFitness  float64
	Populations int
}

// Result captures the final outputs of a GA run.
type Result struct {
	HallOfFame  [][]int
	Scores      []float64
	Generations uint
	Duration    time.Duration
}

// Config holds the GA family's tunables (config.Config's GAPopulation/
// GAGenerations plus the knobs the teacher's GeneticConfig exposed for
// deck optimization, generalized to vector genomes).
type Config struct {
	VectorLength   int
	ValueRange     int // each gene is drawn from [0, ValueRange)
	PopulationSize int
	Generations    int
	EliteCount     int
	TournamentSize int
	MutationRate   float64
	CrossoverRate  float64
	ParallelEval   bool
	IslandModel    bool
	IslandCount    int
}

func (c *Config) Validate() error {
	if c.VectorLength <= 0 {
		return fmt.Errorf("ga: vector_length must be positive")
	}
	if c.ValueRange <= 0 {
		return fmt.Errorf("ga: value_range must be positive")
	}
	if c.PopulationSize <= 0 {
		return fmt.Errorf("ga: population_size must be positive")
	}
	if c.Generations <= 0 {
		return fmt.Errorf("ga: generations must be positive")
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("ga: tournament_size must be positive")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("ga: mutation_rate must be between 0 and 1")
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("ga: crossover_rate must be between 0 and 1")
	}
	return nil
}

// Optimizer orchestrates one GA run.
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
		return nil, fmt.Errorf("ga: objective must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{Config: cfg, Objective: objective}, nil
}

// Optimize runs the GA and returns the hall of fame vectors, best
// first, matching the teacher's GeneticOptimizer.Optimize shape.
func (o *Optimizer) Optimize() (*Result, error) {
	if o == nil {
		return nil, fmt.Errorf("ga: optimizer is nil")
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	rng := o.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	popSize, nPops := o.populationConfig()
	hofSize := uint(1)
	if o.Config.EliteCount > 1 {
		hofSize = uint(o.Config.EliteCount)
	}

	model := elitismModel{
		Selector:  eaopt.SelTournament{NContestants: uint(o.Config.TournamentSize)},
		Elite:     uint(o.Config.EliteCount),
		MutRate:   o.Config.MutationRate,
		CrossRate: o.Config.CrossoverRate,
	}

	gaConfig := eaopt.GAConfig{
		NPops:        nPops,
		PopSize:      popSize,
		NGenerations: uint(o.Config.Generations),
		HofSize:      hofSize,
		Model:        model,
		ParallelEval: o.Config.ParallelEval,
		RNG:          rng,
		Callback: func(gaInst *eaopt.GA) {
			if o.Progress == nil || gaInst == nil {
				return
			}
			best, avg := aggregateFitness(gaInst)
			o.Progress(Progress{
				Generation:  gaInst.Generations,
				BestFitness: best,
				AvgFitness:  avg,
				Populations: len(gaInst.Populations),
			})
		},
	}

	if o.Config.IslandModel {
		migrants := o.Config.PopulationSize / 10
		if migrants < 1 {
			migrants = 1
		}
		gaConfig.Migrator = eaopt.MigRing{NMigrants: uint(migrants)}
		gaConfig.MigFrequency = 10
	}

	gaInst, err := gaConfig.NewGA()
	if err != nil {
		return nil, err
	}

	if err := gaInst.Minimize(o.genomeFactory()); err != nil {
		return nil, err
	}

	hall, scores := extractHallOfFame(gaInst)
	return &Result{
		HallOfFame:  hall,
		Scores:      scores,
		Generations: gaInst.Generations,
		Duration:    gaInst.Age,
	}, nil
}

func (o *Optimizer) populationConfig() (uint, uint) {
	if o.Config.IslandModel && o.Config.IslandCount > 0 {
		perPop := o.Config.PopulationSize / o.Config.IslandCount
		if perPop < 1 {
			perPop = 1
		}
		return uint(perPop), uint(o.Config.IslandCount)
	}
	return uint(o.Config.PopulationSize), 1
}

func (o *Optimizer) genomeFactory() func(rng *rand.Rand) eaopt.Genome {
	return func(rng *rand.Rand) eaopt.Genome {
		vec := make([]int, o.Config.VectorLength)
		for i := range vec {
			vec[i] = rng.Intn(o.Config.ValueRange)
		}
		return &vectorGenome{values: vec, objective: o.Objective, valueRange: o.Config.ValueRange}
	}
}
