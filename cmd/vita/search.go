package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/demo"
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/cache"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/evolution"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
	"github.com/klauer/vita/pkg/search"
	"github.com/klauer/vita/pkg/strategy"
)

func addSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run R independent evolutions and aggregate their outcomes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "target", Value: "quadratic", Usage: "Demo target function (quadratic, cubic, sine)"},
			&cli.IntFlag{Name: "samples", Value: 20, Usage: "Number of (x, f(x)) samples"},
			&cli.IntFlag{Name: "individuals", Value: 0, Usage: "Per-layer population size (0 uses the configured default)"},
			&cli.IntFlag{Name: "layers", Value: 0, Usage: "Max ALPS layers (0 uses the configured default)"},
			&cli.IntFlag{Name: "code-length", Value: 0, Usage: "Genome length (0 uses the configured default)"},
			&cli.IntFlag{Name: "generations", Value: 0, Usage: "Max generations per run (0 uses the configured default)"},
			&cli.IntFlag{Name: "repetitions", Value: 8, Usage: "Number of independent runs"},
			&cli.IntFlag{Name: "concurrency", Value: 0, Usage: "Max concurrent runs (0 is unbounded)"},
			&cli.StringFlag{Name: "validation", Value: "as-is", Usage: "Validation strategy: as-is, holdout, or dss"},
			&cli.IntFlag{Name: "holdout-percent", Value: 20, Usage: "Holdout validation set's share, percent"},
			&cli.IntFlag{Name: "dss-subset", Value: 0, Usage: "DSS training subset size (0 uses half the samples)"},
			&cli.Float64Flag{Name: "dss-k", Value: 1.0, Usage: "DSS difficulty weight relative to age"},
			&cli.Float64Flag{Name: "threshold", Value: 0, Usage: "Success threshold on best fitness (0 disables)"},
			&cli.BoolFlag{Name: "save", Usage: "Record the best run in the run ledger"},
			&cli.StringFlag{Name: "label", Value: "search", Usage: "Label stored alongside a saved run"},
		},
		Action: searchCommand,
	}
}

func searchCommand(ctx context.Context, cmd *cli.Command) error {
	cfg := config.LoadFromEnv()
	if v := cmd.Int("individuals"); v > 0 {
		cfg.Individuals = int(v)
	}
	if v := cmd.Int("layers"); v > 0 {
		cfg.Layers = int(v)
	}
	if v := cmd.Int("code-length"); v > 0 {
		cfg.CodeLength = int(v)
	}
	if v := cmd.Int("generations"); v > 0 {
		cfg.Generations = int(v)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	target, ok := demo.Targets[cmd.String("target")]
	if !ok {
		return fmt.Errorf("unknown target %q", cmd.String("target"))
	}
	problem := demo.NewProblem(target, -3, 3, int(cmd.Int("samples")))
	if err := problem.SymbolSet.Validate(); err != nil {
		return err
	}

	r, seed := seedFromCmd(cmd)
	gcfg := genome.GenomeConfig{CodeLength: cfg.CodeLength, PatchSize: cfg.PatchSize(), PMutation: cfg.PMutation}

	newValidation, err := validationFactory(cmd, len(problem.Samples))
	if err != nil {
		return err
	}

	newDriver := func(sub *rng.Source, vs search.ValidationStrategy) *evolution.Driver {
		pop, perr := population.New(problem.SymbolSet, gcfg, cfg.Individuals, cfg.AgeGap, cfg.AgeScheme, sub)
		if perr != nil {
			// Driver construction has no error return; a population that
			// fails to seed is a configuration bug that cfg.Validate
			// above should already have caught, so panic here surfaces it
			// loudly instead of silently running an empty search.
			panic(fmt.Errorf("failed to initialize population: %w", perr))
		}

		eva := evaluator.NewCaching(problem.Evaluator(), cache.New(4*cfg.Individuals))
		if trainer, ok := vs.(trainingIndexer); ok {
			eva = evaluator.NewCaching(problem.EvaluatorForIndexFunc(trainer.trainingIndices), cache.New(4*cfg.Individuals))
		}

		return &evolution.Driver{
			Population:     pop,
			Evaluator:      eva,
			Selector:       strategy.Tournament{Size: cfg.TournamentSize, MateZone: cfg.MateZone},
			Recombination:  strategy.StandardOp{PCross: cfg.PCross, PMutation: cfg.PMutation, BroodSize: cfg.BroodSize},
			Replacer:       strategy.SteadyState{},
			MaxGenerations: cfg.Generations,
			AgeGap:         cfg.AgeGap,
			MaxLayers:      cfg.Layers,
		}
	}

	scfg := search.Config{
		Repetitions:   int(cmd.Int("repetitions")),
		Concurrency:   int(cmd.Int("concurrency")),
		NewValidation: newValidation,
	}
	if threshold := cmd.Float64("threshold"); threshold != 0 {
		scfg.SuccessThreshold = threshold
		scfg.HasSuccessThreshold = true
	}

	stats, err := search.Run(ctx, scfg, r, newDriver)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	c := colorizer(cmd)
	fprintln(os.Stdout, c.Color(fmt.Sprintf(
		"[bold]%d runs[reset]  mean=%10.6f  stddev=%8.4f  min=%10.6f  max=%10.6f",
		stats.Runs, stats.Mean, stats.StdDev, stats.Min, stats.Max)))
	if scfg.HasSuccessThreshold {
		printf("successes: %d/%d\n", stats.SuccessCount, stats.Runs)
	}
	printf("best run: #%d  best fitness: %v\n", stats.BestRun, stats.Overall.Best.Fitness)
	if stats.Overall.Best.Genome != nil {
		printf("best expression: %s\n", demo.Describe(stats.Overall.Best.Genome))
	}

	if cmd.Bool("save") {
		return saveRunRecord(cmd, stats.Overall, seed)
	}
	return nil
}

// trainingIndexer is satisfied by the search.ValidationStrategy
// implementations that hold a mutable training subset (Holdout, DSS);
// AsIs deliberately does not implement it, so its evaluator always
// reads every sample.
type trainingIndexer interface {
	trainingIndices() []int
}

func validationFactory(cmd *cli.Command, n int) (func() search.ValidationStrategy, error) {
	switch cmd.String("validation") {
	case "", "as-is":
		return func() search.ValidationStrategy { return search.AsIs{} }, nil
	case "holdout":
		pct := int(cmd.Int("holdout-percent"))
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("holdout-percent must be in [0, 100], got %d", pct)
		}
		return func() search.ValidationStrategy {
			return &trainingHoldout{Holdout: &search.Holdout{Percentage: pct, N: n}}
		}, nil
	case "dss":
		subset := int(cmd.Int("dss-subset"))
		if subset <= 0 {
			subset = n / 2
			if subset == 0 {
				subset = n
			}
		}
		k := cmd.Float64("dss-k")
		return func() search.ValidationStrategy {
			return &trainingDSS{DSS: &search.DSS{N: n, SubsetSize: subset, K: k}}
		}, nil
	default:
		return nil, fmt.Errorf("unknown validation strategy %q", cmd.String("validation"))
	}
}

// trainingHoldout and trainingDSS adapt search.Holdout/search.DSS to
// trainingIndexer without modifying pkg/search's public shape.
type trainingHoldout struct{ *search.Holdout }

func (h *trainingHoldout) trainingIndices() []int { return h.Training }

type trainingDSS struct{ *search.DSS }

func (d *trainingDSS) trainingIndices() []int { return d.Training }
