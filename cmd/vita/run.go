package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/demo"
	"github.com/klauer/vita/internal/storage"
	"github.com/klauer/vita/pkg/cache"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/evolution"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
	"github.com/klauer/vita/pkg/strategy"
)

func addRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run one symbolic-regression evolution (MEP genomes, ALPS population)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "target", Value: "quadratic", Usage: "Demo target function (quadratic, cubic, sine)"},
			&cli.IntFlag{Name: "samples", Value: 20, Usage: "Number of (x, f(x)) samples"},
			&cli.IntFlag{Name: "individuals", Value: 0, Usage: "Per-layer population size (0 uses the configured default)"},
			&cli.IntFlag{Name: "layers", Value: 0, Usage: "Max ALPS layers (0 uses the configured default)"},
			&cli.IntFlag{Name: "code-length", Value: 0, Usage: "Genome length (0 uses the configured default)"},
			&cli.IntFlag{Name: "generations", Value: 0, Usage: "Max generations (0 uses the configured default)"},
			&cli.Float64Flag{Name: "eval-rate", Value: 0, Usage: "Cap evaluations/sec (0 disables the rate limiter)"},
			&cli.BoolFlag{Name: "save", Usage: "Record the result in the run ledger"},
			&cli.StringFlag{Name: "label", Value: "run", Usage: "Label stored alongside a saved run"},
		},
		Action: runCommand,
	}
}

func runCommand(ctx context.Context, cmd *cli.Command) error {
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

	pop, err := population.New(problem.SymbolSet, gcfg, cfg.Individuals, cfg.AgeGap, cfg.AgeScheme, r)
	if err != nil {
		return fmt.Errorf("failed to initialize population: %w", err)
	}

	var eva evaluator.Evaluator = evaluator.NewCaching(problem.Evaluator(), cache.New(4*cfg.Individuals))
	if rate := cmd.Float64("eval-rate"); rate > 0 {
		eva = evaluator.NewRateLimited(eva, int(rate), time.Second)
	}

	c := colorizer(cmd)
	bar := newProgressBar(cmd, cfg.Generations, "gen/s")
	lastGen := -1
	driver := &evolution.Driver{
		Population:     pop,
		Evaluator:      eva,
		Selector:       strategy.Tournament{Size: cfg.TournamentSize, MateZone: cfg.MateZone},
		Recombination:  strategy.StandardOp{PCross: cfg.PCross, PMutation: cfg.PMutation, BroodSize: cfg.BroodSize},
		Replacer:       strategy.SteadyState{},
		MaxGenerations: cfg.Generations,
		AgeGap:         cfg.AgeGap,
		MaxLayers:      cfg.Layers,
		Progress: func(s evolution.Summary) {
			if bar != nil {
				if s.Generation != lastGen {
					lastGen = s.Generation
					addProgress(bar, 1)
				}
				return
			}
			fprintln(os.Stdout, c.Color(fmt.Sprintf(
				"[yellow]gen %-5d[reset] best=[green]%10.6f[reset] mean=%10.6f stddev=%8.4f",
				s.Generation, firstComponent(s.Best.Fitness), s.LastMean, s.LastStdDev)))
		},
	}

	summary := driver.Run(r)

	fprintln(os.Stdout, c.Color(fmt.Sprintf("\n[bold]best fitness:[reset] %v", summary.Best.Fitness)))
	if summary.Best.Genome != nil {
		printf("best expression: %s\n", demo.Describe(summary.Best.Genome))
	}
	printf("generations: %d  crossovers: %d  mutations: %d  elapsed: %s\n",
		summary.Generation, summary.Crossovers, summary.Mutations, summary.Elapsed)

	if cmd.Bool("save") {
		return saveRunRecord(cmd, summary, seed)
	}
	return nil
}

// firstComponent reads a fitness vector's leading component for the
// progress line. The strategies themselves compare whole fitness
// vectors lexicographically (fitness.Less/Greater), so later
// components break ties on the first.
func firstComponent(f fitness.Fitness) float64 {
	if len(f) == 0 {
		return 0
	}
	return f[0]
}

func saveRunRecord(cmd *cli.Command, summary evolution.Summary, seed uint64) error {
	dbPath, err := ledgerPath(cmd)
	if err != nil {
		return err
	}
	ledger, err := storage.OpenLedger(dbPath)
	if err != nil {
		return err
	}
	defer closeFile(ledger)

	var sig string
	if summary.Best.Genome != nil {
		s := summary.Best.Genome.Signature()
		sig = fmt.Sprintf("%x", s)
	}

	_, err = ledger.Record(storage.RunRecord{
		Label:       cmd.String("label"),
		Seed:        seed,
		Generations: summary.Generation,
		BestFitness: firstComponent(summary.Best.Fitness),
		Signature:   sig,
		DurationMS:  summary.Elapsed.Milliseconds(),
		RanAt:       time.Now(),
	})
	return err
}
