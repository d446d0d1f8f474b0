package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/demo"
	"github.com/klauer/vita/pkg/de"
)

func addDECommand() *cli.Command {
	return &cli.Command{
		Name:  "de",
		Usage: "Run differential evolution (DE/rand/1/bin) against a benchmark function",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "function", Value: "sphere", Usage: "Benchmark function: sphere, rastrigin, or rosenbrock"},
			&cli.IntFlag{Name: "dimensions", Value: 10, Usage: "Vector length"},
			&cli.IntFlag{Name: "population", Value: 0, Usage: "Population size (0 uses the configured default)"},
			&cli.IntFlag{Name: "generations", Value: 0, Usage: "Generations (0 uses the configured default)"},
			&cli.Float64Flag{Name: "f", Value: 0, Usage: "Differential weight (0 uses the configured default)"},
			&cli.Float64Flag{Name: "cr", Value: 0, Usage: "Crossover probability (0 uses the configured default)"},
		},
		Action: deCommand,
	}
}

func deCommand(ctx context.Context, cmd *cli.Command) error {
	cfg := config.LoadFromEnv()

	bench, ok := demo.Benchmarks[cmd.String("function")]
	if !ok {
		return fmt.Errorf("unknown function %q", cmd.String("function"))
	}

	population := cfg.DEPopulation
	if v := cmd.Int("population"); v > 0 {
		population = int(v)
	}
	generations := cfg.DEGenerations
	if v := cmd.Int("generations"); v > 0 {
		generations = int(v)
	}
	f := cfg.DEF
	if v := cmd.Float64("f"); v > 0 {
		f = v
	}
	cr := cfg.DECR
	if v := cmd.Float64("cr"); v > 0 {
		cr = v
	}

	dcfg := de.Config{
		VectorLength: int(cmd.Int("dimensions")),
		Population:   population,
		Generations:  generations,
		F:            f,
		CR:           cr,
		Min:          bench.Min,
		Max:          bench.Max,
	}

	c := colorizer(cmd)
	opt, err := de.New(dcfg, bench.F)
	if err != nil {
		return err
	}
	opt.Progress = func(p de.Progress) {
		if p.Generation%10 != 0 {
			return
		}
		fprintln(os.Stdout, c.Color(fmt.Sprintf(
			"[yellow]gen %-5d[reset] best=[green]%12.6f[reset]", p.Generation, p.Best)))
	}

	result, err := opt.Optimize()
	if err != nil {
		return fmt.Errorf("de optimization failed: %w", err)
	}

	fprintln(os.Stdout, c.Color(fmt.Sprintf("\n[bold]function:[reset] %s", bench.Name)))
	printf("best vector: %v\n", result.Best)
	printf("best score: %.6f\n", result.BestScore)
	printf("generations: %d  elapsed: %s\n", result.Generations, result.Duration)
	return nil
}
