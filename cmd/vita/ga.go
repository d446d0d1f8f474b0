package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/demo"
	"github.com/klauer/vita/pkg/ga"
)

func addGACommand() *cli.Command {
	return &cli.Command{
		Name:  "ga",
		Usage: "Run the classical-GA family against a hidden target vector",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "length", Value: 20, Usage: "Target vector length"},
			&cli.IntFlag{Name: "value-range", Value: 100, Usage: "Each gene is drawn from [0, value-range)"},
			&cli.IntFlag{Name: "population", Value: 0, Usage: "Population size (0 uses the configured default)"},
			&cli.IntFlag{Name: "generations", Value: 0, Usage: "Generations (0 uses the configured default)"},
			&cli.IntFlag{Name: "elite", Value: 2, Usage: "Elite count carried over unchanged each generation"},
			&cli.IntFlag{Name: "tournament", Value: 3, Usage: "Tournament size"},
			&cli.Float64Flag{Name: "mutation-rate", Value: 0.1, Usage: "Per-individual mutation probability (a mutation redraws one gene)"},
			&cli.Float64Flag{Name: "crossover-rate", Value: 0.7, Usage: "Crossover probability"},
			&cli.BoolFlag{Name: "islands", Usage: "Use an island model with ring migration"},
			&cli.IntFlag{Name: "island-count", Value: 4, Usage: "Number of islands, when --islands is set"},
		},
		Action: gaCommand,
	}
}

func gaCommand(ctx context.Context, cmd *cli.Command) error {
	cfg := config.LoadFromEnv()
	population := cfg.GAPopulation
	if v := cmd.Int("population"); v > 0 {
		population = int(v)
	}
	generations := cfg.GAGenerations
	if v := cmd.Int("generations"); v > 0 {
		generations = int(v)
	}

	r, _ := seedFromCmd(cmd)
	problem := demo.NewTargetVectorProblem(int(cmd.Int("length")), int(cmd.Int("value-range")), r)

	gcfg := ga.Config{
		VectorLength:   int(cmd.Int("length")),
		ValueRange:     int(cmd.Int("value-range")),
		PopulationSize: population,
		Generations:    generations,
		EliteCount:     int(cmd.Int("elite")),
		TournamentSize: int(cmd.Int("tournament")),
		MutationRate:   cmd.Float64("mutation-rate"),
		CrossoverRate:  cmd.Float64("crossover-rate"),
		IslandModel:    cmd.Bool("islands"),
		IslandCount:    int(cmd.Int("island-count")),
	}

	c := colorizer(cmd)
	opt, err := ga.New(gcfg, problem.Objective)
	if err != nil {
		return err
	}
	opt.Progress = func(p ga.Progress) {
		fprintln(os.Stdout, c.Color(fmt.Sprintf(
			"[yellow]gen %-5d[reset] best=[green]%10.4f[reset] avg=%10.4f pops=%d",
			p.Generation, p.BestFitness, p.AvgFitness, p.Populations)))
	}

	result, err := opt.Optimize()
	if err != nil {
		return fmt.Errorf("ga optimization failed: %w", err)
	}

	fprintln(os.Stdout, c.Color(fmt.Sprintf("\n[bold]target:[reset] %v", problem.Target)))
	if len(result.HallOfFame) > 0 {
		printf("best vector: %v\n", result.HallOfFame[0])
		printf("best score (objective): %.4f\n", problem.Objective(result.HallOfFame[0]))
	}
	printf("generations: %d  elapsed: %s\n", result.Generations, result.Duration)
	return nil
}
