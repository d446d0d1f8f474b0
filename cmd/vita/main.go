package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultDataDir := filepath.Join(homeDir, ".vita")

	cmd := &cli.Command{
		Name:    "vita",
		Usage:   "Evolutionary program synthesis: MEP genomes, ALPS populations, classical GA/DE families",
		Version: fmt.Sprintf("%s (commit %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Value:   defaultDataDir,
				Usage:   "Directory for the run ledger and persisted caches",
				Sources: cli.EnvVars("VITA_DATA_DIR"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 0,
				Usage: "PRNG seed (0 picks a time-derived seed)",
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "Set an override environment variable before loading config (KEY=VALUE, repeatable)",
			},
		},
		Before: applyEnvOverrides,
		Commands: []*cli.Command{
			addRunCommand(),
			addSearchCommand(),
			addGACommand(),
			addDECommand(),
			addCacheCommand(),
			addSymbolsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyEnvOverrides sets every --env KEY=VALUE pair before any
// subcommand runs, so config.LoadFromEnv (read via VITA_* variables)
// picks them up without the caller needing a wrapper shell script.
func applyEnvOverrides(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	for _, kv := range cmd.StringSlice("env") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return ctx, fmt.Errorf("--env %q: expected KEY=VALUE", kv)
		}
		setEnv(key, value)
	}
	return ctx, nil
}
