package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/pkg/cache"
)

func addCacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect a persisted transposition cache",
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Print a cache file's table size and occupancy",
				ArgsUsage: "<path>",
				Action:    cacheInspectCommand,
			},
		},
	}
}

func cacheInspectCommand(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("cache inspect: a file path argument is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cache inspect: %w", err)
	}
	defer closeFile(f)

	c, err := cache.Load(f)
	if err != nil {
		return fmt.Errorf("cache inspect: failed to load %q: %w", path, err)
	}

	printf("table size: %d\n", c.Len())
	printf("occupied:   %d (%.1f%%)\n", c.Occupied(), 100*float64(c.Occupied())/float64(c.Len()))
	return nil
}
