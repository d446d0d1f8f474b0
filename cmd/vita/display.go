package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/rng"
)

// colorizer renders colorstring tags, honoring the root --no-color
// flag — matching the teacher's verbose/save-flag plumbing of reading
// a root-level flag from a leaf command.
func colorizer(cmd *cli.Command) *colorstring.Colorize {
	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: cmd.Bool("no-color"),
		Reset:   true,
	}
}

// seedFromCmd returns both the seeded source and the raw seed value, so
// callers that persist a run (the ledger's RunRecord.Seed) can record
// exactly what produced it, including a time-derived seed.
func seedFromCmd(cmd *cli.Command) (*rng.Source, uint64) {
	if s := cmd.Int("seed"); s != 0 {
		seed := uint64(s)
		return rng.New(seed), seed
	}
	seed := uint64(time.Now().UnixNano())
	return rng.FromTime(int64(seed)), seed
}

// ledgerPath resolves the run ledger's database file under the root
// --data-dir flag, creating the directory if it doesn't exist yet —
// mirroring the teacher's directory-creation idiom around its player/
// analysis data files.
func ledgerPath(cmd *cli.Command) (string, error) {
	dir := cmd.String("data-dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}
	return filepath.Join(dir, "runs.db"), nil
}

// newProgressBar mirrors the teacher's verbose-gated progress bar
// construction (cmd/cr-api/fuzz_commands.go): nil when not verbose, so
// callers can unconditionally call bar.Add without a nil check by using
// addProgress below.
func newProgressBar(cmd *cli.Command, total int, label string) *progressbar.ProgressBar {
	if !cmd.Bool("verbose") {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(label),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}

func addProgress(bar *progressbar.ProgressBar, n int) {
	if bar == nil {
		return
	}
	_ = bar.Add(n)
}
