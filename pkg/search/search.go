// Package search implements the multi-run orchestration of spec.md
// §4.10: run the evolution driver R times, aggregate overall
// statistics (best-of-all, fitness distribution across runs, success
// count), and optionally switch between training and validation
// evaluators at run boundaries. Independent repetitions run
// concurrently via golang.org/x/sync/errgroup, grounded on
// other_examples/…tomhoffer-darwinium__internal-ga-executor-executor.go's
// errgroup.WithContext + SetLimit pattern.
package search

import (
	"context"
	"math"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evolution"
	"github.com/klauer/vita/pkg/fitness"
	"golang.org/x/sync/errgroup"
)

// RunFunc produces one fresh driver for a repetition, given that
// repetition's own RNG substream and its ValidationStrategy (nil when
// Config.NewValidation is nil). When the strategy is non-nil, Run
// itself calls its PreliminarySetup and sets the returned driver's
// Shake hook to the strategy's Shake.
type RunFunc func(r *rng.Source, vs ValidationStrategy) *evolution.Driver

// Stats aggregates the overall statistics of a multi-run search: the
// best-of-all result, the per-run fitness distribution (mean, stddev,
// min, max of each run's best fitness first component) and the count
// of "successful" runs (best.Fitness clearing SuccessThreshold, when
// set).
type Stats struct {
	Runs         int
	BestRun      int
	Overall      evolution.Summary
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	SuccessCount int
}

// Config configures one multi-run search.
type Config struct {
	Repetitions         int
	Concurrency         int // 0 or negative means unbounded
	SuccessThreshold    float64
	HasSuccessThreshold bool
	NewValidation       func() ValidationStrategy // nil for as-is (no split)
}

// Run executes Config.Repetitions independent evolution runs
// concurrently (bounded by Config.Concurrency), each seeded from an
// independent substream of r (rng.Source.Sub), and aggregates the
// per-run summaries into Stats. If ctx is cancelled, in-flight runs
// continue until their own stop condition (evolution.Driver has no
// context awareness) but no further runs are started.
func Run(ctx context.Context, cfg Config, r *rng.Source, newDriver RunFunc) (Stats, error) {
	summaries := make([]evolution.Summary, cfg.Repetitions)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	for i := 0; i < cfg.Repetitions; i++ {
		i := i
		sub := r.Sub()
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			var vs ValidationStrategy
			if cfg.NewValidation != nil {
				vs = cfg.NewValidation()
			}

			d := newDriver(sub, vs)
			if vs != nil {
				vs.PreliminarySetup(sub)
				d.Shake = func(generation int) { vs.Shake(generation, sub) }
			}

			summaries[i] = d.Run(sub)
			return nil
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() != nil {
		return Stats{}, err
	}

	return aggregate(cfg, summaries), nil
}

func aggregate(cfg Config, summaries []evolution.Summary) Stats {
	stats := Stats{Runs: len(summaries)}
	if len(summaries) == 0 {
		return stats
	}

	values := make([]float64, len(summaries))
	var best evolution.Summary
	bestIdx := 0
	for i, s := range summaries {
		v := firstComponent(s.Best.Fitness)
		values[i] = v
		if i == 0 || s.Best.Fitness.Greater(best.Best.Fitness) {
			best = s
			bestIdx = i
		}
		if cfg.HasSuccessThreshold && v >= cfg.SuccessThreshold {
			stats.SuccessCount++
		}
	}

	stats.Overall = best
	stats.BestRun = bestIdx

	var sum float64
	stats.Min, stats.Max = values[0], values[0]
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(values)))

	return stats
}

func firstComponent(f fitness.Fitness) float64 {
	if len(f) == 0 {
		return 0
	}
	return f[0]
}
