// Package evolution implements the generational driver of spec.md
// §4.9: the main loop that ties a population, an evaluator and a set
// of selection/recombination/replacement strategies together, tracking
// a running summary of counters and the best-ever individual. Adapted
// from the teacher's GeneticOptimizer.Optimize progress-callback/
// early-stop shape (pkg/deck/genetic/optimizer.go), generalized from
// eaopt's GA loop to the ALPS-aware loop of orig:kernel/evolution_inl.h.
package evolution

import (
	"math"
	"time"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/population"
	"github.com/klauer/vita/pkg/strategy"
)

// Summary accumulates the per-run statistics spec.md §4.9 attaches to
// the driver's state: generation/mutation/crossover counters, elapsed
// time, the best-ever individual, and a snapshot of the current
// generation's fitness distribution.
type Summary struct {
	Generation int
	Mutations  int
	Crossovers int
	Elapsed    time.Duration
	Best       strategy.BestEver

	// LastMean and LastStdDev are the population fitness distribution
	// statistics captured at the start of the most recently completed
	// generation (spec.md §4.9 step 2b, "snapshot population statistics").
	LastMean   float64
	LastStdDev float64
}

// ShakeFunc re-subsets the training data the evaluator draws on; it is
// invoked every 4th generation (spec.md §4.9 step 2a) and must be safe
// to call with the driver's current evaluator.
type ShakeFunc func(generation int)

// StopFunc is an external termination predicate, disjoined with the
// generation-count condition (spec.md §4.9); it is the only way to end
// a run before MaxGenerations.
type StopFunc func(s *Summary) bool

// ProgressFunc is invoked whenever summary.Best changes (spec.md §4.9
// step 2c, "emit progress line"), and once per generation with the
// generation's statistics snapshot (step 2b).
type ProgressFunc func(s Summary)

// Driver holds the mutable state of one evolution run: a population, an
// evaluator, and the three pluggable strategies that act on it each
// generation.
type Driver struct {
	Population    *population.Population
	Evaluator     evaluator.Evaluator
	Selector      strategy.Selector
	Recombination strategy.StandardOp
	Replacer      strategy.Replacer

	MaxGenerations int
	AgeGap         int
	MaxLayers      int

	Shake    ShakeFunc
	Stop     StopFunc
	Progress ProgressFunc
}

// Run executes the generational main loop of spec.md §4.9 until the
// generation count is reached or the external Stop predicate fires,
// then returns the accumulated summary. Run takes no context and is
// not interrupted by cancellation.
func (d *Driver) Run(r *rng.Source) Summary {
	start := time.Now()
	var summary Summary
	summary.Best = d.seedBest()

	totalPop := 0
	for l := 0; l < d.Population.NumLayers(); l++ {
		totalPop += len(d.Population.Individuals(l))
	}

	for !d.stopCondition(&summary) {
		if d.Shake != nil && summary.Generation%4 == 0 {
			d.Shake(summary.Generation)
			if summary.Best.Genome != nil {
				summary.Best.Fitness = d.Evaluator.Evaluate(summary.Best.Genome)
			}
		}

		summary.LastMean, summary.LastStdDev = d.snapshotStats()
		if d.Progress != nil {
			summary.Elapsed = time.Since(start)
			d.Progress(summary)
		}

		for k := 0; k < totalPop; k++ {
			parents := d.Selector.Select(d.Population, d.Evaluator, r)
			p0, p1 := d.Population.At(parents[0]), d.Population.At(parents[1])
			off, counters := d.Recombination.Run(p0, p1, d.Evaluator, r)
			summary.Crossovers += counters.Crossovers
			summary.Mutations += counters.Mutations

			prevBest := summary.Best.Fitness
			d.Replacer.Replace(d.Population, parents, off, d.Evaluator, &summary.Best)

			if d.Progress != nil && !summary.Best.Fitness.Equal(prevBest) {
				summary.Elapsed = time.Since(start)
				d.Progress(summary)
			}
		}

		if err := strategy.PostGenerationBookkeeping(d.Population, summary.Generation, d.AgeGap, d.MaxLayers, d.Evaluator, r); err != nil {
			break
		}
		summary.Generation++
	}

	summary.Elapsed = time.Since(start)
	return summary
}

// seedBest seeds the running best with individual (0,0), per spec.md
// §4.9 step 1.
func (d *Driver) seedBest() strategy.BestEver {
	g := d.Population.At(population.Coord{Layer: 0, Index: 0})
	return strategy.BestEver{Genome: g, Fitness: d.Evaluator.Evaluate(g)}
}

// stopCondition is the disjunction of spec.md §4.9's three stop
// conditions: generation count exceeded, or the external predicate.
// User-interrupt is not checked here, since this package has no I/O
// dependency; pkg/search does not stop a Run already in progress
// either.
func (d *Driver) stopCondition(s *Summary) bool {
	if d.MaxGenerations > 0 && s.Generation >= d.MaxGenerations {
		return true
	}
	if d.Stop != nil && d.Stop(s) {
		return true
	}
	return false
}

// snapshotStats computes the mean and (population) standard deviation
// of the first fitness component across every individual currently
// alive, the distribution statistics spec.md §4.9 step 2b calls for.
func (d *Driver) snapshotStats() (mean, stddev float64) {
	var sum float64
	var values []float64
	for l := 0; l < d.Population.NumLayers(); l++ {
		for _, g := range d.Population.Individuals(l) {
			f := d.Evaluator.Evaluate(g)
			v := firstComponent(f)
			values = append(values, v)
			sum += v
		}
	}
	if len(values) == 0 {
		return 0, 0
	}
	mean = sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func firstComponent(f fitness.Fitness) float64 {
	if len(f) == 0 {
		return 0
	}
	return f[0]
}
