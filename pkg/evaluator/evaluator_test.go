package evaluator_test

import (
	"math"
	"testing"
	"time"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/cache"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catDouble symbol.Category = 0

func constantGenome(v float64, penaltyFunc func(symbol.Params, float64) float64) *genome.Genome {
	ss := symbol.NewSymbolSet()
	c := &symbol.Symbol{
		Name: "c", Category: catDouble, Weight: 1,
		EvalFunc:    func(symbol.Params, float64) value.Value { return value.OfDouble(v) },
		PenaltyFunc: penaltyFunc,
	}
	ss.Insert(c)
	g := genome.New(ss, genome.GenomeConfig{CodeLength: 2, PatchSize: 1})
	g.Genes[0] = genome.Gene{Symbol: c, Category: catDouble}
	g.Genes[1] = genome.Gene{Symbol: c, Category: catDouble}
	g.Best = 0
	return g
}

func TestCachingEvaluatorHitsAfterFirstMiss(t *testing.T) {
	calls := 0
	inner := evaluator.EvalFunc(func(g *genome.Genome) fitness.Fitness {
		calls++
		return fitness.Fitness{1, 2}
	})
	c := evaluator.NewCaching(inner, cache.New(64))
	g := constantGenome(3, nil)

	f1 := c.Evaluate(g)
	f2 := c.Evaluate(g)
	assert.True(t, f1.Equal(f2))
	assert.Equal(t, 1, calls)
}

func TestPenaltyEvaluatorPrependsNegatedPenalty(t *testing.T) {
	g := constantGenome(3, func(symbol.Params, float64) float64 { return 5 })
	inner := evaluator.EvalFunc(func(*genome.Genome) fitness.Fitness { return fitness.Fitness{10} })
	p := evaluator.NewPenalty(inner)

	got := p.Evaluate(g)
	require.Len(t, got, 2)
	assert.Equal(t, -5.0, got[0])
	assert.Equal(t, 10.0, got[1])
}

func TestPenaltyZeroMeansFeasibleBeatsInfeasible(t *testing.T) {
	feasible := constantGenome(3, func(symbol.Params, float64) float64 { return 0 })
	infeasible := constantGenome(3, func(symbol.Params, float64) float64 { return 1 })
	inner := evaluator.EvalFunc(func(*genome.Genome) fitness.Fitness { return fitness.Fitness{0} })
	p := evaluator.NewPenalty(inner)

	assert.True(t, p.Evaluate(feasible).Greater(p.Evaluate(infeasible)))
}

func TestGAEvaluatorSquashesUnboundedObjective(t *testing.T) {
	e := evaluator.NewGA(func(*genome.Genome) float64 { return 1e12 })
	got := e.Evaluate(nil)
	require.Len(t, got, 1)
	assert.InDelta(t, 0, got[0], 0.001) // as f -> +inf, squash -> 0 (the upper bound)

	zero := evaluator.NewGA(func(*genome.Genome) float64 { return 0 })
	assert.InDelta(t, -500, zero.Evaluate(nil)[0], 0.001) // f == 0 is the squash's midpoint
}

func TestGAEvaluatorNonFiniteReturnsSentinel(t *testing.T) {
	e := evaluator.NewGA(func(*genome.Genome) float64 { return math.NaN() })
	got := e.Evaluate(nil)
	assert.True(t, got.IsSentinel())
}

func TestFastEvaluateFallsBackToEvaluate(t *testing.T) {
	calls := 0
	e := evaluator.EvalFunc(func(*genome.Genome) fitness.Fitness {
		calls++
		return fitness.Fitness{1}
	})
	evaluator.FastEvaluate(e, nil)
	assert.Equal(t, 1, calls)
}

func TestRandomEvaluatorProducesWidthComponents(t *testing.T) {
	r := evaluator.NewRandom(3, rng.New(1))
	got := r.Evaluate(nil)
	assert.Len(t, got, 3)
}

func TestRateLimitedEvaluatorPassesThroughFitness(t *testing.T) {
	inner := evaluator.EvalFunc(func(*genome.Genome) fitness.Fitness { return fitness.Fitness{7} })
	rl := evaluator.NewRateLimited(inner, 1000, time.Second)

	got := rl.Evaluate(nil)
	require.Len(t, got, 1)
	assert.Equal(t, 7.0, got[0])
}

func TestRateLimitedEvaluatorThrottlesCallRate(t *testing.T) {
	calls := 0
	inner := evaluator.EvalFunc(func(*genome.Genome) fitness.Fitness {
		calls++
		return fitness.Fitness{0}
	})
	rl := evaluator.NewRateLimited(inner, 50, time.Second) // 50/s, so 5 calls take >= 80ms

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.Evaluate(nil)
	}
	assert.Equal(t, 5, calls)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
