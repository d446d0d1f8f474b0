package search_test

import (
	"context"
	"testing"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/evolution"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
	"github.com/klauer/vita/pkg/search"
	"github.com/klauer/vita/pkg/strategy"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catDouble symbol.Category = 0

func testSymbolSet() *symbol.SymbolSet {
	ss := symbol.NewSymbolSet()
	ss.Insert(&symbol.Symbol{
		Name: "X", Category: catDouble, Weight: 1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(1) },
	})
	return ss
}

func newDriver(r *rng.Source, vs search.ValidationStrategy) *evolution.Driver {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	pop, _ := population.New(ss, gcfg, 6, 10, config.AgeSchemePolynomial, r)
	eva := evaluator.NewRandom(1, rng.New(42))
	return &evolution.Driver{
		Population:     pop,
		Evaluator:      eva,
		Selector:       strategy.Tournament{Size: 2, MateZone: 6},
		Recombination:  strategy.StandardOp{PCross: 0.8, PMutation: 0.1},
		Replacer:       strategy.SteadyState{},
		MaxGenerations: 2,
		AgeGap:         10,
		MaxLayers:      4,
	}
}

func TestRunAggregatesAcrossRepetitions(t *testing.T) {
	r := rng.New(1)
	stats, err := search.Run(context.Background(), search.Config{Repetitions: 4, Concurrency: 2}, r, newDriver)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Runs)
	assert.NotNil(t, stats.Overall.Best.Genome)
	assert.GreaterOrEqual(t, stats.Max, stats.Min)
}

func TestRunRespectsSuccessThreshold(t *testing.T) {
	r := rng.New(2)
	cfg := search.Config{Repetitions: 5, SuccessThreshold: -1e9, HasSuccessThreshold: true}
	stats, err := search.Run(context.Background(), cfg, r, newDriver)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.SuccessCount)
}

func TestRunWiresValidationStrategyShake(t *testing.T) {
	r := rng.New(3)
	calls := 0
	cfg := search.Config{
		Repetitions: 1,
		NewValidation: func() search.ValidationStrategy {
			return &countingStrategy{onShake: func() { calls++ }}
		},
	}
	_, err := search.Run(context.Background(), cfg, r, newDriver)
	require.NoError(t, err)
	assert.Greater(t, calls, 0)
}

type countingStrategy struct {
	onShake func()
}

func (c *countingStrategy) PreliminarySetup(*rng.Source) {}
func (c *countingStrategy) Shake(int, *rng.Source) bool {
	c.onShake()
	return true
}

func TestHoldoutPartitionsCoverAllExamplesOnce(t *testing.T) {
	h := &search.Holdout{Percentage: 30, N: 100}
	h.PreliminarySetup(rng.New(4))
	assert.Len(t, h.Validation, 30)
	assert.Len(t, h.Training, 70)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, h.Training...), h.Validation...) {
		assert.False(t, seen[i])
		seen[i] = true
	}
	assert.Len(t, seen, 100)
}

func TestDSSSetupThenShakeAfterMisclassification(t *testing.T) {
	d := &search.DSS{N: 20, SubsetSize: 5, K: 2}
	r := rng.New(5)
	d.PreliminarySetup(r)
	require.Len(t, d.Training, 5)

	for i := 0; i < 10; i++ {
		d.Misclassified(0)
	}
	d.Shake(4, r)
	for _, i := range d.Training {
		_ = i
	}
}
