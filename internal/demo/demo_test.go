package demo_test

import (
	"testing"

	"github.com/klauer/vita/internal/demo"
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemSamplesEvenlySpaced(t *testing.T) {
	p := demo.NewProblem(demo.Targets["quadratic"], 0, 4, 5)
	require.Len(t, p.Samples, 5)
	assert.Equal(t, 0.0, p.Samples[0][0])
	assert.Equal(t, 4.0, p.Samples[4][0])
	assert.Equal(t, 1.0, p.Samples[0][1]) // quadratic(0) = 0*0+0+1
}

func TestNewProblemSingleSample(t *testing.T) {
	p := demo.NewProblem(demo.Targets["sine"], 2, 2, 1)
	require.Len(t, p.Samples, 1)
	assert.Equal(t, 2.0, p.Samples[0][0])
}

func TestEvaluatorScoresRandomGenomeNonPositive(t *testing.T) {
	p := demo.NewProblem(demo.Targets["quadratic"], -2, 2, 10)
	require.NoError(t, p.SymbolSet.Validate())

	r := rng.New(7)
	gcfg := genome.GenomeConfig{CodeLength: 24, PatchSize: 4}
	g, err := genome.NewRandom(p.SymbolSet, gcfg, r)
	require.NoError(t, err)

	f := p.Evaluator().Evaluate(g)
	require.Len(t, f, 1)
	assert.LessOrEqual(t, f[0], 0.0) // negative MSE; 0 only at a perfect fit
	assert.Equal(t, 1, p.EvalCalls())
}

func TestEvaluatorForIndicesRestrictsSamples(t *testing.T) {
	p := demo.NewProblem(demo.Targets["quadratic"], -2, 2, 10)
	r := rng.New(3)
	gcfg := genome.GenomeConfig{CodeLength: 24, PatchSize: 4}
	g, err := genome.NewRandom(p.SymbolSet, gcfg, r)
	require.NoError(t, err)

	full := p.Evaluator().Evaluate(g)
	subset := p.EvaluatorForIndices([]int{0}).Evaluate(g)
	// A single-sample evaluation need not equal the full-sample one,
	// but it must still be a valid, finite fitness value.
	assert.Len(t, subset, 1)
	assert.Len(t, full, 1)
}

func TestEvaluatorForIndexFuncReadsLive(t *testing.T) {
	p := demo.NewProblem(demo.Targets["quadratic"], -2, 2, 10)
	r := rng.New(9)
	gcfg := genome.GenomeConfig{CodeLength: 24, PatchSize: 4}
	g, err := genome.NewRandom(p.SymbolSet, gcfg, r)
	require.NoError(t, err)

	indices := []int{0, 1}
	eva := p.EvaluatorForIndexFunc(func() []int { return indices })
	first := eva.Evaluate(g)

	indices = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	second := eva.Evaluate(g)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestDescribeRendersExpression(t *testing.T) {
	p := demo.NewProblem(demo.Targets["quadratic"], -2, 2, 4)
	r := rng.New(1)
	gcfg := genome.GenomeConfig{CodeLength: 16, PatchSize: 3}
	g, err := genome.NewRandom(p.SymbolSet, gcfg, r)
	require.NoError(t, err)

	expr := demo.Describe(g)
	assert.NotEmpty(t, expr)
}

func TestTargetVectorProblemObjectivePeaksAtTarget(t *testing.T) {
	r := rng.New(42)
	p := demo.NewTargetVectorProblem(5, 10, r)
	assert.Equal(t, 0.0, p.Objective(p.Target))

	off := make([]int, len(p.Target))
	copy(off, p.Target)
	off[0] = (off[0] + 1) % 10
	if off[0] == p.Target[0] {
		off[0] = (off[0] + 1) % 10
	}
	assert.Less(t, p.Objective(off), p.Objective(p.Target))
}

func TestBenchmarksMinimumAtExpectedPoint(t *testing.T) {
	assert.Equal(t, 0.0, demo.Sphere([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, demo.Rastrigin([]float64{0, 0}))
	assert.InDelta(t, 0.0, demo.Rosenbrock([]float64{1, 1, 1}), 1e-9)
}
