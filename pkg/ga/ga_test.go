package ga_test

import (
	"math/rand"
	"testing"

	"github.com/klauer/vita/pkg/ga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumObjective(v []int) float64 {
	total := 0.0
	for _, x := range v {
		total += float64(x)
	}
	return total
}

func TestNewRejectsNilObjective(t *testing.T) {
	_, err := ga.New(ga.Config{VectorLength: 4, ValueRange: 10, PopulationSize: 10, Generations: 5, TournamentSize: 2}, nil)
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := ga.New(ga.Config{}, sumObjective)
	assert.Error(t, err)
}

func TestOptimizeMaximizesSumObjective(t *testing.T) {
	cfg := ga.Config{
		VectorLength:   5,
		ValueRange:     10,
		PopulationSize: 30,
		Generations:    20,
		EliteCount:     2,
		TournamentSize: 3,
		MutationRate:   0.1,
		CrossoverRate:  0.7,
	}
	opt, err := ga.New(cfg, sumObjective)
	require.NoError(t, err)
	opt.RNG = rand.New(rand.NewSource(1))

	result, err := opt.Optimize()
	require.NoError(t, err)
	require.NotEmpty(t, result.HallOfFame)
	assert.Len(t, result.HallOfFame[0], cfg.VectorLength)
	// with value_range=10 and enough generations, the best vector should
	// land close to the maximum possible sum (5*9=45).
	assert.Greater(t, result.Scores[0], 20.0)
}

func TestOptimizeReportsProgress(t *testing.T) {
	cfg := ga.Config{
		VectorLength:   3,
		ValueRange:     5,
		PopulationSize: 10,
		Generations:    4,
		TournamentSize: 2,
		MutationRate:   0.1,
		CrossoverRate:  0.5,
	}
	opt, err := ga.New(cfg, sumObjective)
	require.NoError(t, err)
	opt.RNG = rand.New(rand.NewSource(2))

	var generations []uint
	opt.Progress = func(p ga.Progress) { generations = append(generations, p.Generation) }

	_, err = opt.Optimize()
	require.NoError(t, err)
	assert.NotEmpty(t, generations)
}
