package population_test

import (
	"testing"

	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
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

func TestNewSeedsOneLayer(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	p, err := population.New(ss, gcfg, 5, 10, config.AgeSchemePolynomial, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, 1, p.NumLayers())
	assert.Len(t, p.Individuals(0), 5)
}

func TestAddLayerAppendsOlderLayer(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	r := rng.New(2)
	p, _ := population.New(ss, gcfg, 5, 10, config.AgeSchemePolynomial, r)
	require.NoError(t, p.AddLayer(r))
	assert.Equal(t, 2, p.NumLayers())
	for _, g := range p.Individuals(1) {
		assert.Equal(t, uint(0), g.Age())
	}
}

func TestIncAgeAgesEveryGenome(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	p, _ := population.New(ss, gcfg, 3, 10, config.AgeSchemePolynomial, rng.New(3))
	p.IncAge()
	for _, g := range p.Individuals(0) {
		assert.Equal(t, uint(1), g.Age())
	}
}

func TestMaxAgeLastLayerIsUnbounded(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	p, _ := population.New(ss, gcfg, 3, 10, config.AgeSchemePolynomial, rng.New(4))
	assert.Equal(t, ^uint(0), p.MaxAge(0))
}

func TestMaxAgePolynomialScheme(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	r := rng.New(5)
	p, _ := population.New(ss, gcfg, 3, 10, config.AgeSchemePolynomial, r)
	require.NoError(t, p.AddLayer(r))
	require.NoError(t, p.AddLayer(r))
	require.NoError(t, p.AddLayer(r))
	// layers: [0 1 2 3], ageGap=10
	assert.Equal(t, uint(10), p.MaxAge(0)) // l=0
	assert.Equal(t, uint(20), p.MaxAge(1)) // l=1
	assert.Equal(t, uint(40), p.MaxAge(2)) // l=2 -> 2^2*10
	assert.Equal(t, ^uint(0), p.MaxAge(3)) // last layer
}

func TestAgedDetectsOverCeiling(t *testing.T) {
	ss := testSymbolSet()
	gcfg := genome.GenomeConfig{CodeLength: 10, PatchSize: 2}
	r := rng.New(6)
	p, _ := population.New(ss, gcfg, 1, 2, config.AgeSchemePolynomial, r)
	require.NoError(t, p.AddLayer(r)) // layer 0 now has a bounded ceiling (layer 1 is last/unbounded)
	c := population.Coord{Layer: 0, Index: 0}
	for i := 0; i < 3; i++ {
		p.At(c).IncAge()
	}
	assert.True(t, p.Aged(c))
}
