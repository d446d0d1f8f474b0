package genome_test

import (
	"testing"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catDouble symbol.Category = 0

func testSymbolSet() *symbol.SymbolSet {
	ss := symbol.NewSymbolSet()
	ss.Insert(&symbol.Symbol{
		Name:          "FADD",
		Category:      catDouble,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		Associative:   true,
		Weight:        1,
		EvalFunc: func(p symbol.Params, _ float64) value.Value {
			a, _ := p[0].AsDouble()
			b, _ := p[1].AsDouble()
			return value.OfDouble(a + b)
		},
	})
	ss.Insert(&symbol.Symbol{
		Name:          "FSUB",
		Category:      catDouble,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		Weight:        1,
		EvalFunc: func(p symbol.Params, _ float64) value.Value {
			a, _ := p[0].AsDouble()
			b, _ := p[1].AsDouble()
			return value.OfDouble(a - b)
		},
	})
	ss.Insert(&symbol.Symbol{
		Name:     "X",
		Category: catDouble,
		Weight:   1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(1) },
	})
	ss.Insert(&symbol.Symbol{
		Name:     "Y",
		Category: catDouble,
		Weight:   1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(2) },
	})
	return ss
}

func testConfig() genome.GenomeConfig {
	return genome.GenomeConfig{CodeLength: 30, PatchSize: 6, PMutation: 0.1}
}

func TestNewRandomSatisfiesInvariants(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(1)
	for i := 0; i < 50; i++ {
		g, err := genome.NewRandom(ss, testConfig(), r)
		require.NoError(t, err)
		assert.NoError(t, g.Debug())
		assert.Equal(t, uint(0), g.Age())
	}
}

func TestNewRandomRejectsBrokenClosure(t *testing.T) {
	ss := symbol.NewSymbolSet()
	ss.Insert(&symbol.Symbol{
		Name:          "FADD",
		Category:      catDouble,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		Weight:        1,
	})
	_, err := genome.NewRandom(ss, testConfig(), rng.New(1))
	assert.Error(t, err)
}

func TestActiveLociReachableFromBest(t *testing.T) {
	ss := testSymbolSet()
	g, err := genome.NewRandom(ss, testConfig(), rng.New(2))
	require.NoError(t, err)
	active := g.ActiveLoci()
	if _, ok := active[g.Best]; !ok {
		t.Fatal("best locus must be in its own active set")
	}
	for i := range active {
		assert.True(t, i >= 0 && i < g.Len())
	}
}

func TestCrossoverOffspringAgeIsMaxOfParents(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(3)
	p, _ := genome.NewRandom(ss, testConfig(), r)
	q, _ := genome.NewRandom(ss, testConfig(), r)
	for i := 0; i < 7; i++ {
		p.IncAge()
	}
	for i := 0; i < 3; i++ {
		q.IncAge()
	}
	off := genome.Crossover(p, q, r)
	assert.Equal(t, uint(7), off.Age())
	assert.NoError(t, off.Debug())
}

func TestMutateZeroProbabilityChangesNothing(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(4)
	g, _ := genome.NewRandom(ss, testConfig(), r)
	before := g.Clone()
	changed := genome.Mutate(g, 0, r)
	assert.Equal(t, 0, changed)
	assert.Equal(t, before.Genes, g.Genes)
}

func TestMutateHalfProbabilityChangesRoughlyHalf(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(5)
	g, _ := genome.NewRandom(ss, testConfig(), r)
	changed := genome.Mutate(g, 0.5, r)
	L := g.Len()
	assert.InDelta(t, float64(L)/2, float64(changed), float64(L)/4)
	assert.NoError(t, g.Debug())
}

func TestSignatureStableUnderInactiveMutation(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(6)
	g, _ := genome.NewRandom(ss, testConfig(), r)
	g.Best = 0
	sigBefore := g.Signature()

	active := g.ActiveLoci()
	var inactive = -1
	for i := g.Len() - 1; i >= 0; i-- {
		if _, ok := active[i]; !ok {
			inactive = i
			break
		}
	}
	if inactive == -1 {
		t.Skip("no inactive locus in this draw")
	}
	genome.MutateCategory(g, inactive, catDouble, r)
	assert.Equal(t, sigBefore, g.Signature())
}

func TestSignatureAssociativeOrderInvariant(t *testing.T) {
	ss := testSymbolSet()
	cfg := genome.GenomeConfig{CodeLength: 3, PatchSize: 1}
	g := genome.New(ss, cfg)
	xSym := ss.Symbols()[2]
	ySym := ss.Symbols()[3]
	addSym := ss.Symbols()[0]

	g.Genes[2] = mustGene(xSym)
	g.Genes[1] = mustGene(ySym)
	g.Genes[0] = geneWithArgs(addSym, 1, 2)
	g.Best = 0
	sig1 := g.Signature()

	g2 := g.Clone()
	g2.Genes[0] = geneWithArgs(addSym, 2, 1)
	sig2 := g2.Signature()

	assert.Equal(t, sig1, sig2)
}

func TestBlocksAndGetBlock(t *testing.T) {
	ss := testSymbolSet()
	r := rng.New(7)
	g, _ := genome.NewRandom(ss, testConfig(), r)
	blocks := g.Blocks()
	for _, locus := range blocks {
		sub := g.GetBlock(locus)
		assert.NoError(t, sub.Debug())
		assert.True(t, sub.Len() >= 2)
	}
}

func mustGene(s *symbol.Symbol) genome.Gene {
	return genome.Gene{Symbol: s, Category: s.Category}
}

func geneWithArgs(s *symbol.Symbol, args ...int) genome.Gene {
	return genome.Gene{Symbol: s, Category: s.Category, Args: args}
}
