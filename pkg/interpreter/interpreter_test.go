package interpreter_test

import (
	"testing"

	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/interpreter"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
)

const catDouble symbol.Category = 0

func buildConstantThree() (*genome.Genome, *symbol.SymbolSet) {
	ss := symbol.NewSymbolSet()
	three := &symbol.Symbol{
		Name:     "const_3",
		Category: catDouble,
		Weight:   1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(3) },
	}
	ss.Insert(three)

	g := genome.New(ss, genome.GenomeConfig{CodeLength: 3, PatchSize: 1})
	g.Genes[0] = genome.Gene{Symbol: three, Category: catDouble}
	g.Genes[1] = genome.Gene{Symbol: three, Category: catDouble}
	g.Genes[2] = genome.Gene{Symbol: three, Category: catDouble}
	g.Best = 0
	return g, ss
}

func TestRunReturnsConstant(t *testing.T) {
	g, _ := buildConstantThree()
	it := interpreter.New(g)
	got := it.Run()
	d, ok := got.AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 3.0, d)
}

func TestRunPropagatesVoidOnDivisionByZero(t *testing.T) {
	ss := symbol.NewSymbolSet()
	zero := &symbol.Symbol{
		Name: "zero", Category: catDouble, Weight: 1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(0) },
	}
	one := &symbol.Symbol{
		Name: "one", Category: catDouble, Weight: 1,
		EvalFunc: func(symbol.Params, float64) value.Value { return value.OfDouble(1) },
	}
	fdiv := &symbol.Symbol{
		Name: "FDIV", Category: catDouble, Weight: 1,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		EvalFunc: func(p symbol.Params, _ float64) value.Value {
			denom, _ := p[1].AsDouble()
			if denom == 0 {
				return value.VoidValue
			}
			numer, _ := p[0].AsDouble()
			return value.OfDouble(numer / denom)
		},
	}
	ss.Insert(zero)
	ss.Insert(one)
	ss.Insert(fdiv)

	g := genome.New(ss, genome.GenomeConfig{CodeLength: 3, PatchSize: 2})
	g.Genes[2] = genome.Gene{Symbol: zero, Category: catDouble}
	g.Genes[1] = genome.Gene{Symbol: one, Category: catDouble}
	g.Genes[0] = genome.Gene{Symbol: fdiv, Category: catDouble, Args: []int{1, 2}}
	g.Best = 0

	it := interpreter.New(g)
	got := it.Run()
	assert.Equal(t, value.Void, got.Kind())
}

func TestEachLocusEvaluatedAtMostOnce(t *testing.T) {
	ss := symbol.NewSymbolSet()
	calls := 0
	leaf := &symbol.Symbol{
		Name: "leaf", Category: catDouble, Weight: 1,
		EvalFunc: func(symbol.Params, float64) value.Value {
			calls++
			return value.OfDouble(5)
		},
	}
	add := &symbol.Symbol{
		Name: "FADD", Category: catDouble, Weight: 1,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		EvalFunc: func(p symbol.Params, _ float64) value.Value {
			a, _ := p[0].AsDouble()
			b, _ := p[1].AsDouble()
			return value.OfDouble(a + b)
		},
	}
	ss.Insert(leaf)
	ss.Insert(add)

	g := genome.New(ss, genome.GenomeConfig{CodeLength: 3, PatchSize: 1})
	g.Genes[2] = genome.Gene{Symbol: leaf, Category: catDouble}
	g.Genes[1] = genome.Gene{Symbol: add, Category: catDouble, Args: []int{2, 2}}
	g.Genes[0] = genome.Gene{Symbol: add, Category: catDouble, Args: []int{1, 2}}
	g.Best = 0

	it := interpreter.New(g)
	got := it.Run()
	d, ok := got.AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 15.0, d)
	assert.Equal(t, 1, calls)
}
