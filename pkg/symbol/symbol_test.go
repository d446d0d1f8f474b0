package symbol_test

import (
	"testing"

	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
)

const catDouble symbol.Category = 0

func TestArityAndIsTerminal(t *testing.T) {
	fn := &symbol.Symbol{Name: "FADD", ArgCategories: []symbol.Category{catDouble, catDouble}}
	term := &symbol.Symbol{Name: "X"}
	assert.Equal(t, 2, fn.Arity())
	assert.False(t, fn.IsTerminal())
	assert.Equal(t, 0, term.Arity())
	assert.True(t, term.IsTerminal())
}

func TestEvalPropagatesVoidArgsAndNilEvalFunc(t *testing.T) {
	noop := &symbol.Symbol{Name: "noop"}
	assert.True(t, noop.Eval(nil, 0).IsVoid())

	fn := &symbol.Symbol{
		Name:          "FADD",
		ArgCategories: []symbol.Category{catDouble, catDouble},
		EvalFunc: func(p symbol.Params, _ float64) value.Value {
			a, _ := p[0].AsDouble()
			b, _ := p[1].AsDouble()
			return value.OfDouble(a + b)
		},
	}
	got := fn.Eval(symbol.Params{value.OfDouble(1), value.VoidValue}, 0)
	assert.True(t, got.IsVoid())

	got = fn.Eval(symbol.Params{value.OfDouble(1), value.OfDouble(2)}, 0)
	d, ok := got.AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 3.0, d)
}

func TestPenaltyContributionDefaultsToZero(t *testing.T) {
	s := &symbol.Symbol{Name: "X"}
	assert.Equal(t, 0.0, s.PenaltyContribution(nil, 0))
}

func TestDisplayFallsBackToName(t *testing.T) {
	s := &symbol.Symbol{Name: "X"}
	assert.Equal(t, "X", s.Display(0, false))
}
