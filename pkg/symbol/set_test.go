package symbol_test

import (
	"testing"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnoughTerminalsDetectsClosureViolation(t *testing.T) {
	ss := symbol.NewSymbolSet()
	ss.Insert(&symbol.Symbol{
		Name:          "FADD",
		Category:      catDouble,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		Weight:        1,
	})
	assert.False(t, ss.EnoughTerminals())

	ss.Insert(&symbol.Symbol{Name: "X", Category: catDouble, Weight: 1})
	assert.True(t, ss.EnoughTerminals())
}

func TestInsertAssignsSequentialOpcodes(t *testing.T) {
	ss := symbol.NewSymbolSet()
	a := &symbol.Symbol{Name: "A", Category: catDouble, Weight: 1}
	b := &symbol.Symbol{Name: "B", Category: catDouble, Weight: 1}
	opA := ss.Insert(a)
	opB := ss.Insert(b)
	assert.Equal(t, symbol.Opcode(0), opA)
	assert.Equal(t, symbol.Opcode(1), opB)
}

func TestInsertDefaultsNonPositiveWeight(t *testing.T) {
	ss := symbol.NewSymbolSet()
	s := &symbol.Symbol{Name: "A", Category: catDouble, Weight: 0}
	ss.Insert(s)
	assert.Equal(t, 1.0, s.Weight)
}

func TestRouletteRespectsCategory(t *testing.T) {
	ss := symbol.NewSymbolSet()
	ss.Insert(&symbol.Symbol{Name: "X", Category: catDouble, Weight: 1})
	ss.Insert(&symbol.Symbol{Name: "B1", Category: symbol.Category(1), Weight: 1})

	r := rng.New(1)
	for i := 0; i < 20; i++ {
		s := ss.Roulette(catDouble, r)
		require.NotNil(t, s)
		assert.Equal(t, catDouble, s.Category)
	}
}

func TestValidateRejectsEmptyOrBrokenClosure(t *testing.T) {
	ss := symbol.NewSymbolSet()
	assert.Error(t, ss.Validate())

	ss.Insert(&symbol.Symbol{
		Name:          "FADD",
		Category:      catDouble,
		ArgCategories: []symbol.Category{catDouble, catDouble},
		Weight:        1,
	})
	assert.Error(t, ss.Validate())

	ss.Insert(&symbol.Symbol{Name: "X", Category: catDouble, Weight: 1})
	assert.NoError(t, ss.Validate())
}
