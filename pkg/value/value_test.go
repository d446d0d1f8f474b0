package value_test

import (
	"math"
	"testing"

	"github.com/klauer/vita/pkg/value"
	"github.com/stretchr/testify/assert"
)

func TestOfDoubleCollapsesNonFinite(t *testing.T) {
	assert.True(t, value.OfDouble(math.Inf(1)).IsVoid())
	assert.True(t, value.OfDouble(math.Inf(-1)).IsVoid())
	assert.True(t, value.OfDouble(math.NaN()).IsVoid())

	v := value.OfDouble(3.5)
	assert.False(t, v.IsVoid())
	d, ok := v.AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 3.5, d)
}

func TestAnyVoid(t *testing.T) {
	assert.True(t, value.AnyVoid(value.OfInt(1), value.VoidValue))
	assert.False(t, value.AnyVoid(value.OfInt(1), value.OfBool(true)))
}

func TestEqual(t *testing.T) {
	assert.True(t, value.Equal(value.VoidValue, value.VoidValue))
	assert.True(t, value.Equal(value.OfInt(4), value.OfInt(4)))
	assert.False(t, value.Equal(value.OfInt(4), value.OfInt(5)))
	assert.False(t, value.Equal(value.OfInt(4), value.OfDouble(4)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "void", value.VoidValue.String())
	assert.Equal(t, "bool", value.OfBool(true).Kind().String())
}
