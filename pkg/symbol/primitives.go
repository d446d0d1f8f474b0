package symbol

import (
	"fmt"
	"math"

	"github.com/klauer/vita/pkg/value"
)

// Non-goal (spec.md §1): the concrete primitive library is out of
// scope. The functions below are a minimal arithmetic/boolean set
// sufficient to exercise the worked examples in spec.md §8 (constant
// fit, boolean XOR) and the package tests — not a general library.

// Double-domain categories used by the arithmetic primitives.
const (
	CategoryDouble Category = iota
	CategoryBool
)

func binaryDouble(name string, weight float64, f func(a, b float64) float64) *Symbol {
	return &Symbol{
		Name:          name,
		Category:      CategoryDouble,
		ArgCategories: []Category{CategoryDouble, CategoryDouble},
		Weight:        weight,
		EvalFunc: func(p Params, _ float64) value.Value {
			a, aok := p[0].AsDouble()
			b, bok := p[1].AsDouble()
			if !aok || !bok {
				return value.VoidValue
			}
			return value.OfDouble(f(a, b))
		},
	}
}

// FADD, FSUB, FMUL, FDIV are the arithmetic function symbols used by
// spec.md §8 scenario 1 (symbolic regression constant fit).
func FADD(weight float64) *Symbol { return binaryDouble("FADD", weight, func(a, b float64) float64 { return a + b }) }
func FSUB(weight float64) *Symbol { return binaryDouble("FSUB", weight, func(a, b float64) float64 { return a - b }) }
func FMUL(weight float64) *Symbol { return binaryDouble("FMUL", weight, func(a, b float64) float64 { return a * b }) }

// FDIV returns Void on division by zero, per spec.md §4.1.
func FDIV(weight float64) *Symbol {
	return binaryDouble("FDIV", weight, func(a, b float64) float64 {
		if b == 0 {
			return math.NaN() // OfDouble collapses NaN/Inf to Void
		}
		return a / b
	})
}

// FLN returns Void for x <= 0, and exactly 0.0 for x == 1 (spec.md §8
// boundary behaviors).
func FLN(weight float64) *Symbol {
	return &Symbol{
		Name:          "FLN",
		Category:      CategoryDouble,
		ArgCategories: []Category{CategoryDouble},
		Weight:        weight,
		EvalFunc: func(p Params, _ float64) value.Value {
			x, ok := p[0].AsDouble()
			if !ok || x <= 0 {
				return value.VoidValue
			}
			return value.OfDouble(math.Log(x))
		},
	}
}

// Constant is a non-parametric terminal carrying a fixed embedded value.
func Constant(name string, weight, v float64) *Symbol {
	return &Symbol{
		Name:     name,
		Category: CategoryDouble,
		Weight:   weight,
		EvalFunc: func(_ Params, _ float64) value.Value { return value.OfDouble(v) },
	}
}

// EphemeralConstant is a parametric terminal: its value is sampled once
// at gene-creation time via InitParam (e.g. uniform in [lo, hi]) and
// held fixed thereafter.
func EphemeralConstant(name string, weight, lo, hi float64) *Symbol {
	return &Symbol{
		Name:       name,
		Category:   CategoryDouble,
		Weight:     weight,
		Parametric: true,
		InitParam: func(rng Rng) float64 {
			return lo + rng.Float64()*(hi-lo)
		},
		EvalFunc: func(_ Params, param float64) value.Value { return value.OfDouble(param) },
		DisplayFunc: func(param float64, hasParam bool) string {
			if hasParam {
				return fmt.Sprintf("%s(%g)", name, param)
			}
			return name
		},
	}
}

// RowContext holds the current dataset row's values, shared by every
// Variable/BoolVariable terminal built against it. A problem sets Values
// before each interpreter Run so evaluation reads the row currently
// under consideration; this is the "external context" a dataset's
// rows() sequence feeds into the symbol set (spec.md §6 Dataset
// interface), kept outside the interpreter's own per-run locus cache.
type RowContext struct {
	Values []value.Value
}

// Variable is a terminal that reads index from a shared RowContext.
func Variable(name string, weight float64, index int, row *RowContext) *Symbol {
	return &Symbol{
		Name:     name,
		Category: CategoryDouble,
		Weight:   weight,
		EvalFunc: func(_ Params, _ float64) value.Value {
			if index < 0 || index >= len(row.Values) {
				return value.VoidValue
			}
			return row.Values[index]
		},
	}
}

// AND, OR, NOT are the boolean primitives used by spec.md §8 scenario 2
// (boolean XOR).
func AND(weight float64) *Symbol {
	return &Symbol{
		Name: "AND", Category: CategoryBool, Weight: weight,
		ArgCategories: []Category{CategoryBool, CategoryBool},
		EvalFunc: func(p Params, _ float64) value.Value {
			a, _ := p[0].AsBool()
			b, _ := p[1].AsBool()
			return value.OfBool(a && b)
		},
	}
}

func OR(weight float64) *Symbol {
	return &Symbol{
		Name: "OR", Category: CategoryBool, Weight: weight,
		ArgCategories: []Category{CategoryBool, CategoryBool},
		EvalFunc: func(p Params, _ float64) value.Value {
			a, _ := p[0].AsBool()
			b, _ := p[1].AsBool()
			return value.OfBool(a || b)
		},
	}
}

func NOT(weight float64) *Symbol {
	return &Symbol{
		Name: "NOT", Category: CategoryBool, Weight: weight,
		ArgCategories: []Category{CategoryBool},
		EvalFunc: func(p Params, _ float64) value.Value {
			a, _ := p[0].AsBool()
			return value.OfBool(!a)
		},
	}
}

// BoolVariable is a boolean terminal that reads index from a shared
// RowContext.
func BoolVariable(name string, weight float64, index int, row *RowContext) *Symbol {
	return &Symbol{
		Name:     name,
		Category: CategoryBool,
		Weight:   weight,
		EvalFunc: func(_ Params, _ float64) value.Value {
			if index < 0 || index >= len(row.Values) {
				return value.VoidValue
			}
			return row.Values[index]
		},
	}
}
