// Package symbol implements the typed terminal/function symbol model:
// categories, opcode assignment, and weighted roulette selection. A
// SymbolSet is effectively immutable once EnoughTerminals passes (§5
// shared-resources rule).
package symbol

import "github.com/klauer/vita/pkg/value"

// Category is an integer tag naming a type class. Arguments connect
// only to symbols whose output category matches the declared argument
// category (strong typing).
type Category uint32

// Opcode is a stable, process-wide-unique 32-bit identifier assigned
// sequentially at registration.
type Opcode uint32

// Params is the resolved argument-value vector passed to Eval.
type Params []value.Value

// Symbol is immutable after registration.
type Symbol struct {
	Name     string
	Opcode   Opcode
	Category Category

	// ArgCategories has length == arity; empty for terminals.
	ArgCategories []Category

	// Associative hints the signature canonicalizer that argument order
	// does not affect semantics (spec.md §8 scenario 5).
	Associative bool

	// Parametric terminals carry an embedded numeric parameter sampled
	// at gene creation via InitParam. Only meaningful when Arity() == 0.
	Parametric bool
	InitParam  func(rng Rng) float64

	// Weight is the roulette selection weight; must be > 0.
	Weight float64

	// EvalFunc implements eval(params) -> Value. For parametric
	// terminals the sampled parameter is passed as the separate param
	// argument; terminals receive an empty params.
	EvalFunc func(params Params, param float64) value.Value

	// PenaltyFunc implements penalty_contribution; nil means 0.
	PenaltyFunc func(params Params, param float64) float64

	// DisplayFunc renders the symbol (and optional parameter) for
	// debugging/printing; nil falls back to Name.
	DisplayFunc func(param float64, hasParam bool) string
}

// Rng is the minimal random source the symbol set and genome package
// need; satisfied by *rand.Rand (math/rand/v2) via internal/rng.Source.
type Rng interface {
	Float64() float64
	IntN(n int) int
}

func (s *Symbol) Arity() int { return len(s.ArgCategories) }

func (s *Symbol) IsTerminal() bool { return s.Arity() == 0 }

// Eval evaluates the symbol given resolved argument values and (for
// parametric terminals) the sampled parameter. It never panics: a
// symbol whose EvalFunc is nil evaluates to Void.
func (s *Symbol) Eval(params Params, param float64) value.Value {
	if s.EvalFunc == nil {
		return value.VoidValue
	}
	if value.AnyVoid(params...) {
		return value.VoidValue
	}
	return s.EvalFunc(params, param)
}

// PenaltyContribution returns the symbol's constraint-violation
// contribution, default 0.
func (s *Symbol) PenaltyContribution(params Params, param float64) float64 {
	if s.PenaltyFunc == nil {
		return 0
	}
	return s.PenaltyFunc(params, param)
}

func (s *Symbol) Display(param float64, hasParam bool) string {
	if s.DisplayFunc != nil {
		return s.DisplayFunc(param, hasParam)
	}
	return s.Name
}
