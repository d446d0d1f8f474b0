package symbol

import "fmt"

// SymbolSet registers symbols and assigns opcodes sequentially. It owns
// no PRNG of its own — callers pass an Rng into the roulette methods so
// the process-wide PRNG (internal/rng) stays the single source of
// randomness draws flow through, per spec.md §5.
type SymbolSet struct {
	symbols    []*Symbol
	byCategory map[Category][]*Symbol // functions and terminals together
	functions  map[Category][]*Symbol
	terminals  map[Category][]*Symbol
	nextOpcode Opcode
}

// NewSymbolSet returns an empty symbol set.
func NewSymbolSet() *SymbolSet {
	return &SymbolSet{
		byCategory: make(map[Category][]*Symbol),
		functions:  make(map[Category][]*Symbol),
		terminals:  make(map[Category][]*Symbol),
	}
}

// Insert registers a symbol, assigning it the next opcode. Returns the
// assigned opcode. Weight must be > 0; a zero/negative weight is
// silently treated as 1 (matches the teacher's defensive-default style
// in GeneticConfig.Validate, here applied at registration instead of
// validation since a caller cannot "fix" someone else's opcode later).
func (ss *SymbolSet) Insert(s *Symbol) Opcode {
	if s.Weight <= 0 {
		s.Weight = 1
	}
	s.Opcode = ss.nextOpcode
	ss.nextOpcode++

	ss.symbols = append(ss.symbols, s)
	ss.byCategory[s.Category] = append(ss.byCategory[s.Category], s)
	if s.IsTerminal() {
		ss.terminals[s.Category] = append(ss.terminals[s.Category], s)
	} else {
		ss.functions[s.Category] = append(ss.functions[s.Category], s)
	}
	return s.Opcode
}

// Symbols returns every registered symbol in registration order.
func (ss *SymbolSet) Symbols() []*Symbol { return ss.symbols }

// Len returns the number of registered symbols.
func (ss *SymbolSet) Len() int { return len(ss.symbols) }

// EnoughTerminals returns true iff every function's every argument
// category has at least one compatible terminal — the GP closure
// property. Violation is fatal: initialization must refuse to start.
func (ss *SymbolSet) EnoughTerminals() bool {
	for _, fns := range ss.functions {
		for _, fn := range fns {
			for _, argCat := range fn.ArgCategories {
				if len(ss.terminals[argCat]) == 0 {
					return false
				}
			}
		}
	}
	return true
}

// Roulette draws a symbol of the given category (function or terminal)
// with probability proportional to weight.
func (ss *SymbolSet) Roulette(cat Category, rng Rng) *Symbol {
	return roulette(ss.byCategory[cat], rng)
}

// RouletteFunction draws a function symbol of the given category.
func (ss *SymbolSet) RouletteFunction(cat Category, rng Rng) *Symbol {
	return roulette(ss.functions[cat], rng)
}

// RouletteTerminal draws a terminal symbol of the given category. A
// caller uses this to force a terminal when genome position (the patch)
// requires one, regardless of how function-heavy the category is.
func (ss *SymbolSet) RouletteTerminal(cat Category, rng Rng) *Symbol {
	return roulette(ss.terminals[cat], rng)
}

func roulette(pool []*Symbol, rng Rng) *Symbol {
	if len(pool) == 0 {
		return nil
	}
	var total float64
	for _, s := range pool {
		total += s.Weight
	}
	target := rng.Float64() * total
	var acc float64
	for _, s := range pool {
		acc += s.Weight
		if target < acc {
			return s
		}
	}
	return pool[len(pool)-1]
}

// Validate checks registration-time invariants: at least one terminal
// overall and the closure property. Returns a descriptive error
// suitable for wrapping in internal/errors.CodedError by the caller.
func (ss *SymbolSet) Validate() error {
	if len(ss.symbols) == 0 {
		return fmt.Errorf("symbol set is empty")
	}
	hasTerminal := false
	for _, ts := range ss.terminals {
		if len(ts) > 0 {
			hasTerminal = true
			break
		}
	}
	if !hasTerminal {
		return fmt.Errorf("symbol set has no terminals")
	}
	if !ss.EnoughTerminals() {
		return fmt.Errorf("closure property violated: some function argument category has no compatible terminal")
	}
	return nil
}
