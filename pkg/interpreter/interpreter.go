// Package interpreter implements lazy, memoized evaluation of a genome
// (spec.md §4.2): run() demand-drives evaluation from a locus, caching
// each visited locus's value so it is computed at most once per call.
// Adapted from the teacher's pattern of a thin stateful object wrapping
// shared data (pkg/deck/genetic's evaluator wrapping a DeckGenome), here
// ported to the original's interpreter<i_mep> shape
// (orig:kernel/gp/mep/interpreter.cc): a flat (value, valid) cache
// indexed by locus, reset once per run and reused across fetch_arg
// calls within that run.
package interpreter

import (
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
)

type cacheSlot struct {
	value value.Value
	valid bool
}

// Interpreter evaluates one Genome. It is not safe for concurrent use;
// callers needing concurrent evaluation of the same genome should
// construct one Interpreter per goroutine (construction is cheap: a
// single slice allocation sized to the genome length).
type Interpreter struct {
	g     *genome.Genome
	cache []cacheSlot
	ip    int // current locus, restored around recursive Eval calls
}

// New returns an Interpreter over g, with a cache pre-sized to g's
// length but not yet populated.
func New(g *genome.Genome) *Interpreter {
	return &Interpreter{g: g, cache: make([]cacheSlot, g.Len())}
}

// Run evaluates the genome from its designated Best locus.
func (it *Interpreter) Run() value.Value {
	return it.RunLocus(it.g.Best)
}

// RunLocus clears the memoization cache and evaluates from the given
// locus — used by block extraction and by any caller wanting the value
// of a specific (not necessarily Best) entry point.
func (it *Interpreter) RunLocus(locus int) value.Value {
	for i := range it.cache {
		it.cache[i].valid = false
	}
	it.ip = locus
	return it.eval(locus)
}

// eval evaluates a single locus via its symbol, resolving terminal and
// function arguments through fetchArg so each argument locus is
// computed at most once per Run.
func (it *Interpreter) eval(locus int) value.Value {
	backup := it.ip
	it.ip = locus
	defer func() { it.ip = backup }()

	gene := it.g.Genes[locus]
	arity := gene.Symbol.Arity()
	if arity == 0 {
		return gene.Symbol.Eval(nil, gene.Param)
	}

	params := make(symbol.Params, arity)
	for i := 0; i < arity; i++ {
		params[i] = it.fetchArg(locus, i)
	}
	return gene.Symbol.Eval(params, gene.Param)
}

// fetchArg returns the i-th argument value of the gene at locus,
// populating the shared cache slot on first visit and reusing it on
// any later visit within the same Run — the memoization spec.md §4.2
// requires ("each locus is evaluated at most once").
func (it *Interpreter) fetchArg(locus, i int) value.Value {
	arg := it.g.Genes[locus].Args[i]
	slot := &it.cache[arg]
	if !slot.valid {
		slot.value = it.eval(arg)
		slot.valid = true
	}
	return slot.value
}

// Penalty walks the active sub-DAG from locus, summing each visited
// symbol's constraint-violation contribution (spec.md §4.6), following
// orig:kernel/gp/mep/interpreter.cc's penalty_locus/penalty_chain
// recursion. Within one call each locus's subtotal (its own
// contribution plus its arguments' subtotals) is memoized; a locus
// reached along several argument paths adds its subtotal once per path.
func (it *Interpreter) Penalty() float64 {
	return it.PenaltyLocus(it.g.Best)
}

// PenaltyLocus computes the penalty contribution of the subtree rooted
// at locus.
func (it *Interpreter) PenaltyLocus(locus int) float64 {
	memo := make(map[int]float64)
	return it.penaltyAt(locus, memo)
}

func (it *Interpreter) penaltyAt(locus int, memo map[int]float64) float64 {
	if p, ok := memo[locus]; ok {
		return p
	}
	gene := it.g.Genes[locus]
	arity := gene.Symbol.Arity()
	params := make(symbol.Params, arity)
	total := 0.0
	for i := 0; i < arity; i++ {
		arg := gene.Args[i]
		total += it.penaltyAt(arg, memo)
		params[i] = it.evalMemo(arg)
	}
	total += gene.Symbol.PenaltyContribution(params, gene.Param)
	memo[locus] = total
	return total
}

// evalMemo is a convenience wrapper for penalty computation, which
// needs argument values (to evaluate PenaltyFunc) independently of
// Run's cache lifetime.
func (it *Interpreter) evalMemo(locus int) value.Value {
	return it.eval(locus)
}
