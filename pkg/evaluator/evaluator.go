// Package evaluator implements the evaluator adapters of spec.md §4.6:
// every adapter satisfies the same contract, "evaluate a genome to a
// total, never-failing Fitness", and adapters chain by wrapping an
// inner Evaluator. Grounded on the teacher's DeckGenome.Evaluate
// cache-then-call-then-store shape (pkg/deck/genetic/genome.go) and on
// orig:kernel/constrained_evaluator_inl.h (penalty-first combine) and
// orig:kernel/ga/ga_evaluator_inl.h (the atan squash).
package evaluator

import (
	"math"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/cache"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/interpreter"
)

// Evaluator scores a genome. Implementations must never fail: a
// genome that cannot be meaningfully evaluated returns a sentinel
// fitness, not an error (spec.md §7: the hot path has no error return).
type Evaluator interface {
	Evaluate(g *genome.Genome) fitness.Fitness
}

// FastEvaluator is an Evaluator that also exposes a cheaper,
// approximate scoring hook for brood recombination (spec.md §4.8 and
// SPEC_FULL.md §4's fast_fitness supplement). FastEvaluate defaults to
// Evaluate when an Evaluator doesn't implement this interface — see
// FastEvaluate below.
type FastEvaluator interface {
	Evaluator
	FastEvaluate(g *genome.Genome) fitness.Fitness
}

// FastEvaluate calls e.FastEvaluate if e implements FastEvaluator,
// otherwise falls back to e.Evaluate — the named, separately
// overridable hook SPEC_FULL.md §4 calls for.
func FastEvaluate(e Evaluator, g *genome.Genome) fitness.Fitness {
	if fe, ok := e.(FastEvaluator); ok {
		return fe.FastEvaluate(g)
	}
	return e.Evaluate(g)
}

// EvalFunc adapts a plain function to the Evaluator interface.
type EvalFunc func(g *genome.Genome) fitness.Fitness

func (f EvalFunc) Evaluate(g *genome.Genome) fitness.Fitness { return f(g) }

// Caching wraps an inner Evaluator with the transposition cache:
// signature hit returns the stored fitness unmodified; miss evaluates,
// inserts, and returns.
type Caching struct {
	Inner Evaluator
	Cache *cache.Cache
}

func NewCaching(inner Evaluator, c *cache.Cache) *Caching {
	return &Caching{Inner: inner, Cache: c}
}

func (c *Caching) Evaluate(g *genome.Genome) fitness.Fitness {
	sig := g.Signature()
	if f, ok := c.Cache.Find(sig); ok {
		return f
	}
	f := c.Inner.Evaluate(g)
	c.Cache.Insert(sig, f)
	return f
}

// Penalty wraps an inner Evaluator for constrained problems: the
// genome's active-subtree penalty (via its interpreter) is prepended,
// negated, to the inner fitness, so any positive penalty strictly
// worsens the combined vector under lexicographic comparison.
type Penalty struct {
	Inner Evaluator
}

func NewPenalty(inner Evaluator) *Penalty { return &Penalty{Inner: inner} }

func (p *Penalty) Evaluate(g *genome.Genome) fitness.Fitness {
	penalty := interpreter.New(g).Penalty()
	return fitness.Combine(fitness.Fitness{-penalty}, p.Inner.Evaluate(g))
}

// GA adapts a plain objective function f: Genome -> float64 via the
// atan squash of orig:kernel/ga/ga_evaluator_inl.h, guaranteeing bounded
// fitness on an unbounded objective. Non-finite f(g) collapses to a
// one-component sentinel.
type GA struct {
	Objective func(g *genome.Genome) float64
}

func NewGA(objective func(g *genome.Genome) float64) *GA { return &GA{Objective: objective} }

func (e *GA) Evaluate(g *genome.Genome) fitness.Fitness {
	v := e.Objective(g)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fitness.Sentinel(1)
	}
	return fitness.Fitness{1000 * (math.Atan(v)/math.Pi - 0.5)}
}

// Random returns uniformly sampled fitness in [0, 1) per component —
// used only for testing strategy/population code independent of a real
// evaluator.
type Random struct {
	Width int
	Rng   *rng.Source
}

func NewRandom(width int, r *rng.Source) *Random { return &Random{Width: width, Rng: r} }

func (r *Random) Evaluate(*genome.Genome) fitness.Fitness {
	f := make(fitness.Fitness, r.Width)
	for i := range f {
		f[i] = r.Rng.Float64()
	}
	return f
}
