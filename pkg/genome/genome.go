// Package genome implements the MEP (Multi-Expression Programming)
// genome: a linear, acyclic, typed program representation. Loci
// [0, L-patch) are "standard" (function or terminal); loci
// [L-patch, L) are the "patch" (terminals only), guaranteeing that any
// forward argument reference resolves. Adapted from the teacher's
// pkg/deck/genetic/genome.go (deck-card semantics replaced by
// locus/gene/category semantics).
package genome

import (
	"fmt"

	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/symbol"
)

// Gene is a record at a single genome locus: a symbol, its forward
// argument indices (empty for a terminal), and — for a parametric
// terminal — the sampled embedded parameter.
type Gene struct {
	Symbol   *symbol.Symbol
	Category symbol.Category // == Symbol.Category, cached for fast lookups during creation/mutation
	Args     []int           // len == Symbol.Arity(); each entry is a locus strictly greater than its own index
	Param    float64
	HasParam bool
}

func newGene(s *symbol.Symbol, r *rng.Source) Gene {
	g := Gene{Symbol: s, Category: s.Category}
	if s.Parametric && s.InitParam != nil {
		g.Param = s.InitParam(r)
		g.HasParam = true
	}
	return g
}

// GenomeConfig is the subset of internal/config.Config the genome
// package needs, kept narrow so this package does not depend on the
// CLI-facing config package directly.
type GenomeConfig struct {
	CodeLength int
	PatchSize  int
	PMutation  float64
}

// Genome is an ordered sequence of L genes plus a designated entry
// locus Best. The active sub-DAG rooted at Best is the set of loci
// reachable by transitive closure over Args.
type Genome struct {
	Genes []Gene
	Best  int
	age   uint

	ss  *symbol.SymbolSet
	cfg GenomeConfig
}

// Age is read-only outside IncAge: it is never reset by mutation or
// crossover (spec.md §4.3).
func (g *Genome) Age() uint { return g.age }

// IncAge increments the genome's age by one.
func (g *Genome) IncAge() { g.age++ }

// Len returns the genome length L.
func (g *Genome) Len() int { return len(g.Genes) }

// New constructs an empty genome shell of length cfg.CodeLength with no
// genes populated — used internally by NewRandom and by callers that
// build a genome gene-by-gene (e.g. tests, hand-authored programs).
func New(ss *symbol.SymbolSet, cfg GenomeConfig) *Genome {
	return &Genome{
		Genes: make([]Gene, cfg.CodeLength),
		Best:  cfg.CodeLength - 1,
		ss:    ss,
		cfg:   cfg,
	}
}

// NewRandom builds a genome via random fill (spec.md §4.3 Creation):
// loci are populated tail-first (from L-1 down to 0) so that, when a
// function gene at locus i needs an argument of a given category, every
// later locus already has a known category and can be filtered
// directly. If no later locus of the required category exists yet (an
// edge case near the tail that spec.md leaves unspecified), a random
// patch locus is forced to that category — patch loci are
// terminals-only by construction, so this never violates the patch
// invariant and always succeeds given the closure property.
func NewRandom(ss *symbol.SymbolSet, cfg GenomeConfig, r *rng.Source) (*Genome, error) {
	if !ss.EnoughTerminals() {
		return nil, fmt.Errorf("genome: closure property violated, refusing to initialize")
	}

	g := New(ss, cfg)
	L := cfg.CodeLength
	patchStart := L - cfg.PatchSize
	if patchStart < 0 {
		patchStart = 0
	}

	for i := L - 1; i >= patchStart; i-- {
		t := rouletteAnyTerminal(ss, r)
		g.Genes[i] = newGene(t, r)
	}

	for i := patchStart - 1; i >= 0; i-- {
		s := rouletteAny(ss, r)
		gene := newGene(s, r)
		if arity := s.Arity(); arity > 0 {
			gene.Args = make([]int, arity)
			for k := 0; k < arity; k++ {
				gene.Args[k] = g.resolveArgument(i, s.ArgCategories[k], r)
			}
		}
		g.Genes[i] = gene
	}

	g.Best = 0
	return g, nil
}

// resolveArgument picks a locus strictly greater than i whose existing
// gene's category matches cat. If none exists it forces one: a
// uniformly chosen patch locus (> i) is overwritten with a fresh
// terminal of category cat.
func (g *Genome) resolveArgument(i int, cat symbol.Category, r *rng.Source) int {
	var candidates []int
	for j := i + 1; j < len(g.Genes); j++ {
		if g.Genes[j].Symbol != nil && g.Genes[j].Category == cat {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) > 0 {
		return candidates[r.IntN(len(candidates))]
	}

	patchStart := len(g.Genes) - g.cfg.PatchSize
	if patchStart <= i+1 {
		patchStart = i + 1
	}
	if patchStart >= len(g.Genes) {
		patchStart = len(g.Genes) - 1
	}
	j := patchStart + r.IntN(len(g.Genes)-patchStart)
	t := g.ss.RouletteTerminal(cat, r)
	if t != nil {
		g.Genes[j] = newGene(t, r)
	}
	return j
}

func rouletteAny(ss *symbol.SymbolSet, r *rng.Source) *symbol.Symbol {
	all := ss.Symbols()
	var total float64
	for _, s := range all {
		total += s.Weight
	}
	target := r.Float64() * total
	var acc float64
	for _, s := range all {
		acc += s.Weight
		if target < acc {
			return s
		}
	}
	return all[len(all)-1]
}

func rouletteAnyTerminal(ss *symbol.SymbolSet, r *rng.Source) *symbol.Symbol {
	var pool []*symbol.Symbol
	for _, s := range ss.Symbols() {
		if s.IsTerminal() {
			pool = append(pool, s)
		}
	}
	var total float64
	for _, s := range pool {
		total += s.Weight
	}
	target := r.Float64() * total
	var acc float64
	for _, s := range pool {
		acc += s.Weight
		if target < acc {
			return s
		}
	}
	return pool[len(pool)-1]
}

// Clone returns a deep, independent copy of g (same age, symbol set,
// config).
func (g *Genome) Clone() *Genome {
	out := &Genome{
		Genes: make([]Gene, len(g.Genes)),
		Best:  g.Best,
		age:   g.age,
		ss:    g.ss,
		cfg:   g.cfg,
	}
	for i, gene := range g.Genes {
		cp := gene
		if gene.Args != nil {
			cp.Args = append([]int(nil), gene.Args...)
		}
		out.Genes[i] = cp
	}
	return out
}

// ActiveLoci returns the set of loci reachable by transitive closure
// from Best (spec.md §3 invariant I3), in no particular order.
func (g *Genome) ActiveLoci() map[int]struct{} {
	active := make(map[int]struct{})
	var visit func(i int)
	visit = func(i int) {
		if _, seen := active[i]; seen {
			return
		}
		active[i] = struct{}{}
		for _, a := range g.Genes[i].Args {
			visit(a)
		}
	}
	if len(g.Genes) > 0 {
		visit(g.Best)
	}
	return active
}

// SymbolSet returns the symbol set this genome was built against.
func (g *Genome) SymbolSet() *symbol.SymbolSet { return g.ss }

// Config returns the genome-shape configuration this genome was built
// with.
func (g *Genome) Config() GenomeConfig { return g.cfg }

// Debug checks the structural invariants of spec.md §8: every argument
// index is strictly greater than its own locus, and every argument's
// category matches the symbol's declared category for that slot.
func (g *Genome) Debug() error {
	for i, gene := range g.Genes {
		if gene.Symbol == nil {
			return fmt.Errorf("genome: locus %d has no symbol", i)
		}
		if len(gene.Args) != gene.Symbol.Arity() {
			return fmt.Errorf("genome: locus %d arity mismatch", i)
		}
		for k, a := range gene.Args {
			if a <= i {
				return fmt.Errorf("genome: locus %d argument %d points backward to %d", i, k, a)
			}
			want := gene.Symbol.ArgCategories[k]
			if g.Genes[a].Category != want {
				return fmt.Errorf("genome: locus %d argument %d category mismatch: want %d got %d", i, k, want, g.Genes[a].Category)
			}
		}
	}
	if g.Best < 0 || g.Best >= len(g.Genes) {
		return fmt.Errorf("genome: best locus %d out of range", g.Best)
	}
	return nil
}
