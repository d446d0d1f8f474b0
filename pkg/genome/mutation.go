package genome

import (
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/symbol"
)

// Mutate replaces each locus independently with probability pMutation,
// drawing a fresh gene of the appropriate kind for that locus: a patch
// locus (i >= L - patch) always draws a terminal, so the invariant that
// patch loci are terminal-only is preserved; a standard locus draws any
// symbol and, if it has arity, resolves fresh forward arguments exactly
// as NewRandom would. It returns the number of loci redrawn; a redraw
// that happens to produce the same gene is still counted
// (spec.md §8: "p=0 → 0 changes; p=0.5 → changed count within
// tolerance of L/2").
func Mutate(g *Genome, pMutation float64, r *rng.Source) int {
	if pMutation <= 0 {
		return 0
	}
	patchStart := len(g.Genes) - g.cfg.PatchSize
	if patchStart < 0 {
		patchStart = 0
	}

	changed := 0
	for i := range g.Genes {
		if !r.BoolP(pMutation) {
			continue
		}
		changed++
		if i >= patchStart {
			t := rouletteAnyTerminal(g.ss, r)
			g.Genes[i] = newGene(t, r)
			continue
		}
		s := rouletteAny(g.ss, r)
		gene := newGene(s, r)
		if arity := s.Arity(); arity > 0 {
			gene.Args = make([]int, arity)
			for k := 0; k < arity; k++ {
				gene.Args[k] = g.resolveArgument(i, s.ArgCategories[k], r)
			}
		}
		g.Genes[i] = gene
	}
	return changed
}

// MutateCategory forces locus i to hold a terminal of the given
// category. resolveArgument does not call it (it draws its patch
// terminals through SymbolSet.RouletteTerminal directly); it is
// exercised directly in tests of the closure-property edge case.
func MutateCategory(g *Genome, i int, cat symbol.Category, r *rng.Source) bool {
	t := g.ss.RouletteTerminal(cat, r)
	if t == nil {
		return false
	}
	g.Genes[i] = newGene(t, r)
	return true
}
