package genome

import "github.com/klauer/vita/internal/rng"

// Crossover implements the uniform, position-preserving recombination
// of spec.md §4.3: at each locus i, the offspring takes parent p's gene
// with probability 1/2, else parent q's gene. Both parents must share
// the same shape (length, symbol set, config) — callers enforce this by
// only ever crossing genomes drawn from the same population.
//
// The offspring's age is the max of the two parents' ages (spec.md §8:
// "age of offspring = max of parents' ages"), reflecting that it
// carries genetic material already present in the older parent's
// lineage.
func Crossover(p, q *Genome, r *rng.Source) *Genome {
	out := p.Clone()
	for i := range out.Genes {
		if r.Bool() {
			cp := q.Genes[i]
			if cp.Args != nil {
				cp.Args = append([]int(nil), cp.Args...)
			}
			out.Genes[i] = cp
		}
	}
	if r.Bool() {
		out.Best = q.Best
	}
	out.age = max(p.age, q.age)
	return out
}
