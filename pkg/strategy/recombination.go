package strategy

import (
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
)

// signatureRepulsionFactor bounds the re-mutation loop of the standard
// operator at 2*L (SPEC_FULL.md's resolution of the original's
// unbounded "while signatures collide, re-mutate" loop, which has no
// documented termination guarantee). L is the genome length.
const signatureRepulsionFactor = 2

// Counters accumulates the per-generation crossover/mutation tallies
// the driver's Summary needs (spec.md §4.9).
type Counters struct {
	Crossovers int
	Mutations  int
}

// StandardOp implements spec.md §4.8's standard recombination operator:
// crossover with probability PCross (else copy a parent), mutate,
// signature-repulsion against both parents, and optional brood
// recombination keeping the best fast_fitness offspring.
type StandardOp struct {
	PCross    float64
	PMutation float64
	BroodSize int
}

// Run produces one offspring from an ordered parent pair, returning it
// alongside the counters accumulated while producing it.
func (op StandardOp) Run(p0, p1 *genome.Genome, eva evaluator.Evaluator, r *rng.Source) (*genome.Genome, Counters) {
	var c Counters

	if !r.BoolP(op.PCross) {
		var off *genome.Genome
		if r.Bool() {
			off = p0.Clone()
		} else {
			off = p1.Clone()
		}
		c.Mutations += genome.Mutate(off, op.PMutation, r)
		op.repel(off, p0, p1, r, &c)
		return off, c
	}

	off := genome.Crossover(p0, p1, r)
	c.Crossovers++
	c.Mutations += genome.Mutate(off, op.PMutation, r)
	op.repel(off, p0, p1, r, &c)

	if op.BroodSize > 0 {
		best := off
		bestFit := evaluator.FastEvaluate(eva, best)
		for i := 0; i < op.BroodSize; i++ {
			tmp := genome.Crossover(p0, p1, r)
			c.Crossovers++
			c.Mutations += genome.Mutate(tmp, op.PMutation, r)
			op.repel(tmp, p0, p1, r, &c)

			tmpFit := evaluator.FastEvaluate(eva, tmp)
			if tmpFit.Greater(bestFit) {
				best, bestFit = tmp, tmpFit
			}
		}
		off = best
	}

	return off, c
}

// repel re-mutates off while its signature collides with either
// parent's, capped at 2*L attempts (see signatureRepulsionFactor).
func (op StandardOp) repel(off, p0, p1 *genome.Genome, r *rng.Source, c *Counters) {
	budget := signatureRepulsionFactor * off.Len()
	sig0, sig1 := p0.Signature(), p1.Signature()
	for i := 0; i < budget; i++ {
		sig := off.Signature()
		if sig != sig0 && sig != sig1 {
			return
		}
		c.Mutations += genome.Mutate(off, op.PMutation, r)
	}
	// TODO: exhausted the repulsion budget; off is accepted as-is
	// (matches the original's unbounded loop, capped per SPEC_FULL.md).
}

// Recombine is a convenience entry point taking parent coordinates
// directly from a Selector's result, for callers (the evolution driver)
// that work in terms of population coordinates rather than genomes.
func Recombine(op StandardOp, pop *population.Population, parents []population.Coord, eva evaluator.Evaluator, r *rng.Source) (*genome.Genome, Counters) {
	p0 := pop.At(parents[0])
	p1 := pop.At(parents[1])
	return op.Run(p0, p1, eva, r)
}
