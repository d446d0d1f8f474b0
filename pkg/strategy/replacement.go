package strategy

import (
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/population"
)

// BestEver tracks the running best-ever genome and its fitness, used by
// both replacement strategies and the evolution driver's summary
// (spec.md §4.9).
type BestEver struct {
	Genome  *genome.Genome
	Fitness fitness.Fitness
}

// Replacer updates the population with one offspring, given the
// parents it was produced from and the running best-ever record.
type Replacer interface {
	Replace(pop *population.Population, parents []population.Coord, off *genome.Genome, eva evaluator.Evaluator, best *BestEver)
}

// SteadyState implements spec.md §4.8's steady-state tournament
// replacement: find the worst of the tournament losers (every parent
// coordinate after the first two used for recombination, if the
// selector returned extras, otherwise the parents themselves) and
// replace it with off iff off's fitness beats it. Never replaces the
// current best.
type SteadyState struct{}

func (SteadyState) Replace(pop *population.Population, parents []population.Coord, off *genome.Genome, eva evaluator.Evaluator, best *BestEver) {
	offFit := eva.Evaluate(off)

	losers := parents
	if len(parents) > 2 {
		losers = parents[2:]
	}
	worst := losers[0]
	worstFit := eva.Evaluate(pop.At(worst))
	for _, c := range losers[1:] {
		f := eva.Evaluate(pop.At(c))
		if f.Less(worstFit) {
			worst, worstFit = c, f
		}
	}

	if best.Genome != nil && pop.At(worst) == best.Genome {
		// never evict the current best
	} else if offFit.Greater(worstFit) {
		pop.Set(worst, off)
	}

	if best.Genome == nil || offFit.Greater(best.Fitness) {
		best.Genome, best.Fitness = off, offFit
	}
}

// ALPSReplace implements spec.md §4.8's ALPS replacement: before
// placing off into layer l, try_move_up_layer evicts any individual in
// l whose age exceeds the layer's ceiling and whose fitness beats the
// target slot in layer l+1; off is then placed into l's worst
// non-best slot.
type ALPSReplace struct {
	Layer int
}

func (a ALPSReplace) Replace(pop *population.Population, parents []population.Coord, off *genome.Genome, eva evaluator.Evaluator, best *BestEver) {
	a.tryMoveUpLayer(pop, eva)

	layerGenomes := pop.Individuals(a.Layer)
	worstIdx := -1
	var worstFit fitness.Fitness
	for i, g := range layerGenomes {
		if best.Genome != nil && g == best.Genome {
			continue
		}
		f := eva.Evaluate(g)
		if worstIdx < 0 || f.Less(worstFit) {
			worstIdx, worstFit = i, f
		}
	}
	if worstIdx < 0 {
		return
	}

	target := population.Coord{Layer: a.Layer, Index: worstIdx}
	pop.Set(target, off)

	offFit := eva.Evaluate(off)
	if best.Genome == nil || offFit.Greater(best.Fitness) {
		best.Genome, best.Fitness = off, offFit
	}
}

// tryMoveUpLayer moves any aged, sufficiently-fit individual in layer l
// up into layer l+1, evicting that layer's worst slot.
func (a ALPSReplace) tryMoveUpLayer(pop *population.Population, eva evaluator.Evaluator) {
	if a.Layer+1 >= pop.NumLayers() {
		return
	}
	above := pop.Individuals(a.Layer + 1)
	worstIdx := 0
	worstFit := eva.Evaluate(above[0])
	for i := 1; i < len(above); i++ {
		f := eva.Evaluate(above[i])
		if f.Less(worstFit) {
			worstIdx, worstFit = i, f
		}
	}

	for i, g := range pop.Individuals(a.Layer) {
		src := population.Coord{Layer: a.Layer, Index: i}
		if !pop.Aged(src) {
			continue
		}
		f := eva.Evaluate(g)
		if f.Greater(worstFit) {
			pop.Set(population.Coord{Layer: a.Layer + 1, Index: worstIdx}, g)
			return
		}
	}
}

// PostGenerationBookkeeping implements spec.md §4.8's per-generation
// ALPS upkeep: age the whole population; every ageGap generations,
// either grow a new layer (if below maxLayers) or promote layer 0's
// survivors via ALPSReplace.tryMoveUpLayer and reinitialize layer 0
// with fresh random genomes.
func PostGenerationBookkeeping(pop *population.Population, generation, ageGap, maxLayers int, eva evaluator.Evaluator, r *rng.Source) error {
	pop.IncAge()
	if generation == 0 || generation%ageGap != 0 {
		return nil
	}
	if pop.NumLayers() < maxLayers {
		return pop.AddLayer(r)
	}
	(ALPSReplace{Layer: 0}).tryMoveUpLayer(pop, eva)
	return pop.InitLayer(0, r)
}
