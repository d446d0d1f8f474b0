// Package strategy implements the selection, recombination and
// replacement strategies of spec.md §4.8, grounded directly on
// orig:kernel/evolution_selection_inl.h (tournament/ALPS/Pareto/random
// selection) and orig:kernel/evolution_operation_inl.h (the standard
// crossover+mutation operator with signature-repulsion and brood
// recombination).
package strategy

import (
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/population"
)

// Selector returns the coordinates of the parents (and, for Pareto, a
// replacement victim) chosen for one offspring slot.
type Selector interface {
	Select(pop *population.Population, eva evaluator.Evaluator, r *rng.Source) []population.Coord
}

func pickupAny(pop *population.Population, r *rng.Source) population.Coord {
	if pop.NumLayers() == 1 {
		return population.Coord{Layer: 0, Index: r.IntN(len(pop.Individuals(0)))}
	}
	layer := r.IntN(pop.NumLayers())
	return population.Coord{Layer: layer, Index: r.IntN(len(pop.Individuals(layer)))}
}

// pickupNear returns a coordinate in target's layer, within mateZone of
// target's index (wrapping), biasing the search toward the anchor.
func pickupNear(pop *population.Population, target population.Coord, mateZone int, r *rng.Source) population.Coord {
	size := len(pop.Individuals(target.Layer))
	return population.Coord{Layer: target.Layer, Index: r.Ring(target.Index, mateZone, size)}
}

// pickupLayer returns a coordinate in layer l with probability p,
// otherwise in layer l-1 (clamped at 0).
func pickupLayer(pop *population.Population, l int, p float64, r *rng.Source) population.Coord {
	if l > 0 && !r.BoolP(p) {
		l--
	}
	return population.Coord{Layer: l, Index: r.IntN(len(pop.Individuals(l)))}
}

// Tournament implements spec.md §4.8's tournament selection: draw
// tournamentSize individuals from the ring of radius mateZone around a
// uniformly chosen anchor, return them sorted by fitness descending via
// insertion sort (the original's stated reason: faster than a
// comparison sort for small tournament sizes).
type Tournament struct {
	Size     int
	MateZone int
}

func (t Tournament) Select(pop *population.Population, eva evaluator.Evaluator, r *rng.Source) []population.Coord {
	anchor := pickupAny(pop, r)
	ret := make([]population.Coord, 0, t.Size)
	fits := make([]fitness.Fitness, 0, t.Size)

	for i := 0; i < t.Size; i++ {
		c := pickupNear(pop, anchor, t.MateZone, r)
		f := eva.Evaluate(pop.At(c))

		j := 0
		for j < len(ret) && f.Less(fits[j]) {
			j++
		}
		ret = append(ret, population.Coord{})
		fits = append(fits, nil)
		copy(ret[j+1:], ret[j:len(ret)-1])
		copy(fits[j+1:], fits[j:len(fits)-1])
		ret[j] = c
		fits[j] = f
	}
	return ret
}

// ALPS implements spec.md §4.8's ALPS tournament selection: returns
// exactly two parents, ordered by (not_aged, fitness) lexicographic so
// parent 0's key is always >= parent 1's.
type ALPS struct {
	TournamentSize int
	PSameLayer     float64
}

type ageFit struct {
	notAged bool
	f       fitness.Fitness
}

// less reports whether a is strictly worse than b under (not_aged,
// fitness) lexicographic order: an aged individual always loses to a
// non-aged one regardless of fitness.
func (a ageFit) less(b ageFit) bool {
	if a.notAged != b.notAged {
		return !a.notAged && b.notAged
	}
	return a.f.Less(b.f)
}

func (s ALPS) Select(pop *population.Population, eva evaluator.Evaluator, r *rng.Source) []population.Coord {
	layer := r.IntN(pop.NumLayers())

	c0 := pickupLayer(pop, layer, s.PSameLayer, r)
	c1 := pickupLayer(pop, layer, s.PSameLayer, r)
	af0 := ageFit{!pop.Aged(c0), eva.Evaluate(pop.At(c0))}
	af1 := ageFit{!pop.Aged(c1), eva.Evaluate(pop.At(c1))}
	if af0.less(af1) {
		c0, c1 = c1, c0
		af0, af1 = af1, af0
	}

	for i := 0; i < s.TournamentSize; i++ {
		tmp := pickupLayer(pop, layer, s.PSameLayer, r)
		tf := ageFit{!pop.Aged(tmp), eva.Evaluate(pop.At(tmp))}

		if af0.less(tf) {
			c1, af1 = c0, af0
			c0, af0 = tmp, tf
		} else if af1.less(tf) {
			c1, af1 = tmp, tf
		}
	}

	return []population.Coord{c0, c1}
}

// Pareto implements spec.md §4.8's Pareto selection: draw
// tournamentSize individuals, partition into non-dominated ("front")
// and dominated sets, return two uniformly-chosen front members plus
// one dominated member (if any) to serve as a replacement victim.
type Pareto struct {
	TournamentSize int
}

func (p Pareto) Select(pop *population.Population, eva evaluator.Evaluator, r *rng.Source) []population.Coord {
	pool := make([]population.Coord, p.TournamentSize)
	for i := range pool {
		pool[i] = pickupAny(pop, r)
	}

	front, dominated := paretoFront(pop, eva, pool)
	if len(front) == 0 {
		front = pool
	}

	ret := []population.Coord{
		front[r.IntN(len(front))],
		front[r.IntN(len(front))],
	}
	if len(dominated) > 0 {
		ret = append(ret, dominated[r.IntN(len(dominated))])
	}
	return ret
}

func paretoFront(pop *population.Population, eva evaluator.Evaluator, pool []population.Coord) (front, dominated []population.Coord) {
	for _, ind := range pool {
		alreadySeen := false
		for _, f := range front {
			if f == ind {
				alreadySeen = true
				break
			}
		}
		for _, d := range dominated {
			if d == ind {
				alreadySeen = true
				break
			}
		}
		if alreadySeen {
			continue
		}

		indFit := eva.Evaluate(pop.At(ind))
		indDominated := false
		kept := front[:0:0]
		for _, f := range front {
			fFit := eva.Evaluate(pop.At(f))
			if !indDominated && indFit.Dominates(fFit) {
				dominated = append(dominated, f)
				continue
			}
			if fFit.Dominates(indFit) {
				indDominated = true
			}
			kept = append(kept, f)
		}
		front = kept
		if indDominated {
			dominated = append(dominated, ind)
		} else {
			front = append(front, ind)
		}
	}
	return front, dominated
}

// Random implements spec.md §4.8's random selection: tournamentSize
// uniformly random individuals, the first the anchor, the rest drawn
// within mateZone of it.
type Random struct {
	Size     int
	MateZone int
}

func (rs Random) Select(pop *population.Population, eva evaluator.Evaluator, r *rng.Source) []population.Coord {
	ret := make([]population.Coord, rs.Size)
	ret[0] = pickupAny(pop, r)
	for i := 1; i < rs.Size; i++ {
		ret[i] = pickupNear(pop, ret[0], rs.MateZone, r)
	}
	return ret
}
