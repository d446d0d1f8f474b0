package ga

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// vectorGenome is the eaopt.Genome adapter for a fixed-length integer
// vector, replacing the teacher's eaoptDeckGenome/DeckGenome pair
// (deck-card choices) with the plain []int representation SPEC_FULL.md
// §1 asks the classical-GA family to evolve.
type vectorGenome struct {
	values     []int
	objective  Objective
	valueRange int
}

func (g *vectorGenome) Evaluate() (float64, error) {
	return -g.objective(g.values), nil
}

func (g *vectorGenome) Mutate(rng *rand.Rand) {
	if len(g.values) == 0 {
		return
	}
	i := rng.Intn(len(g.values))
	g.values[i] = rng.Intn(g.valueRange)
}

// Crossover performs uniform crossover: each gene is swapped with the
// other parent's with probability 1/2, matching the bit-swap shape the
// teacher's DeckGenome.Crossover uses for card slots
// (eaoptDeckGenome.Crossover in pkg/deck/genetic/optimizer.go delegates
// to it) generalized from strings to ints.
func (g *vectorGenome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	o, ok := other.(*vectorGenome)
	if !ok || o == nil || len(o.values) != len(g.values) {
		return
	}
	for i := range g.values {
		if rng.Intn(2) == 0 {
			g.values[i], o.values[i] = o.values[i], g.values[i]
		}
	}
}

func (g *vectorGenome) Clone() eaopt.Genome {
	cp := make([]int, len(g.values))
	copy(cp, g.values)
	return &vectorGenome{values: cp, objective: g.objective, valueRange: g.valueRange}
}

// Values returns the underlying vector, for callers that need the
// winning solution's raw genes (e.g. the CLI's result printer).
func (g *vectorGenome) Values() []int { return g.values }
