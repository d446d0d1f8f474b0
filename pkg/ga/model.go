package ga

import (
	"fmt"
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// elitismModel is the teacher's elitism-preserving eaopt.Model, kept
// verbatim in shape (pkg/deck/genetic/optimizer.go's elitismModel):
// sort by fitness, keep the top Elite individuals untouched, refill
// the rest via tournament selection + crossover + mutation.
type elitismModel struct {
	Selector  eaopt.Selector
	Elite     uint
	MutRate   float64
	CrossRate float64
}

func (mod elitismModel) Apply(pop *eaopt.Population) error {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}

	if mod.Elite > uint(len(pop.Individuals)) {
		mod.Elite = uint(len(pop.Individuals))
	}

	pop.Individuals.SortByFitness()

	var elites eaopt.Individuals
	if mod.Elite > 0 {
		elites = pop.Individuals[:mod.Elite].Clone(pop.RNG)
	}

	offspringCount := uint(len(pop.Individuals)) - mod.Elite
	if offspringCount > 0 {
		offsprings, err := generateOffsprings(offspringCount, pop.Individuals, mod.Selector, mod.CrossRate, pop.RNG)
		if err != nil {
			return err
		}
		if mod.MutRate > 0 {
			offsprings.Mutate(mod.MutRate, pop.RNG)
		}
		copy(pop.Individuals, elites)
		copy(pop.Individuals[mod.Elite:], offsprings)
		return nil
	}

	copy(pop.Individuals, elites)
	return nil
}

func (mod elitismModel) Validate() error {
	if mod.Selector == nil {
		return fmt.Errorf("ga: selector cannot be nil")
	}
	if err := mod.Selector.Validate(); err != nil {
		return err
	}
	if mod.MutRate < 0 || mod.MutRate > 1 {
		return fmt.Errorf("ga: mutation rate must be between 0 and 1, got %f", mod.MutRate)
	}
	if mod.CrossRate < 0 || mod.CrossRate > 1 {
		return fmt.Errorf("ga: crossover rate must be between 0 and 1, got %f", mod.CrossRate)
	}
	return nil
}

func generateOffsprings(n uint, indis eaopt.Individuals, sel eaopt.Selector, crossRate float64,
	rng *rand.Rand,
) (eaopt.Individuals, error) {
	offsprings := make(eaopt.Individuals, n)
	i := 0
	for i < len(offsprings) {
		selected, _, err := sel.Apply(2, indis, rng)
		if err != nil {
			return nil, err
		}
		if rng.Float64() < crossRate {
			selected[0].Crossover(selected[1], rng)
		}
		if i < len(offsprings) {
			offsprings[i] = selected[0]
			i++
		}
		if i < len(offsprings) {
			offsprings[i] = selected[1]
			i++
		}
	}
	return offsprings, nil
}

func aggregateFitness(gaInst *eaopt.GA) (float64, float64) {
	if gaInst == nil || len(gaInst.Populations) == 0 {
		return 0, 0
	}

	best := -gaInst.HallOfFame[0].Fitness
	sum := 0.0
	count := 0
	for _, pop := range gaInst.Populations {
		sum += -pop.Individuals.FitAvg()
		count++
	}
	if count == 0 {
		return best, 0
	}
	return best, sum / float64(count)
}

func extractHallOfFame(gaInst *eaopt.GA) ([][]int, []float64) {
	if gaInst == nil {
		return nil, nil
	}

	hall := make([][]int, 0, len(gaInst.HallOfFame))
	scores := make([]float64, 0, len(gaInst.HallOfFame))
	for _, indi := range gaInst.HallOfFame {
		wrapped, ok := indi.Genome.(*vectorGenome)
		if !ok || wrapped == nil {
			continue
		}
		hall = append(hall, wrapped.Values())
		scores = append(scores, -indi.Fitness)
	}
	return hall, scores
}
