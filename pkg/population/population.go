// Package population implements the ALPS-layered population of
// spec.md §4.7: layers indexed youngest-to-oldest, per-layer random
// (re-)initialization, and the age-ceiling schemes that gate
// replacement and promotion. Grounded on
// orig:kernel/evolution_strategy_inl.h (the polynomial default and the
// commented-out linear/exponential/Fibonacci alternatives) and
// orig:src/kernel/alps.h (layer bookkeeping), generalized per
// SPEC_FULL.md's Open-Question resolution making the scheme selectable.
package population

import (
	"github.com/klauer/vita/internal/config"
	"github.com/klauer/vita/internal/rng"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/symbol"
)

// Coord addresses one individual: its layer and index within the
// layer.
type Coord struct {
	Layer int
	Index int
}

// Population is the full set of ALPS layers. Layer 0 is youngest.
type Population struct {
	Layers [][]*genome.Genome

	ss       *symbol.SymbolSet
	gcfg     genome.GenomeConfig
	ageGap   int
	scheme   config.AgeScheme
	layerCap int // per-layer target size
}

// New builds an initial population of a single layer (layer 0) of
// layerCap freshly randomized genomes.
func New(ss *symbol.SymbolSet, gcfg genome.GenomeConfig, layerCap, ageGap int, scheme config.AgeScheme, r *rng.Source) (*Population, error) {
	p := &Population{
		ss: ss, gcfg: gcfg,
		ageGap: ageGap, scheme: scheme, layerCap: layerCap,
	}
	if err := p.AddLayer(r); err != nil {
		return nil, err
	}
	return p, nil
}

// Individuals returns the genomes of layer l, indexable by
// Individuals(l)[index].
func (p *Population) Individuals(l int) []*genome.Genome { return p.Layers[l] }

// At returns the genome at c.
func (p *Population) At(c Coord) *genome.Genome { return p.Layers[c.Layer][c.Index] }

// Set replaces the genome at c.
func (p *Population) Set(c Coord, g *genome.Genome) { p.Layers[c.Layer][c.Index] = g }

// NumLayers returns the current layer count.
func (p *Population) NumLayers() int { return len(p.Layers) }

// IncAge ages every genome in the population by one generation.
func (p *Population) IncAge() {
	for _, layer := range p.Layers {
		for _, g := range layer {
			g.IncAge()
		}
	}
}

// AddLayer appends a new, older layer at the far end of Layers, seeded
// with layerCap freshly randomized genomes of age 0. Layer 0 always
// remains the fixed, youngest entry point where fresh genomes are
// periodically reintroduced via InitLayer; growth happens by adding a
// new oldest layer beyond it (orig:src/kernel/alps.h: add_layer() grows
// the layer vector, it never renumbers existing layers).
func (p *Population) AddLayer(r *rng.Source) error {
	fresh, err := p.randomLayer(r)
	if err != nil {
		return err
	}
	p.Layers = append(p.Layers, fresh)
	return nil
}

// InitLayer re-randomizes layer k in place, discarding its current
// contents.
func (p *Population) InitLayer(k int, r *rng.Source) error {
	fresh, err := p.randomLayer(r)
	if err != nil {
		return err
	}
	p.Layers[k] = fresh
	return nil
}

func (p *Population) randomLayer(r *rng.Source) ([]*genome.Genome, error) {
	layer := make([]*genome.Genome, p.layerCap)
	for i := range layer {
		g, err := genome.NewRandom(p.ss, p.gcfg, r)
		if err != nil {
			return nil, err
		}
		layer[i] = g
	}
	return layer, nil
}

// MaxAge returns the age ceiling for layer l: unbounded for the last
// (oldest) layer, otherwise per the configured scheme.
func (p *Population) MaxAge(l int) uint {
	if l+1 == len(p.Layers) {
		return ^uint(0)
	}
	return ageCeiling(p.scheme, l, p.ageGap)
}

// Aged reports whether the individual at c has strictly exceeded its
// layer's age ceiling.
func (p *Population) Aged(c Coord) bool {
	return uint64(p.At(c).Age()) > uint64(p.MaxAge(c.Layer))
}

func ageCeiling(scheme config.AgeScheme, l, ageGap int) uint {
	switch scheme {
	case config.AgeSchemeLinear:
		return uint((l + 1) * ageGap)
	case config.AgeSchemeExponential:
		return uint(pow2(l) * ageGap)
	case config.AgeSchemeFibonacci:
		return uint(fib(l+3) * ageGap)
	default: // polynomial, the shipped default
		switch l {
		case 0:
			return uint(ageGap)
		case 1:
			return uint(2 * ageGap)
		default:
			return uint(l * l * ageGap)
		}
	}
}

func pow2(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 2
	}
	return v
}

// fib returns the n-th Fibonacci number (fib(0)=0, fib(1)=1, ...).
func fib(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}
