// Package demo assembles the built-in symbolic-regression problem the
// CLI drives the evolution/search/GA/DE families against: spec.md §1
// leaves the concrete primitive library and dataset out of scope, but
// a runnable CLI needs one worked example to exercise every wired
// component end to end. Grounded on pkg/symbol/primitives.go's
// arithmetic set and original_source/src/kernel/gp/src/problem.cc's
// shape (a problem owns its dataset rows and assembles a symbol set
// against them).
package demo

import (
	"fmt"
	"math"

	"github.com/klauer/vita/pkg/evaluator"
	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
	"github.com/klauer/vita/pkg/interpreter"
	"github.com/klauer/vita/pkg/symbol"
	"github.com/klauer/vita/pkg/value"
)

// Target is a named closed-form function the symbolic-regression demo
// tries to rediscover from sampled (x, f(x)) pairs.
type Target struct {
	Name string
	F    func(x float64) float64
}

// Targets lists the built-in demo functions, selectable via the CLI's
// --target flag.
var Targets = map[string]Target{
	"quadratic": {"quadratic", func(x float64) float64 { return x*x + x + 1 }},
	"cubic":     {"cubic", func(x float64) float64 { return x*x*x - 2*x }},
	"sine":      {"sine", func(x float64) float64 { return math.Sin(x) }},
}

// Problem bundles the symbol set, sample rows and an Evaluator for one
// symbolic-regression run.
type Problem struct {
	SymbolSet *symbol.SymbolSet
	Row       *symbol.RowContext
	Samples   [][2]float64 // (x, target(x)) pairs

	evalCalls int
}

// NewProblem builds a symbolic-regression problem over [lo, hi] with n
// evenly spaced samples of target.
func NewProblem(target Target, lo, hi float64, n int) *Problem {
	row := &symbol.RowContext{Values: make([]value.Value, 1)}

	ss := symbol.NewSymbolSet()
	ss.Insert(symbol.FADD(1))
	ss.Insert(symbol.FSUB(1))
	ss.Insert(symbol.FMUL(1))
	ss.Insert(symbol.FDIV(0.5))
	ss.Insert(symbol.Variable("X", 2, 0, row))
	ss.Insert(symbol.EphemeralConstant("K", 1, -5, 5))

	samples := make([][2]float64, n)
	if n == 1 {
		samples[0] = [2]float64{lo, target.F(lo)}
	} else {
		step := (hi - lo) / float64(n-1)
		for i := 0; i < n; i++ {
			x := lo + step*float64(i)
			samples[i] = [2]float64{x, target.F(x)}
		}
	}

	return &Problem{SymbolSet: ss, Row: row, Samples: samples}
}

// GenomeConfig returns the genome shape this problem's symbol set is
// built for.
func (p *Problem) GenomeConfig(codeLength, patchSize int) genome.GenomeConfig {
	return genome.GenomeConfig{CodeLength: codeLength, PatchSize: patchSize}
}

// Evaluator returns an evaluator.Evaluator computing the negative mean
// squared error over every sample. The value is unbounded below and
// the run and search commands use it as the fitness directly, with no
// squashing adapter in between.
func (p *Problem) Evaluator() evaluator.Evaluator {
	return p.EvaluatorForIndices(nil)
}

// EvaluatorForIndices is Evaluator restricted to the given fixed sample
// indices. A nil or empty indices slice evaluates over every sample.
func (p *Problem) EvaluatorForIndices(indices []int) evaluator.Evaluator {
	return p.EvaluatorForIndexFunc(func() []int { return indices })
}

// EvaluatorForIndexFunc is EvaluatorForIndices, but the index set is
// read fresh on every evaluation by calling indexFunc — needed when a
// search.ValidationStrategy's training subset is populated or reshuffled
// after the evaluator is constructed (Holdout.PreliminarySetup, DSS's
// per-shake resample).
func (p *Problem) EvaluatorForIndexFunc(indexFunc func() []int) evaluator.Evaluator {
	return evaluator.EvalFunc(func(g *genome.Genome) fitness.Fitness {
		p.evalCalls++
		indices := indexFunc()
		rows := p.Samples
		if len(indices) > 0 {
			rows = make([][2]float64, len(indices))
			for i, idx := range indices {
				rows[i] = p.Samples[idx]
			}
		}
		var sumSq float64
		for _, s := range rows {
			p.Row.Values[0] = value.OfDouble(s[0])
			interp := interpreter.New(g) // fresh per sample row: args may have been cached for a different row
			got := interp.Run()
			gv, ok := got.AsDouble()
			if !ok {
				sumSq += 1e6 // Void counts as maximally wrong, not a crash
				continue
			}
			d := gv - s[1]
			sumSq += d * d
		}
		mse := sumSq / float64(len(rows))
		return fitness.Fitness{-mse}
	})
}

// EvalCalls returns the number of times Evaluator's closure has run,
// for CLI diagnostics (e.g. reporting evaluation throughput).
func (p *Problem) EvalCalls() int { return p.evalCalls }

// Describe renders a genome as an infix expression string for the
// CLI's result printer, walking the active subtree from Best.
func Describe(g *genome.Genome) string {
	return describeLocus(g, g.Genes[g.Best].Symbol, g.Best)
}

func describeLocus(g *genome.Genome, _ *symbol.Symbol, locus int) string {
	gene := g.Genes[locus]
	if gene.Symbol.IsTerminal() {
		return gene.Symbol.Display(gene.Param, gene.HasParam)
	}
	args := make([]string, len(gene.Args))
	for i, a := range gene.Args {
		args[i] = describeLocus(g, g.Genes[a].Symbol, a)
	}
	switch len(args) {
	case 1:
		return fmt.Sprintf("%s(%s)", gene.Symbol.Name, args[0])
	case 2:
		return fmt.Sprintf("(%s %s %s)", args[0], gene.Symbol.Name, args[1])
	default:
		return gene.Symbol.Name
	}
}
