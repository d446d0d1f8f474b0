// Package fitness implements the fixed-width multi-objective fitness
// vector: component-wise lexicographic and Pareto-dominance orderings,
// a sentinel "lowest possible" value, and the combine() used by
// constrained evaluation (penalty-then-score).
package fitness

import "math"

// Fitness is a fixed-width vector of real components. Higher is better
// in every component.
type Fitness []float64

// Sentinel returns the lowest-possible fitness of width n: every
// component is -Inf, so any real measurement beats it under both
// Less and Dominates.
func Sentinel(n int) Fitness {
	f := make(Fitness, n)
	for i := range f {
		f[i] = math.Inf(-1)
	}
	return f
}

// IsSentinel reports whether f equals the width-matched sentinel.
func (f Fitness) IsSentinel() bool {
	for _, c := range f {
		if !math.IsInf(c, -1) {
			return false
		}
	}
	return true
}

// Less reports whether f is strictly lexicographically worse than g:
// the first differing component of f is smaller than g's.
func (f Fitness) Less(g Fitness) bool {
	n := minLen(f, g)
	for i := 0; i < n; i++ {
		if f[i] != g[i] {
			return f[i] < g[i]
		}
	}
	return len(f) < len(g)
}

// Greater is the converse of Less.
func (f Fitness) Greater(g Fitness) bool { return g.Less(f) }

// Equal reports component-wise equality.
func (f Fitness) Equal(g Fitness) bool {
	if len(f) != len(g) {
		return false
	}
	for i := range f {
		if f[i] != g[i] {
			return false
		}
	}
	return true
}

// Dominates reports whether f Pareto-dominates g: every component of f
// is >= the matching component of g, and at least one is strictly
// greater.
func (f Fitness) Dominates(g Fitness) bool {
	n := minLen(f, g)
	strictlyBetter := false
	for i := 0; i < n; i++ {
		if f[i] < g[i] {
			return false
		}
		if f[i] > g[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// Add returns the component-wise sum of f and g (width = max of the two,
// missing components treated as 0).
func Add(f, g Fitness) Fitness {
	n := len(f)
	if len(g) > n {
		n = len(g)
	}
	out := make(Fitness, n)
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(f) {
			a = f[i]
		}
		if i < len(g) {
			b = g[i]
		}
		out[i] = a + b
	}
	return out
}

// Max returns the component-wise maximum of f and g.
func Max(f, g Fitness) Fitness {
	n := len(f)
	if len(g) > n {
		n = len(g)
	}
	out := make(Fitness, n)
	for i := 0; i < n; i++ {
		a, b := math.Inf(-1), math.Inf(-1)
		if i < len(f) {
			a = f[i]
		}
		if i < len(g) {
			b = g[i]
		}
		if a > b {
			out[i] = a
		} else {
			out[i] = b
		}
	}
	return out
}

// Scale returns f with every component multiplied by k.
func Scale(f Fitness, k float64) Fitness {
	out := make(Fitness, len(f))
	for i, c := range f {
		out[i] = c * k
	}
	return out
}

// Combine concatenates a penalty vector and a base-score vector into a
// single vector, penalty components first, so that lexicographic
// ordering makes any feasible solution (penalty == 0 in every
// component) strictly beat any infeasible one.
func Combine(penalty, base Fitness) Fitness {
	out := make(Fitness, 0, len(penalty)+len(base))
	out = append(out, penalty...)
	out = append(out, base...)
	return out
}

func minLen(f, g Fitness) int {
	if len(f) < len(g) {
		return len(f)
	}
	return len(g)
}

// Clone returns an independent copy of f.
func (f Fitness) Clone() Fitness {
	out := make(Fitness, len(f))
	copy(out, f)
	return out
}
