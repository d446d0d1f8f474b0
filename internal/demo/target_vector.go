package demo

import "github.com/klauer/vita/internal/rng"

// TargetVectorProblem is the classical-GA family's demo problem: a
// hidden integer vector the optimizer must rediscover by querying only
// a fitness function (higher is better), never the target itself —
// the same shape as the teacher's deck-strength objective
// (unknown-at-authoring-time scoring function over a candidate vector)
// generalized from card choices to integers.
type TargetVectorProblem struct {
	Target     []int
	ValueRange int
}

// NewTargetVectorProblem samples a random hidden target of the given
// length and value range.
func NewTargetVectorProblem(length, valueRange int, r *rng.Source) *TargetVectorProblem {
	target := make([]int, length)
	for i := range target {
		target[i] = r.IntN(valueRange)
	}
	return &TargetVectorProblem{Target: target, ValueRange: valueRange}
}

// Objective scores a candidate vector as the negative squared distance
// to the hidden target — 0 (the maximum) exactly at the target.
func (p *TargetVectorProblem) Objective(v []int) float64 {
	var sum float64
	for i, x := range v {
		d := float64(x - p.Target[i])
		sum += d * d
	}
	return -sum
}
