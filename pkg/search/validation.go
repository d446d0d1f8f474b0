package search

import "github.com/klauer/vita/internal/rng"

// ValidationStrategy switches a driver between training and validation
// data at run and generation boundaries (spec.md §4.10). PreliminarySetup
// runs once at the start of a repetition; Shake runs at the generation
// boundaries the driver's evolution.ShakeFunc fires at (every 4th
// generation, per spec.md §4.9 step 2a).
type ValidationStrategy interface {
	PreliminarySetup(r *rng.Source)
	Shake(generation int, r *rng.Source) bool
}

// AsIs implements spec.md §4.10's "no split" strategy: the training set
// is used throughout, Shake never reshuffles anything.
type AsIs struct{}

func (AsIs) PreliminarySetup(*rng.Source) {}
func (AsIs) Shake(int, *rng.Source) bool  { return false }

// Holdout implements spec.md §4.10's holdout validation: at run start,
// partition example indices randomly into training ((100-Percentage)%)
// and validation (Percentage%), stable across the whole run. Grounded
// on original_source/src/kernel/src/holdout_validation.h: one-time
// preliminary_setup, shake always returns false (no reshuffling within
// a run).
type Holdout struct {
	Percentage int // 0..100, the validation set's share
	N          int // total number of examples

	Training   []int
	Validation []int
}

func (h *Holdout) PreliminarySetup(r *rng.Source) {
	perm := make([]int, h.N)
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	cut := h.N * h.Percentage / 100
	h.Validation = append([]int(nil), perm[:cut]...)
	h.Training = append([]int(nil), perm[cut:]...)
}

func (h *Holdout) Shake(int, *rng.Source) bool { return false }

// DSS implements spec.md §4.10's Dynamic Subset Selection: each example
// carries an (age, difficulty) counter. At every shake, a new training
// subset is drawn biased toward high age + k*difficulty; difficulty is
// incremented per misclassification by the running best, age is reset
// to 0 for every selected example and incremented for every example
// left out. Grounded on
// original_source/src/kernel/src/dss.h (age/difficulty fields, the
// average_age_difficulty/shake_impl split) — the .cc body is not in
// the retrieval pack, so the resampling weight itself follows the
// header's documented bias ("firstly difficult cases, secondly cases
// not looked at for several generations") rather than a transcribed
// implementation.
type DSS struct {
	N          int
	SubsetSize int
	K          float64 // weight of difficulty relative to age

	age        []int
	difficulty []int
	Training   []int
}

func (d *DSS) PreliminarySetup(r *rng.Source) {
	d.age = make([]int, d.N)
	d.difficulty = make([]int, d.N)
	d.resample(r)
}

// Shake resamples the training subset, biased toward high
// age + K*difficulty, per spec.md §4.10. It always reports a change
// (true) since a reshuffle happens on every call, matching the
// driver's own every-4th-generation cadence rather than an internal
// gap counter.
func (d *DSS) Shake(generation int, r *rng.Source) bool {
	d.resample(r)
	return true
}

func (d *DSS) resample(r *rng.Source) {
	weights := make([]float64, d.N)
	var total float64
	for i := 0; i < d.N; i++ {
		w := float64(d.age[i]) + d.K*float64(d.difficulty[i]) + 1
		weights[i] = w
		total += w
	}

	size := d.SubsetSize
	if size > d.N {
		size = d.N
	}
	chosen := make(map[int]struct{}, size)
	for len(chosen) < size {
		target := r.Float64() * total
		var acc float64
		pick := d.N - 1
		for i, w := range weights {
			acc += w
			if target < acc {
				pick = i
				break
			}
		}
		chosen[pick] = struct{}{}
	}

	d.Training = d.Training[:0]
	for i := 0; i < d.N; i++ {
		if _, ok := chosen[i]; ok {
			d.Training = append(d.Training, i)
			d.age[i] = 0
		} else {
			d.age[i]++
		}
	}
}

// Misclassified marks example i as misclassified by the running best,
// incrementing its difficulty counter (spec.md §4.10: "difficulty is
// incremented per misclassification by the running best").
func (d *DSS) Misclassified(i int) {
	d.difficulty[i]++
}
