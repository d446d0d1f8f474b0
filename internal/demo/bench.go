package demo

import "math"

// Benchmark is a named, fixed-dimension real-valued minimization
// function for the differential-evolution family's demo command.
type Benchmark struct {
	Name     string
	Min, Max float64
	F        func(v []float64) float64
}

// Benchmarks lists the built-in DE demo functions, selectable via the
// CLI's --function flag.
var Benchmarks = map[string]Benchmark{
	"sphere":     {"sphere", -5.12, 5.12, Sphere},
	"rastrigin":  {"rastrigin", -5.12, 5.12, Rastrigin},
	"rosenbrock": {"rosenbrock", -2.048, 2.048, Rosenbrock},
}

// Sphere is the unimodal sum-of-squares benchmark, minimum 0 at the
// origin.
func Sphere(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// Rastrigin is a highly multimodal benchmark, minimum 0 at the origin.
func Rastrigin(v []float64) float64 {
	sum := 10 * float64(len(v))
	for _, x := range v {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return sum
}

// Rosenbrock is the classic curved-valley benchmark, minimum 0 at the
// all-ones vector.
func Rosenbrock(v []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(v); i++ {
		a := v[i+1] - v[i]*v[i]
		b := 1 - v[i]
		sum += 100*a*a + b*b
	}
	return sum
}
