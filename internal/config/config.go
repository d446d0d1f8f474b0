// Package config defines the tunables recognized by the evolution
// driver (spec.md §6) plus the classical GA/DE families' own knobs, and
// loads them from environment variables. The struct-of-tunables +
// Validate() + LoadFromEnv() shape is adapted from the teacher's
// GeneticConfig (pkg/deck/genetic/config.go).
package config

import (
	"os"
	"strconv"

	vitaerrors "github.com/klauer/vita/internal/errors"
)

// AgeScheme selects the ALPS age-ceiling formula (spec.md §4.7, §9 open
// question: the original keeps linear/exponential/Fibonacci as dead
// code behind the shipped polynomial scheme; here all four are
// selectable).
type AgeScheme string

const (
	AgeSchemePolynomial  AgeScheme = "polynomial"
	AgeSchemeLinear      AgeScheme = "linear"
	AgeSchemeExponential AgeScheme = "exponential"
	AgeSchemeFibonacci   AgeScheme = "fibonacci"
)

// Config holds every option from spec.md §6's configuration table, plus
// the expansion-only GA/DE knobs (§SPEC_FULL.md §1).
type Config struct {
	// --- spec.md §6 table ---
	Individuals           int     // target per-layer size
	Layers                int     // max number of ALPS layers
	CodeLength            int     // genome length L
	PatchFraction         float64 // fraction of L reserved for the terminals-only patch (default 0.2)
	PCross                float64
	PMutation             float64
	TournamentSize        int
	MateZone              int
	BroodSize             int
	AgeGap                int // 0 means undefined/auto-tune
	PSameLayer            float64
	Generations           int
	ValidationPercentage  int // 0..100
	Verbosity             int // 0..3

	AgeScheme AgeScheme

	// --- expansion: GA family (pkg/ga) ---
	GAPopulation int
	GAGenerations int

	// --- expansion: DE family (pkg/de) ---
	DEPopulation  int
	DEGenerations int
	DEF           float64 // differential weight
	DECR          float64 // crossover probability
}

// Default returns sensible defaults, mirroring the teacher's
// DefaultGeneticConfig but over spec.md's option table.
func Default() Config {
	return Config{
		Individuals:          100,
		Layers:               4,
		CodeLength:           64,
		PatchFraction:        0.2,
		PCross:               0.8,
		PMutation:            0.05,
		TournamentSize:       5,
		MateZone:             20,
		BroodSize:            0,
		AgeGap:               10,
		PSameLayer:           0.75,
		Generations:          200,
		ValidationPercentage: 0,
		Verbosity:            1,
		AgeScheme:            AgeSchemePolynomial,
		GAPopulation:         100,
		GAGenerations:        200,
		DEPopulation:         60,
		DEGenerations:        200,
		DEF:                  0.8,
		DECR:                 0.9,
	}
}

// Validate checks the configuration for use, matching the teacher's
// per-field bounds-checking style in GeneticConfig.Validate.
func (c *Config) Validate() error {
	switch {
	case c.Individuals <= 0:
		return vitaerrors.Config("individuals must be positive")
	case c.Layers <= 0:
		return vitaerrors.Config("layers must be positive")
	case c.CodeLength <= 0:
		return vitaerrors.Config("code_length must be positive")
	case c.PatchFraction < 0 || c.PatchFraction >= 1:
		return vitaerrors.Config("patch_fraction must be in [0, 1)")
	case c.PCross < 0 || c.PCross > 1:
		return vitaerrors.Config("p_cross must be between 0 and 1")
	case c.PMutation < 0 || c.PMutation > 1:
		return vitaerrors.Config("p_mutation must be between 0 and 1")
	case c.TournamentSize <= 0:
		return vitaerrors.Config("tournament_size must be positive")
	case c.TournamentSize > c.Individuals:
		return vitaerrors.Config("tournament_size must not exceed individuals")
	case c.BroodSize < 0:
		return vitaerrors.Config("brood_size must be non-negative")
	case c.PSameLayer < 0 || c.PSameLayer > 1:
		return vitaerrors.Config("p_same_layer must be between 0 and 1")
	case c.Generations <= 0:
		return vitaerrors.Config("generations must be positive")
	case c.ValidationPercentage < 0 || c.ValidationPercentage > 100:
		return vitaerrors.Config("validation_percentage must be between 0 and 100")
	case c.Verbosity < 0 || c.Verbosity > 3:
		return vitaerrors.Config("verbosity must be between 0 and 3")
	}
	switch c.AgeScheme {
	case AgeSchemePolynomial, AgeSchemeLinear, AgeSchemeExponential, AgeSchemeFibonacci:
	default:
		return vitaerrors.Config("unknown age_scheme: " + string(c.AgeScheme))
	}
	return nil
}

// PatchSize returns the number of terminal-only loci at the tail of the
// genome (spec.md §4.3).
func (c *Config) PatchSize() int {
	n := int(float64(c.CodeLength) * c.PatchFraction)
	if n < 1 {
		n = 1
	}
	if n >= c.CodeLength {
		n = c.CodeLength - 1
	}
	return n
}

type envParser struct{}

func (envParser) int(key string, setter func(int)) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			setter(i)
		}
	}
}

func (envParser) float(key string, setter func(float64)) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			setter(f)
		}
	}
}

func (envParser) str(key string, setter func(string)) {
	if v := os.Getenv(key); v != "" {
		setter(v)
	}
}

// LoadFromEnv starts from Default() and overrides fields from VITA_*
// environment variables, matching the teacher's LoadFromEnv pattern
// (pkg/deck/genetic/config.go) generalized to this package's fields.
func LoadFromEnv() Config {
	c := Default()
	p := envParser{}

	p.int("VITA_INDIVIDUALS", func(v int) { c.Individuals = v })
	p.int("VITA_LAYERS", func(v int) { c.Layers = v })
	p.int("VITA_CODE_LENGTH", func(v int) { c.CodeLength = v })
	p.float("VITA_PATCH_FRACTION", func(v float64) { c.PatchFraction = v })
	p.float("VITA_P_CROSS", func(v float64) { c.PCross = v })
	p.float("VITA_P_MUTATION", func(v float64) { c.PMutation = v })
	p.int("VITA_TOURNAMENT_SIZE", func(v int) { c.TournamentSize = v })
	p.int("VITA_MATE_ZONE", func(v int) { c.MateZone = v })
	p.int("VITA_BROOD_SIZE", func(v int) { c.BroodSize = v })
	p.int("VITA_AGE_GAP", func(v int) { c.AgeGap = v })
	p.float("VITA_P_SAME_LAYER", func(v float64) { c.PSameLayer = v })
	p.int("VITA_GENERATIONS", func(v int) { c.Generations = v })
	p.int("VITA_VALIDATION_PERCENTAGE", func(v int) { c.ValidationPercentage = v })
	p.int("VITA_VERBOSITY", func(v int) { c.Verbosity = v })
	p.str("VITA_AGE_SCHEME", func(v string) { c.AgeScheme = AgeScheme(v) })
	p.int("VITA_GA_POPULATION", func(v int) { c.GAPopulation = v })
	p.int("VITA_GA_GENERATIONS", func(v int) { c.GAGenerations = v })
	p.int("VITA_DE_POPULATION", func(v int) { c.DEPopulation = v })
	p.int("VITA_DE_GENERATIONS", func(v int) { c.DEGenerations = v })
	p.float("VITA_DE_F", func(v float64) { c.DEF = v })
	p.float("VITA_DE_CR", func(v float64) { c.DECR = v })

	return c
}
