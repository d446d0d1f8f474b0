package evaluator

import (
	"time"

	"go.uber.org/ratelimit"

	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
)

// RateLimited wraps an inner Evaluator whose fitness function is
// expensive off-process work (a hardware-in-the-loop test rig, a
// metered external simulator, a billed API) and must not be called
// faster than a fixed rate. Grounded on the teacher's
// clashroyale.Client, which pairs a go.uber.org/ratelimit.Limiter with
// every outbound call (pkg/clashroyale/client.go) — here the limited
// resource is one genome evaluation instead of one HTTP request.
type RateLimited struct {
	Inner   Evaluator
	Limiter ratelimit.Limiter
}

// NewRateLimited returns a RateLimited evaluator admitting at most n
// evaluations per interval.
func NewRateLimited(inner Evaluator, n int, interval time.Duration) *RateLimited {
	return &RateLimited{Inner: inner, Limiter: ratelimit.New(n, ratelimit.Per(interval))}
}

func (r *RateLimited) Evaluate(g *genome.Genome) fitness.Fitness {
	r.Limiter.Take()
	return r.Inner.Evaluate(g)
}
