package ratelimit

import (
	"time"

	"github.com/joeycumines/go-catrate"

	"github.com/esrlabs/sindri/jobs"
)

// DefaultRates is used by NewGuard when rates is nil: 32 requests per
// second, 512 per minute, per client.
var DefaultRates = map[time.Duration]int{
	time.Second: 32,
	time.Minute: 512,
}

// Guard is an hsm.RateLimiter backed by a sliding-window limiter, one
// category per jobs.ClientID.
type Guard struct {
	limiter *catrate.Limiter
}

// NewGuard constructs a Guard. A nil rates uses DefaultRates; see
// catrate.NewLimiter for the validity requirements on rates (positive,
// monotonic across window sizes) — an invalid map panics.
func NewGuard(rates map[time.Duration]int) *Guard {
	if rates == nil {
		rates = DefaultRates
	}
	return &Guard{limiter: catrate.NewLimiter(rates)}
}

// Allow reports whether clientID may submit another request right now,
// recording the attempt if so.
func (g *Guard) Allow(clientID jobs.ClientID) bool {
	_, ok := g.limiter.Allow(clientID)
	return ok
}
