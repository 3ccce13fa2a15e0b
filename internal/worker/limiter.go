package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles calls to the judgment capability across all workers.
// Configured in requests per minute because that is how LLM quotas are
// published.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing rpm requests per minute with the
// given burst. Non-positive rpm disables throttling.
func NewLimiter(rpm, burst int) *Limiter {
	if rpm <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)}
}

// Wait blocks until a call is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
