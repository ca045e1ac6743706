package mailx

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled paces outbound sends to stay under a provider's send quota.
// Callers block until a token is available or ctx ends.
type Throttled struct {
	next    Sender
	limiter *rate.Limiter
}

// NewThrottled allows perSecond sends with the given burst. A non-positive
// rate disables pacing.
func NewThrottled(next Sender, perSecond float64, burst int) *Throttled {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (t *Throttled) Send(ctx context.Context, msg Message) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mailx: waiting for send slot: %w", err)
	}
	return t.next.Send(ctx, msg)
}
