package healthcheck

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// MinInterval is the smallest allowed pause between attempts
const MinInterval = 100 * time.Millisecond

// DefaultInterval is the pause between attempts unless configured otherwise
const DefaultInterval = time.Second

// errNotHealthy drives the retry loop; it never escapes Poll
var errNotHealthy = errors.New("health check did not return HTTP 200")

// CheckFunc performs one health check attempt
type CheckFunc func(ctx context.Context, url string) Result

// Poller repeats health check attempts until one succeeds or a deadline is
// exhausted
type Poller struct {
	// Check performs a single attempt
	Check CheckFunc
	// Interval is the pause between attempts, floored at MinInterval
	Interval time.Duration
	// Now returns the current time; defaults to time.Now
	Now func() time.Time
	// Timer waits out the pause between attempts; nil uses a real timer
	Timer backoff.Timer
}

// NewPoller creates a Poller running attempts through checker
func NewPoller(checker *Checker, interval time.Duration) *Poller {
	return &Poller{
		Check:    checker.Check,
		Interval: interval,
	}
}

// Poll checks url and, when wait is positive, keeps checking until the URL
// answers HTTP 200 or now+wait passes.
//
// An empty url short-circuits to the skipped result without any request. A
// wait of zero or less performs exactly one attempt and returns its result
// verbatim. Otherwise at least one attempt runs, no pause extends past the
// deadline, and when the deadline is exhausted the most recent attempt's
// result is returned unchanged.
func (p *Poller) Poll(ctx context.Context, url string, wait time.Duration) Result {
	if url == "" {
		return SkippedResult()
	}

	if wait <= 0 {
		return p.Check(ctx, url)
	}

	now := p.Now
	if now == nil {
		now = time.Now
	}

	interval := p.Interval
	if interval < MinInterval {
		interval = MinInterval
	}

	deadline := now().Add(wait)

	var last Result
	operation := func() error {
		last = p.Check(ctx, url)
		if last.OK() {
			return nil
		}
		return errNotHealthy
	}

	notify := func(_ error, next time.Duration) {
		log.Debug().
			Str("url", url).
			Str("http_status", last.HTTPStatus).
			Dur("retry_in", next).
			Msg("health check not passing yet, retrying")
	}

	b := backoff.WithContext(&deadlineBackOff{
		interval: interval,
		deadline: deadline,
		now:      now,
	}, ctx)

	// The returned error is deliberately ignored: on exhaustion the contract
	// is to hand back the last attempt's result as-is.
	_ = backoff.RetryNotifyWithTimer(operation, b, notify, p.Timer)

	return last
}

// deadlineBackOff pauses a fixed interval between attempts, capped so no
// pause extends past the deadline, and stops once the deadline is reached
type deadlineBackOff struct {
	interval time.Duration
	deadline time.Time
	now      func() time.Time
}

func (b *deadlineBackOff) Reset() {}

func (b *deadlineBackOff) NextBackOff() time.Duration {
	remaining := b.deadline.Sub(b.now())
	if remaining <= 0 {
		return backoff.Stop
	}
	if remaining < b.interval {
		return remaining
	}
	return b.interval
}
