package socket

import "time"

const (
	defaultInitialBackoff = time.Second
	defaultMaxBackoff     = 30 * time.Second
	defaultMaxRetries     = 5
)

// Backoff is the reconnect policy of a provider: exponential delays from
// Initial, doubling up to Max, for at most MaxRetries consecutive failures.
// A successful connect resets the count. MaxRetries < 0 retries forever;
// 0 never retries.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// DefaultBackoff returns the policy used when none is configured.
func DefaultBackoff() Backoff {
	return Backoff{Initial: defaultInitialBackoff, Max: defaultMaxBackoff, MaxRetries: defaultMaxRetries}
}

// Delay returns the wait before retry number attempt (0-based).
func (b Backoff) Delay(attempt int) time.Duration {
	delay := b.Initial
	if delay <= 0 {
		delay = defaultInitialBackoff
	}
	ceiling := b.Max
	if ceiling <= 0 {
		ceiling = defaultMaxBackoff
	}
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= ceiling {
			return ceiling
		}
	}
	if delay > ceiling {
		return ceiling
	}
	return delay
}

// Exhausted reports whether attempt is past the retry budget.
func (b Backoff) Exhausted(attempt int) bool {
	return b.MaxRetries >= 0 && attempt >= b.MaxRetries
}
