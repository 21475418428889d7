package syncer

import "time"

const (
	// DefaultMaxRetries is the retry ceiling after which an item is evicted.
	DefaultMaxRetries = 5
	// DefaultBaseDelay is the backoff unit.
	DefaultBaseDelay = time.Second
	// DefaultRequestTimeout bounds each delivery attempt.
	DefaultRequestTimeout = 7 * time.Second

	maxBackoffShift = 30
)

// Backoff returns base * 2^retries.
func Backoff(base time.Duration, retries int) time.Duration {
	if retries <= 0 {
		return base
	}
	if retries > maxBackoffShift {
		retries = maxBackoffShift
	}
	return base << uint(retries)
}

// due reports whether an item with the given retry state may be attempted at now.
// Items never attempted are always due.
func due(base time.Duration, retries int, lastAttempt *time.Time, now time.Time) bool {
	if lastAttempt == nil {
		return true
	}
	return now.Sub(*lastAttempt) >= Backoff(base, retries)
}
