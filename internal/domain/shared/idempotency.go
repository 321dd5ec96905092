package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the outcome of a request keyed by a client supplied
// idempotency key, so that retried requests can be answered without re-executing them.
type IdempotencyStore interface {
	// Lookup returns the value remembered for key, and whether it was found
	Lookup(ctx context.Context, key string) (string, bool, error)

	// Remember stores value for key with a TTL.
	// Returns false if the key was already present (the existing value is kept).
	Remember(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key is remembered. Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency keys are honoured
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
