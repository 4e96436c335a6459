package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which event deliveries were already handled.
// Choreography handlers are wrapped with it because the bus may deliver an
// event more than once.
type IdempotencyStore interface {
	// MarkProcessed atomically records key with a TTL.
	// Returns false if the key was already recorded and is not expired.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if key has already been recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget removes key so the delivery can be handled again
	Forget(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

// IdempotencyConfig holds configuration for idempotent event handling
type IdempotencyConfig struct {
	// TTL is how long a processed delivery is remembered
	TTL time.Duration
	// Enabled turns duplicate detection on or off
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
