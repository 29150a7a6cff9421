package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations remembers logged-out access tokens.
// Key format: revoked:<jti>, expiring together with the token itself.
type Revocations struct {
	client *redis.Client
}

// NewRevocations creates a Revocations store wrapping the given Redis client.
func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{client: client}
}

// Revoke marks jti as revoked until expiresAt. Tokens that are already
// expired need no entry.
func (r *Revocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *Revocations) key(jti string) string {
	return "revoked:" + jti
}
