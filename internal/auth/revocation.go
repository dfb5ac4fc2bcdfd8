package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "auth:revoked:"

// TokenRevoker stores revoked token ids in Redis until the token would
// have expired anyway.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker builds a revoker over the given client.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke marks a token id as revoked until its expiry.
func (r *TokenRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (r *TokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
