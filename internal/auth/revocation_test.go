package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevoker(t *testing.T) (*TokenRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenRevoker(client), mr
}

func TestRevokeAndCheck(t *testing.T) {
	revoker, _ := newTestRevoker(t)
	ctx := context.Background()

	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay unaffected.
	revoked, err = revoker.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	revoker, _ := newTestRevoker(t)
	ctx := context.Background()

	require.NoError(t, revoker.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))

	revoked, err := revoker.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationExpiresWithToken(t *testing.T) {
	revoker, mr := newTestRevoker(t)
	ctx := context.Background()

	require.NoError(t, revoker.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
