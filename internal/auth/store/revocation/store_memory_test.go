package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTRL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trl := NewInMemoryTRL(WithClock(func() time.Time { return now }))

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour))

	revoked, err := trl.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = trl.IsTokenRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(time.Hour)
	revoked, err = trl.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lives only until the token expiry")

	require.NoError(t, trl.RevokeToken(ctx, "jti-3", time.Minute))
	assert.NotContains(t, trl.revoked, "jti-1", "expired entries are swept on write")

	require.NoError(t, trl.RevokeToken(ctx, "", time.Hour))
	require.NoError(t, trl.RevokeToken(ctx, "jti-4", 0))
	assert.NotContains(t, trl.revoked, "jti-4")
}
