package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growmate/internal/cache"
	"growmate/internal/model"
)

var testUser = &model.User{ID: "user-1", Email: "gardener@example.com", Role: model.RoleAdmin}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.Actor().IsAdmin())
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour, 24*time.Hour)
		token, err := other.GenerateAccessToken(testUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService("secret", time.Minute, time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.GenerateAccessToken(testUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		assert.Error(t, err)
	})
}

func TestJWTService_RefreshTokenID(t *testing.T) {
	svc := NewJWTService("secret", 0, 0)
	assert.Equal(t, DefaultRefreshTokenExpiry, svc.RefreshExpiry())

	tokenID, token, err := svc.GenerateRefreshToken(testUser)
	require.NoError(t, err)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestTokenStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	store := NewTokenStore(client)
	ctx := context.Background()

	t.Run("refresh token lifecycle", func(t *testing.T) {
		require.NoError(t, store.StoreRefreshToken(ctx, "rt-1", "user-1", time.Hour))

		userID, err := store.GetRefreshToken(ctx, "rt-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)

		require.NoError(t, store.DeleteRefreshToken(ctx, "rt-1"))
		_, err = store.GetRefreshToken(ctx, "rt-1")
		assert.Error(t, err)
	})

	t.Run("refresh token expires", func(t *testing.T) {
		require.NoError(t, store.StoreRefreshToken(ctx, "rt-2", "user-1", time.Minute))
		mr.FastForward(2 * time.Minute)

		_, err := store.GetRefreshToken(ctx, "rt-2")
		assert.Error(t, err)
	})

	t.Run("access token blacklist", func(t *testing.T) {
		revoked, err := store.IsAccessTokenBlacklisted(ctx, "at-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.BlacklistAccessToken(ctx, "at-1", time.Hour))
		revoked, err = store.IsAccessTokenBlacklisted(ctx, "at-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}
