package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivatePremium(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/premium/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, true, resp["is_premium"])
	assert.NotEmpty(t, resp["premium_expires_at"])

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, stored.IsPremium)
}

func TestPremiumStatusDowngradesLapsedSubscription(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	expired := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	require.NoError(t, env.store.Users.Update(context.Background(), userID, map[string]any{
		"is_premium":         true,
		"premium_expires_at": expired,
	}))

	w := env.do(t, http.MethodGet, "/api/premium/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeResp(t, w)["is_premium"])

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, stored.IsPremium)
}

func TestWatchAdsEveryThirdGrantsPremium(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/ads/watch", token, map[string]int{"ad_count": 1})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, float64(1), resp["ads_watched"])
	assert.Equal(t, float64(2), resp["ads_until_premium"])
	assert.Equal(t, false, resp["is_premium"])

	env.do(t, http.MethodPost, "/api/ads/watch", token, map[string]int{"ad_count": 1})
	w = env.do(t, http.MethodPost, "/api/ads/watch", token, map[string]int{"ad_count": 1})
	resp = decodeResp(t, w)
	assert.Equal(t, true, resp["is_premium"])
	assert.Equal(t, float64(0), resp["ads_watched"])
}

func TestWatchAdsRemainderIsBanked(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/ads/watch", token, map[string]int{"ad_count": 7})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, true, resp["is_premium"])
	assert.Equal(t, float64(1), resp["ads_watched"])

	// 7 ads = 2 premium days + 1 banked.
	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AdsWatched)
	expires, err := time.Parse(time.RFC3339, stored.PremiumExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(48*time.Hour), expires, time.Minute)
}

func TestWatchAdsDefaultsToOne(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/ads/watch", token, map[string]int{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeResp(t, w)["ads_watched"])
}
