package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamificationStatusDefaults(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodGet, "/api/gamification/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decodeResp(t, w)
	assert.Equal(t, float64(1), status["level"])
	assert.Equal(t, float64(0), status["xp"])
	assert.Equal(t, float64(250), status["xp_to_next_level"])
	assert.Equal(t, "bronze", status["league"])
	assert.Equal(t, []any{}, status["achievements"])
}

func TestDailyCheckinPersists(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/gamification/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, false, resp["already_checked_in"])
	assert.Equal(t, float64(1), resp["daily_streak"])
	assert.Equal(t, float64(10), resp["xp_gained"])

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.DailyStreak)
	assert.Equal(t, 10, stored.XP)
	assert.Equal(t, 10, stored.TotalPoints)
	assert.NotEmpty(t, stored.LastLogin)

	// Second check-in the same day changes nothing.
	w = env.do(t, http.MethodPost, "/api/gamification/checkin", token, nil)
	resp = decodeResp(t, w)
	assert.Equal(t, true, resp["already_checked_in"])

	stored, err = env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.XP)
}

func TestCheckinAchievementPersisted(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	require.NoError(t, env.store.Users.Update(context.Background(), userID, map[string]any{
		"daily_streak": 6,
		"last_login":   "2020-01-01",
	}))

	w := env.do(t, http.MethodPost, "/api/gamification/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	// The 6-day streak broke; back to 1, no achievement.
	assert.Equal(t, true, resp["streak_broken"])
	assert.Equal(t, float64(1), resp["daily_streak"])
	assert.Empty(t, resp["new_achievements"])
}
