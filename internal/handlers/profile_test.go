package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPut, "/api/auth/profile", token, map[string]any{"name": "Ayşe Yılmaz"})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", stored.Name)
	assert.Equal(t, "ayse@example.com", stored.Email)
}

func TestUpdateProfileRecomputesCalorieGoal(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"age":            30,
		"gender":         "male",
		"height":         180.0,
		"weight":         80.0,
		"activity_level": "moderate",
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Positive(t, stored.BMR)
	assert.Positive(t, stored.TDEE)
	assert.Greater(t, stored.DailyCalorieGoal, 2000)
}

func TestUpdateProfileExplicitGoalWins(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"age":                30,
		"gender":             "male",
		"height":             180.0,
		"weight":             80.0,
		"activity_level":     "moderate",
		"daily_calorie_goal": 1500,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1500, stored.DailyCalorieGoal)
	assert.Zero(t, stored.BMR)
}

func TestUpdateGoals(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPut, "/api/user/goals", token, map[string]any{
		"water_goal": 3000,
		"step_goal":  12000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3000, stored.WaterGoal)
	assert.Equal(t, 12000, stored.StepGoal)
}

func TestCalculateGoalsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/calculate-goals", token, map[string]any{
		"weight": 80.0,
		"height": 180.0,
		"age":    30,
		"gender": "male",
		"goals":  []string{"lose_weight"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, float64(1780), resp["bmr"])
	macros := resp["macros"].(map[string]any)
	assert.Equal(t, float64(40), macros["protein_percent"])

	// Missing required fields.
	w = env.do(t, http.MethodPost, "/api/auth/calculate-goals", token, map[string]any{
		"weight": 80.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeResp(t, w)["detail"])
}
