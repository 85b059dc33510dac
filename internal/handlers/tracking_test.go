package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name":     "Menemen",
		"calories": 320.0,
		"protein":  14.0,
		"carbs":    12.0,
		"fat":      24.0,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	mealID := decodeResp(t, w)["meal_id"].(string)

	// Unknown meal type falls back to snack.
	w = env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name": "Ayran", "calories": 90.0, "meal_type": "elevenses",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/food/daily-summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeResp(t, w)
	assert.Equal(t, float64(410), summary["total_calories"])
	assert.Equal(t, float64(2), summary["meal_count"])

	w = env.do(t, http.MethodDelete, "/api/food/meal/"+mealID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/food/meal/"+mealID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/food/daily-summary", token, nil)
	summary = decodeResp(t, w)
	assert.Equal(t, float64(90), summary["total_calories"])
}

func TestAddMealRequiresName(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"calories": 100.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeFoodWithoutKey(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/food/analyze", token, map[string]string{
		"image_base64": "aGVsbG8=",
	})
	// No API key configured in tests.
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = env.do(t, http.MethodPost, "/api/food/analyze", token, map[string]string{
		"image_base64": "!!! not base64 !!!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaterAddRemoveClamps(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/water/add", token, map[string]int{"amount_ml": 500})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(500), decodeResp(t, w)["total_ml"])

	w = env.do(t, http.MethodPost, "/api/water/add", token, map[string]int{"amount_ml": 250})
	assert.Equal(t, float64(750), decodeResp(t, w)["total_ml"])

	// Removing more than logged clamps at zero.
	w = env.do(t, http.MethodPost, "/api/water/remove", token, map[string]int{"amount_ml": 1000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeResp(t, w)["total_ml"])

	w = env.do(t, http.MethodGet, "/api/water/today", token, nil)
	today := decodeResp(t, w)
	assert.Equal(t, float64(0), today["total_ml"])
	assert.Equal(t, float64(2500), today["goal_ml"])
}

func TestWaterZeroAmountRejected(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/water/add", token, map[string]int{"amount_ml": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeeklyWaterReturnsSevenDays(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	env.do(t, http.MethodPost, "/api/water/add", token, map[string]int{"amount_ml": 300})

	w := env.do(t, http.MethodGet, "/api/water/weekly", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	days := decodeResp(t, w)["days"].([]any)
	assert.Len(t, days, 7)
	last := days[6].(map[string]any)
	assert.Equal(t, float64(300), last["total_ml"])
}

func TestStepsSyncOverwritesManualAdds(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/steps/manual", token, map[string]int{"steps": 1000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1000), decodeResp(t, w)["steps"])

	// Manual adds accumulate.
	w = env.do(t, http.MethodPost, "/api/steps/manual", token, map[string]int{"steps": 500})
	assert.Equal(t, float64(1500), decodeResp(t, w)["steps"])

	// Sync is authoritative and replaces the total.
	w = env.do(t, http.MethodPost, "/api/steps/sync", token, map[string]int{"steps": 8000})
	assert.Equal(t, float64(8000), decodeResp(t, w)["steps"])

	w = env.do(t, http.MethodGet, "/api/steps/today", token, nil)
	today := decodeResp(t, w)
	assert.Equal(t, float64(8000), today["steps"])
	assert.Equal(t, "sync", today["source"])
}

func TestStepsTodayEmpty(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodGet, "/api/steps/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	today := decodeResp(t, w)
	assert.Equal(t, float64(0), today["steps"])
	assert.Equal(t, float64(10000), today["goal"])
}

func TestVitaminToggle(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/vitamins", token, map[string]string{
		"name": "D Vitamini", "dosage": "1000 IU", "time_of_day": "morning",
	})
	require.Equal(t, http.StatusOK, w.Code)
	vitaminID := decodeResp(t, w)["vitamin_id"].(string)

	w = env.do(t, http.MethodPost, "/api/vitamins/"+vitaminID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResp(t, w)["is_taken"])

	w = env.do(t, http.MethodGet, "/api/vitamins/today", token, nil)
	today := decodeResp(t, w)
	assert.Equal(t, float64(1), today["taken"])
	assert.Equal(t, float64(1), today["total"])

	// Toggling again marks it not taken.
	w = env.do(t, http.MethodPost, "/api/vitamins/"+vitaminID+"/toggle", token, nil)
	assert.Equal(t, false, decodeResp(t, w)["is_taken"])

	w = env.do(t, http.MethodDelete, "/api/vitamins/"+vitaminID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/vitamins/"+vitaminID+"/toggle", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVitaminRequiresName(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/vitamins", token, map[string]string{"dosage": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeightLogUpsertsPerDay(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/weight/log", token, map[string]any{"weight_kg": 82.5})
	require.Equal(t, http.StatusOK, w.Code)

	// Second log the same day replaces the first.
	w = env.do(t, http.MethodPost, "/api/weight/log", token, map[string]any{"weight_kg": 82.1})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/weight/history", token, nil)
	history := decodeResp(t, w)["history"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, 82.1, history[0].(map[string]any)["weight_kg"])

	// Profile weight follows the latest log.
	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 82.1, stored.Weight)
}

func TestWeightValidation(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/weight/log", token, map[string]any{"weight_kg": -1.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddMealCreditsGoalCompletion(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	require.NoError(t, env.store.Users.Update(context.Background(), userID, map[string]any{
		"daily_calorie_goal": 600,
	}))

	// Below the goal: no streak credit.
	w := env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name": "Menemen", "calories": 320.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := decodeResp(t, w)["goal_completed"]
	assert.False(t, ok)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.GoalStreak)
	assert.Empty(t, stored.LastGoalCompletion)

	// This meal pushes the day total past the goal.
	w = env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name": "Mercimek Çorbası", "calories": 400.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResp(t, w)["goal_completed"])

	stored, err = env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.GoalStreak)
	assert.Equal(t, 1, stored.MaxGoalStreak)
	assert.NotEmpty(t, stored.LastGoalCompletion)
	xp := stored.XP

	// Further meals the same day do not credit the goal again.
	w = env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name": "Baklava", "calories": 500.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	_, ok = decodeResp(t, w)["goal_completed"]
	assert.False(t, ok)

	stored, err = env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.GoalStreak)
	assert.Equal(t, xp, stored.XP)
}

func TestAddMealWithoutGoalSkipsCredit(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/food/add-meal", token, map[string]any{
		"name": "Pilav", "calories": 900.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.GoalStreak)
	assert.Empty(t, stored.LastGoalCompletion)
}
