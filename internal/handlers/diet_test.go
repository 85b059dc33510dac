package handlers_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

func seedDiet(t *testing.T, env *testEnv, userID string, planDays int) *models.PersonalDiet {
	t.Helper()
	diet := &models.PersonalDiet{
		DietID:        "diet_test123",
		UserID:        userID,
		Title:         "Akdeniz Diyeti",
		DurationDays:  planDays,
		DailyCalories: 1800,
		CreatedAt:     time.Now().UTC(),
	}
	for i := 1; i <= planDays; i++ {
		diet.Days = append(diet.Days, models.DietDay{
			Day:           i,
			Title:         fmt.Sprintf("Gün %d", i),
			TotalCalories: 1800,
			Meals: []models.DietMeal{
				{MealType: "breakfast", Name: "Menemen", Calories: 400},
				{MealType: "lunch", Name: "Izgara Tavuk", Calories: 700},
				{MealType: "dinner", Name: "Mercimek Çorbası", Calories: 700},
			},
		})
	}
	require.NoError(t, env.store.Diets.InsertPersonal(context.Background(), diet))
	return diet
}

func TestGenerateWeeklyRequiresPremium(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/diet/generate-weekly", token, map[string]any{
		"name": "Test", "target_calories": 1800,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Premium subscription required", decodeResp(t, w)["detail"])
}

func TestGenerateWithoutKeyFails(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/diet/generate-personal", token, map[string]any{
		"name": "Test", "target_calories": 1800,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStartDietAndSequentialUnlock(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	seedDiet(t, env, userID, 7)

	w := env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_test123"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	program := decodeResp(t, w)["program"].(map[string]any)
	assert.Equal(t, float64(1), program["current_day"])
	assert.Equal(t, float64(30), program["duration_days"])

	// Day 1 is unlocked.
	w = env.do(t, http.MethodGet, "/api/diet/program/day/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	day := decodeResp(t, w)
	assert.Equal(t, "Akdeniz Diyeti", day["program_name"])

	// Day 2 is locked until day 1 is completed.
	w = env.do(t, http.MethodGet, "/api/diet/program/day/2", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/diet/program/day/1/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeResp(t, w)["current_day"])

	w = env.do(t, http.MethodGet, "/api/diet/program/day/2", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Out-of-range day numbers are rejected outright.
	w = env.do(t, http.MethodGet, "/api/diet/program/day/31", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, http.MethodGet, "/api/diet/program/day/0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramDaysCycleShortPlans(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	seedDiet(t, env, userID, 7)

	w := env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_test123"})
	require.Equal(t, http.StatusOK, w.Code)

	// Complete the first seven days; day 8 should serve plan day 1 again.
	for day := 1; day <= 7; day++ {
		w = env.do(t, http.MethodPost, fmt.Sprintf("/api/diet/program/day/%d/complete", day), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/diet/program/day/8", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	day := decodeResp(t, w)["day"].(map[string]any)
	assert.Equal(t, "Gün 1", day["title"])
}

func TestCompleteDayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	seedDiet(t, env, userID, 7)

	env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_test123"})
	env.do(t, http.MethodPost, "/api/diet/program/day/1/complete", token, nil)

	// Completing day 1 again does not advance past day 2.
	w := env.do(t, http.MethodPost, "/api/diet/program/day/1/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResp(t, w)
	assert.Equal(t, float64(2), resp["current_day"])
	assert.Equal(t, float64(1), resp["completed"])
}

func TestStartDietUnknownPlan(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Diet not found", decodeResp(t, w)["detail"])
}

func TestStartDietReplacesRunningProgram(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	seedDiet(t, env, userID, 7)

	env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_test123"})
	env.do(t, http.MethodPost, "/api/diet/program/day/1/complete", token, nil)

	// Restarting resets progress.
	w := env.do(t, http.MethodPost, "/api/diet/start", token, map[string]string{"diet_id": "diet_test123"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/diet/active", token, nil)
	program := decodeResp(t, w)["program"].(map[string]any)
	assert.Equal(t, float64(1), program["current_day"])
}

func TestActiveDietWhenNoneReturnsNull(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ayse@example.com")

	w := env.do(t, http.MethodGet, "/api/diet/active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeResp(t, w)["program"])
}

func TestMyDietsListsOwnPlans(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ayse@example.com")
	seedDiet(t, env, userID, 7)

	w := env.do(t, http.MethodGet, "/api/diet/my-diets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	diets := decodeResp(t, w)["diets"].([]any)
	require.Len(t, diets, 1)
	assert.Equal(t, "Akdeniz Diyeti", diets[0].(map[string]any)["title"])
}

// attachContentDB backs the test API's content service with an in-memory
// database holding two diet templates, the second premium-only.
func attachContentDB(t *testing.T, env *testEnv) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE diet_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		title_tr TEXT NOT NULL,
		title_en TEXT NOT NULL,
		description_tr TEXT NOT NULL DEFAULT '',
		description_en TEXT NOT NULL DEFAULT '',
		daily_calories REAL NOT NULL,
		duration_days INTEGER NOT NULL DEFAULT 7,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO diet_templates
		(slug, title_tr, title_en, daily_calories, duration_days, is_premium) VALUES
		('akdeniz', 'Akdeniz Diyeti', 'Mediterranean Diet', 1800, 7, 0),
		('ketojenik', 'Ketojenik Diyet', 'Ketogenic Diet', 1600, 14, 1)`)
	require.NoError(t, err)

	env.api.Content = services.NewContentService(db)
}

func TestDietTemplateDetailPremiumGate(t *testing.T) {
	env := newTestEnv(t)
	attachContentDB(t, env)
	token, _ := env.register(t, "ayse@example.com")

	// Free template opens for everyone.
	w := env.do(t, http.MethodGet, "/api/diets/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, "Akdeniz Diyeti", decodeResp(t, w)["title"])

	// Premium template is locked.
	w = env.do(t, http.MethodGet, "/api/diets/2", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Premium subscription required", decodeResp(t, w)["detail"])

	// Subscribing unlocks it.
	w = env.do(t, http.MethodPost, "/api/premium/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/diets/2?lang=en", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ketogenic Diet", decodeResp(t, w)["title"])

	// Unknown and malformed ids.
	w = env.do(t, http.MethodGet, "/api/diets/99", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, "/api/diets/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
