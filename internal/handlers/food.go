package handlers

import (
	"context"
	"encoding/base64"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

// FoodDatabase lists the static food table in the requested language.
func (a *API) FoodDatabase(w http.ResponseWriter, r *http.Request) {
	foods, err := a.Content.Foods(r.Context(), r.URL.Query().Get("lang"), r.URL.Query().Get("category"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if foods == nil {
		foods = []services.Food{}
	}
	respondJSON(w, http.StatusOK, foods)
}

// AddMeal logs one meal for today.
func (a *API) AddMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		Name     string  `json:"name"`
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
		Quantity float64 `json:"quantity"`
		MealType string  `json:"meal_type"`
		PhotoURL string  `json:"photo_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Meal name is required")
		return
	}
	if req.MealType == "" || !models.MealTypes[req.MealType] {
		req.MealType = "snack"
	}

	meal := &models.Meal{
		MealID:    services.NewMealID(),
		UserID:    user.UserID,
		Date:      models.Today(),
		MealType:  req.MealType,
		Name:      req.Name,
		Calories:  req.Calories,
		Protein:   req.Protein,
		Carbs:     req.Carbs,
		Fat:       req.Fat,
		Quantity:  req.Quantity,
		PhotoURL:  req.PhotoURL,
		CreatedAt: models.NowUTC(),
	}
	if err := a.Store.Meals.Insert(r.Context(), meal); err != nil {
		a.respondServiceError(w, err)
		return
	}
	resp := map[string]any{"message": "Meal added", "meal_id": meal.MealID}
	if completed, err := a.creditGoalCompletion(r.Context(), user); err == nil && completed {
		resp["goal_completed"] = true
	}
	respondJSON(w, http.StatusOK, resp)
}

// creditGoalCompletion advances the goal streak once the day's logged
// calories reach the user's target. It is a best-effort side effect of
// logging a meal, so the meal itself is never rolled back on failure.
func (a *API) creditGoalCompletion(ctx context.Context, user *models.User) (bool, error) {
	if user.DailyCalorieGoal <= 0 {
		return false, nil
	}
	now := models.NowUTC()
	if last, ok := models.ParseTimestamp(user.LastGoalCompletion); ok && models.DayDelta(last, now) == 0 {
		return false, nil
	}
	meals, err := a.Store.Meals.ListByDay(ctx, user.UserID, models.Today())
	if err != nil {
		return false, err
	}
	var total float64
	for _, m := range meals {
		total += m.Calories
	}
	if total < float64(user.DailyCalorieGoal) {
		return false, nil
	}
	res := services.CompleteGoal(user, now)
	if res.AlreadyCompleted {
		return false, nil
	}
	fields := map[string]any{
		"last_goal_completion": user.LastGoalCompletion,
		"goal_streak":          user.GoalStreak,
		"max_goal_streak":      user.MaxGoalStreak,
		"xp":                   user.XP,
		"level":                user.Level,
		"total_points":         user.TotalPoints,
		"league":               user.League,
		"achievements":         user.Achievements,
	}
	return true, a.Store.Users.Update(ctx, user.UserID, fields)
}

// TodayMeals lists today's meals.
func (a *API) TodayMeals(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	meals, err := a.Store.Meals.ListByDay(r.Context(), user.UserID, models.Today())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if meals == nil {
		meals = []*models.Meal{}
	}
	respondJSON(w, http.StatusOK, meals)
}

// DailySummary aggregates today's meals.
func (a *API) DailySummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	meals, err := a.Store.Meals.ListByDay(r.Context(), user.UserID, models.Today())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	var calories, protein, carbs, fat float64
	for _, m := range meals {
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fat += m.Fat
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"total_calories": calories,
		"total_protein":  math.Round(protein*10) / 10,
		"total_carbs":    math.Round(carbs*10) / 10,
		"total_fat":      math.Round(fat*10) / 10,
		"meal_count":     len(meals),
		"date":           models.Today(),
	})
}

// DeleteMeal removes one meal by id.
func (a *API) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	mealID := chi.URLParam(r, "mealID")
	if err := a.Store.Meals.Delete(r.Context(), user.UserID, mealID); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Meal deleted", "meal_id": mealID})
}

// AnalyzeFood runs the vision model over a base64 food photo.
func (a *API) AnalyzeFood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		Locale      string `json:"locale"`
		Context     string `json:"context"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ImageBase64 == "" {
		respondError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}
	raw := req.ImageBase64
	if strings.HasPrefix(raw, "data:") {
		if _, rest, ok := strings.Cut(raw, ","); ok {
			raw = rest
		}
	}
	imageData, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "image_base64 is not valid base64")
		return
	}

	analysis, err := a.Vision.Analyze(r.Context(), imageData, req.Locale, req.Context)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// UploadPhoto stores a meal photo and returns its public URL.
func (a *API) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if a.Cloudinary == nil {
		respondError(w, http.StatusInternalServerError, "Photo storage not configured")
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	_, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	url, err := a.Cloudinary.UploadFileFromHeader(r.Context(), header, "meal-photos")
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"photo_url": url})
}
