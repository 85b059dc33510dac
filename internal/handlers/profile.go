package handlers

import (
	"math"
	"net/http"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

// UpdateProfile applies partial profile changes. When the onboarding fields
// are all present and no explicit calorie goal came along, the daily goal is
// recomputed from the Harris-Benedict BMR.
func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		Name             *string  `json:"name"`
		Age              *int     `json:"age"`
		Gender           *string  `json:"gender"`
		Height           *float64 `json:"height"`
		Weight           *float64 `json:"weight"`
		TargetWeight     *float64 `json:"target_weight"`
		ActivityLevel    *string  `json:"activity_level"`
		Goal             *string  `json:"goal"`
		Language         *string  `json:"language"`
		DailyCalorieGoal *int     `json:"daily_calorie_goal"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.TargetWeight != nil {
		fields["target_weight"] = *req.TargetWeight
	}
	if req.ActivityLevel != nil {
		fields["activity_level"] = *req.ActivityLevel
	}
	if req.Goal != nil {
		fields["goal"] = *req.Goal
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.DailyCalorieGoal != nil {
		fields["daily_calorie_goal"] = *req.DailyCalorieGoal
	}

	if req.DailyCalorieGoal == nil &&
		req.Height != nil && req.Weight != nil && req.Age != nil &&
		req.Gender != nil && req.ActivityLevel != nil {
		bmr := services.BMRHarrisBenedict(*req.Gender, *req.Weight, *req.Height, *req.Age)
		tdee := services.TDEEFor(bmr, *req.ActivityLevel)
		fields["bmr"] = math.Round(bmr)
		fields["tdee"] = math.Round(tdee)
		fields["daily_calorie_goal"] = int(math.Round(tdee))
	}

	if len(fields) > 0 {
		if err := a.Store.Users.Update(r.Context(), user.UserID, fields); err != nil {
			a.respondServiceError(w, err)
			return
		}
	}
	updated, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// UpdateGoals applies partial goal changes.
func (a *API) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		DailyCalorieGoal *int     `json:"daily_calorie_goal"`
		WaterGoal        *int     `json:"water_goal"`
		StepGoal         *int     `json:"step_goal"`
		TargetWeight     *float64 `json:"target_weight"`
		DailyProtein     *float64 `json:"daily_protein"`
		DailyCarbs       *float64 `json:"daily_carbs"`
		DailyFat         *float64 `json:"daily_fat"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	fields := map[string]any{}
	if req.DailyCalorieGoal != nil {
		fields["daily_calorie_goal"] = *req.DailyCalorieGoal
	}
	if req.WaterGoal != nil {
		fields["water_goal"] = *req.WaterGoal
	}
	if req.StepGoal != nil {
		fields["step_goal"] = *req.StepGoal
	}
	if req.TargetWeight != nil {
		fields["target_weight"] = *req.TargetWeight
	}
	if req.DailyProtein != nil {
		fields["daily_protein"] = *req.DailyProtein
	}
	if req.DailyCarbs != nil {
		fields["daily_carbs"] = *req.DailyCarbs
	}
	if req.DailyFat != nil {
		fields["daily_fat"] = *req.DailyFat
	}
	if len(fields) > 0 {
		if err := a.Store.Users.Update(r.Context(), user.UserID, fields); err != nil {
			a.respondServiceError(w, err)
			return
		}
	}
	updated, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// CalculateGoals runs the multi-goal calorie and macro calculator without
// persisting anything.
func (a *API) CalculateGoals(w http.ResponseWriter, r *http.Request) {
	var in services.GoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.ActivityLevel == "" {
		in.ActivityLevel = "moderate"
	}
	if !in.Valid() {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	respondJSON(w, http.StatusOK, services.CalculateGoals(in))
}
