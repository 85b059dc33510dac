package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

const programDurationDays = 30

// GenerateWeeklyDiet builds a detailed 7-day plan. Premium only.
func (a *API) GenerateWeeklyDiet(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if !user.PremiumActive(models.NowUTC()) {
		respondError(w, http.StatusForbidden, "Premium subscription required")
		return
	}
	var req services.DietRequest
	if !decodeBody(w, r, &req) {
		return
	}
	diet, err := a.DietGen.GenerateWeekly(r.Context(), req)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	diet.UserID = user.UserID
	if err := a.Store.Diets.InsertPersonal(r.Context(), diet); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Weekly diet plan created", "diet": diet})
}

// GeneratePersonalDiet builds a plan of the requested length, 30 days by
// default.
func (a *API) GeneratePersonalDiet(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		services.DietRequest
		DurationDays int `json:"duration_days"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DurationDays <= 0 {
		req.DurationDays = programDurationDays
	}
	diet, err := a.DietGen.GeneratePersonal(r.Context(), req.DietRequest, req.DurationDays)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	diet.UserID = user.UserID
	if err := a.Store.Diets.InsertPersonal(r.Context(), diet); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Personal diet plan created", "diet": diet})
}

// MyDiets lists the user's generated plans.
func (a *API) MyDiets(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	diets, err := a.Store.Diets.ListPersonalByUser(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if diets == nil {
		diets = []*models.PersonalDiet{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"diets": diets})
}

// StartDiet begins a 30-day program from a stored plan. Shorter plans cycle;
// starting a new program replaces any running one.
func (a *API) StartDiet(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		DietID string `json:"diet_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	diet, err := a.Store.Diets.GetPersonal(r.Context(), user.UserID, req.DietID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Diet not found")
		return
	}
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if len(diet.Days) == 0 {
		respondError(w, http.StatusBadRequest, "Diet has no days")
		return
	}
	program := &models.ActiveDiet{
		ActiveID:      services.NewActiveID(),
		UserID:        user.UserID,
		DietID:        diet.DietID,
		StartedAt:     models.NowUTC(),
		DurationDays:  programDurationDays,
		CurrentDay:    1,
		CompletedDays: []int{},
		Status:        "active",
	}
	if err := a.Store.Diets.SetActive(r.Context(), program); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Diet program started", "program": program})
}

// ActiveDietProgram returns the running program, or null when none exists.
func (a *API) ActiveDietProgram(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	program, err := a.Store.Diets.GetActive(r.Context(), user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, map[string]any{"program": nil})
		return
	}
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"program": program})
}

// loadProgramDay resolves the day number in the URL against the running
// program, enforcing bounds and sequential unlock.
func (a *API) loadProgramDay(w http.ResponseWriter, r *http.Request) (*models.ActiveDiet, *models.PersonalDiet, int, bool) {
	user := middleware.UserFrom(r.Context())
	program, err := a.Store.Diets.GetActive(r.Context(), user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Program not found")
		return nil, nil, 0, false
	}
	if err != nil {
		a.respondServiceError(w, err)
		return nil, nil, 0, false
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 || day > program.DurationDays {
		respondError(w, http.StatusBadRequest, "Invalid day number")
		return nil, nil, 0, false
	}
	if day > program.CurrentDay {
		respondError(w, http.StatusForbidden, "Previous day must be completed first")
		return nil, nil, 0, false
	}
	diet, err := a.Store.Diets.GetPersonal(r.Context(), user.UserID, program.DietID)
	if err != nil {
		a.respondServiceError(w, err)
		return nil, nil, 0, false
	}
	return program, diet, day, true
}

// DietProgramDay returns one unlocked day of the running program.
func (a *API) DietProgramDay(w http.ResponseWriter, r *http.Request) {
	program, diet, day, ok := a.loadProgramDay(w, r)
	if !ok {
		return
	}
	planDay := program.PlanDayFor(day, len(diet.Days))
	respondJSON(w, http.StatusOK, map[string]any{
		"program_day":  day,
		"completed":    program.DayCompleted(day),
		"day":          diet.Days[planDay-1],
		"program_name": diet.Title,
	})
}

// CompleteDietDay marks a program day done; completing the current day
// unlocks the next one.
func (a *API) CompleteDietDay(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	program, _, day, ok := a.loadProgramDay(w, r)
	if !ok {
		return
	}
	fields := map[string]any{}
	if !program.DayCompleted(day) {
		program.CompletedDays = append(program.CompletedDays, day)
		fields["completed_days"] = program.CompletedDays
	}
	if day == program.CurrentDay && program.CurrentDay < program.DurationDays {
		program.CurrentDay++
		fields["current_day"] = program.CurrentDay
	}
	if len(program.CompletedDays) >= program.DurationDays {
		program.Status = "completed"
		fields["status"] = program.Status
	}
	if len(fields) > 0 {
		if err := a.Store.Diets.UpdateActive(r.Context(), user.UserID, fields); err != nil {
			a.respondServiceError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Day completed",
		"current_day": program.CurrentDay,
		"completed":   len(program.CompletedDays),
		"status":      program.Status,
	})
}
