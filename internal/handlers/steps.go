package handlers

import (
	"errors"
	"net/http"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

// SyncSteps is the health-kit path. The device count is authoritative and
// overwrites whatever is stored for the day.
func (a *API) SyncSteps(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		Steps int    `json:"steps"`
		Date  string `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Steps < 0 {
		respondError(w, http.StatusBadRequest, "steps must be non-negative")
		return
	}
	date := req.Date
	if date == "" {
		date = models.Today()
	}
	rec := &models.StepsDaily{
		UserID:    user.UserID,
		Date:      date,
		Steps:     req.Steps,
		Source:    models.StepSourceSync,
		UpdatedAt: models.NowUTC(),
	}
	if err := a.Store.Steps.Upsert(r.Context(), rec); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Steps synced",
		"date":    date,
		"steps":   req.Steps,
	})
}

// AddSteps is the manual path. The entered count adds to the stored total for
// the day instead of replacing it.
func (a *API) AddSteps(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		Steps int `json:"steps"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Steps <= 0 {
		respondError(w, http.StatusBadRequest, "steps must be positive")
		return
	}
	date := models.Today()
	total := req.Steps
	existing, err := a.Store.Steps.Get(r.Context(), user.UserID, date)
	switch {
	case err == nil:
		total += existing.Steps
	case errors.Is(err, store.ErrNotFound):
	default:
		a.respondServiceError(w, err)
		return
	}
	rec := &models.StepsDaily{
		UserID:    user.UserID,
		Date:      date,
		Steps:     total,
		Source:    models.StepSourceManual,
		UpdatedAt: models.NowUTC(),
	}
	if err := a.Store.Steps.Upsert(r.Context(), rec); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Steps added",
		"date":    date,
		"steps":   total,
	})
}

// TodaySteps returns today's count, zero when nothing was recorded.
func (a *API) TodaySteps(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	date := models.Today()
	rec, err := a.Store.Steps.Get(r.Context(), user.UserID, date)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, map[string]any{
			"date":  date,
			"steps": 0,
			"goal":  user.StepGoal,
		})
		return
	}
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"steps":  rec.Steps,
		"source": rec.Source,
		"goal":   user.StepGoal,
	})
}
