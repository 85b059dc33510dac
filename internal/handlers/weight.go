package handlers

import (
	"net/http"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
)

const weightHistoryLimit = 90

// LogWeight records today's weight. One record per day; logging again
// replaces the earlier value.
func (a *API) LogWeight(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		WeightKG float64 `json:"weight_kg"`
		Date     string  `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.WeightKG <= 0 || req.WeightKG > 500 {
		respondError(w, http.StatusBadRequest, "weight_kg must be between 0 and 500")
		return
	}
	date := req.Date
	if date == "" {
		date = models.Today()
	}
	entry := &models.WeightEntry{
		UserID:    user.UserID,
		Date:      date,
		WeightKG:  req.WeightKG,
		CreatedAt: models.NowUTC(),
	}
	if err := a.Store.Weights.Upsert(r.Context(), entry); err != nil {
		a.respondServiceError(w, err)
		return
	}
	// Keep the profile weight in step with the newest log.
	if err := a.Store.Users.Update(r.Context(), user.UserID, map[string]any{"weight": req.WeightKG}); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Weight logged",
		"date":      date,
		"weight_kg": req.WeightKG,
	})
}

// WeightHistory returns recent logs, newest first.
func (a *API) WeightHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	entries, err := a.Store.Weights.ListByUser(r.Context(), user.UserID, weightHistoryLimit)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.WeightEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": entries})
}
