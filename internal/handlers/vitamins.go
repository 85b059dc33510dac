package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

// VitaminTemplates lists the suggested supplement catalogue.
func (a *API) VitaminTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Content.VitaminTemplates(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if templates == nil {
		templates = []services.VitaminTemplate{}
	}
	respondJSON(w, http.StatusOK, templates)
}

type vitaminView struct {
	VitaminID string `json:"vitamin_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	TimeOfDay string `json:"time_of_day,omitempty"`
	IsTaken   bool   `json:"is_taken"`
}

func vitaminViews(vitamins []*models.Vitamin, date string) []vitaminView {
	views := make([]vitaminView, 0, len(vitamins))
	for _, v := range vitamins {
		views = append(views, vitaminView{
			VitaminID: v.VitaminID,
			Name:      v.Name,
			Dosage:    v.Dosage,
			TimeOfDay: v.TimeOfDay,
			IsTaken:   v.TakenOn(date),
		})
	}
	return views
}

// ListVitamins returns the user's reminders with today's taken state.
func (a *API) ListVitamins(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	vitamins, err := a.Store.Vitamins.ListByUser(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vitaminViews(vitamins, models.Today()))
}

// AddVitamin creates a reminder.
func (a *API) AddVitamin(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		Name      string `json:"name"`
		Dosage    string `json:"dosage"`
		TimeOfDay string `json:"time_of_day"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Vitamin name is required")
		return
	}
	v := &models.Vitamin{
		VitaminID: services.NewVitaminID(),
		UserID:    user.UserID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		TimeOfDay: req.TimeOfDay,
		CreatedAt: models.NowUTC(),
	}
	if err := a.Store.Vitamins.Insert(r.Context(), v); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vitamin added", "vitamin_id": v.VitaminID})
}

// ToggleVitamin flips today's taken state. The flag carries the day it was
// set so an untouched reminder reads as not taken the next morning.
func (a *API) ToggleVitamin(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	vitaminID := chi.URLParam(r, "vitaminID")
	v, err := a.Store.Vitamins.Get(r.Context(), user.UserID, vitaminID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	today := models.Today()
	taken := !v.TakenOn(today)
	fields := map[string]any{
		"is_taken":        taken,
		"last_taken_date": today,
	}
	if err := a.Store.Vitamins.Update(r.Context(), user.UserID, vitaminID, fields); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"vitamin_id": vitaminID,
		"is_taken":   taken,
	})
}

// DeleteVitamin removes a reminder.
func (a *API) DeleteVitamin(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	vitaminID := chi.URLParam(r, "vitaminID")
	if err := a.Store.Vitamins.Delete(r.Context(), user.UserID, vitaminID); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vitamin deleted", "vitamin_id": vitaminID})
}

// TodayVitamins summarises how many reminders were taken today.
func (a *API) TodayVitamins(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	vitamins, err := a.Store.Vitamins.ListByUser(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	today := models.Today()
	taken := 0
	for _, v := range vitamins {
		if v.TakenOn(today) {
			taken++
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"date":     today,
		"vitamins": vitaminViews(vitamins, today),
		"taken":    taken,
		"total":    len(vitamins),
	})
}
