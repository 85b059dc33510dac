package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

func waterDayTotal(entries []*models.WaterEntry) int {
	total := 0
	for _, e := range entries {
		total += e.AmountML
	}
	if total < 0 {
		total = 0
	}
	return total
}

// AddWater logs one water event for today. Negative amounts retract earlier
// entries; the displayed total never goes below zero.
func (a *API) AddWater(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		AmountML int `json:"amount_ml"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AmountML == 0 {
		respondError(w, http.StatusBadRequest, "amount_ml must be non-zero")
		return
	}
	entry := &models.WaterEntry{
		EntryID:   services.NewEntryID(),
		UserID:    user.UserID,
		Date:      models.Today(),
		AmountML:  req.AmountML,
		CreatedAt: models.NowUTC(),
	}
	if err := a.Store.Water.Insert(r.Context(), entry); err != nil {
		a.respondServiceError(w, err)
		return
	}
	entries, err := a.Store.Water.ListByDay(r.Context(), user.UserID, entry.Date)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Water logged",
		"entry_id": entry.EntryID,
		"total_ml": waterDayTotal(entries),
		"goal_ml":  user.WaterGoal,
	})
}

// TodayWater returns today's entries and the clamped running total.
func (a *API) TodayWater(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	date := models.Today()
	entries, err := a.Store.Water.ListByDay(r.Context(), user.UserID, date)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.WaterEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"entries":  entries,
		"total_ml": waterDayTotal(entries),
		"goal_ml":  user.WaterGoal,
	})
}

// WeeklyWater returns one clamped total per day for the last seven days,
// oldest first.
func (a *API) WeeklyWater(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	now := models.NowUTC()
	from := models.DayOf(now.AddDate(0, 0, -6))
	to := models.DayOf(now)

	entries, err := a.Store.Water.ListRange(r.Context(), user.UserID, from, to)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	byDay := make(map[string]int)
	for _, e := range entries {
		byDay[e.Date] += e.AmountML
	}

	days := make([]map[string]any, 0, 7)
	for i := 6; i >= 0; i-- {
		day := models.DayOf(now.AddDate(0, 0, -i))
		total := byDay[day]
		if total < 0 {
			total = 0
		}
		days = append(days, map[string]any{"date": day, "total_ml": total})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"days":    days,
		"goal_ml": user.WaterGoal,
	})
}

// RemoveWater retracts an amount from today by logging a negative entry,
// clamped so the day total cannot go below zero.
func (a *API) RemoveWater(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		AmountML int `json:"amount_ml"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AmountML <= 0 {
		respondError(w, http.StatusBadRequest, "amount_ml must be positive")
		return
	}
	date := models.Today()
	entries, err := a.Store.Water.ListByDay(r.Context(), user.UserID, date)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	total := waterDayTotal(entries)
	remove := req.AmountML
	if remove > total {
		remove = total
	}
	if remove > 0 {
		entry := &models.WaterEntry{
			EntryID:   services.NewEntryID(),
			UserID:    user.UserID,
			Date:      date,
			AmountML:  -remove,
			CreatedAt: models.NowUTC(),
		}
		if err := a.Store.Water.Insert(r.Context(), entry); err != nil {
			a.respondServiceError(w, err)
			return
		}
		total -= remove
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Water removed",
		"total_ml": total,
	})
}

// DeleteWaterEntry removes one logged entry by id.
func (a *API) DeleteWaterEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	entryID := chi.URLParam(r, "entryID")
	if err := a.Store.Water.Delete(r.Context(), user.UserID, entryID); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Entry deleted", "entry_id": entryID})
}
