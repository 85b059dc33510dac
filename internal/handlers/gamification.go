package handlers

import (
	"net/http"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

// GamificationStatus reports level, streaks, league and progress toward the
// next level.
func (a *API) GamificationStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	u, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"level":            u.Level,
		"xp":               u.XP,
		"xp_to_next_level": services.XPForLevel(u.Level + 1),
		"total_points":     u.TotalPoints,
		"daily_streak":     u.DailyStreak,
		"goal_streak":      u.GoalStreak,
		"max_daily_streak": u.MaxDailyStreak,
		"max_goal_streak":  u.MaxGoalStreak,
		"league":           u.League,
		"achievements":     u.Achievements,
	})
}

// DailyCheckin advances the login streak and persists whatever it changed.
func (a *API) DailyCheckin(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	u, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	res := services.DailyCheckin(u, models.NowUTC())
	if !res.AlreadyCheckedIn {
		fields := map[string]any{
			"last_login":       u.LastLogin,
			"daily_streak":     u.DailyStreak,
			"max_daily_streak": u.MaxDailyStreak,
			"xp":               u.XP,
			"level":            u.Level,
			"total_points":     u.TotalPoints,
			"league":           u.League,
			"achievements":     u.Achievements,
		}
		if err := a.Store.Users.Update(r.Context(), u.UserID, fields); err != nil {
			a.respondServiceError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, res)
}
