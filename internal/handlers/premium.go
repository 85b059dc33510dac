package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
)

const (
	premiumActivationDays = 30
	adsPerPremiumDay      = 3
)

// ActivatePremium grants 30 days of premium. Guest accounts are allowed
// through for store review testing.
func (a *API) ActivatePremium(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	expiresAt := models.NowUTC().Add(premiumActivationDays * 24 * time.Hour)
	fields := map[string]any{
		"is_premium":         true,
		"premium_expires_at": expiresAt.Format(time.RFC3339),
	}
	if err := a.Store.Users.Update(r.Context(), user.UserID, fields); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":            "Premium activated",
		"is_premium":         true,
		"premium_expires_at": expiresAt.Format(time.RFC3339),
	})
}

// PremiumStatus reports the current entitlement. An expired subscription is
// downgraded on read so the flag never lags reality by more than one call.
func (a *API) PremiumStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	u, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	isPremium := u.IsPremium
	if isPremium && !u.PremiumActive(models.NowUTC()) {
		isPremium = false
		if err := a.Store.Users.Update(r.Context(), u.UserID, map[string]any{"is_premium": false}); err != nil {
			a.Log.Warn("premium downgrade write failed", zap.Error(err))
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"is_premium":         isPremium,
		"premium_expires_at": nilIfEmpty(u.PremiumExpiresAt),
		"ads_watched":        u.AdsWatched,
	})
}

// WatchAds credits watched rewarded ads. Every third ad converts to 24 hours
// of premium; the remainder stays banked toward the next reward.
func (a *API) WatchAds(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	var req struct {
		AdCount int `json:"ad_count"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AdCount <= 0 {
		req.AdCount = 1
	}

	u, err := a.Store.Users.GetByID(r.Context(), user.UserID)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	newAds := u.AdsWatched + req.AdCount
	fields := map[string]any{"ads_watched": newAds}
	isPremium := u.IsPremium
	if newAds >= adsPerPremiumDay {
		premiumDays := newAds / adsPerPremiumDay
		remaining := newAds % adsPerPremiumDay
		expiresAt := models.NowUTC().Add(time.Duration(premiumDays) * 24 * time.Hour)
		fields["is_premium"] = true
		fields["premium_expires_at"] = expiresAt.Format(time.RFC3339)
		fields["ads_watched"] = remaining
		newAds = remaining
		isPremium = true
	}
	if err := a.Store.Users.Update(r.Context(), u.UserID, fields); err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":           "Ad watched",
		"ads_watched":       newAds,
		"ads_until_premium": adsPerPremiumDay - newAds,
		"is_premium":        isPremium,
	})
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
