package handlers

import (
	"net/http"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

// Health is the load balancer probe.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StorageStatus reports which backing stores are wired, with the database
// host redacted down to its hostname.
func (a *API) StorageStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"mongo_host":     a.Cfg.MongoHost(),
		"database":       a.Cfg.DBName,
		"retention_days": a.Cfg.RetentionDays,
		"vision":         a.Vision.Configured(),
		"diet_generator": a.DietGen.Configured(),
		"time":           models.NowUTC(),
	})
}
