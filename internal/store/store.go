// Package store is the persistence boundary. Handlers and services talk to
// these interfaces; the Mongo implementation backs production and the memory
// implementation backs tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

// UserStore holds account documents.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update applies a partial update to the named fields.
	Update(ctx context.Context, userID string, fields map[string]any) error
	// Unset removes the named fields from the document.
	Unset(ctx context.Context, userID string, fields ...string) error
	Delete(ctx context.Context, userID string) error
	// ListScheduled returns every user with a scheduled_deletion_at set,
	// parsable or not. The sweep decides what to do with each.
	ListScheduled(ctx context.Context) ([]*models.User, error)
}

// SessionStore holds server-side sessions keyed by token.
type SessionStore interface {
	Insert(ctx context.Context, s *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
	// HasLive reports whether the user owns any session expiring after now.
	HasLive(ctx context.Context, userID string, now time.Time) (bool, error)
}

// MealStore holds logged meals.
type MealStore interface {
	Insert(ctx context.Context, m *models.Meal) error
	ListByDay(ctx context.Context, userID, date string) ([]*models.Meal, error)
	Delete(ctx context.Context, userID, mealID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// WaterStore holds signed water events.
type WaterStore interface {
	Insert(ctx context.Context, e *models.WaterEntry) error
	ListByDay(ctx context.Context, userID, date string) ([]*models.WaterEntry, error)
	ListRange(ctx context.Context, userID, fromDate, toDate string) ([]*models.WaterEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// StepStore holds the one-per-day step records.
type StepStore interface {
	Get(ctx context.Context, userID, date string) (*models.StepsDaily, error)
	Upsert(ctx context.Context, rec *models.StepsDaily) error
	DeleteByUser(ctx context.Context, userID string) error
}

// VitaminStore holds user supplement reminders.
type VitaminStore interface {
	Insert(ctx context.Context, v *models.Vitamin) error
	ListByUser(ctx context.Context, userID string) ([]*models.Vitamin, error)
	Get(ctx context.Context, userID, vitaminID string) (*models.Vitamin, error)
	Update(ctx context.Context, userID, vitaminID string, fields map[string]any) error
	Delete(ctx context.Context, userID, vitaminID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// WeightStore holds per-day weight logs.
type WeightStore interface {
	Upsert(ctx context.Context, e *models.WeightEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.WeightEntry, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// DietStore holds generated plans and the active program.
type DietStore interface {
	InsertPersonal(ctx context.Context, d *models.PersonalDiet) error
	ListPersonalByUser(ctx context.Context, userID string) ([]*models.PersonalDiet, error)
	GetPersonal(ctx context.Context, userID, dietID string) (*models.PersonalDiet, error)
	// SetActive replaces the user's active program.
	SetActive(ctx context.Context, a *models.ActiveDiet) error
	GetActive(ctx context.Context, userID string) (*models.ActiveDiet, error)
	UpdateActive(ctx context.Context, userID string, fields map[string]any) error
	DeleteByUser(ctx context.Context, userID string) error
}

// DeletionStore holds compliance-form deletion requests.
type DeletionStore interface {
	Insert(ctx context.Context, r *models.DeletionRequest) error
}

// Store bundles the per-collection stores.
type Store struct {
	Users     UserStore
	Sessions  SessionStore
	Meals     MealStore
	Water     WaterStore
	Steps     StepStore
	Vitamins  VitaminStore
	Weights   WeightStore
	Diets     DietStore
	Deletions DeletionStore
}

// PurgeUserData removes every per-user record outside the user document
// itself. Called on hard delete; failures are returned but the caller keeps
// going so a partial purge can be retried by the next sweep.
func (s *Store) PurgeUserData(ctx context.Context, userID string) error {
	var firstErr error
	steps := []func(context.Context, string) error{
		s.Sessions.DeleteByUser,
		s.Meals.DeleteByUser,
		s.Water.DeleteByUser,
		s.Steps.DeleteByUser,
		s.Vitamins.DeleteByUser,
		s.Weights.DeleteByUser,
		s.Diets.DeleteByUser,
	}
	for _, step := range steps {
		if err := step(ctx, userID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
