package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

// NewMemory returns a Store backed by in-process maps. It powers tests and
// carries the same partial-update semantics as the Mongo implementation.
func NewMemory() *Store {
	m := &memory{
		users:    map[string]*models.User{},
		sessions: map[string]*models.Session{},
		vitamins: map[string]*models.Vitamin{},
		steps:    map[string]*models.StepsDaily{},
		weights:  map[string]*models.WeightEntry{},
		personal: map[string]*models.PersonalDiet{},
		active:   map[string]*models.ActiveDiet{},
	}
	return &Store{
		Users:     (*memUsers)(m),
		Sessions:  (*memSessions)(m),
		Meals:     (*memMeals)(m),
		Water:     (*memWater)(m),
		Steps:     (*memSteps)(m),
		Vitamins:  (*memVitamins)(m),
		Weights:   (*memWeights)(m),
		Diets:     (*memDiets)(m),
		Deletions: (*memDeletions)(m),
	}
}

type memory struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	sessions  map[string]*models.Session
	meals     []*models.Meal
	water     []*models.WaterEntry
	steps     map[string]*models.StepsDaily // user_id|date
	vitamins  map[string]*models.Vitamin
	weights   map[string]*models.WeightEntry // user_id|date
	personal  map[string]*models.PersonalDiet
	active    map[string]*models.ActiveDiet // by user_id
	deletions []*models.DeletionRequest
}

func dayKey(userID, date string) string { return userID + "|" + date }

// applyFields mirrors a Mongo $set: each key names a bson field on the
// document and the value replaces it.
func applyFields(doc any, fields map[string]any) error {
	v := reflect.ValueOf(doc).Elem()
	t := v.Type()
	for key, val := range fields {
		var field reflect.Value
		for i := 0; i < t.NumField(); i++ {
			tag := strings.Split(t.Field(i).Tag.Get("bson"), ",")[0]
			if tag == key {
				field = v.Field(i)
				break
			}
		}
		if !field.IsValid() {
			return fmt.Errorf("store: no field for %q on %s", key, t.Name())
		}
		rv := reflect.ValueOf(val)
		if !rv.IsValid() {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		if rv.Type().ConvertibleTo(field.Type()) {
			field.Set(rv.Convert(field.Type()))
			continue
		}
		return fmt.Errorf("store: cannot set %q (%s) from %T", key, field.Type(), val)
	}
	return nil
}

type memUsers memory

func (m *memUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.UserID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	cp.Normalize()
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			cp.Normalize()
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) Update(_ context.Context, userID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	return applyFields(u, fields)
}

func (m *memUsers) Unset(_ context.Context, userID string, fields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil
	}
	zero := map[string]any{}
	for _, f := range fields {
		zero[f] = nil
	}
	return applyFields(u, zero)
}

func (m *memUsers) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

func (m *memUsers) ListScheduled(_ context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.User
	for _, u := range m.users {
		if u.ScheduledDeletionAt != "" {
			cp := *u
			cp.Normalize()
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memSessions memory

func (m *memSessions) Insert(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.Token] = &cp
	return nil
}

func (m *memSessions) GetByToken(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *memSessions) HasLive(_ context.Context, userID string, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.UserID == userID && s.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

type memMeals memory

func (m *memMeals) Insert(_ context.Context, meal *models.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *meal
	m.meals = append(m.meals, &cp)
	return nil
}

func (m *memMeals) ListByDay(_ context.Context, userID, date string) ([]*models.Meal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Meal
	for _, meal := range m.meals {
		if meal.UserID == userID && meal.Date == date {
			cp := *meal
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMeals) Delete(_ context.Context, userID, mealID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, meal := range m.meals {
		if meal.UserID == userID && meal.MealID == mealID {
			m.meals = append(m.meals[:i], m.meals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memMeals) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.meals[:0]
	for _, meal := range m.meals {
		if meal.UserID != userID {
			kept = append(kept, meal)
		}
	}
	m.meals = kept
	return nil
}

type memWater memory

func (m *memWater) Insert(_ context.Context, e *models.WaterEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.water = append(m.water, &cp)
	return nil
}

func (m *memWater) ListByDay(_ context.Context, userID, date string) ([]*models.WaterEntry, error) {
	return m.ListRange(nil, userID, date, date)
}

func (m *memWater) ListRange(_ context.Context, userID, fromDate, toDate string) ([]*models.WaterEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.WaterEntry
	for _, e := range m.water {
		if e.UserID == userID && e.Date >= fromDate && e.Date <= toDate {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memWater) Delete(_ context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.water {
		if e.UserID == userID && e.EntryID == entryID {
			m.water = append(m.water[:i], m.water[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memWater) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.water[:0]
	for _, e := range m.water {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	m.water = kept
	return nil
}

type memSteps memory

func (m *memSteps) Get(_ context.Context, userID, date string) (*models.StepsDaily, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.steps[dayKey(userID, date)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memSteps) Upsert(_ context.Context, rec *models.StepsDaily) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.steps[dayKey(rec.UserID, rec.Date)] = &cp
	return nil
}

func (m *memSteps) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, rec := range m.steps {
		if rec.UserID == userID {
			delete(m.steps, key)
		}
	}
	return nil
}

type memVitamins memory

func (m *memVitamins) Insert(_ context.Context, v *models.Vitamin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.vitamins[v.VitaminID] = &cp
	return nil
}

func (m *memVitamins) ListByUser(_ context.Context, userID string) ([]*models.Vitamin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Vitamin
	for _, v := range m.vitamins {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memVitamins) Get(_ context.Context, userID, vitaminID string) (*models.Vitamin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vitamins[vitaminID]
	if !ok || v.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVitamins) Update(_ context.Context, userID, vitaminID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vitamins[vitaminID]
	if !ok || v.UserID != userID {
		return ErrNotFound
	}
	return applyFields(v, fields)
}

func (m *memVitamins) Delete(_ context.Context, userID, vitaminID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vitamins[vitaminID]
	if !ok || v.UserID != userID {
		return ErrNotFound
	}
	delete(m.vitamins, vitaminID)
	return nil
}

func (m *memVitamins) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.vitamins {
		if v.UserID == userID {
			delete(m.vitamins, id)
		}
	}
	return nil
}

type memWeights memory

func (m *memWeights) Upsert(_ context.Context, e *models.WeightEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.weights[dayKey(e.UserID, e.Date)] = &cp
	return nil
}

func (m *memWeights) ListByUser(_ context.Context, userID string, limit int) ([]*models.WeightEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.WeightEntry
	for _, e := range m.weights {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memWeights) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.weights {
		if e.UserID == userID {
			delete(m.weights, key)
		}
	}
	return nil
}

type memDiets memory

func (m *memDiets) InsertPersonal(_ context.Context, d *models.PersonalDiet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.personal[d.DietID] = &cp
	return nil
}

func (m *memDiets) ListPersonalByUser(_ context.Context, userID string) ([]*models.PersonalDiet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.PersonalDiet
	for _, d := range m.personal {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memDiets) GetPersonal(_ context.Context, userID, dietID string) (*models.PersonalDiet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.personal[dietID]
	if !ok || d.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDiets) SetActive(_ context.Context, a *models.ActiveDiet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.active[a.UserID] = &cp
	return nil
}

func (m *memDiets) GetActive(_ context.Context, userID string) (*models.ActiveDiet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.active[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memDiets) UpdateActive(_ context.Context, userID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.active[userID]
	if !ok {
		return ErrNotFound
	}
	return applyFields(a, fields)
}

func (m *memDiets) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.personal {
		if d.UserID == userID {
			delete(m.personal, id)
		}
	}
	delete(m.active, userID)
	return nil
}

type memDeletions memory

func (m *memDeletions) Insert(_ context.Context, r *models.DeletionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.deletions = append(m.deletions, &cp)
	return nil
}
