package models

import "time"

// Meal types accepted by the meal logger.
var MealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// Meal is one logged food entry scoped to a UTC calendar day.
type Meal struct {
	MealID    string    `bson:"meal_id" json:"meal_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	MealType  string    `bson:"meal_type" json:"meal_type"`
	Name      string    `bson:"name" json:"name"`
	Calories  float64   `bson:"calories" json:"calories"`
	Protein   float64   `bson:"protein" json:"protein"`
	Carbs     float64   `bson:"carbs" json:"carbs"`
	Fat       float64   `bson:"fat" json:"fat"`
	Quantity  float64   `bson:"quantity,omitempty" json:"quantity,omitempty"`
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// WaterEntry is one signed water event. Negative amounts are retractions;
// the day total is the clamped sum of a day's entries.
type WaterEntry struct {
	EntryID   string    `bson:"entry_id" json:"entry_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	AmountML  int       `bson:"amount_ml" json:"amount_ml"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Step record sources.
const (
	StepSourceSync   = "sync"
	StepSourceManual = "manual"
)

// StepsDaily is the single per-user-per-day step record. Sync writes are
// authoritative overwrites; manual writes add to the stored count.
type StepsDaily struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	Steps     int       `bson:"steps" json:"steps"`
	Source    string    `bson:"source" json:"source"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Vitamin is a user's supplement reminder. IsTaken is only meaningful for
// the day stored in LastTakenDate; on any later day it reads as not taken.
type Vitamin struct {
	VitaminID     string    `bson:"vitamin_id" json:"vitamin_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Name          string    `bson:"name" json:"name"`
	Dosage        string    `bson:"dosage,omitempty" json:"dosage,omitempty"`
	TimeOfDay     string    `bson:"time_of_day,omitempty" json:"time_of_day,omitempty"`
	IsTaken       bool      `bson:"is_taken" json:"is_taken"`
	LastTakenDate string    `bson:"last_taken_date,omitempty" json:"last_taken_date,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// TakenOn resolves the lazy daily reset: the stored flag only counts when it
// was set on the same calendar day.
func (v *Vitamin) TakenOn(date string) bool {
	return v.IsTaken && v.LastTakenDate == date
}

// WeightEntry is the per-day weight log, one record per user per day.
type WeightEntry struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	WeightKG  float64   `bson:"weight_kg" json:"weight_kg"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
