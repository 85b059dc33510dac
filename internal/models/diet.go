package models

import "time"

// DietMeal is one meal slot in a generated plan day.
type DietMeal struct {
	MealType    string   `bson:"meal_type" json:"meal_type"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Calories    float64  `bson:"calories" json:"calories"`
	Protein     float64  `bson:"protein" json:"protein"`
	Carbs       float64  `bson:"carbs" json:"carbs"`
	Fat         float64  `bson:"fat" json:"fat"`
	Ingredients []string `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}

// DietDay is one day of a generated plan.
type DietDay struct {
	Day           int        `bson:"day" json:"day"`
	Title         string     `bson:"title,omitempty" json:"title,omitempty"`
	TotalCalories float64    `bson:"total_calories" json:"total_calories"`
	Meals         []DietMeal `bson:"meals" json:"meals"`
}

// PersonalDiet is a stored AI-generated plan owned by one user.
type PersonalDiet struct {
	DietID        string    `bson:"diet_id" json:"diet_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationDays  int       `bson:"duration_days" json:"duration_days"`
	DailyCalories float64   `bson:"daily_calories,omitempty" json:"daily_calories,omitempty"`
	Days          []DietDay `bson:"days" json:"days"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// ActiveDiet is a started 30-day program. Plan days cycle: program day N maps
// to plan day ((N-1) mod len(days)) + 1. Only days up to CurrentDay are
// unlocked; completing the current day advances it.
type ActiveDiet struct {
	ActiveID      string    `bson:"active_id" json:"active_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	DietID        string    `bson:"diet_id" json:"diet_id"`
	StartedAt     time.Time `bson:"started_at" json:"started_at"`
	DurationDays  int       `bson:"duration_days" json:"duration_days"`
	CurrentDay    int       `bson:"current_day" json:"current_day"`
	CompletedDays []int     `bson:"completed_days,omitempty" json:"completed_days"`
	Status        string    `bson:"status" json:"status"`
}

// PlanDayFor maps a program day onto the cycled plan day index (1-based).
func (a *ActiveDiet) PlanDayFor(programDay, planLen int) int {
	if planLen <= 0 {
		return 0
	}
	return (programDay-1)%planLen + 1
}

// DayCompleted reports whether the given program day was already completed.
func (a *ActiveDiet) DayCompleted(day int) bool {
	for _, d := range a.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}
