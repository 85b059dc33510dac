package models

import "time"

// Auth types a user document can carry.
const (
	AuthTypeEmail  = "email"
	AuthTypeGoogle = "google"
	AuthTypeGuest  = "guest"
)

// League tiers ordered by total points.
const (
	LeagueBronze   = "bronze"
	LeagueSilver   = "silver"
	LeagueGold     = "gold"
	LeaguePlatinum = "platinum"
	LeagueDiamond  = "diamond"
	LeagueLegend   = "legend"
)

// Default goals applied when a document predates the field.
const (
	DefaultWaterGoal = 2500
	DefaultStepGoal  = 10000
	DefaultLanguage  = "tr"
)

// User is the account document. Fields are flat rather than nested because
// older documents in production were written that way and partial updates
// target individual keys. Timestamp fields that older writers stored as
// strings stay strings here and go through ParseTimestamp.
type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Picture      string    `bson:"picture,omitempty" json:"picture,omitempty"`
	AuthType     string    `bson:"auth_type" json:"auth_type"`
	GoogleID     string    `bson:"google_id,omitempty" json:"-"`
	PasswordHash string    `bson:"password,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	LastActive   time.Time `bson:"last_active,omitempty" json:"last_active,omitempty"`

	// Onboarding / profile.
	Age           int     `bson:"age,omitempty" json:"age,omitempty"`
	Gender        string  `bson:"gender,omitempty" json:"gender,omitempty"`
	Height        float64 `bson:"height,omitempty" json:"height,omitempty"`
	Weight        float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	TargetWeight  float64 `bson:"target_weight,omitempty" json:"target_weight,omitempty"`
	ActivityLevel string  `bson:"activity_level,omitempty" json:"activity_level,omitempty"`
	Goal          string  `bson:"goal,omitempty" json:"goal,omitempty"`
	Language      string  `bson:"language,omitempty" json:"language,omitempty"`

	// Daily goals.
	DailyCalorieGoal int     `bson:"daily_calorie_goal,omitempty" json:"daily_calorie_goal,omitempty"`
	BMR              float64 `bson:"bmr,omitempty" json:"bmr,omitempty"`
	TDEE             float64 `bson:"tdee,omitempty" json:"tdee,omitempty"`
	DailyProtein     float64 `bson:"daily_protein,omitempty" json:"daily_protein,omitempty"`
	DailyCarbs       float64 `bson:"daily_carbs,omitempty" json:"daily_carbs,omitempty"`
	DailyFat         float64 `bson:"daily_fat,omitempty" json:"daily_fat,omitempty"`
	WaterGoal        int     `bson:"water_goal,omitempty" json:"water_goal,omitempty"`
	StepGoal         int     `bson:"step_goal,omitempty" json:"step_goal,omitempty"`

	// Premium.
	IsPremium        bool   `bson:"is_premium" json:"is_premium"`
	PremiumExpiresAt string `bson:"premium_expires_at,omitempty" json:"premium_expires_at,omitempty"`
	PremiumType      string `bson:"premium_type,omitempty" json:"premium_type,omitempty"`
	AdsWatched       int    `bson:"ads_watched,omitempty" json:"ads_watched,omitempty"`

	// Gamification.
	Level              int      `bson:"level,omitempty" json:"level"`
	XP                 int      `bson:"xp,omitempty" json:"xp"`
	TotalPoints        int      `bson:"total_points,omitempty" json:"total_points"`
	DailyStreak        int      `bson:"daily_streak,omitempty" json:"daily_streak"`
	GoalStreak         int      `bson:"goal_streak,omitempty" json:"goal_streak"`
	MaxDailyStreak     int      `bson:"max_daily_streak,omitempty" json:"max_daily_streak"`
	MaxGoalStreak      int      `bson:"max_goal_streak,omitempty" json:"max_goal_streak"`
	League             string   `bson:"league,omitempty" json:"league"`
	Achievements       []string `bson:"achievements,omitempty" json:"achievements"`
	LastLogin          string   `bson:"last_login,omitempty" json:"last_login,omitempty"`
	LastGoalCompletion string   `bson:"last_goal_completion,omitempty" json:"last_goal_completion,omitempty"`

	// Lifecycle. Stored as strings for drift tolerance: an unparsable
	// scheduled_deletion_at must never cause a sweep delete.
	ScheduledDeletionAt string `bson:"scheduled_deletion_at,omitempty" json:"scheduled_deletion_at,omitempty"`
	LogoutAt            string `bson:"logout_at,omitempty" json:"logout_at,omitempty"`
}

// Normalize fills defaults for fields older documents lack. Every decode
// path goes through this so handlers never re-implement fallbacks.
func (u *User) Normalize() {
	if u.WaterGoal <= 0 {
		u.WaterGoal = DefaultWaterGoal
	}
	if u.StepGoal <= 0 {
		u.StepGoal = DefaultStepGoal
	}
	if u.Language == "" {
		u.Language = DefaultLanguage
	}
	if u.Level <= 0 {
		u.Level = 1
	}
	if u.League == "" {
		u.League = LeagueBronze
	}
	if u.Achievements == nil {
		u.Achievements = []string{}
	}
}

// IsGuest reports whether this is a disposable guest account.
func (u *User) IsGuest() bool {
	return u.AuthType == AuthTypeGuest
}

// PremiumActive reports whether premium entitlements apply at now. A premium
// flag with an expired or unparsable expiry does not count.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumExpiresAt == "" {
		return true
	}
	exp, ok := ParseTimestamp(u.PremiumExpiresAt)
	if !ok {
		return false
	}
	return exp.After(now)
}

// HasAchievement reports whether the badge was already granted.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
