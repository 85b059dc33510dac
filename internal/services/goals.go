package services

import "math"

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BMRHarrisBenedict is the older equation kept for the profile-update path.
func BMRHarrisBenedict(gender string, weightKG, heightCM float64, age int) float64 {
	if gender == "male" {
		return 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*float64(age)
}

// BMRMifflin is the Mifflin-St Jeor equation used by the goal calculator.
func BMRMifflin(gender string, weightKG, heightCM float64, age int) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == "male" {
		return base + 5
	}
	return base - 161
}

// TDEEFor applies the activity multiplier, defaulting unknown levels to
// moderate.
func TDEEFor(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = 1.55
	}
	return bmr * mult
}

// GoalInput is the calculator's request.
type GoalInput struct {
	WeightKG      float64  `json:"weight"`
	HeightCM      float64  `json:"height"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activity_level"`
	Goals         []string `json:"goals"`
	TargetWeight  float64  `json:"target_weight,omitempty"`
}

// Valid reports whether the required fields are present.
func (in *GoalInput) Valid() bool {
	return in.WeightKG > 0 && in.HeightCM > 0 && in.Age > 0 &&
		(in.Gender == "male" || in.Gender == "female")
}

// Macros is the computed macro split.
type Macros struct {
	ProteinGrams   int `json:"protein_grams"`
	ProteinPercent int `json:"protein_percent"`
	CarbsGrams     int `json:"carbs_grams"`
	CarbsPercent   int `json:"carbs_percent"`
	FatGrams       int `json:"fat_grams"`
	FatPercent     int `json:"fat_percent"`
}

// Recommendations are secondary lifestyle targets derived from the goals.
type Recommendations struct {
	ProteinPerKG         float64 `json:"protein_per_kg"`
	WaterML              int     `json:"water_ml"`
	StepsGoal            int     `json:"steps_goal"`
	TrainingDaysPerWeek  int     `json:"training_days_per_week"`
	CardioMinutesPerWeek int     `json:"cardio_minutes_per_week"`
}

// GoalResult is the calculator's response.
type GoalResult struct {
	BMR                  int             `json:"bmr"`
	TDEE                 int             `json:"tdee"`
	DailyCalorieGoal     int             `json:"daily_calorie_goal"`
	GoalDescription      string          `json:"goal_description"`
	Macros               Macros          `json:"macros"`
	WeeklyWeightChangeKG float64         `json:"weekly_weight_change_kg"`
	WeeksToGoal          int             `json:"weeks_to_goal,omitempty"`
	Recommendations      Recommendations `json:"recommendations"`
}

// CalculateGoals computes calories and macros for single and combined goals.
// Combinations resolved before single goals: lose_weight+build_muscle is a
// recomp cut, build_muscle+gain_weight is a lean bulk.
func CalculateGoals(in GoalInput) GoalResult {
	bmr := BMRMifflin(in.Gender, in.WeightKG, in.HeightCM, in.Age)
	tdee := TDEEFor(bmr, in.ActivityLevel)

	goals := map[string]bool{}
	fast := false
	for _, g := range in.Goals {
		goals[g] = true
		if g == "fast" {
			fast = true
		}
	}

	calories := tdee
	proteinPct, carbsPct, fatPct := 30, 40, 30
	description := "Maintenance"

	switch {
	case goals["lose_weight"] && goals["build_muscle"]:
		description = "Body Recomposition (Lose Fat & Build Muscle)"
		calories = tdee * 0.85
		proteinPct, carbsPct, fatPct = 40, 30, 30
	case goals["build_muscle"] && goals["gain_weight"]:
		description = "Lean Bulk (Build Muscle & Gain Weight)"
		calories = tdee * 1.15
		proteinPct, carbsPct, fatPct = 30, 50, 20
	case goals["lose_weight"]:
		if fast {
			description = "Fast Weight Loss"
			calories = tdee * 0.75
		} else {
			description = "Weight Loss"
			calories = tdee * 0.80
		}
		proteinPct, carbsPct, fatPct = 40, 30, 30
	case goals["build_muscle"]:
		description = "Muscle Gain"
		calories = tdee * 1.10
		proteinPct, carbsPct, fatPct = 30, 45, 25
	}

	proteinGrams := calories * float64(proteinPct) / 100 / 4
	carbsGrams := calories * float64(carbsPct) / 100 / 4
	fatGrams := calories * float64(fatPct) / 100 / 9

	weeklyChange := 0.0
	if goals["lose_weight"] {
		weeklyChange = -0.5
		if fast {
			weeklyChange = -0.75
		}
	} else if goals["gain_weight"] || goals["build_muscle"] {
		weeklyChange = 0.25
	}

	weeksToGoal := 0
	if in.TargetWeight > 0 && weeklyChange != 0 {
		weeksToGoal = int(math.Round(math.Abs((in.TargetWeight - in.WeightKG) / weeklyChange)))
	}

	trainingDays := 2
	if goals["build_muscle"] {
		trainingDays = 3
	}
	cardioMinutes := 90
	if goals["lose_weight"] {
		cardioMinutes = 150
	}

	return GoalResult{
		BMR:                  int(math.Round(bmr)),
		TDEE:                 int(math.Round(tdee)),
		DailyCalorieGoal:     int(math.Round(calories)),
		GoalDescription:      description,
		Macros: Macros{
			ProteinGrams:   int(math.Round(proteinGrams)),
			ProteinPercent: proteinPct,
			CarbsGrams:     int(math.Round(carbsGrams)),
			CarbsPercent:   carbsPct,
			FatGrams:       int(math.Round(fatGrams)),
			FatPercent:     fatPct,
		},
		WeeklyWeightChangeKG: weeklyChange,
		WeeksToGoal:          weeksToGoal,
		Recommendations: Recommendations{
			ProteinPerKG:         math.Round(proteinGrams/in.WeightKG*100) / 100,
			WaterML:              int(math.Round(in.WeightKG * 35)),
			StepsGoal:            10000,
			TrainingDaysPerWeek:  trainingDays,
			CardioMinutesPerWeek: cardioMinutes,
		},
	}
}
