package services

import (
	"time"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

// Check-in rewards. Streak thresholds grant a one-time achievement plus a
// points bonus.
const (
	checkinXP     = 10
	checkinPoints = 10
)

var streakAchievements = []struct {
	Days   int
	ID     string
	Points int
}{
	{7, "streak_7", 50},
	{30, "streak_30", 200},
	{100, "streak_100", 500},
}

var goalAchievements = []struct {
	Days   int
	ID     string
	Points int
}{
	{7, "goal_7", 50},
	{30, "goal_30", 200},
	{100, "goal_100", 500},
}

// XPForLevel is the XP required to go from level n-1 to level n.
// Strictly increasing in n.
func XPForLevel(n int) int {
	return 100*n + 50*(n-1)
}

// LeagueFor maps cumulative points onto a league tier.
func LeagueFor(points int) string {
	switch {
	case points >= 10000:
		return models.LeagueLegend
	case points >= 7500:
		return models.LeagueDiamond
	case points >= 5000:
		return models.LeaguePlatinum
	case points >= 2000:
		return models.LeagueGold
	case points >= 500:
		return models.LeagueSilver
	default:
		return models.LeagueBronze
	}
}

// ApplyLevelUps consumes XP into levels while enough is banked, supporting
// multi-level jumps in one update. Returns levels gained.
func ApplyLevelUps(u *models.User) int {
	gained := 0
	for u.XP >= XPForLevel(u.Level+1) {
		u.XP -= XPForLevel(u.Level + 1)
		u.Level++
		gained++
	}
	return gained
}

// CheckinResult reports what one daily check-in changed.
type CheckinResult struct {
	AlreadyCheckedIn bool     `json:"already_checked_in"`
	StreakBroken     bool     `json:"streak_broken"`
	DailyStreak      int      `json:"daily_streak"`
	XPGained         int      `json:"xp_gained"`
	PointsGained     int      `json:"points_gained"`
	LevelsGained     int      `json:"levels_gained"`
	Level            int      `json:"level"`
	League           string   `json:"league"`
	NewAchievements  []string `json:"new_achievements"`
}

// DailyCheckin advances the login streak for the calendar day of now and
// applies XP, level-ups, league movement and streak achievements in place.
// Calling it twice on the same day is a no-op the second time. The caller
// persists the mutated user.
func DailyCheckin(u *models.User, now time.Time) CheckinResult {
	today := models.DayOf(now)
	res := CheckinResult{NewAchievements: []string{}}

	if u.LastLogin != "" {
		if last, ok := models.ParseTimestamp(u.LastLogin); ok {
			switch delta := models.DayDelta(last, now); {
			case delta == 0:
				res.AlreadyCheckedIn = true
				res.DailyStreak = u.DailyStreak
				res.Level = u.Level
				res.League = u.League
				return res
			case delta == 1:
				u.DailyStreak++
			default:
				u.DailyStreak = 1
				res.StreakBroken = true
			}
		} else {
			u.DailyStreak = 1
		}
	} else {
		u.DailyStreak = 1
	}
	u.LastLogin = today
	if u.DailyStreak > u.MaxDailyStreak {
		u.MaxDailyStreak = u.DailyStreak
	}

	res.XPGained = checkinXP
	res.PointsGained = checkinPoints
	u.XP += checkinXP
	u.TotalPoints += checkinPoints

	for _, a := range streakAchievements {
		if u.DailyStreak >= a.Days && !u.HasAchievement(a.ID) {
			u.Achievements = append(u.Achievements, a.ID)
			u.TotalPoints += a.Points
			res.PointsGained += a.Points
			res.NewAchievements = append(res.NewAchievements, a.ID)
		}
	}

	res.LevelsGained = ApplyLevelUps(u)
	u.League = LeagueFor(u.TotalPoints)

	res.DailyStreak = u.DailyStreak
	res.Level = u.Level
	res.League = u.League
	return res
}

// GoalCompletionResult reports what one goal completion changed.
type GoalCompletionResult struct {
	AlreadyCompleted bool     `json:"already_completed"`
	GoalStreak       int      `json:"goal_streak"`
	StreakBroken     bool     `json:"streak_broken"`
	XPGained         int      `json:"xp_gained"`
	PointsGained     int      `json:"points_gained"`
	LevelsGained     int      `json:"levels_gained"`
	Level            int      `json:"level"`
	League           string   `json:"league"`
	NewAchievements  []string `json:"new_achievements"`
}

// CompleteGoal advances the calorie-goal streak for the calendar day of now.
// It mirrors DailyCheckin: once per day, consecutive days extend the streak,
// a gap resets it, and the goal_7/30/100 milestones grant one-time bonuses.
// The caller persists the mutated user.
func CompleteGoal(u *models.User, now time.Time) GoalCompletionResult {
	today := models.DayOf(now)
	res := GoalCompletionResult{NewAchievements: []string{}}

	if u.LastGoalCompletion != "" {
		if last, ok := models.ParseTimestamp(u.LastGoalCompletion); ok {
			switch delta := models.DayDelta(last, now); {
			case delta == 0:
				res.AlreadyCompleted = true
				res.GoalStreak = u.GoalStreak
				res.Level = u.Level
				res.League = u.League
				return res
			case delta == 1:
				u.GoalStreak++
			default:
				u.GoalStreak = 1
				res.StreakBroken = true
			}
		} else {
			u.GoalStreak = 1
		}
	} else {
		u.GoalStreak = 1
	}
	u.LastGoalCompletion = today
	if u.GoalStreak > u.MaxGoalStreak {
		u.MaxGoalStreak = u.GoalStreak
	}

	res.XPGained = checkinXP
	res.PointsGained = checkinPoints
	u.XP += checkinXP
	u.TotalPoints += checkinPoints

	for _, a := range goalAchievements {
		if u.GoalStreak >= a.Days && !u.HasAchievement(a.ID) {
			u.Achievements = append(u.Achievements, a.ID)
			u.TotalPoints += a.Points
			res.PointsGained += a.Points
			res.NewAchievements = append(res.NewAchievements, a.ID)
		}
	}

	res.LevelsGained = ApplyLevelUps(u)
	u.League = LeagueFor(u.TotalPoints)

	res.GoalStreak = u.GoalStreak
	res.Level = u.Level
	res.League = u.League
	return res
}
