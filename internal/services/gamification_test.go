package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 100, XPForLevel(1))
	assert.Equal(t, 250, XPForLevel(2))
	assert.Equal(t, 400, XPForLevel(3))
}

func TestLeagueFor(t *testing.T) {
	assert.Equal(t, models.LeagueBronze, LeagueFor(0))
	assert.Equal(t, models.LeagueBronze, LeagueFor(499))
	assert.Equal(t, models.LeagueSilver, LeagueFor(500))
	assert.Equal(t, models.LeagueGold, LeagueFor(2000))
	assert.Equal(t, models.LeaguePlatinum, LeagueFor(5000))
	assert.Equal(t, models.LeagueDiamond, LeagueFor(7500))
	assert.Equal(t, models.LeagueLegend, LeagueFor(10000))
}

func TestApplyLevelUpsCarriesOverflow(t *testing.T) {
	u := &models.User{Level: 1, XP: 260}
	gained := ApplyLevelUps(u)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, u.Level)
	assert.Equal(t, 10, u.XP)
}

func TestApplyLevelUpsMultiple(t *testing.T) {
	// 250 to reach level 2, 400 more to reach level 3.
	u := &models.User{Level: 1, XP: 700}
	gained := ApplyLevelUps(u)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, u.Level)
	assert.Equal(t, 50, u.XP)
}

func checkinUser() *models.User {
	u := &models.User{UserID: "user_abc"}
	u.Normalize()
	return u
}

func TestDailyCheckinFirstEver(t *testing.T) {
	u := checkinUser()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	res := DailyCheckin(u, now)
	assert.False(t, res.AlreadyCheckedIn)
	assert.False(t, res.StreakBroken)
	assert.Equal(t, 1, res.DailyStreak)
	assert.Equal(t, 10, res.XPGained)
	assert.Equal(t, 10, res.PointsGained)
	assert.Equal(t, "2025-06-15", u.LastLogin)
}

func TestDailyCheckinSameDayIsNoOp(t *testing.T) {
	u := checkinUser()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	DailyCheckin(u, now)
	xp, points := u.XP, u.TotalPoints

	res := DailyCheckin(u, now.Add(5*time.Hour))
	assert.True(t, res.AlreadyCheckedIn)
	assert.Equal(t, xp, u.XP)
	assert.Equal(t, points, u.TotalPoints)
	assert.Equal(t, 1, u.DailyStreak)
}

func TestDailyCheckinConsecutiveDayExtendsStreak(t *testing.T) {
	u := checkinUser()
	day1 := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 16, 0, 15, 0, 0, time.UTC)

	DailyCheckin(u, day1)
	res := DailyCheckin(u, day2)
	assert.False(t, res.StreakBroken)
	assert.Equal(t, 2, res.DailyStreak)
	assert.Equal(t, 2, u.MaxDailyStreak)
}

func TestDailyCheckinGapResetsStreak(t *testing.T) {
	u := checkinUser()
	u.DailyStreak = 12
	u.MaxDailyStreak = 12
	u.LastLogin = "2025-06-10"

	res := DailyCheckin(u, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.True(t, res.StreakBroken)
	assert.Equal(t, 1, res.DailyStreak)
	assert.Equal(t, 12, u.MaxDailyStreak)
}

func TestDailyCheckinStreakAchievement(t *testing.T) {
	u := checkinUser()
	u.DailyStreak = 6
	u.LastLogin = "2025-06-14"

	res := DailyCheckin(u, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, 7, res.DailyStreak)
	assert.Equal(t, []string{"streak_7"}, res.NewAchievements)
	assert.Equal(t, 60, res.PointsGained)
	assert.True(t, u.HasAchievement("streak_7"))
}

func TestDailyCheckinAchievementNotRepeated(t *testing.T) {
	u := checkinUser()
	u.DailyStreak = 7
	u.LastLogin = "2025-06-14"
	u.Achievements = []string{"streak_7"}

	res := DailyCheckin(u, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, 8, res.DailyStreak)
	assert.Empty(t, res.NewAchievements)
	assert.Equal(t, 10, res.PointsGained)
}

func TestDailyCheckinLeaguePromotion(t *testing.T) {
	u := checkinUser()
	u.TotalPoints = 495
	u.LastLogin = "2025-06-14"
	u.DailyStreak = 1

	res := DailyCheckin(u, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, models.LeagueSilver, res.League)
	assert.Equal(t, models.LeagueSilver, u.League)
}

func TestCompleteGoalFirstEver(t *testing.T) {
	u := checkinUser()
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	res := CompleteGoal(u, now)
	assert.False(t, res.AlreadyCompleted)
	assert.Equal(t, 1, res.GoalStreak)
	assert.Equal(t, 10, res.XPGained)
	assert.Equal(t, "2025-06-15", u.LastGoalCompletion)
	assert.Equal(t, 1, u.MaxGoalStreak)
}

func TestCompleteGoalSameDayIsNoOp(t *testing.T) {
	u := checkinUser()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	CompleteGoal(u, now)
	xp := u.XP
	res := CompleteGoal(u, now.Add(5*time.Hour))
	assert.True(t, res.AlreadyCompleted)
	assert.Equal(t, 1, u.GoalStreak)
	assert.Equal(t, xp, u.XP)
}

func TestCompleteGoalConsecutiveDayExtendsStreak(t *testing.T) {
	u := checkinUser()
	u.GoalStreak = 3
	u.MaxGoalStreak = 3
	u.LastGoalCompletion = "2025-06-14"

	res := CompleteGoal(u, time.Date(2025, 6, 15, 21, 0, 0, 0, time.UTC))
	assert.Equal(t, 4, res.GoalStreak)
	assert.False(t, res.StreakBroken)
	assert.Equal(t, 4, u.MaxGoalStreak)
}

func TestCompleteGoalGapResetsStreak(t *testing.T) {
	u := checkinUser()
	u.GoalStreak = 12
	u.MaxGoalStreak = 12
	u.LastGoalCompletion = "2025-06-10"

	res := CompleteGoal(u, time.Date(2025, 6, 15, 21, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, res.GoalStreak)
	assert.True(t, res.StreakBroken)
	assert.Equal(t, 12, u.MaxGoalStreak)
}

func TestCompleteGoalStreakAchievement(t *testing.T) {
	u := checkinUser()
	u.GoalStreak = 6
	u.LastGoalCompletion = "2025-06-14"

	res := CompleteGoal(u, time.Date(2025, 6, 15, 21, 0, 0, 0, time.UTC))
	assert.Equal(t, 7, res.GoalStreak)
	assert.Contains(t, res.NewAchievements, "goal_7")
	assert.Contains(t, u.Achievements, "goal_7")
	// 10 base points plus the 50-point milestone bonus.
	assert.Equal(t, 60, res.PointsGained)

	// The milestone is granted once.
	u.LastGoalCompletion = "2025-06-15"
	res = CompleteGoal(u, time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC))
	assert.Empty(t, res.NewAchievements)
}
