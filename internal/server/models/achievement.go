package models

import (
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/timex"
)

// Requirement metrics understood by the achievement evaluator.
const (
	MetricSessions      = "sessions"
	MetricStreak        = "streak"
	MetricPosesLearned  = "poses_learned"
	MetricTotalTime     = "total_time"
	MetricLongestStreak = "longest_streak"
)

// Achievement is a catalog entry. Requirements maps a metric to the minimum
// value it must reach; all of them must hold.
type Achievement struct {
	ID           string         `json:"achievement_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Icon         string         `json:"icon"`
	Requirements map[string]int `json:"requirements"`
	RewardXP     int            `json:"reward_xp"`
	Category     string         `json:"category"`
}

// UserAchievement records that a user earned an achievement.
type UserAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// Key is the record id of a user achievement; one per (user, achievement).
func (u UserAchievement) Key() string {
	return UserAchievementKey(u.UserID, u.AchievementID)
}

func UserAchievementKey(userID, achievementID string) string {
	return userID + "/" + achievementID
}

// DefaultAchievements is the catalog seeded on first access.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:           "first_session",
			Name:         "First Steps",
			Description:  "Complete your first yoga session",
			Icon:         "🌱",
			Requirements: map[string]int{MetricSessions: 1},
			RewardXP:     50,
			Category:     "practice",
		},
		{
			ID:           "week_streak",
			Name:         "Consistent Practice",
			Description:  "Practice for 7 days in a row",
			Icon:         "🔥",
			Requirements: map[string]int{MetricStreak: 7},
			RewardXP:     200,
			Category:     "streak",
		},
		{
			ID:           "pose_master",
			Name:         "Pose Master",
			Description:  "Master 10 different poses",
			Icon:         "🧘‍♀️",
			Requirements: map[string]int{MetricPosesLearned: 10},
			RewardXP:     300,
			Category:     "pose",
		},
		{
			ID:           "hour_practice",
			Name:         "Hour of Power",
			Description:  "Practice for a total of 60 minutes",
			Icon:         "⏰",
			Requirements: map[string]int{MetricTotalTime: 60},
			RewardXP:     150,
			Category:     "time",
		},
	}
}

// DailyChallenge is the challenge of one calendar day.
type DailyChallenge struct {
	ID             string     `json:"challenge_id"`
	Date           timex.Date `json:"date"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	TargetPose     string     `json:"target_pose"`
	TargetDuration int        `json:"target_duration"`
	RewardXP       int        `json:"reward_xp"`
	Completions    []string   `json:"completions"`
}

// CompletedBy reports whether userID is in the completions set.
func (c *DailyChallenge) CompletedBy(userID string) bool {
	for _, id := range c.Completions {
		if id == userID {
			return true
		}
	}
	return false
}

// ChallengeResult is returned by CompleteChallenge. AlreadyCompleted is set
// when the call was a no-op.
type ChallengeResult struct {
	ChallengeID      string `json:"challenge_id"`
	AlreadyCompleted bool   `json:"already_completed"`
	XPGained         int    `json:"xp_gained"`
	NewLevel         *int   `json:"new_level"`
	TotalXP          int    `json:"total_xp"`
}
