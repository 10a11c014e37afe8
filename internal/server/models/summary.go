package models

// LeaderboardEntry is one ranked row. Rank starts at 1.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	UserName      string `json:"username"`
	TotalXP       int    `json:"total_xp"`
	Level         int    `json:"level"`
	CurrentStreak int    `json:"current_streak"`
}

type WeeklyStats struct {
	Sessions int `json:"sessions_this_week"`
	Minutes  int `json:"time_this_week"`
	Poses    int `json:"poses_this_week"`
}

// Stats is the detailed statistics view of one user.
type Stats struct {
	Progress              ProgressRecord    `json:"progress"`
	RecentSessions        int               `json:"total_sessions"`
	AverageAccuracy       float64           `json:"average_accuracy"`
	FavoritePose          string            `json:"favorite_pose,omitempty"`
	Weekly                WeeklyStats       `json:"weekly_stats"`
	Achievements          []UserAchievement `json:"achievements"`
	AvailableAchievements int               `json:"available_achievements"`
	LevelInfo             Level             `json:"level_info"`
	NextLevelXP           *int              `json:"next_level_xp"`
}

// Summary is the compact progress view shown on dashboards.
type Summary struct {
	Level            int    `json:"level"`
	LevelName        string `json:"level_name"`
	ExperiencePoints int    `json:"experience_points"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	TotalSessions    int    `json:"total_sessions"`
	PosesLearned     int    `json:"poses_learned"`
	Achievements     int    `json:"achievements_count"`
	NextLevelXP      *int   `json:"next_level_xp"`
}

// Dashboard bundles the summary with today's challenge and the user's rank.
// Rank is 0 when the user is outside the ranked window.
type Dashboard struct {
	Summary        Summary         `json:"summary"`
	TodayChallenge *DailyChallenge `json:"today_challenge"`
	ChallengeDone  bool            `json:"challenge_completed"`
	Rank           int             `json:"rank"`
	RankedUsers    int             `json:"ranked_users"`
}
