package models

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/timex"
)

// ProgressRecord is the per-user progress state. It is written only by the
// progress engine.
type ProgressRecord struct {
	UserID               string     `json:"user_id"`
	TotalSessions        int        `json:"total_sessions"`
	TotalPracticeMinutes int        `json:"total_practice_time"`
	PosesLearned         []string   `json:"poses_learned"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	LastPracticeDate     timex.Date `json:"last_practice_date"`
	Level                int        `json:"level"`
	ExperiencePoints     int        `json:"experience_points"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func NewProgressRecord(userID string, now time.Time) ProgressRecord {
	return ProgressRecord{
		UserID:       userID,
		PosesLearned: []string{},
		Level:        1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasLearned reports whether pose is in the learned set.
func (p *ProgressRecord) HasLearned(pose string) bool {
	i := sort.SearchStrings(p.PosesLearned, pose)
	return i < len(p.PosesLearned) && p.PosesLearned[i] == pose
}

// Learn adds pose to the learned set, keeping it sorted. It reports whether
// the pose was new.
func (p *ProgressRecord) Learn(pose string) bool {
	i := sort.SearchStrings(p.PosesLearned, pose)
	if i < len(p.PosesLearned) && p.PosesLearned[i] == pose {
		return false
	}
	p.PosesLearned = append(p.PosesLearned, "")
	copy(p.PosesLearned[i+1:], p.PosesLearned[i:])
	p.PosesLearned[i] = pose
	return true
}

// Clone returns a deep copy.
func (p ProgressRecord) Clone() ProgressRecord {
	p.PosesLearned = append([]string{}, p.PosesLearned...)
	return p
}

// PracticeSession is one logged yoga exercise. Written once, never changed.
type PracticeSession struct {
	ID                 string         `json:"session_id"`
	UserID             string         `json:"user_id"`
	PoseName           string         `json:"pose_name"`
	StartTime          time.Time      `json:"start_time"`
	EndTime            time.Time      `json:"end_time"`
	DurationSeconds    int            `json:"duration"`
	AccuracyScore      float64        `json:"accuracy_score"`
	Attempts           int            `json:"attempts"`
	SuccessfulAttempts int            `json:"successful_attempts"`
	Feedback           map[string]int `json:"feedback_count"`
}

// SessionEvent is a completed practice session reported by the pose
// detection pipeline.
type SessionEvent struct {
	UserID          string         `json:"user_id"`
	PoseName        string         `json:"pose_name"`
	DurationSeconds int            `json:"duration_seconds"`
	Accuracy        float64        `json:"accuracy"`
	Feedback        map[string]int `json:"feedback"`
}

// SessionResult is returned by the engine for every processed session.
// NewLevel is nil unless the level increased.
type SessionResult struct {
	XPGained        int      `json:"xp_gained"`
	NewLevel        *int     `json:"new_level"`
	NewAchievements []string `json:"new_achievements"`
	CurrentStreak   int      `json:"current_streak"`
	TotalXP         int      `json:"total_xp"`
}
