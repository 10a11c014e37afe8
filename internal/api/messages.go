package api

import (
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Empty struct{}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest merges Fields into the profile; an empty value
// removes the key.
type UpdateProfileRequest struct {
	Fields map[string]string `json:"fields"`
}

type AccountResponse struct {
	Account models.Account `json:"account"`
}

type SubmitSessionRequest struct {
	PoseName string         `json:"pose_name"`
	Duration int            `json:"duration"`
	Accuracy float64        `json:"accuracy"`
	Feedback map[string]int `json:"feedback,omitempty"`
}

type LeaderboardRequest struct {
	Limit int `json:"limit"`
}

type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

// TodayChallengeResponse has a nil Challenge when none is set for today.
type TodayChallengeResponse struct {
	Challenge *models.DailyChallenge `json:"challenge"`
	Completed bool                   `json:"completed"`
}

type CompleteChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type CreateChallengeRequest struct {
	Challenge models.DailyChallenge `json:"challenge"`
}

type SetAccountActiveRequest struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}
