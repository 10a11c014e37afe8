// Package models defines the records persisted by the server and the values
// returned by its services.
package models

import "time"

// Account is a registered user. PasswordHash never leaves the server.
type Account struct {
	ID           string            `json:"user_id"`
	UserName     string            `json:"username"`
	Email        string            `json:"email,omitempty"`
	PasswordHash string            `json:"password_hash"`
	CreatedAt    time.Time         `json:"created_at"`
	LastLogin    *time.Time        `json:"last_login,omitempty"`
	Active       bool              `json:"is_active"`
	Profile      map[string]string `json:"profile"`
}

// Redacted returns a copy safe to hand to callers.
func (a Account) Redacted() Account {
	a.PasswordHash = ""
	if a.Profile != nil {
		p := make(map[string]string, len(a.Profile))
		for k, v := range a.Profile {
			p[k] = v
		}
		a.Profile = p
	}
	return a
}

// Session is an identity session issued on login.
type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ClientIP  string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// Expired reports whether the session is past its cutoff at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ClientInfo describes the caller of Authenticate.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// UserStats is an account together with the number of its live sessions.
type UserStats struct {
	Account        Account `json:"account"`
	ActiveSessions int     `json:"active_sessions"`
}

// Health summarises the identity store.
type Health struct {
	Users          int `json:"users"`
	ActiveSessions int `json:"active_sessions"`
}
