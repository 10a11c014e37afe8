// Package recordstore keeps named collections of records, each collection
// persisted as one document. Every mutation reads the whole collection,
// applies a change and writes the whole collection back; Store serialises
// those read-modify-write cycles per collection so that concurrent writers in
// one process cannot lose each other's updates.
package recordstore

import (
	"context"
	"errors"
)

// Backend persists raw collection documents.
type Backend interface {
	// Read returns the stored document, or (nil, nil) if the collection has
	// never been written.
	Read(ctx context.Context, collection string) ([]byte, error)
	// Write replaces the stored document.
	Write(ctx context.Context, collection string, doc []byte) error
}

// Transactor is implemented by backends able to lock a collection for the
// whole read-modify-write cycle across processes. fn receives the current
// document (nil if absent) and returns the replacement. If fn fails nothing
// is written and its error is returned unchanged.
type Transactor interface {
	Transact(ctx context.Context, collection string, fn func(doc []byte) ([]byte, error)) error
}

// Closer is implemented by backends holding connections.
type Closer interface {
	Close() error
}

// ErrSkip may be returned by an Update callback to leave the collection
// untouched; Update then reports success.
var ErrSkip = errors.New("recordstore: skip write")

// Collection names.
const (
	Accounts         = "accounts"
	Sessions         = "sessions"
	Progress         = "progress"
	PracticeSessions = "practice_sessions"
	Achievements     = "achievements"
	UserAchievements = "user_achievements"
	DailyChallenges  = "daily_challenges"
)
