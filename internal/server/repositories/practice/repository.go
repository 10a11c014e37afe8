package practice

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Repository interface {
	// Append stores a practice session; ids are never reused.
	Append(ctx context.Context, s models.PracticeSession) error
	// Remove deletes a logged session; an unknown id is not an error.
	Remove(ctx context.Context, id string) error
	// ListByUser returns the user's most recent sessions, newest first.
	// limit <= 0 means all of them.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.PracticeSession, error)
}
