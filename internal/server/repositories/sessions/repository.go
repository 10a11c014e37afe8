package sessions

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s models.Session) error
	// Get returns common.ErrNoSuchSession for unknown ids.
	Get(ctx context.Context, sessionID string) (models.Session, error)
	// Delete reports whether a session was removed; deleting an unknown id
	// is not an error.
	Delete(ctx context.Context, sessionID string) (bool, error)
	// DeleteWhere removes every session matching pred and returns how many
	// were removed.
	DeleteWhere(ctx context.Context, pred func(models.Session) bool) (int, error)
	List(ctx context.Context) ([]models.Session, error)
}
