package progress

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Repository interface {
	// Get reports false when the user has no progress record yet.
	Get(ctx context.Context, userID string) (models.ProgressRecord, bool, error)
	Save(ctx context.Context, p models.ProgressRecord) error
	// List returns every record ordered by creation time.
	List(ctx context.Context) ([]models.ProgressRecord, error)
}
