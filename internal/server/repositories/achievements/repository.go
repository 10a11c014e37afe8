package achievements

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Repository interface {
	// Catalog returns every achievement ordered by id, seeding the default
	// catalog if the collection is empty.
	Catalog(ctx context.Context) ([]models.Achievement, error)
	// Earned returns the user's awards ordered by EarnedAt.
	Earned(ctx context.Context, userID string) ([]models.UserAchievement, error)
	// Award stores the awards not yet present and returns the ids that were
	// actually new. An (user, achievement) pair is stored at most once.
	Award(ctx context.Context, awards []models.UserAchievement) ([]string, error)
	// Revoke removes the user's awards for the given achievement ids.
	Revoke(ctx context.Context, userID string, achievementIDs []string) error
}
