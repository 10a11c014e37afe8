package accounts

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type Repository interface {
	// Create stores a new account. Usernames are unique (case-sensitive);
	// a clash yields common.ErrDuplicateUsername.
	Create(ctx context.Context, a models.Account) error
	Get(ctx context.Context, userID string) (models.Account, error)
	GetByUserName(ctx context.Context, userName string) (models.Account, error)
	// Update applies fn to the stored account; an fn error aborts the change.
	Update(ctx context.Context, userID string, fn func(a *models.Account) error) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
}
