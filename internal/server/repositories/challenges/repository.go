package challenges

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
)

type Repository interface {
	// Create stores a challenge; common.ErrChallengeExists if its date is
	// already taken.
	Create(ctx context.Context, c models.DailyChallenge) error
	ForDate(ctx context.Context, d timex.Date) (models.DailyChallenge, bool, error)
	Get(ctx context.Context, challengeID string) (models.DailyChallenge, error)
	// Complete adds userID to the challenge's completions. The second result
	// is false, and nothing is written, when the user was already there.
	Complete(ctx context.Context, challengeID, userID string) (models.DailyChallenge, bool, error)
}
