// Package challenges persists daily challenges in the "daily_challenges"
// collection, keyed by ISO date.
package challenges

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
)

type StoreRepository struct {
	c *recordstore.Collection[models.DailyChallenge]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{c: recordstore.NewCollection[models.DailyChallenge](s, recordstore.DailyChallenges)}
}

func (r *StoreRepository) Create(ctx context.Context, c models.DailyChallenge) error {
	return r.c.Update(ctx, func(m map[string]models.DailyChallenge) error {
		key := c.Date.String()
		if _, ok := m[key]; ok {
			return common.ErrChallengeExists
		}
		if c.Completions == nil {
			c.Completions = []string{}
		}
		m[key] = c
		return nil
	})
}

func (r *StoreRepository) ForDate(ctx context.Context, d timex.Date) (models.DailyChallenge, bool, error) {
	return r.c.Get(ctx, d.String())
}

func (r *StoreRepository) Get(ctx context.Context, challengeID string) (models.DailyChallenge, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return models.DailyChallenge{}, err
	}
	if _, c, ok := find(m, challengeID); ok {
		return c, nil
	}
	return models.DailyChallenge{}, common.ErrChallengeNotFound
}

func (r *StoreRepository) Complete(ctx context.Context, challengeID, userID string) (models.DailyChallenge, bool, error) {
	var (
		out   models.DailyChallenge
		added bool
	)
	err := r.c.Update(ctx, func(m map[string]models.DailyChallenge) error {
		added = false
		key, c, ok := find(m, challengeID)
		if !ok {
			return common.ErrChallengeNotFound
		}
		out = c
		if c.CompletedBy(userID) {
			return recordstore.ErrSkip
		}

		c.Completions = append(append([]string{}, c.Completions...), userID)
		m[key] = c
		out = c
		added = true
		return nil
	})
	if err != nil {
		return models.DailyChallenge{}, false, err
	}
	return out, added, nil
}

func find(m map[string]models.DailyChallenge, challengeID string) (string, models.DailyChallenge, bool) {
	for key, c := range m {
		if c.ID == challengeID {
			return key, c, true
		}
	}
	return "", models.DailyChallenge{}, false
}
