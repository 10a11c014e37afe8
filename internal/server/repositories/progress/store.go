// Package progress persists per-user ProgressRecords in the "progress"
// collection, keyed by user id.
package progress

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type StoreRepository struct {
	c *recordstore.Collection[models.ProgressRecord]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{c: recordstore.NewCollection[models.ProgressRecord](s, recordstore.Progress)}
}

func (r *StoreRepository) Get(ctx context.Context, userID string) (models.ProgressRecord, bool, error) {
	return r.c.Get(ctx, userID)
}

func (r *StoreRepository) Save(ctx context.Context, p models.ProgressRecord) error {
	return r.c.Update(ctx, func(m map[string]models.ProgressRecord) error {
		m[p.UserID] = p
		return nil
	})
}

func (r *StoreRepository) List(ctx context.Context) ([]models.ProgressRecord, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProgressRecord, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}
