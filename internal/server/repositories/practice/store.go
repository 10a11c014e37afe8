// Package practice keeps the append-only log of practice sessions in the
// "practice_sessions" collection.
package practice

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type StoreRepository struct {
	c *recordstore.Collection[models.PracticeSession]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{c: recordstore.NewCollection[models.PracticeSession](s, recordstore.PracticeSessions)}
}

func (r *StoreRepository) Append(ctx context.Context, s models.PracticeSession) error {
	return r.c.Update(ctx, func(m map[string]models.PracticeSession) error {
		if _, ok := m[s.ID]; ok {
			return fmt.Errorf("%w: practice session %s already logged", common.ErrorConflict, s.ID)
		}
		m[s.ID] = s
		return nil
	})
}

func (r *StoreRepository) Remove(ctx context.Context, id string) error {
	return r.c.Update(ctx, func(m map[string]models.PracticeSession) error {
		if _, ok := m[id]; !ok {
			return recordstore.ErrSkip
		}
		delete(m, id)
		return nil
	})
}

func (r *StoreRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.PracticeSession, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.PracticeSession
	for _, s := range m {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndTime.Equal(out[j].EndTime) {
			return out[i].EndTime.After(out[j].EndTime)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
