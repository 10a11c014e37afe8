// Package sessions persists identity sessions in the "sessions" collection,
// keyed by session id.
package sessions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type StoreRepository struct {
	c *recordstore.Collection[models.Session]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{c: recordstore.NewCollection[models.Session](s, recordstore.Sessions)}
}

func (r *StoreRepository) Create(ctx context.Context, s models.Session) error {
	return r.c.Update(ctx, func(m map[string]models.Session) error {
		if _, ok := m[s.ID]; ok {
			return fmt.Errorf("%w: session id collision", common.ErrorConflict)
		}
		m[s.ID] = s
		return nil
	})
}

func (r *StoreRepository) Get(ctx context.Context, sessionID string) (models.Session, error) {
	s, ok, err := r.c.Get(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, common.ErrNoSuchSession
	}
	return s, nil
}

func (r *StoreRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	var removed bool
	err := r.c.Update(ctx, func(m map[string]models.Session) error {
		removed = false
		if _, ok := m[sessionID]; !ok {
			return recordstore.ErrSkip
		}
		delete(m, sessionID)
		removed = true
		return nil
	})
	return removed, err
}

func (r *StoreRepository) DeleteWhere(ctx context.Context, pred func(models.Session) bool) (int, error) {
	var n int
	err := r.c.Update(ctx, func(m map[string]models.Session) error {
		n = 0
		for id, s := range m {
			if pred(s) {
				delete(m, id)
				n++
			}
		}
		if n == 0 {
			return recordstore.ErrSkip
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StoreRepository) List(ctx context.Context) ([]models.Session, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out, nil
}
