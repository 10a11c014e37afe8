// Package accounts persists Account records in the "accounts" collection,
// keyed by user id.
package accounts

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type StoreRepository struct {
	c *recordstore.Collection[models.Account]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{c: recordstore.NewCollection[models.Account](s, recordstore.Accounts)}
}

func (r *StoreRepository) Create(ctx context.Context, a models.Account) error {
	return r.c.Update(ctx, func(m map[string]models.Account) error {
		// full scan; the collection lock makes check-then-insert atomic
		for _, existing := range m {
			if existing.UserName == a.UserName {
				return common.ErrDuplicateUsername
			}
		}
		m[a.ID] = a
		return nil
	})
}

func (r *StoreRepository) Get(ctx context.Context, userID string) (models.Account, error) {
	a, ok, err := r.c.Get(ctx, userID)
	if err != nil {
		return models.Account{}, err
	}
	if !ok {
		return models.Account{}, common.ErrAccountNotFound
	}
	return a, nil
}

func (r *StoreRepository) GetByUserName(ctx context.Context, userName string) (models.Account, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range m {
		if a.UserName == userName {
			return a, nil
		}
	}
	return models.Account{}, common.ErrAccountNotFound
}

func (r *StoreRepository) Update(ctx context.Context, userID string, fn func(a *models.Account) error) (models.Account, error) {
	var out models.Account
	err := r.c.Update(ctx, func(m map[string]models.Account) error {
		a, ok := m[userID]
		if !ok {
			return common.ErrAccountNotFound
		}
		if err := fn(&a); err != nil {
			return err
		}
		m[userID] = a
		out = a
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return out, nil
}

// List returns accounts ordered by creation time.
func (r *StoreRepository) List(ctx context.Context) ([]models.Account, error) {
	m, err := r.c.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Account, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserName < out[j].UserName
	})
	return out, nil
}
