package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *StoreRepository {
	t.Helper()
	return NewStoreRepository(recordstore.New(recordstore.NewMemoryBackend()))
}

func account(id, name string, created time.Time) models.Account {
	return models.Account{ID: id, UserName: name, CreatedAt: created, Active: true, Profile: map[string]string{}}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	now := time.Now()

	require.NoError(t, r.Create(ctx, account("u1", "alice", now)))

	a, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.UserName)

	a, err = r.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", a.ID)

	_, err = r.Get(ctx, "nope")
	require.ErrorIs(t, err, common.ErrAccountNotFound)
	_, err = r.GetByUserName(ctx, "Alice")
	require.ErrorIs(t, err, common.ErrorNotFound, "usernames are case-sensitive")
}

func TestCreate_DuplicateUserName(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	require.NoError(t, r.Create(ctx, account("u1", "alice", time.Now())))
	err := r.Create(ctx, account("u2", "alice", time.Now()))
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
	require.ErrorIs(t, err, common.ErrorConflict)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_ConcurrentSameUserName(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := r.Create(ctx, account(fmt.Sprintf("u%d", i), "bob", time.Now())); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, success)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Create(ctx, account("u1", "alice", time.Now())))

	a, err := r.Update(ctx, "u1", func(a *models.Account) error {
		a.Active = false
		return nil
	})
	require.NoError(t, err)
	assert.False(t, a.Active)

	boom := errors.New("boom")
	_, err = r.Update(ctx, "u1", func(a *models.Account) error {
		a.Email = "x@y"
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err = r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, a.Email)
	assert.False(t, a.Active)

	_, err = r.Update(ctx, "ghost", func(*models.Account) error { return nil })
	require.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestList_OrderedByCreation(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, account("u3", "carol", base.Add(2*time.Hour))))
	require.NoError(t, r.Create(ctx, account("u1", "alice", base)))
	require.NoError(t, r.Create(ctx, account("u2", "bob", base.Add(time.Hour))))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{list[0].UserName, list[1].UserName, list[2].UserName})
}
