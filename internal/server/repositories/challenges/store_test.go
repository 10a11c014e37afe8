package challenges

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithChallenge(t *testing.T) (*StoreRepository, timex.Date) {
	t.Helper()
	r := NewStoreRepository(recordstore.New(recordstore.NewMemoryBackend()))
	day := timex.Date{Year: 2025, Month: 6, Day: 21}
	require.NoError(t, r.Create(context.Background(), models.DailyChallenge{
		ID: "c1", Date: day, Name: "Solstice", TargetPose: "tree", TargetDuration: 5, RewardXP: 40,
	}))
	return r, day
}

func TestCreate_OnePerDate(t *testing.T) {
	r, day := newRepoWithChallenge(t)

	err := r.Create(context.Background(), models.DailyChallenge{ID: "c2", Date: day})
	require.ErrorIs(t, err, common.ErrChallengeExists)

	c, ok, err := r.ForDate(context.Background(), day)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c1", c.ID)
	assert.NotNil(t, c.Completions)

	_, ok, err = r.ForDate(context.Background(), day.AddDays(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	r, _ := newRepoWithChallenge(t)

	c, err := r.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Solstice", c.Name)

	_, err = r.Get(context.Background(), "c9")
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepoWithChallenge(t)

	c, added, err := r.Complete(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"u1"}, c.Completions)

	c, added, err = r.Complete(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"u1"}, c.Completions)

	c, added, err = r.Complete(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"u1", "u2"}, c.Completions)

	stored, err := r.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, stored.Completions)

	_, _, err = r.Complete(ctx, "c9", "u1")
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
}
