package achievements

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	backend := recordstore.NewMemoryBackend()
	r := NewStoreRepository(recordstore.New(backend))

	raw, err := backend.Read(ctx, recordstore.Achievements)
	require.NoError(t, err)
	assert.Nil(t, raw)

	got, err := r.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "first_session", got[0].ID)

	raw, err = backend.Read(ctx, recordstore.Achievements)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	again, err := r.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAward_AtMostOncePerUser(t *testing.T) {
	ctx := context.Background()
	r := NewStoreRepository(recordstore.New(recordstore.NewMemoryBackend()))
	now := time.Now()

	added, err := r.Award(ctx, []models.UserAchievement{
		{UserID: "u1", AchievementID: "first_session", EarnedAt: now},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_session"}, added)

	added, err = r.Award(ctx, []models.UserAchievement{
		{UserID: "u1", AchievementID: "first_session", EarnedAt: now.Add(time.Hour)},
		{UserID: "u1", AchievementID: "hour_practice", EarnedAt: now.Add(time.Hour)},
		{UserID: "u2", AchievementID: "first_session", EarnedAt: now.Add(time.Hour)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hour_practice", "first_session"}, added)

	earned, err := r.Earned(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, earned, 2)
	assert.Equal(t, "first_session", earned[0].AchievementID)
	assert.True(t, earned[0].EarnedAt.Equal(now))

	added, err = r.Award(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	r := NewStoreRepository(recordstore.New(recordstore.NewMemoryBackend()))
	now := time.Now()

	_, err := r.Award(ctx, []models.UserAchievement{
		{UserID: "u1", AchievementID: "first_session", EarnedAt: now},
		{UserID: "u2", AchievementID: "first_session", EarnedAt: now},
	})
	require.NoError(t, err)

	require.NoError(t, r.Revoke(ctx, "u1", []string{"first_session", "never_earned"}))
	require.NoError(t, r.Revoke(ctx, "u1", nil))

	earned, err := r.Earned(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, earned)

	earned, err = r.Earned(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, earned, 1)

	// a revoked award can be earned again
	added, err := r.Award(ctx, []models.UserAchievement{{UserID: "u1", AchievementID: "first_session", EarnedAt: now}})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_session"}, added)
}
