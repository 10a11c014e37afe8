package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Summary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := register(t, f, "alice", "secret1")

	empty, err := f.tracker.Summary(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Level)
	assert.Equal(t, "Beginner", empty.LevelName)
	assert.Zero(t, empty.TotalSessions)

	_, err = f.tracker.TrackSession(ctx, event(a.ID, "tree_pose", 300, 0.9))
	require.NoError(t, err)

	s, err := f.tracker.Summary(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, s.ExperiencePoints)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 1, s.TotalSessions)
	assert.Equal(t, 1, s.PosesLearned)
	assert.Equal(t, 1, s.Achievements)
	require.NotNil(t, s.NextLevelXP)
	assert.Equal(t, 40, *s.NextLevelXP)
}

func TestTracker_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := register(t, f, "alice", "secret1")
	bob := register(t, f, "bob", "secret1")

	_, err := f.tracker.TrackSession(ctx, event(alice.ID, "tree_pose", 300, 0.9))
	require.NoError(t, err)
	_, err = f.tracker.TrackSession(ctx, event(bob.ID, "tree_pose", 600, 1))
	require.NoError(t, err)

	d, err := f.tracker.Dashboard(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, d.TodayChallenge)
	assert.False(t, d.ChallengeDone)
	assert.Equal(t, 2, d.Rank)
	assert.Equal(t, 2, d.RankedUsers)

	c, err := f.engine.CreateChallenge(ctx, models.DailyChallenge{TargetPose: "warrior", RewardXP: 100})
	require.NoError(t, err)
	_, err = f.engine.CompleteChallenge(ctx, alice.ID, c.ID)
	require.NoError(t, err)

	d, err = f.tracker.Dashboard(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, d.TodayChallenge)
	assert.Equal(t, c.ID, d.TodayChallenge.ID)
	assert.True(t, d.ChallengeDone)
	assert.Equal(t, 1, d.Rank)
	assert.Equal(t, 160, d.Summary.ExperiencePoints)
	assert.Equal(t, 2, d.Summary.Level)

	d, err = f.tracker.Dashboard(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, d.ChallengeDone)
	assert.Equal(t, 2, d.Rank)
}

func TestTracker_Leaderboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := register(t, f, "alice", "secret1")

	_, err := f.tracker.TrackSession(ctx, event(alice.ID, "tree_pose", 300, 0.9))
	require.NoError(t, err)
	_, err = f.tracker.TrackSession(ctx, event("orphan", "tree_pose", 60, 0))
	require.NoError(t, err)

	board, err := f.tracker.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "alice", board[0].UserName)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "orphan", board[1].UserName)
	assert.Equal(t, 2, board[1].Rank)
}

func TestTracker_TodayChallenge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, found, _, err := f.tracker.TodayChallenge(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	c, err := f.tracker.CreateChallenge(ctx, models.DailyChallenge{TargetPose: "warrior", RewardXP: 30})
	require.NoError(t, err)

	got, found, done, err := f.tracker.TodayChallenge(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, done)
	assert.Equal(t, c.ID, got.ID)

	_, err = f.tracker.CompleteChallenge(ctx, "u1", c.ID)
	require.NoError(t, err)

	_, _, done, err = f.tracker.TodayChallenge(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, done)
}
