package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

// dashboardRankWindow is how deep Dashboard looks for the user's rank.
const dashboardRankWindow = 100

// AccountLookup resolves user ids to display names.
type AccountLookup interface {
	LookupUserName(ctx context.Context, userID string) (string, error)
}

// Tracker turns practice events into engine calls and builds the read-only
// views shown to users. It holds no state of its own.
type Tracker struct {
	engine   *ProgressEngine
	accounts AccountLookup
}

func NewTracker(engine *ProgressEngine, accounts AccountLookup) *Tracker {
	return &Tracker{engine: engine, accounts: accounts}
}

// TrackSession forwards a completed practice session to the engine.
func (t *Tracker) TrackSession(ctx context.Context, ev models.SessionEvent) (models.SessionResult, error) {
	return t.engine.ProcessSession(ctx, ev)
}

func (t *Tracker) Summary(ctx context.Context, userID string) (models.Summary, error) {
	p, err := t.engine.Progress(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}
	earned, err := t.engine.UserAchievements(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}

	return models.Summary{
		Level:            p.Level,
		LevelName:        models.LevelInfo(p.Level).Name,
		ExperiencePoints: p.ExperiencePoints,
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		TotalSessions:    p.TotalSessions,
		PosesLearned:     len(p.PosesLearned),
		Achievements:     len(earned),
		NextLevelXP:      models.NextLevelXP(p.ExperiencePoints),
	}, nil
}

func (t *Tracker) Stats(ctx context.Context, userID string) (models.Stats, error) {
	return t.engine.Stats(ctx, userID)
}

// Dashboard adds today's challenge and the user's leaderboard position to
// the summary.
func (t *Tracker) Dashboard(ctx context.Context, userID string) (models.Dashboard, error) {
	summary, err := t.Summary(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}

	d := models.Dashboard{Summary: summary}

	c, ok, err := t.engine.TodayChallenge(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	if ok {
		d.TodayChallenge = &c
		d.ChallengeDone = c.CompletedBy(userID)
	}

	board, err := t.engine.Leaderboard(ctx, dashboardRankWindow)
	if err != nil {
		return models.Dashboard{}, err
	}
	d.RankedUsers = len(board)
	for _, e := range board {
		if e.UserID == userID {
			d.Rank = e.Rank
			break
		}
	}
	return d, nil
}

// Leaderboard returns the top users with their usernames. Users whose
// account is gone are shown by id.
func (t *Tracker) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	board, err := t.engine.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range board {
		name, err := t.accounts.LookupUserName(ctx, board[i].UserID)
		switch {
		case err == nil:
			board[i].UserName = name
		case errors.Is(err, common.ErrorNotFound):
			board[i].UserName = board[i].UserID
		default:
			return nil, err
		}
	}
	return board, nil
}

// TodayChallenge reports today's challenge and whether userID completed it.
// found is false when no challenge is set.
func (t *Tracker) TodayChallenge(ctx context.Context, userID string) (c models.DailyChallenge, found, completed bool, err error) {
	c, found, err = t.engine.TodayChallenge(ctx)
	if err != nil || !found {
		return models.DailyChallenge{}, false, false, err
	}
	return c, true, c.CompletedBy(userID), nil
}

func (t *Tracker) CompleteChallenge(ctx context.Context, userID, challengeID string) (models.ChallengeResult, error) {
	return t.engine.CompleteChallenge(ctx, userID, challengeID)
}

func (t *Tracker) CreateChallenge(ctx context.Context, c models.DailyChallenge) (models.DailyChallenge, error) {
	return t.engine.CreateChallenge(ctx, c)
}
