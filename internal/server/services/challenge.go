package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"github.com/google/uuid"
)

// CreateChallenge stores the challenge of one calendar day. A zero Date
// means today; an empty ID is generated.
func (e *ProgressEngine) CreateChallenge(ctx context.Context, c models.DailyChallenge) (models.DailyChallenge, error) {
	switch {
	case c.TargetPose == "":
		return models.DailyChallenge{}, fmt.Errorf("%w: target pose is required", common.ErrorValidation)
	case c.TargetDuration < 0 || c.RewardXP < 0:
		return models.DailyChallenge{}, fmt.Errorf("%w: target duration and reward must not be negative", common.ErrorValidation)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Date.IsZero() {
		c.Date = timex.DateOf(e.now())
	}
	if c.Name == "" {
		c.Name = "Daily " + c.TargetPose
	}
	c.Completions = []string{}

	if err := e.repomanager.Challenges().Create(ctx, c); err != nil {
		return models.DailyChallenge{}, err
	}
	e.log.Info(ctx, "challenge created", "challenge_id", c.ID, "date", c.Date.String(), "pose", c.TargetPose)
	return c, nil
}

// TodayChallenge reports false when no challenge exists for today.
func (e *ProgressEngine) TodayChallenge(ctx context.Context) (models.DailyChallenge, bool, error) {
	return e.repomanager.Challenges().ForDate(ctx, timex.DateOf(e.now()))
}

// CompleteChallenge records the user's completion and credits the reward
// once. Completing again is a no-op. The level is recomputed after the
// credit, the same way ProcessSession does it.
//
// The completion is stored before the XP. If the XP write fails the user
// keeps the completion without the reward, so the reward is never paid
// twice.
func (e *ProgressEngine) CompleteChallenge(ctx context.Context, userID, challengeID string) (models.ChallengeResult, error) {
	unlock := e.users.Lock(userID)
	defer unlock()

	res := models.ChallengeResult{ChallengeID: challengeID}

	c, added, err := e.repomanager.Challenges().Complete(ctx, challengeID, userID)
	if err != nil {
		return models.ChallengeResult{}, err
	}

	now := e.now()
	p, err := e.loadProgress(ctx, userID, now)
	if err != nil {
		return models.ChallengeResult{}, err
	}
	if !added {
		res.AlreadyCompleted = true
		res.TotalXP = p.ExperiencePoints
		return res, nil
	}

	p.ExperiencePoints += c.RewardXP
	if l := models.LevelForXP(p.ExperiencePoints); l > p.Level {
		p.Level = l
		res.NewLevel = &l
	}
	p.UpdatedAt = now
	if err := e.repomanager.Progress().Save(ctx, p); err != nil {
		e.log.Error(ctx, "challenge reward lost", "user_id", userID, "challenge_id", challengeID, "error", err)
		return models.ChallengeResult{}, err
	}

	res.XPGained = c.RewardXP
	res.TotalXP = p.ExperiencePoints
	e.log.Info(ctx, "challenge completed", "user_id", userID, "challenge_id", challengeID, "xp_gained", c.RewardXP)
	return res, nil
}
