package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/logging"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"github.com/google/uuid"
)

// XP rules.
const (
	baseXP          = 10
	accuracyXPScale = 20
	streakXPPerDay  = 2
	maxStreakXP     = 20
	newPoseXP       = 25

	statsWindow         = 100
	defaultLeaderboard  = 10
	weeklyWindow        = 7 * 24 * time.Hour
	feedbackTotalKey    = "total"
	feedbackPositiveKey = "positive"
)

// ProgressEngine is the only writer of progress records and achievement
// awards. All work for one user is serialised by a per-user lock.
type ProgressEngine struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
	users       *keyedMutex
}

func NewProgressEngine(m repomanager.RepositoryManager, opts ...Option) *ProgressEngine {
	o := buildOptions(opts)
	return &ProgressEngine{
		repomanager: m,
		log:         o.log.With("service", "progress"),
		now:         o.now,
		users:       newKeyedMutex(),
	}
}

func validateEvent(ev models.SessionEvent) error {
	switch {
	case ev.UserID == "":
		return fmt.Errorf("%w: user id is required", common.ErrInvalidSessionData)
	case ev.PoseName == "":
		return fmt.Errorf("%w: pose name is required", common.ErrInvalidSessionData)
	case ev.DurationSeconds < 0:
		return fmt.Errorf("%w: duration must not be negative", common.ErrInvalidSessionData)
	case math.IsNaN(ev.Accuracy) || ev.Accuracy < 0 || ev.Accuracy > 1:
		return fmt.Errorf("%w: accuracy must be within [0, 1]", common.ErrInvalidSessionData)
	}
	return nil
}

// ProcessSession logs a completed practice session and updates the user's
// progress: totals, streak, XP, level and achievements. Every read happens
// before the first write, so a failed read leaves nothing behind. Writes go
// log, awards, progress; when a later write fails the earlier ones are undone.
func (e *ProgressEngine) ProcessSession(ctx context.Context, ev models.SessionEvent) (models.SessionResult, error) {
	if err := validateEvent(ev); err != nil {
		return models.SessionResult{}, err
	}

	unlock := e.users.Lock(ev.UserID)
	defer unlock()

	now := e.now()
	p, err := e.loadProgress(ctx, ev.UserID, now)
	if err != nil {
		return models.SessionResult{}, err
	}
	catalog, err := e.repomanager.Achievements().Catalog(ctx)
	if err != nil {
		return models.SessionResult{}, err
	}
	earned, err := e.repomanager.Achievements().Earned(ctx, ev.UserID)
	if err != nil {
		return models.SessionResult{}, err
	}

	entry := newPracticeSession(ev, now)

	// totals
	today := timex.DateOf(now)
	previous := p.LastPracticeDate
	p.TotalSessions++
	p.TotalPracticeMinutes += ev.DurationSeconds / 60
	newPose := p.Learn(ev.PoseName)
	if previous.IsZero() || today.DaysSince(previous) >= 0 {
		p.LastPracticeDate = today
	}

	advanceStreak(&p, previous, today)

	xp := sessionXP(ev.DurationSeconds, ev.Accuracy, p.CurrentStreak, newPose)
	p.ExperiencePoints += xp

	var newLevel *int
	if l := models.LevelForXP(p.ExperiencePoints); l > p.Level {
		p.Level = l
		newLevel = &l
	}

	awards := evaluateAchievements(catalog, earned, p, now)
	p.UpdatedAt = now

	if err := e.repomanager.Practice().Append(ctx, entry); err != nil {
		return models.SessionResult{}, err
	}
	added, err := e.repomanager.Achievements().Award(ctx, awards)
	if err != nil {
		e.rollback(ctx, entry, nil)
		return models.SessionResult{}, err
	}
	if err := e.repomanager.Progress().Save(ctx, p); err != nil {
		e.rollback(ctx, entry, added)
		return models.SessionResult{}, err
	}

	if added == nil {
		added = []string{}
	}
	res := models.SessionResult{
		XPGained:        xp,
		NewLevel:        newLevel,
		NewAchievements: added,
		CurrentStreak:   p.CurrentStreak,
		TotalXP:         p.ExperiencePoints,
	}

	e.log.Info(ctx, "session processed", "user_id", ev.UserID, "pose", ev.PoseName,
		"xp_gained", xp, "total_xp", p.ExperiencePoints, "streak", p.CurrentStreak)
	if newLevel != nil {
		e.log.Info(ctx, "level up", "user_id", ev.UserID, "level", *newLevel)
	}
	for _, id := range added {
		e.log.Info(ctx, "achievement awarded", "user_id", ev.UserID, "achievement_id", id)
	}
	return res, nil
}

// rollback undoes the log entry and awards of a session whose later writes
// failed. It runs even if ctx is already cancelled.
func (e *ProgressEngine) rollback(ctx context.Context, entry models.PracticeSession, awarded []string) {
	ctx = context.WithoutCancel(ctx)
	if err := e.repomanager.Achievements().Revoke(ctx, entry.UserID, awarded); err != nil {
		e.log.Error(ctx, "rollback of awards failed", "user_id", entry.UserID, "achievements", awarded, "error", err)
	}
	if err := e.repomanager.Practice().Remove(ctx, entry.ID); err != nil {
		e.log.Error(ctx, "rollback of practice log failed", "user_id", entry.UserID, "session_id", entry.ID, "error", err)
	}
}

func newPracticeSession(ev models.SessionEvent, now time.Time) models.PracticeSession {
	feedback := make(map[string]int, len(ev.Feedback))
	for k, v := range ev.Feedback {
		feedback[k] = v
	}
	attempts, ok := feedback[feedbackTotalKey]
	if !ok {
		attempts = 1
	}
	return models.PracticeSession{
		ID:                 uuid.NewString(),
		UserID:             ev.UserID,
		PoseName:           ev.PoseName,
		StartTime:          now.Add(-time.Duration(ev.DurationSeconds) * time.Second),
		EndTime:            now,
		DurationSeconds:    ev.DurationSeconds,
		AccuracyScore:      ev.Accuracy,
		Attempts:           attempts,
		SuccessfulAttempts: feedback[feedbackPositiveKey],
		Feedback:           feedback,
	}
}

// advanceStreak compares the previous practice day with today: the same day
// keeps the streak, the day before extends it, anything else restarts it.
// A previous day in the future (clock moved back) counts as the same day.
func advanceStreak(p *models.ProgressRecord, previous, today timex.Date) {
	switch {
	case previous.IsZero():
		p.CurrentStreak = 1
	case today.DaysSince(previous) <= 0:
		if p.CurrentStreak == 0 {
			p.CurrentStreak = 1
		}
	case today.DaysSince(previous) == 1:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
}

// sessionXP uses the streak after it was advanced for this session. The
// accuracy bonus rounds half to even.
func sessionXP(durationSeconds int, accuracy float64, streak int, newPose bool) int {
	xp := baseXP
	xp += durationSeconds / 60
	xp += int(math.RoundToEven(accuracy * accuracyXPScale))
	xp += min(streak*streakXPPerDay, maxStreakXP)
	if newPose {
		xp += newPoseXP
	}
	return xp
}

func evaluateAchievements(catalog []models.Achievement, earned []models.UserAchievement, p models.ProgressRecord, now time.Time) []models.UserAchievement {
	have := make(map[string]struct{}, len(earned))
	for _, ua := range earned {
		have[ua.AchievementID] = struct{}{}
	}

	var awards []models.UserAchievement
	for _, a := range catalog {
		if _, ok := have[a.ID]; ok {
			continue
		}
		if requirementsMet(a.Requirements, p) {
			awards = append(awards, models.UserAchievement{UserID: p.UserID, AchievementID: a.ID, EarnedAt: now})
		}
	}
	return awards
}

// requirementsMet reports whether every metric reaches its threshold.
// Unknown metrics never do.
func requirementsMet(req map[string]int, p models.ProgressRecord) bool {
	for metric, target := range req {
		var v int
		switch metric {
		case models.MetricSessions:
			v = p.TotalSessions
		case models.MetricStreak:
			v = p.CurrentStreak
		case models.MetricLongestStreak:
			v = p.LongestStreak
		case models.MetricPosesLearned:
			v = len(p.PosesLearned)
		case models.MetricTotalTime:
			v = p.TotalPracticeMinutes
		default:
			return false
		}
		if v < target {
			return false
		}
	}
	return true
}

// loadProgress returns a private copy of the user's record or a fresh one.
func (e *ProgressEngine) loadProgress(ctx context.Context, userID string, now time.Time) (models.ProgressRecord, error) {
	p, ok, err := e.repomanager.Progress().Get(ctx, userID)
	if err != nil {
		return models.ProgressRecord{}, err
	}
	if !ok {
		return models.NewProgressRecord(userID, now), nil
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p.Clone(), nil
}

// Progress returns the user's record, creating and storing it on first
// access.
func (e *ProgressEngine) Progress(ctx context.Context, userID string) (models.ProgressRecord, error) {
	unlock := e.users.Lock(userID)
	defer unlock()

	p, ok, err := e.repomanager.Progress().Get(ctx, userID)
	if err != nil {
		return models.ProgressRecord{}, err
	}
	if ok {
		return p, nil
	}

	p = models.NewProgressRecord(userID, e.now())
	if err := e.repomanager.Progress().Save(ctx, p); err != nil {
		return models.ProgressRecord{}, err
	}
	return p, nil
}

// Sessions returns the user's latest practice sessions, newest first.
func (e *ProgressEngine) Sessions(ctx context.Context, userID string, limit int) ([]models.PracticeSession, error) {
	return e.repomanager.Practice().ListByUser(ctx, userID, limit)
}

func (e *ProgressEngine) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return e.repomanager.Achievements().Catalog(ctx)
}

func (e *ProgressEngine) UserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	return e.repomanager.Achievements().Earned(ctx, userID)
}

// Stats computes the detailed statistics over the user's last 100 sessions.
func (e *ProgressEngine) Stats(ctx context.Context, userID string) (models.Stats, error) {
	p, err := e.Progress(ctx, userID)
	if err != nil {
		return models.Stats{}, err
	}
	sessions, err := e.repomanager.Practice().ListByUser(ctx, userID, statsWindow)
	if err != nil {
		return models.Stats{}, err
	}
	catalog, err := e.repomanager.Achievements().Catalog(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	earned, err := e.repomanager.Achievements().Earned(ctx, userID)
	if err != nil {
		return models.Stats{}, err
	}
	if earned == nil {
		earned = []models.UserAchievement{}
	}

	return models.Stats{
		Progress:              p,
		RecentSessions:        len(sessions),
		AverageAccuracy:       averageAccuracy(sessions),
		FavoritePose:          favoritePose(sessions),
		Weekly:                weeklyStats(sessions, e.now()),
		Achievements:          earned,
		AvailableAchievements: len(catalog),
		LevelInfo:             models.LevelInfo(p.Level),
		NextLevelXP:           models.NextLevelXP(p.ExperiencePoints),
	}, nil
}

// averageAccuracy is rounded to two decimals; 0 without sessions.
func averageAccuracy(sessions []models.PracticeSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sessions {
		sum += s.AccuracyScore
	}
	return math.Round(sum/float64(len(sessions))*100) / 100
}

// favoritePose is the most practised pose; ties go to the alphabetically
// first name.
func favoritePose(sessions []models.PracticeSession) string {
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.PoseName]++
	}
	var (
		best  string
		count int
	)
	for pose, n := range counts {
		if n > count || (n == count && pose < best) {
			best, count = pose, n
		}
	}
	return best
}

func weeklyStats(sessions []models.PracticeSession, now time.Time) models.WeeklyStats {
	since := now.Add(-weeklyWindow)
	poses := make(map[string]struct{})
	var (
		ws      models.WeeklyStats
		seconds int
	)
	for _, s := range sessions {
		if s.StartTime.Before(since) {
			continue
		}
		ws.Sessions++
		seconds += s.DurationSeconds
		poses[s.PoseName] = struct{}{}
	}
	ws.Minutes = seconds / 60
	ws.Poses = len(poses)
	return ws
}

// Leaderboard ranks users by XP, highest first. Equal XP keeps the order in
// which the records were created. limit <= 0 means 10.
func (e *ProgressEngine) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboard
	}
	records, err := e.repomanager.Progress().List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ExperiencePoints > records[j].ExperiencePoints
	})
	if len(records) > limit {
		records = records[:limit]
	}

	out := make([]models.LeaderboardEntry, len(records))
	for i, p := range records {
		out[i] = models.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        p.UserID,
			TotalXP:       p.ExperiencePoints,
			Level:         p.Level,
			CurrentStreak: p.CurrentStreak,
		}
	}
	return out, nil
}
