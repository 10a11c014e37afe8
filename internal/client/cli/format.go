package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

func printSessionResult(w io.Writer, r *models.SessionResult) {
	fmt.Fprintf(w, "+%d XP (total %d), streak %d day(s)\n", r.XPGained, r.TotalXP, r.CurrentStreak)
	if r.NewLevel != nil {
		fmt.Fprintf(w, "Level up! You are now level %d (%s)\n", *r.NewLevel, models.LevelInfo(*r.NewLevel).Name)
	}
	if len(r.NewAchievements) > 0 {
		fmt.Fprintf(w, "New achievements: %s\n", strings.Join(r.NewAchievements, ", "))
	}
}

func nextLevel(gap *int) string {
	if gap == nil {
		return "max level reached"
	}
	return fmt.Sprintf("%d XP to next level", *gap)
}

func printSummary(w io.Writer, s *models.Summary) {
	fmt.Fprintf(w, "Level:        %d (%s), %s\n", s.Level, s.LevelName, nextLevel(s.NextLevelXP))
	fmt.Fprintf(w, "XP:           %d\n", s.ExperiencePoints)
	fmt.Fprintf(w, "Streak:       %d (longest %d)\n", s.CurrentStreak, s.LongestStreak)
	fmt.Fprintf(w, "Sessions:     %d\n", s.TotalSessions)
	fmt.Fprintf(w, "Poses:        %d\n", s.PosesLearned)
	fmt.Fprintf(w, "Achievements: %d\n", s.Achievements)
}

func printStats(w io.Writer, s *models.Stats) {
	fmt.Fprintf(w, "Level:            %d (%s), %s\n", s.LevelInfo.Level, s.LevelInfo.Name, nextLevel(s.NextLevelXP))
	fmt.Fprintf(w, "Practice time:    %d min\n", s.Progress.TotalPracticeMinutes)
	fmt.Fprintf(w, "Recent sessions:  %d, average accuracy %.0f%%\n", s.RecentSessions, s.AverageAccuracy*100)
	if s.FavoritePose != "" {
		fmt.Fprintf(w, "Favourite pose:   %s\n", s.FavoritePose)
	}
	fmt.Fprintf(w, "This week:        %d session(s), %d min, %d pose(s)\n", s.Weekly.Sessions, s.Weekly.Minutes, s.Weekly.Poses)
	fmt.Fprintf(w, "Achievements:     %d of %d\n", len(s.Achievements), s.AvailableAchievements)
}

// printLeaderboard marks the row of the current user with '*'.
func printLeaderboard(w io.Writer, entries []models.LeaderboardEntry, me string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nobody has practised yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tUSER\tXP\tLEVEL\tSTREAK\t")
	for _, e := range entries {
		name := e.UserName
		if name == me {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t\n", e.Rank, name, e.TotalXP, e.Level, e.CurrentStreak)
	}
	tw.Flush()
}

func printChallenge(w io.Writer, c *models.DailyChallenge, done bool) {
	if c == nil {
		fmt.Fprintln(w, "There is no challenge today.")
		return
	}
	state := "open"
	if done {
		state = "completed"
	}
	fmt.Fprintf(w, "Today's challenge: %s [%s]\n", c.Name, state)
	if c.Description != "" {
		fmt.Fprintln(w, c.Description)
	}
	fmt.Fprintf(w, "Hold %s for %d s, reward %d XP\n", c.TargetPose, c.TargetDuration, c.RewardXP)
}
