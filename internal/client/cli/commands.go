package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

// Indirections swapped out in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errUsage = errors.New("usage")

func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.client.Register(ctx, userName, email, password, confirm); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered! You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	expires, err := a.client.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! Session valid until %s.\n", userName, expires.Format("15:04:05"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Submit logs a practice session: submit <pose> <seconds> <accuracy>.
// Accuracy is a fraction in [0, 1] or a percentage such as 85%.
func (a *App) Submit(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: submit <pose> <seconds> <accuracy>", errUsage)
	}
	seconds, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid seconds %q", args[1])
	}
	accuracy, err := parseAccuracy(args[2])
	if err != nil {
		return err
	}

	res, err := a.client.SubmitSession(ctx, args[0], seconds, accuracy)
	if err != nil {
		return err
	}
	printSessionResult(a.out, res)
	return nil
}

func parseAccuracy(s string) (float64, error) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid accuracy %q", s)
	}
	if pct {
		v /= 100
	}
	return v, nil
}

func (a *App) Summary(ctx context.Context) error {
	s, err := a.client.Summary(ctx)
	if err != nil {
		return err
	}
	printSummary(a.out, s)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	printSummary(a.out, &d.Summary)
	if d.Rank > 0 {
		fmt.Fprintf(a.out, "Rank:         #%d of %d\n", d.Rank, d.RankedUsers)
	}
	printChallenge(a.out, d.TodayChallenge, d.ChallengeDone)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(a.out, s)
	return nil
}

// Leaderboard prints the top users: leaderboard [n].
func (a *App) Leaderboard(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: leaderboard [n]", errUsage)
		}
		limit = n
	}
	entries, err := a.client.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}
	printLeaderboard(a.out, entries, a.client.UserName())
	return nil
}

func (a *App) Challenge(ctx context.Context) error {
	c, done, err := a.client.TodayChallenge(ctx)
	if err != nil {
		return err
	}
	printChallenge(a.out, c, done)
	return nil
}

// Complete marks today's challenge as done.
func (a *App) Complete(ctx context.Context) error {
	c, _, err := a.client.TodayChallenge(ctx)
	if err != nil {
		return err
	}
	if c == nil {
		fmt.Fprintln(a.out, "There is no challenge today.")
		return nil
	}

	res, err := a.client.CompleteChallenge(ctx, c.ID)
	if err != nil {
		return err
	}
	if res.AlreadyCompleted {
		fmt.Fprintln(a.out, "You have already completed today's challenge.")
		return nil
	}
	fmt.Fprintf(a.out, "Challenge completed! +%d XP (total %d)\n", res.XPGained, res.TotalXP)
	if res.NewLevel != nil {
		fmt.Fprintf(a.out, "Level up! You are now level %d (%s)\n", *res.NewLevel, models.LevelInfo(*res.NewLevel).Name)
	}
	return nil
}

// NewChallenge sets today's challenge: newchallenge <pose> <seconds> <xp>.
// It needs the admin token.
func (a *App) NewChallenge(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: newchallenge <pose> <seconds> <xp>", errUsage)
	}
	seconds, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid seconds %q", args[1])
	}
	xp, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid xp %q", args[2])
	}

	c, err := a.client.CreateChallenge(ctx, models.DailyChallenge{
		TargetPose:     args[0],
		TargetDuration: seconds,
		RewardXP:       xp,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Challenge %q created for %s.\n", c.Name, c.Date)
	return nil
}
