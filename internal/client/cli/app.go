package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/client/client"
	"github.com/dmitrijs2005/yogatrack/internal/client/config"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

// Client is the server API the commands use. *client.GRPCClient implements
// it.
type Client interface {
	Register(ctx context.Context, userName, email string, password, confirm []byte) error
	Login(ctx context.Context, userName string, password []byte) (time.Time, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	UserName() string
	SubmitSession(ctx context.Context, pose string, seconds int, accuracy float64) (*models.SessionResult, error)
	Summary(ctx context.Context) (*models.Summary, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	TodayChallenge(ctx context.Context) (*models.DailyChallenge, bool, error)
	CompleteChallenge(ctx context.Context, challengeID string) (*models.ChallengeResult, error)
	CreateChallenge(ctx context.Context, c models.DailyChallenge) (*models.DailyChallenge, error)
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	client Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout, c.AdminToken)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) status() string {
	if name := a.client.UserName(); name != "" {
		return "(" + name + ")"
	}
	return ""
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Welcome to YogaTrack CLI (type 'help' for commands)")
	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Server %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}
