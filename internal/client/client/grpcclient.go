package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/api"
	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	conn       *grpc.ClientConn
	client     *api.YogaTrackClient
	timeout    time.Duration
	adminToken string

	mu        sync.RWMutex
	sessionID string
	userName  string
}

// NewGRPCClient connects lazily to endpoint. opts are appended to the
// default dial options.
func NewGRPCClient(endpoint string, timeout time.Duration, adminToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{timeout: timeout, adminToken: adminToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.sessionInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewYogaTrackClient(conn)
	return c, nil
}

func withSession(ctx context.Context, sessionID string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionHeaderName, sessionID)
	return metadata.NewOutgoingContext(ctx, md)
}

// sessionInterceptor attaches the current session and forgets it once the
// server rejects it.
func (c *GRPCClient) sessionInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	sessionID := c.session()
	if sessionID != "" {
		ctx = withSession(ctx, sessionID)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if sessionID != "" && method != api.FullMethod(api.MethodLogin) && errors.Is(mapError(err), ErrUnauthorized) {
		c.setSession("", "")
	}
	return err
}

func (c *GRPCClient) session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

func (c *GRPCClient) setSession(id, userName string) {
	c.mu.Lock()
	c.sessionID, c.userName = id, userName
	c.mu.Unlock()
}

func (c *GRPCClient) LoggedIn() bool {
	return c.session() != ""
}

// UserName is the name of the logged-in user, or "".
func (c *GRPCClient) UserName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userName
}

func (c *GRPCClient) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) requireSession() error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *GRPCClient) Register(ctx context.Context, userName, email string, password, confirm []byte) error {
	ctx, cancel := c.call(ctx)
	defer cancel()

	_, err := c.client.Register(ctx, &api.RegisterRequest{
		Username:        userName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	return mapError(err)
}

func (c *GRPCClient) Login(ctx context.Context, userName string, password []byte) (time.Time, error) {
	ctx, cancel := c.call(ctx)
	defer cancel()

	resp, err := c.client.Login(ctx, &api.LoginRequest{Username: userName, Password: string(password)})
	if err != nil {
		return time.Time{}, mapError(err)
	}
	c.setSession(resp.SessionID, userName)
	return resp.ExpiresAt, nil
}

// Logout revokes the session on the server and forgets it locally even when
// the server cannot be reached.
func (c *GRPCClient) Logout(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	err := c.client.Logout(ctx)
	c.setSession("", "")
	return mapError(err)
}

func (c *GRPCClient) SubmitSession(ctx context.Context, pose string, seconds int, accuracy float64) (*models.SessionResult, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.SubmitSession(ctx, &api.SubmitSessionRequest{PoseName: pose, Duration: seconds, Accuracy: accuracy})
	return res, mapError(err)
}

func (c *GRPCClient) Summary(ctx context.Context) (*models.Summary, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.GetSummary(ctx)
	return res, mapError(err)
}

func (c *GRPCClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.GetDashboard(ctx)
	return res, mapError(err)
}

func (c *GRPCClient) Stats(ctx context.Context) (*models.Stats, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.GetStats(ctx)
	return res, mapError(err)
}

func (c *GRPCClient) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.GetLeaderboard(ctx, &api.LeaderboardRequest{Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return res.Entries, nil
}

// TodayChallenge returns nil when no challenge is set for today.
func (c *GRPCClient) TodayChallenge(ctx context.Context) (*models.DailyChallenge, bool, error) {
	if err := c.requireSession(); err != nil {
		return nil, false, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.GetTodayChallenge(ctx)
	if err != nil {
		return nil, false, mapError(err)
	}
	return res.Challenge, res.Completed, nil
}

func (c *GRPCClient) CompleteChallenge(ctx context.Context, challengeID string) (*models.ChallengeResult, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := c.call(ctx)
	defer cancel()

	res, err := c.client.CompleteChallenge(ctx, &api.CompleteChallengeRequest{ChallengeID: challengeID})
	return res, mapError(err)
}

// CreateChallenge is an admin call authorised by the configured admin token.
func (c *GRPCClient) CreateChallenge(ctx context.Context, ch models.DailyChallenge) (*models.DailyChallenge, error) {
	ctx, cancel := c.call(ctx)
	defer cancel()

	ctx = metadata.AppendToOutgoingContext(ctx, common.AdminTokenHeaderName, c.adminToken)
	res, err := c.client.CreateChallenge(ctx, &api.CreateChallengeRequest{Challenge: ch})
	return res, mapError(err)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := c.call(ctx)
	defer cancel()

	_, err := c.client.Health(ctx)
	return mapError(err)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}
