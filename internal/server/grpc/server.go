// Package grpc exposes the identity service and the progress tracker over
// gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/yogatrack/internal/api"
	"github.com/dmitrijs2005/yogatrack/internal/logging"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Identity is the part of services.IdentityService the transport uses.
type Identity interface {
	Register(ctx context.Context, req services.RegisterRequest) (models.Account, error)
	Authenticate(ctx context.Context, userName, password string, client models.ClientInfo) (models.Session, error)
	Validate(ctx context.Context, sessionID string) (models.Account, error)
	Revoke(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, fields map[string]string) (models.Account, error)
	SetActive(ctx context.Context, userID string, active bool) (models.Account, error)
	Health(ctx context.Context) (models.Health, error)
}

// Tracker is the part of services.Tracker the transport uses.
type Tracker interface {
	TrackSession(ctx context.Context, ev models.SessionEvent) (models.SessionResult, error)
	Summary(ctx context.Context, userID string) (models.Summary, error)
	Dashboard(ctx context.Context, userID string) (models.Dashboard, error)
	Stats(ctx context.Context, userID string) (models.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	TodayChallenge(ctx context.Context, userID string) (models.DailyChallenge, bool, bool, error)
	CompleteChallenge(ctx context.Context, userID, challengeID string) (models.ChallengeResult, error)
	CreateChallenge(ctx context.Context, c models.DailyChallenge) (models.DailyChallenge, error)
}

type GRPCServer struct {
	address    string
	identity   Identity
	tracker    Tracker
	logger     logging.Logger
	adminToken string
}

var _ api.YogaTrackServer = (*GRPCServer)(nil)

// NewGRPCServer builds the server. An empty adminToken disables the admin
// methods.
func NewGRPCServer(address string, l logging.Logger, identity Identity, tracker Tracker, adminToken string) *GRPCServer {
	return &GRPCServer{
		address:    address,
		identity:   identity,
		tracker:    tracker,
		logger:     l.With("module", "grpc_server"),
		adminToken: adminToken,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authInterceptor))
	api.RegisterYogaTrackServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
