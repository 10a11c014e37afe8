package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/yogatrack/internal/api"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func clientInfo(ctx context.Context) models.ClientInfo {
	var ci models.ClientInfo
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		ci.IP = p.Addr.String()
		if host, _, err := net.SplitHostPort(ci.IP); err == nil {
			ci.IP = host
		}
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			ci.UserAgent = ua[0]
		}
	}
	return ci
}

func (s *GRPCServer) caller(ctx context.Context) (models.Account, error) {
	a, ok := accountFromContext(ctx)
	if !ok {
		return models.Account{}, status.Error(codes.Unauthenticated, "no session")
	}
	return a, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	a, err := s.identity.Register(ctx, services.RegisterRequest{
		UserName:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RegisterResponse{UserID: a.ID, Username: a.UserName}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	sess, err := s.identity.Authenticate(ctx, req.Username, req.Password, clientInfo(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.LoginResponse{SessionID: sess.ID, UserID: sess.UserID, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	if err := s.identity.Revoke(ctx, sessionFromContext(ctx)); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ValidateSession(ctx context.Context, _ *api.Empty) (*api.AccountResponse, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	return &api.AccountResponse{Account: a}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.Empty, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.identity.ChangePassword(ctx, a.ID, req.OldPassword, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.AccountResponse, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := s.identity.UpdateProfile(ctx, a.ID, req.Fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.AccountResponse{Account: updated}, nil
}

func (s *GRPCServer) SubmitSession(ctx context.Context, req *api.SubmitSessionRequest) (*models.SessionResult, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.tracker.TrackSession(ctx, models.SessionEvent{
		UserID:          a.ID,
		PoseName:        req.PoseName,
		DurationSeconds: req.Duration,
		Accuracy:        req.Accuracy,
		Feedback:        req.Feedback,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &res, nil
}

func (s *GRPCServer) GetSummary(ctx context.Context, _ *api.Empty) (*models.Summary, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := s.tracker.Summary(ctx, a.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &sum, nil
}

func (s *GRPCServer) GetDashboard(ctx context.Context, _ *api.Empty) (*models.Dashboard, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.tracker.Dashboard(ctx, a.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &d, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, _ *api.Empty) (*models.Stats, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.tracker.Stats(ctx, a.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &st, nil
}

func (s *GRPCServer) GetLeaderboard(ctx context.Context, req *api.LeaderboardRequest) (*api.LeaderboardResponse, error) {
	board, err := s.tracker.Leaderboard(ctx, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.LeaderboardResponse{Entries: board}, nil
}

func (s *GRPCServer) GetTodayChallenge(ctx context.Context, _ *api.Empty) (*api.TodayChallengeResponse, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, found, done, err := s.tracker.TodayChallenge(ctx, a.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.TodayChallengeResponse{Completed: done}
	if found {
		resp.Challenge = &c
	}
	return resp, nil
}

func (s *GRPCServer) CompleteChallenge(ctx context.Context, req *api.CompleteChallengeRequest) (*models.ChallengeResult, error) {
	a, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.tracker.CompleteChallenge(ctx, a.ID, req.ChallengeID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &res, nil
}

func (s *GRPCServer) CreateChallenge(ctx context.Context, req *api.CreateChallengeRequest) (*models.DailyChallenge, error) {
	c, err := s.tracker.CreateChallenge(ctx, req.Challenge)
	if err != nil {
		return nil, toStatus(err)
	}
	return &c, nil
}

func (s *GRPCServer) SetAccountActive(ctx context.Context, req *api.SetAccountActiveRequest) (*api.AccountResponse, error) {
	a, err := s.identity.SetActive(ctx, req.UserID, req.Active)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.AccountResponse{Account: a}, nil
}

func (s *GRPCServer) Health(ctx context.Context, _ *api.Empty) (*models.Health, error) {
	h, err := s.identity.Health(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &h, nil
}
