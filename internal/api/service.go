package api

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"google.golang.org/grpc"
)

const ServiceName = "yogatrack.v1.YogaTrack"

const (
	MethodRegister          = "Register"
	MethodLogin             = "Login"
	MethodLogout            = "Logout"
	MethodValidateSession   = "ValidateSession"
	MethodChangePassword    = "ChangePassword"
	MethodUpdateProfile     = "UpdateProfile"
	MethodSubmitSession     = "SubmitSession"
	MethodGetSummary        = "GetSummary"
	MethodGetDashboard      = "GetDashboard"
	MethodGetStats          = "GetStats"
	MethodGetLeaderboard    = "GetLeaderboard"
	MethodGetTodayChallenge = "GetTodayChallenge"
	MethodCompleteChallenge = "CompleteChallenge"
	MethodCreateChallenge   = "CreateChallenge"
	MethodSetAccountActive  = "SetAccountActive"
	MethodHealth            = "Health"
)

// FullMethod returns the "/service/method" path gRPC routes on.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// YogaTrackServer is implemented by the server side of the service.
type YogaTrackServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	ValidateSession(context.Context, *Empty) (*AccountResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*AccountResponse, error)
	SubmitSession(context.Context, *SubmitSessionRequest) (*models.SessionResult, error)
	GetSummary(context.Context, *Empty) (*models.Summary, error)
	GetDashboard(context.Context, *Empty) (*models.Dashboard, error)
	GetStats(context.Context, *Empty) (*models.Stats, error)
	GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	GetTodayChallenge(context.Context, *Empty) (*TodayChallengeResponse, error)
	CompleteChallenge(context.Context, *CompleteChallengeRequest) (*models.ChallengeResult, error)
	CreateChallenge(context.Context, *CreateChallengeRequest) (*models.DailyChallenge, error)
	SetAccountActive(context.Context, *SetAccountActiveRequest) (*AccountResponse, error)
	Health(context.Context, *Empty) (*models.Health, error)
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*YogaTrackServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, YogaTrackServer.Register),
		unary(MethodLogin, YogaTrackServer.Login),
		unary(MethodLogout, YogaTrackServer.Logout),
		unary(MethodValidateSession, YogaTrackServer.ValidateSession),
		unary(MethodChangePassword, YogaTrackServer.ChangePassword),
		unary(MethodUpdateProfile, YogaTrackServer.UpdateProfile),
		unary(MethodSubmitSession, YogaTrackServer.SubmitSession),
		unary(MethodGetSummary, YogaTrackServer.GetSummary),
		unary(MethodGetDashboard, YogaTrackServer.GetDashboard),
		unary(MethodGetStats, YogaTrackServer.GetStats),
		unary(MethodGetLeaderboard, YogaTrackServer.GetLeaderboard),
		unary(MethodGetTodayChallenge, YogaTrackServer.GetTodayChallenge),
		unary(MethodCompleteChallenge, YogaTrackServer.CompleteChallenge),
		unary(MethodCreateChallenge, YogaTrackServer.CreateChallenge),
		unary(MethodSetAccountActive, YogaTrackServer.SetAccountActive),
		unary(MethodHealth, YogaTrackServer.Health),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "yogatrack/v1",
}

// RegisterYogaTrackServer attaches srv to s.
func RegisterYogaTrackServer(s grpc.ServiceRegistrar, srv YogaTrackServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(YogaTrackServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(YogaTrackServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(YogaTrackServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
