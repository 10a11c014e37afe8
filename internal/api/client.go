package api

import (
	"context"

	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"google.golang.org/grpc"
)

// YogaTrackClient is the client side of the service. Every call is sent
// with the JSON content-subtype.
type YogaTrackClient struct {
	cc grpc.ClientConnInterface
}

func NewYogaTrackClient(cc grpc.ClientConnInterface) *YogaTrackClient {
	return &YogaTrackClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *YogaTrackClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *YogaTrackClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *YogaTrackClient) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, MethodLogout, &Empty{}, opts)
	return err
}

func (c *YogaTrackClient) ValidateSession(ctx context.Context, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodValidateSession, &Empty{}, opts)
}

func (c *YogaTrackClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, MethodChangePassword, in, opts)
	return err
}

func (c *YogaTrackClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *YogaTrackClient) SubmitSession(ctx context.Context, in *SubmitSessionRequest, opts ...grpc.CallOption) (*models.SessionResult, error) {
	return invoke[models.SessionResult](ctx, c.cc, MethodSubmitSession, in, opts)
}

func (c *YogaTrackClient) GetSummary(ctx context.Context, opts ...grpc.CallOption) (*models.Summary, error) {
	return invoke[models.Summary](ctx, c.cc, MethodGetSummary, &Empty{}, opts)
}

func (c *YogaTrackClient) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*models.Dashboard, error) {
	return invoke[models.Dashboard](ctx, c.cc, MethodGetDashboard, &Empty{}, opts)
}

func (c *YogaTrackClient) GetStats(ctx context.Context, opts ...grpc.CallOption) (*models.Stats, error) {
	return invoke[models.Stats](ctx, c.cc, MethodGetStats, &Empty{}, opts)
}

func (c *YogaTrackClient) GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardResponse](ctx, c.cc, MethodGetLeaderboard, in, opts)
}

func (c *YogaTrackClient) GetTodayChallenge(ctx context.Context, opts ...grpc.CallOption) (*TodayChallengeResponse, error) {
	return invoke[TodayChallengeResponse](ctx, c.cc, MethodGetTodayChallenge, &Empty{}, opts)
}

func (c *YogaTrackClient) CompleteChallenge(ctx context.Context, in *CompleteChallengeRequest, opts ...grpc.CallOption) (*models.ChallengeResult, error) {
	return invoke[models.ChallengeResult](ctx, c.cc, MethodCompleteChallenge, in, opts)
}

func (c *YogaTrackClient) CreateChallenge(ctx context.Context, in *CreateChallengeRequest, opts ...grpc.CallOption) (*models.DailyChallenge, error) {
	return invoke[models.DailyChallenge](ctx, c.cc, MethodCreateChallenge, in, opts)
}

func (c *YogaTrackClient) SetAccountActive(ctx context.Context, in *SetAccountActiveRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodSetAccountActive, in, opts)
}

func (c *YogaTrackClient) Health(ctx context.Context, opts ...grpc.CallOption) (*models.Health, error) {
	return invoke[models.Health](ctx, c.cc, MethodHealth, &Empty{}, opts)
}
