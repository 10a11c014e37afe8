package grpc

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/api"
	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	accountKey ctxKey = "account"
	sessionKey ctxKey = "session_id"
)

type access int

const (
	accessPublic access = iota
	accessSession
	accessAdmin
)

var methodAccess = map[string]access{
	api.FullMethod(api.MethodLogout):            accessSession,
	api.FullMethod(api.MethodValidateSession):   accessSession,
	api.FullMethod(api.MethodChangePassword):    accessSession,
	api.FullMethod(api.MethodUpdateProfile):     accessSession,
	api.FullMethod(api.MethodSubmitSession):     accessSession,
	api.FullMethod(api.MethodGetSummary):        accessSession,
	api.FullMethod(api.MethodGetDashboard):      accessSession,
	api.FullMethod(api.MethodGetStats):          accessSession,
	api.FullMethod(api.MethodGetLeaderboard):    accessSession,
	api.FullMethod(api.MethodGetTodayChallenge): accessSession,
	api.FullMethod(api.MethodCompleteChallenge): accessSession,
	api.FullMethod(api.MethodCreateChallenge):   accessAdmin,
	api.FullMethod(api.MethodSetAccountActive):  accessAdmin,
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// authInterceptor resolves the session of identity-gated calls and checks the
// admin token of back-office calls. The caller's account is put into the
// context; handlers never trust a user id from the request body.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	switch methodAccess[info.FullMethod] {
	case accessSession:
		token := firstMetadata(ctx, common.SessionHeaderName)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing session")
		}
		a, err := s.identity.Validate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrAccountDeactivated):
				return nil, status.Error(codes.PermissionDenied, err.Error())
			case errors.Is(err, common.ErrorNotFound):
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
			return nil, toStatus(err)
		}
		ctx = context.WithValue(ctx, accountKey, a)
		ctx = context.WithValue(ctx, sessionKey, token)

	case accessAdmin:
		if s.adminToken == "" {
			return nil, status.Error(codes.PermissionDenied, "admin methods are disabled")
		}
		token := firstMetadata(ctx, common.AdminTokenHeaderName)
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid admin token")
		}
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "request", args...)
	case codes.Internal, codes.Unavailable:
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "request rejected", args...)
	}
	return resp, err
}

// accountFromContext returns the account the interceptor resolved.
func accountFromContext(ctx context.Context) (models.Account, bool) {
	a, ok := ctx.Value(accountKey).(models.Account)
	return a, ok
}

func sessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
