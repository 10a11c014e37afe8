package client

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// mapError turns a gRPC status into one of the errors above, or into a
// plain error carrying the server's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return errors.Join(ErrUnauthorized, errors.New(st.Message()))
	case codes.PermissionDenied:
		return errors.Join(ErrForbidden, errors.New(st.Message()))
	default:
		return errors.New(st.Message())
	}
}
