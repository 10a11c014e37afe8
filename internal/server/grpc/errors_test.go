package grpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrWeakPassword, codes.InvalidArgument},
		{common.ErrInvalidSessionData, codes.InvalidArgument},
		{common.ErrAccountNotFound, codes.NotFound},
		{common.ErrChallengeNotFound, codes.NotFound},
		{common.ErrDuplicateUsername, codes.AlreadyExists},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{common.ErrAccountDeactivated, codes.PermissionDenied},
		{common.StoreError("read", "accounts", errors.New("boom")), codes.Unavailable},
		{fmt.Errorf("%w: x", common.ErrorInternal), codes.Internal},
		{errors.New("anything"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}

	assert.NoError(t, toStatus(nil))
	st, _ := status.FromError(toStatus(common.StoreError("read", "accounts", errors.New("secret path"))))
	assert.NotContains(t, st.Message(), "secret path")
}
