package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
)

func TestError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.Error
		want int
	}{
		{name: "validation", err: apperr.Validation("bad"), want: http.StatusBadRequest},
		{name: "no token", err: apperr.Unauthorized(apperr.CodeNoToken, "no token", nil), want: http.StatusUnauthorized},
		{name: "invalid credentials", err: apperr.InvalidCredentials(), want: http.StatusUnauthorized},
		{name: "conflict", err: apperr.Conflict(apperr.CodeUserAlreadyExists, "exists", nil), want: http.StatusConflict},
		{name: "not found", err: apperr.NotFound(apperr.CodeUserNotFound, "User not found"), want: http.StatusNotFound},
		{name: "timeout", err: apperr.Timeout(errors.New("deadline")), want: http.StatusGatewayTimeout},
		{name: "internal", err: &apperr.Error{Kind: apperr.KindInternal, Code: apperr.CodeInternal}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestAs_WrappedError(t *testing.T) {
	cause := errors.New("duplicate key")
	wrapped := fmt.Errorf("services.auth.Register: %w", apperr.Conflict(apperr.CodeUserAlreadyExists, "exists", cause))

	appErr, ok := apperr.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, apperr.IsKind(wrapped, apperr.KindConflict))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindNotFound))
}

func TestAs_UntypedError(t *testing.T) {
	_, ok := apperr.As(errors.New("boom"))
	assert.False(t, ok)
}

func TestInvalidCredentials_AlwaysSame(t *testing.T) {
	first := apperr.InvalidCredentials()
	second := apperr.InvalidCredentials()

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Error(), second.Error())
}
