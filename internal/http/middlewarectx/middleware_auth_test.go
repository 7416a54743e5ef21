package middlewarectx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	services "github.com/magabrotheeeer/auth-service/internal/services/auth"
)

// Mock for TokenValidator
type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		token          string
		mockID         string
		mockErr        error
		wantStatusCode int
		wantCode       string
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       apperr.CodeNoToken,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       apperr.CodeNoToken,
		},
		{
			name:           "bearer without token",
			authHeader:     "Bearer ",
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       apperr.CodeNoToken,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer old",
			token:          "old",
			mockErr:        apperr.Unauthorized(apperr.CodeTokenExpired, "Token expired", nil),
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       apperr.CodeTokenExpired,
		},
		{
			name:           "untyped validation error",
			authHeader:     "Bearer junk",
			token:          "junk",
			mockErr:        errors.New("boom"),
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       apperr.CodeInvalidToken,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			token:          "validtoken",
			mockID:         "user-42",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validatorMock := new(ValidatorMock)
			if tt.token != "" {
				validatorMock.On("ValidateToken", mock.Anything, tt.token).Return(tt.mockID, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				id, ok := middlewarectx.UserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tt.mockID, id)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(validatorMock, sl.NewDiscardLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantCode != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantCode, body["code"])
			}
			validatorMock.AssertExpectations(t)
		})
	}
}

func TestJWTMiddleware_RealTokens(t *testing.T) {
	maker := jwt.NewJWTMaker("gate-secret", time.Minute)
	svc := services.NewAuthService(sl.NewDiscardLogger(), nil, nil, maker, nil, nil)
	gate := middlewarectx.JWTMiddleware(svc, sl.NewDiscardLogger())

	var gotID string
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middlewarectx.UserIDFromContext(r.Context())
	}))

	token, err := maker.GenerateToken("user-7")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", gotID)

	other, err := jwt.NewJWTMaker("other-secret", time.Minute).GenerateToken("user-7")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apperr.CodeInvalidToken)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, ok := middlewarectx.UserIDFromContext(context.Background())
	assert.False(t, ok)
}
