// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization и в случае
// успеха кладёт id пользователя в контекст запроса. Хранилище при этом не
// опрашивается. Любая ошибка проверки завершает запрос ответом 401, и
// следующий обработчик не вызывается.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID ключ для id пользователя в контексте.
const UserID Key = "user_id"

const bearerPrefix = "Bearer "

// TokenValidator проверяет токен и возвращает id пользователя.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if !strings.HasPrefix(authHeader, bearerPrefix) || tokenStr == "" {
				response.WriteError(w, r, log, apperr.Unauthorized(apperr.CodeNoToken, "No token provided or invalid format", nil))
				return
			}

			userID, err := validator.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				var appErr *apperr.Error
				if !errors.As(err, &appErr) {
					err = apperr.Unauthorized(apperr.CodeInvalidToken, "Invalid token", err)
				}
				response.WriteError(w, r, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает id пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}
