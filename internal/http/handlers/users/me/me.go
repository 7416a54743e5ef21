// Package me отдаёт текущего пользователя по id из токена.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// Service ищет пользователя по id.
type Service interface {
	GetByID(ctx context.Context, id string) (*models.UserView, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает id и email владельца токена.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserView} "Пользователь найден"
// @Failure 401 {object} response.ErrorResponse "Нет токена, токен невалиден или истёк"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.Unauthorized(apperr.CodeNoToken, "No token provided or invalid format", nil))
		return
	}

	view, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	response.JSON(w, r, http.StatusOK, "User retrieved successfully", view)
}
