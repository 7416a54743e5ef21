// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Тело запроса разбирается и проверяется через mapper, регистрация делегируется
// сервису аутентификации. При успехе возвращается 201 с токеном и пользователем.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/mapper"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// Request входные данные для регистрации.
type Request struct {
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"secret1"`
}

// LogValue скрывает пароль в логах.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", r.Email),
		sl.Secret("password"),
	)
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя по email и паролю и сразу возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email и пароль"
// @Success 201 {object} response.Response{data=models.AuthResult} "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, err := mapper.ToDTO[Request](r, h.validate)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	log.Debug("request validated", slog.Any("request", req))

	res, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("user_id", res.User.ID))
	response.JSON(w, r, http.StatusCreated, "User registered successfully", res)
}
