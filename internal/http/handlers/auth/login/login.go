// Package login реализует HTTP-обработчик входа пользователя.
//
// Неизвестный email и неверный пароль неразличимы для клиента: оба дают
// 401 INVALID_CREDENTIALS с одним и тем же сообщением.
package login

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

// Request структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"secret1"`
}

// LogValue скрывает пароль в логах.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", r.Email),
		sl.Secret("password"),
	)
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate,
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response{data=models.AuthResult} "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("user_id", res.User.ID))
	response.JSON(w, r, http.StatusOK, "Login successful", res)
}
