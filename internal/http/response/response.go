// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Успех отдаётся как
// {success:true, message, data}, ошибка как {success:false, code, message}.
package response

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Response описывает стандартную структуру успешного JSON‑ответа сервера.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Login successful"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse описывает ответ с ошибкой.
// Используется и в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    string `json:"code" example:"VALIDATION_ERROR"`
	Message string `json:"message" example:"field email must be a valid email"`
}

// InternalMessage сообщение для непредвиденных ошибок, детали клиенту не раскрываются.
const InternalMessage = "Internal server error"

// OK возвращает успешный Response с сообщением и данными.
func OK(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Error возвращает ErrorResponse с кодом и сообщением.
func Error(code, msg string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Code:    code,
		Message: msg,
	}
}

// JSON пишет успешный ответ с заданным статусом.
func JSON(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	render.Status(r, status)
	render.JSON(w, r, OK(message, data))
}

// WriteError единственное место, где ошибка превращается в HTTP-ответ.
//
// Типизированная ошибка отдаётся со своим статусом, кодом и сообщением,
// любая другая как 500 без подробностей.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		log.Error("unhandled error", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error(apperr.CodeInternal, InternalMessage))
		return
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("code", appErr.Code), sl.Err(err))
	} else {
		log.Info("request rejected", slog.String("code", appErr.Code), slog.String("reason", appErr.Message))
	}
	render.Status(r, status)
	render.JSON(w, r, Error(appErr.Code, appErr.Message))
}
