// Package apperr описывает типизированные ошибки уровня операций.
//
// Каждая ошибка несёт вид (Kind), стабильный машиночитаемый код и сообщение
// для клиента. Перевод в HTTP-статус выполняется только на границе
// (response.WriteError), бизнес-логика о статусах не знает.
package apperr

import (
	"errors"
	"net/http"
)

// Kind вид ошибки.
type Kind int

const (
	// KindInternal непредвиденная ошибка сервера.
	KindInternal Kind = iota
	// KindValidation входные данные не прошли схему.
	KindValidation
	// KindUnauthorized нет токена, токен невалиден или истёк, неверные учётные данные.
	KindUnauthorized
	// KindConflict нарушение уникальности.
	KindConflict
	// KindNotFound запись или маршрут не найдены.
	KindNotFound
	// KindTimeout хранилище не ответило вовремя.
	KindTimeout
)

// Стабильные коды ошибок, которые видит клиент.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeStoreTimeout       = "STORE_TIMEOUT"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error типизированная ошибка операции.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // исходная причина, клиенту не показывается
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status возвращает HTTP-статус для вида ошибки.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// As извлекает *Error из цепочки ошибок.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind сообщает, содержит ли цепочка ошибку указанного вида.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// Validation ошибка валидации входных данных.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: msg}
}

// Unauthorized ошибка аутентификации с заданным кодом.
func Unauthorized(code, msg string, cause error) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: msg, Err: cause}
}

// InvalidCredentials одна и та же ошибка для неизвестного email и неверного пароля.
func InvalidCredentials() *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

// Conflict ошибка нарушения уникальности.
func Conflict(code, msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg, Err: cause}
}

// NotFound ошибка отсутствующей записи.
func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

// Timeout хранилище не уложилось в отведённое время.
func Timeout(cause error) *Error {
	return &Error{Kind: KindTimeout, Code: CodeStoreTimeout, Message: "Storage did not respond in time", Err: cause}
}
