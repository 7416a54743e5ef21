// Package models содержит доменную модель пользователя и транспортные
// проекции, которые отдаются клиенту. Хэш пароля в проекции не попадает.
package models

import (
	"strings"
	"time"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Идентификатор, назначается хранилищем
	Email        string    // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash string    // Хэш пароля пользователя, никогда не открытый текст
	CreatedAt    time.Time // Время создания, ставит хранилище
	UpdatedAt    time.Time // Время последнего изменения, ставит хранилище
}

// UserUpdate частичное обновление пользователя; nil поля не меняются.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
}

// UserView минимальная проекция пользователя для ответов API.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// View возвращает проекцию пользователя без хэша пароля.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}

// AuthResult результат регистрации или входа.
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// NormalizeEmail приводит email к каноническому виду: без пробелов по краям, в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
