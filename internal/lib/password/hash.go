// Package password реализует одностороннее хеширование и проверку паролей.
//
// Hasher создаёт bcrypt-хеш с новой случайной солью при каждом вызове
// и проверяет пароль против сохранённого хеша. Общего изменяемого состояния нет,
// поэтому один экземпляр безопасно использовать из многих горутин.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost рабочий фактор bcrypt (2^10 раундов).
const Cost = 10

// MaxBytes наибольшая длина пароля в байтах, которую принимает bcrypt.
const MaxBytes = 72

// ErrTooLong пароль длиннее MaxBytes байт.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hasher хеширует и проверяет пароли.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher с рабочим фактором Cost.
func NewHasher() *Hasher {
	return &Hasher{cost: Cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
// Пароль длиннее MaxBytes байт даёт ErrTooLong.
func (h *Hasher) Hash(plaintext string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с bcrypt‑хэшем за постоянное время.
//
// Для повреждённого или пустого хэша возвращает false, а не ошибку.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
