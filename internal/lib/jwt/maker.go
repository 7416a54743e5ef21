// Package jwt реализует выпуск и проверку подписанных JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором пользователя.
// MakerImpl конкретная реализация HS256 с секретным ключом и фиксированным сроком жизни.
package jwt

import (
	"errors"
	"time"
)

// DefaultTokenTTL срок жизни токена по умолчанию.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrTokenInvalid токен повреждён или подпись не сходится.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired срок жизни токена истёк.
	ErrTokenExpired = errors.New("token is expired")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя userID.
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Нулевой TTL заменяется на DefaultTokenTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
