// Package user отдаёт проекцию пользователя по id, с кешем перед хранилищем.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/cache"
	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// UserFinder ищет пользователя по id.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Cache кеш проекций пользователя.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service читает пользователей. Кеш необязателен: при nil запросы идут прямо в хранилище.
type Service struct {
	log   *slog.Logger
	users UserFinder
	cache Cache
	ttl   time.Duration
}

// NewService создаёт сервис пользователей.
func NewService(log *slog.Logger, users UserFinder, c Cache, ttl time.Duration) *Service {
	return &Service{log: log, users: users, cache: c, ttl: ttl}
}

// GetByID возвращает проекцию пользователя или USER_NOT_FOUND.
//
// Ошибки кеша не прерывают запрос, они только логируются.
func (s *Service) GetByID(ctx context.Context, id string) (*models.UserView, error) {
	const op = "services.user.GetByID"
	log := s.log.With(slog.String("op", op), slog.String("user_id", id))

	if s.cache != nil {
		var cached models.UserView
		found, err := s.cache.Get(ctx, cache.UserKey(id), &cached)
		if err != nil {
			log.Warn("cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, apperr.NotFound(apperr.CodeUserNotFound, "User not found")
		case errors.Is(err, storage.ErrTimeout):
			return nil, apperr.Timeout(fmt.Errorf("%s: %w", op, err))
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	view := u.View()
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.UserKey(id), view, s.ttl); err != nil {
			log.Warn("cache write failed", sl.Err(err))
		}
	}
	return &view, nil
}
