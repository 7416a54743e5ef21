// Package services содержит бизнес-логику регистрации, входа и проверки токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/metrics"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Операции для метрик.
const (
	OperationRegister = "register"
	OperationLogin    = "login"
)

// UserRepository описывает контракт хранилища пользователей, нужный сервису.
type UserRepository interface {
	// FindByEmail возвращает пользователя или storage.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create сохраняет пользователя; занятый email даёт storage.ErrUserExists.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, u *models.User) error
}

// Recorder считает исходы операций.
type Recorder interface {
	AuthOperation(operation, result string)
}

// AuthService отвечает за регистрацию, вход и проверку JWT.
// Состояния между вызовами не хранит.
type AuthService struct {
	log      *slog.Logger
	users    UserRepository
	hasher   PasswordHasher
	jwtMaker jwt.Maker
	events   EventPublisher
	metrics  Recorder
}

// NewAuthService создает новый экземпляр AuthService.
// nil events и metrics заменяются пустыми реализациями.
func NewAuthService(
	log *slog.Logger,
	users UserRepository,
	hasher PasswordHasher,
	jwtMaker jwt.Maker,
	events EventPublisher,
	recorder Recorder,
) *AuthService {
	if events == nil {
		events = nopPublisher{}
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthService{
		log:      log,
		users:    users,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		events:   events,
		metrics:  recorder,
	}
}

// Register создает пользователя и выпускает для него токен.
//
// Повторная регистрация того же email (в любом регистре и с пробелами) даёт
// конфликт USER_ALREADY_EXISTS, в том числе при гонке двух запросов: её ловит
// уникальный индекс хранилища.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*models.AuthResult, error) {
	const op = "services.auth.Register"
	email = models.NormalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.AuthOperation(OperationRegister, metrics.ResultConflict)
		return nil, userExists(nil)
	case !errors.Is(err, storage.ErrUserNotFound):
		s.metrics.AuthOperation(OperationRegister, metrics.ResultError)
		return nil, storeErr(op, err)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			s.metrics.AuthOperation(OperationRegister, metrics.ResultFailure)
			return nil, passwordTooLong()
		}
		s.metrics.AuthOperation(OperationRegister, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.Create(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			s.metrics.AuthOperation(OperationRegister, metrics.ResultConflict)
			return nil, userExists(err)
		}
		s.metrics.AuthOperation(OperationRegister, metrics.ResultError)
		return nil, storeErr(op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		s.metrics.AuthOperation(OperationRegister, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.events.PublishUserRegistered(ctx, user); err != nil {
		s.log.Warn("failed to publish user.registered event",
			slog.String("op", op),
			slog.String("user_id", user.ID),
			sl.Err(err),
		)
	}

	s.metrics.AuthOperation(OperationRegister, metrics.ResultSuccess)
	return &models.AuthResult{Token: token, User: user.View()}, nil
}

// Login проверяет пароль пользователя и выпускает токен.
//
// Неизвестный email и неверный пароль дают одну и ту же ошибку INVALID_CREDENTIALS.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.metrics.AuthOperation(OperationLogin, metrics.ResultFailure)
			return nil, apperr.InvalidCredentials()
		}
		s.metrics.AuthOperation(OperationLogin, metrics.ResultError)
		return nil, storeErr(op, err)
	}

	if !s.hasher.Verify(rawPassword, user.PasswordHash) {
		s.metrics.AuthOperation(OperationLogin, metrics.ResultFailure)
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		s.metrics.AuthOperation(OperationLogin, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AuthOperation(OperationLogin, metrics.ResultSuccess)
	return &models.AuthResult{Token: token, User: user.View()}, nil
}

// ValidateToken проверяет JWT и возвращает id пользователя из него.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Unauthorized(apperr.CodeTokenExpired, "Token expired", err)
		}
		return "", apperr.Unauthorized(apperr.CodeInvalidToken, "Invalid token", err)
	}
	return claims.UserID, nil
}

// passwordTooLong пароль не помещается в bcrypt по длине в байтах.
func passwordTooLong() error {
	return apperr.Validation(fmt.Sprintf("field password must be at most %d bytes long", password.MaxBytes))
}

func userExists(cause error) error {
	return apperr.Conflict(apperr.CodeUserAlreadyExists, "User with this email already exists", cause)
}

// storeErr переводит таймаут хранилища в типизированную ошибку, остальное оборачивает.
func storeErr(op string, err error) error {
	if errors.Is(err, storage.ErrTimeout) {
		return apperr.Timeout(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

type nopPublisher struct{}

func (nopPublisher) PublishUserRegistered(context.Context, *models.User) error { return nil }
