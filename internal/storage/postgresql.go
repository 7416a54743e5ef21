// Package storage реализует хранилище пользователей на основе PostgreSQL.
//
// Уникальность email обеспечивается уникальным индексом в базе,
// а не проверкой в памяти приложения. Каждый вызов ограничен таймаутом,
// истечение которого возвращается как ErrTimeout.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DefaultTimeout таймаут запроса, если в конфиге не задан другой.
const DefaultTimeout = 5 * time.Second

var (
	// ErrUserNotFound пользователь не найден или идентификатор некорректен.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists пользователь с таким email уже существует.
	ErrUserExists = errors.New("user already exists")
	// ErrTimeout хранилище не ответило за отведённое время.
	ErrTimeout = errors.New("storage timeout")
)

// Storage инкапсулирует пул соединений с базой данных PostgreSQL.
type Storage struct {
	DB      *sql.DB
	timeout time.Duration
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string, timeout time.Duration) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := NewWithDB(db, timeout)
	if err = s.Ping(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// NewWithDB оборачивает уже открытый *sql.DB.
func NewWithDB(db *sql.DB, timeout time.Duration) *Storage {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Storage{DB: db, timeout: timeout}
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы с таймаутом хранилища.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// mapErr переводит ошибки драйвера в ошибки пакета.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", ErrUserExists, pgErr.ConstraintName)
		case pgerrcode.QueryCanceled:
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}
	return err
}
