package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

const userColumns = `id, email, password_hash, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// validID сообщает, похож ли id на идентификатор, который выдаёт база.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create сохраняет нового пользователя и возвращает его вместе с id и временными метками.
//
// Если email уже занят, срабатывает уникальный индекс и возвращается ErrUserExists.
func (s *Storage) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	const op = "storage.Create"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (email, password_hash)
			  VALUES ($1, $2)
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, models.NormalizeEmail(email), passwordHash))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

// FindByEmail возвращает пользователя по email или ErrUserNotFound.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindByEmail"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

// FindByID возвращает пользователя по id или ErrUserNotFound.
// Некорректный id не считается ошибкой запроса: результат тот же, что и для отсутствующей записи.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.FindByID"
	if !validID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

// UpdateByID обновляет заданные поля пользователя и updated_at.
func (s *Storage) UpdateByID(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	const op = "storage.UpdateByID"
	if !validID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if upd.Email != nil {
		args = append(args, models.NormalizeEmail(*upd.Email))
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if upd.PasswordHash != nil {
		args = append(args, *upd.PasswordHash)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`UPDATE users
			  SET %s
			  WHERE id = $%d
			  RETURNING %s`, strings.Join(sets, ", "), len(args), userColumns)
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

// DeleteByID удаляет пользователя и сообщает, была ли запись.
func (s *Storage) DeleteByID(ctx context.Context, id string) (bool, error) {
	const op = "storage.DeleteByID"
	if !validID(id) {
		return false, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
