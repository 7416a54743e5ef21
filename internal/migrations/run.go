// Package migrations применяет SQL-миграции схемы (таблица users и уникальный индекс по email).
// Повторный запуск безопасен: уже применённые версии пропускаются.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет все миграции из каталога path.
func Run(db *sql.DB, path string, log *slog.Logger) error {
	const op = "migrations.Run"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance(
		"file://"+path,
		"pgx_v5",
		driver,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
