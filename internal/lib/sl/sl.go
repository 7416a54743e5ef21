// Package sl содержит вспомогательные функции для работы с логгером slog:
// построение логгера по окружению и уровню, единообразные атрибуты ошибок
// и маскирование секретов.
package sl

import (
	"io"
	"log/slog"
	"strings"
)

// Окружения, влияющие на формат логов.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret атрибут, значение которого никогда не попадает в лог.
func Secret(key string) slog.Attr {
	return slog.String(key, "[REDACTED]")
}

// ParseLevel переводит строку конфига в slog.Level.
// Пустая строка даёт debug для local и info для остальных окружений.
func ParseLevel(env, level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == EnvLocal {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// SetupLogger создаёт логгер: текстовый для local, JSON для dev и prod.
func SetupLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(env, level)}
	if env == EnvLocal {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewDiscardLogger логгер без вывода, для тестов.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
