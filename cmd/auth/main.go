// Package main Auth Service API
//
// @title           Auth Service API
// @version         1.0
// @description     Регистрация, вход и выдача JWT для сервисов-потребителей
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/auth-service/internal/app/auth"
	"github.com/magabrotheeeer/auth-service/internal/config"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	logger.Info("starting auth-service", slog.String("env", cfg.Env), slog.String("config", cfg.String()))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := auth.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize auth app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("auth app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("auth-service stopped gracefully")
}
