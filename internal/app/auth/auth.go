// Package auth собирает сервис аутентификации: хранилище, кеш, брокер,
// сервисы и HTTP-сервер. Все зависимости создаются здесь один раз и
// передаются явно.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/auth-service/internal/cache"
	"github.com/magabrotheeeer/auth-service/internal/config"
	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/mapper"
	"github.com/magabrotheeeer/auth-service/internal/lib/metrics"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/migrations"
	authservices "github.com/magabrotheeeer/auth-service/internal/services/auth"
	userservice "github.com/magabrotheeeer/auth-service/internal/services/user"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	amqpRetries     = 5
	amqpRetryDelay  = 2 * time.Second
)

type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"
	app := &App{logger: logger}

	db, err := storage.New(cfg.StorageConnectionString, cfg.StorageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.db = db
	if err = migrations.Run(db.DB, cfg.MigrationsPath, logger); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var userCache userservice.Cache
	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		userCache = app.cache
	} else {
		logger.Info("redis address is empty, user cache disabled")
	}

	var events authservices.EventPublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		app.amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, amqpRetries, amqpRetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(app.amqpConn, cfg.RabbitMQ.Exchange, rabbitmq.GetAuthQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.publisher = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		events = app.publisher
	} else {
		logger.Info("rabbitmq url is empty, domain events disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservices.NewAuthService(logger, db, password.NewHasher(), jwtMaker, events, appMetrics)
	userService := userservice.NewService(logger, db, userCache, cfg.UserTTL)

	router := NewRouter(Deps{
		Logger:         logger,
		AuthService:    authService,
		UserService:    userService,
		Validate:       mapper.NewValidator(),
		Metrics:        appMetrics,
		Gatherer:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает HTTP до отмены ctx, затем плавно останавливает сервер и закрывает ресурсы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}
