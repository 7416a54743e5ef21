package auth

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации.
	_ "github.com/magabrotheeeer/auth-service/docs"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/fallback"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/users/me"
	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/lib/metrics"
	authservices "github.com/magabrotheeeer/auth-service/internal/services/auth"
	userservice "github.com/magabrotheeeer/auth-service/internal/services/user"
)

// Deps зависимости HTTP-слоя, собранные в New.
type Deps struct {
	Logger         *slog.Logger
	AuthService    *authservices.AuthService
	UserService    *userservice.Service
	Validate       *validator.Validate
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middlewarectx.RequestLogger(d.Logger),
		middleware.Recoverer,
		middlewarectx.CORS(d.AllowedOrigins),
		middlewarectx.Metrics(d.Metrics),
	)
	r.NotFound(fallback.NotFound)
	r.MethodNotAllowed(fallback.MethodNotAllowed)

	r.Get("/health", health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(d.Logger, d.AuthService, d.Validate).ServeHTTP)
		r.Post("/auth/login", login.New(d.Logger, d.AuthService, d.Validate).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.AuthService, d.Logger))
			r.Get("/users/me", me.New(d.Logger, d.UserService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
