// Package metrics описывает prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций аутентификации для метки result.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Metrics набор коллекторов HTTP и аутентификации.
type Metrics struct {
	Requests       *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	AuthOperations *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AuthOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Register and login outcomes.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(m.Requests, m.Duration, m.AuthOperations)
	return m
}

// AuthOperation увеличивает счётчик исхода операции.
func (m *Metrics) AuthOperation(operation, result string) {
	m.AuthOperations.WithLabelValues(operation, result).Inc()
}

// Nop ничего не считает, используется в тестах и когда метрики не нужны.
type Nop struct{}

// AuthOperation ничего не делает.
func (Nop) AuthOperation(string, string) {}
