// Package metrics records validation and fix statistics as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yaklabco/eslintls/internal/logging"
)

// Validation modes.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// readHeaderTimeout bounds how long the metrics server waits for request headers.
const readHeaderTimeout = 5 * time.Second

// Metrics holds the collectors of one server. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	validations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	commands    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	notices     *prometheus.CounterVec
}

// New creates Metrics registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eslintls",
			Name:      "validations_total",
			Help:      "Count of validation passes by mode and resulting status",
		}, []string{"mode", "status"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eslintls",
			Name:      "lint_failures_total",
			Help:      "Count of ESLint failures by the classifier that handled them",
		}, []string{"kind"}),

		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eslintls",
			Name:      "fix_commands_total",
			Help:      "Count of fix commands executed and whether their edit was sent",
		}, []string{"command", "applied"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eslintls",
			Name:      "validation_duration_seconds",
			Help:      "Durations of validation passes",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"mode"}),

		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eslintls",
			Name:      "client_notices_total",
			Help:      "Count of user-facing notices sent to the client by type",
		}, []string{"type"}),
	}

	m.registry.MustRegister(m.validations, m.failures, m.commands, m.duration, m.notices)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveValidation records a finished validation pass.
func (m *Metrics) ObserveValidation(mode, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(mode, status).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveFailure records an ESLint failure handled by the classifier kind.
// Failures no classifier handled use kind "unhandled".
func (m *Metrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unhandled"
	}
	m.failures.WithLabelValues(kind).Inc()
}

// ObserveCommand records an executed fix command.
func (m *Metrics) ObserveCommand(command string, applied bool) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, fmt.Sprint(applied)).Inc()
}

// ObserveNotice records a user-facing notice such as eslint/noConfig.
func (m *Metrics) ObserveNotice(typ string) {
	if m == nil {
		return
	}
	m.notices.WithLabelValues(typ).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.FromContext(ctx).Info("serving metrics", logging.FieldAddress, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}
