package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// БД
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	// Бизнес
	BookingOutcomes *prometheus.CounterVec
}

// Исходы операций бронирования
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
)

// New регистрирует метрики в reg (nil - prometheus.DefaultRegisterer)
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total HTTP requests",
				ConstLabels: labels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_queries_total",
				Help:        "Total database queries",
				ConstLabels: labels,
			},
			[]string{"operation", "status"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query latency",
				ConstLabels: labels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		DBOpenConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_open_connections",
				Help:        "Open database connections",
				ConstLabels: labels,
			},
			[]string{"db"},
		),
		DBInUse: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_in_use_connections",
				Help:        "Database connections in use",
				ConstLabels: labels,
			},
			[]string{"db"},
		),
		DBIdle: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_idle_connections",
				Help:        "Idle database connections",
				ConstLabels: labels,
			},
			[]string{"db"},
		),
		DBWaitCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_wait_count",
				Help:        "Total number of connections waited for",
				ConstLabels: labels,
			},
			[]string{"db"},
		),
		BookingOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_outcomes_total",
				Help:        "Booking attempts by outcome and kind",
				ConstLabels: labels,
			},
			[]string{"outcome", "kind"},
		),
	}
}

// ObserveBooking увеличивает счётчик исходов бронирования; безопасен для nil
func (m *Metrics) ObserveBooking(outcome, kind string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(outcome, kind).Inc()
}
