package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics контейнер prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      prometheus.Gauge
	dbPoolInUse     prometheus.Gauge
	dbPoolIdle      prometheus.Gauge

	bookingsCreatedTotal   *prometheus.CounterVec
	bookingsCancelledTotal *prometheus.CounterVec
	notificationsTotal     *prometheus.CounterVec
}

// New создает и регистрирует метрики в дефолтном registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total count of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Current number of in-flight HTTP requests.",
			ConstLabels: constLabels,
		}),

		dbQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total count of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbPoolOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: constLabels,
		}),

		dbPoolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}),

		dbPoolIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool.",
			ConstLabels: constLabels,
		}),

		bookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Count of bookings created, by initial status.",
			ConstLabels: constLabels,
		}, []string{"status"}),

		bookingsCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Count of bookings cancelled, by initiator.",
			ConstLabels: constLabels,
		}, []string{"by"}),

		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Count of notification deliveries, by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInFlight,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbPoolOpen,
		m.dbPoolInUse,
		m.dbPoolIdle,
		m.bookingsCreatedTotal,
		m.bookingsCancelledTotal,
		m.notificationsTotal,
	)

	return m
}

// ObserveHTTPRequest записывает метрики завершенного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// HTTPInFlightInc увеличивает счетчик активных запросов
func (m *Metrics) HTTPInFlightInc() {
	m.httpInFlight.Inc()
}

// HTTPInFlightDec уменьшает счетчик активных запросов
func (m *Metrics) HTTPInFlightDec() {
	m.httpInFlight.Dec()
}

// ObserveDBQuery записывает метрики выполненного запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpen.Set(float64(stats.OpenConnections))
	m.dbPoolInUse.Set(float64(stats.InUse))
	m.dbPoolIdle.Set(float64(stats.Idle))
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(status string) {
	m.bookingsCreatedTotal.WithLabelValues(status).Inc()
}

// IncBookingCancelled увеличивает счетчик отмен
func (m *Metrics) IncBookingCancelled(by string) {
	m.bookingsCancelledTotal.WithLabelValues(by).Inc()
}

// IncNotification увеличивает счетчик отправленных уведомлений
func (m *Metrics) IncNotification(result string) {
	m.notificationsTotal.WithLabelValues(result).Inc()
}
