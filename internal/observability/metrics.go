package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	dbConnectionPoolStats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_connection_pool_stats",
			Help: "Database connection pool statistics (total, idle, active)",
		},
		[]string{"state"},
	)

	sessionLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_lookups_total",
			Help: "Session store lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	authEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Sign-in, callback and sign-out events by outcome",
		},
		[]string{"event", "outcome"},
	)

	chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Chatbot questions by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(httpRequestLatency)
	prometheus.MustRegister(dbConnectionPoolStats)
	prometheus.MustRegister(sessionLookups)
	prometheus.MustRegister(authEvents)
	prometheus.MustRegister(chatRequests)
}

// RecordAuthEvent counts a login, callback or logout outcome.
func RecordAuthEvent(event, outcome string) {
	authEvents.WithLabelValues(event, outcome).Inc()
}

func RecordChat(outcome string) {
	chatRequests.WithLabelValues(outcome).Inc()
}

// Middleware records HTTP request latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriterSpy{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		httpRequestLatency.WithLabelValues(r.Method, r.Pattern, fmt.Sprint(ww.code)).Observe(duration)
	})
}

type responseWriterSpy struct {
	http.ResponseWriter
	code int
}

func (w *responseWriterSpy) WriteHeader(statusCode int) {
	w.code = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// StartDBStatsCollector polls pool stats until ctx is cancelled.
func StartDBStatsCollector(ctx context.Context, dbPool *pgxpool.Pool) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			stats := dbPool.Stat()
			dbConnectionPoolStats.WithLabelValues("total").Set(float64(stats.TotalConns()))
			dbConnectionPoolStats.WithLabelValues("idle").Set(float64(stats.IdleConns()))
			dbConnectionPoolStats.WithLabelValues("acquired").Set(float64(stats.AcquiredConns()))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
