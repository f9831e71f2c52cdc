package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paycal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "paycal",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paycal",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "dialect"},
	)

	// Domain metrics
	subscriptionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "subscription",
			Name:      "created_total",
			Help:      "Total number of subscriptions created",
		},
		[]string{"currency"},
	)

	usageLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "subscription",
			Name:      "usage_logged_total",
			Help:      "Total number of usage log entries",
		},
	)

	limitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "subscription",
			Name:      "limit_rejections_total",
			Help:      "Subscription creations rejected by the free-tier limit",
		},
	)

	premiumActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "premium",
			Name:      "activations_total",
			Help:      "Total number of premium activations",
		},
		[]string{"plan"},
	)

	featuredEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "featured",
			Name:      "events_total",
			Help:      "Weekly featured impressions and clicks",
		},
		[]string{"event"},
	)

	billingRolled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paycal",
			Subsystem: "worker",
			Name:      "billing_dates_rolled_total",
			Help:      "Next billing dates advanced by the billing roller",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveQuery records the duration of a facade operation
func ObserveQuery(operation, dialect string, d time.Duration) {
	dbQueryDuration.WithLabelValues(operation, dialect).Observe(d.Seconds())
}

// RecordSubscriptionCreated counts a created subscription
func RecordSubscriptionCreated(currency string) {
	subscriptionsCreated.WithLabelValues(currency).Inc()
}

// RecordUsageLogged counts a usage log append
func RecordUsageLogged() {
	usageLogged.Inc()
}

// RecordLimitRejection counts a free-tier limit rejection
func RecordLimitRejection() {
	limitRejections.Inc()
}

// RecordPremiumActivation counts a premium purchase
func RecordPremiumActivation(plan string) {
	premiumActivations.WithLabelValues(plan).Inc()
}

// RecordFeaturedEvent counts an impression or click
func RecordFeaturedEvent(event string) {
	featuredEvents.WithLabelValues(event).Inc()
}

// RecordBillingRolled counts advanced billing dates
func RecordBillingRolled(n int) {
	billingRolled.Add(float64(n))
}
