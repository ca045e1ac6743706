package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeMissing = "missing"
	OutcomeInvalid = "invalid"
	OutcomeExpired = "expired"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus collectors of the auth service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Credential metrics
	AuthenticationsTotal  *prometheus.CounterVec
	OTPIssuedTotal        *prometheus.CounterVec
	OTPVerificationsTotal *prometheus.CounterVec
	APIKeysCreatedTotal   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dabotcentral_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dabotcentral_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		AuthenticationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dabotcentral_authentications_total",
				Help: "Bearer credential resolutions by credential kind and outcome",
			},
			[]string{"method", "outcome"},
		),
		OTPIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dabotcentral_otp_issued_total",
				Help: "OTP issue attempts by outcome",
			},
			[]string{"outcome"},
		),
		OTPVerificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dabotcentral_otp_verifications_total",
				Help: "OTP verification attempts by outcome",
			},
			[]string{"outcome"},
		),
		APIKeysCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dabotcentral_api_keys_created_total",
				Help: "Total number of API keys issued",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthenticationsTotal,
		m.OTPIssuedTotal,
		m.OTPVerificationsTotal,
		m.APIKeysCreatedTotal,
	)

	return m
}

// ObserveAuthentication counts one credential resolution.
func (m *Metrics) ObserveAuthentication(method, outcome string) {
	if m == nil {
		return
	}
	m.AuthenticationsTotal.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) ObserveOTPIssued(outcome string) {
	if m == nil {
		return
	}
	m.OTPIssuedTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveOTPVerification(outcome string) {
	if m == nil {
		return
	}
	m.OTPVerificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAPIKeyCreated() {
	if m == nil {
		return
	}
	m.APIKeysCreatedTotal.Inc()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments requests. It must wrap the ServeMux directly so
// the matched pattern is visible on the request after it is served.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics in registry.
func Handler(registry prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
