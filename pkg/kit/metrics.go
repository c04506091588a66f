package kit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelPath    = "path"
	labelStatus  = "status"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{labelService, labelMethod, labelPath, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{labelService, labelMethod, labelPath},
		),
	}

	reg.MustRegister(m.Requests, m.Latency)
	return m
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (m *Metrics) Middleware(service string, pathLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(sw, r)

			// The route pattern is only complete once routing has finished.
			path := pathLabel(r)
			m.Latency.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(service, r.Method, path, strconv.Itoa(sw.status)).Inc()
		})
	}
}

// MetricsConfig describes how a service exposes its registry.
type MetricsConfig struct {
	Service  string
	Registry *prometheus.Registry
	Enabled  bool
	Token    string
}

// Mount wires request metrics and, when enabled, a token-guarded /metrics endpoint.
// It must run before any route is registered on r.
func (c MetricsConfig) Mount(r chi.Router) {
	if c.Registry == nil {
		return
	}

	m := NewMetrics(c.Registry)
	r.Use(m.Middleware(c.Service, ChiRoutePatternOrPath))

	if !c.Enabled {
		return
	}
	r.Handle("/metrics", MetricsAuth(c.Token)(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
}
