package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/pkg/logging"
)

// HTTPMetrics holds the request-level metrics every service exposes.
type HTTPMetrics struct {
	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

// NewHTTPMetrics registers http_requests_total and
// http_request_duration_seconds on the given registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		Durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP request handling in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(m.Requests, m.Durations)
	return m
}

// Observability combines W3C trace context extraction, request-scoped
// logger injection, and HTTP metrics with low-cardinality route labels.
func Observability(base *zap.Logger, metrics *HTTPMetrics) func(http.Handler) http.Handler {
	prop := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			sc := trace.SpanContextFromContext(ctx)

			fields := []zap.Field{}
			if rid := chimw.GetReqID(ctx); rid != "" {
				fields = append(fields, zap.String("request_id", rid))
			}
			if sc.IsValid() {
				fields = append(fields,
					zap.String("trace_id", sc.TraceID().String()),
					zap.String("span_id", sc.SpanID().String()),
				)
			}
			ctx = logging.WithLogger(ctx, base.With(fields...))

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := "unmatched"
			if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			if metrics != nil {
				metrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
				metrics.Durations.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			}
		})
	}
}
