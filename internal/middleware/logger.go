package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"
)

type loggerKey struct{}

// nolint:gochecknoglobals
var (
	requestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "argus",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "argus",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Logger puts request scoped logger into context and logs every request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"ip":         realip.FromRequest(r),
			"method":     r.Method,
			"uri":        r.RequestURI,
		})

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(WithLogger(r.Context(), l)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		l = l.WithFields(logrus.Fields{
			"status":   status,
			"duration": time.Since(start).String(),
		})

		if status >= http.StatusInternalServerError {
			l.Warn("request failed")
		} else {
			l.Debug("request served")
		}
	})
}

// Metrics collects prometheus request metrics labeled by chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		requestsCounter.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// BodyLimiter limits size of request bodies.
func BodyLimiter(size int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
