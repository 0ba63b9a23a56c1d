// File: internal/middleware/logger.go
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-smsproxy/internal/metrics"
	"github.com/iyunix/go-smsproxy/internal/requestid"
)

// RouteLabeler names the route a request belongs to. Used as the metrics
// path label so unknown paths do not blow up cardinality.
type RouteLabeler func(r *http.Request) string

// RouteTemplate labels requests with the matching mux path template.
func RouteTemplate(router *mux.Router) RouteLabeler {
	return func(r *http.Request) string {
		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			if tpl, err := match.Route.GetPathTemplate(); err == nil {
				return tpl
			}
		}
		return unmatchedRoute
	}
}

// LoggingMiddleware logs every request once it has been served and records
// the HTTP metrics.
func LoggingMiddleware(logger *slog.Logger, label RouteLabeler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			route := unmatchedRoute
			if label != nil {
				route = label(r)
			}
			metrics.ObserveHTTP(r.Method, route, strconv.Itoa(wrapper.statusCode), duration)

			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapper.statusCode,
				"bytes", wrapper.written,
				"remote_addr", r.RemoteAddr,
				"request_id", requestid.FromContext(r.Context()),
				"duration", duration,
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
