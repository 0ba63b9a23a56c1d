// File: internal/middleware/recovery.go
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iyunix/go-smsproxy/internal/dtos"
	"github.com/iyunix/go-smsproxy/internal/requestid"
)

// RecoverPanic turns a handler panic into the generic 500 envelope.
func RecoverPanic(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						"error", err,
						"path", r.URL.Path,
						"request_id", requestid.FromContext(r.Context()),
						"stack", string(debug.Stack()),
					)

					w.Header().Set("Connection", "close")
					writeEnvelope(w, http.StatusInternalServerError, dtos.NewErrorEnvelope(messagePanic))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelope(w http.ResponseWriter, status int, envelope dtos.ErrorEnvelope) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
