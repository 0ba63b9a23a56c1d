// File: internal/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/iyunix/go-smsproxy/internal/requestid"
)

// CORS allows read-only cross-origin calls from the given origins.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.HeaderKey},
		ExposedHeaders: []string{
			requestid.HeaderKey,
			HeaderRateLimitLimit,
			HeaderRateLimitRemaining,
			HeaderRateLimitReset,
			HeaderRetryAfter,
		},
		AllowCredentials: false, // must be false when using "*"
		MaxAge:           300,
	})
}
