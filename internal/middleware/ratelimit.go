// File: internal/middleware/ratelimit.go
package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/iyunix/go-smsproxy/internal/dtos"
	"github.com/iyunix/go-smsproxy/internal/ratelimit"
)

// Limiter is satisfied by *ratelimit.MemoryRateLimiter.
type Limiter interface {
	Allow(identifier string) (bool, *ratelimit.Info)
}

// RateLimitMiddleware rejects clients over their window with a 429 envelope.
func RateLimitMiddleware(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.GetClientIP(r)
			allowed, info := limiter.Allow(clientIP)

			w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(info.Limit))
			w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(info.Remaining))
			w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(info.ResetTime.Unix(), 10))

			if !allowed {
				logger.WarnContext(r.Context(), "rate limited", "client_ip", clientIP, "path", r.URL.Path)
				w.Header().Set(HeaderRetryAfter, fmt.Sprintf("%.0f", math.Ceil(info.RetryAfter.Seconds())))
				writeEnvelope(w, http.StatusTooManyRequests, dtos.NewErrorEnvelope(messageTooManyRequest))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
