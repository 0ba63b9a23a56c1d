// File: internal/middleware/requestid.go
package middleware

import (
	"net/http"

	"github.com/iyunix/go-smsproxy/internal/requestid"
)

// RequestID tags each request with an id, reusing the caller's X-Request-Id
// when it is usable, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestid.Resolve(r.Header.Get(requestid.HeaderKey))
		w.Header().Set(requestid.HeaderKey, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}
