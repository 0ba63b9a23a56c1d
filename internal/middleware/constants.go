// File: internal/middleware/constants.go
package middleware

// Response headers set by the middleware chain
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

const (
	contentTypeJSON       = "application/json"
	messageTooManyRequest = "Too many requests"
	messagePanic          = "Internal server error"
	unmatchedRoute        = "unmatched"
)
