// File: internal/services/provider/interface.go
package provider

import (
	"context"
	"net/http"

	"github.com/iyunix/go-smsproxy/internal/domain"
)

// Client performs one provider action. Implementations make exactly one
// attempt per call and return either the provider's JSON or an *UpstreamError.
type Client interface {
	Call(ctx context.Context, action string, params map[string]string) (domain.UpstreamResult, error)
}

// HTTPDoer is the subset of *http.Client the provider client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
