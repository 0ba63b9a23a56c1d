package requestid

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderKey is read from inbound requests and echoed on responses.
const HeaderKey = "X-Request-Id"

const maxLen = 128

type ctxKey struct{}

// Gen returns a new random request id.
func Gen() string {
	return uuid.NewString()
}

// Resolve keeps a caller-supplied id when it is usable, otherwise generates one.
func Resolve(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" || len(incoming) > maxLen || strings.ContainsAny(incoming, "\r\n") {
		return Gen()
	}
	return incoming
}

// NewContext stores id in ctx.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored by NewContext, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
