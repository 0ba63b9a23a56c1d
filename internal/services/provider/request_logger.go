package provider

import (
	"context"
	"time"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/requestid"
)

// RequestLogger writes one audit record per provider call. The token is
// always redacted. Logging never fails the call it describes.
type RequestLogger struct {
	logger Logger
	now    func() time.Time
}

func NewRequestLogger(logger Logger) *RequestLogger {
	return &RequestLogger{logger: logger, now: time.Now}
}

func (l *RequestLogger) LogSuccess(ctx context.Context, q Query, response domain.UpstreamResult, statusCode int) {
	defer l.swallow()
	l.logger.Info("Tiger SMS API Request",
		"request", q.Redacted(),
		"response", string(response),
		"status_code", statusCode,
		"request_id", requestid.FromContext(ctx),
		"timestamp", l.timestamp(),
	)
}

func (l *RequestLogger) LogFailure(ctx context.Context, q Query, errMsg string) {
	defer l.swallow()
	l.logger.Error("Tiger SMS API Error",
		"request", q.Redacted(),
		"error", errMsg,
		"request_id", requestid.FromContext(ctx),
		"timestamp", l.timestamp(),
	)
}

func (l *RequestLogger) timestamp() string {
	return l.now().UTC().Format(time.RFC3339Nano)
}

// swallow drops a panic from the logging sink.
func (l *RequestLogger) swallow() {
	_ = recover()
}
