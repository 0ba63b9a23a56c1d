// File: internal/services/provider/tigersms_client.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/metrics"
)

// TigerSMSClient talks to the activation provider's handler API: one GET per
// action, token and parameters in the query string, JSON back.
type TigerSMSClient struct {
	config *Config
	client HTTPDoer
	audit  *RequestLogger
}

func NewTigerSMSClient(config *Config, logger Logger) (*TigerSMSClient, error) {
	return NewTigerSMSClientWithDoer(config, &http.Client{Timeout: config.Timeout}, logger)
}

// NewTigerSMSClientWithDoer lets callers supply the transport.
func NewTigerSMSClientWithDoer(config *Config, doer HTTPDoer, logger Logger) (*TigerSMSClient, error) {
	if err := config.Validate(); err != nil {
		return nil, &UpstreamError{Type: ErrTypeConfig, Message: "invalid provider config", Cause: err}
	}
	return &TigerSMSClient{
		config: config,
		client: doer,
		audit:  NewRequestLogger(logger),
	}, nil
}

func (c *TigerSMSClient) Call(ctx context.Context, action string, params map[string]string) (domain.UpstreamResult, error) {
	query := NewQuery(action, c.config.Token, params)
	start := time.Now()

	result, status, err := c.do(ctx, query)
	if err != nil {
		c.audit.LogFailure(ctx, query, err.Error())
		metrics.ObserveUpstream(action, outcomeOf(err), time.Since(start))
		return nil, err
	}

	c.audit.LogSuccess(ctx, query, result, status)
	metrics.ObserveUpstream(action, metrics.OutcomeSuccess, time.Since(start))
	return result, nil
}

func (c *TigerSMSClient) do(ctx context.Context, query Query) (domain.UpstreamResult, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	target, err := query.URL(c.config.APIURL)
	if err != nil {
		return nil, 0, &UpstreamError{Type: ErrTypeConfig, Message: "invalid api url", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, &UpstreamError{Type: ErrTypeConfig, Message: "failed to create request", Cause: stripURL(err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.config.MaxBodyBytes))
		return nil, resp.StatusCode, NewStatusError(resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		// client timeouts can fire mid-body without the context expiring
		if ctx.Err() != nil || isNetTimeout(err) {
			return nil, resp.StatusCode, c.transportError(ctx, err)
		}
		return nil, resp.StatusCode, &UpstreamError{Type: ErrTypeNetwork, Message: "failed to read response body", Cause: err}
	}

	result, err := c.decodeBody(raw)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return result, resp.StatusCode, nil
}

// decodeBody accepts a JSON object or array only. Empty, null, scalar or
// malformed bodies are errors rather than a nil payload.
func (c *TigerSMSClient) decodeBody(raw []byte) (domain.UpstreamResult, error) {
	if int64(len(raw)) > c.config.MaxBodyBytes {
		return nil, NewDecodeError(fmt.Sprintf("response body exceeds %d bytes", c.config.MaxBodyBytes), nil)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, NewDecodeError("empty response body", nil)
	}
	if !json.Valid(raw) {
		return nil, NewDecodeError("invalid JSON response body", nil)
	}
	if raw[0] != '{' && raw[0] != '[' {
		return nil, NewDecodeError("unexpected JSON response body: "+truncate(string(raw), 64), nil)
	}
	return domain.UpstreamResult(raw), nil
}

func (c *TigerSMSClient) transportError(ctx context.Context, err error) *UpstreamError {
	cause := stripURL(err)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isNetTimeout(err) {
		return &UpstreamError{
			Type:    ErrTypeTimeout,
			Message: fmt.Sprintf("request timed out after %s", c.config.Timeout),
			Cause:   cause,
		}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return &UpstreamError{Type: ErrTypeNetwork, Message: "request canceled", Cause: cause}
	}
	return &UpstreamError{Type: ErrTypeNetwork, Message: "request failed", Cause: cause}
}

// stripURL drops the request URL from transport errors; it carries the token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcomeOf(err error) string {
	if IsTimeout(err) {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeError
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
