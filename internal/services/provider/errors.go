// File: internal/services/provider/errors.go
package provider

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig  ErrorType = "CONFIG"
	ErrTypeNetwork ErrorType = "NETWORK"
	ErrTypeTimeout ErrorType = "TIMEOUT"
	ErrTypeStatus  ErrorType = "STATUS"
	ErrTypeDecode  ErrorType = "DECODE"
)

// UpstreamError is returned for every failed provider call. Error() keeps the
// "API request failed: ..." wording callers see in the 500 envelope.
type UpstreamError struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API request failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API request failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func NewStatusError(code int) *UpstreamError {
	return &UpstreamError{Type: ErrTypeStatus, Code: code, Message: fmt.Sprintf("HTTP error: %d", code)}
}

func NewDecodeError(msg string, cause error) *UpstreamError {
	return &UpstreamError{Type: ErrTypeDecode, Message: msg, Cause: cause}
}

// IsTimeout reports whether err is an UpstreamError caused by the call deadline.
func IsTimeout(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Type == ErrTypeTimeout
}
