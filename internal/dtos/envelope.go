// File: internal/dtos/envelope.go
package dtos

// StatusError is the only value ErrorEnvelope.Status ever carries.
const StatusError = "error"

// MessageValidationFailed is the envelope message for rejected input.
const MessageValidationFailed = "Validation failed"

// ErrorEnvelope is the body of every non-2xx response the proxy produces itself.
// Successful calls never use it: the provider's JSON is returned as is.
type ErrorEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewValidationEnvelope builds the 422 body for per-field violations.
func NewValidationEnvelope(errs map[string][]string) ErrorEnvelope {
	return ErrorEnvelope{
		Status:  StatusError,
		Message: MessageValidationFailed,
		Errors:  errs,
	}
}

// NewErrorEnvelope builds a body carrying a single message.
func NewErrorEnvelope(message string) ErrorEnvelope {
	return ErrorEnvelope{
		Status:  StatusError,
		Message: message,
	}
}
