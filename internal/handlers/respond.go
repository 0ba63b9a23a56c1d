// File: internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/dtos"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
	"github.com/iyunix/go-smsproxy/internal/validation"
)

const (
	contentTypeJSON         = "application/json"
	messageInternalError    = "Internal server error"
	messageNotFound         = "Not found"
	messageMethodNotAllowed = "Method not allowed"
)

// Translate maps a pipeline error onto its HTTP status and envelope.
// Validation failures are 422, provider failures 500 with the provider
// message, anything else a generic 500.
func Translate(err error) (int, dtos.ErrorEnvelope) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, dtos.NewValidationEnvelope(verr.Errors)
	}
	var upErr *provider.UpstreamError
	if errors.As(err, &upErr) {
		return http.StatusInternalServerError, dtos.NewErrorEnvelope(upErr.Error())
	}
	return http.StatusInternalServerError, dtos.NewErrorEnvelope(messageInternalError)
}

// WriteEnvelope writes an error envelope with the given status.
func WriteEnvelope(w http.ResponseWriter, status int, envelope dtos.ErrorEnvelope) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}

// writeResult relays the provider body byte-for-byte.
func writeResult(w http.ResponseWriter, result domain.UpstreamResult) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

// NotFound is the router's 404 handler.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteEnvelope(w, http.StatusNotFound, dtos.NewErrorEnvelope(messageNotFound))
}

// MethodNotAllowed is the router's 405 handler.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteEnvelope(w, http.StatusMethodNotAllowed, dtos.NewErrorEnvelope(messageMethodNotAllowed))
}
