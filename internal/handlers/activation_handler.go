// File: internal/handlers/activation_handler.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/requestid"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
	"github.com/iyunix/go-smsproxy/internal/validation"
)

// RequestValidator turns query parameters into a validated request.
type RequestValidator interface {
	Validate(op domain.Operation, query url.Values) (domain.ActivationRequest, error)
}

// Dispatcher executes a validated request against the provider.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error)
}

// ActivationHandler serves the four activation routes. Every route runs the
// same pipeline: validate, dispatch, translate.
type ActivationHandler struct {
	validator RequestValidator
	service   Dispatcher
	logger    *slog.Logger
}

func NewActivationHandler(validator RequestValidator, service Dispatcher, logger *slog.Logger) *ActivationHandler {
	return &ActivationHandler{
		validator: validator,
		service:   service,
		logger:    logger.With("handler", "activation"),
	}
}

// RegisterRoutes mounts the GET routes, wrapping each with mws in order.
func (h *ActivationHandler) RegisterRoutes(r *mux.Router, mws ...mux.MiddlewareFunc) {
	routes := map[string]http.HandlerFunc{
		"/getNumber":    h.GetNumber,
		"/getSms":       h.GetSms,
		"/cancelNumber": h.CancelNumber,
		"/getStatus":    h.GetStatus,
	}
	for path, fn := range routes {
		var handler http.Handler = fn
		for i := len(mws) - 1; i >= 0; i-- {
			handler = mws[i](handler)
		}
		r.Handle(path, handler).Methods(http.MethodGet)
	}
}

func (h *ActivationHandler) GetNumber(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.OpGetNumber)
}

func (h *ActivationHandler) GetSms(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.OpGetSms)
}

func (h *ActivationHandler) CancelNumber(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.OpCancelNumber)
}

func (h *ActivationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.OpGetStatus)
}

func (h *ActivationHandler) handle(w http.ResponseWriter, r *http.Request, op domain.Operation) {
	ctx := r.Context()
	logger := h.logger.With("operation", string(op), "request_id", requestid.FromContext(ctx))

	req, err := h.validator.Validate(op, r.URL.Query())
	if err != nil {
		logger.DebugContext(ctx, "rejected request", "error", err)
		h.writeError(ctx, w, logger, err)
		return
	}

	result, err := h.service.Dispatch(ctx, req)
	if err != nil {
		h.writeError(ctx, w, logger, err)
		return
	}
	writeResult(w, result)
}

func (h *ActivationHandler) writeError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error) {
	status, envelope := Translate(err)

	var verr *validation.ValidationError
	var upErr *provider.UpstreamError
	if !errors.As(err, &verr) && !errors.As(err, &upErr) {
		// provider failures are already logged by the request logger
		logger.ErrorContext(ctx, "unexpected error", "error", err)
	}
	WriteEnvelope(w, status, envelope)
}
