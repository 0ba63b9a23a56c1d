// File: internal/services/activation_service.go
package services

import (
	"context"
	"fmt"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
)

// ActionHandler runs one operation against the provider.
type ActionHandler interface {
	Execute(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error)
}

// ActionFunc adapts a plain function to ActionHandler.
type ActionFunc func(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error)

func (f ActionFunc) Execute(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
	return f(ctx, req)
}

// ActivationService maps each operation to its provider action and returns
// the provider's answer untouched.
type ActivationService struct {
	client         provider.Client
	defaultCountry string
	defaultService string
	handlers       map[domain.Operation]ActionHandler
}

// NewActivationService builds the fixed dispatch table.
func NewActivationService(client provider.Client, defaultCountry, defaultService string) *ActivationService {
	s := &ActivationService{
		client:         client,
		defaultCountry: defaultCountry,
		defaultService: defaultService,
	}
	s.handlers = map[domain.Operation]ActionHandler{
		domain.OpGetNumber: ActionFunc(func(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
			return s.GetNumber(ctx, req.Country, req.Service)
		}),
		domain.OpGetSms: ActionFunc(func(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
			return s.GetSms(ctx, req.Activation)
		}),
		domain.OpCancelNumber: ActionFunc(func(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
			return s.CancelNumber(ctx, req.Activation)
		}),
		domain.OpGetStatus: ActionFunc(func(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
			return s.GetStatus(ctx, req.Activation)
		}),
	}
	return s
}

// Dispatch routes a validated request to its handler.
func (s *ActivationService) Dispatch(ctx context.Context, req domain.ActivationRequest) (domain.UpstreamResult, error) {
	handler, ok := s.handlers[req.Operation]
	if !ok {
		return nil, fmt.Errorf("unsupported operation %q", req.Operation)
	}
	return handler.Execute(ctx, req)
}

// GetNumber rents a number. Empty country or service falls back to the defaults.
func (s *ActivationService) GetNumber(ctx context.Context, country, service string) (domain.UpstreamResult, error) {
	if country == "" {
		country = s.defaultCountry
	}
	if service == "" {
		service = s.defaultService
	}
	return s.client.Call(ctx, string(domain.OpGetNumber), map[string]string{
		"country": country,
		"service": service,
	})
}

func (s *ActivationService) GetSms(ctx context.Context, activation string) (domain.UpstreamResult, error) {
	return s.callWithActivation(ctx, domain.OpGetSms, activation)
}

func (s *ActivationService) CancelNumber(ctx context.Context, activation string) (domain.UpstreamResult, error) {
	return s.callWithActivation(ctx, domain.OpCancelNumber, activation)
}

func (s *ActivationService) GetStatus(ctx context.Context, activation string) (domain.UpstreamResult, error) {
	return s.callWithActivation(ctx, domain.OpGetStatus, activation)
}

func (s *ActivationService) callWithActivation(ctx context.Context, op domain.Operation, activation string) (domain.UpstreamResult, error) {
	return s.client.Call(ctx, string(op), map[string]string{"activation": activation})
}
