package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
)

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) Call(ctx context.Context, action string, params map[string]string) (domain.UpstreamResult, error) {
	args := m.Called(ctx, action, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.UpstreamResult), args.Error(1)
}

func TestActivationService_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		req        domain.ActivationRequest
		wantAction string
		wantParams map[string]string
	}{
		{
			name:       "getNumber with defaults",
			req:        domain.ActivationRequest{Operation: domain.OpGetNumber},
			wantAction: "getNumber",
			wantParams: map[string]string{"country": "se", "service": "ds"},
		},
		{
			name:       "getNumber explicit",
			req:        domain.ActivationRequest{Operation: domain.OpGetNumber, Country: "us", Service: "wa"},
			wantAction: "getNumber",
			wantParams: map[string]string{"country": "us", "service": "wa"},
		},
		{
			name:       "getNumber partial",
			req:        domain.ActivationRequest{Operation: domain.OpGetNumber, Service: "tg"},
			wantAction: "getNumber",
			wantParams: map[string]string{"country": "se", "service": "tg"},
		},
		{
			name:       "getSms",
			req:        domain.ActivationRequest{Operation: domain.OpGetSms, Activation: "11"},
			wantAction: "getSms",
			wantParams: map[string]string{"activation": "11"},
		},
		{
			name:       "cancelNumber",
			req:        domain.ActivationRequest{Operation: domain.OpCancelNumber, Activation: "12"},
			wantAction: "cancelNumber",
			wantParams: map[string]string{"activation": "12"},
		},
		{
			name:       "getStatus",
			req:        domain.ActivationRequest{Operation: domain.OpGetStatus, Activation: "13"},
			wantAction: "getStatus",
			wantParams: map[string]string{"activation": "13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockProviderClient)
			body := domain.UpstreamResult(`{"raw":true}`)
			client.On("Call", mock.Anything, tt.wantAction, tt.wantParams).Return(body, nil).Once()

			svc := NewActivationService(client, "se", "ds")
			got, err := svc.Dispatch(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, body, got)
			client.AssertExpectations(t)
		})
	}
}

func TestActivationService_Dispatch_PropagatesUpstreamError(t *testing.T) {
	client := new(MockProviderClient)
	upErr := provider.NewStatusError(502)
	client.On("Call", mock.Anything, "getStatus", mock.Anything).Return(nil, upErr).Once()

	svc := NewActivationService(client, "se", "ds")
	got, err := svc.Dispatch(context.Background(), domain.ActivationRequest{Operation: domain.OpGetStatus, Activation: "1"})
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, upErr))
	client.AssertExpectations(t)
}

func TestActivationService_Dispatch_UnknownOperation(t *testing.T) {
	client := new(MockProviderClient)
	svc := NewActivationService(client, "se", "ds")

	_, err := svc.Dispatch(context.Background(), domain.ActivationRequest{Operation: "setStatus"})
	require.Error(t, err)
	client.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivationService_HandlersCoverEveryOperation(t *testing.T) {
	svc := NewActivationService(new(MockProviderClient), "se", "ds")
	for _, op := range domain.Operations {
		assert.Contains(t, svc.handlers, op)
	}
}
