package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-smsproxy/internal/config"
	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
)

type recordingClient struct {
	action string
	params map[string]string
	result domain.UpstreamResult
	err    error
}

func (c *recordingClient) Call(ctx context.Context, action string, params map[string]string) (domain.UpstreamResult, error) {
	c.action = action
	c.params = params
	return c.result, c.err
}

func testRunner(client *recordingClient, seen *config.Config) runner {
	return runner{
		loadConfig: func() (*config.Config, error) {
			return &config.Config{
				LogLevel:         "error",
				APIURL:           "https://api.example.com/handler",
				Token:            "tok",
				DefaultCountry:   "se",
				DefaultService:   "ds",
				AllowedCountries: config.NewCodeSet([]string{"se", "us"}),
				AllowedServices:  config.NewCodeSet([]string{"ds", "wa"}),
				Timeout:          30 * time.Second,
			}, nil
		},
		newClient: func(cfg *config.Config, logger *slog.Logger) (provider.Client, error) {
			if seen != nil {
				*seen = *cfg
			}
			return client, nil
		},
	}
}

func execute(r runner, args ...string) (string, string, error) {
	cmd := newRootCmd(r)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGetNumber_Defaults(t *testing.T) {
	client := &recordingClient{result: domain.UpstreamResult(`{"activationId":"1"}`)}
	out, _, err := execute(testRunner(client, nil), "get-number")

	require.NoError(t, err)
	assert.Equal(t, "{\"activationId\":\"1\"}\n", out)
	assert.Equal(t, "getNumber", client.action)
	assert.Equal(t, map[string]string{"country": "se", "service": "ds"}, client.params)
}

func TestGetNumber_FlagsValidated(t *testing.T) {
	client := &recordingClient{}
	_, stderr, err := execute(testRunner(client, nil), "get-number", "--country", "zz")

	require.Error(t, err)
	assert.Contains(t, stderr, `"message":"Validation failed"`)
	assert.Contains(t, stderr, "The selected country is invalid.")
	assert.Empty(t, client.action)
}

func TestActivationCommands(t *testing.T) {
	tests := []struct {
		use    string
		action string
	}{
		{"get-sms", "getSms"},
		{"cancel-number", "cancelNumber"},
		{"get-status", "getStatus"},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			client := &recordingClient{result: domain.UpstreamResult(`{"status":"OK"}`)}
			out, _, err := execute(testRunner(client, nil), tt.use, "555")

			require.NoError(t, err)
			assert.Equal(t, `{"status":"OK"}`, strings.TrimSpace(out))
			assert.Equal(t, tt.action, client.action)
			assert.Equal(t, map[string]string{"activation": "555"}, client.params)
		})
	}
}

func TestActivationCommand_MissingActivation(t *testing.T) {
	client := &recordingClient{}
	_, stderr, err := execute(testRunner(client, nil), "get-status")

	require.Error(t, err)
	assert.Contains(t, stderr, "The activation field is required.")
	assert.Empty(t, client.action)
}

func TestUpstreamFailure_PrintsEnvelope(t *testing.T) {
	client := &recordingClient{err: provider.NewStatusError(503)}
	_, stderr, err := execute(testRunner(client, nil), "get-sms", "1")

	require.Error(t, err)
	var upErr *provider.UpstreamError
	assert.True(t, errors.As(err, &upErr))
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, stderr, "API request failed: HTTP error: 503")
}

func TestPersistentFlagsOverrideConfig(t *testing.T) {
	client := &recordingClient{result: domain.UpstreamResult(`{}`)}
	var seen config.Config
	_, _, err := execute(testRunner(client, &seen),
		"--api-url", "https://other.example.com/api", "--timeout", "5s", "get-status", "1")

	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/api", seen.APIURL)
	assert.Equal(t, 5*time.Second, seen.Timeout)
}
