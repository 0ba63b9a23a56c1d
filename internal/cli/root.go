package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-smsproxy/internal/config"
	"github.com/iyunix/go-smsproxy/internal/domain"
	"github.com/iyunix/go-smsproxy/internal/handlers"
	"github.com/iyunix/go-smsproxy/internal/services"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
	"github.com/iyunix/go-smsproxy/internal/validation"
)

type runner struct {
	loadConfig func() (*config.Config, error)
	newClient  func(cfg *config.Config, logger *slog.Logger) (provider.Client, error)
}

type rootOptions struct {
	apiURL   string
	timeout  time.Duration
	logLevel string
}

func defaultRunner() runner {
	return runner{
		loadConfig: config.Load,
		newClient: func(cfg *config.Config, logger *slog.Logger) (provider.Client, error) {
			pcfg := provider.DefaultConfig()
			pcfg.APIURL = cfg.APIURL
			pcfg.Token = cfg.Token
			pcfg.Timeout = cfg.Timeout
			return provider.NewTigerSMSClient(pcfg, logger)
		},
	}
}

// NewRootCmd builds the diagnostic CLI. It drives the same validation and
// provider client as the HTTP server, one call per invocation.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultRunner())
}

func newRootCmd(r runner) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "smsproxy-diag",
		Short:         "Call the SMS activation provider directly",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.apiURL, "api-url", "", "override TIGER_SMS_API_URL")
	fs.DurationVar(&opts.timeout, "timeout", 0, "override TIGER_SMS_TIMEOUT")
	fs.StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	cmd.AddCommand(
		newGetNumberCmd(r, opts),
		newActivationCmd(r, opts, domain.OpGetSms, "get-sms", "Fetch the SMS received for an activation"),
		newActivationCmd(r, opts, domain.OpCancelNumber, "cancel-number", "Cancel an activation"),
		newActivationCmd(r, opts, domain.OpGetStatus, "get-status", "Show the status of an activation"),
	)
	return cmd
}

func newGetNumberCmd(r runner, opts *rootOptions) *cobra.Command {
	var country, service string
	cmd := &cobra.Command{
		Use:   "get-number",
		Short: "Rent a number for a service in a country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if cmd.Flags().Changed("country") {
				query.Set("country", country)
			}
			if cmd.Flags().Changed("service") {
				query.Set("service", service)
			}
			return r.run(cmd, opts, domain.OpGetNumber, query)
		},
	}
	cmd.Flags().StringVarP(&country, "country", "c", "", "two-letter country code (default from config)")
	cmd.Flags().StringVarP(&service, "service", "s", "", "two-letter service code (default from config)")
	return cmd
}

func newActivationCmd(r runner, opts *rootOptions, op domain.Operation, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <activation>",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if len(args) == 1 {
				query.Set("activation", args[0])
			}
			return r.run(cmd, opts, op, query)
		},
	}
}

func (r runner) run(cmd *cobra.Command, opts *rootOptions, op domain.Operation, query url.Values) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	logger := services.NewLoggerWithWriter(cmd.ErrOrStderr(), "smsproxy-diag", cfg.LogLevel, cfg.Environment)

	v, err := validation.New(cfg.AllowedCountries, cfg.AllowedServices)
	if err != nil {
		return err
	}
	req, err := v.Validate(op, query)
	if err != nil {
		return writeFailure(cmd, err)
	}

	client, err := r.newClient(cfg, logger)
	if err != nil {
		return err
	}
	svc := services.NewActivationService(client, cfg.DefaultCountry, cfg.DefaultService)

	result, err := svc.Dispatch(cmd.Context(), req)
	if err != nil {
		return writeFailure(cmd, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result))
	return err
}

// writeFailure prints the same envelope the HTTP server would send.
func writeFailure(cmd *cobra.Command, err error) error {
	status, envelope := handlers.Translate(err)
	body, _ := json.Marshal(envelope)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), string(body))
	return fmt.Errorf("%s failed with status %d: %w", cmd.Name(), status, err)
}
