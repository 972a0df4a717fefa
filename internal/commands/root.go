// Package commands implements the simplifi-convert command line
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/damon-houk/simplifi-csv-converter/internal/app"
	domainservice "github.com/damon-houk/simplifi-csv-converter/internal/domain/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/config"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

// rootOptions are the persistent flags shared by every subcommand. Set flags
// override the environment configuration.
type rootOptions struct {
	logLevel     string
	rateStore    string
	fallbackRate float64
	provider     domainservice.RateProvider
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// A nil provider uses the HTTP exchange rate client.
func NewRootCommand(provider domainservice.RateProvider) *cobra.Command {
	opts := &rootOptions{provider: provider}

	rootCmd := &cobra.Command{
		Use:   "simplifi-convert",
		Short: "Convert N26, Wise and Fortuneo exports into Simplifi CSV with USD amounts",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.rateStore, "rate-store", "", "badger directory caching historical rates across runs")
	rootCmd.PersistentFlags().Float64Var(&opts.fallbackRate, "fallback-rate", 0, "rate used when the provider is unreachable")

	rootCmd.AddCommand(newBanksCommand())
	rootCmd.AddCommand(newPreviewCommand(opts))
	rootCmd.AddCommand(newConvertCommand(opts))

	return rootCmd
}

// openApp loads the configuration, applies flag overrides and wires the service.
// Logs go to the command's stderr so stdout only carries results.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	cfg := config.Load()

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("rate-store") {
		cfg.RateStorePath = opts.rateStore
	}
	if cmd.Flags().Changed("fallback-rate") {
		cfg.FallbackRate = opts.fallbackRate
	}

	log := logger.NewJSONLogger(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	a, err := app.New(cfg, log, opts.provider)
	if err != nil {
		return nil, fmt.Errorf("initializing converter: %w", err)
	}
	return a, nil
}

func readStatement(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
