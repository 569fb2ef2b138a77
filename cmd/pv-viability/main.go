package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/internal/config"
	"github.com/iwvelando/pv-viability/internal/server"
	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/output"
	"github.com/iwvelando/pv-viability/pkg/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pv-viability",
		Short:         "Financial viability of photovoltaic installations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCalculateCmd(), newServeCmd(), newVersionCmd())
	return root
}

func newCalculateCmd() *cobra.Command {
	var configLocation, outputFormatFlag, logLevel string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate every active scenario in a configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.calculate"),
				)
			}

			results, err := calculator.CalculateScenarios(logger, *conf)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, results)
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv, json")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var serverConfig, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env file: %w", err)
			}

			// The file is overridden by PV_VIABILITY_* variables, .env included,
			// and both by flags.
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if err := applyServeFlags(cmd, cfg); err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, logger, cfg, version)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().String("address", "", "listen address override, e.g. :8080")
	cmd.Flags().String("max-upload-size", "", "maximum upload size override, e.g. 512K or 2M")
	cmd.Flags().Duration("shutdown-timeout", 0, "graceful shutdown timeout override, e.g. 30s")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *server.Config) error {
	flags := cmd.Flags()
	if flags.Changed("address") {
		address, err := flags.GetString("address")
		if err != nil {
			return err
		}
		cfg.Address = address
	}
	if flags.Changed("max-upload-size") {
		size, err := flags.GetString("max-upload-size")
		if err != nil {
			return err
		}
		bytes, err := server.ParseSize(size)
		if err != nil {
			return err
		}
		cfg.SetUploadSizeBytes(bytes)
	}
	if flags.Changed("shutdown-timeout") {
		timeout, err := flags.GetDuration("shutdown-timeout")
		if err != nil {
			return err
		}
		cfg.ShutdownTimeout = timeout
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
