package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"playcoach/internal/config"
	"playcoach/internal/logging"
	"playcoach/internal/submission"
	"playcoach/internal/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiBaseURL string

	// Resolved in PersistentPreRunE
	appConfig         *config.Config
	appLogger         *logging.Logger
	telemetryShutdown func(context.Context) error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Game Play Coach - situational strategy for the dugout",
	Long: `coach turns a live game situation into a strategic recommendation.

Enter the teams, inning, count, and runners on base; coach sends the
situation to the recommendation service and shows the pitch call, catcher
plan, defensive alignment, and offensive signs.

Run without arguments to start the interactive form.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(context.Background()); err != nil && appLogger != nil {
				appLogger.For(logging.CategoryBoot).Warn("telemetry shutdown failed", zap.Error(err))
			}
		}
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentPreRunE = setupCommand

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the coach config file")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", "", "Recommendation service base URL (or set COACH_API_BASE_URL)")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// skipConfigAnnotation marks commands that must run even when the config
// file is invalid.
const skipConfigAnnotation = "coach/skip-config"

// setupCommand resolves config, logging, and telemetry before any command runs.
func setupCommand(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	// The interactive form owns the terminal, so it logs to the file.
	output := logging.Stderr
	if !cmd.HasParent() {
		output = ""
	}
	opts, err := logging.OptionsFromConfig(cfg.Logging, output, verbose)
	if err != nil {
		return err
	}
	appLogger, err = logging.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	telemetryShutdown, err = telemetry.Setup(commandContext(cmd), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	appLogger.For(logging.CategoryBoot).Debug("coach starting", zap.String("command", cmd.CommandPath()))
	appLogger.For(logging.CategoryConfig).Debug("config resolved",
		zap.String("path", configPath),
		zap.String("base_url", cfg.Service.BaseURL),
		zap.Duration("timeout", cfg.GetServiceTimeout()),
		zap.String("theme", cfg.UI.Theme),
		zap.Bool("tracing", cfg.Telemetry.Endpoint != ""),
	)
	return nil
}

// loadConfig reads the config file, then applies the --api-base-url flag
// on top of file and environment settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiBaseURL != "" {
		cfg.Service.BaseURL = apiBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// currentConfig returns the resolved config, loading it when the command
// ran without the root pre-run hook.
func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	return loadConfig()
}

func currentLogger() *logging.Logger {
	if appLogger == nil {
		return logging.Nop()
	}
	return appLogger
}

func newClient(cfg *config.Config, logger *logging.Logger) *submission.Client {
	return submission.NewClient(submission.Config{
		BaseURL: cfg.Service.BaseURL,
		Timeout: cfg.GetServiceTimeout(),
		Logger:  logger.For(logging.CategorySubmission),
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
