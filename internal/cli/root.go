// Package cli wires the nexera command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/okian/nexera/internal/config"
	"github.com/okian/nexera/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel  string
	logFormat string

	// cfg is loaded once per invocation by loadConfig.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nexera",
	Short: "Keyword-driven asset and avatar pipelines for a 3D training scene",
	Long: `nexera resolves free-text descriptions to catalog assets and free-text
commands to avatar actions, and serves both pipelines over HTTP.

Run "nexera serve" to start the HTTP service, or use the asset, command and
pose subcommands to exercise the pipelines locally.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (defaults to config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (defaults to config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(poseCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// setup loads configuration and initializes the global logger on stderr,
// keeping stdout for command output. Flags override the configured log
// level and format.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(commandContext(cmd))
	if err != nil {
		return err
	}
	cfg = loaded

	format := cfg.LogFormat
	if logFormat != "" {
		format = logFormat
	}
	if err := logger.Init(logger.WithFormat(format), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return logger.SetLevelString(level)
}

// loadedConfig returns the configuration loaded by setup, or defaults when
// a command runs without it.
func loadedConfig() *config.Config {
	if cfg == nil {
		return config.New()
	}
	return cfg
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when the
// command was invoked without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
