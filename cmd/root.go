package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/seispick/pkg/config"
	"github.com/killallgit/seispick/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seispick",
	Short: "Seismic waveform pick review server",
	Long: `seispick - a review tool for phase picks on seismic waveforms

Serves a dashboard of events, a per-event page plotting each channel's
waveform, and an append-only log of the sample indices reviewers pick.

Features:
  • Event dashboard with pick counts
  • Random navigation to picked or unpicked events
  • Channel waveforms as raw float arrays
  • Versioned pick log with effective-pick resolution
  • Parquet export of the pick log`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initLogging)

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// initLogging configures the global logger from the persistent flags
func initLogging() {
	levelName, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonLogs, _ := rootCmd.PersistentFlags().GetBool("json-logs")

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	logger.Init(level, jsonLogs)
}

// loadConfig loads the configuration when a command needs it.
// Logging settings from the config apply unless overridden by flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("log-level") && !flags.Changed("json-logs") {
		level, err := logger.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid logging level: %w", err)
		}
		logger.Init(level, cfg.Logging.Format == "json")
	}

	return cfg, nil
}

// repeatString repeats a string n times
func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
