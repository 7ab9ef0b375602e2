package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"termgram/cmd/termgram/tui"
	"termgram/internal/api"
	"termgram/internal/config"
	"termgram/internal/logging"
)

var version = "0.3.0"

var (
	// Global flags
	verbose   bool
	serverURL string
	workspace string
	timeout   time.Duration

	// Logger for one-shot (non-interactive) commands. The interactive
	// interface owns the terminal and logs to files instead.
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "termgram",
	Short: "termgram - terminal client for the n-gram search-term report service",
	Long: `termgram uploads Amazon Ads search term reports to the n-gram
report-processing service, shows the resulting flagged-term analytics, and
manages the server-side archive.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(config.StateDir(resolveWorkspace())); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
		}

		// Skip the console logger for interactive mode (it has its own UI)
		if cmd.Use == "termgram" && cmd.CalledAs() == "termgram" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := setup()
		if err != nil {
			return err
		}
		return tui.RunInteractive(cfg, client)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the termgram version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("termgram %s\n", version)
	},
}

// initCmd writes the default config so users have a file to edit.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to .termgram/config.yaml",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath(resolveWorkspace())
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Report service URL (default from config/TERMGRAM_SERVER_URL)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from config)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// setup loads configuration, applies flag overrides, and builds the API
// client shared by every command.
func setup() (*config.Config, *api.Client, error) {
	cfg, err := config.Load(config.DefaultPath(resolveWorkspace()))
	if err != nil {
		return nil, nil, err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if timeout > 0 {
		cfg.Server.Timeout = timeout.String()
	}
	client := api.New(cfg.Server.BaseURL, cfg.Server.TimeoutDuration())
	return cfg, client, nil
}
