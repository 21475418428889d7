package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/solar_backoffice/internal/offline/agent"
	"github.com/SscSPs/solar_backoffice/internal/offline/connectivity"
	"github.com/SscSPs/solar_backoffice/internal/platform/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string

	cfg    *config.AgentConfig
	logger *slog.Logger
	app    *agent.App
)

var rootCmd = &cobra.Command{
	Use:   "field-agent",
	Short: "Field agent for installers: time clock and offline sync",
	Long: `field-agent records clock-in and clock-out punches and other field
mutations. When the server cannot be reached the mutations are kept in a
local queue and replayed once the connection is back.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["standalone"] == "true" {
		return nil
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	cfg, err = config.LoadAgentConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	app, err = agent.New(cmd.Context(), cfg, nil, notifier(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

// notifier prints connectivity notices in green when online and yellow when offline.
func notifier() connectivity.Notifier {
	online := color.New(color.FgGreen, color.Bold)
	offline := color.New(color.FgYellow, color.Bold)
	return connectivity.NotifierFunc(func(isOnline bool, message string) {
		if isOnline {
			online.Fprintln(os.Stderr, message)
			return
		}
		offline.Fprintln(os.Stderr, message)
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.solar-agent/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backoffice server URL")

	rootCmd.AddCommand(clockCmd, syncCmd, statusCmd, queueCmd, watchCmd, journalCmd)
}
