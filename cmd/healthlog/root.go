// ABOUTME: Root Cobra command for the healthlog CLI.
// ABOUTME: Opens config, logging, store, and tracker via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/config"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/tracker"
)

var (
	cfg     *config.Config
	store   kv.Store
	trk     *tracker.Tracker
	logger  *zap.Logger
	backend string
)

var rootCmd = &cobra.Command{
	Use:   "healthlog",
	Short: "Personal health journal",
	Long: `healthlog records blood sugar, blood pressure, body weight, and daily
activities, then classifies readings and reports averages, trends, and streaks.

WHAT IT TRACKS:

  glucose     Blood sugar in mg/dL with meal context
  bp          Blood pressure (systolic/diastolic mmHg) and pulse
  weight      Body weight in kg or lbs, body fat, muscle mass
  activity    Exercise, meals, medication, sleep, and other events

QUICK START:

  $ healthlog glucose add 95 --context fasting
  $ healthlog bp add 120 80 --hr 64
  $ healthlog weight add 182 --unit lbs
  $ healthlog activity add exercise "Morning run" --duration 30
  $ healthlog list glucose --days 7
  $ healthlog summary

STORAGE:

  Set "backend" in ~/.config/healthlog/config.json (or HEALTHLOG_BACKEND, or
  --backend) to one of:

    charm    Charm KV with encrypted cloud sync (default)
    badger   Local Badger database under the data directory
    sqlite   Local SQLite database under the data directory
    memory   Nothing persisted; useful for trying things out

MCP INTEGRATION:

  Run 'healthlog mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "healthlog": { "command": "healthlog", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "install-skill" {
			return nil
		}
		return openApp()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func openApp() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(logging.Options{Dir: cfg.GetLogDir(), Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	store, err = cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	unit, _ := cfg.GetWeightUnit()
	trk = tracker.New(store, tracker.Options{
		Logger:     logger,
		HeightCm:   cfg.HeightCm,
		WeightUnit: unit,
	})

	logger.Named(logging.NameCLI).Debug("opened store", zap.String("backend", cfg.GetBackend()))
	return nil
}

func closeApp() error {
	var errs []error
	if store != nil {
		errs = append(errs, store.Close())
		store = nil
	}
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	trk = nil
	return errors.Join(errs...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend (charm, badger, sqlite, memory)")
}
