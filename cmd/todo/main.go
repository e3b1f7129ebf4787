package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssta/todo/internal/config"
	"github.com/ssta/todo/internal/service"
	"github.com/ssta/todo/internal/store"
)

var (
	flagConfig string

	appStore *store.SQLiteStore
	tasks    *service.TaskService
	prefs    *service.PreferencesService
)

var rootCmd = &cobra.Command{
	Use:           "todo",
	Short:         "Track tasks through a three-state workflow",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appStore == nil {
			return nil
		}
		return appStore.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default ~/.config/todo/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(prefsCmd)
}

func initApp(cmd *cobra.Command) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.Database != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	appStore, err = store.NewSQLiteStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", cfg.Database, err)
	}

	tasks = service.NewTaskService(appStore, logger)
	prefs = service.NewPreferencesService(cmd.Context(), appStore, logger)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// renderErr converts a service error to what the user should see:
// validation messages verbatim, infrastructure messages with a retry
// hint.
func renderErr(err error) error {
	if service.IsInfrastructure(err) {
		return fmt.Errorf("%s (please retry)", err.Error())
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
