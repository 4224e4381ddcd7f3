// Command promptctl is the operator tool for bulk prompt loading and notes
// export. It talks to the database directly, using the same config as the
// API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/repository"
	"drumgen_testbench/internal/service"
)

var (
	configDir   string
	databaseURL string
	driver      string
	verbose     bool
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "promptctl",
	Short:         "Operator tool for the drumgen test bench",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "Directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: postgres or sqlite (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportNotesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is the wiring shared by every subcommand.
type app struct {
	db        *gorm.DB
	prompts   service.PromptService
	analytics service.AnalyticsService
	logger    *slog.Logger
}

func newApp() (*app, func(), error) {
	if err := config.LoadConfig(configDir); err != nil {
		return nil, nil, err
	}
	if databaseURL != "" {
		config.Cfg.Database.URL = databaseURL
	}
	if driver != "" {
		config.Cfg.Database.Driver = strings.ToLower(driver)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	promptRepo := repository.NewGormPromptRepository()
	resultRepo := repository.NewGormResultRepository()
	failureRepo := repository.NewGormLLMFailureRepository()

	return &app{
		db:        db,
		prompts:   service.NewPromptService(db, promptRepo, resultRepo, failureRepo),
		analytics: service.NewAnalyticsService(db, resultRepo, failureRepo),
		logger:    logger,
	}, closeFn, nil
}

// commandContext carries the timeout and the CLI logger.
func (a *app) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = middleware.WithLogger(ctx, a.logger)
	return context.WithTimeout(ctx, timeout)
}
