package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcana-cards/arcana/arcana"
	"github.com/arcana-cards/arcana/arcana/config"
	"github.com/arcana-cards/arcana/arcana/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
	cfg        *arcana.Config
)

var rootCmd = &cobra.Command{
	Use:           "arcana",
	Short:         "Trading card pack opening backend",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		allowMissing := !cmd.Flags().Changed("config")
		loaded, err := arcana.LoadConfig(configPath, allowMissing)
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format, cfg.Log.AddSource))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logger.LogError("Command failed", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp connects, runs fn and logs the command outcome.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *arcana.App) error) error {
	start := time.Now()

	connectCtx, cancel := context.WithTimeout(cmd.Context(), config.StartupTimeout)
	app, err := arcana.New(connectCtx, *cfg, version, commit)
	cancel()
	if err != nil {
		return err
	}
	defer app.Close()

	err = fn(cmd.Context(), app)
	logger.LogCommand(cmd.CommandPath(), time.Since(start), err)
	return err
}
