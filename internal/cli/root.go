package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/codemarket/internal/control"
	"github.com/vietddude/codemarket/internal/core/config"
	"github.com/vietddude/codemarket/internal/core/notify"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "codemarket",
	Short: "Code listing marketplace",
	Long:  `Codemarket lists, sells and buys code products, paying with a wallet on Sepolia.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// bootstrap starts the app with notifications printed to the terminal.
func bootstrap(cmd *cobra.Command) (context.Context, *control.App) {
	return bootstrapWith(cmd, func() notify.Notifier {
		return newTerminalNotifier(cmd.OutOrStdout())
	})
}

// bootstrapWith loads configuration, sets up logging and starts the app.
// The notifier is built after logging is configured.
// Failures are fatal, as for any entrypoint.
func bootstrapWith(cmd *cobra.Command, notifier func() notify.Notifier) (context.Context, *control.App) {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	slogLevel := slog.LevelInfo
	switch {
	case isDebug || cfg.Logging.Level == "debug":
		slogLevel = slog.LevelDebug
	case cfg.Logging.Level == "warn":
		slogLevel = slog.LevelWarn
	case cfg.Logging.Level == "error":
		slogLevel = slog.LevelError
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := control.New(ctx, cfg, notifier())
	if err != nil {
		slog.Error("Failed to initialize marketplace", "error", err)
		os.Exit(1)
	}
	app.Start(ctx)
	return ctx, app
}
