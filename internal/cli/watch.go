package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/core/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow wallet events and serve health and metrics",
	Args:  cobra.NoArgs,
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	// No terminal here; wallet notifications go to the log.
	ctx, app := bootstrapWith(cmd, func() notify.Notifier {
		return notify.NewSlogNotifier(slog.Default().With("component", "notify"))
	})
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Watching wallet",
		"connected", app.Wallet.IsConnected(),
		"address", app.Wallet.FormatAddress(app.Wallet.Address()),
		"listings", app.Store.Len(),
		"config", cfgPath,
	)

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Watch stopped", "error", err)
		app.Close()
		os.Exit(1)
	}
	slog.Info("Shutting down...")
}
