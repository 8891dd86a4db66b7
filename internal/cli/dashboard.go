package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/core/notify"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show listings and purchases of the connected wallet",
	Args:  cobra.NoArgs,
	Run:   runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	if !app.Wallet.IsConnected() {
		newTerminalNotifier(cmd.OutOrStdout()).Notify(ctx,
			notify.Error("Not connected", "Please connect your wallet to view your dashboard"))
		app.Close()
		os.Exit(1)
	}

	renderDashboard(cmd.OutOrStdout(), app.Wallet.Address(), app.Store.Dashboard())
}
