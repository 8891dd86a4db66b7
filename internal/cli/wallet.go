package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the wallet and switch it to the target network",
	Args:  cobra.NoArgs,
	Run:   runConnect,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the wallet session in this process",
	Long: `Disconnect clears the locally tracked session. The wallet keeps its
authorization, so the next command adopts the account again.`,
	Args: cobra.NoArgs,
	Run:  runDisconnect,
}

func init() {
	rootCmd.AddCommand(connectCmd, disconnectCmd)
}

func runConnect(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	if err := app.Wallet.Connect(ctx); err != nil {
		app.Close()
		os.Exit(1)
	}
}

func runDisconnect(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	app.Wallet.Disconnect(ctx)
}
