package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/core/notify"
	"github.com/vietddude/codemarket/internal/market"
)

var connectFirst bool

var buyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Purchase a listing with the connected wallet",
	Args:  cobra.ExactArgs(1),
	Run:   runBuy,
}

func init() {
	buyCmd.Flags().BoolVar(&connectFirst, "connect", false, "connect the wallet before purchasing")
	rootCmd.AddCommand(buyCmd)
}

func runBuy(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	notifier := newTerminalNotifier(cmd.OutOrStdout())
	fail := func() {
		app.Close()
		os.Exit(1)
	}

	if connectFirst && !app.Wallet.IsConnected() {
		if err := app.Wallet.Connect(ctx); err != nil {
			fail()
		}
	}

	if l, ok := app.Store.GetListingByID(args[0]); ok {
		if market.AccessFor(l, app.Wallet.Session()) == market.AccessOwner {
			notifier.Notify(ctx, notify.Error("Own listing", "You can't purchase your own listing"))
			fail()
		}
	}

	result := app.Store.PurchaseListing(ctx, args[0])
	notifier.Notify(ctx, market.PurchaseNotification(result))
	if !result.OK() {
		fail()
	}
}
