package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/market"
)

var sellInput domain.ListingInput

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "List code for sale from the connected wallet",
	Args:  cobra.NoArgs,
	Run:   runSell,
}

func init() {
	f := sellCmd.Flags()
	f.StringVar(&sellInput.Title, "title", "", "listing title")
	f.StringVar(&sellInput.Description, "description", "", "short description")
	f.StringVar(&sellInput.LongDescription, "long-description", "", "detailed description")
	f.Float64Var(&sellInput.Price, "price", 0, "price in ETH")
	f.StringVar(&sellInput.Category, "category", "",
		"one of: "+strings.Join(domain.Categories, ", "))
	f.StringVar(&sellInput.Language, "language", "",
		"one of: "+strings.Join(domain.Languages, ", "))
	f.StringArrayVar(&sellInput.Features, "feature", nil, "feature bullet (repeatable)")
	f.StringArrayVar(&sellInput.Includes, "include", nil, "included item (repeatable)")

	rootCmd.AddCommand(sellCmd)
}

func runSell(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	notifier := newTerminalNotifier(cmd.OutOrStdout())

	l, err := app.Store.AddListing(ctx, sellInput)
	notifier.Notify(ctx, market.AddListingNotification(err))
	if err != nil {
		app.Close()
		os.Exit(1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listing id: %s\n", l.ID)
}
