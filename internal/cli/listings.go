package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/market"
)

var filter market.Filter

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Browse and search marketplace listings",
	Args:  cobra.NoArgs,
	Run:   runListings,
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the top rated listings",
	Args:  cobra.NoArgs,
	Run:   runFeatured,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a listing in detail",
	Args:  cobra.ExactArgs(1),
	Run:   runShow,
}

func init() {
	listingsCmd.Flags().StringVarP(&filter.Query, "query", "q", "", "search title and description")
	listingsCmd.Flags().StringVar(&filter.Category, "category", "all", "category filter")
	listingsCmd.Flags().StringVar(&filter.Language, "language", "all", "language filter")
	listingsCmd.Flags().Float64Var(&filter.MinPrice, "min-price", 0, "minimum price in ETH")
	listingsCmd.Flags().Float64Var(&filter.MaxPrice, "max-price", 0, "maximum price in ETH (0 = no limit)")

	rootCmd.AddCommand(listingsCmd, featuredCmd, showCmd)
}

func runListings(cmd *cobra.Command, args []string) {
	_, app := bootstrap(cmd)
	defer app.Close()

	renderListings(cmd.OutOrStdout(), app.Store.Search(filter))
}

func runFeatured(cmd *cobra.Command, args []string) {
	_, app := bootstrap(cmd)
	defer app.Close()

	renderListings(cmd.OutOrStdout(), app.Store.Featured())
}

func runShow(cmd *cobra.Command, args []string) {
	_, app := bootstrap(cmd)
	defer app.Close()

	l, ok := app.Store.GetListingByID(args[0])
	if !ok {
		slog.Error("Listing not found", "id", args[0])
		app.Close()
		os.Exit(1)
	}
	renderListing(cmd.OutOrStdout(), l, market.AccessFor(l, app.Wallet.Session()))
}
