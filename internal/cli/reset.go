package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset-listings",
	Short: "Replace the stored listings with the seed catalog",
	Args:  cobra.NoArgs,
	Run:   runResetListings,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runResetListings(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	app.Store.Reset(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "Listings reset to %d seed entries\n", app.Store.Len())
}
