package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/codemarket/internal/health"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show wallet, storage and listing status",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	ctx, app := bootstrap(cmd)
	defer app.Close()

	report := app.Health(ctx)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "COMPONENT\tSTATUS\tDETAIL")
	_, _ = fmt.Fprintf(w, "wallet\t%s\t%s\n", report.Wallet.Status, walletDetail(app.Wallet.FormatAddress(report.Wallet.Address), report.Wallet.Connected, report.Wallet.Detail))
	_, _ = fmt.Fprintf(w, "storage\t%s\t%s\n", report.Storage.Status, report.Storage.Detail)
	_, _ = fmt.Fprintf(w, "listings\t%d\t\n", report.Listings)
	_, _ = fmt.Fprintf(w, "system\t%s\t\n", report.SystemStatus)
	_ = w.Flush()

	if report.SystemStatus == health.StatusCritical {
		app.Close()
		os.Exit(1)
	}
}

func walletDetail(addr string, connected bool, detail string) string {
	switch {
	case detail != "":
		return detail
	case connected:
		return "connected " + addr
	default:
		return "not connected"
	}
}
