package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/core/notify"
	"github.com/vietddude/codemarket/internal/market"
	"github.com/vietddude/codemarket/internal/wallet"
)

func newTerminalNotifier(w io.Writer) notify.Notifier {
	return notify.Func(func(_ context.Context, n notify.Notification) {
		mark := "✓"
		if n.Variant == notify.VariantDestructive {
			mark = "✗"
		}
		if n.Description == "" {
			fmt.Fprintf(w, "%s %s\n", mark, n.Title)
			return
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, n.Title, n.Description)
	})
}

func renderListings(w io.Writer, listings []domain.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLANGUAGE\tPRICE\tRATING\tSALES\tSELLER")
	for _, l := range listings {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s ETH\t%s\t%s\t%s\n",
			l.ID,
			l.Title,
			l.Category,
			l.Language,
			humanize.Ftoa(l.Price),
			rating(l.Rating),
			humanize.Comma(int64(l.Sales)),
			l.SellerName,
		)
	}
	_ = tw.Flush()
}

func renderListing(w io.Writer, l domain.Listing, access market.Access) {
	fmt.Fprintf(w, "%s\n%s\n\n", l.Title, strings.Repeat("=", len(l.Title)))
	fmt.Fprintf(w, "%s\n\n", l.Description)
	if l.LongDescription != "" {
		fmt.Fprintf(w, "%s\n\n", l.LongDescription)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID:\t%s\n", l.ID)
	_, _ = fmt.Fprintf(tw, "Price:\t%s ETH (%s wei)\n", humanize.Ftoa(l.Price), weiString(l.Price))
	_, _ = fmt.Fprintf(tw, "Category:\t%s\n", l.Category)
	_, _ = fmt.Fprintf(tw, "Language:\t%s\n", l.Language)
	_, _ = fmt.Fprintf(tw, "Seller:\t%s (%s)\n", l.SellerName, wallet.FormatAddress(l.Seller))
	_, _ = fmt.Fprintf(tw, "Rating:\t%s\n", rating(l.Rating))
	_, _ = fmt.Fprintf(tw, "Sales:\t%s\n", humanize.Comma(int64(l.Sales)))
	_, _ = fmt.Fprintf(tw, "Access:\t%s\n", access)
	_ = tw.Flush()

	renderBullets(w, "Features", l.Features)
	renderBullets(w, "Includes", l.Includes)

	if len(l.Reviews) > 0 {
		fmt.Fprintf(w, "\nReviews (%d)\n", len(l.Reviews))
		for _, r := range l.Reviews {
			fmt.Fprintf(w, "  %s %s: %s\n", rating(r.Rating), r.User, r.Comment)
		}
	}
}

func renderBullets(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func renderDashboard(w io.Writer, address string, d market.Dashboard) {
	fmt.Fprintf(w, "Wallet:        %s\n", wallet.FormatAddress(address))
	fmt.Fprintf(w, "Listings:      %d\n", len(d.Listings))
	fmt.Fprintf(w, "Purchases:     %d\n", len(d.Purchases))
	fmt.Fprintf(w, "Total sales:   %s\n", humanize.Comma(int64(d.TotalSales)))
	fmt.Fprintf(w, "Revenue:       %s ETH\n\n", d.Revenue.String())

	fmt.Fprintln(w, "My listings")
	renderListings(w, d.Listings)
	fmt.Fprintln(w, "\nMy purchases")
	renderListings(w, d.Purchases)
}

func rating(r float64) string {
	if r == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", r)
}

func weiString(price float64) string {
	wei, err := market.ToWei(price)
	if err != nil {
		return "?"
	}
	return humanize.BigComma(wei)
}
