package market

import (
	"errors"

	"github.com/vietddude/codemarket/internal/core/notify"
)

// PurchaseNotification renders a purchase result for the user.
func PurchaseNotification(r PurchaseResult) notify.Notification {
	switch r.Outcome {
	case OutcomeSuccess:
		return notify.Info("Purchase successful!", "Transaction hash: "+shortHash(r.TxHash)+"...")
	case OutcomeNotConnected:
		return notify.Error("Not connected", "Please connect your wallet to make a purchase")
	case OutcomeNotFound:
		return notify.Error("Listing not found", "The listing you're trying to purchase doesn't exist")
	case OutcomeAlreadyPurchased:
		return notify.Error("Already purchased", "You've already purchased this code")
	default:
		desc := "Failed to complete the transaction"
		if r.Err != nil {
			desc = r.Err.Error()
		}
		return notify.Error("Purchase failed", desc)
	}
}

// AddListingNotification renders the result of AddListing.
func AddListingNotification(err error) notify.Notification {
	switch {
	case err == nil:
		return notify.Info("Listing added", "Your code has been listed on the marketplace")
	case errors.Is(err, ErrNotConnected):
		return notify.Error("Not connected", "Please connect your wallet to add a listing")
	case errors.Is(err, ErrInvalidListing):
		return notify.Error("Missing information", err.Error())
	default:
		return notify.Error("Listing failed", err.Error())
	}
}

func shortHash(h string) string {
	if len(h) > 10 {
		return h[:10]
	}
	return h
}
