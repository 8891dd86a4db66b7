package market

import (
	"encoding/json"
	"fmt"

	"github.com/vietddude/codemarket/internal/core/domain"
)

// Encode serializes the collection as a JSON array.
func Encode(listings []domain.Listing) ([]byte, error) {
	data, err := json.Marshal(listings)
	if err != nil {
		return nil, fmt.Errorf("encode listings: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of listings. A missing purchasedBy field
// decodes to an empty list.
func Decode(data []byte) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	for i := range listings {
		if listings[i].PurchasedBy == nil {
			listings[i].PurchasedBy = []string{}
		}
	}
	return listings, nil
}
