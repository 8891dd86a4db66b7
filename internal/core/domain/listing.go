package domain

// Listing represents a sellable code product and its purchase history.
type Listing struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Language        string   `json:"language"`
	Seller          string   `json:"seller"`
	SellerName      string   `json:"sellerName"`
	Rating          float64  `json:"rating"`
	Sales           int      `json:"sales"`
	Features        []string `json:"features,omitempty"`
	Includes        []string `json:"includes,omitempty"`
	Reviews         []Review `json:"reviews,omitempty"`
	PurchasedBy     []string `json:"purchasedBy"`
}

// Review is a buyer's rating of a listing.
type Review struct {
	ID      int     `json:"id"`
	User    string  `json:"user"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// ListingInput is the seller-supplied part of a new listing.
// Identity, rating and sales are assigned by the store.
type ListingInput struct {
	Title           string
	Description     string
	LongDescription string
	Price           float64
	Category        string
	Language        string
	Features        []string
	Includes        []string
}

// Clone returns a deep copy so callers can't mutate store-owned slices.
func (l Listing) Clone() Listing {
	c := l
	c.Features = cloneStrings(l.Features)
	c.Includes = cloneStrings(l.Includes)
	c.PurchasedBy = cloneStrings(l.PurchasedBy)
	if l.Reviews != nil {
		c.Reviews = append([]Review(nil), l.Reviews...)
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// Known categories.
const (
	CategoryComponent  = "Component"
	CategoryFullSystem = "Full System"
	CategoryUtility    = "Utility"
	CategoryAPI        = "API"
)

// Categories lists the categories offered when selling.
var Categories = []string{CategoryComponent, CategoryFullSystem, CategoryUtility, CategoryAPI}

// Languages lists the languages offered when selling.
var Languages = []string{"JavaScript", "TypeScript", "Python", "Java", "C#"}
