package market

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vietddude/codemarket/internal/core/domain"
)

// FeaturedLimit caps the featured view.
const FeaturedLimit = 3

// Featured returns the top rated listings. Equal ratings keep stored order.
func (s *Store) Featured() []domain.Listing {
	all := s.Listings()
	slices.SortStableFunc(all, func(a, b domain.Listing) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if len(all) > FeaturedLimit {
		all = all[:FeaturedLimit]
	}
	return all
}

// UserListings returns listings sold by the connected address.
func (s *Store) UserListings() []domain.Listing {
	sess := s.session.Session()
	if !sess.Active() {
		return nil
	}
	return s.filter(func(l *domain.Listing) bool {
		return sess.Owns(l.Seller)
	})
}

// UserPurchases returns listings bought by the connected address.
func (s *Store) UserPurchases() []domain.Listing {
	sess := s.session.Session()
	if !sess.Active() {
		return nil
	}
	return s.filter(func(l *domain.Listing) bool {
		return hasPurchased(*l, sess.Address)
	})
}

// Filter narrows Search results. Zero values match everything.
type Filter struct {
	Query    string
	Category string
	Language string
	MinPrice float64
	// MaxPrice <= 0 means no upper bound.
	MaxPrice float64
}

// Match reports whether l passes the filter.
func (f Filter) Match(l domain.Listing) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}
	if !anyOrEqual(f.Category, l.Category) || !anyOrEqual(f.Language, l.Language) {
		return false
	}
	if l.Price < f.MinPrice {
		return false
	}
	return f.MaxPrice <= 0 || l.Price <= f.MaxPrice
}

func anyOrEqual(want, got string) bool {
	return want == "" || strings.EqualFold(want, "all") || strings.EqualFold(want, got)
}

// Search returns listings matching f in stored order.
func (s *Store) Search(f Filter) []domain.Listing {
	return s.filter(func(l *domain.Listing) bool { return f.Match(*l) })
}

func (s *Store) filter(keep func(*domain.Listing) bool) []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Listing
	for i := range s.listings {
		if keep(&s.listings[i]) {
			out = append(out, s.listings[i].Clone())
		}
	}
	return out
}

// Access describes what a session may do with a listing.
type Access int

const (
	AccessLocked Access = iota
	AccessAvailable
	AccessPurchased
	AccessOwner
)

func (a Access) String() string {
	switch a {
	case AccessOwner:
		return "owner"
	case AccessPurchased:
		return "purchased"
	case AccessAvailable:
		return "available"
	default:
		return "locked"
	}
}

// AccessFor classifies sess against l. Sellers own their listings and
// can't buy them.
func AccessFor(l domain.Listing, sess domain.Session) Access {
	switch {
	case !sess.Active():
		return AccessLocked
	case sess.Owns(l.Seller):
		return AccessOwner
	case hasPurchased(l, sess.Address):
		return AccessPurchased
	default:
		return AccessAvailable
	}
}

// Dashboard summarizes the connected user's activity.
type Dashboard struct {
	Listings   []domain.Listing
	Purchases  []domain.Listing
	TotalSales int
	Revenue    decimal.Decimal
}

// Dashboard builds the summary for the current session.
func (s *Store) Dashboard() Dashboard {
	d := Dashboard{
		Listings:  s.UserListings(),
		Purchases: s.UserPurchases(),
		Revenue:   decimal.Zero,
	}
	for _, l := range d.Listings {
		d.TotalSales += l.Sales
		d.Revenue = d.Revenue.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Sales))))
	}
	return d
}
