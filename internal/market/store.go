// Package market owns the listing collection and the purchase flow.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/infra/storage"
	"github.com/vietddude/codemarket/internal/metrics"
)

var (
	// ErrNotConnected is returned when an action needs a wallet session.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrListingNotFound is returned for unknown listing ids.
	ErrListingNotFound = errors.New("listing not found")

	// ErrAlreadyPurchased is returned when the buyer already owns the listing.
	ErrAlreadyPurchased = errors.New("listing already purchased")

	// ErrInvalidListing is returned when required listing fields are missing.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrNoPayer is returned when a purchase has no wallet provider to pay with.
	ErrNoPayer = errors.New("no wallet provider to pay with")

	errEmptyCollection = errors.New("stored collection is empty")
)

// DefaultOwner receives every purchase payment.
const DefaultOwner = "0xfDcb4aa4426601AdfC6E48ab05658C1C109217b2"

// SessionSource exposes the current wallet session.
type SessionSource interface {
	Session() domain.Session
}

// Payer submits payment transactions.
type Payer interface {
	SendTransaction(ctx context.Context, tx domain.TxRequest) (string, error)
}

// Config holds store settings.
type Config struct {
	// Key names the persisted collection. Defaults to storage.DefaultListingsKey.
	Key string

	// Owner is the payment destination. Defaults to DefaultOwner.
	Owner string

	// GasLimit is the gas hint sent with payments. Defaults to 21000.
	GasLimit uint64

	Logger *slog.Logger
}

// Store holds the listing collection and writes it back on every change.
type Store struct {
	repo    storage.EntryRepository
	session SessionSource
	payer   Payer
	cfg     Config
	log     *slog.Logger

	mu       sync.RWMutex
	listings []domain.Listing
}

// NewStore creates an empty store. Call Initialize before use.
// payer may be nil; purchases then fail with ErrNoPayer.
func NewStore(repo storage.EntryRepository, session SessionSource, payer Payer, cfg Config) *Store {
	if cfg.Key == "" {
		cfg.Key = storage.DefaultListingsKey
	}
	if cfg.Owner == "" {
		cfg.Owner = DefaultOwner
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = domain.DefaultGasLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		repo:    repo,
		session: session,
		payer:   payer,
		cfg:     cfg,
		log:     cfg.Logger.With("component", "market"),
	}
}

// Initialize loads the persisted collection. A missing, unreadable or empty
// entry is replaced by the seed catalog, which is written back at once.
func (s *Store) Initialize(ctx context.Context) {
	listings, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrEntryNotFound) {
			s.log.Error("Error loading listings, using seed catalog", "key", s.cfg.Key, "error", err)
		}
		listings = SeedListings()
	}

	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	metrics.ListingsCount.Set(float64(len(listings)))

	if err != nil {
		s.Persist(ctx)
	}
}

func (s *Store) load(ctx context.Context) ([]domain.Listing, error) {
	data, err := s.repo.Get(ctx, s.cfg.Key)
	if err != nil {
		return nil, err
	}
	listings, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, errEmptyCollection
	}
	return listings, nil
}

// Reset replaces the collection with the seed catalog and persists it.
func (s *Store) Reset(ctx context.Context) {
	seed := SeedListings()
	s.mu.Lock()
	s.listings = seed
	s.mu.Unlock()
	metrics.ListingsCount.Set(float64(len(seed)))
	s.log.Info("Listings reset to seed catalog", "count", len(seed))
	s.Persist(ctx)
}

// Persist writes the collection if it is non-empty. Failures are logged only.
func (s *Store) Persist(ctx context.Context) {
	s.mu.RLock()
	if len(s.listings) == 0 {
		s.mu.RUnlock()
		return
	}
	data, err := Encode(s.listings)
	s.mu.RUnlock()

	if err == nil {
		err = s.repo.Put(ctx, s.cfg.Key, data)
	}
	if err != nil {
		metrics.PersistErrorsTotal.Inc()
		s.log.Error("Error saving listings", "key", s.cfg.Key, "error", err)
	}
}

// AddListing appends a listing sold by the connected address.
func (s *Store) AddListing(ctx context.Context, input domain.ListingInput) (domain.Listing, error) {
	sess := s.session.Session()
	if !sess.Active() {
		return domain.Listing{}, ErrNotConnected
	}

	input, err := NormalizeInput(input)
	if err != nil {
		return domain.Listing{}, err
	}

	listing := domain.Listing{
		ID:              newListingID(),
		Title:           input.Title,
		Description:     input.Description,
		LongDescription: input.LongDescription,
		Price:           input.Price,
		Category:        input.Category,
		Language:        input.Language,
		Seller:          sess.Address,
		SellerName:      SellerName(sess.Address),
		Features:        input.Features,
		Includes:        input.Includes,
		PurchasedBy:     []string{},
	}

	s.mu.Lock()
	s.listings = append(s.listings, listing)
	count := len(s.listings)
	s.mu.Unlock()

	metrics.ListingsCreatedTotal.Inc()
	metrics.ListingsCount.Set(float64(count))
	s.log.Info("Listing added", "id", listing.ID, "seller", listing.Seller)
	s.Persist(ctx)

	return listing.Clone(), nil
}

// GetListingByID looks a listing up by id.
func (s *Store) GetListingByID(id string) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.listings[i].Clone(), true
	}
	return domain.Listing{}, false
}

// Listings returns a copy of the full collection in stored order.
func (s *Store) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.listings)
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

func (s *Store) indexOf(id string) int {
	for i := range s.listings {
		if s.listings[i].ID == id {
			return i
		}
	}
	return -1
}

// NormalizeInput trims fields, drops blank features/includes and checks
// required fields.
func NormalizeInput(in domain.ListingInput) (domain.ListingInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.LongDescription = strings.TrimSpace(in.LongDescription)
	in.Category = strings.TrimSpace(in.Category)
	in.Language = strings.TrimSpace(in.Language)
	in.Features = nonBlank(in.Features)
	in.Includes = nonBlank(in.Includes)

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if !validPrice(in.Price) {
		missing = append(missing, "price")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Language == "" {
		missing = append(missing, "language")
	}
	if len(missing) > 0 {
		return in, fmt.Errorf("%w: missing %s", ErrInvalidListing, strings.Join(missing, ", "))
	}
	return in, nil
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p > 0
}

// SellerName derives a display name from an address, e.g. User_abcd.
func SellerName(address string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if len(s) > 4 {
		s = s[:4]
	}
	return "User_" + s
}

func newListingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func nonBlank(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cloneAll(in []domain.Listing) []domain.Listing {
	out := make([]domain.Listing, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
