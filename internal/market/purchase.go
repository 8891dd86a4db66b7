package market

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/metrics"
)

// Outcome is the result class of a purchase attempt.
type Outcome string

const (
	OutcomeNotConnected     Outcome = "not_connected"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeAlreadyPurchased Outcome = "already_purchased"
	OutcomeSuccess          Outcome = "success"
	OutcomeFailed           Outcome = "failed"
)

// PurchaseResult reports what happened to a purchase.
type PurchaseResult struct {
	ListingID string
	Outcome   Outcome
	TxHash    string
	Err       error
}

// OK reports whether the payment was submitted.
func (r PurchaseResult) OK() bool { return r.Outcome == OutcomeSuccess }

// EvaluatePurchase checks purchase preconditions in order: session, listing
// existence, prior purchase. It returns nil when the payment may proceed.
// listing is nil when the id is unknown.
func EvaluatePurchase(sess domain.Session, listing *domain.Listing) error {
	if !sess.Active() {
		return ErrNotConnected
	}
	if listing == nil {
		return ErrListingNotFound
	}
	if hasPurchased(*listing, sess.Address) {
		return ErrAlreadyPurchased
	}
	return nil
}

// OutcomeOf maps a purchase error to its outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNotConnected):
		return OutcomeNotConnected
	case errors.Is(err, ErrListingNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrAlreadyPurchased):
		return OutcomeAlreadyPurchased
	default:
		return OutcomeFailed
	}
}

// PurchaseListing pays the marketplace owner the listing price and records
// the buyer. No on-chain confirmation is awaited.
func (s *Store) PurchaseListing(ctx context.Context, id string) PurchaseResult {
	sess := s.session.Session()

	var target *domain.Listing
	if l, ok := s.GetListingByID(id); ok {
		target = &l
	}

	if err := EvaluatePurchase(sess, target); err != nil {
		return s.finish(id, "", err)
	}
	if s.payer == nil {
		return s.finish(id, "", ErrNoPayer)
	}

	value, err := ToWei(target.Price)
	if err != nil {
		return s.finish(id, "", err)
	}

	hash, err := s.payer.SendTransaction(ctx, domain.TxRequest{
		From:  sess.Address,
		To:    s.cfg.Owner,
		Value: value,
		Gas:   s.cfg.GasLimit,
	})
	if err != nil {
		s.log.Error("Purchase error", "id", id, "error", err)
		return s.finish(id, "", fmt.Errorf("send transaction: %w", err))
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 && !hasPurchased(s.listings[i], sess.Address) {
		s.listings[i].Sales++
		s.listings[i].PurchasedBy = append(s.listings[i].PurchasedBy, sess.Address)
	}
	s.mu.Unlock()

	s.log.Info("Purchase submitted", "id", id, "buyer", sess.Address, "tx", hash)
	s.Persist(ctx)
	return s.finish(id, hash, nil)
}

func (s *Store) finish(id, hash string, err error) PurchaseResult {
	r := PurchaseResult{ListingID: id, Outcome: OutcomeOf(err), TxHash: hash, Err: err}
	metrics.PurchasesTotal.WithLabelValues(string(r.Outcome)).Inc()
	return r
}

// ToWei converts a price to wei, flooring at 18 decimal places.
func ToWei(price float64) (*big.Int, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("price %v is not a finite number", price)
	}
	d := decimal.NewFromFloat(price)
	if d.IsNegative() {
		return nil, fmt.Errorf("negative price %s", d)
	}
	return d.Shift(18).Floor().BigInt(), nil
}

func hasPurchased(l domain.Listing, address string) bool {
	return slices.ContainsFunc(l.PurchasedBy, func(a string) bool {
		return domain.SameAddress(a, address)
	})
}
