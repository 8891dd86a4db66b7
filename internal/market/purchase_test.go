package market

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/core/notify"
)

func TestEvaluatePurchase(t *testing.T) {
	owned := domain.Listing{ID: "1", PurchasedBy: []string{buyer}}
	fresh := domain.Listing{ID: "2", PurchasedBy: []string{}}
	active := domain.Session{Address: buyer, Connected: true}

	tests := []struct {
		name    string
		sess    domain.Session
		listing *domain.Listing
		want    error
	}{
		{"disconnected", domain.Session{}, &fresh, ErrNotConnected},
		{"disconnected beats missing", domain.Session{}, nil, ErrNotConnected},
		{"missing", active, nil, ErrListingNotFound},
		{"already purchased", active, &owned, ErrAlreadyPurchased},
		{"already purchased other case", domain.Session{Address: "0xabc0000000000000000000000000000000000001", Connected: true}, &owned, ErrAlreadyPurchased},
		{"ok", active, &fresh, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluatePurchase(tt.sess, tt.listing); !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("EvaluatePurchase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_PurchaseListing_Success(t *testing.T) {
	payer := &MockPayer{}
	s, _ := newTestStore(t, connectedAs(buyer), payer)
	before := s.Listings()

	r := s.PurchaseListing(context.Background(), "1")
	if !r.OK() || r.TxHash != "0x1234567890abcdef" {
		t.Fatalf("unexpected result %+v", r)
	}

	sent := payer.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one transaction, got %d", len(sent))
	}
	tx := sent[0]
	if tx.From != buyer || tx.To != DefaultOwner || tx.Gas != 21000 {
		t.Errorf("unexpected transaction %+v", tx)
	}
	if want, _ := new(big.Int).SetString("50000000000000000", 10); tx.Value.Cmp(want) != 0 {
		t.Errorf("value = %s, want %s", tx.Value, want)
	}

	after := s.Listings()
	for i := range after {
		if after[i].ID != "1" {
			if diff := cmp.Diff(before[i], after[i]); diff != "" {
				t.Errorf("listing %s changed:\n%s", after[i].ID, diff)
			}
			continue
		}
		if after[i].Sales != before[i].Sales+1 {
			t.Errorf("sales = %d, want %d", after[i].Sales, before[i].Sales+1)
		}
		if diff := cmp.Diff(append(before[i].PurchasedBy, buyer), after[i].PurchasedBy); diff != "" {
			t.Errorf("purchasedBy mismatch:\n%s", diff)
		}
	}

	if got := s.UserPurchases(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected listing 1 in purchases, got %d", len(got))
	}
}

func TestStore_PurchaseListing_AlreadyPurchasedSkipsProvider(t *testing.T) {
	payer := &MockPayer{}
	s, _ := newTestStore(t, connectedAs(buyer), payer)
	ctx := context.Background()

	if r := s.PurchaseListing(ctx, "3"); !r.OK() {
		t.Fatalf("first purchase failed: %+v", r)
	}
	before := s.Listings()

	r := s.PurchaseListing(ctx, "3")
	if r.Outcome != OutcomeAlreadyPurchased || !errors.Is(r.Err, ErrAlreadyPurchased) {
		t.Fatalf("unexpected result %+v", r)
	}
	if n := len(payer.Sent()); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
	if diff := cmp.Diff(before, s.Listings()); diff != "" {
		t.Errorf("collection changed:\n%s", diff)
	}
}

func TestStore_PurchaseListing_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		sess    *fakeSession
		id      string
		payer   Payer
		outcome Outcome
	}{
		{"not connected", &fakeSession{}, "1", &MockPayer{}, OutcomeNotConnected},
		{"not found", connectedAs(buyer), "nope", &MockPayer{}, OutcomeNotFound},
		{"no provider", connectedAs(buyer), "1", nil, OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, tt.sess, tt.payer)
			before := s.Listings()

			r := s.PurchaseListing(context.Background(), tt.id)
			if r.Outcome != tt.outcome {
				t.Errorf("outcome = %s, want %s", r.Outcome, tt.outcome)
			}
			if mp, ok := tt.payer.(*MockPayer); ok && len(mp.Sent()) != 0 {
				t.Error("provider should not be called")
			}
			if diff := cmp.Diff(before, s.Listings()); diff != "" {
				t.Errorf("collection changed:\n%s", diff)
			}
		})
	}
}

func TestStore_PurchaseListing_ProviderRejects(t *testing.T) {
	rejected := errors.New("User rejected the request.")
	payer := &MockPayer{
		SendFunc: func(ctx context.Context, tx domain.TxRequest) (string, error) {
			return "", rejected
		},
	}
	s, _ := newTestStore(t, connectedAs(buyer), payer)
	before := s.Listings()

	r := s.PurchaseListing(context.Background(), "2")
	if r.Outcome != OutcomeFailed || !errors.Is(r.Err, rejected) {
		t.Fatalf("unexpected result %+v", r)
	}
	if diff := cmp.Diff(before, s.Listings()); diff != "" {
		t.Errorf("collection changed:\n%s", diff)
	}

	n := PurchaseNotification(r)
	if n.Title != "Purchase failed" || n.Variant != notify.VariantDestructive {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestToWei(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0.05, "50000000000000000"},
		{0.15, "150000000000000000"},
		{0.18, "180000000000000000"},
		{1, "1000000000000000000"},
		{0, "0"},
		{0.0000000000000000015, "1"},
	}
	for _, tt := range tests {
		got, err := ToWei(tt.price)
		if err != nil {
			t.Fatalf("ToWei(%v) failed: %v", tt.price, err)
		}
		if got.String() != tt.want {
			t.Errorf("ToWei(%v) = %s, want %s", tt.price, got, tt.want)
		}
	}

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ToWei(bad); err == nil {
			t.Errorf("expected error for price %v", bad)
		}
	}
}

func TestPurchaseNotification(t *testing.T) {
	tests := []struct {
		r     PurchaseResult
		title string
	}{
		{PurchaseResult{Outcome: OutcomeSuccess, TxHash: "0x1234567890abcdef"}, "Purchase successful!"},
		{PurchaseResult{Outcome: OutcomeNotConnected}, "Not connected"},
		{PurchaseResult{Outcome: OutcomeNotFound}, "Listing not found"},
		{PurchaseResult{Outcome: OutcomeAlreadyPurchased}, "Already purchased"},
		{PurchaseResult{Outcome: OutcomeFailed}, "Purchase failed"},
	}
	for _, tt := range tests {
		if got := PurchaseNotification(tt.r); got.Title != tt.title {
			t.Errorf("%s: title = %q, want %q", tt.r.Outcome, got.Title, tt.title)
		}
	}

	n := PurchaseNotification(PurchaseResult{Outcome: OutcomeSuccess, TxHash: "0x1234567890abcdef"})
	if n.Description != "Transaction hash: 0x12345678..." {
		t.Errorf("unexpected description %q", n.Description)
	}
}
