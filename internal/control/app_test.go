package control

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/codemarket/internal/core/config"
	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/core/notify"
	"github.com/vietddude/codemarket/internal/market"
	"github.com/vietddude/codemarket/internal/wallet"
)

const buyer = "0xAbC0000000000000000000000000000000000001"

// fakeWallet is a JSON-RPC wallet that is already authorized for buyer
type fakeWallet struct {
	mu      sync.Mutex
	methods []string
	chain   domain.ChainID
}

func (f *fakeWallet) setChain(id domain.ChainID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chain = id
}

func (f *fakeWallet) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64          `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}
		f.mu.Lock()
		f.methods = append(f.methods, req.Method)
		chain := f.chain
		f.mu.Unlock()
		if chain == "" {
			chain = domain.ChainIDSepolia
		}

		var result any
		switch req.Method {
		case "eth_chainId":
			result = string(chain)
		case "eth_accounts", "eth_requestAccounts":
			result = []string{buyer}
		case "eth_sendTransaction":
			result = "0x9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
		default:
			result = nil
		}
		json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}
}

func (f *fakeWallet) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.methods {
		if m == method {
			n++
		}
	}
	return n
}

func testConfig(walletURL string) *config.AppConfig {
	return &config.AppConfig{
		Wallet: config.WalletConfig{
			URL:       walletURL,
			Transport: config.TransportHTTP,
			Timeout:   5 * time.Second,
			Target:    domain.Sepolia,
		},
		Storage: config.StorageConfig{Driver: config.DriverMemory, Key: "codeMarketListings"},
		Server:  config.ServerConfig{Port: 0},
	}
}

func TestApp_PurchaseFlow(t *testing.T) {
	fw := &fakeWallet{}
	server := httptest.NewServer(fw.handler(t))
	defer server.Close()

	ctx := context.Background()
	rec := &notify.Recorder{}
	app, err := New(ctx, testConfig(server.URL), rec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.Close()

	app.Start(ctx)

	if !app.Wallet.IsConnected() || app.Wallet.Address() != buyer {
		t.Fatalf("expected authorized account to be adopted, got %+v", app.Wallet.Session())
	}
	if app.Store.Len() != 8 {
		t.Fatalf("expected seed catalog, got %d listings", app.Store.Len())
	}

	result := app.Store.PurchaseListing(ctx, "2")
	if !result.OK() {
		t.Fatalf("purchase failed: %+v", result)
	}
	if fw.count("eth_sendTransaction") != 1 {
		t.Errorf("expected one eth_sendTransaction, got %d", fw.count("eth_sendTransaction"))
	}
	if got := app.Store.UserPurchases(); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("unexpected purchases %v", got)
	}
}

func TestApp_NoWallet(t *testing.T) {
	ctx := context.Background()
	rec := &notify.Recorder{}
	app, err := New(ctx, testConfig(""), rec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.Close()
	app.Start(ctx)

	if err := app.Wallet.Connect(ctx); !errors.Is(err, wallet.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
	if r := app.Store.PurchaseListing(ctx, "1"); r.Outcome != market.OutcomeNotConnected {
		t.Errorf("expected not connected, got %s", r.Outcome)
	}
	if n, ok := rec.Last(); !ok || n.Title != "Wallet not found" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestApp_GracefulShutdown(t *testing.T) {
	fw := &fakeWallet{}
	server := httptest.NewServer(fw.handler(t))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	app, err := New(ctx, testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.Close()
	app.Start(ctx)

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run(ctx)
	}()

	// Let it run for a bit
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_ChainChangeReloadsSessionAndListings(t *testing.T) {
	fw := &fakeWallet{}
	server := httptest.NewServer(fw.handler(t))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Wallet.PollInterval = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app, err := New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.Close()
	app.Start(ctx)

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	// The wallet keeps its authorization after a local disconnect.
	app.Wallet.Disconnect(ctx)

	data, err := market.Encode(market.SeedListings()[:2])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := app.repo.Put(ctx, cfg.Storage.Key, data); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	fw.setChain(domain.ChainIDMainnet)

	deadline := time.Now().Add(5 * time.Second)
	for app.Store.Len() != 2 || app.Wallet.Address() != buyer {
		if time.Now().After(deadline) {
			t.Fatalf("chain change not handled: listings=%d session=%+v",
				app.Store.Len(), app.Wallet.Session())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !app.Wallet.IsConnected() {
		t.Error("expected session to be re-derived as connected")
	}

	cancel()
	select {
	case err := <-runErr:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
