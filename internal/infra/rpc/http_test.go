package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTransport_Call_JSONRPC20(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}

		if v, ok := req["jsonrpc"].(string); !ok || v != "2.0" {
			t.Errorf("expected jsonrpc: 2.0, got %v", req["jsonrpc"])
		}
		if req["method"] != "eth_chainId" {
			t.Errorf("expected method eth_chainId, got %v", req["method"])
		}
		// nil params must still be sent as an array
		if _, ok := req["params"].([]any); !ok {
			t.Errorf("expected params array, got %T", req["params"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req["id"],
			"result":  "0xaa36a7",
		})
	}))
	defer server.Close()

	tr := NewHTTPTransport("wallet-mock", server.URL, 5*time.Second)
	raw, err := tr.Call(context.Background(), "eth_chainId", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var chainID string
	if err := json.Unmarshal(raw, &chainID); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if chainID != "0xaa36a7" {
		t.Errorf("expected 0xaa36a7, got %s", chainID)
	}
	if !tr.Health().Available {
		t.Error("expected transport to be available after a successful call")
	}
}

func TestHTTPTransport_Call_RPCErrorKeepsCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": 4902, "message": "Unrecognized chain ID"},
		})
	}))
	defer server.Close()

	tr := NewHTTPTransport("wallet-mock", server.URL, 5*time.Second)
	_, err := tr.Call(context.Background(), "wallet_switchEthereumChain", []any{map[string]string{"chainId": "0xaa36a7"}})

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if rpcErr.ErrorCode() != 4902 {
		t.Errorf("expected code 4902, got %d", rpcErr.ErrorCode())
	}
}

func TestHTTPTransport_Call_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	tr := NewHTTPTransport("wallet-mock", server.URL, 5*time.Second)
	_, err := tr.Call(context.Background(), "eth_accounts", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if tr.Health().ErrorRate == 0 {
		t.Error("expected error rate to be recorded")
	}
}
