// Package rpc provides JSON-RPC transports for talking to a wallet provider.
//
// Two transports are offered:
//   - HTTPTransport: request/response JSON-RPC 2.0 over HTTP
//   - WSTransport: JSON-RPC 2.0 over a WebSocket bridge, which can also push
//     provider notifications such as accountsChanged and chainChanged
//
// # Quick Start
//
//	t := rpc.NewHTTPTransport("wallet", "http://127.0.0.1:8545", 30*time.Second)
//	raw, err := t.Call(ctx, "eth_chainId", nil)
//
// Idempotent reads can be retried with CallWithRetry; writes such as
// eth_sendTransaction must not be.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRateLimited is returned when the endpoint answers HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrForbidden is returned when the endpoint answers HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrClosed is returned for calls on a closed transport.
	ErrClosed = errors.New("transport closed")
)

// Transport sends JSON-RPC requests and returns the raw result.
type Transport interface {
	// GetName returns the transport identifier used in logs and metrics
	GetName() string

	// Call makes a single JSON-RPC request
	Call(ctx context.Context, method string, params []any) (json.RawMessage, error)

	// Health returns current health metrics
	Health() HealthStatus

	// Close cleans up resources
	Close() error
}

// Subscriber is implemented by transports that receive server-pushed notifications.
type Subscriber interface {
	// Subscribe registers fn for every notification. The returned function
	// removes the registration.
	Subscribe(fn func(Notification)) (unsubscribe func())
}

// Notification is a JSON-RPC message without an id.
type Notification struct {
	Method string
	Params json.RawMessage
}

// Error is a JSON-RPC error object. Wallets use EIP-1193 codes here
// (4001 user rejected, 4902 unrecognized chain).
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ErrorCode exposes the numeric code.
func (e *Error) ErrorCode() int {
	return e.Code
}

// HealthStatus represents the health state of a transport.
type HealthStatus struct {
	Available     bool          `json:"available"`
	Latency       time.Duration `json:"latency"`
	ErrorRate     float64       `json:"error_rate"`
	LastSuccessAt time.Time     `json:"last_success_at"`
	LastFailureAt time.Time     `json:"last_failure_at"`
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

func newRequest(id uint64, method string, params []any) request {
	if params == nil {
		params = []any{}
	}
	return request{JSONRPC: "2.0", ID: id, Method: method, Params: params}
}

type response struct {
	ID     *uint64         `json:"id"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}
