package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vietddude/codemarket/internal/metrics"
)

// HTTPTransport implements Transport for JSON-RPC over HTTP.
type HTTPTransport struct {
	name       string
	endpoint   string
	httpClient *http.Client
	nextID     atomic.Uint64
	health     *healthTracker
}

// NewHTTPTransport creates a new HTTP-based JSON-RPC transport.
func NewHTTPTransport(name, endpoint string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		name:     name,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		health: newHealthTracker(),
	}
}

// Call makes a single JSON-RPC call.
func (t *HTTPTransport) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	start := time.Now()
	metrics.RPCCallsTotal.WithLabelValues(t.name, method).Inc()

	jsonData, err := json.Marshal(newRequest(t.nextID.Add(1), method, params))
	if err != nil {
		return nil, t.fail(method, "marshal", fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, t.fail(method, "request", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, t.fail(method, "network", fmt.Errorf("rpc call: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, t.fail(method, "429", fmt.Errorf("%w (429), retry after: %s", ErrRateLimited, resp.Header.Get("Retry-After")))
	case http.StatusForbidden:
		return nil, t.fail(method, "403", fmt.Errorf("%w (403)", ErrForbidden))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.fail(method, "read", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, t.fail(method, "http", fmt.Errorf("http %d: %s", resp.StatusCode, string(body)))
	}

	var rpcResp response
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, t.fail(method, "parse", fmt.Errorf("parse response: %w", err))
	}

	latency := time.Since(start)
	metrics.RPCLatency.WithLabelValues(t.name, method).Observe(latency.Seconds())
	// A JSON-RPC error is still a healthy round trip.
	t.health.recordSuccess(latency)

	if rpcResp.Error != nil {
		metrics.RPCErrorsTotal.WithLabelValues(t.name, method, "rpc").Inc()
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

func (t *HTTPTransport) fail(method, kind string, err error) error {
	t.health.recordFailure()
	metrics.RPCErrorsTotal.WithLabelValues(t.name, method, kind).Inc()
	return err
}

// GetName returns the transport's name.
func (t *HTTPTransport) GetName() string {
	return t.name
}

// Health returns the transport's health status.
func (t *HTTPTransport) Health() HealthStatus {
	return t.health.snapshot()
}

// Close cleans up resources.
func (t *HTTPTransport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}
