package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/infra/rpc"
)

// =============================================================================
// Stubs
// =============================================================================

type stubSession struct {
	sess domain.Session
}

func (s stubSession) Session() domain.Session { return s.sess }

type stubCounter int

func (c stubCounter) Len() int { return int(c) }

type stubPinger struct {
	err error
}

func (p stubPinger) Health(ctx context.Context) error { return p.err }

type stubTransport struct {
	status rpc.HealthStatus
}

func (t *stubTransport) GetName() string { return "stub" }
func (t *stubTransport) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}
func (t *stubTransport) Health() rpc.HealthStatus { return t.status }
func (t *stubTransport) Close() error             { return nil }

// =============================================================================
// Tests
// =============================================================================

func TestMonitor_Healthy(t *testing.T) {
	monitor := NewMonitor(
		stubSession{domain.Session{Address: "0xabc", Connected: true}},
		&stubTransport{status: rpc.HealthStatus{Available: true}},
		stubCounter(8),
		stubPinger{},
	)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusHealthy {
		t.Errorf("expected healthy, got %s", report.SystemStatus)
	}
	if !report.Wallet.Connected || report.Wallet.Address != "0xabc" || report.Listings != 8 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestMonitor_Degraded(t *testing.T) {
	tests := []struct {
		name      string
		transport rpc.Transport
		listings  int
	}{
		{"no provider", nil, 8},
		{"provider down", &stubTransport{status: rpc.HealthStatus{Available: false}}, 8},
		{"error rate", &stubTransport{status: rpc.HealthStatus{Available: true, ErrorRate: 0.6}}, 8},
		{"empty collection", &stubTransport{status: rpc.HealthStatus{Available: true}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor := NewMonitor(stubSession{}, tt.transport, stubCounter(tt.listings), nil)
			report := monitor.CheckHealth(context.Background())
			if report.SystemStatus != StatusDegraded {
				t.Errorf("expected degraded, got %s", report.SystemStatus)
			}
		})
	}
}

func TestMonitor_Critical(t *testing.T) {
	monitor := NewMonitor(
		stubSession{},
		&stubTransport{status: rpc.HealthStatus{Available: true}},
		stubCounter(8),
		stubPinger{err: errors.New("connection refused")},
	)

	report := monitor.CheckHealth(context.Background())

	if report.SystemStatus != StatusCritical {
		t.Errorf("expected critical, got %s", report.SystemStatus)
	}
	if report.Storage.Detail != "connection refused" {
		t.Errorf("unexpected storage detail %q", report.Storage.Detail)
	}
}

func TestMonitor_CachesReport(t *testing.T) {
	counter := stubCounter(8)
	transport := &stubTransport{status: rpc.HealthStatus{Available: true}}
	monitor := NewMonitor(stubSession{}, transport, counter, nil)

	first := monitor.CheckHealth(context.Background())
	transport.status.Available = false
	second := monitor.CheckHealth(context.Background())

	if first.SystemStatus != second.SystemStatus {
		t.Errorf("expected cached report, got %s then %s", first.SystemStatus, second.SystemStatus)
	}
}

func TestServer_Endpoints(t *testing.T) {
	monitor := NewMonitor(stubSession{}, nil, stubCounter(8), stubPinger{err: errors.New("down")})
	srv := httptest.NewServer(NewServer(monitor, 0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["status"] != string(StatusCritical) {
		t.Errorf("unexpected body %v", body)
	}

	detailed, err := http.Get(srv.URL + "/health/detailed")
	if err != nil {
		t.Fatalf("GET /health/detailed failed: %v", err)
	}
	defer detailed.Body.Close()

	var report HealthReport
	if err := json.NewDecoder(detailed.Body).Decode(&report); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if report.Listings != 8 || report.Wallet.Status != StatusDegraded {
		t.Errorf("unexpected report %+v", report)
	}

	metrics, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	metrics.Body.Close()
	if metrics.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", metrics.StatusCode)
	}
}
