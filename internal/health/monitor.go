package health

import (
	"context"
	"sync"
	"time"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/infra/rpc"
)

// SessionSource exposes the tracked wallet session.
type SessionSource interface {
	Session() domain.Session
}

// Counter reports the size of the listing collection.
type Counter interface {
	Len() int
}

// Pinger checks a storage backend.
type Pinger interface {
	Health(ctx context.Context) error
}

// Monitor aggregates health status from various system components.
type Monitor struct {
	session   SessionSource
	transport rpc.Transport // nil when no wallet is configured
	listings  Counter
	storage   Pinger // nil for local storage

	ttl        time.Duration
	lastCheck  time.Time
	lastReport *HealthReport
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor. transport and storage may be nil.
func NewMonitor(session SessionSource, transport rpc.Transport, listings Counter, storage Pinger) *Monitor {
	return &Monitor{
		session:   session,
		transport: transport,
		listings:  listings,
		storage:   storage,
		ttl:       10 * time.Second,
	}
}

// CheckHealth builds a report, reusing the previous one within the cache window.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastReport != nil && time.Since(m.lastCheck) < m.ttl {
		return *m.lastReport
	}

	report := HealthReport{
		SystemStatus: StatusHealthy,
		Wallet:       m.checkWallet(),
		Storage:      m.checkStorage(ctx),
		Listings:     m.listings.Len(),
	}

	report.SystemStatus = worst(report.SystemStatus, report.Wallet.Status)
	report.SystemStatus = worst(report.SystemStatus, report.Storage.Status)
	if report.Listings == 0 {
		report.SystemStatus = worst(report.SystemStatus, StatusDegraded)
	}

	m.lastCheck = time.Now()
	m.lastReport = &report
	return report
}

func (m *Monitor) checkWallet() WalletHealth {
	sess := m.session.Session()
	h := WalletHealth{
		ComponentHealth: ComponentHealth{Status: StatusHealthy},
		Connected:       sess.Active(),
		Address:         sess.Address,
	}

	if m.transport == nil {
		h.Status = StatusDegraded
		h.Detail = "no wallet provider configured"
		return h
	}

	st := m.transport.Health()
	h.ErrorRate = st.ErrorRate
	switch {
	case !st.Available:
		h.Status = StatusDegraded
		h.Detail = "wallet provider unreachable"
	case st.ErrorRate > 0.5:
		h.Status = StatusDegraded
		h.Detail = "high wallet error rate"
	}
	return h
}

func (m *Monitor) checkStorage(ctx context.Context) ComponentHealth {
	if m.storage == nil {
		return ComponentHealth{Status: StatusHealthy}
	}
	if err := m.storage.Health(ctx); err != nil {
		return ComponentHealth{Status: StatusCritical, Detail: err.Error()}
	}
	return ComponentHealth{Status: StatusHealthy}
}
