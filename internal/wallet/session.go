package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/core/notify"
	"github.com/vietddude/codemarket/internal/metrics"
)

// Config holds session manager settings.
type Config struct {
	// Target is the network the wallet must be on. Defaults to Sepolia.
	Target domain.ChainParams

	// Notifier receives connect/disconnect notifications. Defaults to discard.
	Notifier notify.Notifier

	// Reload runs on every chainChanged event, on the provider's event
	// goroutine. It must not block on wallet calls.
	Reload func()

	Logger *slog.Logger
}

// Manager tracks the wallet session for one process.
type Manager struct {
	provider Provider
	target   domain.ChainParams
	notifier notify.Notifier
	reload   func()
	log      *slog.Logger

	mu          sync.RWMutex
	session     domain.Session
	unsubscribe func()
}

// NewManager creates a session manager. provider may be nil when no wallet is
// configured; Connect then reports ErrProviderUnavailable.
func NewManager(provider Provider, cfg Config) *Manager {
	if cfg.Target.ChainID == "" {
		cfg.Target = domain.Sepolia
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		provider: provider,
		target:   cfg.Target,
		notifier: cfg.Notifier,
		reload:   cfg.Reload,
		log:      cfg.Logger.With("component", "wallet"),
	}
}

// SetReload replaces the chainChanged hook.
func (m *Manager) SetReload(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload = fn
}

// Start subscribes to provider events and adopts an already-authorized account.
// Subscribing first means no account change after the initial read is lost.
func (m *Manager) Start(ctx context.Context) {
	if m.provider == nil {
		return
	}

	unsubscribe := m.provider.Subscribe(m.handleEvent)

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()

	if err := m.Refresh(ctx); err != nil {
		m.log.Error("Error checking connection", "error", err)
	}
}

// Refresh re-derives the session from eth_accounts: the first authorized
// account becomes active, none clears the session. A wallet that revoked
// this client (4100) also clears it; other errors leave it untouched.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.provider == nil {
		return ErrProviderUnavailable
	}

	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		if code, ok := ErrorCode(err); ok && code == CodeUnauthorized {
			m.set("", false)
		}
		return fmt.Errorf("refresh session: %w", err)
	}

	if len(accounts) > 0 {
		m.set(accounts[0], true)
	} else {
		m.set("", false)
	}
	return nil
}

// Close stops listening to provider events.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Connect moves the wallet to the target network and requests account access.
func (m *Manager) Connect(ctx context.Context) error {
	if m.provider == nil {
		m.notifier.Notify(ctx, notify.Error(
			"Wallet not found",
			"Please install or configure a wallet provider to use this feature",
		))
		return ErrProviderUnavailable
	}

	if err := m.ensureNetwork(ctx); err != nil {
		m.log.Error("Error checking/switching network", "target", m.target.ChainID, "error", err)
		m.notifier.Notify(ctx, notify.Error(
			"Network error",
			fmt.Sprintf("Please switch to %s", m.target.ChainName),
		))
		return err
	}

	accounts, err := m.provider.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = ErrNoAccounts
	}
	if err != nil {
		m.log.Error("Error connecting wallet", "error", err)
		m.notifier.Notify(ctx, notify.Error("Connection failed", "Failed to connect wallet"))
		return fmt.Errorf("connect wallet: %w", err)
	}

	m.set(accounts[0], true)
	m.log.Info("Wallet connected", "address", accounts[0])
	m.notifier.Notify(ctx, notify.Info(
		"Wallet connected",
		"Connected to "+FormatAddress(accounts[0]),
	))

	return nil
}

// Disconnect forgets the session locally. Injected wallets have no revoke call.
func (m *Manager) Disconnect(ctx context.Context) {
	m.set("", false)
	m.notifier.Notify(ctx, notify.Info("Wallet disconnected", "Your wallet has been disconnected"))
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Address returns the active address, or "" when disconnected.
func (m *Manager) Address() string {
	return m.Session().Address
}

// IsConnected reports whether a session is active.
func (m *Manager) IsConnected() bool {
	return m.Session().Connected
}

// FormatAddress shortens addr for display.
func (m *Manager) FormatAddress(addr string) string {
	return FormatAddress(addr)
}

func (m *Manager) ensureNetwork(ctx context.Context) error {
	current, err := m.provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkMismatch, err)
	}
	if current.Equal(m.target.ChainID) {
		return nil
	}

	m.log.Info("Switching network", "from", current, "to", m.target.ChainID)
	err = m.provider.SwitchChain(ctx, m.target.ChainID)
	if err == nil {
		return nil
	}

	if code, ok := ErrorCode(err); !ok || code != CodeUnrecognizedChain {
		return fmt.Errorf("%w: %w", ErrNetworkMismatch, err)
	}

	m.log.Info("Network unknown to wallet, registering", "chain", m.target.ChainName)
	if err := m.provider.AddChain(ctx, m.target); err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkMismatch, err)
	}
	if err := m.provider.SwitchChain(ctx, m.target.ChainID); err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkMismatch, err)
	}

	return nil
}

func (m *Manager) handleEvent(ev Event) {
	metrics.WalletEventsTotal.WithLabelValues(string(ev.Kind)).Inc()

	switch ev.Kind {
	case EventAccountsChanged:
		if len(ev.Accounts) > 0 {
			m.set(ev.Accounts[0], true)
			m.log.Info("Account changed", "address", ev.Accounts[0])
		} else {
			m.set("", false)
			m.log.Info("Wallet locked or disconnected")
		}
	case EventChainChanged:
		m.log.Info("Chain changed, reloading", "chain", ev.ChainID)
		m.mu.RLock()
		reload := m.reload
		m.mu.RUnlock()
		if reload != nil {
			reload()
		}
	}
}

func (m *Manager) set(address string, connected bool) {
	m.mu.Lock()
	m.session = domain.Session{Address: address, Connected: connected}
	m.mu.Unlock()

	if connected {
		metrics.WalletConnected.Set(1)
	} else {
		metrics.WalletConnected.Set(0)
	}
}
