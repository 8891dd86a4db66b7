package wallet

import (
	"context"
	"sync"

	"github.com/vietddude/codemarket/internal/core/domain"
)

// MockProvider implements Provider for testing
type MockProvider struct {
	ChainIDFunc         func(ctx context.Context) (domain.ChainID, error)
	SwitchChainFunc     func(ctx context.Context, chainID domain.ChainID) error
	AddChainFunc        func(ctx context.Context, params domain.ChainParams) error
	RequestAccountsFunc func(ctx context.Context) ([]string, error)
	AccountsFunc        func(ctx context.Context) ([]string, error)
	SendFunc            func(ctx context.Context, tx domain.TxRequest) (string, error)

	mu       sync.Mutex
	calls    []string
	handler  func(Event)
	unsubbed bool
}

func (m *MockProvider) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockProvider) ChainID(ctx context.Context) (domain.ChainID, error) {
	m.record("eth_chainId")
	if m.ChainIDFunc != nil {
		return m.ChainIDFunc(ctx)
	}
	return domain.ChainIDSepolia, nil
}

func (m *MockProvider) SwitchChain(ctx context.Context, chainID domain.ChainID) error {
	m.record("wallet_switchEthereumChain")
	if m.SwitchChainFunc != nil {
		return m.SwitchChainFunc(ctx, chainID)
	}
	return nil
}

func (m *MockProvider) AddChain(ctx context.Context, params domain.ChainParams) error {
	m.record("wallet_addEthereumChain")
	if m.AddChainFunc != nil {
		return m.AddChainFunc(ctx, params)
	}
	return nil
}

func (m *MockProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	m.record("eth_requestAccounts")
	if m.RequestAccountsFunc != nil {
		return m.RequestAccountsFunc(ctx)
	}
	return []string{"0xAbC0000000000000000000000000000000000001"}, nil
}

func (m *MockProvider) Accounts(ctx context.Context) ([]string, error) {
	m.record("eth_accounts")
	if m.AccountsFunc != nil {
		return m.AccountsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProvider) SendTransaction(ctx context.Context, tx domain.TxRequest) (string, error) {
	m.record("eth_sendTransaction")
	if m.SendFunc != nil {
		return m.SendFunc(ctx, tx)
	}
	return "0xhash", nil
}

func (m *MockProvider) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.handler = nil
		m.unsubbed = true
		m.mu.Unlock()
	}
}

// Emit delivers an event to the current subscriber.
func (m *MockProvider) Emit(ev Event) {
	m.mu.Lock()
	fn := m.handler
	m.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
