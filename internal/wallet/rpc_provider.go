package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/infra/rpc"
)

// RPCProvider implements Provider over a JSON-RPC transport.
type RPCProvider struct {
	transport    rpc.Transport
	retry        rpc.RetryConfig
	pollInterval time.Duration
	log          *slog.Logger
}

// NewRPCProvider wraps a transport. pollInterval is used to synthesize events
// when the transport can't push them; zero disables polling.
func NewRPCProvider(t rpc.Transport, pollInterval time.Duration, log *slog.Logger) *RPCProvider {
	if log == nil {
		log = slog.Default()
	}
	return &RPCProvider{
		transport:    t,
		retry:        rpc.DefaultRetryConfig,
		pollInterval: pollInterval,
		log:          log.With("component", "wallet-provider", "transport", t.GetName()),
	}
}

func (p *RPCProvider) ChainID(ctx context.Context) (domain.ChainID, error) {
	raw, err := rpc.CallWithRetry(ctx, p.transport, "eth_chainId", nil, p.retry)
	if err != nil {
		return "", fmt.Errorf("eth_chainId failed: %w", err)
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("invalid chain id response: %w", err)
	}
	return domain.ChainID(id), nil
}

func (p *RPCProvider) SwitchChain(ctx context.Context, chainID domain.ChainID) error {
	params := []any{map[string]string{"chainId": string(chainID)}}
	if _, err := p.transport.Call(ctx, "wallet_switchEthereumChain", params); err != nil {
		return fmt.Errorf("wallet_switchEthereumChain failed: %w", err)
	}
	return nil
}

func (p *RPCProvider) AddChain(ctx context.Context, params domain.ChainParams) error {
	if _, err := p.transport.Call(ctx, "wallet_addEthereumChain", []any{params}); err != nil {
		return fmt.Errorf("wallet_addEthereumChain failed: %w", err)
	}
	return nil
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	raw, err := p.transport.Call(ctx, "eth_requestAccounts", nil)
	if err != nil {
		return nil, fmt.Errorf("eth_requestAccounts failed: %w", err)
	}
	return decodeAccounts(raw)
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	raw, err := rpc.CallWithRetry(ctx, p.transport, "eth_accounts", nil, p.retry)
	if err != nil {
		return nil, fmt.Errorf("eth_accounts failed: %w", err)
	}
	return decodeAccounts(raw)
}

func (p *RPCProvider) SendTransaction(ctx context.Context, tx domain.TxRequest) (string, error) {
	if tx.Value == nil {
		return "", fmt.Errorf("transaction value is required")
	}

	params := []any{map[string]string{
		"from":  tx.From,
		"to":    tx.To,
		"value": fmt.Sprintf("0x%x", tx.Value),
		"gas":   fmt.Sprintf("0x%x", tx.Gas),
	}}

	// Never retried: a resend could pay twice.
	raw, err := p.transport.Call(ctx, "eth_sendTransaction", params)
	if err != nil {
		return "", fmt.Errorf("eth_sendTransaction failed: %w", err)
	}

	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil || hash == "" {
		return "", fmt.Errorf("invalid transaction hash response: %s", string(raw))
	}
	return hash, nil
}

// Subscribe forwards pushed notifications when the transport supports them,
// otherwise polls eth_accounts and eth_chainId.
func (p *RPCProvider) Subscribe(fn func(Event)) func() {
	if sub, ok := p.transport.(rpc.Subscriber); ok {
		return sub.Subscribe(func(n rpc.Notification) {
			ev, ok := decodeEvent(n)
			if !ok {
				p.log.Debug("Ignoring notification", "method", n.Method)
				return
			}
			fn(ev)
		})
	}

	if p.pollInterval <= 0 {
		return func() {}
	}

	poller := newPoller(p, p.pollInterval, p.log)
	poller.prime()
	go poller.run(fn)
	return poller.stop
}

func decodeAccounts(raw json.RawMessage) ([]string, error) {
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("invalid accounts response: %w", err)
	}
	return accounts, nil
}

// decodeEvent accepts both the EIP-1193 argument-list form
// ([["0x.."]], ["0x1"]) and bare payloads (["0x.."], "0x1").
func decodeEvent(n rpc.Notification) (Event, bool) {
	switch EventKind(n.Method) {
	case EventAccountsChanged:
		var wrapped [][]string
		if err := json.Unmarshal(n.Params, &wrapped); err == nil && len(wrapped) > 0 {
			return Event{Kind: EventAccountsChanged, Accounts: wrapped[0]}, true
		}
		var accounts []string
		if err := json.Unmarshal(n.Params, &accounts); err == nil {
			return Event{Kind: EventAccountsChanged, Accounts: accounts}, true
		}
	case EventChainChanged:
		var wrapped []string
		if err := json.Unmarshal(n.Params, &wrapped); err == nil && len(wrapped) > 0 {
			return Event{Kind: EventChainChanged, ChainID: domain.ChainID(wrapped[0])}, true
		}
		var id string
		if err := json.Unmarshal(n.Params, &id); err == nil {
			return Event{Kind: EventChainChanged, ChainID: domain.ChainID(id)}, true
		}
	}
	return Event{}, false
}
