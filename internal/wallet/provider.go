// Package wallet tracks the wallet session used as marketplace identity.
//
// The wallet itself is an external capability (Provider) reached over a JSON-RPC
// transport. Manager owns the local session state and keeps the provider on the
// target network.
package wallet

import (
	"context"
	"errors"

	"github.com/vietddude/codemarket/internal/core/domain"
)

var (
	// ErrProviderUnavailable is returned when no wallet provider is configured.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrNetworkMismatch is returned when the provider can't be moved to the target chain.
	ErrNetworkMismatch = errors.New("wallet network mismatch")

	// ErrNoAccounts is returned when the provider authorizes zero accounts.
	ErrNoAccounts = errors.New("wallet returned no accounts")
)

// EIP-1193 provider error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnrecognizedChain = 4902
)

// Provider is the injected wallet capability.
type Provider interface {
	// ChainID returns the active chain (eth_chainId)
	ChainID(ctx context.Context) (domain.ChainID, error)

	// SwitchChain asks the wallet to change network (wallet_switchEthereumChain)
	SwitchChain(ctx context.Context, chainID domain.ChainID) error

	// AddChain registers a network with the wallet (wallet_addEthereumChain)
	AddChain(ctx context.Context, params domain.ChainParams) error

	// RequestAccounts prompts for account access (eth_requestAccounts)
	RequestAccounts(ctx context.Context) ([]string, error)

	// Accounts returns already-authorized accounts (eth_accounts)
	Accounts(ctx context.Context) ([]string, error)

	// SendTransaction submits a transaction and returns its hash (eth_sendTransaction)
	SendTransaction(ctx context.Context, tx domain.TxRequest) (string, error)

	// Subscribe delivers accountsChanged / chainChanged events until the
	// returned function is called
	Subscribe(fn func(Event)) (unsubscribe func())
}

// EventKind names a provider notification.
type EventKind string

const (
	EventAccountsChanged EventKind = "accountsChanged"
	EventChainChanged    EventKind = "chainChanged"
)

// Event is a provider notification.
type Event struct {
	Kind     EventKind
	Accounts []string
	ChainID  domain.ChainID
}

// ErrorCode extracts an EIP-1193 code from err, if it carries one.
func ErrorCode(err error) (int, bool) {
	var coded interface{ ErrorCode() int }
	if errors.As(err, &coded) {
		return coded.ErrorCode(), true
	}
	return 0, false
}
