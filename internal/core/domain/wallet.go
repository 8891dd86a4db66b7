package domain

import (
	"math/big"
	"strings"
)

// Session is the locally tracked wallet connection.
type Session struct {
	Address   string
	Connected bool
}

// Active reports whether the session can act on behalf of an address.
func (s Session) Active() bool {
	return s.Connected && s.Address != ""
}

// Owns reports whether addr is the session's address.
func (s Session) Owns(addr string) bool {
	return s.Active() && SameAddress(s.Address, addr)
}

// SameAddress compares two hex addresses ignoring checksum case.
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// TxRequest is an eth_sendTransaction payload.
type TxRequest struct {
	From  string
	To    string
	Value *big.Int // wei
	Gas   uint64
}

// DefaultGasLimit is the plain-transfer gas hint (0x5208).
const DefaultGasLimit uint64 = 21000
