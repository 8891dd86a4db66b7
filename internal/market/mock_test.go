package market

import (
	"context"
	"errors"
	"sync"

	"github.com/vietddude/codemarket/internal/core/domain"
)

const (
	buyer  = "0xAbC0000000000000000000000000000000000001"
	seller = "0xDeF0000000000000000000000000000000000002"
)

// fakeSession is a settable SessionSource
type fakeSession struct {
	mu   sync.Mutex
	sess domain.Session
}

func connectedAs(addr string) *fakeSession {
	return &fakeSession{sess: domain.Session{Address: addr, Connected: true}}
}

func (f *fakeSession) Session() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

func (f *fakeSession) set(s domain.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = s
}

// MockPayer implements Payer for testing
type MockPayer struct {
	SendFunc func(ctx context.Context, tx domain.TxRequest) (string, error)

	mu   sync.Mutex
	sent []domain.TxRequest
}

func (m *MockPayer) SendTransaction(ctx context.Context, tx domain.TxRequest) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, tx)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, tx)
	}
	return "0x1234567890abcdef", nil
}

func (m *MockPayer) Sent() []domain.TxRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TxRequest(nil), m.sent...)
}

// failingRepo rejects every write and serves a fixed read
type failingRepo struct {
	data   []byte
	getErr error
	puts   int
}

func (r *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return r.data, r.getErr
}

func (r *failingRepo) Put(ctx context.Context, key string, value []byte) error {
	r.puts++
	return errors.New("disk full")
}
