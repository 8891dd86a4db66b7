package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vietddude/codemarket/internal/metrics"
)

const (
	wsHandshakeTimeout = 10 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

// WSTransport implements Transport and Subscriber over a WebSocket bridge.
// Responses are matched to calls by id; id-less messages are dispatched to
// subscribers as notifications.
type WSTransport struct {
	name   string
	conn   *websocket.Conn
	log    *slog.Logger
	nextID atomic.Uint64
	health *healthTracker

	writeMu sync.Mutex // Protects all writes to conn

	mu       sync.Mutex
	pending  map[uint64]chan response
	subs     map[uint64]func(Notification)
	nextSub  uint64
	closed   chan struct{}
	closeErr error
	once     sync.Once
}

// DialWS connects to a WebSocket JSON-RPC endpoint and starts the read loop.
func DialWS(ctx context.Context, name, url string, log *slog.Logger) (*WSTransport, error) {
	if log == nil {
		log = slog.Default()
	}

	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	t := &WSTransport{
		name:    name,
		conn:    conn,
		log:     log.With("transport", name),
		health:  newHealthTracker(),
		pending: make(map[uint64]chan response),
		subs:    make(map[uint64]func(Notification)),
		closed:  make(chan struct{}),
	}
	go t.readLoop()

	return t, nil
}

// Call makes a single JSON-RPC call and waits for the matching response.
func (t *WSTransport) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	start := time.Now()
	metrics.RPCCallsTotal.WithLabelValues(t.name, method).Inc()

	id := t.nextID.Add(1)
	ch := make(chan response, 1)

	t.mu.Lock()
	select {
	case <-t.closed:
		t.mu.Unlock()
		return nil, t.fail(method, "closed", ErrClosed)
	default:
	}
	t.pending[id] = ch
	t.mu.Unlock()

	if err := t.write(newRequest(id, method, params)); err != nil {
		t.forget(id)
		return nil, t.fail(method, "write", fmt.Errorf("write request: %w", err))
	}

	select {
	case <-ctx.Done():
		t.forget(id)
		return nil, ctx.Err()
	case <-t.closed:
		return nil, t.fail(method, "closed", fmt.Errorf("%w: %v", ErrClosed, t.closeErr))
	case resp := <-ch:
		latency := time.Since(start)
		metrics.RPCLatency.WithLabelValues(t.name, method).Observe(latency.Seconds())
		t.health.recordSuccess(latency)
		if resp.Error != nil {
			metrics.RPCErrorsTotal.WithLabelValues(t.name, method, "rpc").Inc()
			return nil, resp.Error
		}
		return resp.Result, nil
	}
}

// Subscribe registers fn for every pushed notification.
func (t *WSTransport) Subscribe(fn func(Notification)) func() {
	t.mu.Lock()
	t.nextSub++
	id := t.nextSub
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// GetName returns the transport's name.
func (t *WSTransport) GetName() string {
	return t.name
}

// Health returns the transport's health status.
func (t *WSTransport) Health() HealthStatus {
	return t.health.snapshot()
}

// Done is closed once the connection is gone.
func (t *WSTransport) Done() <-chan struct{} {
	return t.closed
}

// Close sends a close frame and tears down the connection.
func (t *WSTransport) Close() error {
	t.writeMu.Lock()
	_ = t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = t.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	t.writeMu.Unlock()

	err := t.conn.Close()
	t.shutdown(ErrClosed)
	return err
}

func (t *WSTransport) write(v any) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return t.conn.WriteJSON(v)
}

func (t *WSTransport) forget(id uint64) {
	t.mu.Lock()
	delete(t.pending, id)
	t.mu.Unlock()
}

func (t *WSTransport) fail(method, kind string, err error) error {
	t.health.recordFailure()
	metrics.RPCErrorsTotal.WithLabelValues(t.name, method, kind).Inc()
	return err
}

func (t *WSTransport) readLoop() {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.log.Warn("WebSocket read failed", "error", err)
			}
			t.health.markDown()
			t.shutdown(err)
			return
		}

		var msg response
		if err := json.Unmarshal(data, &msg); err != nil {
			t.log.Warn("Dropping malformed message", "error", err)
			continue
		}

		if msg.ID != nil && msg.Method == "" {
			t.mu.Lock()
			ch, ok := t.pending[*msg.ID]
			delete(t.pending, *msg.ID)
			t.mu.Unlock()
			if ok {
				ch <- msg
			}
			continue
		}

		if msg.Method != "" {
			t.dispatch(Notification{Method: msg.Method, Params: msg.Params})
		}
	}
}

func (t *WSTransport) dispatch(n Notification) {
	t.mu.Lock()
	handlers := make([]func(Notification), 0, len(t.subs))
	for _, fn := range t.subs {
		handlers = append(handlers, fn)
	}
	t.mu.Unlock()

	for _, fn := range handlers {
		fn(n)
	}
}

func (t *WSTransport) shutdown(err error) {
	t.once.Do(func() {
		t.mu.Lock()
		t.closeErr = err
		t.pending = make(map[uint64]chan response)
		close(t.closed)
		t.mu.Unlock()
	})
}
