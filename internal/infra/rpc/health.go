package rpc

import (
	"sync"
	"time"
)

// healthTracker keeps rolling success/failure counters for a transport.
type healthTracker struct {
	mu           sync.RWMutex
	health       HealthStatus
	totalLatency time.Duration
	successCount int
	failureCount int
	requestCount int
}

func newHealthTracker() *healthTracker {
	return &healthTracker{
		health: HealthStatus{
			Available:     true,
			LastSuccessAt: time.Now(),
		},
	}
}

func (h *healthTracker) snapshot() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.health
}

func (h *healthTracker) recordSuccess(latency time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.successCount++
	h.requestCount++
	h.totalLatency += latency
	h.health.LastSuccessAt = time.Now()
	h.health.Available = true

	h.health.ErrorRate = float64(h.failureCount) / float64(h.requestCount)
	h.health.Latency = h.totalLatency / time.Duration(h.successCount)
}

func (h *healthTracker) recordFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.failureCount++
	h.requestCount++
	h.health.LastFailureAt = time.Now()
	h.health.ErrorRate = float64(h.failureCount) / float64(h.requestCount)

	if h.health.ErrorRate > 0.5 {
		h.health.Available = false
	}
}

func (h *healthTracker) markDown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.health.Available = false
	h.health.LastFailureAt = time.Now()
}
