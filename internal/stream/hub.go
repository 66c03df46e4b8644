// Package stream fans quote refreshes out to websocket subscribers.
package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuoteUpdate is one refreshed option mark pushed to subscribers.
type QuoteUpdate struct {
	Ticker    string          `json:"ticker"`
	Mark      decimal.Decimal `json:"mark"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[chan QuoteUpdate]struct{}
	buf    int
	logger *zap.Logger

	droppedFanout uint64
}

func NewHub(bufPerConn int, logger *zap.Logger) *Hub {
	if bufPerConn <= 0 {
		bufPerConn = 64
	}
	return &Hub{
		subs:   map[chan QuoteUpdate]struct{}{},
		buf:    bufPerConn,
		logger: logger,
	}
}

// Subscribe registers a receiver. The returned cancel func must be called
// when the consumer goes away; it closes the channel.
func (h *Hub) Subscribe() (<-chan QuoteUpdate, func()) {
	ch := make(chan QuoteUpdate, h.buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers updates to every subscriber without blocking: a slow
// consumer with a full buffer loses updates rather than stalling the
// refresh job.
func (h *Hub) Publish(updates []QuoteUpdate) {
	if len(updates) == 0 {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		for _, u := range updates {
			select {
			case ch <- u:
			default:
				atomic.AddUint64(&h.droppedFanout, 1)
			}
		}
	}
	if dropped := atomic.LoadUint64(&h.droppedFanout); dropped > 0 && h.logger != nil {
		h.logger.Debug("quote stream fanout drops", zap.Uint64("total_dropped", dropped))
	}
}

// Subscribers reports the current consumer count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
