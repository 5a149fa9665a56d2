package broadcast

import (
	"context"
	"sync"
)

// Hub fans out published values to every live subscription.
// Publishing never waits for a consumer: each subscription owns a bounded
// backlog and a full backlog loses its oldest entry instead.
// All methods are safe for concurrent use.
type Hub[T any] struct {
	capacity int
	metrics  Metrics

	mu     sync.RWMutex
	subs   map[*Subscription[T]]struct{}
	seq    uint64
	closed bool
}

// NewHub creates a new in-memory hub.
func NewHub[T any](opts ...Option) *Hub[T] {
	o := options{
		capacity: DefaultCapacity,
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Hub[T]{
		// A zero-sized backlog could never hold the message being delivered
		capacity: max(o.capacity, 1),
		metrics:  o.metrics,
		subs:     make(map[*Subscription[T]]struct{}),
	}
}

// Subscribe creates a subscription that receives every value published after
// Subscribe returns. The subscription is closed automatically when ctx is
// cancelled. If the hub is already closed, an already closed subscription is returned.
func (h *Hub[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sub := newSubscription(h, h.capacity)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.shutdown(true)
		return sub
	}
	h.subs[sub] = struct{}{}
	h.metrics.SubscribersChanged(len(h.subs))
	h.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.Done():
			}
		}()
	}

	return sub
}

// Publish appends v to the backlog of every live subscription and returns the
// number of subscriptions reached. It returns ErrNoSubscribers when there were
// none and ErrHubClosed after Close.
//
// The context is accepted for interface symmetry with transport-backed hubs;
// the in-memory implementation never blocks on it.
func (h *Hub[T]) Publish(ctx context.Context, v T) (int, error) {
	// Publishes are serialized so every subscription sees the same total order
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrHubClosed{}
	}
	if len(h.subs) == 0 {
		h.metrics.Published(0)
		return 0, ErrNoSubscribers{}
	}

	h.seq++
	msg := Message[T]{Seq: h.seq, Data: v}

	skipped := 0
	for sub := range h.subs {
		if sub.push(msg) {
			skipped++
		}
	}

	h.metrics.Published(len(h.subs))
	if skipped > 0 {
		h.metrics.Lagged(skipped)
	}

	return len(h.subs), nil
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Closed reports whether Close has been called.
func (h *Hub[T]) Closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// Close shuts the hub down. Every live subscription is closed after its
// pending backlog, so readers drain what they already have and then observe
// ErrClosed. It is safe to call Close multiple times.
func (h *Hub[T]) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[*Subscription[T]]struct{})
	h.metrics.SubscribersChanged(0)
	h.mu.Unlock()

	for sub := range subs {
		sub.shutdown(false)
	}

	return nil
}

func (h *Hub[T]) unsubscribe(sub *Subscription[T]) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		h.metrics.SubscribersChanged(len(h.subs))
	}
	h.mu.Unlock()

	sub.shutdown(true)
}
