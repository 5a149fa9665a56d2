package broadcast

import (
	"context"
	"sync"
)

// Subscription is a receive handle into a Hub with its own bounded backlog.
// It is meant to be owned by a single reader; Close may be called from anywhere.
type Subscription[T any] struct {
	hub *Hub[T]

	mu     sync.Mutex
	buf    []Message[T] // ring buffer, len(buf) is the capacity
	head   int
	size   int
	lagged int
	closed bool

	ready     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription[T any](h *Hub[T], capacity int) *Subscription[T] {
	return &Subscription[T]{
		hub:   h,
		buf:   make([]Message[T], capacity),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Recv blocks until a message is available, the subscription lagged, the
// subscription is closed, or ctx is cancelled.
//
// A *ErrLagged error is reported once, before the oldest retained message,
// and is not terminal. ErrClosed is terminal and only returned after the
// backlog left by a hub shutdown has been drained.
func (s *Subscription[T]) Recv(ctx context.Context) (Message[T], error) {
	for {
		msg, err := s.TryRecv()
		if _, empty := err.(ErrEmpty); !empty {
			return msg, err
		}

		select {
		case <-s.ready:
		case <-s.done:
		case <-ctx.Done():
			return Message[T]{}, ctx.Err()
		}
	}
}

// TryRecv is the non-blocking form of Recv. It returns ErrEmpty when nothing is pending.
func (s *Subscription[T]) TryRecv() (Message[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lagged > 0 {
		skipped := s.lagged
		s.lagged = 0
		return Message[T]{}, &ErrLagged{Skipped: skipped}
	}

	if s.size > 0 {
		msg := s.buf[s.head]
		s.buf[s.head] = Message[T]{}
		s.head = (s.head + 1) % len(s.buf)
		s.size--
		return msg, nil
	}

	if s.closed {
		return Message[T]{}, ErrClosed{}
	}
	return Message[T]{}, ErrEmpty{}
}

// Ready returns a channel that receives a signal whenever new outcomes were
// queued. A signal means TryRecv should be called until it returns ErrEmpty;
// several pushes may collapse into one signal.
func (s *Subscription[T]) Ready() <-chan struct{} {
	return s.ready
}

// Done returns a channel that is closed once the subscription is closed.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Len returns the number of messages waiting in the backlog.
func (s *Subscription[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Close removes the subscription from its hub and discards its backlog.
// No message is delivered after Close returns. Close is idempotent.
func (s *Subscription[T]) Close() error {
	s.hub.unsubscribe(s)
	return nil
}

// push appends msg, dropping the oldest entry when the backlog is full.
// It reports whether an entry was dropped.
func (s *Subscription[T]) push(msg Message[T]) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}

	dropped := false
	if s.size == len(s.buf) {
		s.head = (s.head + 1) % len(s.buf)
		s.size--
		s.lagged++
		dropped = true
	}
	s.buf[(s.head+s.size)%len(s.buf)] = msg
	s.size++
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}

	return dropped
}

// shutdown marks the subscription closed. With discard set the pending
// backlog is dropped as well, otherwise it stays readable.
func (s *Subscription[T]) shutdown(discard bool) {
	s.mu.Lock()
	if discard {
		clear(s.buf)
		s.head, s.size, s.lagged = 0, 0, 0
	}
	s.closed = true
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		close(s.done)
	})
}
