package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/logger"
)

// Event types written to the stream. htmx's sse extension swaps only the
// events it is told to, so heartbeats never reach the page.
const (
	EventName      = "notification"
	HeartbeatEvent = "heartbeat"
)

// KeepAlive is the data of every heartbeat frame.
const KeepAlive = "keep-alive"

// DefaultHeartbeat is the idle interval after which a keep-alive frame is sent.
const DefaultHeartbeat = 5 * time.Second

// EventWriter delivers named events to a single client.
// handler.StreamContext satisfies it.
type EventWriter interface {
	SendEvent(name, id, data string) error
}

// HeartbeatObserver is notified about every keep-alive frame written.
type HeartbeatObserver interface {
	Heartbeat()
}

// Session streams one subscription to one client.
type Session struct {
	sub       *broadcast.Subscription[Notification]
	renderer  Renderer
	w         EventWriter
	heartbeat time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	observer  HeartbeatObserver
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHeartbeat sets the idle interval. Non-positive values are ignored.
func WithHeartbeat(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.heartbeat = d
		}
	}
}

// WithClock replaces the clock driving the idle timer.
func WithClock(c clockwork.Clock) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSessionLogger sets the logger for the Session.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHeartbeatObserver registers an observer for keep-alive frames.
func WithHeartbeatObserver(o HeartbeatObserver) SessionOption {
	return func(s *Session) {
		s.observer = o
	}
}

// NewSession creates a session that owns sub. The subscription is closed when Run returns.
func NewSession(sub *broadcast.Subscription[Notification], renderer Renderer, w EventWriter, opts ...SessionOption) *Session {
	s := &Session{
		sub:       sub,
		renderer:  renderer,
		w:         w,
		heartbeat: DefaultHeartbeat,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run streams notifications until ctx is cancelled or the subscription is closed,
// in which case it returns nil. A failed write ends the session with an error
// wrapping ErrConnectionClosed. A heartbeat frame is written whenever no
// notification was written for the configured interval.
func (s *Session) Run(ctx context.Context) error {
	defer s.sub.Close()

	idle := s.clock.NewTimer(s.heartbeat)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-s.sub.Ready():
			if closed, err := s.drain(ctx, idle); err != nil || closed {
				return err
			}

		case <-s.sub.Done():
			_, err := s.drain(ctx, idle)
			return err

		case <-idle.Chan():
			if err := s.send(HeartbeatEvent, "", KeepAlive); err != nil {
				return err
			}
			if s.observer != nil {
				s.observer.Heartbeat()
			}
			idle.Reset(s.heartbeat)
		}
	}
}

// drain writes every pending outcome. It reports whether the subscription is closed.
func (s *Session) drain(ctx context.Context, idle clockwork.Timer) (bool, error) {
	for {
		msg, err := s.sub.TryRecv()

		var lagged *broadcast.ErrLagged
		switch {
		case err == nil:
		case errors.As(err, &lagged):
			s.logger.LogAttrs(ctx, slog.LevelDebug, "notification stream lagged",
				slog.Int("skipped", lagged.Skipped),
			)
			continue
		case errors.Is(err, broadcast.ErrEmpty{}):
			return false, nil
		default:
			return true, nil
		}

		n := msg.Data
		fragment, rerr := s.renderer.Render(ctx, n)
		if rerr == nil && strings.TrimSpace(fragment) == "" {
			rerr = ErrEmptyFragment
		}
		if rerr != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to render notification",
				logger.NotificationID(n.ID),
				logger.Error(fmt.Errorf("%w: %w", ErrRenderFailed, rerr)),
			)
			fragment = FallbackFragment
		}

		// The timer is re-armed before the frame leaves so the next idle
		// interval is measured from this write.
		resetTimer(idle, s.heartbeat)

		if err := s.send(EventName, n.ID.String(), fragment); err != nil {
			return true, err
		}
	}
}

func (s *Session) send(name, id, data string) error {
	if err := s.w.SendEvent(name, id, data); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionClosed, err)
	}
	return nil
}

func resetTimer(t clockwork.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.Chan():
		default:
		}
	}
	t.Reset(d)
}
