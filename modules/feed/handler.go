package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/aserowy/htmx-playground/handler"
	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/logger"
	"github.com/aserowy/htmx-playground/pkg/notifications"
)

// Subscriber hands out subscriptions to the notification hub.
// *broadcast.Hub[notifications.Notification] implements it.
type Subscriber interface {
	Subscribe(ctx context.Context) *broadcast.Subscription[notifications.Notification]
}

// Handler streams notifications to one client per request as Server-Sent
// Events until the client disconnects or the hub closes.
type Handler struct {
	hub          Subscriber
	renderer     notifications.Renderer
	cfg          Config
	logger       *slog.Logger
	observer     notifications.HeartbeatObserver
	clock        clockwork.Clock
	errorHandler handler.ErrorHandler[handler.Context]
	serve        http.HandlerFunc
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for the Handler and its sessions.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHeartbeatObserver registers an observer for keep-alive frames.
func WithHeartbeatObserver(o notifications.HeartbeatObserver) Option {
	return func(h *Handler) {
		h.observer = o
	}
}

// WithErrorHandler sets the handler answering requests that cannot be
// streamed. Wrap's plain text default is used otherwise.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) Option {
	return func(h *Handler) {
		h.errorHandler = eh
	}
}

// WithClock replaces the clock driving session heartbeats.
func WithClock(c clockwork.Clock) Option {
	return func(h *Handler) {
		if c != nil {
			h.clock = c
		}
	}
}

// NewHandler creates the notification stream handler.
func NewHandler(hub Subscriber, renderer notifications.Renderer, cfg Config, opts ...Option) *Handler {
	h := &Handler{
		hub:      hub,
		renderer: renderer,
		cfg:      cfg,
		logger:   slog.Default(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.serve = handler.Wrap(h.stream,
		handler.WithErrorHandler[handler.Context, streamRequest](h.errorHandler),
	)
	return h
}

// ServeHTTP streams notifications to the client.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)
}

type streamRequest struct{}

// stream subscribes before the response headers are sent, so nothing
// published after the client sees the stream open is missed.
func (h *Handler) stream(ctx handler.Context, _ streamRequest) handler.Response {
	if !handler.CanStream(ctx.ResponseWriter()) {
		return handler.Error(handler.ErrStreamingUnsupported)
	}

	sub := h.hub.Subscribe(ctx)

	return handler.SSE(func(stream handler.StreamContext) error {
		h.logger.LogAttrs(stream, slog.LevelDebug, "notification stream opened", logger.Component("feed"))

		session := notifications.NewSession(sub, h.renderer, stream,
			notifications.WithHeartbeat(h.cfg.Heartbeat),
			notifications.WithClock(h.clock),
			notifications.WithSessionLogger(h.logger),
			notifications.WithHeartbeatObserver(h.observer),
		)

		err := session.Run(stream)
		switch {
		case err == nil:
			h.logger.LogAttrs(stream, slog.LevelDebug, "notification stream closed", logger.Component("feed"))
		case errors.Is(err, notifications.ErrConnectionClosed):
			h.logger.LogAttrs(stream, slog.LevelDebug, "notification client went away",
				logger.Error(err),
				logger.Component("feed"),
			)
		default:
			h.logger.LogAttrs(stream, slog.LevelWarn, "notification stream failed",
				logger.Error(err),
				logger.Component("feed"),
			)
		}

		// The status line is already sent, nothing is left for the error handler
		return nil
	})
}
