package notifications

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/logger"
)

// Publisher hands a notification to every live subscriber.
// *broadcast.Hub[Notification] satisfies it.
type Publisher interface {
	Publish(ctx context.Context, n Notification) (int, error)
}

// Notifier publishes notifications on a best-effort basis: failures are
// logged and never returned to the caller.
type Notifier struct {
	pub    Publisher
	logger *slog.Logger
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithNotifierLogger sets the logger for the Notifier.
func WithNotifierLogger(l *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNotifier creates a notifier publishing to pub.
func NewNotifier(pub Publisher, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		pub:    pub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify publishes notif and returns how many subscribers it reached.
func (n *Notifier) Notify(ctx context.Context, notif Notification) int {
	delivered, err := n.pub.Publish(ctx, notif)

	var noSubscribers broadcast.ErrNoSubscribers
	switch {
	case err == nil:
		n.logger.LogAttrs(ctx, slog.LevelDebug, "notification published",
			logger.NotificationID(notif.ID),
			logger.Subscribers(delivered),
		)
	case errors.As(err, &noSubscribers):
		n.logger.LogAttrs(ctx, slog.LevelDebug, "notification discarded, nobody is listening",
			logger.NotificationID(notif.ID),
		)
	default:
		n.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish notification",
			logger.NotificationID(notif.ID),
			logger.Error(err),
		)
	}

	return delivered
}

// NoOpPublisher discards every notification.
// Useful for testing or when real-time delivery is not needed.
type NoOpPublisher struct{}

// Publish does nothing and reports that nobody was listening.
func (NoOpPublisher) Publish(context.Context, Notification) (int, error) {
	return 0, broadcast.ErrNoSubscribers{}
}
