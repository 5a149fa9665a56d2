// Package notifications models transient UI notifications and streams them
// to connected clients.
//
// A Notification is an immutable value with a fresh id, a Severity from a
// closed set and a human-readable message. It is never persisted: once
// published it is either streamed to the clients listening at that moment
// or discarded.
//
// # Publishing
//
// Producers publish through a Publisher, normally a
// *broadcast.Hub[Notification]. The Notifier wraps a Publisher for call sites
// where delivery is best effort and must never fail the surrounding operation:
//
//	notifier := notifications.NewNotifier(hub, notifications.WithNotifierLogger(log))
//	notifier.Notify(ctx, notifications.Success("Entry created: hello"))
//
// # Streaming
//
// A Session drives one long-lived client connection. It owns a subscription,
// renders each notification through a Renderer, writes it as a "notification"
// event and sends a "heartbeat" event whenever nothing was written for the
// heartbeat interval:
//
//	sub := hub.Subscribe(ctx)
//	return handler.SSE(func(stream handler.StreamContext) error {
//		return notifications.NewSession(sub, renderer, stream).Run(stream)
//	})
//
// A failed or empty render is replaced by FallbackFragment and the stream continues.
// A lagged subscription skips silently to the newest retained notifications.
package notifications
