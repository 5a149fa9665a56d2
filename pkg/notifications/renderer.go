package notifications

import "context"

// FallbackFragment is streamed in place of a notification that failed to render.
const FallbackFragment = "error rendering notification"

// Renderer turns a notification into the fragment streamed to clients.
// Implementations must be safe for concurrent use.
type Renderer interface {
	Render(ctx context.Context, n Notification) (string, error)
}

// RendererFunc adapts an ordinary function to the Renderer interface.
type RendererFunc func(ctx context.Context, n Notification) (string, error)

// Render calls f(ctx, n).
func (f RendererFunc) Render(ctx context.Context, n Notification) (string, error) {
	return f(ctx, n)
}
