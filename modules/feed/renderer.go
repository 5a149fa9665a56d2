package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/aserowy/htmx-playground/pkg/notifications"
)

// View renders one notification as an HTML fragment.
type View func(notifications.Notification) templ.Component

// Renderer renders notifications with a templ view.
// It is safe for concurrent use as long as the view is.
type Renderer struct {
	view View
}

// NewRenderer creates a notification renderer backed by view.
func NewRenderer(view View) *Renderer {
	return &Renderer{view: view}
}

// Render renders n to a string. Notifications with a severity outside the
// declared set are refused with ErrUnknownSeverity instead of being drawn
// with a guessed style.
func (r *Renderer) Render(ctx context.Context, n notifications.Notification) (string, error) {
	if !n.Severity.Valid() {
		return "", fmt.Errorf("%w: %s", notifications.ErrUnknownSeverity, n.Severity)
	}

	var sb strings.Builder
	if err := r.view(n).Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
