package notifications

import "errors"

var (
	// ErrUnknownSeverity is returned for severity values outside the declared set.
	ErrUnknownSeverity = errors.New("notifications: unknown severity")
	// ErrRenderFailed wraps errors returned by a Renderer.
	ErrRenderFailed = errors.New("notifications: render failed")
	// ErrEmptyFragment is reported when a Renderer succeeds without output.
	ErrEmptyFragment = errors.New("notifications: empty fragment")
	// ErrConnectionClosed is returned by a session when the client can no longer be written to.
	ErrConnectionClosed = errors.New("notifications: connection closed")
)
