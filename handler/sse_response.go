package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// SSEHandler is a function that handles Server-Sent Events streaming.
// It receives a StreamContext with methods for sending events and components.
//
// The handler should run for the lifetime of the SSE connection, typically
// using a loop that listens for events and sends updates. The connection
// will be closed when the handler returns or the client disconnects.
// Once the stream is open the status line is sent, so the handler logs its
// own failures and an error it returns can only be logged by Wrap's error handler.
//
// Example:
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		ticker := time.NewTicker(time.Second)
//		defer ticker.Stop()
//
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case t := <-ticker.C:
//				if err := stream.SendEvent("tick", "", t.Format(time.RFC3339)); err != nil {
//					return err
//				}
//			}
//		}
//	})
type SSEHandler func(ctx StreamContext) error

// sseResponse implements Response for Server-Sent Events.
type sseResponse struct {
	handler SSEHandler
}

// Render verifies the writer can stream before any header is written, opens
// the event stream and runs the handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !CanStream(w) {
		return ErrStreamingUnsupported
	}

	// The stream outlives the server write timeout
	err := http.NewResponseController(w).SetWriteDeadline(time.Time{})
	if err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("%w: %w", ErrStreamingUnsupported, err)
	}

	// Keep reverse proxies from buffering the stream
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := &streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
	}

	return s.handler(ctx)
}

// SSE creates a new SSE response that runs the given handler.
// Works for any EventSource client: htmx's sse extension subscribes with
// named events through SendEvent, Datastar clients receive element patches
// through SendComponent.
//
// Example usage in a handler:
//
//	handler.HandlerFunc[handler.Context, streamRequest](
//		func(ctx handler.Context, _ streamRequest) handler.Response {
//			sub := hub.Subscribe(ctx)
//			return handler.SSE(func(stream handler.StreamContext) error {
//				return notifications.NewSession(sub, renderer, stream).Run(stream)
//			})
//		},
//	)
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}

// CanStream reports whether w, or a writer it wraps, can flush.
// It writes nothing, so a failed check still leaves room for an error response.
func CanStream(w http.ResponseWriter) bool {
	for {
		switch rw := w.(type) {
		case interface{ FlushError() error }, http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = rw.Unwrap()
		default:
			return false
		}
	}
}
