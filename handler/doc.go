// Package handler provides type-safe HTTP request handling for server
// rendered pages driven by htmx, with Datastar clients served by the same
// handlers.
//
// A HandlerFunc receives a Context and a request struct populated by the
// binders of package binder, and returns a Response:
//
//	type createEntryRequest struct {
//		Content string `form:"content"`
//	}
//
//	func createEntry(ctx handler.Context, req createEntryRequest) handler.Response {
//		entry, err := svc.Create(ctx, req.Content)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(views.Entry(entry))
//	}
//
//	r.Post("/entries", handler.Wrap(createEntry,
//		handler.WithBinders[handler.Context, createEntryRequest](binder.Form()),
//	))
//
// # Responses
//
//	handler.Templ(component)             // HTML fragment, or a Datastar patch
//	handler.TemplPartial(partial, full)  // fragment for htmx, page for navigation
//	handler.Empty()                      // 204 No Content
//	handler.EmptyWithStatus(200)         // empty body htmx still swaps
//	handler.Error(err)                   // defer to the error handler
//	handler.SSE(fn)                      // Server-Sent Events stream
//
// # Streaming
//
// SSE opens a text/event-stream response on Datastar's event generator and
// hands the handler a StreamContext. SendEvent writes arbitrary named events,
// which is what htmx's sse extension listens for; SendComponent and
// SendSignals write Datastar patches. Writers that cannot flush are rejected
// with ErrStreamingUnsupported before any header is written.
//
// # Errors
//
// Binding and rendering errors, and errors returned through Error, go to the
// ErrorHandler configured with WithErrorHandler. NewErrorHandler classifies
// them (core.HTTPError, ValidationError, binder errors, anything else as 500),
// logs them and answers in the shape the client expects: a retargeted toast
// for htmx, a patch-elements event for Datastar or a full page otherwise.
//
// # Request detection
//
// IsHTMX checks the HX-Request header. IsDataStar checks the Datastar-Request
// header and the datastar query parameter.
package handler
