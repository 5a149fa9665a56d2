package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aserowy/htmx-playground/core"
	"github.com/aserowy/htmx-playground/handler"
)

// Mountable is a module serving its own routes below a prefix.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what the web router serves.
// Each part is optional and only mounted when provided.
type RouterOptions struct {
	// Entries is mounted at /entries
	Entries Mountable
	// Notifications serves the event stream at GET /notifications
	Notifications http.Handler
	// ErrorHandler renders errors of the page and fallback routes
	ErrorHandler handler.ErrorHandler[handler.Context]
}

type pageRequest struct{}

type fallbackRequest struct{}

// Router creates the application router.
//
// Example:
//
//	r.Mount("/", web.Router(web.RouterOptions{
//		Entries:       entries.NewHandler(svc, web.EntryViews(), errorHandler),
//		Notifications: feed.NewHandler(hub, feed.NewRenderer(web.Notification), feedCfg),
//		ErrorHandler:  errorHandler,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(
		handler.HandlerFunc[handler.Context, pageRequest](func(handler.Context, pageRequest) handler.Response {
			return handler.Templ(Page(PageParams{Lazy: true}))
		}),
		handler.WithErrorHandler[handler.Context, pageRequest](opts.ErrorHandler),
	))

	if opts.Entries != nil {
		r.Mount("/entries", opts.Entries.Handle())
	}
	if opts.Notifications != nil {
		r.Method(http.MethodGet, "/notifications", opts.Notifications)
	}

	r.NotFound(fallback(core.ErrNotFound, opts.ErrorHandler))
	r.MethodNotAllowed(fallback(core.ErrMethodNotAllowed, opts.ErrorHandler))

	return r
}

func fallback(err core.HTTPError, eh handler.ErrorHandler[handler.Context]) http.HandlerFunc {
	return handler.Wrap(
		handler.HandlerFunc[handler.Context, fallbackRequest](func(handler.Context, fallbackRequest) handler.Response {
			return handler.Error(err)
		}),
		handler.WithErrorHandler[handler.Context, fallbackRequest](eh),
	)
}
