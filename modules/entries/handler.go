package entries

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aserowy/htmx-playground/binder"
	"github.com/aserowy/htmx-playground/core"
	"github.com/aserowy/htmx-playground/handler"
)

// EntryService is the behaviour the HTTP handler needs. *Service implements it.
type EntryService interface {
	List(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, content string) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Views renders the entry fragments.
type Views struct {
	// List renders the entry list fragment swapped into the page placeholder
	List func(ListParams) templ.Component
	// Entry renders a single entry, returned after a create
	Entry func(EntryParams) templ.Component
	// Page renders a full document around the list for direct navigation
	Page func(ListParams) templ.Component
}

// ListParams contains data for rendering the entry list.
type ListParams struct {
	Entries []Entry
}

// EntryParams contains data for rendering one entry.
type EntryParams struct {
	Entry Entry
}

// Handler serves the entry routes.
type Handler struct {
	svc          EntryService
	views        Views
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewHandler creates the entry HTTP handler. A nil errorHandler keeps the
// plain text default of handler.Wrap.
func NewHandler(svc EntryService, views Views, errorHandler handler.ErrorHandler[handler.Context]) *Handler {
	return &Handler{
		svc:          svc,
		views:        views,
		errorHandler: errorHandler,
	}
}

// Handle returns the router to mount at /entries.
//
//	GET    /      entry list
//	POST   /      create from the "content" form field
//	DELETE /{id}  delete, 400 for ids that are not UUIDs
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.list,
		handler.WithErrorHandler[handler.Context, listRequest](h.errorHandler),
	))
	r.Post("/", handler.Wrap(h.create,
		handler.WithBinders[handler.Context, createRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, createRequest](h.errorHandler),
	))
	r.Delete("/{id}", handler.Wrap(h.delete,
		handler.WithBinders[handler.Context, deleteRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, deleteRequest](h.errorHandler),
	))

	return r
}

type listRequest struct{}

func (h *Handler) list(ctx handler.Context, _ listRequest) handler.Response {
	entries, err := h.svc.List(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return handler.Error(core.ErrRequestTimeout.Wrap(err))
		}
		return handler.Error(err)
	}

	params := ListParams{Entries: entries}
	if h.views.Page == nil {
		return handler.Templ(h.views.List(params))
	}
	return handler.TemplPartial(h.views.List(params), h.views.Page(params))
}

type createRequest struct {
	Content string `form:"content"`
}

func (h *Handler) create(ctx handler.Context, req createRequest) handler.Response {
	entry, err := h.svc.Create(ctx, req.Content)
	if err != nil {
		return handler.Error(err)
	}

	return handler.Templ(h.views.Entry(EntryParams{Entry: entry}),
		handler.WithTarget("#entries"),
		handler.WithPatchMode(handler.PatchAppend),
	)
}

type deleteRequest struct {
	ID string `path:"id"`
}

func (h *Handler) delete(ctx handler.Context, req deleteRequest) handler.Response {
	id, err := ParseID(req.ID)
	if err != nil {
		return handler.Error(core.ErrMalformedIdentifier.Wrap(err))
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		return handler.Error(err)
	}

	// htmx swaps 200 responses only; the empty body removes the row
	return handler.EmptyWithStatus(http.StatusOK)
}
